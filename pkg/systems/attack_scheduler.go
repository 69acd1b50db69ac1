package systems

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/decker502/starblaster/pkg/components"
	"github.com/decker502/starblaster/pkg/types"
	"github.com/decker502/starblaster/pkg/utils"
)

// ErrNoAttackPatterns Boss 没有可用的攻击模式
var ErrNoAttackPatterns = errors.New("boss has no attack patterns")

// AttackScheduler Boss 攻击调度状态机
//
// 状态流转：
//
//	Idle --Start--> Scheduled --延时到期--> Executing --执行完毕--> Scheduled ...
//	任意状态 --Stop--> Idle（终态，不能再次 Start）
//
// 每次预约的延时在 [delayMin, delayMax] 内均匀随机，
// 执行时从允许的模式集合中均匀选择一种并同步调用 execute。
type AttackScheduler struct {
	name     string
	timeline *Timeline
	rng      utils.RandomSource
	patterns []types.AttackPattern
	delayMin float64
	delayMax float64

	// token Boss 生命周期的取消令牌，Stop 时一并取消
	token   *CancelToken
	pending *TimerHandle

	execute func(types.AttackPattern)
	state   components.AttackStateComponent
}

// NewAttackScheduler 创建攻击调度器
//
// 参数：
//   - name: 日志前缀中使用的 Boss 名称
//   - tl: 协作式时间轴
//   - rng: 随机源（模式选择和延时）
//   - patterns: 允许的攻击模式，不能为空
//   - delayMin, delayMax: 攻击间隔区间（秒）
//   - token: Boss 的取消令牌
//   - execute: 执行一次攻击模式
func NewAttackScheduler(
	name string,
	tl *Timeline,
	rng utils.RandomSource,
	patterns []types.AttackPattern,
	delayMin, delayMax float64,
	token *CancelToken,
	execute func(types.AttackPattern),
) (*AttackScheduler, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoAttackPatterns, name)
	}
	// 上限为 0 时攻击会在同一帧内无限重排
	if math.IsNaN(delayMin) || math.IsNaN(delayMax) || math.IsInf(delayMax, 0) ||
		delayMin < 0 || delayMax <= 0 || delayMax < delayMin {
		return nil, fmt.Errorf("%s: invalid attack delay range [%v, %v]", name, delayMin, delayMax)
	}

	copied := make([]types.AttackPattern, len(patterns))
	copy(copied, patterns)

	return &AttackScheduler{
		name:     name,
		timeline: tl,
		rng:      rng,
		patterns: copied,
		delayMin: delayMin,
		delayMax: delayMax,
		token:    token,
		execute:  execute,
	}, nil
}

// Start 开始攻击（Idle → Scheduled）
// 已在攻击或已停止时返回 false
func (a *AttackScheduler) Start() bool {
	if a.state.Stopped || a.state.State != components.AttackIdle {
		return false
	}
	a.state.State = components.AttackScheduled
	a.arm()
	log.Printf("[AttackScheduler] %s starts attacking, first attack at %.2fs", a.name, a.state.NextAttackAt)
	return true
}

// arm 预约下一次攻击
func (a *AttackScheduler) arm() {
	delay := utils.RandomRange(a.rng, a.delayMin, a.delayMax)
	a.state.NextAttackAt = a.timeline.Now() + delay
	a.pending = a.timeline.After(a.token, delay, a.fire)
}

// fire 延时到期：选择模式并执行，然后重新预约
func (a *AttackScheduler) fire() {
	if a.state.Stopped || a.state.State != components.AttackScheduled {
		return
	}
	a.state.State = components.AttackExecuting

	pattern := a.patterns[a.rng.Intn(len(a.patterns))]
	a.state.LastPattern = pattern
	a.state.AttacksFired++
	a.execute(pattern)

	// execute 期间可能已经 Stop
	if a.state.Stopped {
		return
	}
	a.state.State = components.AttackScheduled
	a.arm()
}

// Stop 停止攻击（Boss 被击败），取消所有挂起的回调
// 停止是终态，重复调用无操作
func (a *AttackScheduler) Stop() {
	if a.state.Stopped {
		return
	}
	a.state.Stopped = true
	a.state.State = components.AttackIdle
	a.pending.Cancel()
	a.token.Cancel()
	log.Printf("[AttackScheduler] %s stopped after %d attacks", a.name, a.state.AttacksFired)
}

// IsAttacking 是否处于攻击循环中
func (a *AttackScheduler) IsAttacking() bool {
	return !a.state.Stopped && a.state.State != components.AttackIdle
}

// State 返回运行时状态的副本
func (a *AttackScheduler) State() components.AttackStateComponent {
	return a.state
}
