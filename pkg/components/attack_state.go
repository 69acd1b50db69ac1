package components

import "github.com/decker502/starblaster/pkg/types"

// AttackState Boss 攻击调度状态
type AttackState int

const (
	AttackIdle      AttackState = iota // 未开始攻击，或已停止
	AttackScheduled                    // 已预约下一次攻击
	AttackExecuting                    // 正在执行攻击模式
)

func (s AttackState) String() string {
	switch s {
	case AttackIdle:
		return "idle"
	case AttackScheduled:
		return "scheduled"
	case AttackExecuting:
		return "executing"
	}
	return "unknown"
}

// AttackStateComponent Boss 攻击调度的运行时数据
// Stopped 为 true 时状态固定为 Idle，且不能再次开始（Boss 已被击败）
type AttackStateComponent struct {
	State        AttackState
	Stopped      bool
	NextAttackAt float64             // 下一次攻击的计划时间（秒）
	LastPattern  types.AttackPattern // 最近一次执行的模式
	AttacksFired int                 // 已执行的攻击次数
}
