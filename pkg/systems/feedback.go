package systems

import (
	"github.com/decker502/starblaster/pkg/entities"
	"github.com/decker502/starblaster/pkg/types"
	"github.com/decker502/starblaster/pkg/utils"
)

// Feedback 声音/震动反馈（由宿主注入，替代全局单例）
// 调用是发后即忘的，实现内部的失败不会影响生成逻辑
type Feedback interface {
	Play(cue types.Cue)
}

// NopFeedback 不产生任何反馈（测试和无头模拟使用）
type NopFeedback struct{}

// Play 实现 Feedback
func (NopFeedback) Play(types.Cue) {}

// FightState Boss 战标记
// 陨石和金币生成器只读取它；只有 BossManager 修改它
type FightState interface {
	BossFightActive() bool
	SetBossFightActive(active bool)
}

// fightFlag 独立使用管理器时的默认 FightState
type fightFlag struct {
	active bool
}

func (f *fightFlag) BossFightActive() bool          { return f.active }
func (f *fightFlag) SetBossFightActive(active bool) { f.active = active }

// ManagerDeps 管理器共享的外部协作者
type ManagerDeps struct {
	Factory  entities.Factory
	Scene    entities.Scene
	Timeline *Timeline
	Random   utils.RandomSource
	Feedback Feedback
	Fight    FightState
	Target   entities.TargetProvider
}

// withDefaults 为未注入的可选协作者补默认实现
func (d ManagerDeps) withDefaults() ManagerDeps {
	if d.Timeline == nil {
		d.Timeline = NewTimeline()
	}
	if d.Random == nil {
		d.Random = utils.NewPRNG(0)
	}
	if d.Feedback == nil {
		d.Feedback = NopFeedback{}
	}
	if d.Fight == nil {
		d.Fight = &fightFlag{}
	}
	return d
}
