package systems

import (
	"github.com/decker502/starblaster/pkg/ecs"
	"github.com/decker502/starblaster/pkg/entities"
	"github.com/decker502/starblaster/pkg/types"
	"github.com/decker502/starblaster/pkg/utils"
)

// scriptedRandom 按脚本返回随机数，脚本用完后循环
// 未提供脚本时 Float64 返回 0.5，Intn 返回 0
type scriptedRandom struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *scriptedRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)]
	r.ii++
	return v % n
}

var _ utils.RandomSource = (*scriptedRandom)(nil)

// recordingFeedback 记录所有反馈事件
type recordingFeedback struct {
	cues []types.Cue
}

func (f *recordingFeedback) Play(cue types.Cue) {
	f.cues = append(f.cues, cue)
}

func (f *recordingFeedback) count(cue types.Cue) int {
	n := 0
	for _, c := range f.cues {
		if c == cue {
			n++
		}
	}
	return n
}

// testEnv 管理器测试的公共环境
type testEnv struct {
	world    *entities.World
	timeline *Timeline
	feedback *recordingFeedback
	fight    *fightFlag
	target   *entities.PointTarget
	deps     ManagerDeps
}

// createTestEnv 创建测试用的世界、时间轴和依赖
func createTestEnv(rng utils.RandomSource) *testEnv {
	if rng == nil {
		rng = utils.NewPRNG(42)
	}
	env := &testEnv{
		world:    entities.NewWorld(),
		timeline: NewTimeline(),
		feedback: &recordingFeedback{},
		fight:    &fightFlag{},
		target:   &entities.PointTarget{X: 240, Y: 680, Available: true},
	}
	env.deps = ManagerDeps{
		Factory:  env.world,
		Scene:    env.world,
		Timeline: env.timeline,
		Random:   rng,
		Feedback: env.feedback,
		Fight:    env.fight,
		Target:   env.target,
	}
	return env
}

// removalSink 可接收实体清理通知的管理器
type removalSink interface {
	OnEntityRemoved(id ecs.EntityID) bool
}

// connect 把世界的清理通知转发给管理器
func (env *testEnv) connect(sinks ...removalSink) {
	env.world.OnRemoved(func(id ecs.EntityID, _ entities.RemovalReason) {
		for _, s := range sinks {
			if s.OnEntityRemoved(id) {
				return
			}
		}
	})
}

// countCategory 统计世界中某类实体的数量
func (env *testEnv) countCategory(category types.Category) int {
	n := 0
	for _, id := range env.world.EntityManager().GetEntitiesWith() {
		if !env.world.IsAlive(id) {
			continue
		}
		if kind, ok := env.world.Kind(id); ok && kind.Category == category {
			n++
		}
	}
	return n
}

// runFrames 以固定步长推进时间轴、管理器和世界
func (env *testEnv) runFrames(now *float64, frames int, dt float64, update func(now float64)) {
	for i := 0; i < frames; i++ {
		*now += dt
		env.timeline.Advance(dt)
		update(*now)
		env.world.Step(dt)
	}
}
