package systems

import (
	"fmt"
	"log"

	"github.com/decker502/starblaster/pkg/config"
	"github.com/decker502/starblaster/pkg/ecs"
	"github.com/decker502/starblaster/pkg/types"
)

// ManagerStats 管理器统计快照（模拟器和沙盒显示用）
type ManagerStats struct {
	Name     string
	Wave     int // 当前波次索引（0-based），完成后等于 Waves
	Waves    int
	Spawned  int
	Planned  int
	Live     int
	Complete bool
}

// Clearable 可查询是否已清场的管理器
type Clearable interface {
	AllCleared() bool
}

// waveManager 五类波次管理器的公共部分
//
// 持有一个调度器和一个存活集合：
//   - Update 推进调度器，收到事件后交给具体管理器的 spawn
//   - 实体被场景清理时从存活集合移除
//   - 调度器完成且存活集合为空时视为清场
type waveManager[P any] struct {
	name     string
	deps     ManagerDeps
	schedule *SpawnScheduler[P]
	live     *LiveSet
	token    *CancelToken

	spawn func(ev SpawnEvent[P])

	// gated 返回 true 时跳过本帧调度（如 Boss 战期间）
	gated func() bool

	verbose bool
}

// newWaveManager 构建波次表和调度器
//
// allowFormation 为 false 时拒绝带编队标记的波次：
// 只有敌机按 Count 展开编队成员，其他管理器每个事件只生成一个实体。
func newWaveManager[P any](name string, cfgs []config.WaveConfig, parse func(string) (P, error), allowFormation bool, deps ManagerDeps) (*waveManager[P], error) {
	waves, err := BuildWaves(cfgs, parse)
	if err != nil {
		return nil, err
	}
	if !allowFormation {
		for i, w := range waves {
			if w.Formation != types.FormationNone {
				return nil, fmt.Errorf("%w: %s wave %d: formation %q is only supported for enemy waves", ErrInvalidWave, name, i, w.Formation)
			}
		}
	}
	schedule, err := NewSpawnScheduler(name, waves)
	if err != nil {
		return nil, err
	}
	return &waveManager[P]{
		name:     name,
		deps:     deps.withDefaults(),
		schedule: schedule,
		live:     NewLiveSet(),
		token:    NewCancelToken(name),
	}, nil
}

// SetVerbose 开关详细日志
func (m *waveManager[P]) SetVerbose(verbose bool) {
	m.verbose = verbose
	m.schedule.SetVerbose(verbose)
}

// Update 推进波次调度
//
// 参数：
//   - now: 当前关卡时间（秒）
func (m *waveManager[P]) Update(now float64) {
	if m.gated != nil && m.gated() {
		return
	}
	if ev, ok := m.schedule.Update(now); ok {
		m.spawn(ev)
	}
}

// track 记录新实体
func (m *waveManager[P]) track(id ecs.EntityID) {
	m.live.Track(id)
	if m.verbose {
		log.Printf("[%s] Tracking entity %d (%d live)", m.name, id, m.live.Count())
	}
}

// OnEntityRemoved 实体离屏或被销毁后调用
// 返回该实体是否属于本管理器
func (m *waveManager[P]) OnEntityRemoved(id ecs.EntityID) bool {
	return m.live.Untrack(id)
}

// Destroy 销毁本管理器生成的实体（碰撞、拾取）
// 不属于本管理器或已被移除的实体返回 false
func (m *waveManager[P]) Destroy(id ecs.EntityID) bool {
	if !m.live.Contains(id) || !m.deps.Scene.IsAlive(id) {
		return false
	}
	m.deps.Scene.Remove(id)
	return true
}

// Owns 实体是否由本管理器生成且仍被跟踪
func (m *waveManager[P]) Owns(id ecs.EntityID) bool {
	return m.live.Contains(id)
}

// AllCleared 全部波次已生成且没有存活实体
func (m *waveManager[P]) AllCleared() bool {
	return AllCleared(m.schedule, m.live)
}

// IsComplete 全部波次是否已生成
func (m *waveManager[P]) IsComplete() bool {
	return m.schedule.IsComplete()
}

// LiveCount 存活实体数量
func (m *waveManager[P]) LiveCount() int {
	return m.live.Count()
}

// Stats 返回统计快照
func (m *waveManager[P]) Stats() ManagerStats {
	wave, waves := m.schedule.CurrentWave()
	return ManagerStats{
		Name:     m.name,
		Wave:     wave,
		Waves:    waves,
		Spawned:  m.schedule.TotalSpawned(),
		Planned:  m.schedule.TotalPlanned(),
		Live:     m.live.Count(),
		Complete: m.schedule.IsComplete(),
	}
}

// Reset 重置调度并取消挂起的回调（关卡重开时调用）
// 场景中的实体由调用方统一清理
func (m *waveManager[P]) Reset() {
	m.token.Cancel()
	m.token = NewCancelToken(m.name)
	m.schedule.Reset()
	m.live.Clear()
	log.Printf("[%s] Reset", m.name)
}
