package systems

import (
	"github.com/decker502/starblaster/pkg/config"
	"github.com/decker502/starblaster/pkg/entities"
	"github.com/decker502/starblaster/pkg/types"
)

// ObstacleManager 障碍物生成管理器
// 生成位置由 AntiClusterPlacer 选择，避免障碍物扎堆
type ObstacleManager struct {
	*waveManager[types.ObstacleType]

	placer *AntiClusterPlacer
}

// NewObstacleManager 根据关卡波次和放置参数创建障碍物管理器
func NewObstacleManager(waves []config.WaveConfig, placement config.PlacementConfig, deps ManagerDeps) (*ObstacleManager, error) {
	base, err := newWaveManager("ObstacleManager", waves, types.ParseObstacleType, false, deps)
	if err != nil {
		return nil, err
	}
	m := &ObstacleManager{
		waveManager: base,
		placer:      NewAntiClusterPlacer(placement, base.deps.Random),
	}
	m.spawn = m.spawnObstacle
	return m, nil
}

func (m *ObstacleManager) spawnObstacle(ev SpawnEvent[types.ObstacleType]) {
	minX, maxX := config.SpawnRangeX()
	x, _ := m.placer.Place(minX, maxX, ev.Time)
	m.track(m.deps.Factory.Create(entities.NewObstacleRequest(ev.Payload, x, ev.WaveIndex)))
	m.deps.Feedback.Play(types.CueSpawn)
}

// Placer 返回放置器（统计和测试用）
func (m *ObstacleManager) Placer() *AntiClusterPlacer {
	return m.placer
}

// Reset 重置调度和放置历史
func (m *ObstacleManager) Reset() {
	m.waveManager.Reset()
	m.placer.Reset()
}
