package systems

import (
	"github.com/decker502/starblaster/pkg/config"
	"github.com/decker502/starblaster/pkg/entities"
	"github.com/decker502/starblaster/pkg/types"
	"github.com/decker502/starblaster/pkg/utils"
)

// EnemyManager 敌机生成管理器
// 普通波次逐个生成，编队波次交给 FormationSpawner
type EnemyManager struct {
	*waveManager[types.EnemyType]

	formations *FormationSpawner
}

// NewEnemyManager 根据关卡波次创建敌机管理器
func NewEnemyManager(waves []config.WaveConfig, deps ManagerDeps) (*EnemyManager, error) {
	base, err := newWaveManager("EnemyManager", waves, types.ParseEnemyType, true, deps)
	if err != nil {
		return nil, err
	}
	m := &EnemyManager{waveManager: base}
	m.formations = NewFormationSpawner(m.deps, m.track)
	m.spawn = m.spawnEnemy
	return m, nil
}

func (m *EnemyManager) spawnEnemy(ev SpawnEvent[types.EnemyType]) {
	if ev.Formation != types.FormationNone {
		m.formations.Spawn(m.token, ev.Payload, ev.Formation, ev.Count, ev.WaveIndex)
		m.deps.Feedback.Play(types.CueFormation)
		return
	}

	minX, maxX := config.SpawnRangeX()
	x := utils.RandomRange(m.deps.Random, minX, maxX)
	m.track(m.deps.Factory.Create(entities.NewEnemyRequest(ev.Payload, x, config.SpawnY, ev.WaveIndex)))
	m.deps.Feedback.Play(types.CueSpawn)
}

// AllCleared 全部波次已生成、编队成员全部入场且没有存活敌机
func (m *EnemyManager) AllCleared() bool {
	return m.formations.Pending() == 0 && m.waveManager.AllCleared()
}

// PendingMembers 尚未入场的编队成员数量
func (m *EnemyManager) PendingMembers() int {
	return m.formations.Pending()
}

// Reset 重置调度并取消未入场的编队成员
func (m *EnemyManager) Reset() {
	m.waveManager.Reset()
	m.formations.Reset()
}
