package systems

import (
	"github.com/decker502/starblaster/pkg/config"
	"github.com/decker502/starblaster/pkg/ecs"
	"github.com/decker502/starblaster/pkg/entities"
	"github.com/decker502/starblaster/pkg/types"
	"github.com/decker502/starblaster/pkg/utils"
)

// CoinManager 金币生成管理器
// Boss 战期间暂停生成
type CoinManager struct {
	*waveManager[types.CoinValue]

	values map[ecs.EntityID]types.CoinValue
}

// NewCoinManager 根据关卡波次创建金币管理器
func NewCoinManager(waves []config.WaveConfig, deps ManagerDeps) (*CoinManager, error) {
	base, err := newWaveManager("CoinManager", waves, types.ParseCoinValue, false, deps)
	if err != nil {
		return nil, err
	}
	m := &CoinManager{
		waveManager: base,
		values:      make(map[ecs.EntityID]types.CoinValue),
	}
	m.spawn = m.spawnCoin
	m.gated = m.deps.Fight.BossFightActive
	return m, nil
}

func (m *CoinManager) spawnCoin(ev SpawnEvent[types.CoinValue]) {
	minX, maxX := config.SpawnRangeX()
	x := utils.RandomRange(m.deps.Random, minX, maxX)
	id := m.deps.Factory.Create(entities.NewCoinRequest(ev.Payload, x, ev.WaveIndex))
	m.values[id] = ev.Payload
	m.track(id)
}

// Collect 拾取金币，返回面值
// 已被拾取或不属于本管理器的实体返回 (0, false)
func (m *CoinManager) Collect(id ecs.EntityID) (int, bool) {
	value, ok := m.values[id]
	if !ok || !m.Destroy(id) {
		return 0, false
	}
	m.deps.Feedback.Play(types.CueCoinCollected)
	return int(value), true
}

// OnEntityRemoved 实体离屏或被拾取后调用
func (m *CoinManager) OnEntityRemoved(id ecs.EntityID) bool {
	delete(m.values, id)
	return m.waveManager.OnEntityRemoved(id)
}

// Reset 重置调度和面值记录
func (m *CoinManager) Reset() {
	m.waveManager.Reset()
	clear(m.values)
}

// PowerUpManager 道具生成管理器
type PowerUpManager struct {
	*waveManager[types.PowerUpType]

	kinds map[ecs.EntityID]types.PowerUpType
}

// NewPowerUpManager 根据关卡波次创建道具管理器
func NewPowerUpManager(waves []config.WaveConfig, deps ManagerDeps) (*PowerUpManager, error) {
	base, err := newWaveManager("PowerUpManager", waves, types.ParsePowerUpType, false, deps)
	if err != nil {
		return nil, err
	}
	m := &PowerUpManager{
		waveManager: base,
		kinds:       make(map[ecs.EntityID]types.PowerUpType),
	}
	m.spawn = m.spawnPowerUp
	return m, nil
}

func (m *PowerUpManager) spawnPowerUp(ev SpawnEvent[types.PowerUpType]) {
	minX, maxX := config.SpawnRangeX()
	x := utils.RandomRange(m.deps.Random, minX, maxX)
	id := m.deps.Factory.Create(entities.NewPowerUpRequest(ev.Payload, x, ev.WaveIndex))
	m.kinds[id] = ev.Payload
	m.track(id)
	m.deps.Feedback.Play(types.CueSpawn)
}

// Collect 拾取道具，返回道具类型
func (m *PowerUpManager) Collect(id ecs.EntityID) (types.PowerUpType, bool) {
	kind, ok := m.kinds[id]
	if !ok || !m.Destroy(id) {
		return 0, false
	}
	m.deps.Feedback.Play(types.CuePowerUpCollected)
	return kind, true
}

// OnEntityRemoved 实体离屏或被拾取后调用
func (m *PowerUpManager) OnEntityRemoved(id ecs.EntityID) bool {
	delete(m.kinds, id)
	return m.waveManager.OnEntityRemoved(id)
}

// Reset 重置调度和类型记录
func (m *PowerUpManager) Reset() {
	m.waveManager.Reset()
	clear(m.kinds)
}
