package systems

import (
	"log"

	"github.com/decker502/starblaster/pkg/config"
	"github.com/decker502/starblaster/pkg/ecs"
	"github.com/decker502/starblaster/pkg/entities"
	"github.com/decker502/starblaster/pkg/types"
	"github.com/decker502/starblaster/pkg/utils"
)

// AsteroidManager 陨石生成管理器
//
// 陨石从屏幕上方随机位置落下，Boss 战期间暂停生成。
// 大陨石被击碎后分裂为两块中陨石，中陨石分裂为两块小陨石，碎片计入同一个存活集合。
type AsteroidManager struct {
	*waveManager[types.AsteroidSize]

	sizes map[ecs.EntityID]types.AsteroidSize
}

// NewAsteroidManager 根据关卡波次创建陨石管理器
func NewAsteroidManager(waves []config.WaveConfig, deps ManagerDeps) (*AsteroidManager, error) {
	base, err := newWaveManager("AsteroidManager", waves, types.ParseAsteroidSize, false, deps)
	if err != nil {
		return nil, err
	}
	m := &AsteroidManager{
		waveManager: base,
		sizes:       make(map[ecs.EntityID]types.AsteroidSize),
	}
	m.spawn = m.spawnAsteroid
	m.gated = m.deps.Fight.BossFightActive
	return m, nil
}

func (m *AsteroidManager) spawnAsteroid(ev SpawnEvent[types.AsteroidSize]) {
	minX, maxX := config.SpawnRangeX()
	x := utils.RandomRange(m.deps.Random, minX, maxX)
	vy := utils.RandomRange(m.deps.Random, config.AsteroidMinSpeed, config.AsteroidMaxSpeed)
	m.create(ev.Payload, x, config.SpawnY, 0, vy, ev.WaveIndex)
	m.deps.Feedback.Play(types.CueSpawn)
}

func (m *AsteroidManager) create(size types.AsteroidSize, x, y, vx, vy float64, wave int) ecs.EntityID {
	id := m.deps.Factory.Create(entities.NewAsteroidRequest(size, x, y, vx, vy, wave))
	m.sizes[id] = size
	m.track(id)
	return id
}

// Destroy 击碎陨石，返回分裂出的碎片
// 不属于本管理器或已被移除的实体返回 nil
func (m *AsteroidManager) Destroy(id ecs.EntityID) []ecs.EntityID {
	size, ok := m.sizes[id]
	if !ok || !m.deps.Scene.IsAlive(id) {
		return nil
	}
	x, y, hasPos := m.deps.Scene.Position(id)
	m.deps.Scene.Remove(id)

	fragment, splits := size.Fragment()
	if !splits || !hasPos {
		return nil
	}

	vy := utils.RandomRange(m.deps.Random, config.AsteroidMinSpeed, config.AsteroidMaxSpeed)
	fragments := []ecs.EntityID{
		m.create(fragment, x, y, -config.AsteroidFragmentSpread, vy, -1),
		m.create(fragment, x, y, config.AsteroidFragmentSpread, vy, -1),
	}
	m.deps.Feedback.Play(types.CueAsteroidSplit)
	if m.verbose {
		log.Printf("[AsteroidManager] %s asteroid %d split into %v", size, id, fragments)
	}
	return fragments
}

// OnEntityRemoved 实体离屏或被销毁后调用
func (m *AsteroidManager) OnEntityRemoved(id ecs.EntityID) bool {
	delete(m.sizes, id)
	return m.waveManager.OnEntityRemoved(id)
}

// Size 返回陨石尺寸
func (m *AsteroidManager) Size(id ecs.EntityID) (types.AsteroidSize, bool) {
	size, ok := m.sizes[id]
	return size, ok
}

// Reset 重置调度和尺寸记录
func (m *AsteroidManager) Reset() {
	m.waveManager.Reset()
	clear(m.sizes)
}
