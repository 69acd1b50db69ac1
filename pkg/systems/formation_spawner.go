package systems

import (
	"log"
	"math"

	"github.com/decker502/starblaster/pkg/config"
	"github.com/decker502/starblaster/pkg/ecs"
	"github.com/decker502/starblaster/pkg/entities"
	"github.com/decker502/starblaster/pkg/types"
	"github.com/decker502/starblaster/pkg/utils"
)

// FormationSpawner 编队生成器
//
// 调度器把整个编队波次作为一个事件发出，这里负责成员的入场节奏：
// 0 号成员立即生成，其余成员每隔 FormationMemberDelay 秒生成一个。
// 尚未入场的成员计入 Pending，管理器清场判断需要等它归零。
type FormationSpawner struct {
	factory  entities.Factory
	timeline *Timeline
	rng      utils.RandomSource
	track    func(ecs.EntityID)

	pending int
}

// NewFormationSpawner 创建编队生成器
// track 在每个成员生成后调用（通常是管理器的存活集合）
func NewFormationSpawner(deps ManagerDeps, track func(ecs.EntityID)) *FormationSpawner {
	deps = deps.withDefaults()
	return &FormationSpawner{
		factory:  deps.Factory,
		timeline: deps.Timeline,
		rng:      deps.Random,
		track:    track,
	}
}

// Spawn 生成一个编队
//
// 参数：
//   - token: 所属管理器的取消令牌，取消后剩余成员不再入场
//   - enemy: 成员类型
//   - formation: 编队形状
//   - count: 成员数量
//   - wave: 波次索引
func (fs *FormationSpawner) Spawn(token *CancelToken, enemy types.EnemyType, formation types.Formation, count, wave int) {
	if count <= 0 {
		return
	}
	anchorX := fs.anchorX(formation, count)

	member := func(i int) {
		dx, dy := formation.Offset(i, count, config.FormationSpacing)
		y := config.SpawnY + math.Max(dy, -config.FormationMaxDepth)
		fs.track(fs.factory.Create(entities.NewEnemyRequest(enemy, anchorX+dx, y, wave)))
	}

	member(0)
	if count == 1 {
		return
	}

	fs.pending += count - 1
	fs.timeline.Repeat(token, config.FormationMemberDelay, count-1, func(i int) {
		fs.pending--
		member(i + 1)
	})
	log.Printf("[FormationSpawner] %q formation of %d %s at x=%.1f", formation, count, enemy, anchorX)
}

// anchorX 在保证整个编队都在生成区间内的前提下随机选择锚点
// 编队比区间还宽时居中
func (fs *FormationSpawner) anchorX(formation types.Formation, count int) float64 {
	minDX, maxDX := 0.0, 0.0
	for i := 0; i < count; i++ {
		dx, _ := formation.Offset(i, count, config.FormationSpacing)
		minDX = math.Min(minDX, dx)
		maxDX = math.Max(maxDX, dx)
	}

	minX, maxX := config.SpawnRangeX()
	lo, hi := minX-minDX, maxX-maxDX
	if lo > hi {
		return (minX + maxX) / 2
	}
	return utils.RandomRange(fs.rng, lo, hi)
}

// Pending 已预约但尚未入场的成员数量
func (fs *FormationSpawner) Pending() int {
	return fs.pending
}

// Reset 丢弃挂起成员的计数（对应令牌由管理器取消）
func (fs *FormationSpawner) Reset() {
	fs.pending = 0
}
