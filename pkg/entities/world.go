package entities

import (
	"log"

	"github.com/decker502/starblaster/pkg/components"
	"github.com/decker502/starblaster/pkg/config"
	"github.com/decker502/starblaster/pkg/ecs"
	"github.com/decker502/starblaster/pkg/types"
)

// World 基于 EntityManager 的默认场景实现
//
// 职责：
//   - 实现 Factory：把生成请求转换为带组件的实体
//   - 实现 Scene：位置/存活查询、移除、修改速度
//   - Step：推进运动和生命周期，把离屏/过期的实体标记删除
//   - 清理标记删除的实体后通知监听者（生成器据此更新存活集合）
type World struct {
	em        *ecs.EntityManager
	listeners []RemovalListener
	reasons   map[ecs.EntityID]RemovalReason

	// verbose 是否输出详细日志
	verbose bool
}

// NewWorld 创建空的实体世界
func NewWorld() *World {
	return &World{
		em:      ecs.NewEntityManager(),
		reasons: make(map[ecs.EntityID]RemovalReason),
	}
}

// EntityManager 返回底层实体管理器（渲染和测试使用）
func (w *World) EntityManager() *ecs.EntityManager {
	return w.em
}

// SetVerbose 开关详细日志
func (w *World) SetVerbose(verbose bool) {
	w.verbose = verbose
}

// OnRemoved 注册实体清理回调
func (w *World) OnRemoved(listener RemovalListener) {
	w.listeners = append(w.listeners, listener)
}

// Create 根据请求创建实体
func (w *World) Create(req SpawnRequest) ecs.EntityID {
	id := w.em.CreateEntity()

	ecs.AddComponent(w.em, id, &components.PositionComponent{X: req.X, Y: req.Y})
	ecs.AddComponent(w.em, id, &components.VelocityComponent{VX: req.VX, VY: req.VY})
	ecs.AddComponent(w.em, id, &components.SpawnKindComponent{
		Category: req.Category,
		Kind:     req.Kind,
		Radius:   req.Radius,
		Wave:     req.Wave,
	})
	if req.Health > 0 {
		ecs.AddComponent(w.em, id, &components.HealthComponent{
			CurrentHealth: req.Health,
			MaxHealth:     req.Health,
		})
	}
	if req.Lifetime > 0 {
		ecs.AddComponent(w.em, id, &components.LifetimeComponent{MaxLifetime: req.Lifetime})
	}

	if w.verbose {
		log.Printf("[World] Created %s/%s entity %d at (%.1f, %.1f)", req.Category, req.Kind, id, req.X, req.Y)
	}
	return id
}

// Remove 标记实体删除（下一次 Flush 时真正清理并通知）
// 已删除或不存在的实体是无操作
func (w *World) Remove(id ecs.EntityID) {
	w.markRemoved(id, RemovalDestroyed)
}

func (w *World) markRemoved(id ecs.EntityID, reason RemovalReason) {
	if !w.em.Exists(id) {
		return
	}
	w.reasons[id] = reason
	w.em.DestroyEntity(id)
}

// IsAlive 实体是否存活（已标记删除的实体视为死亡）
func (w *World) IsAlive(id ecs.EntityID) bool {
	return w.em.Exists(id)
}

// Position 返回实体位置
func (w *World) Position(id ecs.EntityID) (float64, float64, bool) {
	if !w.em.Exists(id) {
		return 0, 0, false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](w.em, id)
	if !ok {
		return 0, 0, false
	}
	return pos.X, pos.Y, true
}

// SetVelocity 修改实体速度
func (w *World) SetVelocity(id ecs.EntityID, vx, vy float64) {
	if !w.em.Exists(id) {
		return
	}
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](w.em, id); ok {
		vel.VX = vx
		vel.VY = vy
	}
}

// Kind 返回实体的生成类别信息
func (w *World) Kind(id ecs.EntityID) (*components.SpawnKindComponent, bool) {
	return ecs.GetComponent[*components.SpawnKindComponent](w.em, id)
}

// Step 推进一帧：移动、生命周期、离屏检测，然后清理
//
// 参数：
//   - dt: 帧时间（秒）
func (w *World) Step(dt float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.VelocityComponent](w.em) {
		if !w.em.Exists(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](w.em, id)
		pos.X += vel.VX * dt
		pos.Y += vel.VY * dt

		if config.IsOffscreen(pos.X, pos.Y) {
			w.markRemoved(id, RemovalLeftScreen)
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](w.em) {
		if !w.em.Exists(id) {
			continue
		}
		life, _ := ecs.GetComponent[*components.LifetimeComponent](w.em, id)
		life.CurrentLifetime += dt
		if life.CurrentLifetime >= life.MaxLifetime {
			life.IsExpired = true
			w.markRemoved(id, RemovalExpired)
		}
	}

	w.Flush()
}

// Flush 清理所有标记删除的实体并通知监听者
func (w *World) Flush() {
	for _, id := range w.em.RemoveMarkedEntities() {
		reason := w.reasons[id]
		delete(w.reasons, id)
		if w.verbose {
			log.Printf("[World] Entity %d removed (%s)", id, reason)
		}
		for _, listener := range w.listeners {
			listener(id, reason)
		}
	}
}

// Clear 移除所有实体（关卡重开时调用），同样会通知监听者
func (w *World) Clear() {
	for _, id := range w.em.GetEntitiesWith() {
		w.markRemoved(id, RemovalDestroyed)
	}
	w.Flush()
}

// Count 当前存活实体数量
func (w *World) Count() int {
	n := 0
	for _, id := range w.em.GetEntitiesWith() {
		if w.em.Exists(id) {
			n++
		}
	}
	return n
}

// EntitiesOf 返回某一大类的所有存活实体（按ID升序）
func (w *World) EntitiesOf(category types.Category) []ecs.EntityID {
	out := make([]ecs.EntityID, 0)
	for _, id := range ecs.GetEntitiesWith1[*components.SpawnKindComponent](w.em) {
		if !w.em.Exists(id) {
			continue
		}
		kind, _ := ecs.GetComponent[*components.SpawnKindComponent](w.em, id)
		if kind.Category == category {
			out = append(out, id)
		}
	}
	return out
}
