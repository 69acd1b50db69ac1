package entities

import (
	"github.com/decker502/starblaster/pkg/ecs"
	"github.com/decker502/starblaster/pkg/types"
)

// SpawnRequest 生成一个实体所需的全部参数
// 工厂只根据这些字段构造实体，生成器不关心实体内部结构
type SpawnRequest struct {
	Category types.Category
	Kind     string  // 具体类型名，如 "large"、"fighter"
	X, Y     float64 // 初始位置
	VX, VY   float64 // 初始速度（像素/秒）
	Radius   float64 // 碰撞半径
	Health   int     // 生命值，0 表示一击即毁
	Lifetime float64 // 最长存在时间（秒），0 表示不限
	Wave     int     // 生成时所在波次
}

// Factory 实体工厂
// 根据生成请求构造可渲染/可碰撞的实体，返回不透明句柄
type Factory interface {
	Create(req SpawnRequest) ecs.EntityID
}

// Scene 场景容器
// 生成器只通过它读取位置和存活状态、移除实体、修改速度
type Scene interface {
	Remove(id ecs.EntityID)
	IsAlive(id ecs.EntityID) bool
	Position(id ecs.EntityID) (x, y float64, ok bool)
	SetVelocity(id ecs.EntityID, vx, vy float64)
}

// TargetProvider 目标提供者（瞄准弹、追踪弹使用）
// 目标不存在时返回 ok=false
type TargetProvider interface {
	TargetPosition() (x, y float64, ok bool)
}

// RemovalReason 实体被移除的原因
type RemovalReason int

const (
	// RemovalDestroyed 被外部逻辑销毁（碰撞、拾取、Boss 击败）
	RemovalDestroyed RemovalReason = iota
	// RemovalLeftScreen 离开屏幕
	RemovalLeftScreen
	// RemovalExpired 生命周期到期
	RemovalExpired
)

func (r RemovalReason) String() string {
	switch r {
	case RemovalDestroyed:
		return "destroyed"
	case RemovalLeftScreen:
		return "left_screen"
	case RemovalExpired:
		return "expired"
	}
	return "unknown"
}

// RemovalListener 实体真正被清理后的回调
type RemovalListener func(id ecs.EntityID, reason RemovalReason)
