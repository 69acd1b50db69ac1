package entities

import "github.com/decker502/starblaster/pkg/ecs"

// EntityTarget 以场景中的某个实体作为目标
// 实体被销毁后返回不可用
type EntityTarget struct {
	Scene Scene
	ID    ecs.EntityID
}

// TargetPosition 实现 TargetProvider
func (t *EntityTarget) TargetPosition() (float64, float64, bool) {
	if t == nil || t.Scene == nil || t.ID == 0 {
		return 0, 0, false
	}
	return t.Scene.Position(t.ID)
}

// PointTarget 固定坐标目标（无头模拟和测试使用）
type PointTarget struct {
	X, Y      float64
	Available bool
}

// TargetPosition 实现 TargetProvider
func (t *PointTarget) TargetPosition() (float64, float64, bool) {
	if t == nil || !t.Available {
		return 0, 0, false
	}
	return t.X, t.Y, true
}
