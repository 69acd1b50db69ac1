package components

// PositionComponent 实体在屏幕坐标系中的位置（像素，y 轴向下）
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 实体速度（像素/秒）
type VelocityComponent struct {
	VX float64
	VY float64
}
