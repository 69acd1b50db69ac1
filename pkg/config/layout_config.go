package config

// 布局配置常量
// 本文件定义了竖版射击场景的尺寸和生成区域
// 所有坐标为屏幕坐标（左上角为原点，y 轴向下）
const (
	// ScreenWidth 逻辑屏幕宽度（像素）
	ScreenWidth = 480.0

	// ScreenHeight 逻辑屏幕高度（像素）
	ScreenHeight = 800.0

	// SpawnMarginX 水平生成区域与屏幕左右边缘的间距
	// 避免实体一半出现在屏幕外
	SpawnMarginX = 40.0

	// SpawnY 从屏幕上方入场的实体生成高度（屏幕外）
	SpawnY = -60.0

	// OffscreenMargin 实体越过屏幕边缘多远后视为"离开屏幕"
	OffscreenMargin = 120.0

	// BossAnchorY Boss 入场后停留的高度
	BossAnchorY = 140.0

	// PlayerStartY 玩家初始高度（目标提供者默认位置）
	PlayerStartY = 680.0
)

// SpawnRangeX 返回水平生成区间 [minX, maxX]
func SpawnRangeX() (float64, float64) {
	return SpawnMarginX, ScreenWidth - SpawnMarginX
}

// IsOffscreen 判断坐标是否已离开可视区域（含边距）
// 顶部边距更宽，让刚在屏幕外生成的实体有时间入场
func IsOffscreen(x, y float64) bool {
	return x < -OffscreenMargin || x > ScreenWidth+OffscreenMargin ||
		y < SpawnY-OffscreenMargin || y > ScreenHeight+OffscreenMargin
}
