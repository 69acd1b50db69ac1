package components

import "github.com/decker502/starblaster/pkg/types"

// SpawnKindComponent 记录实体由哪类生成器创建
// 管理器只读取 Category/Kind 用于统计和分裂逻辑，不关心渲染细节
type SpawnKindComponent struct {
	Category types.Category
	Kind     string  // 具体类型名，如 "large"、"fighter"、"gold"
	Radius   float64 // 碰撞半径（像素）
	Wave     int     // 生成时所在波次索引（0-based）
}
