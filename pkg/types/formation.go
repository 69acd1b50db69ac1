package types

import "fmt"

// Formation 编队类型
// 空字符串表示非编队波次（逐个按间隔生成）
type Formation string

const (
	FormationNone   Formation = ""
	FormationLine   Formation = "line"
	FormationV      Formation = "v"
	FormationColumn Formation = "column"
)

// ParseFormation 校验编队标记
func ParseFormation(s string) (Formation, error) {
	switch Formation(s) {
	case FormationNone, FormationLine, FormationV, FormationColumn:
		return Formation(s), nil
	}
	return FormationNone, fmt.Errorf("unknown formation %q", s)
}

// Offset 返回第 index 个成员相对编队锚点的偏移
// spacing 为成员间距（像素）
func (f Formation) Offset(index, count int, spacing float64) (dx, dy float64) {
	switch f {
	case FormationLine:
		center := float64(count-1) / 2
		return (float64(index) - center) * spacing, 0
	case FormationV:
		// 0 号在顶点，后续成员左右交替向后展开
		if index == 0 {
			return 0, 0
		}
		rank := float64((index + 1) / 2)
		side := 1.0
		if index%2 == 1 {
			side = -1.0
		}
		return side * rank * spacing, -rank * spacing * 0.75
	case FormationColumn:
		return 0, -float64(index) * spacing
	}
	return 0, 0
}
