package types

import "fmt"

// AsteroidSize 陨石尺寸
type AsteroidSize int

const (
	AsteroidSmall AsteroidSize = iota + 1
	AsteroidMedium
	AsteroidLarge
)

// ParseAsteroidSize 将配置文件中的尺寸字符串转换为 AsteroidSize
func ParseAsteroidSize(s string) (AsteroidSize, error) {
	switch s {
	case "small":
		return AsteroidSmall, nil
	case "medium":
		return AsteroidMedium, nil
	case "large":
		return AsteroidLarge, nil
	}
	return 0, fmt.Errorf("unknown asteroid size %q", s)
}

func (s AsteroidSize) String() string {
	switch s {
	case AsteroidSmall:
		return "small"
	case AsteroidMedium:
		return "medium"
	case AsteroidLarge:
		return "large"
	}
	return "unknown"
}

// Radius 碰撞半径（像素）
func (s AsteroidSize) Radius() float64 {
	switch s {
	case AsteroidSmall:
		return 12
	case AsteroidMedium:
		return 22
	case AsteroidLarge:
		return 36
	}
	return 0
}

// Fragment 陨石被击碎后分裂出的尺寸
// 小陨石不再分裂，返回 false
func (s AsteroidSize) Fragment() (AsteroidSize, bool) {
	switch s {
	case AsteroidLarge:
		return AsteroidMedium, true
	case AsteroidMedium:
		return AsteroidSmall, true
	}
	return 0, false
}
