package types

import "fmt"

// ObstacleType 障碍物类型
type ObstacleType int

const (
	ObstacleMine ObstacleType = iota + 1
	ObstacleDebris
	ObstacleWall
)

// ParseObstacleType 将配置文件中的障碍物类型字符串转换为 ObstacleType
func ParseObstacleType(s string) (ObstacleType, error) {
	switch s {
	case "mine":
		return ObstacleMine, nil
	case "debris":
		return ObstacleDebris, nil
	case "wall":
		return ObstacleWall, nil
	}
	return 0, fmt.Errorf("unknown obstacle type %q", s)
}

func (o ObstacleType) String() string {
	switch o {
	case ObstacleMine:
		return "mine"
	case ObstacleDebris:
		return "debris"
	case ObstacleWall:
		return "wall"
	}
	return "unknown"
}
