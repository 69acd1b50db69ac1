package types

import "fmt"

// EnemyType 敌机类型
type EnemyType int

const (
	EnemyFighter EnemyType = iota + 1 // 战斗机：直线下落
	EnemyBomber                       // 轰炸机：慢速、血厚
	EnemyKamikaze                     // 自杀机：高速俯冲
)

// ParseEnemyType 将配置文件中的敌机类型字符串转换为 EnemyType
func ParseEnemyType(s string) (EnemyType, error) {
	switch s {
	case "fighter":
		return EnemyFighter, nil
	case "bomber":
		return EnemyBomber, nil
	case "kamikaze":
		return EnemyKamikaze, nil
	}
	return 0, fmt.Errorf("unknown enemy type %q", s)
}

func (e EnemyType) String() string {
	switch e {
	case EnemyFighter:
		return "fighter"
	case EnemyBomber:
		return "bomber"
	case EnemyKamikaze:
		return "kamikaze"
	}
	return "unknown"
}

// Speed 下落速度（像素/秒）
func (e EnemyType) Speed() float64 {
	switch e {
	case EnemyFighter:
		return 140
	case EnemyBomber:
		return 80
	case EnemyKamikaze:
		return 260
	}
	return 100
}
