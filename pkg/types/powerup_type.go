package types

import "fmt"

// PowerUpType 道具类型
type PowerUpType int

const (
	PowerUpShield PowerUpType = iota + 1
	PowerUpRapidFire
	PowerUpSpreadShot
	PowerUpMagnet
	PowerUpExtraLife
)

var powerUpNames = map[PowerUpType]string{
	PowerUpShield:     "shield",
	PowerUpRapidFire:  "rapidfire",
	PowerUpSpreadShot: "spreadshot",
	PowerUpMagnet:     "magnet",
	PowerUpExtraLife:  "life",
}

// ParsePowerUpType 将配置文件中的道具类型字符串转换为 PowerUpType
func ParsePowerUpType(s string) (PowerUpType, error) {
	for t, name := range powerUpNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown power-up type %q", s)
}

func (p PowerUpType) String() string {
	if name, ok := powerUpNames[p]; ok {
		return name
	}
	return "unknown"
}
