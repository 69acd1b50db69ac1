// Package types 定义共享的基础类型
package types

// Category 生成实体的大类
// 每个管理器只生成一种大类，工厂据此决定实体的外观和碰撞体
type Category int

const (
	// CategoryUnknown 未知类别
	CategoryUnknown Category = iota
	CategoryAsteroid
	CategoryEnemy
	CategoryObstacle
	CategoryCoin
	CategoryPowerUp
	CategoryBoss
	CategoryBossBullet
	CategoryLaserWarning
	CategoryLaserBeam
)

var categoryNames = map[Category]string{
	CategoryAsteroid:     "asteroid",
	CategoryEnemy:        "enemy",
	CategoryObstacle:     "obstacle",
	CategoryCoin:         "coin",
	CategoryPowerUp:      "powerup",
	CategoryBoss:         "boss",
	CategoryBossBullet:   "boss_bullet",
	CategoryLaserWarning: "laser_warning",
	CategoryLaserBeam:    "laser_beam",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}
