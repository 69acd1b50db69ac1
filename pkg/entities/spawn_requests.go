package entities

import (
	"github.com/decker502/starblaster/pkg/config"
	"github.com/decker502/starblaster/pkg/types"
)

// NewAsteroidRequest 创建陨石生成请求
func NewAsteroidRequest(size types.AsteroidSize, x, y, vx, vy float64, wave int) SpawnRequest {
	return SpawnRequest{
		Category: types.CategoryAsteroid,
		Kind:     size.String(),
		X:        x,
		Y:        y,
		VX:       vx,
		VY:       vy,
		Radius:   size.Radius(),
		Health:   int(size),
		Wave:     wave,
	}
}

// NewEnemyRequest 创建敌机生成请求（竖直向下飞行）
func NewEnemyRequest(enemy types.EnemyType, x, y float64, wave int) SpawnRequest {
	health := 1
	if enemy == types.EnemyBomber {
		health = 3
	}
	return SpawnRequest{
		Category: types.CategoryEnemy,
		Kind:     enemy.String(),
		X:        x,
		Y:        y,
		VY:       enemy.Speed(),
		Radius:   18,
		Health:   health,
		Wave:     wave,
	}
}

// NewObstacleRequest 创建障碍物生成请求
func NewObstacleRequest(obstacle types.ObstacleType, x float64, wave int) SpawnRequest {
	radius := 16.0
	if obstacle == types.ObstacleWall {
		radius = 40
	}
	return SpawnRequest{
		Category: types.CategoryObstacle,
		Kind:     obstacle.String(),
		X:        x,
		Y:        config.SpawnY,
		VY:       config.ObstacleSpeed,
		Radius:   radius,
		Wave:     wave,
	}
}

// NewCoinRequest 创建金币生成请求
func NewCoinRequest(value types.CoinValue, x float64, wave int) SpawnRequest {
	return SpawnRequest{
		Category: types.CategoryCoin,
		Kind:     value.String(),
		X:        x,
		Y:        config.SpawnY,
		VY:       config.CoinSpeed,
		Radius:   10,
		Wave:     wave,
	}
}

// NewPowerUpRequest 创建道具生成请求
func NewPowerUpRequest(powerUp types.PowerUpType, x float64, wave int) SpawnRequest {
	return SpawnRequest{
		Category: types.CategoryPowerUp,
		Kind:     powerUp.String(),
		X:        x,
		Y:        config.SpawnY,
		VY:       config.PowerUpSpeed,
		Radius:   14,
		Wave:     wave,
	}
}

// NewBossRequest 创建 Boss 生成请求（从屏幕上方缓慢入场）
func NewBossRequest(name string, health int) SpawnRequest {
	return SpawnRequest{
		Category: types.CategoryBoss,
		Kind:     name,
		X:        config.ScreenWidth / 2,
		Y:        config.SpawnY,
		VY:       config.BossEntrySpeed,
		Radius:   60,
		Health:   health,
	}
}

// NewBossBulletRequest 创建 Boss 子弹生成请求
func NewBossBulletRequest(pattern types.AttackPattern, x, y, vx, vy float64) SpawnRequest {
	return SpawnRequest{
		Category: types.CategoryBossBullet,
		Kind:     pattern.String(),
		X:        x,
		Y:        y,
		VX:       vx,
		VY:       vy,
		Radius:   config.BossBulletRadius,
	}
}

// NewLaserWarningRequest 创建激光预警生成请求
func NewLaserWarningRequest(x, y float64) SpawnRequest {
	return SpawnRequest{
		Category: types.CategoryLaserWarning,
		Kind:     types.AttackLaser.String(),
		X:        x,
		Y:        y,
		Radius:   config.LaserWidth / 4,
	}
}

// NewLaserBeamRequest 创建激光束生成请求
func NewLaserBeamRequest(x, y float64) SpawnRequest {
	return SpawnRequest{
		Category: types.CategoryLaserBeam,
		Kind:     types.AttackLaser.String(),
		X:        x,
		Y:        y,
		Radius:   config.LaserWidth / 2,
	}
}
