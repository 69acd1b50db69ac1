package config

import "math"

// Boss 子弹参数
const (
	// BossBulletSpeed 普通子弹速度（像素/秒）
	BossBulletSpeed = 220.0

	// BossBulletRadius 子弹碰撞半径
	BossBulletRadius = 6.0

	// DoubleShotOffsetX 双发子弹的水平偏移
	DoubleShotOffsetX = 20.0

	// TripleShotAngle 三连发两侧子弹相对正下方的偏角
	TripleShotAngle = 15 * math.Pi / 180

	// SpreadShotCount 扇形弹数量
	SpreadShotCount = 5

	// SpreadShotArc 扇形弹总张角
	SpreadShotArc = 80 * math.Pi / 180

	// SpiralBulletCount 螺旋弹数量
	SpiralBulletCount = 12

	// SpiralBulletSpacing 螺旋弹发射间隔（秒）
	SpiralBulletSpacing = 0.05

	// WaveBulletCount 波浪弹数量
	WaveBulletCount = 8

	// WaveBulletSpacing 波浪弹发射间隔（秒）
	WaveBulletSpacing = 0.08

	// WaveAmplitude 波浪弹摆动幅度
	WaveAmplitude = 30 * math.Pi / 180

	// BurstBulletCount 环形爆发弹数量
	BurstBulletCount = 16

	// HomingSpeed 追踪弹速度
	HomingSpeed = 160.0

	// HomingTurnFactor 追踪弹每次修正转过角度差的比例
	HomingTurnFactor = 0.1

	// HomingTickInterval 追踪弹修正间隔（秒）
	HomingTickInterval = 0.1

	// HomingMaxTicks 追踪弹最多修正次数，之后直线飞行
	HomingMaxTicks = 30

	// LaserChargeDuration 激光预警持续时间（秒）
	LaserChargeDuration = 1.0

	// LaserBeamDuration 激光持续时间（秒）
	LaserBeamDuration = 1.5

	// LaserWidth 激光宽度（像素）
	LaserWidth = 24.0
)

// 生成物参数
const (
	// AsteroidMinSpeed / AsteroidMaxSpeed 陨石下落速度区间
	AsteroidMinSpeed = 60.0
	AsteroidMaxSpeed = 140.0

	// AsteroidFragmentSpread 陨石碎片的水平分离速度
	AsteroidFragmentSpread = 50.0

	// ObstacleSpeed 障碍物随背景滚动的速度
	ObstacleSpeed = 90.0

	// CoinSpeed 金币下落速度
	CoinSpeed = 110.0

	// PowerUpSpeed 道具下落速度
	PowerUpSpeed = 90.0

	// FormationSpacing 编队成员间距
	FormationSpacing = 48.0

	// FormationMemberDelay 编队成员之间的入场间隔（秒）
	FormationMemberDelay = 0.15

	// BossEntrySpeed Boss 入场速度
	BossEntrySpeed = 80.0
)

// FormationMaxDepth 编队成员在生成高度之上的最大纵向偏移
// 超出的部分压缩到这个深度，避免成员一生成就被判定离屏
const FormationMaxDepth = 100.0
