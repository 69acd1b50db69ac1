package systems

import (
	"math"

	"github.com/decker502/starblaster/pkg/config"
	"github.com/decker502/starblaster/pkg/ecs"
	"github.com/decker502/starblaster/pkg/entities"
	"github.com/decker502/starblaster/pkg/types"
	"github.com/decker502/starblaster/pkg/utils"
)

// straightDown 屏幕坐标系中正下方的角度
const straightDown = math.Pi / 2

// BulletPatterns Boss 弹幕生成器
//
// 每种攻击模式同步生成首批子弹，需要分时生成的部分（螺旋、波浪、追踪修正、激光）
// 预约在时间轴上，全部挂在 Boss 的取消令牌下。
// Boss 被击败后令牌取消，挂起的回调不再触发；Cleanup 移除激光预警和激光束。
type BulletPatterns struct {
	factory  entities.Factory
	scene    entities.Scene
	target   entities.TargetProvider
	timeline *Timeline
	token    *CancelToken
	feedback Feedback

	// origin 返回当前发射点（Boss 位置），Boss 不存在时 ok=false
	origin func() (x, y float64, ok bool)

	bullets *LiveSet // 已发射且仍存活的子弹
	hazards *LiveSet // 激光预警和激光束
}

// NewBulletPatterns 创建弹幕生成器
func NewBulletPatterns(deps ManagerDeps, token *CancelToken, origin func() (float64, float64, bool)) *BulletPatterns {
	deps = deps.withDefaults()
	return &BulletPatterns{
		factory:  deps.Factory,
		scene:    deps.Scene,
		target:   deps.Target,
		timeline: deps.Timeline,
		token:    token,
		feedback: deps.Feedback,
		origin:   origin,
		bullets:  NewLiveSet(),
		hazards:  NewLiveSet(),
	}
}

// Fire 执行一次攻击模式
// 返回本次同步生成的实体数量（分时生成的部分不计入）
func (bp *BulletPatterns) Fire(pattern types.AttackPattern) int {
	ox, oy, ok := bp.origin()
	if !ok {
		return 0
	}

	switch pattern {
	case types.AttackStraight:
		bp.shoot(pattern, ox, oy, straightDown)
		return 1

	case types.AttackDouble:
		bp.shoot(pattern, ox-config.DoubleShotOffsetX, oy, straightDown)
		bp.shoot(pattern, ox+config.DoubleShotOffsetX, oy, straightDown)
		return 2

	case types.AttackTriple:
		for _, offset := range []float64{-config.TripleShotAngle, 0, config.TripleShotAngle} {
			bp.shoot(pattern, ox, oy, straightDown+offset)
		}
		return 3

	case types.AttackSpread:
		step := config.SpreadShotArc / float64(config.SpreadShotCount-1)
		start := straightDown - config.SpreadShotArc/2
		for i := 0; i < config.SpreadShotCount; i++ {
			bp.shoot(pattern, ox, oy, start+float64(i)*step)
		}
		return config.SpreadShotCount

	case types.AttackAimed:
		bp.shoot(pattern, ox, oy, bp.aimAngle(ox, oy))
		return 1

	case types.AttackSpiral:
		return bp.sequence(pattern, config.SpiralBulletCount, config.SpiralBulletSpacing, spiralAngle)

	case types.AttackWave:
		return bp.sequence(pattern, config.WaveBulletCount, config.WaveBulletSpacing, waveAngle)

	case types.AttackBurst:
		for i := 0; i < config.BurstBulletCount; i++ {
			bp.shoot(pattern, ox, oy, float64(i)*2*math.Pi/config.BurstBulletCount)
		}
		return config.BurstBulletCount

	case types.AttackHoming:
		bp.homing(ox, oy)
		return 1

	case types.AttackLaser:
		bp.laser(ox, oy)
		return 1
	}
	return 0
}

// spiralAngle 螺旋弹第 i 发的角度：从正下方开始转一整圈
func spiralAngle(i int) float64 {
	return straightDown + float64(i)*2*math.Pi/config.SpiralBulletCount
}

// waveAngle 波浪弹第 i 发的角度：围绕正下方做一个周期的正弦摆动
func waveAngle(i int) float64 {
	return straightDown + config.WaveAmplitude*math.Sin(float64(i)*2*math.Pi/config.WaveBulletCount)
}

// sequence 第 0 发立即生成，其余每隔 spacing 秒生成一发
func (bp *BulletPatterns) sequence(pattern types.AttackPattern, count int, spacing float64, angle func(int) float64) int {
	ox, oy, _ := bp.origin()
	bp.shoot(pattern, ox, oy, angle(0))

	bp.timeline.Repeat(bp.token, spacing, count-1, func(i int) {
		x, y, ok := bp.origin()
		if !ok {
			return
		}
		bp.shoot(pattern, x, y, angle(i+1))
	})
	return 1
}

// aimAngle 指向目标的角度，目标不可用时返回正下方
func (bp *BulletPatterns) aimAngle(ox, oy float64) float64 {
	if bp.target == nil {
		return straightDown
	}
	tx, ty, ok := bp.target.TargetPosition()
	if !ok {
		return straightDown
	}
	dx, dy, ok := utils.Direction(ox, oy, tx, ty)
	if !ok {
		return straightDown
	}
	return utils.AngleOf(dx, dy)
}

// homing 发射追踪弹
// 每 HomingTickInterval 秒按转向系数修正一次方向，最多 HomingMaxTicks 次，之后直线飞行
// 子弹被销毁后整条修正链随之取消
func (bp *BulletPatterns) homing(ox, oy float64) {
	angle := bp.aimAngle(ox, oy)
	id := bp.shootAt(types.AttackHoming, ox, oy, angle, config.HomingSpeed)

	var handle *TimerHandle
	handle = bp.timeline.Repeat(bp.token, config.HomingTickInterval, config.HomingMaxTicks, func(int) {
		if !bp.scene.IsAlive(id) {
			handle.Cancel()
			return
		}
		if bp.target == nil {
			return
		}
		tx, ty, ok := bp.target.TargetPosition()
		if !ok {
			return
		}
		bx, by, ok := bp.scene.Position(id)
		if !ok {
			return
		}
		angle = homingHeading(angle, bx, by, tx, ty)
		vx, vy := utils.VelocityFromAngle(angle, config.HomingSpeed)
		bp.scene.SetVelocity(id, vx, vy)
	})
}

// homingHeading 追踪弹的一次方向修正
// 角度差先归一化到 (-π, π]，再乘以转向系数
func homingHeading(current, bx, by, tx, ty float64) float64 {
	desired := utils.AngleOf(tx-bx, ty-by)
	return utils.SteerToward(current, desired, config.HomingTurnFactor)
}

// laser 两段式激光：先显示预警，预警结束后生成激光束，持续一段时间后移除
func (bp *BulletPatterns) laser(ox, oy float64) {
	warning := bp.factory.Create(entities.NewLaserWarningRequest(ox, oy))
	bp.hazards.Track(warning)
	bp.feedback.Play(types.CueLaserCharge)

	bp.timeline.After(bp.token, config.LaserChargeDuration, func() {
		bp.removeHazard(warning)

		_, y, ok := bp.origin()
		if !ok {
			return
		}
		beam := bp.factory.Create(entities.NewLaserBeamRequest(ox, y))
		bp.hazards.Track(beam)

		bp.timeline.After(bp.token, config.LaserBeamDuration, func() {
			bp.removeHazard(beam)
		})
	})
}

func (bp *BulletPatterns) removeHazard(id ecs.EntityID) {
	if bp.hazards.Untrack(id) {
		bp.scene.Remove(id)
	}
}

func (bp *BulletPatterns) shoot(pattern types.AttackPattern, x, y, angle float64) ecs.EntityID {
	return bp.shootAt(pattern, x, y, angle, config.BossBulletSpeed)
}

func (bp *BulletPatterns) shootAt(pattern types.AttackPattern, x, y, angle, speed float64) ecs.EntityID {
	vx, vy := utils.VelocityFromAngle(angle, speed)
	id := bp.factory.Create(entities.NewBossBulletRequest(pattern, x, y, vx, vy))
	bp.bullets.Track(id)
	return id
}

// OnEntityRemoved 子弹或激光被场景清理时更新集合
func (bp *BulletPatterns) OnEntityRemoved(id ecs.EntityID) bool {
	return bp.bullets.Untrack(id) || bp.hazards.Untrack(id)
}

// Cleanup 移除所有激光预警和激光束（Boss 被击败或场景销毁时调用）
// 已发射的普通子弹继续飞行直到离屏
func (bp *BulletPatterns) Cleanup() {
	for _, id := range bp.hazards.IDs() {
		bp.scene.Remove(id)
	}
	bp.hazards.Clear()
}

// LiveBullets 存活子弹数量
func (bp *BulletPatterns) LiveBullets() int {
	return bp.bullets.Count()
}

// LiveHazards 存活的激光预警/激光束数量
func (bp *BulletPatterns) LiveHazards() int {
	return bp.hazards.Count()
}
