package utils

import "math"

// NormalizeAngle 将角度（弧度）归一化到 (-π, π] 区间
//
// 追踪弹转向时必须先归一化角度差，否则在 ±π 附近会绕远路
// 例如当前角度 3.1、目标角度 -3.1 时，差值应为 +0.083 而不是 -6.2
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// SteerToward 按转向系数把 current 向 target 修正一步
// 返回修正后的角度（已归一化）
func SteerToward(current, target, turnFactor float64) float64 {
	diff := NormalizeAngle(target - current)
	return NormalizeAngle(current + diff*turnFactor)
}

// Direction 返回从 (fromX, fromY) 指向 (toX, toY) 的单位向量
// 两点重合时返回 ok=false
func Direction(fromX, fromY, toX, toY float64) (dx, dy float64, ok bool) {
	dx = toX - fromX
	dy = toY - fromY
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		return 0, 0, false
	}
	return dx / length, dy / length, true
}

// VelocityFromAngle 将角度和速度转换为速度分量
// 屏幕坐标系：y 轴向下，角度 π/2 表示正下方
func VelocityFromAngle(angle, speed float64) (vx, vy float64) {
	return math.Cos(angle) * speed, math.Sin(angle) * speed
}

// AngleOf 返回速度向量的角度
func AngleOf(vx, vy float64) float64 {
	return math.Atan2(vy, vx)
}
