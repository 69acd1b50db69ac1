package utils

import "math"

// 缓动函数
// 输入进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]，沙盒用来做警告闪烁和血条过渡

// EaseOutCubic 三次方缓出：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// easeInOutCubic 三次方缓入缓出
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Pulse 周期性脉冲：每个周期内 0 → 1 → 0，两端用 easeInOutCubic 平滑
// period <= 0 时恒为 1
func Pulse(elapsed, period float64) float64 {
	if period <= 0 {
		return 1
	}
	phase := math.Mod(elapsed, period) / period
	if phase < 0 {
		phase += 1
	}
	if phase < 0.5 {
		return easeInOutCubic(phase * 2)
	}
	return easeInOutCubic((1 - phase) * 2)
}
