package utils

import (
	"math"
	"testing"
)

// TestEaseOutCubic 测试三次方缓出函数
func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.875}, // 1 - (1-0.5)^3
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}

	// 整个过程中位置都不落后于线性
	for p := 0.0; p <= 1.0; p += 0.1 {
		if EaseOutCubic(p) < p-0.001 {
			t.Errorf("EaseOutCubic(%v) 不应该落后于线性值", p)
		}
	}
}

func TestEaseInOutCubic(t *testing.T) {
	tests := []struct {
		input, expected float64
	}{
		{0, 0},
		{0.25, 0.0625}, // 4 * 0.25^3
		{0.5, 0.5},
		{1, 1},
	}
	for _, tt := range tests {
		if got := easeInOutCubic(tt.input); math.Abs(got-tt.expected) > 0.001 {
			t.Errorf("easeInOutCubic(%v) = %v, 期望 %v", tt.input, got, tt.expected)
		}
	}
}

// TestLerp 测试线性插值函数
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a        float64
		b        float64
		t        float64
		expected float64
	}{
		{"起点", 0.0, 100.0, 0.0, 0.0},
		{"中点", 0.0, 100.0, 0.5, 50.0},
		{"终点", 0.0, 100.0, 1.0, 100.0},
		{"负数范围", -50.0, 50.0, 0.5, 0.0},
		{"逆向范围", 100.0, 0.0, 0.5, 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lerp(tt.a, tt.b, tt.t)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}

// TestPulse 脉冲在周期中点达到峰值，两端为 0
func TestPulse(t *testing.T) {
	if got := Pulse(0, 1); math.Abs(got) > 0.001 {
		t.Errorf("Pulse(0, 1) = %v, 期望 0", got)
	}
	if got := Pulse(0.5, 1); math.Abs(got-1) > 0.001 {
		t.Errorf("Pulse(0.5, 1) = %v, 期望 1", got)
	}
	if got := Pulse(2.5, 1); math.Abs(got-1) > 0.001 {
		t.Errorf("Pulse(2.5, 1) = %v, 期望 1（周期重复）", got)
	}
	if got := Pulse(0.3, 0); got != 1 {
		t.Errorf("Pulse with zero period = %v, 期望 1", got)
	}
	for p := 0.0; p < 2; p += 0.05 {
		if v := Pulse(p, 0.8); v < 0 || v > 1 {
			t.Fatalf("Pulse(%v) = %v 超出 [0, 1]", p, v)
		}
	}
}
