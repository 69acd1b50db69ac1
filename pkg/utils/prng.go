package utils

import (
	"math/rand"
	"time"
)

// RandomSource 可注入的随机数来源
// 攻击模式选择、生成位置等随机逻辑都通过它取数，测试中可以固定种子或替换实现
type RandomSource interface {
	// Float64 返回 [0.0, 1.0) 的随机数
	Float64() float64
	// Intn 返回 [0, n) 的随机整数
	Intn(n int) int
}

// PRNG 基于 math/rand 的可复现随机数源
type PRNG struct {
	rng *rand.Rand
}

// NewPRNG 创建指定种子的随机数源
// 种子为 0 时使用当前时间
func NewPRNG(seed int64) *PRNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNG{rng: rand.New(rand.NewSource(seed))}
}

func (p *PRNG) Float64() float64 { return p.rng.Float64() }

func (p *PRNG) Intn(n int) int { return p.rng.Intn(n) }

// RandomRange 返回 [min, max] 区间内的均匀随机数
// max <= min 时直接返回 min
func RandomRange(src RandomSource, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + src.Float64()*(max-min)
}
