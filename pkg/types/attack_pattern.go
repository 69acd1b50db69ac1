package types

import "fmt"

// AttackPattern Boss 攻击模式
type AttackPattern int

const (
	AttackStraight AttackPattern = iota + 1
	AttackDouble
	AttackTriple
	AttackSpread
	AttackAimed
	AttackSpiral
	AttackWave
	AttackBurst
	AttackHoming
	AttackLaser
)

// AllAttackPatterns 所有攻击模式（配置未指定时的默认集合）
var AllAttackPatterns = []AttackPattern{
	AttackStraight, AttackDouble, AttackTriple, AttackSpread, AttackAimed,
	AttackSpiral, AttackWave, AttackBurst, AttackHoming, AttackLaser,
}

var attackPatternNames = map[AttackPattern]string{
	AttackStraight: "straight",
	AttackDouble:   "double",
	AttackTriple:   "triple",
	AttackSpread:   "spread",
	AttackAimed:    "aimed",
	AttackSpiral:   "spiral",
	AttackWave:     "wave",
	AttackBurst:    "burst",
	AttackHoming:   "homing",
	AttackLaser:    "laser",
}

// ParseAttackPattern 将配置文件中的攻击模式字符串转换为 AttackPattern
func ParseAttackPattern(s string) (AttackPattern, error) {
	for p, name := range attackPatternNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown attack pattern %q", s)
}

func (p AttackPattern) String() string {
	if name, ok := attackPatternNames[p]; ok {
		return name
	}
	return "unknown"
}
