package components

import "github.com/decker502/starblaster/pkg/types"

// BossPhase Boss 生命周期阶段
type BossPhase int

const (
	BossWaiting  BossPhase = iota // 等待其他生成器清场
	BossEntering                  // 从屏幕上方入场
	BossFighting                  // 停在锚点，攻击循环中
	BossDefeated                  // 已被击败（终态）
)

func (p BossPhase) String() string {
	switch p {
	case BossWaiting:
		return "waiting"
	case BossEntering:
		return "entering"
	case BossFighting:
		return "fighting"
	case BossDefeated:
		return "defeated"
	}
	return "unknown"
}

// BossComponent Boss 的运行时数据
type BossComponent struct {
	Name          string
	Patterns      []types.AttackPattern
	Phase         BossPhase
	CurrentHealth int
	MaxHealth     int

	// ClearedAt 其他生成器全部清场的时间，-1 表示尚未清场
	ClearedAt float64
}
