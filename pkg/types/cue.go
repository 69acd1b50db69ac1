package types

import "fmt"

// Cue 声音/震动反馈事件
// 核心逻辑只负责发出事件，播放失败由反馈实现自行忽略
type Cue int

const (
	CueSpawn Cue = iota + 1
	CueFormation
	CueAsteroidSplit
	CueCoinCollected
	CuePowerUpCollected
	CueBossWarning
	CueBossAttack
	CueBossHit
	CueBossDefeated
	CueLaserCharge
)

var cueNames = map[Cue]string{
	CueSpawn:            "spawn",
	CueFormation:        "formation",
	CueAsteroidSplit:    "asteroid_split",
	CueCoinCollected:    "coin_collected",
	CuePowerUpCollected: "powerup_collected",
	CueBossWarning:      "boss_warning",
	CueBossAttack:       "boss_attack",
	CueBossHit:          "boss_hit",
	CueBossDefeated:     "boss_defeated",
	CueLaserCharge:      "laser_charge",
}

// ParseCue 将反馈事件名（如 "spawn"）转换为 Cue
func ParseCue(s string) (Cue, error) {
	for c, name := range cueNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown cue %q", s)
}

func (c Cue) String() string {
	if name, ok := cueNames[c]; ok {
		return name
	}
	return "unknown"
}
