package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decker502/starblaster/pkg/types"
)

// 配置校验错误类别
var (
	// ErrInvalidLevel 关卡级字段不合法（缺少ID、没有任何波次等）
	ErrInvalidLevel = errors.New("invalid level config")
	// ErrInvalidWave 波次字段不合法（数量、延迟、间隔、类型）
	ErrInvalidWave = errors.New("invalid wave config")
	// ErrInvalidBoss Boss 配置不合法
	ErrInvalidBoss = errors.New("invalid boss config")
)

// LevelConfig 关卡配置数据结构
// 每个生成器拥有一张独立的波次表，Boss 和放置参数可选
type LevelConfig struct {
	ID          string `yaml:"id"`          // 关卡ID，如 "1"
	Name        string `yaml:"name"`        // 关卡名称，如 "Asteroid Belt"
	Description string `yaml:"description"` // 关卡描述（可选）

	AsteroidWaves []WaveConfig `yaml:"asteroidWaves"` // 陨石波次
	EnemyWaves    []WaveConfig `yaml:"enemyWaves"`    // 敌机波次
	ObstacleWaves []WaveConfig `yaml:"obstacleWaves"` // 障碍物波次
	CoinWaves     []WaveConfig `yaml:"coinWaves"`     // 金币波次
	PowerUpWaves  []WaveConfig `yaml:"powerUpWaves"`  // 道具波次

	Boss      *BossConfig     `yaml:"boss"`      // Boss 配置（可选）
	Placement PlacementConfig `yaml:"placement"` // 障碍物防扎堆参数
}

// WaveConfig 单个波次配置
//
// 时间单位为秒：
//   - Delay: 波次开始后等待多久才开始生成
//   - Interval: 同一波次内两次生成的最小间隔
type WaveConfig struct {
	Count     int     `yaml:"count"`     // 本波生成数量
	Kind      string  `yaml:"kind"`      // 负载类型，如 "large"、"fighter"、"gold"
	Delay     float64 `yaml:"delay"`     // 波次初始延迟（秒）
	Interval  float64 `yaml:"interval"`  // 生成间隔（秒）
	Formation string  `yaml:"formation"` // 编队标记（仅敌机波次可用），空表示逐个生成
}

// BossConfig Boss 配置
type BossConfig struct {
	Name           string   `yaml:"name"`           // Boss 名称
	Health         int      `yaml:"health"`         // 生命值
	AttackDelayMin float64  `yaml:"attackDelayMin"` // 攻击间隔下限（秒）
	AttackDelayMax float64  `yaml:"attackDelayMax"` // 攻击间隔上限（秒）
	Patterns       []string `yaml:"patterns"`       // 允许的攻击模式，空表示全部
	EntryDelay     float64  `yaml:"entryDelay"`     // 其他生成器清场后多久出场（秒）
}

// PlacementConfig 障碍物防扎堆参数
type PlacementConfig struct {
	MinHorizontalSpacing float64 `yaml:"minHorizontalSpacing"` // 水平最小间距（像素）
	MinTimeSpacing       float64 `yaml:"minTimeSpacing"`       // 时间最小间距（秒）
	MaxAttempts          int     `yaml:"maxAttempts"`          // 最大采样次数
	HistorySize          int     `yaml:"historySize"`          // 历史记录上限
	HistoryMaxAge        float64 `yaml:"historyMaxAge"`        // 历史记录最长保留时间（秒）
}

// 默认参数
const (
	DefaultMinHorizontalSpacing = 80.0
	DefaultMinTimeSpacing       = 1.0
	DefaultMaxAttempts          = 10
	DefaultHistorySize          = 10
	DefaultHistoryMaxAge        = 5.0

	DefaultBossAttackDelayMin = 1.5
	DefaultBossAttackDelayMax = 3.5
	DefaultBossEntryDelay     = 2.0
)

// DefaultPlacementConfig 返回默认放置参数
func DefaultPlacementConfig() PlacementConfig {
	return PlacementConfig{
		MinHorizontalSpacing: DefaultMinHorizontalSpacing,
		MinTimeSpacing:       DefaultMinTimeSpacing,
		MaxAttempts:          DefaultMaxAttempts,
		HistorySize:          DefaultHistorySize,
		HistoryMaxAge:        DefaultHistoryMaxAge,
	}
}

// UnmarshalYAML 先填入默认值再解码
// YAML 中省略的字段保留默认值，显式写出的 0 按原样保留
func (p *PlacementConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain PlacementConfig
	raw := plain(DefaultPlacementConfig())
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*p = PlacementConfig(raw)
	return nil
}

// UnmarshalYAML 先填入默认攻击间隔和出场延迟再解码
func (b *BossConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain BossConfig
	raw := plain{
		AttackDelayMin: DefaultBossAttackDelayMin,
		AttackDelayMax: DefaultBossAttackDelayMax,
		EntryDelay:     DefaultBossEntryDelay,
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*b = BossConfig(raw)
	return nil
}

// LoadLevelConfig 从YAML文件加载关卡配置
// 参数：
//
//	filepath - 关卡配置文件的路径（相对或绝对路径）
//
// 返回：
//
//	*LevelConfig - 解析后的关卡配置对象
//	error - 如果文件读取或解析失败，返回错误信息
func LoadLevelConfig(path string) (*LevelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", path, err)
	}

	cfg, err := ParseLevelConfig(data)
	if err != nil {
		return nil, fmt.Errorf("level config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseLevelConfig 解析内存中的 YAML 关卡配置
func ParseLevelConfig(data []byte) (*LevelConfig, error) {
	levelConfig := LevelConfig{Placement: DefaultPlacementConfig()}
	if err := yaml.Unmarshal(data, &levelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse level config YAML: %w", err)
	}

	// 应用默认值
	applyDefaults(&levelConfig)

	// 验证必填字段
	if err := validateLevelConfig(&levelConfig); err != nil {
		return nil, err
	}

	return &levelConfig, nil
}

// LoadLevelDir 加载目录下所有 *.yaml 关卡文件，按 ID 排序
func LoadLevelDir(dir string) ([]*LevelConfig, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read level directory %s: %w", dir, err)
	}

	levels := make([]*LevelConfig, 0, len(entries))
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		cfg, err := LoadLevelConfig(path)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[cfg.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate level id %q in %s and %s", ErrInvalidLevel, cfg.ID, prev, path)
		}
		seen[cfg.ID] = path
		levels = append(levels, cfg)
	}

	sort.Slice(levels, func(i, j int) bool { return levels[i].ID < levels[j].ID })
	return levels, nil
}

// applyDefaults 补全解码后仍为空的名称和模式列表
// 数值字段的默认值在 UnmarshalYAML 中预先填入
func applyDefaults(config *LevelConfig) {
	if b := config.Boss; b != nil {
		if len(b.Patterns) == 0 {
			for _, p := range types.AllAttackPatterns {
				b.Patterns = append(b.Patterns, p.String())
			}
		}
		if b.Name == "" {
			b.Name = "boss"
		}
	}
}

// finite 判断数值既不是 NaN 也不是无穷大
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// validateLevelConfig 验证关卡配置的完整性和合法性
func validateLevelConfig(config *LevelConfig) error {
	if config.ID == "" {
		return fmt.Errorf("%w: level ID is required", ErrInvalidLevel)
	}
	if config.Name == "" {
		return fmt.Errorf("%w: level name is required", ErrInvalidLevel)
	}

	total := len(config.AsteroidWaves) + len(config.EnemyWaves) + len(config.ObstacleWaves) +
		len(config.CoinWaves) + len(config.PowerUpWaves)
	if total == 0 && config.Boss == nil {
		return fmt.Errorf("%w: at least one wave or a boss is required", ErrInvalidLevel)
	}

	tables := []struct {
		name      string
		waves     []WaveConfig
		parse     func(string) error
		formation bool
	}{
		{"asteroidWaves", config.AsteroidWaves, func(s string) error { _, err := types.ParseAsteroidSize(s); return err }, false},
		{"enemyWaves", config.EnemyWaves, func(s string) error { _, err := types.ParseEnemyType(s); return err }, true},
		{"obstacleWaves", config.ObstacleWaves, func(s string) error { _, err := types.ParseObstacleType(s); return err }, false},
		{"coinWaves", config.CoinWaves, func(s string) error { _, err := types.ParseCoinValue(s); return err }, false},
		{"powerUpWaves", config.PowerUpWaves, func(s string) error { _, err := types.ParsePowerUpType(s); return err }, false},
	}
	for _, table := range tables {
		for i, wave := range table.waves {
			if err := validateWave(wave, table.parse, table.formation); err != nil {
				return fmt.Errorf("%s[%d]: %w", table.name, i, err)
			}
		}
	}

	if config.Boss != nil {
		if err := validateBoss(config.Boss); err != nil {
			return err
		}
	}

	p := config.Placement
	if !finite(p.MinHorizontalSpacing) || !finite(p.MinTimeSpacing) || !finite(p.HistoryMaxAge) {
		return fmt.Errorf("%w: placement spacing and history age must be finite", ErrInvalidLevel)
	}
	if p.MinHorizontalSpacing < 0 || p.MinTimeSpacing < 0 || p.HistoryMaxAge < 0 {
		return fmt.Errorf("%w: placement parameters cannot be negative", ErrInvalidLevel)
	}
	if p.MaxAttempts < 1 || p.HistorySize < 1 {
		return fmt.Errorf("%w: maxAttempts and historySize must be at least 1", ErrInvalidLevel)
	}

	return nil
}

// validateWave 校验单个波次
func validateWave(wave WaveConfig, parseKind func(string) error, allowFormation bool) error {
	if wave.Count <= 0 {
		return fmt.Errorf("%w: count must be at least 1, got %d", ErrInvalidWave, wave.Count)
	}
	if !finite(wave.Delay) || !finite(wave.Interval) {
		return fmt.Errorf("%w: delay and interval must be finite, got %v and %v", ErrInvalidWave, wave.Delay, wave.Interval)
	}
	if wave.Delay < 0 {
		return fmt.Errorf("%w: delay cannot be negative, got %v", ErrInvalidWave, wave.Delay)
	}
	if wave.Interval < 0 {
		return fmt.Errorf("%w: interval cannot be negative, got %v", ErrInvalidWave, wave.Interval)
	}
	if err := parseKind(wave.Kind); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWave, err)
	}
	if wave.Formation != "" {
		if !allowFormation {
			return fmt.Errorf("%w: formation %q is only supported for enemy waves", ErrInvalidWave, wave.Formation)
		}
		if _, err := types.ParseFormation(wave.Formation); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidWave, err)
		}
	}
	return nil
}

// validateBoss 校验 Boss 配置
func validateBoss(boss *BossConfig) error {
	if boss.Health <= 0 {
		return fmt.Errorf("%w: health must be positive, got %d", ErrInvalidBoss, boss.Health)
	}
	// 下限可以为 0，上限必须为正，否则攻击会在同一帧内无限重排
	if !finite(boss.AttackDelayMin) || !finite(boss.AttackDelayMax) ||
		boss.AttackDelayMin < 0 || boss.AttackDelayMax <= 0 || boss.AttackDelayMax < boss.AttackDelayMin {
		return fmt.Errorf("%w: attack delay range [%v, %v] is invalid", ErrInvalidBoss, boss.AttackDelayMin, boss.AttackDelayMax)
	}
	if !finite(boss.EntryDelay) || boss.EntryDelay < 0 {
		return fmt.Errorf("%w: entryDelay must be a finite non-negative number, got %v", ErrInvalidBoss, boss.EntryDelay)
	}
	if len(boss.Patterns) == 0 {
		return fmt.Errorf("%w: at least one attack pattern is required", ErrInvalidBoss)
	}
	for _, name := range boss.Patterns {
		if _, err := types.ParseAttackPattern(name); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBoss, err)
		}
	}
	return nil
}

// AttackPatterns 将 Boss 配置中的模式名转换为类型值
// 配置已经过校验，这里不会失败
func (b *BossConfig) AttackPatterns() []types.AttackPattern {
	patterns := make([]types.AttackPattern, 0, len(b.Patterns))
	for _, name := range b.Patterns {
		if p, err := types.ParseAttackPattern(name); err == nil {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
