package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/starblaster/pkg/types"
)

// TestLoadLevelConfig 测试关卡配置文件加载
func TestLoadLevelConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		// 创建临时测试文件
		tempDir := t.TempDir()
		testFile := filepath.Join(tempDir, "test-level.yaml")

		validYAML := `id: "1"
name: "Test Level"
description: "A test level"
asteroidWaves:
  - count: 3
    kind: large
    delay: 0
    interval: 1.0
enemyWaves:
  - count: 5
    kind: fighter
    delay: 2.0
    formation: v
boss:
  health: 3
  patterns: [aimed, homing]
`
		if err := os.WriteFile(testFile, []byte(validYAML), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		config, err := LoadLevelConfig(testFile)
		if err != nil {
			t.Fatalf("LoadLevelConfig() failed: %v", err)
		}

		if config.ID != "1" {
			t.Errorf("Expected ID '1', got '%s'", config.ID)
		}
		if config.Name != "Test Level" {
			t.Errorf("Expected Name 'Test Level', got '%s'", config.Name)
		}
		if len(config.AsteroidWaves) != 1 || config.AsteroidWaves[0].Count != 3 {
			t.Fatalf("Unexpected asteroid waves: %+v", config.AsteroidWaves)
		}
		if config.EnemyWaves[0].Formation != "v" {
			t.Errorf("Expected formation 'v', got %q", config.EnemyWaves[0].Formation)
		}

		// Boss 默认值
		if config.Boss == nil {
			t.Fatal("Expected boss config")
		}
		if config.Boss.AttackDelayMin != DefaultBossAttackDelayMin || config.Boss.AttackDelayMax != DefaultBossAttackDelayMax {
			t.Errorf("Expected default attack delay range, got [%v, %v]", config.Boss.AttackDelayMin, config.Boss.AttackDelayMax)
		}
		patterns := config.Boss.AttackPatterns()
		if len(patterns) != 2 || patterns[0] != types.AttackAimed || patterns[1] != types.AttackHoming {
			t.Errorf("Unexpected boss patterns: %v", patterns)
		}

		// 放置参数默认值
		if config.Placement.MaxAttempts != DefaultMaxAttempts {
			t.Errorf("Expected default maxAttempts %d, got %d", DefaultMaxAttempts, config.Placement.MaxAttempts)
		}
		if config.Placement.HistorySize != DefaultHistorySize {
			t.Errorf("Expected default historySize %d, got %d", DefaultHistorySize, config.Placement.HistorySize)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadLevelConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if err == nil {
			t.Fatal("Expected error for missing file")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseLevelConfig([]byte("id: [unterminated"))
		if err == nil {
			t.Fatal("Expected YAML parse error")
		}
	})
}

// TestParseLevelConfig_BossDefaultPatterns 未指定模式时使用全部十种
func TestParseLevelConfig_BossDefaultPatterns(t *testing.T) {
	cfg, err := ParseLevelConfig([]byte(`id: "b"
name: "Boss only"
boss:
  health: 10
`))
	if err != nil {
		t.Fatalf("ParseLevelConfig() failed: %v", err)
	}
	if got := len(cfg.Boss.AttackPatterns()); got != len(types.AllAttackPatterns) {
		t.Errorf("Expected %d default patterns, got %d", len(types.AllAttackPatterns), got)
	}
	if cfg.Boss.EntryDelay != DefaultBossEntryDelay {
		t.Errorf("Expected default entry delay, got %v", cfg.Boss.EntryDelay)
	}
}

// TestValidateLevelConfig 配置错误必须在加载阶段被拒绝
func TestValidateLevelConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
		contain string
	}{
		{
			name:    "missing id",
			yaml:    "name: x\nasteroidWaves: [{count: 1, kind: small}]",
			wantErr: ErrInvalidLevel,
		},
		{
			name:    "no waves and no boss",
			yaml:    "id: x\nname: x",
			wantErr: ErrInvalidLevel,
		},
		{
			name:    "zero count",
			yaml:    "id: x\nname: x\nasteroidWaves: [{count: 0, kind: small}]",
			wantErr: ErrInvalidWave,
			contain: "asteroidWaves[0]",
		},
		{
			name:    "negative interval",
			yaml:    "id: x\nname: x\ncoinWaves: [{count: 2, kind: gold, interval: -1}]",
			wantErr: ErrInvalidWave,
			contain: "coinWaves[0]",
		},
		{
			name:    "negative delay",
			yaml:    "id: x\nname: x\npowerUpWaves: [{count: 1, kind: shield, delay: -0.5}]",
			wantErr: ErrInvalidWave,
		},
		{
			name:    "unknown kind",
			yaml:    "id: x\nname: x\nenemyWaves: [{count: 1, kind: dragon}]",
			wantErr: ErrInvalidWave,
			contain: "dragon",
		},
		{
			name:    "formation on obstacles",
			yaml:    "id: x\nname: x\nobstacleWaves: [{count: 3, kind: mine, formation: v}]",
			wantErr: ErrInvalidWave,
		},
		{
			name:    "unknown formation",
			yaml:    "id: x\nname: x\nenemyWaves: [{count: 3, kind: fighter, formation: circle}]",
			wantErr: ErrInvalidWave,
		},
		{
			name:    "boss without health",
			yaml:    "id: x\nname: x\nboss: {health: 0}",
			wantErr: ErrInvalidBoss,
		},
		{
			name:    "boss inverted delay",
			yaml:    "id: x\nname: x\nboss: {health: 5, attackDelayMin: 3, attackDelayMax: 1}",
			wantErr: ErrInvalidBoss,
		},
		{
			name:    "boss unknown pattern",
			yaml:    "id: x\nname: x\nboss: {health: 5, patterns: [straight, nuke]}",
			wantErr: ErrInvalidBoss,
			contain: "nuke",
		},
		{
			name:    "negative placement",
			yaml:    "id: x\nname: x\nobstacleWaves: [{count: 1, kind: mine}]\nplacement: {minTimeSpacing: -1}",
			wantErr: ErrInvalidLevel,
		},
		{
			name:    "zero placement attempts",
			yaml:    "id: x\nname: x\nobstacleWaves: [{count: 1, kind: mine}]\nplacement: {maxAttempts: 0}",
			wantErr: ErrInvalidLevel,
		},
		{
			name:    "nan delay",
			yaml:    "id: x\nname: x\nasteroidWaves: [{count: 1, kind: small, delay: .nan}]",
			wantErr: ErrInvalidWave,
			contain: "finite",
		},
		{
			name:    "infinite interval",
			yaml:    "id: x\nname: x\ncoinWaves: [{count: 2, kind: gold, interval: .inf}]",
			wantErr: ErrInvalidWave,
			contain: "coinWaves[0]",
		},
		{
			name:    "negative infinite delay",
			yaml:    "id: x\nname: x\nenemyWaves: [{count: 1, kind: fighter, delay: -.inf}]",
			wantErr: ErrInvalidWave,
		},
		{
			name:    "nan placement spacing",
			yaml:    "id: x\nname: x\nobstacleWaves: [{count: 1, kind: mine}]\nplacement: {minHorizontalSpacing: .nan}",
			wantErr: ErrInvalidLevel,
		},
		{
			name:    "boss zero delay range",
			yaml:    "id: x\nname: x\nboss: {health: 5, attackDelayMin: 0, attackDelayMax: 0}",
			wantErr: ErrInvalidBoss,
		},
		{
			name:    "boss nan entry delay",
			yaml:    "id: x\nname: x\nboss: {health: 5, entryDelay: .nan}",
			wantErr: ErrInvalidBoss,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLevelConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error wrapping %v, got %v", tt.wantErr, err)
			}
			if tt.contain != "" && !strings.Contains(err.Error(), tt.contain) {
				t.Errorf("Expected error to mention %q, got %v", tt.contain, err)
			}
		})
	}
}

// TestParseLevelConfig_ExplicitZeros 显式写出的 0 不会被默认值覆盖
func TestParseLevelConfig_ExplicitZeros(t *testing.T) {
	cfg, err := ParseLevelConfig([]byte(`id: "z"
name: "Zeros"
obstacleWaves:
  - count: 2
    kind: wall
placement:
  minTimeSpacing: 0
  minHorizontalSpacing: 0
boss:
  health: 4
  attackDelayMin: 0
  attackDelayMax: 2
  entryDelay: 0
`))
	if err != nil {
		t.Fatalf("ParseLevelConfig() failed: %v", err)
	}

	p := cfg.Placement
	if p.MinTimeSpacing != 0 || p.MinHorizontalSpacing != 0 {
		t.Errorf("Expected explicit zero spacing, got %+v", p)
	}
	if p.MaxAttempts != DefaultMaxAttempts || p.HistorySize != DefaultHistorySize || p.HistoryMaxAge != DefaultHistoryMaxAge {
		t.Errorf("Omitted placement fields should keep defaults, got %+v", p)
	}

	b := cfg.Boss
	if b.AttackDelayMin != 0 || b.AttackDelayMax != 2 {
		t.Errorf("Expected attack delay range [0, 2], got [%v, %v]", b.AttackDelayMin, b.AttackDelayMax)
	}
	if b.EntryDelay != 0 {
		t.Errorf("Expected explicit zero entry delay, got %v", b.EntryDelay)
	}
}

// TestParseLevelConfig_PlacementOmitted 没有 placement 段时使用全部默认值
func TestParseLevelConfig_PlacementOmitted(t *testing.T) {
	cfg, err := ParseLevelConfig([]byte("id: p\nname: p\nobstacleWaves: [{count: 1, kind: mine}]"))
	if err != nil {
		t.Fatalf("ParseLevelConfig() failed: %v", err)
	}
	if cfg.Placement != DefaultPlacementConfig() {
		t.Errorf("Expected default placement, got %+v", cfg.Placement)
	}
}

// TestLoadLevelDir 加载关卡目录并按 ID 排序
func TestLoadLevelDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.yaml":    "id: \"2\"\nname: two\ncoinWaves: [{count: 1, kind: gold}]",
		"a.yaml":    "id: \"1\"\nname: one\ncoinWaves: [{count: 1, kind: gold}]",
		"notes.txt": "ignored",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	levels, err := LoadLevelDir(dir)
	if err != nil {
		t.Fatalf("LoadLevelDir() failed: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("Expected 2 levels, got %d", len(levels))
	}
	if levels[0].ID != "1" || levels[1].ID != "2" {
		t.Errorf("Expected levels sorted by id, got %s, %s", levels[0].ID, levels[1].ID)
	}

	// 重复ID
	dup := "id: \"1\"\nname: dup\ncoinWaves: [{count: 1, kind: gold}]"
	if err := os.WriteFile(filepath.Join(dir, "c.yaml"), []byte(dup), 0644); err != nil {
		t.Fatalf("Failed to write duplicate: %v", err)
	}
	if _, err := LoadLevelDir(dir); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("Expected duplicate id error, got %v", err)
	}
}

// TestShippedLevels 仓库自带的关卡文件必须能通过校验
func TestShippedLevels(t *testing.T) {
	levels, err := LoadLevelDir(filepath.Join("..", "..", "data", "levels"))
	if err != nil {
		t.Fatalf("Shipped levels failed to load: %v", err)
	}
	if len(levels) == 0 {
		t.Fatal("Expected at least one shipped level")
	}
	for _, lvl := range levels {
		if lvl.Boss == nil {
			t.Errorf("Level %s should end with a boss", lvl.ID)
		}
	}
}
