package systems

import (
	"errors"
	"testing"

	"github.com/decker502/starblaster/pkg/config"
	"github.com/decker502/starblaster/pkg/ecs"
	"github.com/decker502/starblaster/pkg/types"
)

func TestAsteroidManager_SpawnsAndClears(t *testing.T) {
	env := createTestEnv(nil)
	m, err := NewAsteroidManager([]config.WaveConfig{{Count: 3, Kind: "large", Interval: 0.5}}, env.deps)
	if err != nil {
		t.Fatalf("NewAsteroidManager() failed: %v", err)
	}
	env.connect(m)

	now := 0.0
	env.runFrames(&now, 20, 0.1, m.Update)
	if got := env.countCategory(types.CategoryAsteroid); got != 3 {
		t.Fatalf("Expected 3 asteroids, got %d", got)
	}
	if m.AllCleared() {
		t.Fatal("Live asteroids must block AllCleared")
	}

	stats := m.Stats()
	if stats.Spawned != 3 || stats.Planned != 3 || stats.Live != 3 || !stats.Complete {
		t.Errorf("Unexpected stats %+v", stats)
	}

	// 陨石全部落出屏幕
	env.runFrames(&now, 250, 0.1, m.Update)
	if !m.AllCleared() {
		t.Errorf("Expected cleared after asteroids leave the screen, live=%d", m.LiveCount())
	}
}

// TestAsteroidManager_DestroySplits 大 → 两块中 → 两块小 → 不再分裂
func TestAsteroidManager_DestroySplits(t *testing.T) {
	env := createTestEnv(nil)
	m, err := NewAsteroidManager([]config.WaveConfig{{Count: 1, Kind: "large"}}, env.deps)
	if err != nil {
		t.Fatalf("NewAsteroidManager() failed: %v", err)
	}
	env.connect(m)

	now := 0.0
	env.runFrames(&now, 3, 0.1, m.Update)
	ids := env.world.EntityManager().GetEntitiesWith()
	if len(ids) != 1 {
		t.Fatalf("Expected 1 asteroid, got %d", len(ids))
	}

	mediums := m.Destroy(ids[0])
	env.world.Flush()
	if len(mediums) != 2 {
		t.Fatalf("Large asteroid should split in two, got %v", mediums)
	}
	for _, id := range mediums {
		if size, _ := m.Size(id); size != types.AsteroidMedium {
			t.Errorf("Fragment %d size = %s, want medium", id, size)
		}
	}
	if m.LiveCount() != 2 {
		t.Errorf("Fragments must replace the parent in the live set, got %d", m.LiveCount())
	}

	smalls := m.Destroy(mediums[0])
	env.world.Flush()
	if len(smalls) != 2 {
		t.Fatalf("Medium asteroid should split in two, got %v", smalls)
	}
	if frags := m.Destroy(smalls[0]); frags != nil {
		t.Errorf("Small asteroid must not split, got %v", frags)
	}
	env.world.Flush()

	if m.Destroy(smalls[0]) != nil {
		t.Error("Destroying a removed asteroid must be a no-op")
	}
	if m.LiveCount() != 2 {
		t.Errorf("Expected 2 live asteroids, got %d", m.LiveCount())
	}
	if env.feedback.count(types.CueAsteroidSplit) != 2 {
		t.Errorf("Expected 2 split cues, got %d", env.feedback.count(types.CueAsteroidSplit))
	}
}

// TestGatedManagers_PauseDuringBossFight Boss 战期间陨石和金币不生成
func TestGatedManagers_PauseDuringBossFight(t *testing.T) {
	env := createTestEnv(nil)
	asteroids, err := NewAsteroidManager([]config.WaveConfig{{Count: 2, Kind: "small"}}, env.deps)
	if err != nil {
		t.Fatal(err)
	}
	coins, err := NewCoinManager([]config.WaveConfig{{Count: 2, Kind: "gold"}}, env.deps)
	if err != nil {
		t.Fatal(err)
	}
	powerUps, err := NewPowerUpManager([]config.WaveConfig{{Count: 1, Kind: "shield"}}, env.deps)
	if err != nil {
		t.Fatal(err)
	}

	env.fight.SetBossFightActive(true)
	now := 0.0
	update := func(now float64) {
		asteroids.Update(now)
		coins.Update(now)
		powerUps.Update(now)
	}
	env.runFrames(&now, 10, 0.1, update)

	if asteroids.Stats().Spawned != 0 || coins.Stats().Spawned != 0 {
		t.Error("Gated managers must not spawn during a boss fight")
	}
	if powerUps.Stats().Spawned != 1 {
		t.Error("Power-ups are not gated by the boss fight")
	}

	env.fight.SetBossFightActive(false)
	env.runFrames(&now, 10, 0.1, update)
	if asteroids.Stats().Spawned != 2 || coins.Stats().Spawned != 2 {
		t.Error("Gated managers should resume after the fight")
	}
}

// TestEnemyManager_Formation 编队成员分批入场，未入场成员阻止清场
func TestEnemyManager_Formation(t *testing.T) {
	env := createTestEnv(nil)
	m, err := NewEnemyManager([]config.WaveConfig{{Count: 5, Kind: "fighter", Formation: "v"}}, env.deps)
	if err != nil {
		t.Fatalf("NewEnemyManager() failed: %v", err)
	}
	env.connect(m)

	now := 0.0
	env.runFrames(&now, 2, 0.01, m.Update)
	if got := env.countCategory(types.CategoryEnemy); got != 1 {
		t.Fatalf("Expected the lead member immediately, got %d", got)
	}
	if m.PendingMembers() != 4 {
		t.Errorf("Expected 4 pending members, got %d", m.PendingMembers())
	}

	env.runFrames(&now, 2, 0.01, m.Update)
	if !m.IsComplete() {
		t.Fatal("Scheduler should complete once the formation event is emitted")
	}
	if m.AllCleared() {
		t.Fatal("Pending members must block AllCleared")
	}

	env.runFrames(&now, 70, 0.01, m.Update)
	if got := env.countCategory(types.CategoryEnemy); got != 5 {
		t.Fatalf("Expected 5 members, got %d", got)
	}
	if m.PendingMembers() != 0 {
		t.Errorf("Expected no pending members, got %d", m.PendingMembers())
	}

	minX, maxX := config.SpawnRangeX()
	for _, id := range env.world.EntityManager().GetEntitiesWith() {
		x, _, _ := env.world.Position(id)
		if x < minX-1e-9 || x > maxX+1e-9 {
			t.Errorf("Formation member %d at x=%.1f outside [%v, %v]", id, x, minX, maxX)
		}
	}

	env.runFrames(&now, 1500, 0.01, m.Update)
	if !m.AllCleared() {
		t.Errorf("Expected cleared after the formation leaves, live=%d", m.LiveCount())
	}
}

// TestEnemyManager_ResetCancelsPendingMembers 重开关卡时未入场的编队成员不再出现
func TestEnemyManager_ResetCancelsPendingMembers(t *testing.T) {
	env := createTestEnv(nil)
	m, err := NewEnemyManager([]config.WaveConfig{{Count: 4, Kind: "bomber", Formation: "line"}}, env.deps)
	if err != nil {
		t.Fatal(err)
	}
	env.connect(m)

	now := 0.0
	env.runFrames(&now, 2, 0.01, m.Update)
	m.Reset()
	env.world.Clear()

	env.timeline.Advance(2)
	env.world.Flush()
	if env.world.Count() != 0 {
		t.Errorf("Cancelled members were spawned: %d", env.world.Count())
	}
	if m.PendingMembers() != 0 || m.LiveCount() != 0 || m.IsComplete() {
		t.Errorf("Unexpected state after reset: pending=%d live=%d", m.PendingMembers(), m.LiveCount())
	}
}

func TestEnemyManager_SingleSpawns(t *testing.T) {
	env := createTestEnv(nil)
	m, err := NewEnemyManager([]config.WaveConfig{{Count: 3, Kind: "kamikaze", Interval: 0.2}}, env.deps)
	if err != nil {
		t.Fatal(err)
	}
	now := 0.0
	env.runFrames(&now, 10, 0.1, m.Update)
	if got := env.countCategory(types.CategoryEnemy); got != 3 {
		t.Errorf("Expected 3 enemies, got %d", got)
	}
	if env.feedback.count(types.CueSpawn) != 3 {
		t.Errorf("Expected a spawn cue per enemy, got %d", env.feedback.count(types.CueSpawn))
	}
}

func TestObstacleManager_UsesPlacer(t *testing.T) {
	env := createTestEnv(nil)
	m, err := NewObstacleManager(
		[]config.WaveConfig{{Count: 4, Kind: "mine", Interval: 0.3}},
		createTestPlacementConfig(),
		env.deps,
	)
	if err != nil {
		t.Fatalf("NewObstacleManager() failed: %v", err)
	}

	now := 0.0
	env.runFrames(&now, 20, 0.1, m.Update)
	if got := env.countCategory(types.CategoryObstacle); got != 4 {
		t.Fatalf("Expected 4 obstacles, got %d", got)
	}
	if got := len(m.Placer().History()); got != 4 {
		t.Errorf("Expected every obstacle in placement history, got %d", got)
	}

	m.Reset()
	if len(m.Placer().History()) != 0 {
		t.Error("Reset should clear placement history")
	}
}

func TestCoinManager_Collect(t *testing.T) {
	env := createTestEnv(nil)
	m, err := NewCoinManager([]config.WaveConfig{{Count: 1, Kind: "silver"}}, env.deps)
	if err != nil {
		t.Fatal(err)
	}
	env.connect(m)

	now := 0.0
	env.runFrames(&now, 3, 0.1, m.Update)
	ids := env.world.EntityManager().GetEntitiesWith()
	if len(ids) != 1 {
		t.Fatalf("Expected 1 coin, got %d", len(ids))
	}

	value, ok := m.Collect(ids[0])
	if !ok || value != int(types.CoinSilver) {
		t.Errorf("Collect() = (%d, %v), want (%d, true)", value, ok, types.CoinSilver)
	}
	if _, ok := m.Collect(ids[0]); ok {
		t.Error("A coin can only be collected once")
	}
	if _, ok := m.Collect(ecs.EntityID(999)); ok {
		t.Error("Unknown entity must not be collectable")
	}

	env.world.Flush()
	if !m.AllCleared() {
		t.Error("Expected cleared after the only coin is collected")
	}
}

func TestPowerUpManager_Collect(t *testing.T) {
	env := createTestEnv(nil)
	m, err := NewPowerUpManager([]config.WaveConfig{{Count: 1, Kind: "magnet"}}, env.deps)
	if err != nil {
		t.Fatal(err)
	}
	env.connect(m)

	now := 0.0
	env.runFrames(&now, 2, 0.1, m.Update)
	ids := env.world.EntityManager().GetEntitiesWith()
	if len(ids) != 1 {
		t.Fatalf("Expected 1 power-up, got %d", len(ids))
	}
	kind, ok := m.Collect(ids[0])
	if !ok || kind != types.PowerUpMagnet {
		t.Errorf("Collect() = (%s, %v), want (magnet, true)", kind, ok)
	}
	if env.feedback.count(types.CuePowerUpCollected) != 1 {
		t.Error("Expected power-up cue")
	}
}

func TestManagers_RejectInvalidWaves(t *testing.T) {
	env := createTestEnv(nil)
	if _, err := NewAsteroidManager([]config.WaveConfig{{Count: 1, Kind: "tiny"}}, env.deps); !errors.Is(err, ErrInvalidWave) {
		t.Errorf("Expected ErrInvalidWave for unknown size, got %v", err)
	}
	if _, err := NewCoinManager([]config.WaveConfig{{Count: 0, Kind: "gold"}}, env.deps); !errors.Is(err, ErrInvalidWave) {
		t.Errorf("Expected ErrInvalidWave for zero count, got %v", err)
	}
}

func TestManagers_RejectFormationOutsideEnemies(t *testing.T) {
	env := createTestEnv(nil)
	tests := []struct {
		name  string
		build func() error
	}{
		{
			name: "asteroid",
			build: func() error {
				_, err := NewAsteroidManager([]config.WaveConfig{{Count: 4, Kind: "small", Formation: "line"}}, env.deps)
				return err
			},
		},
		{
			name: "obstacle",
			build: func() error {
				_, err := NewObstacleManager([]config.WaveConfig{{Count: 3, Kind: "mine", Formation: "column"}}, createTestPlacementConfig(), env.deps)
				return err
			},
		},
		{
			name: "coin",
			build: func() error {
				_, err := NewCoinManager([]config.WaveConfig{{Count: 1, Kind: "gold"}, {Count: 5, Kind: "bronze", Formation: "v"}}, env.deps)
				return err
			},
		},
		{
			name: "power-up",
			build: func() error {
				_, err := NewPowerUpManager([]config.WaveConfig{{Count: 2, Kind: "shield", Formation: "line"}}, env.deps)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.build(); !errors.Is(err, ErrInvalidWave) {
				t.Errorf("Expected ErrInvalidWave for formation wave, got %v", err)
			}
		})
	}
}
