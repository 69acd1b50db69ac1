package config

import "testing"

func TestIsOffscreen(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"spawn height", ScreenWidth / 2, SpawnY, false},
		{"screen center", ScreenWidth / 2, ScreenHeight / 2, false},
		{"below bottom margin", ScreenWidth / 2, ScreenHeight + OffscreenMargin + 1, true},
		{"above top margin", ScreenWidth / 2, SpawnY - OffscreenMargin - 1, true},
		{"far left", -OffscreenMargin - 1, 100, true},
		{"far right", ScreenWidth + OffscreenMargin + 1, 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOffscreen(tt.x, tt.y); got != tt.want {
				t.Errorf("IsOffscreen(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// TestSpawnRangeX 生成区间在屏幕内且两侧留出边距
func TestSpawnRangeX(t *testing.T) {
	minX, maxX := SpawnRangeX()
	if minX >= maxX {
		t.Fatalf("Invalid spawn range [%v, %v]", minX, maxX)
	}
	if minX != SpawnMarginX || maxX != ScreenWidth-SpawnMarginX {
		t.Errorf("Spawn range [%v, %v] should keep a %v margin", minX, maxX, SpawnMarginX)
	}
	if BossAnchorY <= SpawnY || PlayerStartY >= ScreenHeight {
		t.Error("Boss anchor must be below spawn height and the player inside the screen")
	}
}
