package game

import "testing"

func TestGameState_Basics(t *testing.T) {
	gs := NewGameState()
	if gs.Lives != DefaultLives || gs.Score != 0 || gs.BossFightActive() {
		t.Fatalf("Unexpected initial state %+v", gs)
	}

	gs.AddScore(10)
	gs.AddScore(-5)
	if gs.Score != 10 {
		t.Errorf("Negative score must be ignored, got %d", gs.Score)
	}

	gs.SetBossFightActive(true)
	if !gs.BossFightActive() {
		t.Error("Boss fight flag should be set")
	}

	for i := 0; i < DefaultLives-1; i++ {
		if !gs.LoseLife() {
			t.Fatalf("Life %d should not be the last", i)
		}
	}
	if gs.LoseLife() {
		t.Error("Last life lost should report false")
	}
	if gs.LoseLife() || gs.Lives != 0 {
		t.Error("Lives must not go negative")
	}

	gs.LevelTime = 12
	gs.Reset()
	if gs.Lives != DefaultLives || gs.Score != 0 || gs.LevelTime != 0 || gs.BossFightActive() {
		t.Errorf("Reset should restore the initial state, got %+v", gs)
	}
}
