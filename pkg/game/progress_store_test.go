package game

import (
	"testing"
)

func TestProgressStore_RecordResult(t *testing.T) {
	ps := NewProgressStore(nil)

	if !ps.RecordResult("1", 120, false) {
		t.Error("First result should be a new best")
	}
	if ps.RecordResult("1", 80, true) {
		t.Error("Lower score must not replace the best")
	}
	if !ps.RecordResult("1", 200, false) {
		t.Error("Higher score should be a new best")
	}

	rec := ps.Record("1")
	if rec.BestScore != 200 || !rec.Cleared || rec.Attempts != 3 {
		t.Errorf("Unexpected record %+v", rec)
	}
	if got := ps.Record("unknown"); got != (LevelRecord{}) {
		t.Errorf("Unknown level should return zero record, got %+v", got)
	}
}

func TestProgressStore_ClearedLevelsSorted(t *testing.T) {
	ps := NewProgressStore(nil)
	ps.RecordResult("3", 10, true)
	ps.RecordResult("1", 10, true)
	ps.RecordResult("2", 10, false)

	got := ps.ClearedLevels()
	if len(got) != 2 || got[0] != "1" || got[1] != "3" {
		t.Errorf("ClearedLevels() = %v, want [1 3]", got)
	}
}

// TestProgressStore_Persistence 保存后重新打开能读回进度
func TestProgressStore_Persistence(t *testing.T) {
	manager := createTestGdataManager(t, "starblaster_progress_test")

	ps := NewProgressStore(manager)
	ps.RecordResult("2", 450, true)
	if err := ps.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewProgressStore(manager)
	rec := reloaded.Record("2")
	if rec.BestScore != 450 || !rec.Cleared || rec.Attempts != 1 {
		t.Errorf("Reloaded record mismatch: %+v", rec)
	}
}

func TestProgressStore_NilManagerSaveIsNoop(t *testing.T) {
	ps := NewProgressStore(nil)
	ps.RecordResult("1", 5, true)
	if err := ps.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
}
