package systems

import (
	"testing"

	"github.com/decker502/starblaster/pkg/ecs"
)

type fakeCompleter bool

func (f fakeCompleter) IsComplete() bool { return bool(f) }

func TestLiveSet_UntrackIsIdempotent(t *testing.T) {
	once := NewLiveSet()
	twice := NewLiveSet()
	for _, id := range []ecs.EntityID{1, 2, 3} {
		once.Track(id)
		twice.Track(id)
	}

	if !once.Untrack(2) {
		t.Error("First untrack should report removal")
	}
	twice.Untrack(2)
	if twice.Untrack(2) {
		t.Error("Second untrack should be a no-op")
	}

	if once.Count() != twice.Count() {
		t.Errorf("untrack twice left %d entities, untrack once left %d", twice.Count(), once.Count())
	}
	if got := twice.IDs(); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("Unexpected IDs %v", got)
	}
}

func TestLiveSet_IgnoresInvalidID(t *testing.T) {
	ls := NewLiveSet()
	ls.Track(0)
	if !ls.IsEmpty() {
		t.Error("Tracking the invalid id must be ignored")
	}
	ls.Track(5)
	ls.Track(5)
	if ls.Count() != 1 {
		t.Errorf("Tracking twice should keep one entry, got %d", ls.Count())
	}
	ls.Clear()
	if !ls.IsEmpty() || ls.Contains(5) {
		t.Error("Clear should empty the set")
	}
}

// TestAllCleared AllCleared 当且仅当调度完成且集合为空
func TestAllCleared(t *testing.T) {
	tests := []struct {
		complete bool
		live     int
		want     bool
	}{
		{false, 0, false},
		{false, 2, false},
		{true, 1, false},
		{true, 0, true},
	}
	for _, tt := range tests {
		ls := NewLiveSet()
		for i := 1; i <= tt.live; i++ {
			ls.Track(ecs.EntityID(i))
		}
		if got := AllCleared(fakeCompleter(tt.complete), ls); got != tt.want {
			t.Errorf("AllCleared(complete=%v, live=%d) = %v, want %v", tt.complete, tt.live, got, tt.want)
		}
	}
}
