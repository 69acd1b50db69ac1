package game

import (
	"encoding/binary"
	"testing"

	"github.com/decker502/starblaster/pkg/types"
)

// TestAudioManager_SilentMode 没有音频上下文时只计数不播放
func TestAudioManager_SilentMode(t *testing.T) {
	am := NewAudioManager(nil, nil)
	am.Play(types.CueBossHit)
	am.Play(types.CueBossHit)
	am.Play(types.CueBossDefeated)

	if am.PlayedCount(types.CueBossHit) != 2 || am.PlayedCount(types.CueBossDefeated) != 1 {
		t.Error("Cues should be counted even without an audio context")
	}
	if len(am.players) != 0 {
		t.Error("No players should be created without a context")
	}
}

func TestAudioManager_SoundDisabled(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	sm.ToggleSound()
	am := NewAudioManager(nil, sm)

	am.Play(types.CueSpawn)
	if am.PlayedCount(types.CueSpawn) != 1 {
		t.Error("Disabled sound should still count the cue")
	}
	if am.audible(types.CueBossWarning) {
		t.Error("No cue should be audible with sound disabled")
	}
}

// TestAudioManager_MutedCue 单独静音只影响对应事件
func TestAudioManager_MutedCue(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)
	sm.ToggleCue(types.CueSpawn)

	if am.audible(types.CueSpawn) {
		t.Error("Muted spawn cue should not be audible")
	}
	if !am.audible(types.CueBossWarning) {
		t.Error("Other cues should stay audible")
	}

	am.Play(types.CueSpawn)
	if am.PlayedCount(types.CueSpawn) != 1 {
		t.Error("Muted cue should still be counted")
	}

	sm.ToggleCue(types.CueSpawn)
	if !am.audible(types.CueSpawn) {
		t.Error("Spawn cue should be audible again after unmuting")
	}
}

// TestCueTones_AllCuesCovered 每种反馈事件都有对应提示音
func TestCueTones_AllCuesCovered(t *testing.T) {
	for cue := range cueNamesForTest() {
		if _, ok := cueTones[cue]; !ok {
			t.Errorf("Cue %s has no tone", cue)
		}
	}
}

func cueNamesForTest() map[types.Cue]struct{} {
	out := make(map[types.Cue]struct{})
	for c := types.CueSpawn; c.String() != "unknown"; c++ {
		out[c] = struct{}{}
	}
	return out
}

func TestSynthesizeTone(t *testing.T) {
	tone := cueTone{freq: 440, sweep: 440, duration: 0.1}
	buf := synthesizeTone(tone, 1000)

	if len(buf) != 100*4 {
		t.Fatalf("Expected 400 bytes, got %d", len(buf))
	}

	nonZero := false
	for i := 0; i < len(buf); i += 4 {
		left := binary.LittleEndian.Uint16(buf[i:])
		right := binary.LittleEndian.Uint16(buf[i+2:])
		if left != right {
			t.Fatalf("Sample %d: channels differ", i/4)
		}
		if left != 0 {
			nonZero = true
		}
	}
	if !nonZero {
		t.Error("Tone should not be silent")
	}
}
