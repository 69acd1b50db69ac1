package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/decker502/starblaster/pkg/types"
)

// SampleRate 音频采样率
const SampleRate = 44100

// cueTone 合成提示音参数
type cueTone struct {
	freq     float64 // 起始频率（Hz）
	sweep    float64 // 结束频率（Hz），与 freq 相同时为单音
	duration float64 // 时长（秒）
}

var cueTones = map[types.Cue]cueTone{
	types.CueSpawn:            {660, 660, 0.05},
	types.CueFormation:        {440, 880, 0.18},
	types.CueAsteroidSplit:    {220, 110, 0.12},
	types.CueCoinCollected:    {1320, 1760, 0.08},
	types.CuePowerUpCollected: {880, 1320, 0.2},
	types.CueBossWarning:      {180, 120, 0.8},
	types.CueBossAttack:       {330, 300, 0.06},
	types.CueBossHit:          {240, 200, 0.05},
	types.CueBossDefeated:     {120, 40, 1.0},
	types.CueLaserCharge:      {200, 1000, 1.0},
}

// AudioManager 提示音播放器，实现 systems.Feedback
//
// 职责：
//   - 为每种反馈事件合成一段 PCM 提示音并缓存播放器
//   - 根据 SettingsManager 的音效开关、单项静音和音量播放
//   - 播放是发后即忘的：没有音频上下文时静默，只记录次数
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager
	players         map[types.Cue]*audio.Player
	played          map[types.Cue]int
}

// NewAudioManager 创建提示音播放器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil（静默模式）
//   - sm: 设置管理器，可为 nil（使用默认音量）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		players:         make(map[types.Cue]*audio.Player),
		played:          make(map[types.Cue]int),
	}
}

// Play 播放反馈事件对应的提示音
func (am *AudioManager) Play(cue types.Cue) {
	am.played[cue]++
	if !am.audible(cue) {
		return
	}

	player := am.getPlayer(cue)
	if player == nil {
		return
	}
	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind cue %s: %v", cue, err)
	}
	player.Play()
}

// audible 总开关打开且该事件没有被单独静音
func (am *AudioManager) audible(cue types.Cue) bool {
	if am.settingsManager == nil {
		return true
	}
	return am.settingsManager.Current().SoundEnabled && !am.settingsManager.CueMuted(cue)
}

// getPlayer 获取或合成提示音播放器
func (am *AudioManager) getPlayer(cue types.Cue) *audio.Player {
	if am.context == nil {
		return nil
	}
	if player, ok := am.players[cue]; ok {
		return player
	}
	tone, ok := cueTones[cue]
	if !ok {
		log.Printf("[AudioManager] Warning: No tone for cue %s", cue)
		return nil
	}
	player := am.context.NewPlayerFromBytes(synthesizeTone(tone, SampleRate))
	am.players[cue] = player
	return player
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.Current().SoundVolume
	}
	return DefaultSettings().SoundVolume
}

// PlayedCount 某种反馈事件被触发的次数（包括静默模式）
func (am *AudioManager) PlayedCount(cue types.Cue) int {
	return am.played[cue]
}

// synthesizeTone 生成 16 位双声道小端 PCM 数据
// 频率从 freq 线性滑到 sweep，末尾做线性淡出避免爆音
func synthesizeTone(tone cueTone, sampleRate int) []byte {
	n := int(tone.duration * float64(sampleRate))
	buf := make([]byte, n*4)

	phase := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		freq := tone.freq + (tone.sweep-tone.freq)*progress
		phase += 2 * math.Pi * freq / float64(sampleRate)

		amp := 0.3 * (1 - progress)
		v := int16(math.Sin(phase) * amp * math.MaxInt16)

		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
