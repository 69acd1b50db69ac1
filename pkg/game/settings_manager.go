package game

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/starblaster/pkg/types"
)

// SandboxSettings 沙盒偏好，跨会话保存
type SandboxSettings struct {
	SoundEnabled bool    `yaml:"soundEnabled"`
	SoundVolume  float64 `yaml:"soundVolume"` // 0.0 ~ 1.0

	// MutedCues 单独静音的反馈事件名，如 "spawn"、"boss_attack"
	MutedCues []string `yaml:"mutedCues"`

	// LastLevel 上次进入的关卡 ID，命令行没有指定 -level 时从这里继续
	LastLevel string `yaml:"lastLevel"`

	Fullscreen   bool `yaml:"fullscreen"`
	DebugOverlay bool `yaml:"debugOverlay"` // 显示各管理器的波次统计
}

// DefaultSettings 返回默认设置
func DefaultSettings() SandboxSettings {
	return SandboxSettings{
		SoundEnabled: true,
		SoundVolume:  0.8,
		DebugOverlay: true,
	}
}

// VolumeStep 音量快捷键每次调整的幅度
const VolumeStep = 0.1

// gdata 中的存储位置
const (
	settingsObject   = "settings"
	settingsProperty = "sandbox"
)

// SettingsManager 沙盒偏好管理
//
// 所有修改只作用于内存，由调用方在合适时机调用 Save 持久化。
// gdataManager 为 nil 时只在内存中生效，Save 不报错。
type SettingsManager struct {
	gdataManager *gdata.Manager
	current      SandboxSettings
	muted        map[types.Cue]bool
}

// NewSettingsManager 创建设置管理器并读取已保存的偏好
// 读取失败时记录警告并使用默认值，不会返回错误
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{gdataManager: gdataManager}
	sm.apply(DefaultSettings())
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: %v (using defaults)", err)
	}
	return sm, nil
}

// Load 读取已保存的偏好
//
// 文件中缺失的字段保留默认值；音量被限制到合法区间，未知的事件名被丢弃。
// 出错时当前设置回到默认值。
func (sm *SettingsManager) Load() error {
	loaded := DefaultSettings()
	if sm.gdataManager != nil && sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
		if err != nil {
			sm.apply(DefaultSettings())
			return fmt.Errorf("failed to load settings: %w", err)
		}
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			sm.apply(DefaultSettings())
			return fmt.Errorf("failed to unmarshal settings: %w", err)
		}
	}
	sm.apply(loaded)
	return nil
}

// apply 规范化后替换当前设置
func (sm *SettingsManager) apply(s SandboxSettings) {
	s.SoundVolume = clampVolume(s.SoundVolume)
	sm.muted = make(map[types.Cue]bool, len(s.MutedCues))
	for _, name := range s.MutedCues {
		cue, err := types.ParseCue(name)
		if err != nil {
			log.Printf("[SettingsManager] Ignoring muted cue: %v", err)
			continue
		}
		sm.muted[cue] = true
	}
	s.MutedCues = sm.mutedNames()
	sm.current = s
}

// mutedNames 当前静音事件名（升序，保证保存结果稳定）
func (sm *SettingsManager) mutedNames() []string {
	names := make([]string, 0, len(sm.muted))
	for cue := range sm.muted {
		names = append(names, cue.String())
	}
	sort.Strings(names)
	return names
}

// Save 持久化当前偏好
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(&sm.current)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Current 返回当前设置的副本
func (sm *SettingsManager) Current() SandboxSettings {
	s := sm.current
	s.MutedCues = append([]string(nil), sm.current.MutedCues...)
	return s
}

// ToggleSound 切换总音效开关，返回切换后的状态
func (sm *SettingsManager) ToggleSound() bool {
	sm.current.SoundEnabled = !sm.current.SoundEnabled
	log.Printf("[SettingsManager] Sound enabled: %v", sm.current.SoundEnabled)
	return sm.current.SoundEnabled
}

// AdjustVolume 按 delta 调整音量并限制在 [0, 1]，返回调整后的音量
func (sm *SettingsManager) AdjustVolume(delta float64) float64 {
	// 音量保留两位小数
	v := clampVolume(math.Round((sm.current.SoundVolume+delta)*100) / 100)
	sm.current.SoundVolume = v
	return v
}

// CueMuted 某种反馈事件是否被单独静音
func (sm *SettingsManager) CueMuted(cue types.Cue) bool {
	return sm.muted[cue]
}

// ToggleCue 切换单个反馈事件的静音状态，返回切换后是否静音
func (sm *SettingsManager) ToggleCue(cue types.Cue) bool {
	if sm.muted[cue] {
		delete(sm.muted, cue)
	} else {
		sm.muted[cue] = true
	}
	sm.current.MutedCues = sm.mutedNames()
	log.Printf("[SettingsManager] Cue %s muted: %v", cue, sm.muted[cue])
	return sm.muted[cue]
}

// SetLastLevel 记录最近进入的关卡
func (sm *SettingsManager) SetLastLevel(id string) {
	sm.current.LastLevel = id
}

// ToggleDebugOverlay 切换调试统计显示，返回切换后的状态
func (sm *SettingsManager) ToggleDebugOverlay() bool {
	sm.current.DebugOverlay = !sm.current.DebugOverlay
	return sm.current.DebugOverlay
}

// SetFullscreen 记录全屏状态
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.current.Fullscreen = enabled
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 1)
}
