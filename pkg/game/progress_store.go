package game

import (
	"fmt"
	"log"
	"sort"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// LevelRecord 单个关卡的历史成绩
type LevelRecord struct {
	BestScore int  `yaml:"bestScore"`
	Cleared   bool `yaml:"cleared"`
	Attempts  int  `yaml:"attempts"`
}

// Progress 玩家进度
type Progress struct {
	Levels map[string]*LevelRecord `yaml:"levels"`
}

// 存储路径常量
const (
	progressObject   = "progress"
	progressProperty = "levels"
)

// ProgressStore 关卡成绩存储
// gdataManager 为 nil 时只在内存中记录（降级模式），与 SettingsManager 一致
type ProgressStore struct {
	gdataManager *gdata.Manager
	progress     Progress
}

// NewProgressStore 创建进度存储并尝试加载已有进度
// 加载失败不是致命错误，从空进度开始
func NewProgressStore(gdataManager *gdata.Manager) *ProgressStore {
	ps := &ProgressStore{
		gdataManager: gdataManager,
		progress:     Progress{Levels: make(map[string]*LevelRecord)},
	}
	if err := ps.Load(); err != nil {
		log.Printf("[ProgressStore] Warning: Failed to load progress: %v (starting fresh)", err)
	}
	return ps
}

// Load 从 gdata 加载进度
func (ps *ProgressStore) Load() error {
	ps.progress = Progress{Levels: make(map[string]*LevelRecord)}
	if ps.gdataManager == nil || !ps.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		return nil
	}

	data, err := ps.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}

	var loaded Progress
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal progress: %w", err)
	}
	if loaded.Levels != nil {
		ps.progress = loaded
	}
	return nil
}

// Save 保存进度到 gdata
// 降级模式下直接返回 nil
func (ps *ProgressStore) Save() error {
	if ps.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(&ps.progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := ps.gdataManager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// RecordResult 记录一次关卡结果
//
// 返回：
//   - bool: 是否刷新了该关卡的最高分
func (ps *ProgressStore) RecordResult(levelID string, score int, cleared bool) bool {
	rec, ok := ps.progress.Levels[levelID]
	if !ok {
		rec = &LevelRecord{}
		ps.progress.Levels[levelID] = rec
	}
	rec.Attempts++
	if cleared {
		rec.Cleared = true
	}
	if score > rec.BestScore {
		rec.BestScore = score
		log.Printf("[ProgressStore] New best score for level %s: %d", levelID, score)
		return true
	}
	return false
}

// Record 返回关卡成绩（未玩过的关卡返回零值）
func (ps *ProgressStore) Record(levelID string) LevelRecord {
	if rec, ok := ps.progress.Levels[levelID]; ok {
		return *rec
	}
	return LevelRecord{}
}

// ClearedLevels 返回已通关的关卡ID（升序）
func (ps *ProgressStore) ClearedLevels() []string {
	ids := make([]string, 0, len(ps.progress.Levels))
	for id, rec := range ps.progress.Levels {
		if rec.Cleared {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
