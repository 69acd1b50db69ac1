package systems

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/decker502/starblaster/pkg/components"
	"github.com/decker502/starblaster/pkg/config"
	"github.com/decker502/starblaster/pkg/types"
)

// ErrInvalidWave 波次参数不合法（在构造阶段拒绝，Update 中不会出现）
var ErrInvalidWave = errors.New("invalid wave")

// Wave 单个波次定义
// 构造后不可修改，调度器按顺序从前往后消费
type Wave[P any] struct {
	Count     int             // 本波生成数量
	Payload   P               // 负载（尺寸/类型等）
	Delay     float64         // 波次开始后的初始延迟（秒）
	Interval  float64         // 同一波次内的生成间隔（秒）
	Formation types.Formation // 编队标记，非空时整波一次性发出
}

// SpawnEvent 调度器发出的"立即生成"事件
type SpawnEvent[P any] struct {
	WaveIndex int             // 所属波次索引
	Slot      int             // 首个成员在本波中的序号
	Count     int             // 本事件包含的成员数量（编队波次为整波数量，否则为 1）
	Payload   P               // 负载
	Formation types.Formation // 编队标记
	Time      float64         // 发出事件的时间
}

// SpawnScheduler 基于时间的波次生成状态机
//
// 职责：
//   - 按波次表依次推进，决定何时生成下一个实体
//   - 每次 Update 最多发出一个事件，调用方需每帧调用
//
// 时间推进规则：
//  1. 首次调用只锁定起始时间，不生成
//  2. 当前波次初始延迟未到 → 不生成
//  3. 当前波次已生成完 → 进入下一波（本次调用不生成）
//  4. 距上次生成已满间隔 → 生成一个
//
// 波次完成检查优先于间隔检查
type SpawnScheduler[P any] struct {
	name  string
	waves []Wave[P]
	state components.SpawnScheduleComponent

	// planned 波次表的计划生成总数
	planned int

	// verbose 是否输出详细日志
	verbose bool
}

// NewSpawnScheduler 创建波次调度器
//
// 参数：
//   - name: 日志前缀中使用的名称，如 "AsteroidManager"
//   - waves: 波次表（会被复制，调用方之后的修改不影响调度器）
//
// 返回：
//   - error: 任一波次数量 <= 0、延迟或间隔为负数/NaN 时返回 ErrInvalidWave
func NewSpawnScheduler[P any](name string, waves []Wave[P]) (*SpawnScheduler[P], error) {
	planned := 0
	for i, w := range waves {
		if w.Count <= 0 {
			return nil, fmt.Errorf("%w: %s wave %d: count must be positive, got %d", ErrInvalidWave, name, i, w.Count)
		}
		if w.Delay < 0 || math.IsNaN(w.Delay) || math.IsInf(w.Delay, 0) {
			return nil, fmt.Errorf("%w: %s wave %d: delay must be a non-negative number, got %v", ErrInvalidWave, name, i, w.Delay)
		}
		if w.Interval < 0 || math.IsNaN(w.Interval) || math.IsInf(w.Interval, 0) {
			return nil, fmt.Errorf("%w: %s wave %d: interval must be a non-negative number, got %v", ErrInvalidWave, name, i, w.Interval)
		}
		planned += w.Count
	}

	copied := make([]Wave[P], len(waves))
	copy(copied, waves)

	return &SpawnScheduler[P]{
		name:    name,
		waves:   copied,
		planned: planned,
	}, nil
}

// BuildWaves 将配置文件中的波次转换为带类型负载的波次表
// parse 负责把 kind 字符串转换为负载类型
func BuildWaves[P any](cfgs []config.WaveConfig, parse func(string) (P, error)) ([]Wave[P], error) {
	waves := make([]Wave[P], 0, len(cfgs))
	for i, c := range cfgs {
		payload, err := parse(c.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: wave %d: %v", ErrInvalidWave, i, err)
		}
		formation, err := types.ParseFormation(c.Formation)
		if err != nil {
			return nil, fmt.Errorf("%w: wave %d: %v", ErrInvalidWave, i, err)
		}
		waves = append(waves, Wave[P]{
			Count:     c.Count,
			Payload:   payload,
			Delay:     c.Delay,
			Interval:  c.Interval,
			Formation: formation,
		})
	}
	return waves, nil
}

// SetVerbose 开关逐帧日志
func (s *SpawnScheduler[P]) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Update 推进调度状态
//
// 参数：
//   - now: 当前关卡时间（秒），要求单调不减
//
// 返回：
//   - SpawnEvent: 需要生成时的事件
//   - bool: 本次调用是否发出事件
func (s *SpawnScheduler[P]) Update(now float64) (SpawnEvent[P], bool) {
	var none SpawnEvent[P]
	st := &s.state

	// 首次调用：锁定起始时间
	if !st.Started {
		st.Started = true
		st.WaveStartTime = now
		st.LastSpawnTime = now
		return none, false
	}

	// 终态：全部波次已消费
	if st.CurrentWaveIndex >= len(s.waves) {
		return none, false
	}

	w := s.waves[st.CurrentWaveIndex]

	// 初始延迟未到
	if now-st.WaveStartTime < w.Delay {
		return none, false
	}

	// 波次完成：进入下一波，本次调用不生成
	if st.SpawnedInCurrentWave >= w.Count {
		s.advanceWave(now)
		return none, false
	}

	// 编队波次：整波一次性发出，成员的入场节奏由编队生成器负责
	if w.Formation != types.FormationNone {
		ev := SpawnEvent[P]{
			WaveIndex: st.CurrentWaveIndex,
			Slot:      0,
			Count:     w.Count,
			Payload:   w.Payload,
			Formation: w.Formation,
			Time:      now,
		}
		st.SpawnedInCurrentWave = w.Count
		st.TotalSpawned += w.Count
		st.LastSpawnTime = now
		if s.verbose {
			log.Printf("[%s] Formation %q wave %d emitted (%d members) at %.2fs", s.name, w.Formation, ev.WaveIndex+1, w.Count, now)
		}
		return ev, true
	}

	// 间隔检查
	if now-st.LastSpawnTime >= w.Interval {
		ev := SpawnEvent[P]{
			WaveIndex: st.CurrentWaveIndex,
			Slot:      st.SpawnedInCurrentWave,
			Count:     1,
			Payload:   w.Payload,
			Time:      now,
		}
		st.SpawnedInCurrentWave++
		st.TotalSpawned++
		st.LastSpawnTime = now
		if s.verbose {
			log.Printf("[%s] Wave %d slot %d/%d spawned at %.2fs", s.name, ev.WaveIndex+1, ev.Slot+1, w.Count, now)
		}
		return ev, true
	}

	return none, false
}

// advanceWave 进入下一波
func (s *SpawnScheduler[P]) advanceWave(now float64) {
	st := &s.state
	finished := st.CurrentWaveIndex
	st.CurrentWaveIndex++
	st.SpawnedInCurrentWave = 0
	st.WaveStartTime = now

	if st.CurrentWaveIndex >= len(s.waves) {
		log.Printf("[%s] ✅ All %d waves spawned (%d entities) at %.2fs", s.name, len(s.waves), st.TotalSpawned, now)
		return
	}
	log.Printf("[%s] Wave %d complete, wave %d/%d starts at %.2fs", s.name, finished+1, st.CurrentWaveIndex+1, len(s.waves), now)
}

// IsComplete 全部波次是否已消费完毕
// 一旦为 true 就保持为 true，直到 Reset
func (s *SpawnScheduler[P]) IsComplete() bool {
	return s.state.CurrentWaveIndex >= len(s.waves)
}

// TotalSpawned 已发出的实体总数
func (s *SpawnScheduler[P]) TotalSpawned() int {
	return s.state.TotalSpawned
}

// TotalPlanned 波次表计划生成的实体总数
func (s *SpawnScheduler[P]) TotalPlanned() int {
	return s.planned
}

// CurrentWave 当前波次索引（0-based）和总波次数
func (s *SpawnScheduler[P]) CurrentWave() (index, total int) {
	return s.state.CurrentWaveIndex, len(s.waves)
}

// State 返回调度状态的副本（只读，用于调试和统计）
func (s *SpawnScheduler[P]) State() components.SpawnScheduleComponent {
	return s.state
}

// Reset 重置调度状态（关卡重开时调用）
func (s *SpawnScheduler[P]) Reset() {
	s.state = components.SpawnScheduleComponent{}
	if s.verbose {
		log.Printf("[%s] Schedule reset", s.name)
	}
}
