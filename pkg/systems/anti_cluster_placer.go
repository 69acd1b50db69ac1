package systems

import (
	"log"
	"math"

	"github.com/decker502/starblaster/pkg/components"
	"github.com/decker502/starblaster/pkg/config"
	"github.com/decker502/starblaster/pkg/utils"
)

// AntiClusterPlacer 防扎堆位置选择器
//
// 在水平区间内随机采样候选位置，拒绝与最近生成位置在空间和时间上都过近的候选。
// 只有空间近且时间近才拒绝；只满足其一不拒绝。
// 采样次数用尽时接受最后一个候选：放置是尽力而为，永远不阻塞生成。
type AntiClusterPlacer struct {
	rng utils.RandomSource

	minHorizontalSpacing float64
	minTimeSpacing       float64
	maxAttempts          int
	historySize          int
	historyMaxAge        float64

	history components.PlacementHistoryComponent

	// fallbacks 采样用尽后强制接受的次数（统计用）
	fallbacks int
}

// NewAntiClusterPlacer 根据关卡放置参数创建选择器
func NewAntiClusterPlacer(cfg config.PlacementConfig, rng utils.RandomSource) *AntiClusterPlacer {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	size := cfg.HistorySize
	if size < 1 {
		size = 1
	}
	return &AntiClusterPlacer{
		rng:                  rng,
		minHorizontalSpacing: cfg.MinHorizontalSpacing,
		minTimeSpacing:       cfg.MinTimeSpacing,
		maxAttempts:          attempts,
		historySize:          size,
		historyMaxAge:        cfg.HistoryMaxAge,
		history:              components.PlacementHistoryComponent{Entries: make([]components.RecentSpawn, 0, size)},
	}
}

// Place 选择生成位置
//
// 参数：
//   - minX, maxX: 候选水平区间
//   - now: 当前关卡时间（秒）
//
// 返回：
//   - x: 选中的水平位置（已记入历史）
//   - clustered: 是否因采样用尽而接受了过近的位置
func (p *AntiClusterPlacer) Place(minX, maxX, now float64) (x float64, clustered bool) {
	p.evict(now)

	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		x = utils.RandomRange(p.rng, minX, maxX)
		if !p.tooClose(x, now) {
			p.record(x, now)
			return x, false
		}
	}

	p.fallbacks++
	log.Printf("[AntiClusterPlacer] No clear position after %d attempts, accepting x=%.1f", p.maxAttempts, x)
	p.record(x, now)
	return x, true
}

// tooClose 候选是否与历史中的某条记录在空间和时间上同时过近
func (p *AntiClusterPlacer) tooClose(x, now float64) bool {
	for _, e := range p.history.Entries {
		if math.Abs(e.X-x) < p.minHorizontalSpacing && now-e.Time < p.minTimeSpacing {
			return true
		}
	}
	return false
}

// evict 淘汰过期记录
func (p *AntiClusterPlacer) evict(now float64) {
	entries := p.history.Entries
	kept := entries[:0]
	for _, e := range entries {
		if now-e.Time <= p.historyMaxAge {
			kept = append(kept, e)
		}
	}
	p.history.Entries = kept
}

// record 写入历史，超过上限时丢弃最旧的记录
func (p *AntiClusterPlacer) record(x, now float64) {
	p.history.Entries = append(p.history.Entries, components.RecentSpawn{X: x, Time: now})
	if over := len(p.history.Entries) - p.historySize; over > 0 {
		p.history.Entries = append(p.history.Entries[:0], p.history.Entries[over:]...)
	}
}

// History 返回历史记录副本（旧记录在前）
func (p *AntiClusterPlacer) History() []components.RecentSpawn {
	out := make([]components.RecentSpawn, len(p.history.Entries))
	copy(out, p.history.Entries)
	return out
}

// Fallbacks 强制接受过近位置的次数
func (p *AntiClusterPlacer) Fallbacks() int {
	return p.fallbacks
}

// Reset 清空历史
func (p *AntiClusterPlacer) Reset() {
	p.history.Entries = p.history.Entries[:0]
	p.fallbacks = 0
}
