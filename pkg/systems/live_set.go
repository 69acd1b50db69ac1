package systems

import (
	"sort"

	"github.com/decker502/starblaster/pkg/ecs"
)

// LiveSet 当前存活的已生成实体集合
//
// 实体在生成时加入，在"离开屏幕"或"被销毁"回调中移除
// 同一实体可能被两条路径各移除一次，重复移除是无操作
type LiveSet struct {
	ids map[ecs.EntityID]struct{}
}

// NewLiveSet 创建空的存活集合
func NewLiveSet() *LiveSet {
	return &LiveSet{ids: make(map[ecs.EntityID]struct{})}
}

// Track 记录新生成的实体
// 无效ID（0）被忽略
func (ls *LiveSet) Track(id ecs.EntityID) {
	if id == 0 {
		return
	}
	ls.ids[id] = struct{}{}
}

// Untrack 移除实体，返回本次调用是否真的移除了它
func (ls *LiveSet) Untrack(id ecs.EntityID) bool {
	if _, ok := ls.ids[id]; !ok {
		return false
	}
	delete(ls.ids, id)
	return true
}

// Contains 实体是否仍在集合中
func (ls *LiveSet) Contains(id ecs.EntityID) bool {
	_, ok := ls.ids[id]
	return ok
}

// Count 存活实体数量
func (ls *LiveSet) Count() int {
	return len(ls.ids)
}

// IsEmpty 是否已没有存活实体
func (ls *LiveSet) IsEmpty() bool {
	return len(ls.ids) == 0
}

// IDs 返回按ID升序排列的快照
func (ls *LiveSet) IDs() []ecs.EntityID {
	out := make([]ecs.EntityID, 0, len(ls.ids))
	for id := range ls.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clear 清空集合（关卡重开时调用）
func (ls *LiveSet) Clear() {
	clear(ls.ids)
}

// Completer 可查询是否已生成完毕的调度器
type Completer interface {
	IsComplete() bool
}

// AllCleared 调度器已生成完毕且所有实体都已离场
func AllCleared(schedule Completer, live *LiveSet) bool {
	return schedule.IsComplete() && live.IsEmpty()
}
