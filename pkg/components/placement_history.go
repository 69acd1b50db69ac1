package components

// RecentSpawn 最近一次生成的位置记录
type RecentSpawn struct {
	X    float64
	Time float64
}

// PlacementHistoryComponent 防扎堆放置器的历史记录
// 按时间顺序存放，旧记录在前
type PlacementHistoryComponent struct {
	Entries []RecentSpawn
}
