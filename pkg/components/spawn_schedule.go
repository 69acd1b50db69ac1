package components

// SpawnScheduleComponent 波次生成调度状态
// 只由拥有它的 SpawnScheduler 在 Update 中修改
// 注意：遵循 ECS 原则，组件仅存储数据，不包含方法
//
// 时间单位：秒（关卡时钟，暂停期间不前进）
type SpawnScheduleComponent struct {
	// CurrentWaveIndex 当前波次索引（0-based）
	// >= 波次总数时表示全部生成完毕（终态）
	CurrentWaveIndex int

	// SpawnedInCurrentWave 当前波次已生成的数量
	SpawnedInCurrentWave int

	// TotalSpawned 累计生成数量（编队波次按成员数累加）
	TotalSpawned int

	// WaveStartTime 当前波次开始时间
	WaveStartTime float64

	// LastSpawnTime 最近一次生成时间
	LastSpawnTime float64

	// Started 首次 Update 是否已锁定起始时间
	Started bool
}
