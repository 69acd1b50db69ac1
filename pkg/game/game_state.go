package game

// GameState 单个关卡会话的运行状态
// 由 Session 持有并注入到各管理器，不是全局单例
type GameState struct {
	LevelTime float64 // 关卡时钟（秒），暂停期间不前进
	Paused    bool    // 是否暂停

	Score int // 当前得分
	Lives int // 剩余生命

	bossFight bool // Boss 战是否进行中
}

// DefaultLives 每关初始生命数
const DefaultLives = 3

// NewGameState 创建新的关卡状态
func NewGameState() *GameState {
	return &GameState{Lives: DefaultLives}
}

// BossFightActive 实现 systems.FightState
func (gs *GameState) BossFightActive() bool {
	return gs.bossFight
}

// SetBossFightActive 实现 systems.FightState
func (gs *GameState) SetBossFightActive(active bool) {
	gs.bossFight = active
}

// AddScore 增加得分
func (gs *GameState) AddScore(amount int) {
	if amount > 0 {
		gs.Score += amount
	}
}

// LoseLife 扣除一条生命，返回是否还有剩余
func (gs *GameState) LoseLife() bool {
	if gs.Lives > 0 {
		gs.Lives--
	}
	return gs.Lives > 0
}

// AddLife 增加一条生命
func (gs *GameState) AddLife() {
	gs.Lives++
}

// Reset 恢复到关卡开始时的状态
func (gs *GameState) Reset() {
	*gs = GameState{Lives: DefaultLives}
}
