package game

import (
	"fmt"
	"log"

	"github.com/decker502/starblaster/pkg/config"
	"github.com/decker502/starblaster/pkg/ecs"
	"github.com/decker502/starblaster/pkg/entities"
	"github.com/decker502/starblaster/pkg/systems"
	"github.com/decker502/starblaster/pkg/types"
	"github.com/decker502/starblaster/pkg/utils"
)

// manager 会话驱动的生成管理器
type manager interface {
	Update(now float64)
	OnEntityRemoved(id ecs.EntityID) bool
	AllCleared() bool
	Reset()
	Stats() systems.ManagerStats
}

// SessionOptions 会话可选参数
type SessionOptions struct {
	Seed     int64                   // 随机种子，0 表示使用当前时间
	Feedback systems.Feedback        // 反馈实现，nil 时静默
	Target   entities.TargetProvider // 瞄准目标，nil 时使用玩家初始位置
	Verbose  bool                    // 是否输出逐帧日志
}

// Session 单个关卡的运行会话
//
// 每帧执行顺序：
//  1. 推进关卡时钟和时间轴（触发到期的延时回调）
//  2. 各管理器按关卡时间推进波次，Boss 最后
//  3. 世界推进运动和生命周期，清理的实体通知回管理器
type Session struct {
	Level    *config.LevelConfig
	State    *GameState
	World    *entities.World
	Timeline *systems.Timeline

	Asteroids *systems.AsteroidManager
	Enemies   *systems.EnemyManager
	Obstacles *systems.ObstacleManager
	Coins     *systems.CoinManager
	PowerUps  *systems.PowerUpManager
	Boss      *systems.BossManager // 关卡没有 Boss 时为 nil

	managers []manager
	cleared  bool
}

// NewSession 根据关卡配置创建会话
func NewSession(level *config.LevelConfig, opts SessionOptions) (*Session, error) {
	if level == nil {
		return nil, fmt.Errorf("%w: nil level", config.ErrInvalidLevel)
	}

	s := &Session{
		Level:    level,
		State:    NewGameState(),
		World:    entities.NewWorld(),
		Timeline: systems.NewTimeline(),
	}
	s.World.SetVerbose(opts.Verbose)

	target := opts.Target
	if target == nil {
		target = &entities.PointTarget{X: config.ScreenWidth / 2, Y: config.PlayerStartY, Available: true}
	}
	deps := systems.ManagerDeps{
		Factory:  s.World,
		Scene:    s.World,
		Timeline: s.Timeline,
		Random:   utils.NewPRNG(opts.Seed),
		Feedback: opts.Feedback,
		Fight:    s.State,
		Target:   target,
	}

	var err error
	if s.Asteroids, err = systems.NewAsteroidManager(level.AsteroidWaves, deps); err != nil {
		return nil, fmt.Errorf("level %s asteroids: %w", level.ID, err)
	}
	if s.Enemies, err = systems.NewEnemyManager(level.EnemyWaves, deps); err != nil {
		return nil, fmt.Errorf("level %s enemies: %w", level.ID, err)
	}
	if s.Obstacles, err = systems.NewObstacleManager(level.ObstacleWaves, level.Placement, deps); err != nil {
		return nil, fmt.Errorf("level %s obstacles: %w", level.ID, err)
	}
	if s.Coins, err = systems.NewCoinManager(level.CoinWaves, deps); err != nil {
		return nil, fmt.Errorf("level %s coins: %w", level.ID, err)
	}
	if s.PowerUps, err = systems.NewPowerUpManager(level.PowerUpWaves, deps); err != nil {
		return nil, fmt.Errorf("level %s power-ups: %w", level.ID, err)
	}
	s.managers = []manager{s.Asteroids, s.Enemies, s.Obstacles, s.Coins, s.PowerUps}

	if level.Boss != nil {
		prereqs := []systems.Clearable{s.Asteroids, s.Enemies, s.Obstacles, s.Coins, s.PowerUps}
		if s.Boss, err = systems.NewBossManager(level.Boss, prereqs, deps); err != nil {
			return nil, fmt.Errorf("level %s boss: %w", level.ID, err)
		}
		s.managers = append(s.managers, s.Boss)
	}

	if opts.Verbose {
		s.Asteroids.SetVerbose(true)
		s.Enemies.SetVerbose(true)
		s.Obstacles.SetVerbose(true)
		s.Coins.SetVerbose(true)
		s.PowerUps.SetVerbose(true)
	}

	s.World.OnRemoved(s.dispatchRemoval)
	log.Printf("[Session] Level %s (%s) ready: %d managers", level.ID, level.Name, len(s.managers))
	return s, nil
}

// dispatchRemoval 把实体清理通知交给生成它的管理器
func (s *Session) dispatchRemoval(id ecs.EntityID, _ entities.RemovalReason) {
	for _, m := range s.managers {
		if m.OnEntityRemoved(id) {
			return
		}
	}
}

// Update 推进一帧
//
// 参数：
//   - dt: 帧时间（秒），暂停期间调用无效果
func (s *Session) Update(dt float64) {
	if s.State.Paused || dt <= 0 {
		return
	}

	s.State.LevelTime += dt
	s.Timeline.Advance(dt)

	now := s.State.LevelTime
	for _, m := range s.managers {
		m.Update(now)
	}

	s.World.Step(dt)

	if !s.cleared && s.IsLevelCleared() {
		s.cleared = true
		log.Printf("[Session] ✅ Level %s cleared at %.2fs, score %d", s.Level.ID, now, s.State.Score)
	}
}

// Pause 暂停关卡时钟和所有挂起的延时回调
func (s *Session) Pause() {
	s.State.Paused = true
	s.Timeline.Pause()
}

// Resume 恢复
func (s *Session) Resume() {
	s.State.Paused = false
	s.Timeline.Resume()
}

// TogglePause 切换暂停状态
func (s *Session) TogglePause() {
	if s.State.Paused {
		s.Resume()
	} else {
		s.Pause()
	}
}

// Restart 重开关卡：取消所有挂起回调、清空实体、重置调度
func (s *Session) Restart() {
	for _, m := range s.managers {
		m.Reset()
	}
	s.World.Clear()
	s.Timeline.Reset()
	s.State.Reset()
	s.cleared = false
	log.Printf("[Session] Level %s restarted", s.Level.ID)
}

// IsLevelCleared 所有管理器都已清场（有 Boss 时 Boss 已被击败）
func (s *Session) IsLevelCleared() bool {
	for _, m := range s.managers {
		if !m.AllCleared() {
			return false
		}
	}
	return true
}

// Stats 返回所有管理器的统计快照
func (s *Session) Stats() []systems.ManagerStats {
	out := make([]systems.ManagerStats, 0, len(s.managers))
	for _, m := range s.managers {
		out = append(out, m.Stats())
	}
	return out
}

// DamageBoss 对 Boss 造成伤害，返回 Boss 是否已被击败
func (s *Session) DamageBoss(amount int) bool {
	if s.Boss == nil {
		return false
	}
	if s.Boss.IsDefeated() {
		return true
	}
	defeated := s.Boss.TakeDamage(amount)
	if defeated {
		s.State.AddScore(s.Level.Boss.Health * 10)
	}
	return defeated
}

// CollectCoin 拾取金币并计分
func (s *Session) CollectCoin(id ecs.EntityID) bool {
	value, ok := s.Coins.Collect(id)
	if ok {
		s.State.AddScore(value)
	}
	return ok
}

// CollectPowerUp 拾取道具，额外生命道具立即生效
func (s *Session) CollectPowerUp(id ecs.EntityID) (types.PowerUpType, bool) {
	kind, ok := s.PowerUps.Collect(id)
	if ok && kind == types.PowerUpExtraLife {
		s.State.AddLife()
	}
	return kind, ok
}

// DestroyAsteroid 击碎陨石并计分
func (s *Session) DestroyAsteroid(id ecs.EntityID) []ecs.EntityID {
	size, ok := s.Asteroids.Size(id)
	if !ok || !s.World.IsAlive(id) {
		return nil
	}
	fragments := s.Asteroids.Destroy(id)
	s.State.AddScore(int(size))
	return fragments
}
