package systems

import (
	"fmt"
	"log"

	"github.com/decker502/starblaster/pkg/components"
	"github.com/decker502/starblaster/pkg/config"
	"github.com/decker502/starblaster/pkg/ecs"
	"github.com/decker502/starblaster/pkg/entities"
	"github.com/decker502/starblaster/pkg/types"
)

// BossManager Boss 生命周期管理器
//
// 阶段流转：
//   - Waiting: 等待前置管理器全部清场，再等 EntryDelay 秒后生成 Boss
//   - Entering: Boss 向下入场，到达锚点后停下并开始攻击
//   - Fighting: AttackScheduler 在时间轴上循环攻击
//   - Defeated: 生命值归零，停止攻击、取消挂起回调、移除激光，Boss 战结束
type BossManager struct {
	cfg           config.BossConfig
	deps          ManagerDeps
	prerequisites []Clearable

	state   components.BossComponent
	bossID  ecs.EntityID
	live    *LiveSet
	token   *CancelToken
	attacks *AttackScheduler
	bullets *BulletPatterns
}

// NewBossManager 创建 Boss 管理器
//
// 参数：
//   - cfg: Boss 配置（已通过校验）
//   - prerequisites: 必须先清场的管理器
//   - deps: 外部协作者
func NewBossManager(cfg *config.BossConfig, prerequisites []Clearable, deps ManagerDeps) (*BossManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: missing boss config", config.ErrInvalidBoss)
	}
	m := &BossManager{
		cfg:           *cfg,
		deps:          deps.withDefaults(),
		prerequisites: prerequisites,
		live:          NewLiveSet(),
	}
	if err := m.rebuild(); err != nil {
		return nil, err
	}
	return m, nil
}

// rebuild 创建新的取消令牌、弹幕生成器和攻击调度器
// 失败时保留原有状态不变
func (m *BossManager) rebuild() error {
	token := NewCancelToken("boss:" + m.cfg.Name)
	attacks, err := NewAttackScheduler(
		m.cfg.Name,
		m.deps.Timeline,
		m.deps.Random,
		m.cfg.AttackPatterns(),
		m.cfg.AttackDelayMin,
		m.cfg.AttackDelayMax,
		token,
		m.executeAttack,
	)
	if err != nil {
		return err
	}
	m.token = token
	m.attacks = attacks
	m.bullets = NewBulletPatterns(m.deps, token, m.origin)

	m.state = components.BossComponent{
		Name:          m.cfg.Name,
		Patterns:      m.cfg.AttackPatterns(),
		Phase:         components.BossWaiting,
		CurrentHealth: m.cfg.Health,
		MaxHealth:     m.cfg.Health,
		ClearedAt:     -1,
	}
	m.bossID = 0
	return nil
}

// origin 弹幕发射点（Boss 当前位置）
func (m *BossManager) origin() (float64, float64, bool) {
	if m.bossID == 0 || m.state.Phase == components.BossDefeated {
		return 0, 0, false
	}
	return m.deps.Scene.Position(m.bossID)
}

func (m *BossManager) executeAttack(pattern types.AttackPattern) {
	n := m.bullets.Fire(pattern)
	m.deps.Feedback.Play(types.CueBossAttack)
	log.Printf("[BossManager] %s fires %s (%d immediate)", m.cfg.Name, pattern, n)
}

// Update 推进 Boss 阶段
//
// 参数：
//   - now: 当前关卡时间（秒）
func (m *BossManager) Update(now float64) {
	switch m.state.Phase {
	case components.BossWaiting:
		if !m.prerequisitesCleared() {
			return
		}
		if m.state.ClearedAt < 0 {
			m.state.ClearedAt = now
			m.deps.Feedback.Play(types.CueBossWarning)
			log.Printf("[BossManager] Field cleared at %.2fs, %s arrives in %.1fs", now, m.cfg.Name, m.cfg.EntryDelay)
		}
		if now-m.state.ClearedAt >= m.cfg.EntryDelay {
			m.spawnBoss(now)
		}

	case components.BossEntering:
		_, y, ok := m.deps.Scene.Position(m.bossID)
		if !ok {
			m.defeat("removed during entry")
			return
		}
		if y >= config.BossAnchorY {
			m.deps.Scene.SetVelocity(m.bossID, 0, 0)
			m.state.Phase = components.BossFighting
			m.attacks.Start()
		}

	case components.BossFighting:
		if !m.deps.Scene.IsAlive(m.bossID) {
			m.defeat("removed from scene")
		}
	}
}

func (m *BossManager) prerequisitesCleared() bool {
	for _, p := range m.prerequisites {
		if !p.AllCleared() {
			return false
		}
	}
	return true
}

// StartFight 跳过等待立即生成 Boss（沙盒调试用）
// 只在 Waiting 阶段有效
func (m *BossManager) StartFight(now float64) bool {
	if m.state.Phase != components.BossWaiting {
		return false
	}
	m.spawnBoss(now)
	return true
}

func (m *BossManager) spawnBoss(now float64) {
	m.bossID = m.deps.Factory.Create(entities.NewBossRequest(m.cfg.Name, m.cfg.Health))
	m.live.Track(m.bossID)
	m.state.Phase = components.BossEntering
	m.deps.Fight.SetBossFightActive(true)
	log.Printf("[BossManager] %s (health %d) enters at %.2fs", m.cfg.Name, m.cfg.Health, now)
}

// TakeDamage 对 Boss 造成伤害
//
// 返回：
//   - bool: Boss 是否已被击败（击败后再次调用仍返回 true，但不再产生任何效果）
func (m *BossManager) TakeDamage(amount int) bool {
	switch m.state.Phase {
	case components.BossDefeated:
		return true
	case components.BossEntering, components.BossFighting:
	default:
		return false
	}
	if amount <= 0 {
		return false
	}

	m.state.CurrentHealth -= amount
	if m.state.CurrentHealth <= 0 {
		m.state.CurrentHealth = 0
		m.defeat("health depleted")
		return true
	}
	m.deps.Feedback.Play(types.CueBossHit)
	return false
}

// defeat 进入终态：停止攻击、取消挂起回调、移除激光和 Boss 本体
func (m *BossManager) defeat(reason string) {
	m.state.Phase = components.BossDefeated
	m.attacks.Stop()
	m.token.Cancel()
	m.bullets.Cleanup()
	if m.deps.Scene.IsAlive(m.bossID) {
		m.deps.Scene.Remove(m.bossID)
	}
	m.deps.Fight.SetBossFightActive(false)
	m.deps.Feedback.Play(types.CueBossDefeated)
	log.Printf("[BossManager] ✅ %s defeated (%s)", m.cfg.Name, reason)
}

// OnEntityRemoved Boss、子弹或激光被场景清理后调用
func (m *BossManager) OnEntityRemoved(id ecs.EntityID) bool {
	if m.live.Untrack(id) {
		return true
	}
	return m.bullets.OnEntityRemoved(id)
}

// IsAttacking Boss 是否处于攻击循环中
func (m *BossManager) IsAttacking() bool {
	return m.attacks.IsAttacking()
}

// IsDefeated Boss 是否已被击败
func (m *BossManager) IsDefeated() bool {
	return m.state.Phase == components.BossDefeated
}

// AllCleared Boss 已被击败、本体已清理且没有残留激光
func (m *BossManager) AllCleared() bool {
	return m.IsDefeated() && m.live.IsEmpty() && m.bullets.LiveHazards() == 0
}

// State 返回 Boss 运行时数据的副本
func (m *BossManager) State() components.BossComponent {
	return m.state
}

// Attacks 返回攻击调度器的状态副本
func (m *BossManager) Attacks() components.AttackStateComponent {
	return m.attacks.State()
}

// BossID 当前 Boss 实体（未生成时为 0）
func (m *BossManager) BossID() ecs.EntityID {
	return m.bossID
}

// Owns 实体是否为 Boss 或其弹幕
func (m *BossManager) Owns(id ecs.EntityID) bool {
	return m.live.Contains(id) || m.bullets.bullets.Contains(id) || m.bullets.hazards.Contains(id)
}

// Stats 返回统计快照
func (m *BossManager) Stats() ManagerStats {
	spawned := 0
	if m.state.Phase != components.BossWaiting {
		spawned = 1
	}
	return ManagerStats{
		Name:     "BossManager",
		Waves:    1,
		Spawned:  spawned,
		Planned:  1,
		Live:     m.live.Count() + m.bullets.LiveBullets() + m.bullets.LiveHazards(),
		Complete: m.IsDefeated(),
	}
}

// Reset 回到等待阶段（关卡重开时调用）
// 取消旧令牌下的所有回调，场景中的实体由调用方统一清理
func (m *BossManager) Reset() {
	m.token.Cancel()
	m.live.Clear()
	m.deps.Fight.SetBossFightActive(false)
	if err := m.rebuild(); err != nil {
		// 旧调度器的令牌已取消，停止它以免 IsAttacking 残留
		m.attacks.Stop()
		log.Printf("[BossManager] Reset failed to rebuild attack scheduler: %v", err)
	}
	log.Printf("[BossManager] Reset")
}
