package app

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/starblaster/pkg/components"
	"github.com/decker502/starblaster/pkg/config"
	"github.com/decker502/starblaster/pkg/types"
	"github.com/decker502/starblaster/pkg/utils"
)

// playerRadius 指针代表的玩家飞船半径
const playerRadius = 10.0

var (
	backgroundColor = color.RGBA{R: 8, G: 10, B: 24, A: 255}
	playerColor     = color.RGBA{R: 120, G: 220, B: 255, A: 255}
	bossBarBack     = color.RGBA{R: 60, G: 20, B: 20, A: 255}
	bossBarFront    = color.RGBA{R: 230, G: 60, B: 60, A: 255}
)

// categoryColors 各类实体的填充色
var categoryColors = map[types.Category]color.RGBA{
	types.CategoryAsteroid:     {R: 140, G: 120, B: 100, A: 255},
	types.CategoryEnemy:        {R: 220, G: 80, B: 80, A: 255},
	types.CategoryObstacle:     {R: 160, G: 160, B: 170, A: 255},
	types.CategoryCoin:         {R: 250, G: 210, B: 60, A: 255},
	types.CategoryPowerUp:      {R: 90, G: 230, B: 120, A: 255},
	types.CategoryBoss:         {R: 190, G: 60, B: 200, A: 255},
	types.CategoryBossBullet:   {R: 255, G: 150, B: 60, A: 255},
	types.CategoryLaserWarning: {R: 255, G: 60, B: 60, A: 255},
	types.CategoryLaserBeam:    {R: 255, G: 240, B: 240, A: 255},
}

// drawOrder 绘制顺序：激光在最底层，Boss 子弹在最上层
var drawOrder = []types.Category{
	types.CategoryLaserWarning,
	types.CategoryLaserBeam,
	types.CategoryObstacle,
	types.CategoryCoin,
	types.CategoryPowerUp,
	types.CategoryAsteroid,
	types.CategoryEnemy,
	types.CategoryBoss,
	types.CategoryBossBullet,
}

func (a *App) drawWorld(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	w := a.session.World

	for _, category := range drawOrder {
		clr := categoryColors[category]
		for _, id := range w.EntitiesOf(category) {
			x, y, ok := w.Position(id)
			kind, _ := w.Kind(id)
			if !ok || kind == nil {
				continue
			}
			switch category {
			case types.CategoryLaserWarning:
				// 预警线闪烁
				alpha := uint8(utils.Lerp(60, 220, utils.Pulse(a.elapsed, 0.25)))
				warn := color.RGBA{R: clr.R, G: clr.G, B: clr.B, A: alpha}
				vector.DrawFilledRect(screen, float32(x-2), float32(y), 4, float32(config.ScreenHeight-y), warn, false)
			case types.CategoryLaserBeam:
				vector.DrawFilledRect(screen, float32(x-config.LaserWidth/2), float32(y), config.LaserWidth, float32(config.ScreenHeight-y), clr, false)
			default:
				vector.DrawFilledCircle(screen, float32(x), float32(y), float32(kind.Radius), clr, true)
			}
		}
	}

	vector.DrawFilledCircle(screen, float32(a.player.X), float32(a.player.Y), playerRadius, playerColor, true)
	a.drawBossBar(screen)
}

// drawBossBar Boss 血条和入场警告
func (a *App) drawBossBar(screen *ebiten.Image) {
	boss := a.session.Boss
	if boss == nil {
		return
	}
	state := boss.State()

	switch state.Phase {
	case components.BossWaiting:
		if state.ClearedAt >= 0 {
			// 清场后到 Boss 出场前显示警告
			fade := utils.EaseOutCubic(utils.Pulse(a.elapsed, 0.6))
			msg := fmt.Sprintf("WARNING: %s APPROACHING", strings.ToUpper(state.Name))
			if fade > 0.3 {
				ebitenutil.DebugPrintAt(screen, msg, int(config.ScreenWidth)/2-len(msg)*3, int(config.BossAnchorY))
			}
		}
	case components.BossEntering, components.BossFighting:
		const barWidth, barHeight = 300.0, 8.0
		x := (config.ScreenWidth - barWidth) / 2
		ratio := float64(state.CurrentHealth) / float64(state.MaxHealth)
		vector.DrawFilledRect(screen, float32(x), 20, barWidth, barHeight, bossBarBack, false)
		vector.DrawFilledRect(screen, float32(x), 20, float32(utils.Lerp(0, barWidth, ratio)), barHeight, bossBarFront, false)
		ebitenutil.DebugPrintAt(screen, state.Name, int(x), 30)
	}
}

// drawHUD 分数、生命和可选的管理器统计
func (a *App) drawHUD(screen *ebiten.Image) {
	s := a.session
	status := fmt.Sprintf("Level %s  %s\nTime %.1fs  Score %d  Lives %d",
		s.Level.ID, s.Level.Name, s.State.LevelTime, s.State.Score, s.State.Lives)
	if s.State.Paused {
		status += "  [PAUSED]"
	}
	if a.recorded {
		best := a.progress.Record(s.Level.ID).BestScore
		status += fmt.Sprintf("\nCLEARED  best %d  (N: next level)", best)
	}
	prefs := a.settings.Current()
	if !prefs.SoundEnabled {
		status += "\nSound off"
	} else {
		status += fmt.Sprintf("\nVolume %.0f%%", prefs.SoundVolume*100)
		if len(prefs.MutedCues) > 0 {
			status += "  muted " + strings.Join(prefs.MutedCues, ",")
		}
	}
	ebitenutil.DebugPrintAt(screen, status, 8, int(config.ScreenHeight)-80)

	if !prefs.DebugOverlay {
		return
	}
	var b strings.Builder
	for _, st := range s.Stats() {
		fmt.Fprintf(&b, "%-16s wave %d/%d  spawned %d/%d  live %d", st.Name, st.Wave, st.Waves, st.Spawned, st.Planned, st.Live)
		if st.Complete {
			b.WriteString("  done")
		}
		b.WriteByte('\n')
	}
	if boss := s.Boss; boss != nil {
		atk := boss.Attacks()
		fmt.Fprintf(&b, "boss %s  attack %s  fired %d  last %s\n", boss.State().Phase, atk.State, atk.AttacksFired, atk.LastPattern)
	}
	fmt.Fprintf(&b, "entities %d  timers %d  TPS %.0f", s.World.Count(), s.Timeline.Pending(), ebiten.ActualTPS())
	ebitenutil.DebugPrintAt(screen, b.String(), 8, 48)
}
