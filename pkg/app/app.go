// Package app 提供波次沙盒的 ebiten 包装器
//
// 沙盒把关卡会话画成简单的几何图形，用于肉眼检查波次节奏、编队入场、
// 障碍物分布和 Boss 弹幕。桌面端通过 main.go 调用 NewApp()。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/starblaster/pkg/config"
	"github.com/decker502/starblaster/pkg/ecs"
	"github.com/decker502/starblaster/pkg/embedded"
	"github.com/decker502/starblaster/pkg/entities"
	"github.com/decker502/starblaster/pkg/game"
	"github.com/decker502/starblaster/pkg/types"
	"github.com/decker502/starblaster/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Level 指定要加载的关卡 ID，为空则回到上次的关卡，再没有则从第一个未通关的关卡开始
	Level string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Mute 不创建音频上下文
	Mute bool
}

// App 沙盒应用，实现 ebiten.Game 接口
type App struct {
	levels     []*config.LevelConfig
	levelIndex int
	session    *game.Session
	player     *entities.PointTarget

	audio    *game.AudioManager
	settings *game.SettingsManager
	progress *game.ProgressStore

	cfg      Config
	recorded bool    // 本局结果是否已写入进度
	elapsed  float64 // 墙钟时间，用于闪烁效果

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化沙盒
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入关卡。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	levels, err := embedded.LoadLevels()
	if err != nil {
		return nil, fmt.Errorf("failed to load levels: %w", err)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: no embedded levels", config.ErrInvalidLevel)
	}

	// gdata 打开失败时降级为内存设置和进度
	gdataManager, err := gdata.Open(gdata.Config{AppName: "starblaster"})
	if err != nil {
		log.Printf("[App] Warning: persistent storage unavailable: %v", err)
		gdataManager = nil
	}
	settings, _ := game.NewSettingsManager(gdataManager)
	progress := game.NewProgressStore(gdataManager)

	var audioContext *audio.Context
	if !cfg.Mute {
		audioContext = audio.NewContext(game.SampleRate)
	}

	a := &App{
		levels:   levels,
		player:   &entities.PointTarget{X: config.ScreenWidth / 2, Y: config.PlayerStartY, Available: true},
		audio:    game.NewAudioManager(audioContext, settings),
		settings: settings,
		progress: progress,
		cfg:      cfg,
	}

	a.levelIndex = a.pickLevel(cfg.Level, settings.Current().LastLevel, progress.ClearedLevels())
	if err := a.startLevel(a.levelIndex); err != nil {
		return nil, err
	}

	if settings.Current().Fullscreen {
		ebiten.SetFullscreen(true)
	}
	return a, nil
}

// pickLevel 选择起始关卡
// 优先级：命令行指定 > 上次进入的关卡 > 第一个未通关的关卡
func (a *App) pickLevel(id, last string, cleared []string) int {
	if id != "" {
		if i, ok := a.findLevel(id); ok {
			return i
		}
		log.Printf("[App] Level %q not found, falling back to progress", id)
	}
	if last != "" {
		if i, ok := a.findLevel(last); ok {
			return i
		}
	}

	done := make(map[string]bool, len(cleared))
	for _, c := range cleared {
		done[c] = true
	}
	for i, lvl := range a.levels {
		if !done[lvl.ID] {
			return i
		}
	}
	return 0
}

func (a *App) findLevel(id string) (int, bool) {
	for i, lvl := range a.levels {
		if lvl.ID == id {
			return i, true
		}
	}
	return 0, false
}

// startLevel 为指定关卡创建新会话
func (a *App) startLevel(index int) error {
	level := a.levels[index]
	session, err := game.NewSession(level, game.SessionOptions{
		Seed:     a.cfg.Seed,
		Feedback: a.audio,
		Target:   a.player,
		Verbose:  a.cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to start level %s: %w", level.ID, err)
	}
	a.levelIndex = index
	a.session = session
	a.recorded = false
	if a.settings.Current().LastLevel != level.ID {
		a.settings.SetLastLevel(level.ID)
		a.saveSettings()
	}
	log.Printf("[App] Starting level %s (%s)", level.ID, level.Name)
	return nil
}

// Update 更新沙盒逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(int(config.ScreenWidth), int(config.ScreenHeight))
			a.pendingWindowSizeReset = false
		}
	}

	if err := a.handleKeys(); err != nil {
		return err
	}

	const deltaTime = 1.0 / 60.0
	a.elapsed += deltaTime

	pointer := utils.ReadPointer()
	a.player.X, a.player.Y = float64(pointer.X), float64(pointer.Y)
	if pointer.JustPressed && !a.session.State.Paused {
		a.shoot(float64(pointer.X), float64(pointer.Y))
	}

	a.session.Update(deltaTime)
	a.checkPlayerHits()
	a.recordResult()
	return nil
}

// handleKeys 键盘快捷键
//
//	P 暂停  R 重开  N 下一关  B 立即召唤 Boss  D 对 Boss 造成 5 点伤害
//	M 静音  S 单独静音生成提示音  -/= 音量  F1 调试信息  F11 全屏
func (a *App) handleKeys() error {
	s := a.session
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		s.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.Restart()
		a.recorded = false
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		return a.startLevel((a.levelIndex + 1) % len(a.levels))
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		if s.Boss != nil {
			s.Boss.StartFight(s.State.LevelTime)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		s.DamageBoss(5)
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		a.settings.ToggleSound()
		a.saveSettings()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		a.settings.ToggleCue(types.CueSpawn)
		a.saveSettings()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		a.settings.AdjustVolume(-game.VolumeStep)
		a.saveSettings()
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		a.settings.AdjustVolume(game.VolumeStep)
		a.saveSettings()
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		a.settings.ToggleDebugOverlay()
		a.saveSettings()
	case inpututil.IsKeyJustPressed(ebiten.KeyF11):
		a.toggleFullscreen()
	}
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settings.SetFullscreen(false)
	} else {
		ebiten.SetFullscreen(true)
		a.settings.SetFullscreen(true)
	}
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

// shoot 点击命中的实体：陨石击碎、敌机/障碍物销毁、金币道具拾取、Boss 扣血
func (a *App) shoot(x, y float64) {
	s := a.session
	for _, id := range a.hitEntities(x, y) {
		kind, ok := s.World.Kind(id)
		if !ok {
			continue
		}
		switch kind.Category {
		case types.CategoryAsteroid:
			s.DestroyAsteroid(id)
		case types.CategoryEnemy:
			if s.Enemies.Destroy(id) {
				s.State.AddScore(5)
			}
		case types.CategoryObstacle:
			s.Obstacles.Destroy(id)
		case types.CategoryCoin:
			s.CollectCoin(id)
		case types.CategoryPowerUp:
			s.CollectPowerUp(id)
		case types.CategoryBoss:
			s.DamageBoss(1)
		default:
			continue
		}
		return
	}
}

// hitEntities 返回包含点 (x, y) 的实体
func (a *App) hitEntities(x, y float64) []ecs.EntityID {
	var hits []ecs.EntityID
	for _, category := range clickable {
		for _, id := range a.session.World.EntitiesOf(category) {
			ex, ey, ok := a.session.World.Position(id)
			kind, _ := a.session.World.Kind(id)
			if ok && kind != nil && utils.WithinRadius(x, y, ex, ey, kind.Radius+6) {
				hits = append(hits, id)
			}
		}
	}
	return hits
}

// clickable 点击判定顺序：可拾取物优先，Boss 最后
var clickable = []types.Category{
	types.CategoryCoin,
	types.CategoryPowerUp,
	types.CategoryEnemy,
	types.CategoryAsteroid,
	types.CategoryObstacle,
	types.CategoryBoss,
}

// checkPlayerHits Boss 子弹或激光碰到指针时扣一条命
func (a *App) checkPlayerHits() {
	s := a.session
	if s.State.Paused || s.State.Lives == 0 {
		return
	}
	px, py := a.player.X, a.player.Y
	for _, id := range s.World.EntitiesOf(types.CategoryBossBullet) {
		x, y, ok := s.World.Position(id)
		if ok && utils.WithinRadius(px, py, x, y, config.BossBulletRadius+playerRadius) {
			s.World.Remove(id)
			a.playerHit()
		}
	}
	for _, id := range s.World.EntitiesOf(types.CategoryLaserBeam) {
		x, y, ok := s.World.Position(id)
		if ok && py >= y && px > x-config.LaserWidth/2-playerRadius && px < x+config.LaserWidth/2+playerRadius {
			a.playerHit()
			return
		}
	}
}

func (a *App) playerHit() {
	if !a.session.State.LoseLife() {
		log.Printf("[App] Out of lives, restarting level %s", a.session.Level.ID)
		a.session.Restart()
		a.recorded = false
	}
}

// recordResult 关卡完成后写入一次进度
func (a *App) recordResult() {
	if a.recorded || !a.session.IsLevelCleared() {
		return
	}
	a.recorded = true
	level := a.session.Level
	if a.progress.RecordResult(level.ID, a.session.State.Score, true) {
		log.Printf("[App] New best score for level %s: %d", level.ID, a.session.State.Score)
	}
	if err := a.progress.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save progress: %v", err)
	}
}

// Draw 绘制沙盒画面
func (a *App) Draw(screen *ebiten.Image) {
	a.drawWorld(screen)
	a.drawHUD(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(config.ScreenWidth), int(config.ScreenHeight)
}

// Session 当前关卡会话
func (a *App) Session() *game.Session {
	return a.session
}

// Progress 进度存储（关闭时保存）
func (a *App) Progress() *game.ProgressStore {
	return a.progress
}
