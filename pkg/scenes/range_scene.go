package scenes

import (
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/ecs"
	"github.com/decker502/shootrange/pkg/entities"
	"github.com/decker502/shootrange/pkg/game"
	"github.com/decker502/shootrange/pkg/physics"
	"github.com/decker502/shootrange/pkg/systems"
)

// CursorControl 控制鼠标光标捕获
// 运行时由 EbitenCursor 实现；无窗口运行时可以为 nil
type CursorControl interface {
	SetCaptured(captured bool)
}

// RangeSceneOptions 构造射击场场景所需的依赖
type RangeSceneOptions struct {
	Catalog  *config.LevelCatalog
	Input    systems.InputSource
	Settings *game.SettingsManager // 可以为 nil（使用默认设置）
	Save     *game.SaveManager     // 可以为 nil（不记录成绩）
	Sounds   systems.SoundPlayer   // 可以为 nil（静音）
	Cursor   CursorControl         // 可以为 nil
	FPS      func() float64        // 可以为 nil
}

// RangeScene 射击场场景
//
// 场景拥有一个会话（状态机、计时器、靶子登记表）和一条固定顺序的系统管线。
// 玩家与地面属于 ScopeWorld，在整个程序生命周期内保留；
// 关卡实体、菜单和 HUD 文本分别属于 ScopeGame、ScopeMenu、ScopeText。
type RangeScene struct {
	entityManager *ecs.EntityManager
	session       *game.Session
	player        ecs.EntityID

	systems      systems.RangeSystems
	pipeline     *systems.Pipeline
	renderSystem *systems.RenderSystem

	settings *game.SettingsManager
	save     *game.SaveManager
	cursor   CursorControl
	captured bool
}

// NewRangeScene 创建射击场场景，初始状态为主菜单
func NewRangeScene(opts RangeSceneOptions) (*RangeScene, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("level catalog cannot be nil")
	}
	if opts.Input == nil {
		return nil, fmt.Errorf("input source cannot be nil")
	}

	settings := opts.Settings
	if settings == nil {
		// 不持久化的默认设置
		var err error
		if settings, err = game.NewSettingsManager(nil); err != nil {
			return nil, fmt.Errorf("设置初始化失败: %w", err)
		}
	}

	em := ecs.NewEntityManager()
	session := game.NewSession(em, opts.Catalog)
	if opts.Save != nil {
		opts.Save.Track(session)
	}

	player := entities.NewPlayerEntity(em, settings.GetSettings().MouseSensitivity)
	entities.NewGroundEntity(em)

	raycast := physics.NewRaycastSystem(em)
	input := systems.NewInputSystem(opts.Input, session)
	sys := systems.RangeSystems{
		Input:    input,
		Menu:     systems.NewMenuSystem(em, session, input),
		Movement: systems.NewPlayerMovementSystem(em, session, input, raycast, func() bool { return settings.GetSettings().InvertY }),
		Timer:    systems.NewTimerSystem(session),
		Round:    systems.NewRoundSystem(session),
		Gun:      systems.NewGunSystem(em, session, input, raycast, opts.Sounds),
		Tracer:   systems.NewTracerSystem(em),
		HUD:      systems.NewHUDSystem(em, session, opts.FPS, func() bool { return settings.GetSettings().ShowFPS }),
	}
	if opts.Save != nil {
		sys.Menu.SetSubtitle(func() string { return progressLine(opts.Save, opts.Catalog.Count()) })
	}

	s := &RangeScene{
		entityManager: em,
		session:       session,
		player:        player,
		systems:       sys,
		pipeline:      systems.NewRangePipeline(sys),
		renderSystem:  systems.NewRenderSystem(em, session, player),
		settings:      settings,
		save:          opts.Save,
		cursor:        opts.Cursor,
	}
	log.Printf("[RangeScene] 场景初始化完成，管线: %s", strings.Join(s.pipeline.Names(), " -> "))
	return s, nil
}

// Session 返回场景的会话
func (s *RangeScene) Session() *game.Session {
	return s.session
}

// Player 返回玩家实体
func (s *RangeScene) Player() ecs.EntityID {
	return s.player
}

// EntityManager 返回实体管理器
func (s *RangeScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// HUD 返回 HUD 系统（用于读取当前文本）
func (s *RangeScene) HUD() *systems.HUDSystem {
	return s.systems.HUD
}

// StartAt 跳过主菜单，直接进入指定关卡
func (s *RangeScene) StartAt(level int) error {
	return s.session.StartAt(level)
}

// Update 执行一帧管线；会话请求退出时返回 ebiten.Termination
func (s *RangeScene) Update(deltaTime float64) error {
	s.pipeline.Update(deltaTime)
	s.syncCursor()

	if s.session.QuitRequested() {
		log.Printf("[RangeScene] 收到退出请求")
		return ebiten.Termination
	}
	return nil
}

// Draw 绘制场景
func (s *RangeScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen)
}

// SaveOnExit 实现 game.Saveable
func (s *RangeScene) SaveOnExit() bool {
	ok := true
	if err := s.settings.Save(); err != nil {
		log.Printf("[RangeScene] Warning: 保存设置失败: %v", err)
		ok = false
	}
	if s.save != nil {
		if err := s.save.Save(); err != nil {
			log.Printf("[RangeScene] Warning: 保存存档失败: %v", err)
			ok = false
		}
	}
	return ok
}

// syncCursor 游戏中捕获光标，菜单中释放
func (s *RangeScene) syncCursor() {
	want := s.session.Round != game.RoundMainMenu && s.session.Round != game.RoundPauseMenu
	if want == s.captured {
		return
	}
	s.captured = want
	if s.cursor != nil {
		s.cursor.SetCaptured(want)
	}
}

// progressLine 主菜单上显示的成绩摘要
func progressLine(save *game.SaveManager, levels int) string {
	highest := save.GetHighestLevel()
	if highest == 0 {
		return ""
	}
	parts := []string{fmt.Sprintf("HIGHEST LEVEL: %d/%d", highest, levels)}
	total := 0.0
	complete := true
	for n := 1; n <= levels; n++ {
		best, ok := save.BestTime(n)
		if !ok {
			complete = false
			break
		}
		total += best
	}
	if complete {
		parts = append(parts, fmt.Sprintf("BEST TOTAL: %.2fs", total))
	}
	return strings.Join(parts, "   ")
}
