package systems

import (
	"log"

	"github.com/decker502/shootrange/pkg/components"
	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/ecs"
	"github.com/decker502/shootrange/pkg/entities"
	"github.com/decker502/shootrange/pkg/game"
)

// menuKind 当前显示的菜单
type menuKind int

const (
	menuNone menuKind = iota
	menuMain
	menuPause
)

type menuEntry struct {
	action components.MenuAction
	text   string
}

var (
	mainMenuEntries = []menuEntry{
		{components.MenuActionPlay, "PLAY"},
		{components.MenuActionQuit, "QUIT"},
	}
	pauseMenuEntries = []menuEntry{
		{components.MenuActionResume, "RESUME"},
		{components.MenuActionMainMenu, "MAIN MENU"},
	}
)

// MenuSystem 菜单系统
// 职责：
//   - 根据回合状态创建/销毁 ScopeMenu 中的按钮实体
//   - 检测鼠标悬停，更新按钮状态
//   - 鼠标左键松开时把按钮动作转换为状态机事件
type MenuSystem struct {
	entityManager *ecs.EntityManager
	session       *game.Session
	input         *InputSystem
	shown         menuKind
	subtitle      func() string
}

// NewMenuSystem 创建菜单系统
func NewMenuSystem(em *ecs.EntityManager, session *game.Session, input *InputSystem) *MenuSystem {
	return &MenuSystem{
		entityManager: em,
		session:       session,
		input:         input,
	}
}

// SetSubtitle 设置主菜单标题下方的说明文字（每次打开主菜单时求值）
func (s *MenuSystem) SetSubtitle(subtitle func() string) {
	s.subtitle = subtitle
}

// Update 同步菜单并处理点击
func (s *MenuSystem) Update(deltaTime float64) {
	s.sync()

	frame := s.input.Frame()
	x, y := float64(frame.CursorX), float64(frame.CursorY)

	for _, id := range ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		if !button.Contains(x, y) {
			button.State = components.UINormal
			continue
		}
		if frame.FireHeld {
			button.State = components.UIClicked
		} else {
			button.State = components.UIHovered
		}
		if frame.Click {
			s.activate(button.Action)
			// 点击可能切换菜单，剩余按钮已失效
			s.sync()
			return
		}
	}
}

// activate 执行按钮动作
func (s *MenuSystem) activate(action components.MenuAction) {
	var ev game.Event
	switch action {
	case components.MenuActionPlay:
		ev = game.EventPlay
	case components.MenuActionQuit:
		ev = game.EventQuit
	case components.MenuActionResume:
		ev = game.EventResume
	case components.MenuActionMainMenu:
		ev = game.EventMainMenu
	default:
		return
	}
	log.Printf("[MenuSystem] 点击按钮: %s", ev)
	s.session.Handle(ev)
}

// sync 让 ScopeMenu 中的实体与当前回合状态一致
func (s *MenuSystem) sync() {
	want := menuFor(s.session.Round)
	if want == s.shown {
		return
	}

	s.entityManager.DestroyScope(ecs.ScopeMenu)
	s.shown = want

	var entries []menuEntry
	switch want {
	case menuMain:
		entries = mainMenuEntries
		title := entities.NewTextEntity(s.entityManager, ecs.ScopeMenu, config.MenuTitle, config.GameWindowWidth/2, config.MenuTitleY)
		if text, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, title); ok {
			text.Centered = true
		}
		if s.subtitle != nil {
			if line := s.subtitle(); line != "" {
				sub := entities.NewTextEntity(s.entityManager, ecs.ScopeMenu, line, config.GameWindowWidth/2, config.MenuSubtitleY)
				if text, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, sub); ok {
					text.Centered = true
				}
			}
		}
	case menuPause:
		entries = pauseMenuEntries
	}
	for i, e := range entries {
		entities.NewMenuButton(s.entityManager, e.action, e.text, i, len(entries))
	}
}

// Visible 报告当前是否显示菜单
func (s *MenuSystem) Visible() bool {
	return s.shown != menuNone
}

func menuFor(round game.RoundState) menuKind {
	switch round {
	case game.RoundMainMenu:
		return menuMain
	case game.RoundPauseMenu:
		return menuPause
	default:
		return menuNone
	}
}
