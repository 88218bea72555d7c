package systems

import (
	"fmt"
	"strconv"

	"github.com/decker502/shootrange/pkg/components"
	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/ecs"
	"github.com/decker502/shootrange/pkg/entities"
	"github.com/decker502/shootrange/pkg/game"
)

// HUDSlot HUD 文本槽位
type HUDSlot int

const (
	HUDFPS HUDSlot = iota
	HUDTargets
	HUDTime
	HUDLevel
	HUDBanner
	hudSlotCount
)

// 各回合状态的提示横幅
var roundBanners = map[game.RoundState]string{
	game.RoundStart:     "SHOOT THE BUTTON TO START",
	game.RoundFailed:    "TIME'S UP! SHOOT THE BUTTON TO RETRY",
	game.RoundWon:       "ALL LEVELS CLEARED",
	game.RoundPauseMenu: "PAUSED",
}

// HUDSystem 把会话状态同步到 ScopeText 中的文本实体
// 主菜单中隐藏全部 HUD 文本
type HUDSystem struct {
	entityManager *ecs.EntityManager
	session       *game.Session
	fps           func() float64
	showFPS       func() bool
	slots         [hudSlotCount]ecs.EntityID
}

// NewHUDSystem 创建 HUD 系统
// fps 与 showFPS 可以为 nil
func NewHUDSystem(em *ecs.EntityManager, session *game.Session, fps func() float64, showFPS func() bool) *HUDSystem {
	s := &HUDSystem{
		entityManager: em,
		session:       session,
		fps:           fps,
		showFPS:       showFPS,
	}
	s.slots[HUDFPS] = entities.NewTextEntity(em, ecs.ScopeText, "FPS: ", config.HUDFPSX, config.HUDFPSY)
	s.slots[HUDTargets] = entities.NewTextEntity(em, ecs.ScopeText, "TARGETS LEFT: ", config.HUDTargetsX, config.HUDTargetsY)
	s.slots[HUDTime] = entities.NewTextEntity(em, ecs.ScopeText, "TIME: ", config.HUDTimerX, config.HUDTimerY)
	s.slots[HUDLevel] = entities.NewTextEntity(em, ecs.ScopeText, "LEVEL: ", config.HUDLevelX, config.HUDLevelY)
	s.slots[HUDBanner] = entities.NewTextEntity(em, ecs.ScopeText, "", config.GameWindowWidth/2, config.HUDBannerY)
	if banner := s.text(HUDBanner); banner != nil {
		banner.Centered = true
	}
	return s
}

// Update 刷新 HUD 文本
func (s *HUDSystem) Update(deltaTime float64) {
	hidden := s.session.Round == game.RoundMainMenu

	fps := 0.0
	if s.fps != nil {
		fps = s.fps()
	}
	s.set(HUDFPS, fmt.Sprintf("%.0f", fps), hidden || (s.showFPS != nil && !s.showFPS()))
	s.set(HUDTargets, strconv.Itoa(s.session.Targets.Count()), hidden)
	s.set(HUDTime, s.session.Timer.Remaining(), hidden)
	s.set(HUDLevel, levelLabel(s.session.Level), hidden)

	banner, ok := roundBanners[s.session.Round]
	s.set(HUDBanner, banner, hidden || !ok)
}

// Text 返回槽位当前的完整文本，隐藏时返回空串
func (s *HUDSystem) Text(slot HUDSlot) string {
	t := s.text(slot)
	if t == nil || t.Hidden {
		return ""
	}
	return t.String()
}

func (s *HUDSystem) text(slot HUDSlot) *components.TextComponent {
	t, _ := ecs.GetComponent[*components.TextComponent](s.entityManager, s.slots[slot])
	return t
}

func (s *HUDSystem) set(slot HUDSlot, value string, hidden bool) {
	t := s.text(slot)
	if t == nil {
		return
	}
	t.Value = value
	t.Hidden = hidden
}

// levelLabel 关卡显示文本：进行中显示序号，否则显示 "-"
func levelLabel(level game.LevelState) string {
	if n, ok := level.Ordinal(); ok {
		return strconv.Itoa(n)
	}
	return "-"
}
