package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/shootrange/pkg/components"
	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/ecs"
)

// Event 外部触发的状态机事件
type Event int

const (
	// EventPlay 主菜单点击 PLAY
	EventPlay Event = iota
	// EventQuit 主菜单点击 QUIT
	EventQuit
	// EventStartButtonDestroyed 开始按钮被击毁
	EventStartButtonDestroyed
	// EventEscape 按下 Escape
	EventEscape
	// EventResume 暂停菜单点击 RESUME
	EventResume
	// EventMainMenu 暂停菜单点击 MAIN MENU
	EventMainMenu
)

func (e Event) String() string {
	switch e {
	case EventPlay:
		return "play"
	case EventQuit:
		return "quit"
	case EventStartButtonDestroyed:
		return "start-button-destroyed"
	case EventEscape:
		return "escape"
	case EventResume:
		return "resume"
	case EventMainMenu:
		return "main-menu"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// Cause 状态变化的原因
type Cause string

const (
	CauseEvent       Cause = "event"
	CauseTimerExpiry Cause = "timer-expired"
	CauseLevelClear  Cause = "level-cleared"
)

// Transition 一次状态变化
type Transition struct {
	FromRound RoundState
	ToRound   RoundState
	FromLevel LevelState
	ToLevel   LevelState
	Cause     Cause
	Event     Event // Cause == CauseEvent 时有效
	// Elapsed 关卡通关时所用的秒数（CauseLevelClear）
	Elapsed float64
}

// TransitionListener 状态变化回调
type TransitionListener func(Transition)

// Session 一局游戏的全部可变状态
//
// 回合状态、关卡状态、计时器和靶子登记表都属于 Session，
// 由场景持有并以指针传给各个系统。
type Session struct {
	Round RoundState
	Level LevelState

	Timer   *TimerService
	Targets *TargetRegistry

	em          *ecs.EntityManager
	catalog     *config.LevelCatalog
	pausedFrom  RoundState
	startButton ecs.EntityID
	quit        bool
	listeners   []TransitionListener
}

// NewSession 创建处于 MainMenu × NoLevel 的会话
func NewSession(em *ecs.EntityManager, catalog *config.LevelCatalog) *Session {
	return &Session{
		Round:   RoundMainMenu,
		Level:   LevelNone,
		Timer:   NewTimerService(),
		Targets: NewTargetRegistry(em),
		em:      em,
		catalog: catalog,
	}
}

// OnTransition 注册状态变化回调，按注册顺序调用
func (s *Session) OnTransition(l TransitionListener) {
	s.listeners = append(s.listeners, l)
}

// Catalog 关卡目录
func (s *Session) Catalog() *config.LevelCatalog {
	return s.catalog
}

// EntityManager 会话使用的实体管理器
func (s *Session) EntityManager() *ecs.EntityManager {
	return s.em
}

// PausedFrom 暂停前的回合状态；仅在 PauseMenu 中有意义
func (s *Session) PausedFrom() RoundState {
	return s.pausedFrom
}

// StartButton 当前开始按钮实体，不存在时为 0
func (s *Session) StartButton() ecs.EntityID {
	return s.startButton
}

// QuitRequested 主菜单是否请求退出程序
func (s *Session) QuitRequested() bool {
	return s.quit
}

// Handle 处理外部事件；事件在当前状态下无效时忽略并返回 false
func (s *Session) Handle(ev Event) bool {
	fromRound, fromLevel := s.Round, s.Level

	handled := false
	switch ev {
	case EventPlay:
		if s.Round == RoundMainMenu {
			s.enterLevel(Level1)
			handled = true
		}
	case EventQuit:
		if s.Round == RoundMainMenu {
			s.quit = true
			log.Printf("[Session] 请求退出")
			return true
		}
	case EventStartButtonDestroyed:
		switch s.Round {
		case RoundStart:
			s.despawnStartButton()
			s.Round = RoundPlaying
			handled = true
		case RoundFailed:
			s.despawnStartButton()
			s.enterLevel(Level1)
			handled = true
		}
	case EventEscape:
		if s.Round.Pausable() {
			s.pausedFrom = s.Round
			s.Round = RoundPauseMenu
			handled = true
		}
	case EventResume:
		if s.Round == RoundPauseMenu {
			s.Round = s.pausedFrom
			handled = true
		}
	case EventMainMenu:
		if s.Round == RoundPauseMenu {
			s.resetToMainMenu()
			handled = true
		}
	}

	if !handled {
		log.Printf("[Session] 忽略事件 %s（当前 %s × %s）", ev, s.Round, s.Level)
		return false
	}

	s.emit(Transition{
		FromRound: fromRound, ToRound: s.Round,
		FromLevel: fromLevel, ToLevel: s.Level,
		Cause: CauseEvent, Event: ev,
	})
	return true
}

// StartAt 从主菜单直接进入指定关卡（--level 调试入口）
func (s *Session) StartAt(level int) error {
	if s.Round != RoundMainMenu {
		return fmt.Errorf("start at level %d: session is in %s", level, s.Round)
	}
	if _, err := s.catalog.Lookup(level); err != nil {
		return fmt.Errorf("start at level %d: %w", level, err)
	}

	fromRound, fromLevel := s.Round, s.Level
	s.enterLevel(LevelState(level))
	s.emit(Transition{
		FromRound: fromRound, ToRound: s.Round,
		FromLevel: fromLevel, ToLevel: s.Level,
		Cause: CauseEvent, Event: EventPlay,
	})
	return nil
}

// HitTarget 结算一次对靶子的命中
// 只有 Playing 状态下的命中有效；Start 状态只等待开始按钮，计时器尚未运行
func (s *Session) HitTarget(id ecs.EntityID) HitResult {
	if s.Round != RoundPlaying {
		return HitIgnored
	}
	return s.Targets.Hit(id)
}

// TickTimer 仅在 Playing 状态推进倒计时
func (s *Session) TickTimer(deltaTime float64) {
	if s.Round != RoundPlaying {
		return
	}
	s.Timer.Tick(deltaTime)
}

// CheckTimerExpiry 倒计时到期时进入 Failed × Failed
// 返回是否发生了状态变化
func (s *Session) CheckTimerExpiry() bool {
	if s.Round != RoundPlaying || !s.Timer.IsFinished() {
		return false
	}

	fromLevel := s.Level
	s.Timer.Clear()
	s.Targets.Clear()
	s.Round = RoundFailed
	s.Level = LevelFailed
	s.spawnStartButton()

	log.Printf("[Session] %s 超时失败", fromLevel)
	s.emit(Transition{
		FromRound: RoundPlaying, ToRound: s.Round,
		FromLevel: fromLevel, ToLevel: s.Level,
		Cause: CauseTimerExpiry,
	})
	return true
}

// CheckLevelClear 靶子全部击毁时进入下一关，最后一关之后进入 Won × NoLevel
// 返回是否发生了状态变化
func (s *Session) CheckLevelClear() bool {
	if s.Round != RoundPlaying || s.Targets.Count() > 0 {
		return false
	}

	fromLevel := s.Level
	elapsed := s.Timer.Elapsed()
	n, _ := fromLevel.Ordinal()

	if n < s.catalog.Count() {
		s.enterLevel(LevelState(n + 1))
	} else {
		s.Timer.Clear()
		s.Round = RoundWon
		s.Level = LevelNone
		log.Printf("[Session] 全部 %d 关通关", s.catalog.Count())
	}

	s.emit(Transition{
		FromRound: RoundPlaying, ToRound: s.Round,
		FromLevel: fromLevel, ToLevel: s.Level,
		Cause: CauseLevelClear, Elapsed: elapsed,
	})
	return true
}

// Validate 检查会话不变量：
// 计时器存在当且仅当处于具体关卡且回合为 Start/Playing（或从二者暂停），
// 登记表数量等于当前关卡存活靶子实体数量。
func (s *Session) Validate() error {
	round := s.Round
	if round == RoundPauseMenu {
		round = s.pausedFrom
	}
	wantTimer := s.Level.IsActive() && (round == RoundStart || round == RoundPlaying)
	if wantTimer != s.Timer.Active() {
		return fmt.Errorf("timer active=%v in %s × %s", s.Timer.Active(), s.Round, s.Level)
	}

	live := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TargetComponent](s.em) {
		t, _ := ecs.GetComponent[*components.TargetComponent](s.em, id)
		if t.Level == s.Targets.Level() {
			live++
		}
	}
	if live != s.Targets.Count() {
		return fmt.Errorf("registry count %d, live targets %d", s.Targets.Count(), live)
	}
	if s.Level == LevelFailed && s.Targets.Count() != 0 {
		return errors.New("targets present after failure")
	}
	return nil
}

// enterLevel 布置关卡：重置计时器、生成靶子和开始按钮，进入 Start
func (s *Session) enterLevel(level LevelState) {
	n, _ := level.Ordinal()
	cfg := s.catalog.MustLookup(n)

	s.Timer.SetTimer(cfg.Duration)
	s.Targets.Spawn(cfg)
	s.spawnStartButton()
	s.Level = level
	s.Round = RoundStart

	log.Printf("[Session] 进入 %s（%s，%d 个靶子，%.0f 秒）", level, cfg.Name, cfg.TargetCount(), cfg.Duration)
}

// spawnStartButton 生成开始按钮（已存在时不重复生成）
func (s *Session) spawnStartButton() {
	if s.startButton != 0 && s.em.Exists(s.startButton) {
		return
	}
	id := s.em.CreateEntity(ecs.ScopeGame)
	s.em.AddComponent(id, &components.PositionComponent{Position: config.StartButtonPosition})
	s.em.AddComponent(id, &components.CollisionComponent{
		Shape:       components.ShapeBox,
		HalfExtents: config.StartButtonHalfExtents,
		Fixed:       true,
	})
	s.em.AddComponent(id, &components.StartButtonComponent{})
	s.startButton = id
}

// despawnStartButton 移除开始按钮实体（若仍存在）
func (s *Session) despawnStartButton() {
	if s.startButton != 0 && s.em.Exists(s.startButton) {
		s.em.DestroyEntity(s.startButton)
		s.em.RemoveMarkedEntities()
	}
	s.startButton = 0
}

// resetToMainMenu 销毁全部关卡实体，回到 MainMenu × NoLevel
func (s *Session) resetToMainMenu() {
	removed := s.em.DestroyScope(ecs.ScopeGame)
	s.Targets.Forget()
	s.Timer.Clear()
	s.startButton = 0
	s.pausedFrom = RoundMainMenu
	s.Round = RoundMainMenu
	s.Level = LevelNone
	log.Printf("[Session] 返回主菜单，清理 %d 个关卡实体", removed)
}

func (s *Session) emit(t Transition) {
	log.Printf("[Session] %s × %s -> %s × %s (%s)", t.FromRound, t.FromLevel, t.ToRound, t.ToLevel, t.Cause)
	for _, l := range s.listeners {
		l(t)
	}
}
