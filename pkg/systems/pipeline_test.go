package systems

import (
	"reflect"
	"testing"

	"github.com/decker502/shootrange/pkg/components"
	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/ecs"
	"github.com/decker502/shootrange/pkg/game"
	"github.com/decker502/shootrange/pkg/utils"
)

func TestPipelineRunsStagesInOrder(t *testing.T) {
	var order []string
	record := func(name string) Stage {
		return Stage{Name: name, Run: func(float64) { order = append(order, name) }}
	}
	p := NewPipeline(record("a"), record("b"), record("c"))

	p.Update(dt)
	p.Update(dt)

	want := []string{"a", "b", "c", "a", "b", "c"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestRangePipelineStageNames(t *testing.T) {
	w := newTestWorld(t, nil)
	want := []string{"input", "movement", "timer", "failure", "hits", "advance", "tracers", "hud"}
	if got := w.pipeline.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestPlayThroughAllLevels(t *testing.T) {
	w := newTestWorld(t, nil)
	w.startPlaying(t)

	for level := game.Level1; level <= game.Level5; level++ {
		if w.session.Level != level {
			t.Fatalf("Level = %s, want %s", w.session.Level, level)
		}
		w.clearLevel()
		if level == game.Level5 {
			break
		}
		if w.session.Round != game.RoundStart || w.session.Level != level+1 {
			t.Fatalf("after clearing %s: %s × %s", level, w.session.Round, w.session.Level)
		}
		w.aimAt(config.StartButtonPosition)
		w.shoot()
		if w.session.Round != game.RoundPlaying {
			t.Fatalf("start button of %s not destroyed", w.session.Level)
		}
	}

	if w.session.Round != game.RoundWon || w.session.Level != game.LevelNone {
		t.Errorf("final state = %s × %s, want Won × NoLevel", w.session.Round, w.session.Level)
	}
	if err := w.session.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestTimerExpiryWinsOverSameFrameHit(t *testing.T) {
	w := newTestWorld(t, nil)
	if err := w.session.StartAt(3); err != nil {
		t.Fatalf("StartAt(3) error: %v", err)
	}
	w.aimAt(config.StartButtonPosition)
	w.shoot()

	// 让倒计时在下一帧到期，同一帧击中最后一个靶子
	w.session.TickTimer(30 - dt/2)
	w.aimAt(w.session.Targets.Positions()[0])
	w.step(utils.InputFrame{FirePressed: true, FireHeld: true})

	if w.session.Round != game.RoundFailed || w.session.Level != game.LevelFailed {
		t.Errorf("state = %s × %s, want Failed × Failed", w.session.Round, w.session.Level)
	}
	if w.session.StartButton() == 0 {
		t.Error("start button not respawned after failure")
	}
}

func TestRetryAfterFailure(t *testing.T) {
	w := newTestWorld(t, nil)
	if err := w.session.StartAt(4); err != nil {
		t.Fatalf("StartAt(4) error: %v", err)
	}
	w.aimAt(config.StartButtonPosition)
	w.shoot()
	w.session.TickTimer(41)
	w.idle(1)
	if w.session.Round != game.RoundFailed {
		t.Fatalf("Round = %s, want Failed", w.session.Round)
	}

	w.aimAt(config.StartButtonPosition)
	w.shoot()
	if w.session.Round != game.RoundStart || w.session.Level != game.Level1 {
		t.Errorf("after retry: %s × %s, want Start × Level1", w.session.Round, w.session.Level)
	}
}

func TestEscapeFreezesWorld(t *testing.T) {
	w := newTestWorld(t, nil)
	w.startPlaying(t)
	w.idle(30)
	remaining := w.session.Timer.Remaining()
	pos := w.playerPos()

	w.step(utils.InputFrame{Escape: true})
	if w.session.Round != game.RoundPauseMenu {
		t.Fatalf("Round = %s, want PauseMenu", w.session.Round)
	}
	for i := 0; i < 30; i++ {
		w.step(utils.InputFrame{Forward: true, FirePressed: true, FireHeld: true})
	}

	if got := w.session.Timer.Remaining(); got != remaining {
		t.Errorf("timer moved while paused: %s -> %s", remaining, got)
	}
	if w.playerPos() != pos {
		t.Errorf("player moved while paused: %+v -> %+v", pos, w.playerPos())
	}

	// RESUME
	w.click(0, 2)
	if w.session.Round != game.RoundPlaying {
		t.Errorf("after RESUME: %s, want Playing", w.session.Round)
	}
	if n := len(w.em.EntitiesInScope(ecs.ScopeMenu)); n != 0 {
		t.Errorf("menu entities left after resume: %d", n)
	}
}

func TestPauseMenuToMainMenu(t *testing.T) {
	w := newTestWorld(t, nil)
	w.startPlaying(t)
	w.aimAt(w.session.Targets.Positions()[0])
	w.shoot()

	w.step(utils.InputFrame{Escape: true})
	w.click(1, 2)

	if w.session.Round != game.RoundMainMenu || w.session.Level != game.LevelNone {
		t.Fatalf("state = %s × %s, want MainMenu × NoLevel", w.session.Round, w.session.Level)
	}
	if n := len(w.em.EntitiesInScope(ecs.ScopeGame)); n != 0 {
		t.Errorf("game scope entities left: %d", n)
	}
	if !w.em.Exists(w.player) {
		t.Error("player must survive returning to the main menu")
	}
	if w.systems.HUD.Text(HUDTargets) != "" {
		t.Error("HUD visible in main menu")
	}
}

func TestQuitButton(t *testing.T) {
	w := newTestWorld(t, nil)
	w.click(1, 2)
	if !w.session.QuitRequested() {
		t.Error("QUIT did not request exit")
	}
}

func TestMenuHoverState(t *testing.T) {
	w := newTestWorld(t, nil)
	x, y, bw, bh := config.MenuButtonRect(0, 2)
	w.step(utils.InputFrame{CursorX: int(x + bw/2), CursorY: int(y + bh/2)})

	states := map[components.MenuAction]components.UIState{}
	for _, id := range ecs.GetEntitiesWith1[*components.ButtonComponent](w.em) {
		b, _ := ecs.GetComponent[*components.ButtonComponent](w.em, id)
		states[b.Action] = b.State
	}
	if states[components.MenuActionPlay] != components.UIHovered {
		t.Errorf("PLAY state = %v, want hovered", states[components.MenuActionPlay])
	}
	if states[components.MenuActionQuit] != components.UINormal {
		t.Errorf("QUIT state = %v, want normal", states[components.MenuActionQuit])
	}
}
