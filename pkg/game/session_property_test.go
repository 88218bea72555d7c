package game

import (
	"testing"

	"pgregory.net/rapid"
)

// sessionMachine 随机驱动会话：外部事件、计时推进、命中靶子、轮询检查
type sessionMachine struct {
	s *Session
}

func (m *sessionMachine) Event(t *rapid.T) {
	ev := rapid.SampledFrom([]Event{
		EventPlay, EventQuit, EventStartButtonDestroyed,
		EventEscape, EventResume, EventMainMenu,
	}).Draw(t, "event")

	round := m.s.Round
	saved := m.s.PausedFrom()
	accepted := m.s.Handle(ev)

	switch {
	case ev == EventEscape && accepted:
		if !round.Pausable() || m.s.PausedFrom() != round {
			t.Fatalf("escape from %s accepted, saved %s", round, m.s.PausedFrom())
		}
	case ev == EventEscape:
		if round.Pausable() {
			t.Fatalf("escape rejected in %s", round)
		}
	case ev == EventResume && accepted:
		if round != RoundPauseMenu {
			t.Fatalf("resume accepted in %s", round)
		}
		if m.s.Round != saved {
			t.Fatalf("resume led to %s, paused from %s", m.s.Round, saved)
		}
	case ev == EventStartButtonDestroyed && accepted && round == RoundFailed:
		if m.s.Level != Level1 || m.s.Round != RoundStart {
			t.Fatalf("retry led to %s × %s", m.s.Round, m.s.Level)
		}
	}
}

func (m *sessionMachine) Tick(t *rapid.T) {
	d := rapid.Float64Range(0, 20).Draw(t, "delta")
	round := m.s.Round
	before := m.s.Timer.Elapsed()
	m.s.TickTimer(d)
	if round != RoundPlaying && m.s.Timer.Elapsed() != before {
		t.Fatalf("timer advanced in %s", round)
	}
}

func (m *sessionMachine) Hit(t *rapid.T) {
	ids := m.s.Targets.IDs()
	if len(ids) == 0 {
		t.Skip("no targets")
	}
	id := rapid.SampledFrom(ids).Draw(t, "target")
	round := m.s.Round
	before := m.s.Targets.Count()
	res := m.s.HitTarget(id)
	after := m.s.Targets.Count()
	if round != RoundPlaying && (res != HitIgnored || after != before) {
		t.Fatalf("hit in %s changed targets: %v, %d -> %d", round, res, before, after)
	}
	if after > before || (res == HitDestroyed && after != before-1) {
		t.Fatalf("count %d -> %d on %v", before, after, res)
	}
}

func (m *sessionMachine) Poll(t *rapid.T) {
	level := m.s.Level
	if m.s.CheckTimerExpiry() {
		if m.s.Round != RoundFailed || m.s.Level != LevelFailed || m.s.Timer.Active() {
			t.Fatalf("expiry from %s led to %s × %s", level, m.s.Round, m.s.Level)
		}
		return
	}
	if m.s.CheckLevelClear() {
		n, _ := level.Ordinal()
		if n < m.s.Catalog().Count() {
			if m.s.Level != level+1 || m.s.Round != RoundStart {
				t.Fatalf("clear of %s led to %s × %s", level, m.s.Round, m.s.Level)
			}
		} else if m.s.Round != RoundWon || m.s.Level != LevelNone {
			t.Fatalf("clear of last level led to %s × %s", m.s.Round, m.s.Level)
		}
	}
}

func (m *sessionMachine) Check(t *rapid.T) {
	if err := m.s.Validate(); err != nil {
		t.Fatalf("%s × %s: %v", m.s.Round, m.s.Level, err)
	}
	if m.s.Round != RoundPauseMenu && m.s.Round != RoundMainMenu && m.s.Level == LevelNone && m.s.Round != RoundWon {
		t.Fatalf("in-game round %s without level", m.s.Round)
	}
}

func TestSessionStateMachineProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := &sessionMachine{s: newTestSession(t)}
		t.Repeat(rapid.StateMachineActions(m))
	})
}
