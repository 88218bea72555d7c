package systems

import (
	"github.com/decker502/shootrange/pkg/game"
)

// TimerSystem 推进当前关卡的倒计时（仅 Playing 状态下生效）
type TimerSystem struct {
	session *game.Session
}

// NewTimerSystem 创建计时系统
func NewTimerSystem(session *game.Session) *TimerSystem {
	return &TimerSystem{session: session}
}

// Update 推进倒计时
func (s *TimerSystem) Update(deltaTime float64) {
	s.session.TickTimer(deltaTime)
}

// RoundSystem 回合推进
// 失败检测在命中结算之前，过关检测在命中结算之后，由管线保证顺序
type RoundSystem struct {
	session *game.Session
}

// NewRoundSystem 创建回合系统
func NewRoundSystem(session *game.Session) *RoundSystem {
	return &RoundSystem{session: session}
}

// UpdateFailure 倒计时结束时转入 Failed
func (s *RoundSystem) UpdateFailure(deltaTime float64) {
	s.session.CheckTimerExpiry()
}

// UpdateAdvance 靶子清空时进入下一关或胜利
func (s *RoundSystem) UpdateAdvance(deltaTime float64) {
	s.session.CheckLevelClear()
}
