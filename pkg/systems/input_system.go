// Package systems 实现靶场的逐帧逻辑系统与固定顺序的执行管线
package systems

import (
	"github.com/decker502/shootrange/pkg/game"
	"github.com/decker502/shootrange/pkg/utils"
)

// InputSource 输入来源
// 运行时由 utils.EbitenInput 提供，测试和无窗口模拟使用 ScriptedInput
type InputSource interface {
	Sample() utils.InputFrame
}

// ScriptedInput 按顺序回放预设的输入帧，用尽后返回空帧
type ScriptedInput struct {
	frames []utils.InputFrame
	pos    int
}

// NewScriptedInput 创建脚本输入
func NewScriptedInput(frames ...utils.InputFrame) *ScriptedInput {
	return &ScriptedInput{frames: frames}
}

// Push 追加输入帧
func (s *ScriptedInput) Push(frames ...utils.InputFrame) {
	s.frames = append(s.frames, frames...)
}

// Remaining 剩余未回放的帧数
func (s *ScriptedInput) Remaining() int {
	return len(s.frames) - s.pos
}

// Sample 实现 InputSource
func (s *ScriptedInput) Sample() utils.InputFrame {
	if s.pos >= len(s.frames) {
		return utils.InputFrame{}
	}
	f := s.frames[s.pos]
	s.pos++
	return f
}

// InputSystem 每帧采样一次输入，并把 Escape 转换为状态机事件
// 其他系统通过 Frame() 读取同一份快照
type InputSystem struct {
	source  InputSource
	session *game.Session
	frame   utils.InputFrame
}

// NewInputSystem 创建输入系统
func NewInputSystem(source InputSource, session *game.Session) *InputSystem {
	return &InputSystem{source: source, session: session}
}

// Update 采样输入
func (s *InputSystem) Update(deltaTime float64) {
	s.frame = s.source.Sample()

	if s.frame.Escape {
		// 非可暂停状态下由状态机忽略
		s.session.Handle(game.EventEscape)
	}
}

// Frame 返回本帧的输入快照
func (s *InputSystem) Frame() utils.InputFrame {
	return s.frame
}
