// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputFrame 一帧的输入快照
// 每帧只采样一次，之后所有系统读取同一份快照，保证同一帧内输入一致
type InputFrame struct {
	// 移动（按住）
	Forward, Back, Left, Right bool
	Walk                       bool // Shift：慢走
	Crouch                     bool // Ctrl：下蹲
	Jump                       bool // 空格刚按下

	// 射击
	FirePressed  bool // 左键刚按下
	FireHeld     bool // 左键按住
	FireReleased bool // 左键刚松开

	// 视角：鼠标位移（像素）
	LookDX, LookDY float64

	// 菜单
	Escape           bool // Escape 刚按下
	CursorX, CursorY int
	Click            bool // 左键刚松开（菜单按钮在松开时触发）
}

// MoveAxes 返回 (前后, 左右) 轴向输入，取值 -1/0/1
func (f InputFrame) MoveAxes() (forward, right float64) {
	if f.Forward {
		forward++
	}
	if f.Back {
		forward--
	}
	if f.Right {
		right++
	}
	if f.Left {
		right--
	}
	return forward, right
}

// EbitenInput 从键盘鼠标采样输入
type EbitenInput struct {
	lastX, lastY int
	hasLast      bool
}

// NewEbitenInput 创建输入采样器
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

// Sample 采样当前帧输入
func (in *EbitenInput) Sample() InputFrame {
	x, y := ebiten.CursorPosition()
	frame := InputFrame{
		Forward: ebiten.IsKeyPressed(ebiten.KeyW),
		Back:    ebiten.IsKeyPressed(ebiten.KeyS),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD),
		Walk:    ebiten.IsKeyPressed(ebiten.KeyShiftLeft),
		Crouch:  ebiten.IsKeyPressed(ebiten.KeyControlLeft),
		Jump:    inpututil.IsKeyJustPressed(ebiten.KeySpace),

		FirePressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		FireHeld:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		FireReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),

		Escape:  inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		CursorX: x,
		CursorY: y,
		Click:   inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}

	// 光标捕获模式下 CursorPosition 不受窗口边界限制，差值即鼠标位移
	if in.hasLast && ebiten.CursorMode() == ebiten.CursorModeCaptured {
		frame.LookDX = float64(x - in.lastX)
		frame.LookDY = float64(y - in.lastY)
	}
	in.lastX, in.lastY = x, y
	in.hasLast = true

	return frame
}

// ResetLook 丢弃下一帧的鼠标位移（切换光标模式时光标会跳变）
func (in *EbitenInput) ResetLook() {
	in.hasLast = false
}
