package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/shootrange/pkg/utils"
)

// EbitenCursor 通过 Ebitengine 切换光标模式
type EbitenCursor struct {
	input *utils.EbitenInput
}

// NewEbitenCursor 创建光标控制器
// 切换模式时光标位置会跳变，input 不为 nil 时丢弃下一帧的视角位移
func NewEbitenCursor(input *utils.EbitenInput) *EbitenCursor {
	return &EbitenCursor{input: input}
}

// SetCaptured 实现 CursorControl
func (c *EbitenCursor) SetCaptured(captured bool) {
	if captured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	if c.input != nil {
		c.input.ResetLook()
	}
}
