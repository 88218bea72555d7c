package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 场景：射击场、以及将来可能增加的设置界面等
type Scene interface {
	// Update 推进一帧逻辑，deltaTime 为秒。
	// 返回 ebiten.Termination 表示请求退出程序。
	Update(deltaTime float64) error

	// Draw 绘制到屏幕
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：程序退出时保存状态
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}
