package main

import (
	"math"

	"github.com/decker502/shootrange/pkg/components"
	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/ecs"
	"github.com/decker502/shootrange/pkg/entities"
	"github.com/decker502/shootrange/pkg/game"
	"github.com/decker502/shootrange/pkg/utils"
)

// bot 百发百中的自动玩家，实现 systems.InputSource
//
// 每两帧完成一次动作：第一帧瞄准并按下，第二帧松开。
// 通关后依次通过暂停菜单和主菜单退出。
type bot struct {
	em        *ecs.EntityManager
	session   *game.Session
	player    ecs.EntityID
	missLevel int // 该关卡第一次故意不开枪，等待超时
	missed    bool
	finished  bool
	pressing  bool
	last      utils.InputFrame
}

func (b *bot) Sample() utils.InputFrame {
	b.pressing = !b.pressing
	if b.pressing {
		b.last = b.press()
		return b.last
	}
	return b.release()
}

// press 计算按下帧的输入
func (b *bot) press() utils.InputFrame {
	switch b.session.Round {
	case game.RoundMainMenu:
		if b.finished {
			return clickAt(1) // QUIT
		}
		return clickAt(0) // PLAY
	case game.RoundPauseMenu:
		return clickAt(1) // MAIN MENU
	case game.RoundWon:
		b.finished = true
	case game.RoundFailed:
		b.missed = true
		return b.shootStartButton()
	case game.RoundStart:
		return b.shootStartButton()
	case game.RoundPlaying:
		if n, _ := b.session.Level.Ordinal(); n == b.missLevel && !b.missed {
			return utils.InputFrame{}
		}
		if targets := b.session.Targets.Positions(); len(targets) > 0 {
			return b.shootAt(targets[0])
		}
	}
	return utils.InputFrame{}
}

// release 松开扳机；菜单按钮在松开时触发
func (b *bot) release() utils.InputFrame {
	f := utils.InputFrame{
		CursorX:      b.last.CursorX,
		CursorY:      b.last.CursorY,
		FireReleased: b.last.FirePressed,
		Click:        b.last.FirePressed,
	}
	if b.session.Round == game.RoundWon {
		f.Escape = true
	}
	return f
}

func (b *bot) shootStartButton() utils.InputFrame {
	pos, ok := ecs.GetComponent[*components.PositionComponent](b.em, b.session.StartButton())
	if !ok {
		return utils.InputFrame{}
	}
	return b.shootAt(pos.Position)
}

// shootAt 转动视角对准 p 并扣动扳机
func (b *bot) shootAt(p utils.Vec3) utils.InputFrame {
	eye, ok := entities.EyePosition(b.em, b.player)
	cam, ok2 := ecs.GetComponent[*components.CameraComponent](b.em, b.player)
	if !ok || !ok2 || cam.Sensitivity == 0 {
		return utils.InputFrame{}
	}
	d := p.Sub(eye)
	yaw := math.Atan2(-d.X, -d.Z)
	pitch := math.Asin(d.Y / d.Length())

	// 视角系统：Yaw -= dx*sens，Pitch -= dy*sens
	dyaw := math.Remainder(cam.Yaw-yaw, 2*math.Pi)
	return utils.InputFrame{
		LookDX:      dyaw / cam.Sensitivity,
		LookDY:      (cam.Pitch - pitch) / cam.Sensitivity,
		FirePressed: true,
		FireHeld:    true,
	}
}

func clickAt(index int) utils.InputFrame {
	x, y, w, h := config.MenuButtonRect(index, 2)
	return utils.InputFrame{
		CursorX:     int(x + w/2),
		CursorY:     int(y + h/2),
		FirePressed: true,
		FireHeld:    true,
	}
}
