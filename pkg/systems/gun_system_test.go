package systems

import (
	"math"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/decker502/shootrange/pkg/components"
	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/ecs"
	"github.com/decker502/shootrange/pkg/game"
	"github.com/decker502/shootrange/pkg/systems/mocks"
	"github.com/decker502/shootrange/pkg/utils"
)

func TestGunFiresOnPressAndPlaysSound(t *testing.T) {
	ctrl := gomock.NewController(t)
	sounds := mocks.NewMockSoundPlayer(ctrl)
	sounds.EXPECT().PlaySound(config.SoundGunshot).Return(true).Times(1)

	w := newTestWorld(t, sounds)
	w.session.Handle(game.EventPlay)
	w.aimAt(config.StartButtonPosition)
	w.shoot()

	if w.session.Round != game.RoundPlaying {
		t.Errorf("Round = %s, want Playing", w.session.Round)
	}
	if w.tracerCount() != 1 {
		t.Errorf("tracers = %d, want 1", w.tracerCount())
	}
}

func TestGunAutomaticFire(t *testing.T) {
	ctrl := gomock.NewController(t)
	sounds := mocks.NewMockSoundPlayer(ctrl)
	// 按下立即开火，之后 29 帧内每 0.1 秒一发
	sounds.EXPECT().PlaySound(config.SoundGunshot).Return(true).Times(5)

	w := newTestWorld(t, sounds)
	w.session.Handle(game.EventPlay)
	cam, _ := ecs.GetComponent[*components.CameraComponent](w.em, w.player)
	cam.Pitch = config.MaxVerticalAngle // 朝天射击，不命中任何物体

	w.step(utils.InputFrame{FirePressed: true, FireHeld: true})
	for i := 0; i < 29; i++ {
		w.step(utils.InputFrame{FireHeld: true})
	}
	w.step(utils.InputFrame{FireReleased: true})
	w.idle(30)

	gun, _ := ecs.GetComponent[*components.GunComponent](w.em, w.player)
	if gun.ShotsFired != 5 {
		t.Errorf("ShotsFired = %d, want 5", gun.ShotsFired)
	}
	if w.tracerCount() != 0 {
		t.Errorf("tracers = %d, a miss must not leave a tracer", w.tracerCount())
	}
}

func TestGunRapidTapsFireImmediately(t *testing.T) {
	ctrl := gomock.NewController(t)
	sounds := mocks.NewMockSoundPlayer(ctrl)
	sounds.EXPECT().PlaySound(gomock.Any()).Return(true).Times(3)

	w := newTestWorld(t, sounds)
	w.session.Handle(game.EventPlay)
	cam, _ := ecs.GetComponent[*components.CameraComponent](w.em, w.player)
	cam.Pitch = config.MaxVerticalAngle

	// 每次重新按下都立即开火，不受射击间隔限制
	for i := 0; i < 3; i++ {
		w.shoot()
	}
}

func TestGunSilentInMenus(t *testing.T) {
	ctrl := gomock.NewController(t)
	sounds := mocks.NewMockSoundPlayer(ctrl)
	// 没有任何期望：菜单中开火会让 gomock 报错

	w := newTestWorld(t, sounds)
	for i := 0; i < 10; i++ {
		w.step(utils.InputFrame{FirePressed: true, FireHeld: true})
	}
	w.step(utils.InputFrame{FireReleased: true, Click: true})
}

func TestGunTriggerReleasedByPause(t *testing.T) {
	ctrl := gomock.NewController(t)
	sounds := mocks.NewMockSoundPlayer(ctrl)
	sounds.EXPECT().PlaySound(config.SoundGunshot).Return(true).Times(1)

	w := newTestWorld(t, sounds)
	w.session.Handle(game.EventPlay)
	cam, _ := ecs.GetComponent[*components.CameraComponent](w.em, w.player)
	cam.Pitch = config.MaxVerticalAngle

	w.step(utils.InputFrame{FirePressed: true, FireHeld: true})
	w.step(utils.InputFrame{FireHeld: true, Escape: true})
	w.step(utils.InputFrame{FireHeld: true})

	gun, _ := ecs.GetComponent[*components.GunComponent](w.em, w.player)
	if gun.Shooting {
		t.Error("trigger still held after pausing")
	}
}

func TestGunHitDamagesTarget(t *testing.T) {
	w := newTestWorld(t, nil)
	w.startPlaying(t)
	before := w.session.Targets.Count()
	target := w.session.Targets.IDs()[0]
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, target)

	w.aimAt(pos.Position)
	w.shoot()

	if w.session.Targets.Count() != before-1 {
		t.Errorf("Count() = %d, want %d", w.session.Targets.Count(), before-1)
	}
	if w.em.Exists(target) {
		t.Error("target still alive")
	}
	if w.systems.HUD.Text(HUDTargets) != "TARGETS LEFT: 2" {
		t.Errorf("HUD = %q", w.systems.HUD.Text(HUDTargets))
	}
}

func TestGunIgnoresTargetsDuringStart(t *testing.T) {
	w := newTestWorld(t, nil)
	w.click(0, 2)
	if w.session.Round != game.RoundStart {
		t.Fatalf("after PLAY: %s, want Start", w.session.Round)
	}
	before := w.session.Targets.Count()

	// 选一个不在开始按钮射线方向上的靶子
	var aim utils.Vec3
	found := false
	for _, p := range w.session.Targets.Positions() {
		if math.Abs(p.X) > 1 {
			aim, found = p, true
			break
		}
	}
	if !found {
		t.Fatal("no target clear of the start button")
	}
	w.aimAt(aim)
	w.shoot()

	if w.session.Targets.Count() != before {
		t.Errorf("Count() = %d in Start, want %d", w.session.Targets.Count(), before)
	}
	if w.session.Round != game.RoundStart || w.session.Timer.Elapsed() != 0 {
		t.Errorf("round = %s, elapsed = %v", w.session.Round, w.session.Timer.Elapsed())
	}
	if w.tracerCount() != 1 {
		t.Errorf("tracers = %d, want 1", w.tracerCount())
	}
}

func TestGunGroundHitLeavesTargets(t *testing.T) {
	w := newTestWorld(t, nil)
	w.startPlaying(t)
	w.idle(30) // 等待开始按钮的弹道消失
	before := w.session.Targets.Count()

	// 朝地面射击：命中地面，生成弹道但不影响靶子
	cam, _ := ecs.GetComponent[*components.CameraComponent](w.em, w.player)
	cam.Pitch = -0.5
	w.step(utils.InputFrame{FirePressed: true, FireHeld: true})

	if w.session.Targets.Count() != before {
		t.Errorf("Count() = %d, want %d", w.session.Targets.Count(), before)
	}
	if w.tracerCount() != 1 {
		t.Errorf("tracers = %d, want 1", w.tracerCount())
	}
}

func TestMuzzlePosition(t *testing.T) {
	cam := utils.Camera{Position: utils.V3(0, 1, 0)}
	got := MuzzlePosition(cam)
	want := utils.V3(config.MuzzleOffset.X, 1+config.MuzzleOffset.Y, -config.MuzzleOffset.Z)
	if !near(got.X, want.X, 1e-9) || !near(got.Y, want.Y, 1e-9) || !near(got.Z, want.Z, 1e-9) {
		t.Errorf("MuzzlePosition() = %+v, want %+v", got, want)
	}
}
