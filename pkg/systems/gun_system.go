package systems

import (
	"log"

	"github.com/decker502/shootrange/pkg/components"
	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/ecs"
	"github.com/decker502/shootrange/pkg/entities"
	"github.com/decker502/shootrange/pkg/game"
	"github.com/decker502/shootrange/pkg/physics"
	"github.com/decker502/shootrange/pkg/utils"
)

// GunSystem 射击与命中结算
//
// 按下左键立即开火，按住时每隔 FireDelay 自动开火。
// 射线从视点沿摄像机朝向发出，只检测静态碰撞体并排除玩家自身；
// Playing 中命中靶子时扣血，命中开始按钮时发出 EventStartButtonDestroyed。
// 任何命中都会生成一条从枪口到命中点的弹道轨迹。
type GunSystem struct {
	entityManager *ecs.EntityManager
	session       *game.Session
	input         *InputSystem
	raycast       *physics.RaycastSystem
	sounds        SoundPlayer // 可以为 nil
}

// NewGunSystem 创建射击系统
func NewGunSystem(em *ecs.EntityManager, session *game.Session, input *InputSystem, raycast *physics.RaycastSystem, sounds SoundPlayer) *GunSystem {
	return &GunSystem{
		entityManager: em,
		session:       session,
		input:         input,
		raycast:       raycast,
		sounds:        sounds,
	}
}

// Update 处理扳机状态并结算本帧的射击
func (s *GunSystem) Update(deltaTime float64) {
	inMenu := s.session.Round == game.RoundMainMenu || s.session.Round == game.RoundPauseMenu
	frame := s.input.Frame()

	for _, id := range ecs.GetEntitiesWith2[*components.GunComponent, *components.CameraComponent](s.entityManager) {
		gun, _ := ecs.GetComponent[*components.GunComponent](s.entityManager, id)

		// 菜单中松开扳机，避免关闭菜单后继续连射
		if inMenu {
			gun.Shooting = false
			gun.JustPressed = false
			continue
		}

		if frame.FirePressed {
			gun.Shooting = true
			gun.JustPressed = true
		} else if frame.FireReleased || !frame.FireHeld {
			gun.Shooting = false
		}

		ready := gun.FireDelay.Advance(deltaTime)
		if gun.Shooting && (gun.JustPressed || ready) {
			gun.FireDelay.Reset()
			gun.JustPressed = false
			s.fire(id, gun)
		}
	}
}

// fire 发射一次射线
func (s *GunSystem) fire(shooter ecs.EntityID, gun *components.GunComponent) {
	gun.ShotsFired++
	if s.sounds != nil {
		s.sounds.PlaySound(config.SoundGunshot)
	}

	cam, ok := entities.PlayerCamera(s.entityManager, shooter)
	if !ok {
		return
	}
	_, _, forward := cam.Basis()

	hit, ok := s.raycast.CastRay(
		physics.Ray{Origin: cam.Position, Direction: forward},
		gun.Range,
		physics.QueryFilter{ExcludeEntity: shooter, OnlyFixed: true},
	)
	if !ok {
		return
	}

	if _, err := entities.NewTracerEntity(s.entityManager, MuzzlePosition(cam), hit.Point); err != nil {
		log.Printf("[GunSystem] 创建弹道失败: %v", err)
	}
	s.resolveHit(hit)
}

// resolveHit 结算命中
func (s *GunSystem) resolveHit(hit physics.Hit) {
	switch {
	case s.session.Targets.Contains(hit.Entity):
		result := s.session.HitTarget(hit.Entity)
		log.Printf("[GunSystem] 命中靶子 %d (%v), 剩余 %d", hit.Entity, result, s.session.Targets.Count())
	case hit.Entity != 0 && hit.Entity == s.session.StartButton():
		s.session.Handle(game.EventStartButtonDestroyed)
	}
}

// MuzzlePosition 枪口世界坐标：视点加上摄像机坐标系下的 MuzzleOffset
func MuzzlePosition(cam utils.Camera) utils.Vec3 {
	right, up, forward := cam.Basis()
	return cam.Position.
		Add(right.Scale(config.MuzzleOffset.X)).
		Add(up.Scale(config.MuzzleOffset.Y)).
		Add(forward.Scale(config.MuzzleOffset.Z))
}
