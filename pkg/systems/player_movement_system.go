package systems

import (
	"github.com/decker502/shootrange/pkg/components"
	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/ecs"
	"github.com/decker502/shootrange/pkg/game"
	"github.com/decker502/shootrange/pkg/physics"
	"github.com/decker502/shootrange/pkg/utils"
)

// PlayerMovementSystem 玩家移动与鼠标视角
//
// 水平速度 = 方向 × 速度 × 摩擦 × 蹲下/静步系数 × dt，是本帧的位移；
// 竖直速度以“米/帧”计：起跳时直接赋值，每帧叠加重力后乘摩擦系数。
// 地面检测：从脚底略上方向下发出长度 PlayerGroundRayLength 的射线，只检测静态碰撞体。
type PlayerMovementSystem struct {
	entityManager *ecs.EntityManager
	session       *game.Session
	input         *InputSystem
	raycast       *physics.RaycastSystem
	invertY       func() bool
}

// groundProbeLift 地面射线起点相对脚底的抬升高度
const groundProbeLift = 0.1

// NewPlayerMovementSystem 创建玩家移动系统
// invertY 可以为 nil（不反转）
func NewPlayerMovementSystem(em *ecs.EntityManager, session *game.Session, input *InputSystem, raycast *physics.RaycastSystem, invertY func() bool) *PlayerMovementSystem {
	return &PlayerMovementSystem{
		entityManager: em,
		session:       session,
		input:         input,
		raycast:       raycast,
		invertY:       invertY,
	}
}

// Update 更新所有玩家实体
func (s *PlayerMovementSystem) Update(deltaTime float64) {
	// 菜单打开时玩家静止
	if s.session.Round == game.RoundMainMenu || s.session.Round == game.RoundPauseMenu {
		return
	}

	frame := s.input.Frame()
	for _, id := range ecs.GetEntitiesWith3[
		*components.PlayerComponent,
		*components.PositionComponent,
		*components.CameraComponent,
	](s.entityManager) {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		cam, _ := ecs.GetComponent[*components.CameraComponent](s.entityManager, id)

		s.look(cam, frame)
		s.move(id, player, pos, cam, frame, deltaTime)
	}
}

// look 鼠标视角：位移乘灵敏度，俯仰角限制在 ±MaxVerticalAngle
func (s *PlayerMovementSystem) look(cam *components.CameraComponent, frame utils.InputFrame) {
	dy := frame.LookDY
	if s.invertY != nil && s.invertY() {
		dy = -dy
	}
	cam.Yaw -= frame.LookDX * cam.Sensitivity
	cam.Pitch -= dy * cam.Sensitivity
	cam.Pitch = utils.Clamp(cam.Pitch, -config.MaxVerticalAngle, config.MaxVerticalAngle)
}

func (s *PlayerMovementSystem) move(id ecs.EntityID, player *components.PlayerComponent, pos *components.PositionComponent, cam *components.CameraComponent, frame utils.InputFrame, deltaTime float64) {
	hit, grounded := s.raycast.CastRay(
		physics.Ray{
			Origin:    pos.Position.Add(utils.V3(0, groundProbeLift, 0)),
			Direction: utils.V3(0, -1, 0),
		},
		config.PlayerGroundRayLength,
		physics.QueryFilter{ExcludeEntity: id, OnlyFixed: true},
	)
	player.IsGrounded = grounded

	// 蹲下
	player.IsCrouched = frame.Crouch
	if player.IsCrouched {
		player.EyeHeight = config.PlayerCrouchEyeHeight
	} else {
		player.EyeHeight = config.PlayerEyeHeight
	}

	// 水平方向
	forward, right := frame.MoveAxes()
	dir := utils.FlatForward(cam.Yaw).Scale(forward).
		Add(utils.FlatRight(cam.Yaw).Scale(right)).
		NormalizeOrZero()

	speed := player.Speed
	if frame.Walk {
		speed /= config.PlayerWalkDivisor
	}
	modifier := 1.0
	if player.IsCrouched {
		modifier = player.CrouchModifier
	}
	if !grounded {
		modifier *= player.AirModifier
	}
	horizontal := dir.Scale(speed * config.PlayerFriction * modifier * deltaTime)
	player.Velocity.X = horizontal.X
	player.Velocity.Z = horizontal.Z

	// 竖直方向：只有着地时可以起跳
	player.Velocity.Y -= config.PlayerGravity
	if grounded && frame.Jump {
		player.Velocity.Y = player.JumpHeight
	}
	player.Velocity.Y *= config.PlayerFriction

	// 本帧会落到地面以下时贴地
	if grounded && player.Velocity.Y <= 0 {
		gap := pos.Position.Y - hit.Point.Y
		if gap+player.Velocity.Y <= 0 {
			pos.Position.Y = hit.Point.Y
			player.Velocity.Y = 0
		}
	}

	pos.Position = pos.Position.Add(player.Velocity)
}
