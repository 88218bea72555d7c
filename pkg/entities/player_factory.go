package entities

import (
	"log"

	"github.com/decker502/shootrange/pkg/components"
	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/ecs"
	"github.com/decker502/shootrange/pkg/utils"
)

// NewPlayerEntity 创建玩家实体（位于出生点，属于 ScopeWorld，跨回合保留）
//
// 玩家同时携带摄像机和枪械组件：视角由 CameraComponent 驱动，
// 射击射线从视点沿摄像机朝向发出。
//
// 参数:
//   - em: 实体管理器
//   - sensitivity: 鼠标灵敏度（弧度/像素）
//
// 返回:
//   - ecs.EntityID: 玩家实体ID
func NewPlayerEntity(em *ecs.EntityManager, sensitivity float64) ecs.EntityID {
	id := em.CreateEntity(ecs.ScopeWorld)

	em.AddComponent(id, &components.PositionComponent{Position: config.PlayerSpawn})
	em.AddComponent(id, &components.PlayerComponent{
		Speed:          config.PlayerSpeed,
		JumpHeight:     config.PlayerJumpHeight,
		AirModifier:    config.PlayerAirModifier,
		CrouchModifier: config.PlayerCrouchModifier,
		EyeHeight:      config.PlayerEyeHeight,
	})
	em.AddComponent(id, &components.CameraComponent{Sensitivity: sensitivity})
	em.AddComponent(id, &components.GunComponent{
		FireDelay: components.TimerComponent{
			Name:       "fire_delay",
			TargetTime: config.GunFireDelay,
			// 初始即可开火
			CurrentTime: config.GunFireDelay,
			IsReady:     true,
		},
		Range: config.GunRange,
	})
	// 玩家碰撞体不是静态体，射击与地面检测都不会命中自身
	em.AddComponent(id, &components.CollisionComponent{
		Shape:  components.ShapeSphere,
		Radius: config.PlayerColliderRadius,
	})

	log.Printf("[PlayerFactory] 创建玩家 %d at %+v", id, config.PlayerSpawn)
	return id
}

// NewGroundEntity 创建地面碰撞盒（顶面位于 y=0）
func NewGroundEntity(em *ecs.EntityManager) ecs.EntityID {
	id := em.CreateEntity(ecs.ScopeWorld)
	em.AddComponent(id, &components.PositionComponent{
		Position: utils.V3(0, -config.GroundHalfExtents.Y, 0),
	})
	em.AddComponent(id, &components.CollisionComponent{
		Shape:       components.ShapeBox,
		HalfExtents: config.GroundHalfExtents,
		Fixed:       true,
	})
	return id
}

// EyePosition 返回玩家视点的世界坐标
func EyePosition(em *ecs.EntityManager, player ecs.EntityID) (utils.Vec3, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, player)
	if !ok {
		return utils.Vec3{}, false
	}
	p, ok := ecs.GetComponent[*components.PlayerComponent](em, player)
	if !ok {
		return pos.Position, true
	}
	return pos.Position.Add(utils.V3(0, p.EyeHeight, 0)), true
}

// PlayerCamera 根据玩家状态构造透视摄像机
func PlayerCamera(em *ecs.EntityManager, player ecs.EntityID) (utils.Camera, bool) {
	eye, ok := EyePosition(em, player)
	if !ok {
		return utils.Camera{}, false
	}
	cam := utils.Camera{Position: eye, FOV: config.CameraFOV, Near: config.CameraNear}
	if c, ok := ecs.GetComponent[*components.CameraComponent](em, player); ok {
		cam.Yaw = c.Yaw
		cam.Pitch = c.Pitch
	}
	return cam, true
}
