package components

import "github.com/decker502/shootrange/pkg/utils"

// PlayerComponent 玩家运动状态
type PlayerComponent struct {
	Velocity       utils.Vec3
	Speed          float64 // 水平移动速度（米/秒）
	JumpHeight     float64 // 起跳瞬间的竖直速度（米/帧）
	AirModifier    float64
	CrouchModifier float64
	EyeHeight      float64 // 当前视点高度（蹲下时降低）
	IsGrounded     bool
	IsCrouched     bool
}

// CameraComponent 第一人称视角
type CameraComponent struct {
	Pitch       float64
	Yaw         float64
	Sensitivity float64
}
