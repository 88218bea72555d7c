package components

import "github.com/decker502/shootrange/pkg/utils"

// ColliderShape 碰撞体形状
type ColliderShape int

const (
	// ShapeSphere 球体（靶子）
	ShapeSphere ColliderShape = iota
	// ShapeBox 轴对齐盒（开始按钮、地面、墙体）
	ShapeBox
)

// CollisionComponent 定义实体的射线检测碰撞体
// 碰撞体中心与 PositionComponent 对齐
type CollisionComponent struct {
	Shape       ColliderShape
	Radius      float64    // 球体半径（ShapeSphere）
	HalfExtents utils.Vec3 // 半尺寸（ShapeBox）
	Fixed       bool       // 静态碰撞体（地面检测只考虑静态体）
	Sensor      bool       // 传感器不参与射线检测
}
