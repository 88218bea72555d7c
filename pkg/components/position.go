package components

import "github.com/decker502/shootrange/pkg/utils"

// PositionComponent 存储实体在世界空间中的位置（米）
type PositionComponent struct {
	Position utils.Vec3
}
