package entities

import (
	"github.com/decker502/shootrange/pkg/components"
	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/ecs"
)

// NewMenuButton 创建菜单按钮实体（ScopeMenu）
//
// 参数：
//   - em: 实体管理器
//   - action: 按钮动作
//   - text: 按钮文字
//   - index, count: 按钮在菜单中的序号与总数，决定屏幕位置
//
// 返回：
//   - 按钮实体ID
func NewMenuButton(em *ecs.EntityManager, action components.MenuAction, text string, index, count int) ecs.EntityID {
	x, y, w, h := config.MenuButtonRect(index, count)

	id := em.CreateEntity(ecs.ScopeMenu)
	em.AddComponent(id, &components.ButtonComponent{
		Action: action,
		Text:   text,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		State:  components.UINormal,
	})
	return id
}

// NewTextEntity 创建文本实体
// label 为固定前缀，Value 由系统逐帧更新
func NewTextEntity(em *ecs.EntityManager, scope ecs.Scope, label string, x, y float64) ecs.EntityID {
	id := em.CreateEntity(scope)
	em.AddComponent(id, &components.TextComponent{
		Label: label,
		X:     x,
		Y:     y,
	})
	return id
}
