package entities

import (
	"fmt"

	"github.com/decker502/shootrange/pkg/components"
	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/ecs"
	"github.com/decker502/shootrange/pkg/utils"
)

// NewTracerEntity 创建弹道轨迹实体
// 轨迹从枪口指向命中点，起点逐帧向命中点推进，到达或寿命耗尽后销毁
//
// 参数:
//   - em: 实体管理器
//   - start: 枪口世界坐标
//   - end: 命中点世界坐标
//
// 返回:
//   - ecs.EntityID: 轨迹实体ID，失败返回 0
//   - error: 实体管理器为空时返回错误
func NewTracerEntity(em *ecs.EntityManager, start, end utils.Vec3) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	id := em.CreateEntity(ecs.ScopeGame)
	em.AddComponent(id, &components.TracerComponent{
		Start:    start,
		End:      end,
		LifeTime: config.TracerLifeTime,
	})
	return id, nil
}
