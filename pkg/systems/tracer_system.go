package systems

import (
	"github.com/decker502/shootrange/pkg/components"
	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/ecs"
	"github.com/decker502/shootrange/pkg/utils"
)

// TracerSystem 推进弹道轨迹，到达命中点或寿命耗尽时销毁
type TracerSystem struct {
	entityManager *ecs.EntityManager
}

// NewTracerSystem 创建弹道系统
func NewTracerSystem(em *ecs.EntityManager) *TracerSystem {
	return &TracerSystem{entityManager: em}
}

// Update 更新所有弹道
func (s *TracerSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.TracerComponent](s.entityManager) {
		tracer, _ := ecs.GetComponent[*components.TracerComponent](s.entityManager, id)

		tracer.LifeTime -= deltaTime
		tracer.Start = utils.MoveTowards(tracer.Start, tracer.End, config.TracerSpeed*deltaTime)

		if tracer.LifeTime <= 0 || tracer.Start == tracer.End {
			s.entityManager.DestroyEntity(id)
		}
	}
	s.entityManager.RemoveMarkedEntities()
}
