package systems

import (
	"testing"

	"github.com/decker502/shootrange/pkg/components"
	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/ecs"
	"github.com/decker502/shootrange/pkg/entities"
	"github.com/decker502/shootrange/pkg/utils"
)

func TestTracerMovesTowardsHitPoint(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewTracerSystem(em)
	id, _ := entities.NewTracerEntity(em, utils.V3(0, 1, 0), utils.V3(0, 1, -100))

	sys.Update(dt)

	tr, ok := ecs.GetComponent[*components.TracerComponent](em, id)
	if !ok {
		t.Fatal("tracer destroyed after one frame")
	}
	if !near(tr.Start.Z, -config.TracerSpeed*dt, 1e-9) {
		t.Errorf("Start.Z = %v, want %v", tr.Start.Z, -config.TracerSpeed*dt)
	}
	if !near(tr.LifeTime, config.TracerLifeTime-dt, 1e-9) {
		t.Errorf("LifeTime = %v", tr.LifeTime)
	}
}

func TestTracerExpires(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewTracerSystem(em)
	id, _ := entities.NewTracerEntity(em, utils.V3(0, 1, 0), utils.V3(0, 1, -100))

	frames := 0
	for em.Exists(id) && frames < 100 {
		sys.Update(dt)
		frames++
	}
	// 0.3 秒约 18 帧
	if frames < 17 || frames > 19 {
		t.Errorf("tracer lived %d frames, want about 18", frames)
	}
}

func TestTracerDestroyedOnArrival(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewTracerSystem(em)
	id, _ := entities.NewTracerEntity(em, utils.V3(0, 1, 0), utils.V3(0, 1, -0.5))

	sys.Update(dt)

	if em.Exists(id) {
		t.Error("tracer shorter than one frame of travel should be gone")
	}
}
