package game

import (
	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/ecs"
	"github.com/decker502/shootrange/pkg/utils"
)

// testLevels 五个关卡，第3关只有一个靶子
func testLevels() []*config.LevelConfig {
	counts := []int{5, 4, 1, 6, 3}
	durations := []float64{60, 45, 30, 40, 30}
	levels := make([]*config.LevelConfig, 0, len(counts))
	for i, n := range counts {
		targets := make([]utils.Vec3, 0, n)
		for j := 0; j < n; j++ {
			targets = append(targets, utils.V3(float64(j)-2, 1.5, -8-float64(i)))
		}
		levels = append(levels, &config.LevelConfig{
			ID:           i + 1,
			Name:         "test",
			Duration:     durations[i],
			TargetHealth: 1,
			Targets:      targets,
		})
	}
	return levels
}

// fataler 同时兼容 *testing.T 与 *rapid.T
type fataler interface {
	Fatalf(format string, args ...any)
}

func newTestSession(t fataler) *Session {
	catalog, err := config.NewLevelCatalog(testLevels())
	if err != nil {
		t.Fatalf("NewLevelCatalog() error: %v", err)
	}
	return NewSession(ecs.NewEntityManager(), catalog)
}

// clearTargets 击毁当前关卡全部靶子
func clearTargets(t fataler, s *Session) {
	for _, id := range s.Targets.IDs() {
		for s.Targets.Hit(id) == HitDamaged {
		}
	}
	if s.Targets.Count() != 0 {
		t.Fatalf("targets left after clearing: %d", s.Targets.Count())
	}
}

func mustValid(t fataler, s *Session) {
	if err := s.Validate(); err != nil {
		t.Fatalf("invariant violated in %s × %s: %v", s.Round, s.Level, err)
	}
}
