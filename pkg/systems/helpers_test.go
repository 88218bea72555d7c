package systems

import (
	"math"
	"testing"

	"github.com/decker502/shootrange/pkg/components"
	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/ecs"
	"github.com/decker502/shootrange/pkg/entities"
	"github.com/decker502/shootrange/pkg/game"
	"github.com/decker502/shootrange/pkg/physics"
	"github.com/decker502/shootrange/pkg/utils"
)

const dt = config.FixedDeltaTime

// testLevels 五个关卡，第3关只有一个靶子
// 靶子都在开始按钮的上方或两侧更远处
func testLevels() []*config.LevelConfig {
	counts := []int{3, 2, 1, 4, 2}
	durations := []float64{60, 45, 30, 40, 30}
	levels := make([]*config.LevelConfig, 0, len(counts))
	for i, n := range counts {
		targets := make([]utils.Vec3, 0, n)
		for j := 0; j < n; j++ {
			targets = append(targets, utils.V3(float64(j)*1.5-2, 2, -8-float64(i)))
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

type fataler interface {
	Fatalf(format string, args ...any)
}

// testWorld 完整的靶场：会话、玩家、地面和按固定顺序组装的管线
type testWorld struct {
	em       *ecs.EntityManager
	session  *game.Session
	input    *ScriptedInput
	player   ecs.EntityID
	systems  RangeSystems
	pipeline *Pipeline
}

func newTestWorld(t fataler, sounds SoundPlayer) *testWorld {
	catalog, err := config.NewLevelCatalog(testLevels())
	if err != nil {
		t.Fatalf("NewLevelCatalog() error: %v", err)
	}
	em := ecs.NewEntityManager()
	session := game.NewSession(em, catalog)
	player := entities.NewPlayerEntity(em, config.DefaultMouseSensitivity)
	entities.NewGroundEntity(em)

	raycast := physics.NewRaycastSystem(em)
	input := NewScriptedInput()
	inputSys := NewInputSystem(input, session)
	sys := RangeSystems{
		Input:    inputSys,
		Menu:     NewMenuSystem(em, session, inputSys),
		Movement: NewPlayerMovementSystem(em, session, inputSys, raycast, nil),
		Timer:    NewTimerSystem(session),
		Round:    NewRoundSystem(session),
		Gun:      NewGunSystem(em, session, inputSys, raycast, sounds),
		Tracer:   NewTracerSystem(em),
		HUD:      NewHUDSystem(em, session, func() float64 { return 60 }, nil),
	}
	return &testWorld{
		em:       em,
		session:  session,
		input:    input,
		player:   player,
		systems:  sys,
		pipeline: NewRangePipeline(sys),
	}
}

// step 依次回放输入帧，每帧执行一次管线
func (w *testWorld) step(frames ...utils.InputFrame) {
	for _, f := range frames {
		w.input.Push(f)
		w.pipeline.Update(dt)
	}
}

// idle 空输入运行 n 帧
func (w *testWorld) idle(n int) {
	for i := 0; i < n; i++ {
		w.step(utils.InputFrame{})
	}
}

// aimAt 调整玩家视角使准星对准 p
func (w *testWorld) aimAt(p utils.Vec3) {
	eye, _ := entities.EyePosition(w.em, w.player)
	d := p.Sub(eye)
	cam, _ := ecs.GetComponent[*components.CameraComponent](w.em, w.player)
	cam.Yaw = math.Atan2(-d.X, -d.Z)
	cam.Pitch = math.Asin(d.Y / d.Length())
}

// shoot 按下并松开扳机
func (w *testWorld) shoot() {
	w.step(
		utils.InputFrame{FirePressed: true, FireHeld: true},
		utils.InputFrame{FireReleased: true},
	)
}

// click 在菜单按钮上点击（index/count 决定按钮位置）
func (w *testWorld) click(index, count int) {
	x, y, bw, bh := config.MenuButtonRect(index, count)
	cx, cy := int(x+bw/2), int(y+bh/2)
	w.step(
		utils.InputFrame{CursorX: cx, CursorY: cy, FirePressed: true, FireHeld: true},
		utils.InputFrame{CursorX: cx, CursorY: cy, FireReleased: true, Click: true},
	)
}

func (w *testWorld) playerPos() utils.Vec3 {
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, w.player)
	return pos.Position
}

func (w *testWorld) tracerCount() int {
	return len(ecs.GetEntitiesWith1[*components.TracerComponent](w.em))
}

// startPlaying 从主菜单点击 PLAY 并射击开始按钮
func (w *testWorld) startPlaying(t fataler) {
	w.click(0, 2)
	if w.session.Round != game.RoundStart {
		t.Fatalf("after PLAY: %s, want Start", w.session.Round)
	}
	w.aimAt(config.StartButtonPosition)
	w.shoot()
	if w.session.Round != game.RoundPlaying {
		t.Fatalf("after shooting start button: %s, want Playing", w.session.Round)
	}
}

// clearLevel 依次瞄准并击毁当前关卡全部靶子
func (w *testWorld) clearLevel() {
	for _, p := range w.session.Targets.Positions() {
		w.aimAt(p)
		w.shoot()
	}
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
