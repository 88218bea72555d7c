package systems

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/shootrange/pkg/components"
	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/ecs"
	"github.com/decker502/shootrange/pkg/entities"
	"github.com/decker502/shootrange/pkg/game"
	"github.com/decker502/shootrange/pkg/utils"
)

var (
	skyColor         = color.RGBA{R: 24, G: 28, B: 40, A: 255}
	gridColor        = color.RGBA{R: 70, G: 80, B: 90, A: 255}
	targetColor      = color.RGBA{R: 220, G: 60, B: 50, A: 255}
	targetHurtColor  = color.RGBA{R: 250, G: 190, B: 60, A: 255}
	startButtonColor = color.RGBA{R: 80, G: 200, B: 120, A: 255}
	tracerColor      = color.RGBA{R: 255, G: 240, B: 160, A: 255}
	crosshairColor   = color.RGBA{R: 255, G: 255, B: 255, A: 220}
	overlayColor     = color.RGBA{R: 0, G: 0, B: 0, A: 150}
	buttonColor      = color.RGBA{R: 60, G: 60, B: 70, A: 255}
	buttonHoverColor = color.RGBA{R: 90, G: 90, B: 110, A: 255}
	buttonDownColor  = color.RGBA{R: 40, G: 40, B: 50, A: 255}
	textColor        = color.White
)

// 地面网格范围与间距（米）
const (
	gridExtent  = 20
	gridSpacing = 2
)

// RenderSystem 绘制靶场
//
// 世界以线框方式绘制：地面网格、靶子（按距离缩放的圆）、开始按钮（线框盒）和弹道。
// 之后依次叠加准星、暂停遮罩、菜单按钮和所有可见文本实体。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	session       *game.Session
	player        ecs.EntityID
	face          text.Face
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, session *game.Session, player ecs.EntityID) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		session:       session,
		player:        player,
		face:          text.NewGoXFace(basicfont.Face7x13),
	}
}

// Face 返回 HUD 字体
func (s *RenderSystem) Face() text.Face {
	return s.face
}

// Draw 绘制一帧
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)

	round := s.session.Round
	if round != game.RoundMainMenu {
		if cam, ok := entities.PlayerCamera(s.entityManager, s.player); ok {
			s.drawGrid(screen, cam)
			s.drawStartButton(screen, cam)
			s.drawTargets(screen, cam)
			s.drawTracers(screen, cam)
		}
		if round != game.RoundPauseMenu {
			s.drawCrosshair(screen)
		}
	}
	if round == game.RoundPauseMenu {
		vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.GameWindowHeight, overlayColor, false)
	}

	s.drawButtons(screen)
	s.drawTexts(screen)
}

func (s *RenderSystem) drawGrid(screen *ebiten.Image, cam utils.Camera) {
	for i := -gridExtent; i <= gridExtent; i += gridSpacing {
		f := float64(i)
		s.line(screen, cam, utils.V3(f, 0, -gridExtent), utils.V3(f, 0, gridExtent), 1, gridColor)
		s.line(screen, cam, utils.V3(-gridExtent, 0, f), utils.V3(gridExtent, 0, f), 1, gridColor)
	}
}

func (s *RenderSystem) drawStartButton(screen *ebiten.Image, cam utils.Camera) {
	id := s.session.StartButton()
	if id == 0 {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id)
	if !ok {
		return
	}
	for _, e := range BoxEdges(pos.Position, col.HalfExtents) {
		s.line(screen, cam, e[0], e[1], 2, startButtonColor)
	}
}

type projectedTarget struct {
	x, y, r, depth float32
	hurt           bool
}

func (s *RenderSystem) drawTargets(screen *ebiten.Image, cam utils.Camera) {
	var visible []projectedTarget
	for _, id := range s.session.Targets.IDs() {
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			continue
		}
		sx, sy, depth, ok := cam.WorldToScreen(pos.Position, config.GameWindowWidth, config.GameWindowHeight)
		if !ok {
			continue
		}
		r := cam.ProjectRadius(config.TargetRadius, depth, config.GameWindowHeight)
		hurt := false
		if h, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id); ok {
			hurt = h.CurrentHealth < h.MaxHealth
		}
		visible = append(visible, projectedTarget{float32(sx), float32(sy), float32(r), float32(depth), hurt})
	}

	// 远处先画
	sort.Slice(visible, func(i, j int) bool { return visible[i].depth > visible[j].depth })
	for _, t := range visible {
		c := targetColor
		if t.hurt {
			c = targetHurtColor
		}
		vector.DrawFilledCircle(screen, t.x, t.y, max(t.r, 1), c, true)
	}
}

func (s *RenderSystem) drawTracers(screen *ebiten.Image, cam utils.Camera) {
	for _, id := range ecs.GetEntitiesWith1[*components.TracerComponent](s.entityManager) {
		tr, _ := ecs.GetComponent[*components.TracerComponent](s.entityManager, id)
		life := utils.Clamp(tr.LifeTime/config.TracerLifeTime, 0, 1)
		c := tracerColor
		c.A = uint8(255 * utils.EaseOutQuad(life))
		width := float32(utils.Lerp(1, 3, life))
		s.line(screen, cam, tr.Start, tr.End, width, c)
	}
}

func (s *RenderSystem) drawCrosshair(screen *ebiten.Image) {
	cx := float32(config.GameWindowWidth / 2)
	cy := float32(config.GameWindowHeight / 2)

	// 开火后准星短暂张开
	size := float32(config.CrosshairSize)
	if gun, ok := ecs.GetComponent[*components.GunComponent](s.entityManager, s.player); ok && gun.ShotsFired > 0 {
		progress := utils.Clamp(gun.FireDelay.CurrentTime/gun.FireDelay.TargetTime, 0, 1)
		size += float32(4 * (1 - utils.EaseOutCubic(progress)))
	}

	vector.StrokeLine(screen, cx-size, cy, cx+size, cy, 2, crosshairColor, false)
	vector.StrokeLine(screen, cx, cy-size, cx, cy+size, 2, crosshairColor, false)
}

func (s *RenderSystem) drawButtons(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager) {
		b, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		c := buttonColor
		switch b.State {
		case components.UIHovered:
			c = buttonHoverColor
		case components.UIClicked:
			c = buttonDownColor
		}
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), c, false)
		vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), 2, textColor, false)

		x := utils.CenteredX(b.Text, s.face, b.X, b.Width)
		y := b.Y + b.Height/2 - float64(basicfont.Face7x13.Height)/2
		s.text(screen, b.Text, x, y)
	}
}

func (s *RenderSystem) drawTexts(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.TextComponent](s.entityManager) {
		t, _ := ecs.GetComponent[*components.TextComponent](s.entityManager, id)
		if t.Hidden {
			continue
		}
		str := t.String()
		if str == "" {
			continue
		}
		if !t.Centered {
			s.text(screen, str, t.X, t.Y)
			continue
		}
		y := t.Y
		for _, line := range utils.WrapText(str, s.face, config.GameWindowWidth*0.8) {
			s.text(screen, line, t.X-utils.MeasureText(line, s.face)/2, y)
			y += float64(basicfont.Face7x13.Height) + 4
		}
	}
}

func (s *RenderSystem) text(screen *ebiten.Image, str string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, str, s.face, op)
}

func (s *RenderSystem) line(screen *ebiten.Image, cam utils.Camera, a, b utils.Vec3, width float32, c color.Color) {
	x1, y1, x2, y2, ok := ProjectSegment(cam, a, b, config.GameWindowWidth, config.GameWindowHeight)
	if !ok {
		return
	}
	vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), width, c, true)
}

// ProjectSegment 将世界空间线段投影到屏幕
// 线段穿过近裁剪面时在近裁剪面处截断；完全位于摄像机之后时 ok 为 false
func ProjectSegment(cam utils.Camera, a, b utils.Vec3, width, height int) (x1, y1, x2, y2 float64, ok bool) {
	_, _, forward := cam.Basis()
	da := a.Sub(cam.Position).Dot(forward)
	db := b.Sub(cam.Position).Dot(forward)
	near := cam.Near * 1.01

	if da < near && db < near {
		return 0, 0, 0, 0, false
	}
	if da < near {
		a = a.Add(b.Sub(a).Scale((near - da) / (db - da)))
	} else if db < near {
		b = b.Add(a.Sub(b).Scale((near - db) / (da - db)))
	}

	x1, y1, _, okA := cam.WorldToScreen(a, width, height)
	x2, y2, _, okB := cam.WorldToScreen(b, width, height)
	return x1, y1, x2, y2, okA && okB
}

// BoxEdges 返回轴对齐盒的 12 条棱
func BoxEdges(center, half utils.Vec3) [12][2]utils.Vec3 {
	var c [8]utils.Vec3
	for i := range c {
		sx, sy, sz := -1.0, -1.0, -1.0
		if i&1 != 0 {
			sx = 1
		}
		if i&2 != 0 {
			sy = 1
		}
		if i&4 != 0 {
			sz = 1
		}
		c[i] = center.Add(utils.V3(sx*half.X, sy*half.Y, sz*half.Z))
	}
	return [12][2]utils.Vec3{
		{c[0], c[1]}, {c[2], c[3]}, {c[4], c[5]}, {c[6], c[7]},
		{c[0], c[2]}, {c[1], c[3]}, {c[4], c[6]}, {c[5], c[7]},
		{c[0], c[4]}, {c[1], c[5]}, {c[2], c[6]}, {c[3], c[7]},
	}
}
