package components

// UIState represents the current state of a UI element (e.g., button).
type UIState int

const (
	// UINormal indicates the UI element is in its default state.
	UINormal UIState = iota
	// UIHovered indicates the mouse cursor is hovering over the UI element.
	UIHovered
	// UIClicked indicates the UI element is being clicked.
	UIClicked
)

// MenuAction 菜单按钮动作
type MenuAction int

const (
	// MenuActionPlay 开始游戏
	MenuActionPlay MenuAction = iota
	// MenuActionQuit 退出程序
	MenuActionQuit
	// MenuActionResume 继续游戏
	MenuActionResume
	// MenuActionMainMenu 返回主菜单
	MenuActionMainMenu
)

// ButtonComponent 菜单按钮组件
// 坐标为屏幕空间左上角（像素）
type ButtonComponent struct {
	Action MenuAction
	Text   string
	X      float64
	Y      float64
	Width  float64
	Height float64
	State  UIState
}

// Contains 判断屏幕坐标是否落在按钮内
func (b *ButtonComponent) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.Width && y >= b.Y && y <= b.Y+b.Height
}

// TextComponent HUD 文本组件
// Label 为固定前缀（如 "FPS: "），Value 每帧由 HUD 系统刷新
type TextComponent struct {
	Label string
	Value string
	X     float64
	Y     float64

	Centered bool // 为 true 时 X 为文本中心
	Hidden   bool
}

// String 返回完整显示文本
func (t *TextComponent) String() string {
	return t.Label + t.Value
}
