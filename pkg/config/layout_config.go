package config

// 布局配置常量
// 本文件定义了窗口尺寸、HUD 文本与菜单按钮的屏幕坐标（像素）

// Window Configuration (窗口配置)
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 1280

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 720

	// GameWindowTitle 窗口标题
	GameWindowTitle = "Shooting Range"
)

// HUD Configuration (HUD 文本配置)
const (
	// HUDFPSX FPS 文本位置
	HUDFPSX = 16.0
	HUDFPSY = 16.0

	// HUDTargetsX "TARGETS LEFT" 文本位置（屏幕宽度 44.5% 处）
	HUDTargetsX = GameWindowWidth * 0.445
	HUDTargetsY = 16.0

	// HUDTimerX 倒计时文本位置
	HUDTimerX = GameWindowWidth - 220.0
	HUDTimerY = 16.0

	// HUDLevelX 关卡文本位置
	HUDLevelX = GameWindowWidth - 220.0
	HUDLevelY = 40.0

	// HUDBannerY 回合提示横幅的 Y 坐标（水平居中）
	HUDBannerY = GameWindowHeight * 0.25

	// CrosshairSize 准星半长（像素）
	CrosshairSize = 8.0
)

// Menu Configuration (菜单按钮配置)
const (
	// MenuButtonWidth 菜单按钮宽度
	MenuButtonWidth = 250.0

	// MenuButtonHeight 菜单按钮高度
	MenuButtonHeight = 65.0

	// MenuButtonMargin 菜单按钮外边距
	MenuButtonMargin = 20.0

	// MenuTitle 主菜单标题
	MenuTitle = "SHOOTING RANGE"

	// MenuTitleY 主菜单标题 Y 坐标
	MenuTitleY = GameWindowHeight*0.5 - 160.0

	// MenuSubtitleY 主菜单成绩说明 Y 坐标
	MenuSubtitleY = MenuTitleY + 24.0
)

// MenuButtonRect 返回第 index 个菜单按钮的屏幕矩形（在屏幕中央纵向排列）
//
// 参数：
//   - index: 按钮序号（从 0 开始）
//   - count: 按钮总数
//
// 返回：x, y, width, height
func MenuButtonRect(index, count int) (float64, float64, float64, float64) {
	step := MenuButtonHeight + 2*MenuButtonMargin
	totalHeight := float64(count)*step - 2*MenuButtonMargin
	x := (GameWindowWidth - MenuButtonWidth) / 2
	y := (GameWindowHeight-totalHeight)/2 + float64(index)*step
	return x, y, MenuButtonWidth, MenuButtonHeight
}
