// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，main.go 只负责解析参数并调用 NewApp()。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/embedded"
	"github.com/decker502/shootrange/pkg/game"
	"github.com/decker502/shootrange/pkg/scenes"
	"github.com/decker502/shootrange/pkg/utils"
)

// gdataAppName 存档目录名
const gdataAppName = "shootrange"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Level 直接进入的关卡编号（从 1 开始），0 表示显示主菜单
	Level int
	// LevelsDir 从磁盘目录加载关卡，为空则使用嵌入的 data/levels
	LevelsDir string
	// Fullscreen 以全屏启动（也会读取已保存的设置）
	Fullscreen bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 使用嵌入关卡时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("关卡加载失败: %w", err)
	}
	if cfg.Level < 0 || (cfg.Level > 0 && !catalog.HasLevel(cfg.Level)) {
		return nil, fmt.Errorf("关卡 %d 不存在（共 %d 关）", cfg.Level, catalog.Count())
	}

	// 存档目录不可用时降级为内存模式
	gdataManager, err := gdata.Open(gdata.Config{AppName: gdataAppName})
	if err != nil {
		log.Printf("[App] Warning: 无法打开存档目录: %v (设置和成绩不会保存)", err)
		gdataManager = nil
	}
	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置初始化失败: %w", err)
	}
	saveManager, err := game.NewSaveManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("存档初始化失败: %w", err)
	}

	// 初始化音频
	audioContext := audio.NewContext(config.AudioSampleRate)
	audioManager := game.NewAudioManager(audioContext, settingsManager, embedded.ReadFile)
	audioManager.Preload(config.SoundGunshot)
	audioManager.PlayMusic(config.SoundAmbience)
	log.Printf("[App] AudioManager initialized")

	input := utils.NewEbitenInput()
	scene, err := scenes.NewRangeScene(scenes.RangeSceneOptions{
		Catalog:  catalog,
		Input:    input,
		Settings: settingsManager,
		Save:     saveManager,
		Sounds:   audioManager,
		Cursor:   scenes.NewEbitenCursor(input),
		FPS:      ebiten.ActualFPS,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Level > 0 {
		log.Printf("[App] 跳过主菜单，直接进入第 %d 关", cfg.Level)
		if err := scene.StartAt(cfg.Level); err != nil {
			return nil, err
		}
	}

	if cfg.Fullscreen || settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	return &App{
		sceneManager: sceneManager,
		settings:     settingsManager,
		verbose:      cfg.Verbose,
	}, nil
}

// loadCatalog 按配置选择关卡来源
func loadCatalog(cfg Config) (*config.LevelCatalog, error) {
	if cfg.LevelsDir != "" {
		log.Printf("[App] 从磁盘加载关卡: %s", cfg.LevelsDir)
		return config.LoadLevelCatalogDir(cfg.LevelsDir)
	}
	if !embedded.IsInitialized() {
		return nil, embedded.ErrNotInitialized
	}
	return config.LoadLevelCatalog(embedded.FS(), "data/levels")
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	return a.sceneManager.Update(config.FixedDeltaTime)
}

func (a *App) toggleFullscreen() {
	full := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(full)
	if !full {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	}
	a.settings.SetFullscreen(full)
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在游戏关闭时保存设置和成绩
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
