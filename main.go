package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/shootrange/pkg/app"
	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/embedded"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细日志")
	level      = flag.Int("level", 0, "跳过主菜单，直接进入指定关卡（从 1 开始）")
	levelsDir  = flag.String("levels", "", "从磁盘目录加载 level-*.yaml，替代内置关卡")
	fullscreen = flag.Bool("fullscreen", false, "全屏启动")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Level:      *level,
		LevelsDir:  *levelsDir,
		Fullscreen: *fullscreen,
	})
	if err != nil {
		// 非 verbose 模式下 log 输出已被丢弃
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(gameApp)
	// 菜单退出和关闭窗口都会走到这里
	if !gameApp.GetSceneManager().SaveOnExit() {
		log.Printf("[Main] Warning: 退出时保存失败")
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
