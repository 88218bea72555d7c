// simulate 在无窗口环境下用自动玩家跑完全部关卡，打印每次状态变化
//
// 用法：
//
//	go run ./cmd/simulate --levels data/levels
//	go run ./cmd/simulate --miss 2      # 第 2 关故意超时，验证重试回到第 1 关
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/game"
	"github.com/decker502/shootrange/pkg/scenes"
)

var (
	verbose   = flag.Bool("verbose", false, "显示详细日志")
	levelsDir = flag.String("levels", "data/levels", "关卡目录")
	missLevel = flag.Int("miss", 0, "在该关卡第一次故意不开枪（0 表示不失误）")
	maxFrames = flag.Int("frames", 60*60*10, "最多模拟的帧数")
)

// result 一次模拟的结果
type result struct {
	frames      int
	transitions []game.Transition
	terminated  bool
	save        *game.SaveManager
}

// simulate 驱动场景直到退出或达到帧数上限
func simulate(catalog *config.LevelCatalog, miss, limit int, out io.Writer) (*result, error) {
	save, err := game.NewSaveManager(nil)
	if err != nil {
		return nil, err
	}

	b := &bot{missLevel: miss}
	scene, err := scenes.NewRangeScene(scenes.RangeSceneOptions{
		Catalog: catalog,
		Input:   b,
		Save:    save,
	})
	if err != nil {
		return nil, err
	}
	b.em = scene.EntityManager()
	b.session = scene.Session()
	b.player = scene.Player()

	res := &result{save: save}
	scene.Session().OnTransition(func(t game.Transition) {
		res.transitions = append(res.transitions, t)
		line := fmt.Sprintf("frame %6d  %s x %s -> %s x %s  (%s", res.frames, t.FromRound, t.FromLevel, t.ToRound, t.ToLevel, t.Cause)
		if t.Cause == game.CauseEvent {
			line += ": " + t.Event.String()
		}
		if t.Cause == game.CauseLevelClear {
			line += fmt.Sprintf(", %.2fs", t.Elapsed)
		}
		fmt.Fprintln(out, line+")")
	})

	for res.frames = 1; res.frames <= limit; res.frames++ {
		err := scene.Update(config.FixedDeltaTime)
		if errors.Is(err, ebiten.Termination) {
			res.terminated = true
			return res, nil
		}
		if err != nil {
			return res, err
		}
		if err := scene.Session().Validate(); err != nil {
			return res, fmt.Errorf("frame %d: %w", res.frames, err)
		}
	}
	res.frames = limit
	return res, nil
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	catalog, err := config.LoadLevelCatalogDir(*levelsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "关卡加载失败: %v\n", err)
		os.Exit(1)
	}

	res, err := simulate(catalog, *missLevel, *maxFrames, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "模拟失败: %v\n", err)
		os.Exit(1)
	}
	if !res.terminated {
		fmt.Fprintf(os.Stderr, "%d 帧内未退出\n", *maxFrames)
		os.Exit(1)
	}

	fmt.Printf("\n%d 帧（%.1f 秒游戏时间）\n", res.frames, float64(res.frames)*config.FixedDeltaTime)
	for _, run := range res.save.Runs() {
		fmt.Printf("run %s  起始第 %d 关  通过 %d 关  用时 %.2fs  %s\n",
			run.ID[:8], run.StartLevel, run.LevelsCleared, run.TotalTime, run.Outcome)
	}
}
