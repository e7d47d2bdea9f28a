// Command dotfield 是粒子场查看器
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--preset <id>    初始预设（hero, speed, fees, mev, vault, links）
//	--mobile         以模拟移动端启动
//	--config <path>  使用磁盘上的粒子场配置而不是嵌入的 data/field.yaml
//	--seed <n>       固定随机种子
//	--verbose        启用详细日志
package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/dotfield/pkg/app"
	"github.com/gonewx/dotfield/pkg/config"
	"github.com/gonewx/dotfield/pkg/embedded"
	"github.com/gonewx/dotfield/pkg/types"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	presetFlag  = flag.String("preset", "", "Initial preset (default: last viewed)")
	mobileFlag  = flag.Bool("mobile", false, "Start with simulated mobile layout")
	configFlag  = flag.String("config", "", "Load field config from disk instead of the embedded copy")
	seedFlag    = flag.Int64("seed", 0, "Particle random seed (0 = time based)")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	viewer, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		Preset:     types.PresetID(*presetFlag),
		Mobile:     *mobileFlag,
		ConfigPath: *configFlag,
		Seed:       *seedFlag,
	})
	if err != nil {
		log.Fatalf("查看器初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.ViewerWindowWidth, config.ViewerWindowHeight)
	ebiten.SetWindowTitle("dotfield")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(viewer); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	viewer.Close()
}
