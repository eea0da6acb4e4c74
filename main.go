// festfx 节日特效浮层
//
// 用法:
//
//	festfx [flags]
//
// 参数:
//
//	--config <path>   宿主配置文件（默认使用内嵌的 data/festfx.yaml）
//	--url <url>       覆盖配置中的 configURL（http(s)://、ws(s)://、file://）
//	--effect <type>   忽略日程，直接播放指定特效（snow、firework、lantern ...）
//	--verbose         输出详细日志
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/festfx/pkg/app"
	"github.com/gonewx/festfx/pkg/config"
	"github.com/gonewx/festfx/pkg/embedded"
)

var (
	configFlag  = flag.String("config", "", "Path to the host config file (YAML)")
	urlFlag     = flag.String("url", "", "Override the effect config URL")
	effectFlag  = flag.String("effect", "", "Play one effect type regardless of schedule")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	// 初始化嵌入数据
	embedded.Init(dataFS)

	appCfg, err := loadAppConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "festfx: %v\n", err)
		os.Exit(1)
	}
	if *urlFlag != "" {
		appCfg.ConfigURL = *urlFlag
	}

	bundled, err := embedded.ReadFile(embedded.SampleEffectsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "festfx: %v\n", err)
		os.Exit(1)
	}

	overlay, err := app.NewApp(app.Config{
		App:     appCfg,
		Verbose: *verboseFlag || appCfg.Verbose,
		Effect:  config.EffectType(*effectFlag),
		Bundled: bundled,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "festfx: %v\n", err)
		os.Exit(1)
	}

	configureWindow(appCfg.Window)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	overlay.Start(ctx)
	defer overlay.Close()

	if err := ebiten.RunGameWithOptions(overlay, &ebiten.RunGameOptions{
		ScreenTransparent: appCfg.Window.Transparent,
	}); err != nil {
		log.Fatal(err)
	}
}

// loadAppConfig 读取宿主配置：指定路径优先，否则使用内嵌默认配置
func loadAppConfig(path string) (config.AppConfig, error) {
	if path != "" {
		return config.LoadAppConfig(path)
	}
	data, err := embedded.ReadFile(embedded.AppConfigPath)
	if err != nil {
		return config.AppConfig{}, err
	}
	return config.ParseAppConfig(data)
}

// configureWindow 浮层窗口：默认铺满显示器、置顶、无边框
func configureWindow(w config.WindowConfig) {
	width, height := w.Width, w.Height
	if width == 0 || height == 0 {
		width, height = ebiten.Monitor().Size()
	}
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("festfx")
	ebiten.SetWindowDecorated(w.Decorated)
	ebiten.SetWindowFloating(w.Floating)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetWindowPosition(0, 0)
}
