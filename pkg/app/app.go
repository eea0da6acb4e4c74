// Package app 提供节日特效浮层的 ebiten 宿主
//
// 该包把配置、缓存、调度、运行时和开关按钮组装成一个 ebiten.Game，
// main.go 只负责解析命令行参数和窗口设置。
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/gonewx/festfx/internal/audio"
	"github.com/gonewx/festfx/pkg/animation"
	"github.com/gonewx/festfx/pkg/components"
	"github.com/gonewx/festfx/pkg/config"
	"github.com/gonewx/festfx/pkg/effects/catalog"
	"github.com/gonewx/festfx/pkg/game"
	"github.com/gonewx/festfx/pkg/render"
	"github.com/gonewx/festfx/pkg/systems"
)

// Config 定义应用启动配置
type Config struct {
	// App 宿主配置（data/festfx.yaml 或 --config）
	App config.AppConfig
	// Verbose 启用详细日志输出
	Verbose bool
	// Effect 强制播放指定特效（忽略远程配置和日程），为空则按配置调度
	Effect config.EffectType
	// Bundled 内置的示例特效配置，configURL 为空时使用
	Bundled []byte
}

// App 节日特效浮层，实现 ebiten.Game 接口
type App struct {
	loop       *animation.Loop
	runtime    *animation.Runtime
	controller *game.Controller
	toggle     *systems.ToggleSystem

	checkInterval time.Duration
	cancel        context.CancelFunc

	width, height int
	hidden        bool
	verbose       bool
}

// NewApp 创建并初始化浮层应用
//
// 窗口尺寸在第一次 Layout 时确定，之前使用配置中的尺寸（0 表示 1x1 占位）。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fetcher, cache, configURL, err := configSource(cfg)
	if err != nil {
		return nil, err
	}

	loop := animation.NewLoop(time.Now())
	runtime := animation.NewRuntime(loop, render.EbitenHost{}, catalog.FromDescriptor, max(cfg.App.Window.Width, 1), max(cfg.App.Window.Height, 1))

	if cfg.App.Sound {
		player, err := audio.NewEbitenPlayer(ebitenaudio.NewContext(int(audio.SampleRate)))
		if err != nil {
			log.Printf("[App] Warning: Burst sound disabled: %v", err)
		} else {
			runtime.OnBurst = func(x, y float64) { player.PlayBurst() }
			log.Printf("[App] Burst sound enabled")
		}
	}

	service := game.NewConfigService(cache, fetcher)
	controller := game.NewController(service, configURL, runtime)
	controller.Dispatch = loop.Post

	toggle := &components.ToggleComponent{
		X:       cfg.App.Toggle.X,
		Y:       cfg.App.Toggle.Y,
		Width:   cfg.App.Toggle.Width,
		Height:  cfg.App.Toggle.Height,
		OnClick: controller.Toggle,
	}

	log.Printf("[App] Config source: %s (check every %v)", configURL, cfg.App.CheckInterval())

	return &App{
		loop:          loop,
		runtime:       runtime,
		controller:    controller,
		toggle:        systems.NewToggleSystem(toggle, controller.ToggleState),
		checkInterval: cfg.App.CheckInterval(),
		verbose:       cfg.Verbose,
	}, nil
}

// configSource 选择配置来源
//
// --effect 使用内存中的单条配置（不落盘）；configURL 为空时使用内置配置；
// 否则按 configURL 协议选择 Fetcher，缓存使用 gdata 持久化存储。
func configSource(cfg Config) (game.Fetcher, game.Cache, string, error) {
	if cfg.Effect != "" {
		if !cfg.Effect.Valid() {
			return nil, nil, "", fmt.Errorf("unknown effect type %q", cfg.Effect)
		}
		payload := []byte(fmt.Sprintf(`{"enabled":true,"effects":[{"effectType":%q}]}`, cfg.Effect))
		fetcher := game.FetcherFunc(func(context.Context, string) ([]byte, error) { return payload, nil })
		return fetcher, game.NewMemoryCache(), "memory://" + string(cfg.Effect), nil
	}

	if cfg.App.ConfigURL == "" {
		if len(cfg.Bundled) == 0 {
			return nil, nil, "", fmt.Errorf("configURL is empty (set it in the config file or pass --url)")
		}
		fetcher := game.FetcherFunc(func(context.Context, string) ([]byte, error) { return cfg.Bundled, nil })
		return fetcher, game.NewMemoryCache(), "bundled://effects.json", nil
	}
	fetcher, err := game.NewFetcher(cfg.App.ConfigURL, cfg.App.FetchTimeout())
	if err != nil {
		return nil, nil, "", err
	}
	return fetcher, game.OpenGdataCache(cfg.App.StorageAppName), cfg.App.ConfigURL, nil
}

// Start 启动后台定时检查，ctx 取消或 Close 时结束
func (a *App) Start(ctx context.Context) {
	ctx, a.cancel = context.WithCancel(ctx)
	go a.controller.Run(ctx, a.checkInterval)
}

// Close 停止定时检查和当前特效
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	a.runtime.Stop()
}

// Update 推进一帧
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 窗口最小化时暂停逐帧，恢复后从当前粒子状态继续
	hidden := ebiten.IsWindowMinimized()
	if hidden != a.hidden {
		a.hidden = hidden
		if hidden {
			log.Printf("[App] Window hidden, pausing")
			a.runtime.Pause()
		} else {
			log.Printf("[App] Window visible, resuming")
			a.runtime.Resume()
		}
	}

	a.loop.RunFrame(time.Now())

	deltaTime := 1.0 / 60.0
	a.toggle.Update(deltaTime)
	if a.toggle.Hovered() {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
	return nil
}

// Draw 绘制浮层：特效画布整体贴到窗口，再画开关按钮
func (a *App) Draw(screen *ebiten.Image) {
	screen.Clear()
	if canvas, ok := a.runtime.Surface().(*render.EbitenCanvas); ok {
		screen.DrawImage(canvas.Image(), nil)
	}
	a.toggle.Draw(render.WrapEbitenImage(screen))
}

// Layout 逻辑尺寸等于窗口尺寸，尺寸变化时通知运行时
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.runtime.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Controller 返回控制器（工具和测试使用）
func (a *App) Controller() *game.Controller {
	return a.controller
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
