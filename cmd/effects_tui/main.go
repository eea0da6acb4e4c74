// Package main provides a terminal preview of the festival effects.
//
// Usage:
//
//	go run ./cmd/effects_tui [flags]
//
// Flags:
//
//	--effect <type>   Start with a specific effect (default snow)
//	--url <url>       Follow a config URL instead (schedule-driven, like the overlay)
//	--interval <dur>  Re-check interval in --url mode (default 1m)
//	--sound           Play burst sounds through the speaker
//	--fps <n>         Frames per second (default 30)
//	--log <path>      Append logs to a file (default: discard)
//
// Controls:
//
//	Left/Right  - Switch effect (effect mode)
//	Space       - Restart effect / launch a firework at the centre
//	T           - Toggle the effect on/off (config mode)
//	Q/Escape    - Quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/gonewx/festfx/internal/audio"
	"github.com/gonewx/festfx/pkg/animation"
	"github.com/gonewx/festfx/pkg/config"
	"github.com/gonewx/festfx/pkg/effects/catalog"
	"github.com/gonewx/festfx/pkg/effects/firework"
	"github.com/gonewx/festfx/pkg/game"
	"github.com/gonewx/festfx/pkg/render"
)

var (
	effectFlag   = flag.String("effect", string(config.EffectSnow), "Effect type to preview")
	urlFlag      = flag.String("url", "", "Follow a config URL (http(s)://, ws(s)://, file://)")
	intervalFlag = flag.Duration("interval", time.Minute, "Re-check interval in --url mode")
	soundFlag    = flag.Bool("sound", false, "Play burst sounds")
	fpsFlag      = flag.Int("fps", 30, "Frames per second")
	logFlag      = flag.String("log", "", "Write logs to this file (default: discard)")
)

var errQuit = errors.New("quit requested")

// preview 终端预览的状态，只在渲染协程上访问
type preview struct {
	screen     tcell.Screen
	loop       *animation.Loop
	runtime    *animation.Runtime
	controller *game.Controller

	index  int
	status string
}

func main() {
	flag.Parse()

	if err := setupLogging(*logFlag); err != nil {
		fmt.Fprintf(os.Stderr, "effects_tui: %v\n", err)
		os.Exit(1)
	}
	if err := run(); err != nil && !errors.Is(err, errQuit) {
		fmt.Fprintf(os.Stderr, "effects_tui: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(path string) error {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return nil
}

func run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	screen.HideCursor()

	p := &preview{screen: screen, loop: animation.NewLoop(time.Now())}
	canvas := render.NewTerminalCanvas(screen)
	w, h := canvas.Size()
	p.runtime = animation.NewRuntime(p.loop, render.TerminalHost{Screen: screen}, catalog.FromDescriptor, int(w), int(h))

	if *soundFlag {
		player := audio.NewBeepPlayer()
		if err := player.Initialize(); err != nil {
			log.Printf("[Preview] Warning: Sound disabled: %v", err)
		} else {
			defer player.Cleanup()
			p.runtime.OnBurst = func(x, y float64) { player.PlayBurst() }
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if *urlFlag != "" {
		fetcher, err := game.NewFetcher(*urlFlag, 10*time.Second)
		if err != nil {
			return err
		}
		p.controller = game.NewController(game.NewConfigService(game.NewMemoryCache(), fetcher), *urlFlag, p.runtime)
		p.controller.Dispatch = p.loop.Post
		g.Go(func() error {
			p.controller.Run(gctx, *intervalFlag)
			return nil
		})
	} else {
		if err := p.selectEffect(config.EffectType(*effectFlag)); err != nil {
			return err
		}
	}

	g.Go(func() error { return p.pollInput(gctx) })
	g.Go(func() error { return p.renderLoop(gctx) })

	// 输入协程阻塞在 PollEvent 上，退出时需要唤醒它
	go func() {
		<-gctx.Done()
		screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	return g.Wait()
}

// renderLoop 渲染协程：驱动帧调度器并刷新屏幕
func (p *preview) renderLoop(ctx context.Context) error {
	fps := max(*fpsFlag, 1)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	defer p.runtime.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			p.loop.RunFrame(now)
			p.drawStatus()
			p.screen.Show()
		}
	}
}

// pollInput 输入协程：把按键转交给渲染协程处理
func (p *preview) pollInput(ctx context.Context) error {
	for {
		ev := p.screen.PollEvent()
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			p.loop.Post(func() {
				p.screen.Sync()
				w, h := render.NewTerminalCanvas(p.screen).Size()
				p.runtime.Resize(int(w), int(h))
			})
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return errQuit
			}
			p.loop.Post(func() { p.handleKey(ev) })
		}
	}
}

func (p *preview) handleKey(ev *tcell.EventKey) {
	var err error
	switch {
	case ev.Key() == tcell.KeyRight && p.controller == nil:
		err = p.selectIndex(p.index + 1)
	case ev.Key() == tcell.KeyLeft && p.controller == nil:
		err = p.selectIndex(p.index - 1)
	case ev.Rune() == ' ':
		if show, ok := p.runtime.Effect().(*firework.Show); ok {
			w, h := p.runtime.Size()
			show.LaunchAt(float64(w)/2, float64(h)/3)
		} else if p.controller == nil {
			err = p.selectIndex(p.index)
		}
	case ev.Rune() == 't' && p.controller != nil:
		p.controller.Toggle()
	}
	if err != nil {
		p.status = err.Error()
	}
}

func (p *preview) selectEffect(t config.EffectType) error {
	for i, candidate := range config.AllEffectTypes {
		if candidate == t {
			return p.selectIndex(i)
		}
	}
	return fmt.Errorf("unknown effect type %q", t)
}

func (p *preview) selectIndex(index int) error {
	n := len(config.AllEffectTypes)
	p.index = (index%n + n) % n
	t := config.AllEffectTypes[p.index]
	if err := p.runtime.Start(&config.EffectDescriptor{EffectType: t}); err != nil {
		return err
	}
	p.status = fmt.Sprintf("[%d/%d] %s   <-/-> switch  space restart  q quit", p.index+1, n, t.DisplayName())
	return nil
}

// drawStatus 在最后一行输出状态
func (p *preview) drawStatus() {
	status := p.status
	if p.controller != nil {
		toggle := p.controller.ToggleState()
		status = "no active effect   q quit"
		if toggle.Visible {
			status = toggle.Label + "   t toggle  q quit"
		}
	}
	_, rows := p.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for i, r := range status {
		p.screen.SetContent(i, rows-1, r, nil, style)
	}
}
