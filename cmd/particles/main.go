// Package main provides an effect viewer tool for previewing every festival
// effect in a regular window.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--effect <type>      Start with a specific effect (e.g., --effect=firework)
//	--shape <0-10>       Firework burst shape (0 = random)
//	--auto-play          Automatically cycle through effects every 8 seconds
//	--sound              Play burst sounds
//	--verbose            Enable verbose logging
//
// Controls:
//
//	Mouse Click       - Launch a firework at the cursor (firework mode)
//	Left/Right Arrow  - Switch to previous/next effect
//	1-7               - Quick jump to effect by index
//	Space             - Restart the current effect
//	P                 - Toggle pause
//	Q/Escape          - Quit
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/festfx/internal/audio"
	"github.com/gonewx/festfx/pkg/animation"
	"github.com/gonewx/festfx/pkg/config"
	"github.com/gonewx/festfx/pkg/effects/catalog"
	"github.com/gonewx/festfx/pkg/effects/firework"
	"github.com/gonewx/festfx/pkg/render"
)

const (
	screenWidth  = 1024
	screenHeight = 768

	autoPlayInterval = 8 * time.Second
)

var (
	effectFlag   = flag.String("effect", "", "Start with specific effect type")
	shapeFlag    = flag.Int("shape", 0, "Firework burst shape (0 = random, 1-10 fixed)")
	autoPlayFlag = flag.Bool("auto-play", false, "Auto cycle through effects")
	soundFlag    = flag.Bool("sound", false, "Play burst sounds")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

// EffectViewerGame implements ebiten.Game interface for the effect viewer
type EffectViewerGame struct {
	loop    *animation.Loop
	runtime *animation.Runtime

	currentIndex int
	shape        firework.Shape

	autoPlay       bool
	lastSwitchTime time.Time
	paused         bool

	statusMessage string
}

// NewEffectViewerGame creates a new viewer instance
func NewEffectViewerGame() (*EffectViewerGame, error) {
	shape := firework.Shape(*shapeFlag)
	if !shape.Valid() {
		return nil, fmt.Errorf("invalid shape %d", *shapeFlag)
	}

	loop := animation.NewLoop(time.Now())
	runtime := animation.NewRuntime(loop, render.EbitenHost{}, catalog.FromDescriptor, screenWidth, screenHeight)

	if *soundFlag {
		player, err := audio.NewEbitenPlayer(ebitenaudio.NewContext(int(audio.SampleRate)))
		if err != nil {
			log.Printf("Warning: Sound disabled: %v", err)
		} else {
			runtime.OnBurst = func(x, y float64) { player.PlayBurst() }
		}
	}

	startIndex := 0
	if *effectFlag != "" {
		found := false
		for i, t := range config.AllEffectTypes {
			if string(t) == *effectFlag {
				startIndex, found = i, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown effect type %q", *effectFlag)
		}
	}

	g := &EffectViewerGame{
		loop:           loop,
		runtime:        runtime,
		currentIndex:   startIndex,
		shape:          shape,
		autoPlay:       *autoPlayFlag,
		lastSwitchTime: time.Now(),
	}
	if err := g.startCurrent(); err != nil {
		return nil, err
	}
	return g, nil
}

// descriptor builds a descriptor with default params (plus the shape override for fireworks)
func (g *EffectViewerGame) descriptor(t config.EffectType) (*config.EffectDescriptor, error) {
	d := &config.EffectDescriptor{EffectType: t}
	if t == config.EffectFirework && g.shape != firework.ShapeRandom {
		params, err := config.NewEffectParams(t, map[string]float64{config.ParamShape: float64(g.shape)})
		if err != nil {
			return nil, err
		}
		d.Params = params
	}
	return d, nil
}

func (g *EffectViewerGame) startCurrent() error {
	t := config.AllEffectTypes[g.currentIndex]
	d, err := g.descriptor(t)
	if err != nil {
		return err
	}
	if err := g.runtime.Start(d); err != nil {
		return err
	}
	g.lastSwitchTime = time.Now()
	g.statusMessage = fmt.Sprintf("[%d/%d] %s", g.currentIndex+1, len(config.AllEffectTypes), t.DisplayName())
	log.Printf("Playing: %s", d)
	return nil
}

func (g *EffectViewerGame) switchTo(index int) error {
	n := len(config.AllEffectTypes)
	g.currentIndex = (index%n + n) % n
	return g.startCurrent()
}

// Update updates the viewer state
func (g *EffectViewerGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return fmt.Errorf("quit requested")
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		if g.paused {
			g.runtime.Pause()
			g.statusMessage = "PAUSED - Press P to resume"
		} else {
			g.runtime.Resume()
			g.statusMessage = "Resumed"
		}
	}

	var err error
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		err = g.switchTo(g.currentIndex + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		err = g.switchTo(g.currentIndex - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		err = g.startCurrent()
	case g.autoPlay && !g.paused && time.Since(g.lastSwitchTime) >= autoPlayInterval:
		err = g.switchTo(g.currentIndex + 1)
	}
	for i := range config.AllEffectTypes {
		if inpututil.IsKeyJustPressed(ebiten.Key(int(ebiten.Key1) + i)) {
			err = g.switchTo(i)
		}
	}
	if err != nil {
		return err
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if show, ok := g.runtime.Effect().(*firework.Show); ok {
			x, y := ebiten.CursorPosition()
			show.LaunchAt(float64(x), float64(y))
		}
	}

	g.loop.RunFrame(time.Now())
	return nil
}

// Draw renders the current effect and the HUD
func (g *EffectViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 28, A: 255})
	if canvas, ok := g.runtime.Surface().(*render.EbitenCanvas); ok {
		screen.DrawImage(canvas.Image(), nil)
	}

	hud := fmt.Sprintf("%s\nFPS: %.0f  TPS: %.0f\n<-/-> switch  1-7 jump  Space restart  P pause  Q quit",
		g.statusMessage, ebiten.ActualFPS(), ebiten.ActualTPS())
	if show, ok := g.runtime.Effect().(*firework.Show); ok {
		particles := 0
		for _, fw := range show.Fireworks() {
			particles += fw.ParticleCount()
		}
		hud += fmt.Sprintf("\nFireworks: %d  Particles: %d  Shape: %s  (click to launch)", show.Active(), particles, g.shape)
	}
	ebitenutil.DebugPrintAt(screen, hud, 10, 10)
}

// Layout returns the logical screen size
func (g *EffectViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.runtime.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	game, err := NewEffectViewerGame()
	if err != nil {
		fmt.Printf("Failed to initialize viewer: %v\n", err)
		return
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("festfx - Effect Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && err.Error() != "quit requested" {
		log.Fatal(err)
	}
}
