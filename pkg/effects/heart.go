package effects

import (
	"math"
	"math/rand"

	"github.com/gonewx/festfx/pkg/render"
)

// heartHues 粉、玫红、红
var heartHues = []float64{340, 350, 0}

// HeartStyle 爱心飘落
type HeartStyle struct{}

func (HeartStyle) Variants() int { return len(heartHues) }

func (HeartStyle) PickVariant(r *rand.Rand, _ int) int {
	return weighted(r, []float64{0.45, 0.35, 0.2})
}

func (HeartStyle) Spawn(a *Ambient, r *rand.Rand) {
	a.Size = RandRange(r, 6, 14)
	a.VX = 0
	a.VY = RandRange(r, 0.6, 1.4)
	a.SwingSpeed = RandRange(r, 0.015, 0.035)
	a.SwingAmp = RandRange(r, 0.3, 1)
	a.Alpha = RandRange(r, 0.6, 1)
	a.Hue = heartHues[a.Variant%len(heartHues)] + RandRange(r, -6, 6)
}

func (HeartStyle) Draw(a *Ambient, c render.Canvas) {
	alpha := a.Opacity()
	if a.Glow() {
		glow(c, a.X, a.Y, a.Size*2, render.HSL(a.Hue, 1, 0.7), alpha*0.3)
	}
	// 爱心随摆动角轻微摇晃
	tilt := 0.2 * math.Sin(a.SwingAngle)
	c.FillPath(HeartPath(a.X, a.Y, tilt, a.Size), render.HSLA(a.Hue, 0.85, 0.6, alpha))
}
