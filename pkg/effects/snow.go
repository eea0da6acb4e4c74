package effects

import (
	"math"
	"math/rand"

	"github.com/gonewx/festfx/pkg/render"
)

// 雪花子类型
const (
	snowDot = iota
	snowCrystal
)

// SnowStyle 雪花：圆点为主，少量六角冰晶
type SnowStyle struct{}

func (SnowStyle) Variants() int { return 2 }

func (SnowStyle) PickVariant(r *rand.Rand, _ int) int {
	return weighted(r, []float64{0.75, 0.25})
}

func (SnowStyle) Spawn(a *Ambient, r *rand.Rand) {
	a.Size = RandRange(r, 1.5, 4.5)
	if a.Variant == snowCrystal {
		a.Size = RandRange(r, 4, 8)
	}
	a.VX = 0
	a.VY = RandRange(r, 0.5, 1.6)
	a.SwingSpeed = RandRange(r, 0.01, 0.03)
	a.SwingAmp = RandRange(r, 0.2, 0.8)
	a.SpinSpeed = RandRange(r, -0.02, 0.02)
	a.Alpha = RandRange(r, 0.6, 1)
}

func (SnowStyle) Draw(a *Ambient, c render.Canvas) {
	alpha := a.Opacity()
	white := render.HSLA(210, 0.6, 0.97, alpha)
	if a.Glow() {
		glow(c, a.X, a.Y, a.Size*3, white, alpha*0.3)
	}

	if a.Variant == snowDot {
		c.FillCircle(a.X, a.Y, a.Size, white)
		return
	}

	f := newFrame(a.X, a.Y, a.Rotation, a.Size)
	for i := 0; i < 6; i++ {
		angle := float64(i) * math.Pi / 3
		ex, ey := f.pt(math.Cos(angle), math.Sin(angle))
		c.StrokeLine(a.X, a.Y, ex, ey, 1, white)

		// 每条主枝上的两根小分叉
		bx, by := math.Cos(angle)*0.55, math.Sin(angle)*0.55
		for _, side := range []float64{-1, 1} {
			ba := angle + side*math.Pi/4
			x0, y0 := f.pt(bx, by)
			x1, y1 := f.pt(bx+math.Cos(ba)*0.3, by+math.Sin(ba)*0.3)
			c.StrokeLine(x0, y0, x1, y1, 1, white)
		}
	}
}
