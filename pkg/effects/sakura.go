package effects

import (
	"math"
	"math/rand"

	"github.com/gonewx/festfx/pkg/render"
)

// 樱花子类型
const (
	sakuraPetal = iota
	sakuraBlossom
)

// SakuraStyle 樱花：以单片花瓣为主，偶尔整朵五瓣花
type SakuraStyle struct{}

func (SakuraStyle) Variants() int { return 2 }

func (SakuraStyle) PickVariant(r *rand.Rand, _ int) int {
	return weighted(r, []float64{0.8, 0.2})
}

func (SakuraStyle) Spawn(a *Ambient, r *rand.Rand) {
	a.Size = RandRange(r, 5, 10)
	a.VX = RandRange(r, 0.1, 0.6)
	a.VY = RandRange(r, 0.5, 1.3)
	a.SwingSpeed = RandRange(r, 0.02, 0.04)
	a.SwingAmp = RandRange(r, 0.5, 1.5)
	a.SpinSpeed = RandRange(r, -0.04, 0.04)
	a.Alpha = RandRange(r, 0.7, 1)
	a.Hue = RandRange(r, 335, 355)
}

func (SakuraStyle) Draw(a *Ambient, c render.Canvas) {
	alpha := a.Opacity()
	fill := render.HSLA(a.Hue, 0.8, 0.86, alpha)

	if a.Variant == sakuraPetal {
		c.FillPath(petalPath(a.X, a.Y, a.Rotation, a.Size), fill)
		return
	}

	for i := 0; i < 5; i++ {
		rot := a.Rotation + float64(i)*2*math.Pi/5
		f := newFrame(a.X, a.Y, rot, a.Size*0.6)
		px, py := f.pt(0, -0.9)
		c.FillPath(petalPath(px, py, rot, a.Size*0.6), fill)
	}
	c.FillCircle(a.X, a.Y, a.Size*0.2, render.HSLA(50, 0.9, 0.6, alpha))
}

// petalPath 带缺口的樱花花瓣，尖端朝 -y
func petalPath(x, y, rotation, scale float64) *render.Path {
	f := newFrame(x, y, rotation, scale)
	p := &render.Path{}
	f.moveTo(p, 0, 1)
	f.quadTo(p, -1, 0.2, -0.35, -0.9)
	f.lineTo(p, 0, -0.6)
	f.lineTo(p, 0.35, -0.9)
	f.quadTo(p, 1, 0.2, 0, 1)
	p.Close()
	return p
}
