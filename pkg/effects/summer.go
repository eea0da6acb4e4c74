package effects

import (
	"math"
	"math/rand"

	"github.com/gonewx/festfx/pkg/render"
)

// 夏日图标
const (
	summerSun = iota
	summerWatermelon
	summerDrop
	summerStarfish
	summerIconCount
)

// SummerStyle 夏日图标：太阳、西瓜、水滴、海星依次轮换
type SummerStyle struct{}

func (SummerStyle) Variants() int { return summerIconCount }

func (SummerStyle) PickVariant(_ *rand.Rand, index int) int {
	return roundRobin(summerIconCount, index)
}

func (SummerStyle) Spawn(a *Ambient, r *rand.Rand) {
	a.Size = RandRange(r, 10, 18)
	a.VX = 0
	a.VY = RandRange(r, 0.5, 1.2)
	a.SwingSpeed = RandRange(r, 0.01, 0.03)
	a.SwingAmp = RandRange(r, 0.3, 1)
	a.SpinSpeed = RandRange(r, -0.02, 0.02)
	a.Alpha = RandRange(r, 0.8, 1)
}

func (SummerStyle) Draw(a *Ambient, c render.Canvas) {
	alpha := a.Opacity()
	s := a.Size
	f := newFrame(a.X, a.Y, a.Rotation, s)

	switch a.Variant {
	case summerSun:
		glow(c, a.X, a.Y, s*1.8, render.HSL(45, 1, 0.6), alpha*0.4)
		for i := 0; i < 8; i++ {
			angle := float64(i) * math.Pi / 4
			x0, y0 := f.pt(math.Cos(angle)*0.65, math.Sin(angle)*0.65)
			x1, y1 := f.pt(math.Cos(angle)*1.0, math.Sin(angle)*1.0)
			c.StrokeLine(x0, y0, x1, y1, math.Max(1, s*0.1), render.HSLA(38, 1, 0.55, alpha))
		}
		c.FillCircle(a.X, a.Y, s*0.5, render.HSLA(48, 1, 0.58, alpha))

	case summerWatermelon:
		// 半圆瓜瓤 + 瓜皮 + 瓜子
		rind := &render.Path{}
		f.moveTo(rind, -1, 0)
		rind.Arc(a.X, a.Y, s, a.Rotation, a.Rotation+math.Pi)
		rind.Close()
		c.FillPath(rind, render.HSLA(120, 0.6, 0.35, alpha))

		flesh := &render.Path{}
		f.moveTo(flesh, -0.82, 0)
		flesh.Arc(a.X, a.Y, s*0.82, a.Rotation, a.Rotation+math.Pi)
		flesh.Close()
		c.FillPath(flesh, render.HSLA(355, 0.85, 0.58, alpha))

		for _, seed := range [][2]float64{{-0.4, 0.3}, {0, 0.45}, {0.4, 0.3}} {
			x, y := f.pt(seed[0], seed[1])
			c.FillCircle(x, y, math.Max(1, s*0.07), render.HSLA(0, 0, 0.1, alpha))
		}

	case summerDrop:
		drop := &render.Path{}
		f.moveTo(drop, 0, -1)
		f.cubicTo(drop, 0.2, -0.5, 0.75, 0, 0.75, 0.35)
		f.cubicTo(drop, 0.75, 0.8, 0.35, 1, 0, 1)
		f.cubicTo(drop, -0.35, 1, -0.75, 0.8, -0.75, 0.35)
		f.cubicTo(drop, -0.75, 0, -0.2, -0.5, 0, -1)
		drop.Close()
		c.FillPath(drop, render.HSLA(200, 0.85, 0.6, alpha*0.85))
		hx, hy := f.pt(-0.3, 0.3)
		c.FillCircle(hx, hy, s*0.15, render.HSLA(200, 1, 0.9, alpha))

	case summerStarfish:
		c.FillPath(StarPath(a.X, a.Y, a.Rotation, s, 5, 1, 0.45), render.HSLA(20, 0.9, 0.6, alpha))
		c.StrokePath(StarPath(a.X, a.Y, a.Rotation, s, 5, 1, 0.45), 1, render.HSLA(15, 0.8, 0.4, alpha))
	}
}
