package effects

import (
	"math"
	"math/rand"

	"github.com/gonewx/festfx/pkg/render"
)

// lanternHues 红、橙、金三种灯笼
var lanternHues = []float64{0, 18, 42}

// LanternStyle 灯笼：缓慢飘落并轻微摇摆，颜色依次轮换
type LanternStyle struct{}

func (LanternStyle) Variants() int { return len(lanternHues) }

func (LanternStyle) PickVariant(_ *rand.Rand, index int) int {
	return roundRobin(len(lanternHues), index)
}

func (LanternStyle) Spawn(a *Ambient, r *rand.Rand) {
	a.Size = RandRange(r, 14, 26)
	a.VX = 0
	a.VY = RandRange(r, 0.3, 0.8)
	a.SwingSpeed = RandRange(r, 0.01, 0.025)
	a.SwingAmp = RandRange(r, 0.2, 0.5)
	a.Alpha = RandRange(r, 0.8, 1)
	a.Hue = lanternHues[a.Variant%len(lanternHues)]
}

func (LanternStyle) Draw(a *Ambient, c render.Canvas) {
	alpha := a.Opacity()
	s := a.Size
	// 灯笼随摆动角轻微倾斜
	tilt := math.Sin(a.SwingAngle) * 0.15
	f := newFrame(a.X, a.Y, tilt, s)

	if a.Glow() {
		glow(c, a.X, a.Y, s*2.2, render.HSL(a.Hue+10, 1, 0.6), alpha*0.35)
	}

	// 提绳
	tx, ty := f.pt(0, -1.05)
	hx, hy := f.pt(0, -1.5)
	c.StrokeLine(hx, hy, tx, ty, 1, render.HSLA(40, 0.8, 0.45, alpha))

	// 灯身：两段三次曲线组成的椭圆
	body := &render.Path{}
	f.moveTo(body, 0, -0.8)
	f.cubicTo(body, 1.05, -0.8, 1.05, 0.8, 0, 0.8)
	f.cubicTo(body, -1.05, 0.8, -1.05, -0.8, 0, -0.8)
	body.Close()
	c.FillPath(body, render.HSLA(a.Hue, 0.9, 0.48, alpha))

	// 亮面
	cx, cy := f.pt(-0.15, -0.1)
	c.FillRadialGradient(cx, cy, s*0.7,
		render.GradientStop{Offset: 0, Color: render.HSLA(a.Hue+20, 1, 0.75, alpha*0.8)},
		render.GradientStop{Offset: 1, Color: render.HSLA(a.Hue, 0.9, 0.5, 0)},
	)

	// 竖向筋线
	for _, lx := range []float64{-0.45, 0, 0.45} {
		x0, y0 := f.pt(lx, -0.72)
		x1, y1 := f.pt(lx, 0.72)
		c.StrokeLine(x0, y0, x1, y1, 1, render.HSLA(a.Hue, 0.8, 0.35, alpha*0.6))
	}

	// 上下金边
	gold := render.HSLA(45, 0.9, 0.55, alpha)
	for _, ly := range []float64{-0.85, 0.85} {
		x0, y0 := f.pt(-0.4, ly)
		x1, y1 := f.pt(0.4, ly)
		c.StrokeLine(x0, y0, x1, y1, math.Max(2, s*0.12), gold)
	}

	// 流苏
	for _, lx := range []float64{-0.15, 0, 0.15} {
		x0, y0 := f.pt(lx, 0.9)
		x1, y1 := f.pt(lx+math.Sin(a.SwingAngle)*0.1, 1.5)
		c.StrokeLine(x0, y0, x1, y1, 1, gold)
	}
}
