package effects

import (
	"image/color"
	"math"

	"github.com/gonewx/festfx/pkg/render"
)

// frame 局部坐标到屏幕坐标的变换（平移 + 旋转 + 缩放）
type frame struct {
	x, y     float64
	cos, sin float64
	scale    float64
}

func newFrame(x, y, rotation, scale float64) frame {
	return frame{x: x, y: y, cos: math.Cos(rotation), sin: math.Sin(rotation), scale: scale}
}

// pt 变换局部坐标 (lx, ly)
func (f frame) pt(lx, ly float64) (float64, float64) {
	lx *= f.scale
	ly *= f.scale
	return f.x + lx*f.cos - ly*f.sin, f.y + lx*f.sin + ly*f.cos
}

func (f frame) moveTo(p *render.Path, lx, ly float64) {
	x, y := f.pt(lx, ly)
	p.MoveTo(x, y)
}

func (f frame) lineTo(p *render.Path, lx, ly float64) {
	x, y := f.pt(lx, ly)
	p.LineTo(x, y)
}

func (f frame) quadTo(p *render.Path, cx, cy, lx, ly float64) {
	x1, y1 := f.pt(cx, cy)
	x2, y2 := f.pt(lx, ly)
	p.QuadTo(x1, y1, x2, y2)
}

func (f frame) cubicTo(p *render.Path, c1x, c1y, c2x, c2y, lx, ly float64) {
	x1, y1 := f.pt(c1x, c1y)
	x2, y2 := f.pt(c2x, c2y)
	x3, y3 := f.pt(lx, ly)
	p.CubicTo(x1, y1, x2, y2, x3, y3)
}

// HeartPath 单位爱心（宽约 2、高约 2，中心在原点）
func HeartPath(x, y, rotation, scale float64) *render.Path {
	f := newFrame(x, y, rotation, scale)
	p := &render.Path{}
	f.moveTo(p, 0, -0.5)
	f.cubicTo(p, -0.5, -1.2, -1.6, -0.6, -1, 0.2)
	f.lineTo(p, 0, 1)
	f.lineTo(p, 1, 0.2)
	f.cubicTo(p, 1.6, -0.6, 0.5, -1.2, 0, -0.5)
	p.Close()
	return p
}

// StarPath 正 n 角星，outer/inner 为外/内半径（局部单位）
func StarPath(x, y, rotation, scale float64, points int, outer, inner float64) *render.Path {
	f := newFrame(x, y, rotation, scale)
	p := &render.Path{}
	for i := 0; i < points*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		angle := float64(i)*math.Pi/float64(points) - math.Pi/2
		lx, ly := math.Cos(angle)*r, math.Sin(angle)*r
		if i == 0 {
			f.moveTo(p, lx, ly)
		} else {
			f.lineTo(p, lx, ly)
		}
	}
	p.Close()
	return p
}

// glow 以颜色为中心向外透明的光晕
func glow(c render.Canvas, x, y, r float64, clr color.Color, alpha float64) {
	c.FillRadialGradient(x, y, r,
		render.GradientStop{Offset: 0, Color: render.Fade(clr, alpha)},
		render.GradientStop{Offset: 1, Color: render.Fade(clr, 0)},
	)
}
