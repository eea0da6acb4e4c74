package effects

import (
	"math"
	"math/rand"

	"github.com/gonewx/festfx/pkg/render"
)

// mapleHues 深红、橙红、橙、金黄，出现概率依次递减
var (
	mapleHues    = []float64{355, 12, 28, 45}
	mapleWeights = []float64{0.35, 0.3, 0.2, 0.15}
)

// mapleOutline 枫叶轮廓的极坐标半径（局部单位），共 20 个顶点
var mapleOutline = []float64{
	1.0, 0.55, 0.75, 0.4, 0.95, 0.45, 0.6, 0.35, 0.5, 0.25,
	0.2, 0.25, 0.5, 0.35, 0.6, 0.45, 0.95, 0.4, 0.75, 0.55,
}

// MapleStyle 枫叶：加权随机颜色，边下落边旋转
type MapleStyle struct{}

func (MapleStyle) Variants() int { return len(mapleHues) }

func (MapleStyle) PickVariant(r *rand.Rand, _ int) int {
	return weighted(r, mapleWeights)
}

func (MapleStyle) Spawn(a *Ambient, r *rand.Rand) {
	a.Size = RandRange(r, 8, 16)
	a.VX = RandRange(r, -0.3, 0.3)
	a.VY = RandRange(r, 0.6, 1.5)
	a.SwingSpeed = RandRange(r, 0.015, 0.03)
	a.SwingAmp = RandRange(r, 0.6, 1.6)
	a.SpinSpeed = RandRange(r, -0.05, 0.05)
	a.Alpha = RandRange(r, 0.75, 1)
	a.Hue = mapleHues[a.Variant%len(mapleHues)]
}

func (MapleStyle) Draw(a *Ambient, c render.Canvas) {
	alpha := a.Opacity()
	c.FillPath(MaplePath(a.X, a.Y, a.Rotation, a.Size), render.HSLA(a.Hue, 0.85, 0.5, alpha))

	// 叶柄
	f := newFrame(a.X, a.Y, a.Rotation, a.Size)
	x0, y0 := f.pt(0, 0.2)
	x1, y1 := f.pt(0, 0.9)
	c.StrokeLine(x0, y0, x1, y1, math.Max(1, a.Size*0.08), render.HSLA(a.Hue-10, 0.7, 0.3, alpha))
}

// MaplePath 枫叶轮廓，叶尖朝 -y
func MaplePath(x, y, rotation, scale float64) *render.Path {
	f := newFrame(x, y, rotation, scale)
	p := &render.Path{}
	n := len(mapleOutline)
	for i, r := range mapleOutline {
		angle := float64(i)*2*math.Pi/float64(n) - math.Pi/2
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
