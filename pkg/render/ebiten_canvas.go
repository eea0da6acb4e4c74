package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// gradientSteps 径向/线性渐变的分段数
const gradientSteps = 12

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// EbitenCanvas 基于 ebiten 离屏图像的画布
//
// 浮层的每一帧都先画到这张图像上，再由 App.Draw 整体贴到窗口。
type EbitenCanvas struct {
	image    *ebiten.Image
	borrowed bool
}

// NewEbitenCanvas 创建指定尺寸的离屏画布
func NewEbitenCanvas(width, height int) *EbitenCanvas {
	return &EbitenCanvas{image: ebiten.NewImage(max(width, 1), max(height, 1))}
}

// WrapEbitenImage 直接在已有图像上绘制（如窗口屏幕），Dispose 不会释放它
func WrapEbitenImage(img *ebiten.Image) *EbitenCanvas {
	return &EbitenCanvas{image: img, borrowed: true}
}

// Image 返回底层图像，供 Draw 阶段贴图
func (c *EbitenCanvas) Image() *ebiten.Image {
	return c.image
}

func (c *EbitenCanvas) Size() (float64, float64) {
	b := c.image.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (c *EbitenCanvas) Clear() {
	c.image.Clear()
}

func (c *EbitenCanvas) FillCircle(x, y, r float64, clr color.Color) {
	if r <= 0 {
		return
	}
	vector.DrawFilledCircle(c.image, float32(x), float32(y), float32(r), clr, true)
}

func (c *EbitenCanvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	vector.StrokeLine(c.image, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, true)
}

func (c *EbitenCanvas) FillPath(p *Path, clr color.Color) {
	vp := toVectorPath(p)
	vs, is := vp.AppendVerticesAndIndicesForFilling(nil, nil)
	c.drawVertices(vs, is, clr, ebiten.NonZero)
}

func (c *EbitenCanvas) StrokePath(p *Path, width float64, clr color.Color) {
	vp := toVectorPath(p)
	vs, is := vp.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:    float32(width),
		LineCap:  vector.LineCapRound,
		LineJoin: vector.LineJoinRound,
	})
	c.drawVertices(vs, is, clr, ebiten.FillAll)
}

// FillRadialGradient 用同心圆由外向内叠加近似径向渐变
func (c *EbitenCanvas) FillRadialGradient(x, y, r float64, stops ...GradientStop) {
	if r <= 0 || len(stops) == 0 {
		return
	}
	for i := gradientSteps; i >= 1; i-- {
		t := float64(i) / gradientSteps
		vector.DrawFilledCircle(c.image, float32(x), float32(y), float32(r*t), gradientAt(stops, t), true)
	}
}

func (c *EbitenCanvas) FillLinearGradientRect(x, y, w, h float64, top, bottom color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	band := h / gradientSteps
	for i := 0; i < gradientSteps; i++ {
		t := (float64(i) + 0.5) / gradientSteps
		vector.DrawFilledRect(c.image, float32(x), float32(y+band*float64(i)), float32(w), float32(band+0.5), Lerp(top, bottom, t), true)
	}
}

// DrawText 使用调试字体绘制文字（调试字体固定为白色，clr 仅控制是否绘制）
func (c *EbitenCanvas) DrawText(s string, x, y float64, clr color.Color) {
	if _, _, _, a := clr.RGBA(); a == 0 {
		return
	}
	ebitenutil.DebugPrintAt(c.image, s, int(x), int(y))
}

func (c *EbitenCanvas) Resize(width, height int) {
	if c.borrowed {
		return
	}
	b := c.image.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return
	}
	c.image.Deallocate()
	c.image = ebiten.NewImage(max(width, 1), max(height, 1))
}

func (c *EbitenCanvas) Dispose() {
	if c.borrowed {
		return
	}
	c.image.Deallocate()
}

func (c *EbitenCanvas) drawVertices(vs []ebiten.Vertex, is []uint16, clr color.Color, rule ebiten.FillRule) {
	if len(is) == 0 {
		return
	}
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = true
	op.FillRule = rule
	c.image.DrawTriangles(vs, is, whiteSubImage, op)
}

func toVectorPath(p *Path) *vector.Path {
	var vp vector.Path
	for _, cmd := range p.Commands() {
		a := cmd.Args
		switch cmd.Op {
		case OpMoveTo:
			vp.MoveTo(float32(a[0]), float32(a[1]))
		case OpLineTo:
			vp.LineTo(float32(a[0]), float32(a[1]))
		case OpQuadTo:
			vp.QuadTo(float32(a[0]), float32(a[1]), float32(a[2]), float32(a[3]))
		case OpCubicTo:
			vp.CubicTo(float32(a[0]), float32(a[1]), float32(a[2]), float32(a[3]), float32(a[4]), float32(a[5]))
		case OpArc:
			vp.Arc(float32(a[0]), float32(a[1]), float32(a[2]), float32(a[3]), float32(a[4]), vector.Clockwise)
		case OpClose:
			vp.Close()
		}
	}
	return &vp
}

// gradientAt 计算 t 处的渐变颜色
func gradientAt(stops []GradientStop, t float64) color.NRGBA {
	if t <= stops[0].Offset {
		return Fade(stops[0].Color, 1)
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			prev := stops[i-1]
			span := stops[i].Offset - prev.Offset
			if span <= 0 {
				return Fade(stops[i].Color, 1)
			}
			return Lerp(prev.Color, stops[i].Color, (t-prev.Offset)/span)
		}
	}
	return Fade(stops[len(stops)-1].Color, 1)
}

// EbitenHost 创建 EbitenCanvas 画布
type EbitenHost struct{}

func (EbitenHost) NewSurface(width, height int) Surface {
	return NewEbitenCanvas(width, height)
}
