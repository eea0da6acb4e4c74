package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// 终端单元格对应的像素尺寸
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// TerminalCanvas 把像素坐标映射到终端单元格的画布
//
// 每个单元格代表 CellWidth x CellHeight 像素。透明度通过与黑色背景混合来近似，
// 过于透明的图元直接跳过。
type TerminalCanvas struct {
	screen     tcell.Screen
	CellWidth  float64
	CellHeight float64
}

// NewTerminalCanvas 在 tcell 屏幕上创建画布，屏幕的生命周期由调用方管理
func NewTerminalCanvas(screen tcell.Screen) *TerminalCanvas {
	return &TerminalCanvas{screen: screen, CellWidth: DefaultCellWidth, CellHeight: DefaultCellHeight}
}

func (c *TerminalCanvas) Size() (float64, float64) {
	cols, rows := c.screen.Size()
	return float64(cols) * c.CellWidth, float64(rows) * c.CellHeight
}

func (c *TerminalCanvas) Clear() {
	c.screen.Clear()
}

// glyphForRadius 按半径选择字符
func glyphForRadius(r float64) rune {
	switch {
	case r < 2:
		return '.'
	case r < 4:
		return '*'
	case r < 8:
		return 'o'
	default:
		return 'O'
	}
}

func (c *TerminalCanvas) FillCircle(x, y, r float64, clr color.Color) {
	c.plot(x, y, glyphForRadius(r), clr)
}

func (c *TerminalCanvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	cx0, cy0 := c.cell(x0, y0)
	cx1, cy1 := c.cell(x1, y1)
	steps := max(abs(cx1-cx0), abs(cy1-cy0))
	if steps == 0 {
		c.set(cx0, cy0, '\'', clr)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		cx := cx0 + int(math.Round(float64(cx1-cx0)*t))
		cy := cy0 + int(math.Round(float64(cy1-cy0)*t))
		c.set(cx, cy, '\'', clr)
	}
}

func (c *TerminalCanvas) FillPath(p *Path, clr color.Color) {
	minX, minY, maxX, maxY := p.Bounds()
	c.plot((minX+maxX)/2, (minY+maxY)/2, '*', clr)
}

func (c *TerminalCanvas) StrokePath(p *Path, width float64, clr color.Color) {
	for _, pt := range p.Points() {
		c.plot(pt[0], pt[1], '.', clr)
	}
}

func (c *TerminalCanvas) FillRadialGradient(x, y, r float64, stops ...GradientStop) {
	if len(stops) == 0 {
		return
	}
	c.plot(x, y, 'O', stops[0].Color)
}

func (c *TerminalCanvas) FillLinearGradientRect(x, y, w, h float64, top, bottom color.Color) {
	cx0, cy0 := c.cell(x, y)
	cx1, cy1 := c.cell(x+w, y+h)
	rows := max(cy1-cy0, 1)
	for cy := cy0; cy <= cy1; cy++ {
		clr := Lerp(top, bottom, float64(cy-cy0)/float64(rows))
		for cx := cx0; cx <= cx1; cx++ {
			c.set(cx, cy, '█', clr)
		}
	}
}

func (c *TerminalCanvas) DrawText(s string, x, y float64, clr color.Color) {
	cx, cy := c.cell(x, y)
	for i, r := range []rune(s) {
		c.set(cx+i, cy, r, clr)
	}
}

// Resize 终端尺寸由 tcell 管理，这里无需处理
func (c *TerminalCanvas) Resize(width, height int) {}

// Dispose 屏幕由调用方 Fini
func (c *TerminalCanvas) Dispose() {
	c.screen.Clear()
}

func (c *TerminalCanvas) cell(x, y float64) (int, int) {
	return int(math.Floor(x / c.CellWidth)), int(math.Floor(y / c.CellHeight))
}

func (c *TerminalCanvas) plot(x, y float64, ch rune, clr color.Color) {
	cx, cy := c.cell(x, y)
	c.set(cx, cy, ch, clr)
}

func (c *TerminalCanvas) set(cx, cy int, ch rune, clr color.Color) {
	cols, rows := c.screen.Size()
	if cx < 0 || cy < 0 || cx >= cols || cy >= rows {
		return
	}
	fg, ok := terminalColor(clr)
	if !ok {
		return
	}
	c.screen.SetContent(cx, cy, ch, nil, tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack))
}

// terminalColor 把带透明度的颜色与黑色背景混合，alpha 低于阈值时不绘制
func terminalColor(clr color.Color) (tcell.Color, bool) {
	n := color.NRGBAModel.Convert(clr).(color.NRGBA)
	if n.A < 16 {
		return tcell.ColorDefault, false
	}
	a := float64(n.A) / 255
	return tcell.NewRGBColor(int32(float64(n.R)*a), int32(float64(n.G)*a), int32(float64(n.B)*a)), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// TerminalHost 在同一个 tcell 屏幕上提供画布
type TerminalHost struct {
	Screen tcell.Screen
}

func (h TerminalHost) NewSurface(width, height int) Surface {
	return NewTerminalCanvas(h.Screen)
}
