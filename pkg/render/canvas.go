// Package render 定义特效使用的 2D 绘图接口及其后端实现
//
// 特效代码只依赖 Canvas 接口，后端包括：
//   - EbitenCanvas: 桌面浮层（ebiten 离屏图像）
//   - TerminalCanvas: 终端预览（tcell）
//   - Recorder: 测试用的绘图记录器
package render

import (
	"image/color"
	"math"
)

// Canvas 2D 绘图上下文
//
// 坐标单位为像素，原点在左上角。颜色的 alpha 通道直接参与合成。
type Canvas interface {
	// Size 返回画布尺寸
	Size() (width, height float64)
	// Clear 清空整个画布（对应 clearRect）
	Clear()
	FillCircle(x, y, r float64, clr color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, clr color.Color)
	FillPath(p *Path, clr color.Color)
	StrokePath(p *Path, width float64, clr color.Color)
	// FillRadialGradient 以 (x, y) 为圆心、r 为半径填充径向渐变，stops 按 Offset 升序
	FillRadialGradient(x, y, r float64, stops ...GradientStop)
	// FillLinearGradientRect 自上而下的线性渐变矩形
	FillLinearGradientRect(x, y, w, h float64, top, bottom color.Color)
	DrawText(s string, x, y float64, clr color.Color)
}

// Surface 可调整尺寸、可销毁的画布（对应一个 <canvas> 元素）
type Surface interface {
	Canvas
	// Resize 原地调整尺寸，内容会被清空
	Resize(width, height int)
	// Dispose 释放底层资源，之后不得再使用
	Dispose()
}

// Host 负责创建画布（对应 document.body.appendChild）
type Host interface {
	NewSurface(width, height int) Surface
}

// GradientStop 渐变色标
type GradientStop struct {
	Offset float64 // 0 = 圆心, 1 = 边缘
	Color  color.Color
}

// PathOp 路径指令类型
type PathOp int

const (
	OpMoveTo PathOp = iota
	OpLineTo
	OpQuadTo
	OpCubicTo
	OpArc
	OpClose
)

// PathCmd 单条路径指令
//
// Args 含义：
//   - MoveTo/LineTo: x, y
//   - QuadTo: cx, cy, x, y
//   - CubicTo: c1x, c1y, c2x, c2y, x, y
//   - Arc: cx, cy, r, startAngle, endAngle（顺时针，弧度）
type PathCmd struct {
	Op   PathOp
	Args [6]float64
}

// Path 与后端无关的矢量路径
type Path struct {
	cmds []PathCmd
}

func (p *Path) MoveTo(x, y float64) {
	p.cmds = append(p.cmds, PathCmd{Op: OpMoveTo, Args: [6]float64{x, y}})
}

func (p *Path) LineTo(x, y float64) {
	p.cmds = append(p.cmds, PathCmd{Op: OpLineTo, Args: [6]float64{x, y}})
}

func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.cmds = append(p.cmds, PathCmd{Op: OpQuadTo, Args: [6]float64{cx, cy, x, y}})
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.cmds = append(p.cmds, PathCmd{Op: OpCubicTo, Args: [6]float64{c1x, c1y, c2x, c2y, x, y}})
}

func (p *Path) Arc(cx, cy, r, startAngle, endAngle float64) {
	p.cmds = append(p.cmds, PathCmd{Op: OpArc, Args: [6]float64{cx, cy, r, startAngle, endAngle}})
}

func (p *Path) Close() {
	p.cmds = append(p.cmds, PathCmd{Op: OpClose})
}

// Commands 返回路径指令（只读）
func (p *Path) Commands() []PathCmd {
	return p.cmds
}

// Points 把路径展平为折线顶点，曲线和圆弧按固定步数采样
//
// 终端后端用它近似绘制，也用于计算包围盒。
func (p *Path) Points() [][2]float64 {
	const steps = 8
	var pts [][2]float64
	var cur [2]float64
	for _, c := range p.cmds {
		a := c.Args
		switch c.Op {
		case OpMoveTo, OpLineTo:
			cur = [2]float64{a[0], a[1]}
			pts = append(pts, cur)
		case OpQuadTo:
			start := cur
			for i := 1; i <= steps; i++ {
				t := float64(i) / steps
				u := 1 - t
				x := u*u*start[0] + 2*u*t*a[0] + t*t*a[2]
				y := u*u*start[1] + 2*u*t*a[1] + t*t*a[3]
				pts = append(pts, [2]float64{x, y})
			}
			cur = [2]float64{a[2], a[3]}
		case OpCubicTo:
			start := cur
			for i := 1; i <= steps; i++ {
				t := float64(i) / steps
				u := 1 - t
				x := u*u*u*start[0] + 3*u*u*t*a[0] + 3*u*t*t*a[2] + t*t*t*a[4]
				y := u*u*u*start[1] + 3*u*u*t*a[1] + 3*u*t*t*a[3] + t*t*t*a[5]
				pts = append(pts, [2]float64{x, y})
			}
			cur = [2]float64{a[4], a[5]}
		case OpArc:
			sweep := a[4] - a[3]
			for i := 0; i <= steps; i++ {
				angle := a[3] + sweep*float64(i)/steps
				cur = [2]float64{a[0] + math.Cos(angle)*a[2], a[1] + math.Sin(angle)*a[2]}
				pts = append(pts, cur)
			}
		}
	}
	return pts
}

// Bounds 路径包围盒
func (p *Path) Bounds() (minX, minY, maxX, maxY float64) {
	pts := p.Points()
	if len(pts) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = pts[0][0], pts[0][1]
	maxX, maxY = minX, minY
	for _, pt := range pts[1:] {
		minX = math.Min(minX, pt[0])
		minY = math.Min(minY, pt[1])
		maxX = math.Max(maxX, pt[0])
		maxY = math.Max(maxY, pt[1])
	}
	return minX, minY, maxX, maxY
}
