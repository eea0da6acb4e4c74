package particle

import (
	"image/color"

	"github.com/gonewx/festfx/pkg/render"
)

// Point 二维坐标
type Point struct {
	X, Y float64
}

// Trail 固定容量的历史位置队列，最旧的点先被挤出
type Trail struct {
	points   []Point
	capacity int
}

// NewTrail 创建轨迹，capacity <= 0 表示不记录轨迹
func NewTrail(capacity int) *Trail {
	if capacity < 0 {
		capacity = 0
	}
	return &Trail{points: make([]Point, 0, capacity), capacity: capacity}
}

// Push 记录一个位置
func (t *Trail) Push(x, y float64) {
	if t.capacity == 0 {
		return
	}
	if len(t.points) == t.capacity {
		copy(t.points, t.points[1:])
		t.points = t.points[:len(t.points)-1]
	}
	t.points = append(t.points, Point{x, y})
}

// Points 从旧到新返回轨迹点
func (t *Trail) Points() []Point {
	return t.points
}

func (t *Trail) Len() int {
	return len(t.points)
}

// Draw 从最旧的点连线到 (x, y)，越旧越透明
func (t *Trail) Draw(c render.Canvas, x, y, width float64, clr color.Color, alpha float64) {
	n := len(t.points)
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		from := t.points[i]
		to := Point{x, y}
		if i+1 < n {
			to = t.points[i+1]
		}
		fade := alpha * float64(i+1) / float64(n+1)
		c.StrokeLine(from.X, from.Y, to.X, to.Y, width, render.Fade(clr, fade))
	}
}

// Cap 轨迹容量
func (t *Trail) Cap() int {
	return t.capacity
}
