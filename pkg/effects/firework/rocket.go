package firework

import (
	"math"

	"github.com/gonewx/festfx/internal/particle"
	"github.com/gonewx/festfx/pkg/render"
)

const (
	// rocketDrag 每帧速度衰减系数
	rocketDrag = 0.985

	// rocketMinRise 上升速度低于该值（像素/帧）即视为到顶
	rocketMinRise = 0.8

	// rocketBoost 初速度在刚好到达目标高度所需速度之上的余量
	rocketBoost = 1.2

	rocketTrailLength = 8
)

// Rocket 升空阶段的火箭
//
// 速度每帧按 rocketDrag 衰减；到达目标高度或上升速度衰减到 rocketMinRise 以下时到顶，
// Update 返回 false，由 Firework 在到顶位置炸开。
type Rocket struct {
	particle.Inert

	X, Y    float64
	VX, VY  float64
	TargetY float64
	Hue     float64
	Opacity float64

	arrived bool
	trail   *particle.Trail
}

// NewRocket 创建从 (x, y) 飞向 (targetX, targetY) 的火箭
//
// 参数:
//   - speed: 动画速度倍率，越小越早因速度衰减而到顶
func NewRocket(x, y, targetX, targetY, hue, speed, opacity float64) *Rocket {
	dist := math.Max(y-targetY, 0)
	// 几何级数：v0 / (1 - drag) 为理论最大上升距离
	vy := -(dist*(1-rocketDrag) + rocketBoost) * speed
	frames := math.Max(dist/math.Max(-vy, 1), 1)
	return &Rocket{
		X:       x,
		Y:       y,
		VX:      (targetX - x) / frames,
		VY:      vy,
		TargetY: targetY,
		Hue:     hue,
		Opacity: opacity,
		trail:   particle.NewTrail(rocketTrailLength),
	}
}

func (r *Rocket) Update() bool {
	if r.arrived {
		return false
	}
	r.trail.Push(r.X, r.Y)
	r.X += r.VX
	r.Y += r.VY
	r.VX *= rocketDrag
	r.VY *= rocketDrag
	if r.Y <= r.TargetY || -r.VY < rocketMinRise {
		r.arrived = true
		return false
	}
	return true
}

// Arrived 是否已到顶
func (r *Rocket) Arrived() bool {
	return r.arrived
}

func (r *Rocket) Draw(c render.Canvas) {
	r.trail.Draw(c, r.X, r.Y, 2, render.HSL(r.Hue, 0.9, 0.7), r.Opacity)
	c.FillCircle(r.X, r.Y, 2.5, render.HSLA(r.Hue, 1, 0.85, r.Opacity))
}
