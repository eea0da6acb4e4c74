package firework

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/gonewx/festfx/internal/particle"
	"github.com/gonewx/festfx/pkg/effects"
)

// Shape 烟花炸开的形状
type Shape int

const (
	ShapeRandom Shape = iota
	ShapeRing
	ShapeHeart
	ShapeStar
	ShapeDahlia
	ShapeCrossette
	ShapePhoenix
	ShapeSaturn
	ShapePeony
	ShapeSpiral
	ShapeDouble
)

// shapeCount 具体形状数量（不含 ShapeRandom）
const shapeCount = int(ShapeDouble)

var shapeNames = map[Shape]string{
	ShapeRandom:    "random",
	ShapeRing:      "ring",
	ShapeHeart:     "heart",
	ShapeStar:      "star",
	ShapeDahlia:    "dahlia",
	ShapeCrossette: "crossette",
	ShapePhoenix:   "phoenix",
	ShapeSaturn:    "saturn",
	ShapePeony:     "peony",
	ShapeSpiral:    "spiral",
	ShapeDouble:    "double",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Valid 是否为已知形状
func (s Shape) Valid() bool {
	return s >= ShapeRandom && s <= ShapeDouble
}

// Resolve ShapeRandom 时随机挑选一种具体形状
func (s Shape) Resolve(r *rand.Rand) Shape {
	if s == ShapeRandom || !s.Valid() {
		return Shape(1 + r.Intn(shapeCount))
	}
	return s
}

// BurstOptions 炸开参数
type BurstOptions struct {
	ParticleCount int     // 粒子总数
	SparkCount    int     // 二次爆炸子粒子数
	ExplodeChance float64 // 可二次爆炸的粒子比例
	TrailLength   int
	Speed         float64 // 动画速度倍率
	Opacity       float64
}

// burst 一次炸开的构造上下文
type burst struct {
	x, y float64
	hue  float64
	opts BurstOptions
	cfg  sparkConfig
	rng  *rand.Rand
	out  []particle.Particle
}

// spark 添加一个普通火花，按 ExplodeChance 随机标记为可二次爆炸
func (b *burst) spark(vx, vy, hue float64) *Spark {
	s := newSpark(b.cfg, b.x, b.y, vx, vy, hue)
	if b.rng.Float64() < b.opts.ExplodeChance {
		s.armExplosion()
	}
	b.out = append(b.out, s)
	return s
}

func (b *burst) jitter(v, amount float64) float64 {
	return v + effects.RandRange(b.rng, -amount, amount)
}

// Burst 在 (x, y) 生成指定形状的粒子
//
// 参数:
//   - shape: 形状，ShapeRandom 会随机挑选
//   - hue: 主色相
//   - opts: 炸开参数，ParticleCount <= 0 时返回空切片
//   - r: 随机源
//
// 返回:
//   - []particle.Particle: 初始粒子
func Burst(shape Shape, x, y, hue float64, opts BurstOptions, r *rand.Rand) []particle.Particle {
	if opts.ParticleCount <= 0 {
		return nil
	}
	if opts.Speed <= 0 {
		opts.Speed = 1
	}
	b := &burst{
		x: x, y: y, hue: hue, opts: opts, rng: r,
		cfg: sparkConfig{
			speed:       opts.Speed,
			opacity:     opts.Opacity,
			trailLength: opts.TrailLength,
			sparkCount:  opts.SparkCount,
			rng:         r,
		},
		out: make([]particle.Particle, 0, opts.ParticleCount),
	}

	switch shape.Resolve(r) {
	case ShapeRing:
		b.ring()
	case ShapeHeart:
		b.heart()
	case ShapeStar:
		b.star()
	case ShapeDahlia:
		b.dahlia()
	case ShapeCrossette:
		b.crossette()
	case ShapePhoenix:
		b.phoenix()
	case ShapeSaturn:
		b.saturn()
	case ShapePeony:
		b.peony()
	case ShapeSpiral:
		b.spiral()
	case ShapeDouble:
		b.double()
	}
	return b.out
}

// ring 均匀分布的圆环，速度几乎一致
func (b *burst) ring() {
	n := b.opts.ParticleCount
	v := effects.RandRange(b.rng, 3.5, 4.5)
	offset := b.rng.Float64() * 2 * math.Pi
	for i := 0; i < n; i++ {
		angle := offset + float64(i)*2*math.Pi/float64(n)
		speed := b.jitter(v, 0.1)
		b.spark(math.Cos(angle)*speed, math.Sin(angle)*speed, b.jitter(b.hue, 8))
	}
}

// heart 参数方程 x = 16sin³t, y = 13cost - 5cos2t - 2cos3t - cos4t
func (b *burst) heart() {
	n := b.opts.ParticleCount
	scale := effects.RandRange(b.rng, 0.22, 0.28)
	for i := 0; i < n; i++ {
		t := float64(i) * 2 * math.Pi / float64(n)
		hx := 16 * math.Pow(math.Sin(t), 3)
		hy := -(13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t))
		b.spark(hx*scale, hy*scale, b.jitter(b.hue, 6))
	}
}

// star 五角星轮廓：沿外顶点与内顶点之间的边均匀取点，速度正比于离心距离
func (b *burst) star() {
	const points = 5
	n := b.opts.ParticleCount
	outer := effects.RandRange(b.rng, 4, 5)
	inner := outer * 0.42
	rotation := -math.Pi / 2
	edges := points * 2
	for i := 0; i < n; i++ {
		pos := float64(i) * float64(edges) / float64(n)
		edge := int(pos)
		t := pos - float64(edge)

		a0 := rotation + float64(edge)*math.Pi/points
		a1 := rotation + float64(edge+1)*math.Pi/points
		r0, r1 := outer, inner
		if edge%2 == 1 {
			r0, r1 = inner, outer
		}
		vx := math.Cos(a0)*r0*(1-t) + math.Cos(a1)*r1*t
		vy := math.Sin(a0)*r0*(1-t) + math.Sin(a1)*r1*t
		b.spark(vx, vy, b.jitter(b.hue, 10))
	}
}

// dahlia 若干条射线，每条射线上的粒子速度递增，颜色随生命渐变
func (b *burst) dahlia() {
	n := b.opts.ParticleCount
	rays := 12 + b.rng.Intn(7)
	perRay := max(n/rays, 1)
	fadeHue := b.hue + effects.RandRange(b.rng, 40, 80)
	offset := b.rng.Float64() * 2 * math.Pi
	for i := 0; i < n; i++ {
		ray := (i / perRay) % rays
		step := i % perRay
		angle := offset + float64(ray)*2*math.Pi/float64(rays)
		speed := 1.5 + 3.5*float64(step+1)/float64(perRay)
		s := b.spark(math.Cos(angle)*speed, math.Sin(angle)*speed, b.hue)
		fh := fadeHue
		s.FadeHue = &fh
	}
}

// crossette 少量粗火花，在生命中段强制十字分裂
func (b *burst) crossette() {
	n := max(b.opts.ParticleCount/8, 4)
	offset := b.rng.Float64() * 2 * math.Pi
	for i := 0; i < n; i++ {
		angle := offset + float64(i)*2*math.Pi/float64(n)
		speed := effects.RandRange(b.rng, 2.5, 3.5)
		cs := newCrossetteSpark(b.cfg, b.x, b.y, math.Cos(angle)*speed, math.Sin(angle)*speed, b.jitter(b.hue, 10))
		cs.Size *= 1.4
		b.out = append(b.out, cs)
	}
}

// phoenix 一对对称上扬的翅膀加下垂的金色尾羽
func (b *burst) phoenix() {
	n := b.opts.ParticleCount
	tail := n / 4
	wing := (n - tail) / 2
	for i := 0; i < wing; i++ {
		t := float64(i) / float64(max(wing-1, 1))
		// 翅膀从水平向上张开到约 70°，越靠外越快
		angle := t * 1.2
		speed := 2 + 3*t
		vx := math.Cos(angle) * speed
		vy := -math.Sin(angle) * speed * 0.8
		hue := b.hue + 25*t
		b.spark(vx, vy, hue)
		b.spark(-vx, vy, hue)
	}
	for i := 0; i < n-wing*2; i++ {
		vx := effects.RandRange(b.rng, -0.6, 0.6)
		vy := effects.RandRange(b.rng, 0.8, 2.2)
		s := b.spark(vx, vy, 42)
		s.Decay *= 0.8
	}
}

// saturnTilt 土星环的固定倾角
const saturnTilt = 0.35

// saturn 球状内核加一圈倾斜的扁平光环
func (b *burst) saturn() {
	n := b.opts.ParticleCount
	core := n / 2
	for i := 0; i < core; i++ {
		angle := b.rng.Float64() * 2 * math.Pi
		speed := effects.RandRange(b.rng, 0.5, 2.2)
		b.spark(math.Cos(angle)*speed, math.Sin(angle)*speed, b.hue)
	}
	ringHue := b.hue + 180
	cos, sin := math.Cos(saturnTilt), math.Sin(saturnTilt)
	ringN := n - core
	for i := 0; i < ringN; i++ {
		angle := float64(i) * 2 * math.Pi / float64(ringN)
		rx := math.Cos(angle) * 4
		ry := math.Sin(angle) * 4 * 0.28
		b.spark(rx*cos-ry*sin, rx*sin+ry*cos, b.jitter(ringHue, 5))
	}
}

// peony 多层玫瑰线花瓣 r = |cos(kθ)|，外层更快、色相逐层偏移
func (b *burst) peony() {
	const layers = 3
	n := b.opts.ParticleCount
	petals := 5 + b.rng.Intn(3)
	k := float64(petals) / 2
	offset := b.rng.Float64() * 2 * math.Pi
	for i := 0; i < n; i++ {
		layer := i % layers
		theta := offset + float64(i/layers)*2*math.Pi*float64(layers)/float64(n)
		petal := math.Abs(math.Cos(k * theta))
		speed := (1.2 + 0.9*float64(layer)) * (0.45 + 0.55*petal)
		b.spark(math.Cos(theta)*speed, math.Sin(theta)*speed, b.hue+float64(layer)*15)
	}
}

// spiral 若干条旋臂，火花速度方向每帧旋转
func (b *burst) spiral() {
	n := b.opts.ParticleCount
	arms := 3 + b.rng.Intn(3)
	spin := effects.RandRange(b.rng, 0.03, 0.06)
	if b.rng.Intn(2) == 0 {
		spin = -spin
	}
	perArm := max(n/arms, 1)
	for i := 0; i < n; i++ {
		arm := i % arms
		step := i / arms
		angle := float64(arm)*2*math.Pi/float64(arms) + float64(step)*0.15
		speed := 1 + 3*float64(step)/float64(perArm)
		s := newSpark(b.cfg, b.x, b.y, math.Cos(angle)*speed, math.Sin(angle)*speed, b.hue+float64(arm)*30)
		if b.rng.Float64() < b.opts.ExplodeChance {
			s.armExplosion()
		}
		b.out = append(b.out, &SpiralSpark{Spark: *s, Spin: spin})
	}
}

// double 内层密集慢速 + 外层稀疏快速，两层互补色
func (b *burst) double() {
	n := b.opts.ParticleCount
	inner := n * 2 / 3
	for i := 0; i < inner; i++ {
		angle := float64(i) * 2 * math.Pi / float64(inner)
		speed := b.jitter(2, 0.2)
		b.spark(math.Cos(angle)*speed, math.Sin(angle)*speed, b.hue)
	}
	outer := n - inner
	for i := 0; i < outer; i++ {
		angle := float64(i)*2*math.Pi/float64(max(outer, 1)) + math.Pi/float64(max(outer, 1))
		speed := b.jitter(4.5, 0.2)
		b.spark(math.Cos(angle)*speed, math.Sin(angle)*speed, b.hue+180)
	}
}
