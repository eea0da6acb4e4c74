// Package firework 实现烟花特效：火箭升空 → 炸开 → 粒子消散，以及粒子的二次爆炸
package firework

import (
	"math"
	"math/rand"

	"github.com/gonewx/festfx/internal/particle"
	"github.com/gonewx/festfx/pkg/effects"
	"github.com/gonewx/festfx/pkg/render"
)

// 物理常量（每帧）
const (
	sparkGravity  = 0.04
	sparkFriction = 0.98

	// smallSparkSpeedMin/Max 二次爆炸子粒子的初速度范围
	smallSparkSpeedMin = 0.8
	smallSparkSpeedMax = 2.6

	// explodeTimeMin/Max 可爆炸粒子的爆炸阈值范围（剩余生命）
	explodeTimeMin = 0.2
	explodeTimeMax = 0.7
)

// Spark 烟花炸开后的普通火花
type Spark struct {
	X, Y   float64
	VX, VY float64

	// Life 剩余生命 (0,1]，每帧减少 Decay
	Life  float64
	Decay float64

	Size    float64
	Hue     float64
	Opacity float64

	// FadeHue 非 nil 时颜色随生命衰减渐变到该色相（大丽花）
	FadeHue *float64

	Gravity  float64
	Friction float64

	// CanExplode 为 true 时，Life 低于 ExplodeTime 会触发一次二次爆炸
	CanExplode  bool
	ExplodeTime float64
	Exploded    bool
	SparkCount  int

	trail *particle.Trail
	rng   *rand.Rand
	speed float64
}

// sparkConfig 构造火花的公共参数
type sparkConfig struct {
	speed       float64 // 动画速度倍率
	opacity     float64
	trailLength int
	sparkCount  int
	rng         *rand.Rand
}

func newSpark(cfg sparkConfig, x, y, vx, vy, hue float64) *Spark {
	r := cfg.rng
	return &Spark{
		X:        x,
		Y:        y,
		VX:       vx * cfg.speed,
		VY:       vy * cfg.speed,
		Life:     1,
		Decay:    effects.RandRange(r, 0.010, 0.018) * cfg.speed,
		Size:     effects.RandRange(r, 1.5, 2.8),
		Hue:      hue,
		Opacity:  cfg.opacity,
		Gravity:  sparkGravity * cfg.speed,
		Friction: sparkFriction,

		SparkCount: cfg.sparkCount,
		trail:      particle.NewTrail(cfg.trailLength),
		rng:        r,
		speed:      cfg.speed,
	}
}

// armExplosion 标记为可二次爆炸，阈值随机落在 (explodeTimeMin, explodeTimeMax)
func (s *Spark) armExplosion() {
	s.CanExplode = true
	s.ExplodeTime = effects.RandRange(s.rng, explodeTimeMin, explodeTimeMax)
}

func (s *Spark) Update() bool {
	s.trail.Push(s.X, s.Y)
	s.VX *= s.Friction
	s.VY *= s.Friction
	s.VY += s.Gravity
	s.X += s.VX
	s.Y += s.VY
	s.Life -= s.Decay
	return s.Life > 0
}

// currentHue 当前色相（考虑渐变）
func (s *Spark) currentHue() float64 {
	if s.FadeHue == nil {
		return s.Hue
	}
	t := 1 - math.Max(s.Life, 0)
	return s.Hue + (*s.FadeHue-s.Hue)*t
}

func (s *Spark) Draw(c render.Canvas) {
	alpha := math.Max(s.Life, 0) * s.Opacity
	if alpha <= 0 {
		return
	}
	hue := s.currentHue()
	s.trail.Draw(c, s.X, s.Y, s.Size*0.6, render.HSL(hue, 1, 0.6), alpha)
	c.FillCircle(s.X, s.Y, s.Size, render.HSLA(hue, 1, 0.65, alpha))
}

func (s *Spark) ShouldExplode() bool {
	if !s.CanExplode || s.Exploded || s.Life >= s.ExplodeTime {
		return false
	}
	s.Exploded = true
	return true
}

// SecondaryExplosion 在当前位置生成 SparkCount 个不可再爆炸的小火花
func (s *Spark) SecondaryExplosion() []particle.Particle {
	children := make([]particle.Particle, 0, s.SparkCount)
	for i := 0; i < s.SparkCount; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		v := effects.RandRange(s.rng, smallSparkSpeedMin, smallSparkSpeedMax)
		hue := s.currentHue() + effects.RandRange(s.rng, -20, 20)
		children = append(children, NewSmallSpark(s, s.X, s.Y, math.Cos(angle)*v, math.Sin(angle)*v, hue))
	}
	return children
}

// SmallSpark 二次爆炸产生的小火花，生命全新且不会再爆炸
type SmallSpark struct {
	Spark
}

// NewSmallSpark 以 parent 的参数为基础创建小火花
func NewSmallSpark(parent *Spark, x, y, vx, vy, hue float64) *SmallSpark {
	speed := parent.speed
	return &SmallSpark{Spark: Spark{
		X:        x,
		Y:        y,
		VX:       vx * speed,
		VY:       vy * speed,
		Life:     1,
		Decay:    effects.RandRange(parent.rng, 0.025, 0.04) * speed,
		Size:     effects.RandRange(parent.rng, 0.8, 1.4),
		Hue:      hue,
		Opacity:  parent.Opacity,
		Gravity:  sparkGravity * speed,
		Friction: 0.96,
		trail:    particle.NewTrail(min(parent.trail.Cap(), 3)),
		rng:      parent.rng,
		speed:    speed,
	}}
}

func (s *SmallSpark) Draw(c render.Canvas) {
	alpha := math.Max(s.Life, 0) * s.Opacity
	if alpha <= 0 {
		return
	}
	s.trail.Draw(c, s.X, s.Y, s.Size*0.5, render.HSL(s.Hue, 1, 0.7), alpha)
	c.FillCircle(s.X, s.Y, s.Size, render.HSLA(s.Hue, 1, 0.75, alpha))
}

func (s *SmallSpark) ShouldExplode() bool { return false }

func (s *SmallSpark) SecondaryExplosion() []particle.Particle { return nil }

// SpiralSpark 速度方向每帧旋转固定角度的火花（螺旋烟花）
type SpiralSpark struct {
	Spark
	// Spin 每帧旋转角度（弧度）
	Spin float64
}

func (s *SpiralSpark) Update() bool {
	sin, cos := math.Sincos(s.Spin * s.speed)
	s.VX, s.VY = s.VX*cos-s.VY*sin, s.VX*sin+s.VY*cos
	return s.Spark.Update()
}

// CrossetteSpark 必定分裂的火花：在生命中段沿十字方向分出 4 个小火花
type CrossetteSpark struct {
	Spark
}

// crossetteSplitLife 十字分裂发生时的剩余生命
const crossetteSplitLife = 0.55

func newCrossetteSpark(cfg sparkConfig, x, y, vx, vy, hue float64) *CrossetteSpark {
	cs := &CrossetteSpark{Spark: *newSpark(cfg, x, y, vx, vy, hue)}
	cs.CanExplode = true
	cs.ExplodeTime = crossetteSplitLife
	cs.SparkCount = 4
	return cs
}

// SecondaryExplosion 沿当前运动方向的十字分出 4 个小火花
func (s *CrossetteSpark) SecondaryExplosion() []particle.Particle {
	base := math.Atan2(s.VY, s.VX) + math.Pi/4
	children := make([]particle.Particle, 0, 4)
	for i := 0; i < 4; i++ {
		angle := base + float64(i)*math.Pi/2
		v := effects.RandRange(s.rng, 1.6, 2.4)
		children = append(children, NewSmallSpark(&s.Spark, s.X, s.Y, math.Cos(angle)*v, math.Sin(angle)*v, s.Hue))
	}
	return children
}
