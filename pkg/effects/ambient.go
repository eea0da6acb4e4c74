package effects

import (
	"math"
	"math/rand"

	"github.com/gonewx/festfx/internal/particle"
	"github.com/gonewx/festfx/pkg/config"
	"github.com/gonewx/festfx/pkg/render"
)

// Profile 持续类特效的公共运动参数（来自 EffectParams）
type Profile struct {
	Speed   float64 // 下落速度倍率
	Opacity float64 // 整体不透明度
	Wind    float64 // 水平风力，像素/帧
	Size    float64 // 尺寸倍率
	Count   int     // 粒子数量
	Rotate  bool    // 是否自转
	Glow    bool    // 是否绘制光晕
}

// ProfileFromParams 从参数读取运动参数
func ProfileFromParams(p config.EffectParams) Profile {
	return Profile{
		Speed:   p.Float(config.ParamSpeed),
		Opacity: p.Float(config.ParamOpacity),
		Wind:    p.Float(config.ParamWind),
		Size:    p.Float(config.ParamSize),
		Count:   p.Int(config.ParamCount),
		Rotate:  p.Bool(config.ParamRotate),
		Glow:    p.Bool(config.ParamGlow),
	}
}

// Style 决定一种持续类特效的外观和出生参数
type Style interface {
	// Variants 外观子类型数量
	Variants() int

	// PickVariant 为第 index 个粒子选择子类型，选定后终身不变
	PickVariant(r *rand.Rand, index int) int

	// Spawn 初始化粒子的尺寸、速度和摆动参数（位置由 Ambient 负责）
	Spawn(a *Ambient, r *rand.Rand)

	// Draw 绘制单个粒子
	Draw(a *Ambient, c render.Canvas)
}

// Ambient 持续类特效的单个粒子，永不死亡、永不爆炸
type Ambient struct {
	particle.Inert

	X, Y       float64
	VX, VY     float64
	Size       float64
	Alpha      float64
	Variant    int
	Hue        float64
	Rotation   float64
	SpinSpeed  float64
	SwingAngle float64
	SwingSpeed float64
	SwingAmp   float64

	style   Style
	profile *Profile
	bounds  *Bounds
	rng     *rand.Rand
}

// spawnMargin 出生/回绕时超出屏幕的距离
func (a *Ambient) spawnMargin() float64 {
	return a.Size*2 + 10
}

// respawn 在屏幕顶部上方重新出生，initial 为 true 时在整个屏幕高度内随机分布
func (a *Ambient) respawn(initial bool) {
	a.style.Spawn(a, a.rng)
	a.Size *= a.profile.Size
	a.VY *= a.profile.Speed
	a.X = a.rng.Float64() * a.bounds.Width
	margin := a.spawnMargin()
	if initial {
		a.Y = -margin - a.rng.Float64()*a.bounds.Height
	} else {
		a.Y = -margin - a.rng.Float64()*margin
	}
	a.SwingAngle = a.rng.Float64() * 2 * math.Pi
	if a.profile.Rotate {
		a.Rotation = a.rng.Float64() * 2 * math.Pi
	} else {
		a.Rotation = 0
	}
}

// Update 下落 + 摆动 + 风力，越界回绕/重生，始终返回 true
func (a *Ambient) Update() bool {
	a.SwingAngle += a.SwingSpeed * a.profile.Speed
	a.X += a.VX + math.Sin(a.SwingAngle)*a.SwingAmp + a.profile.Wind
	a.Y += a.VY
	if a.profile.Rotate {
		a.Rotation += a.SpinSpeed * a.profile.Speed
	}

	margin := a.spawnMargin()
	w, h := a.bounds.Width, a.bounds.Height
	if a.X < -margin {
		a.X = w + margin
	} else if a.X > w+margin {
		a.X = -margin
	}
	if a.Y > h+margin {
		a.respawn(false)
	}
	return true
}

func (a *Ambient) Draw(c render.Canvas) {
	if a.Y < -a.spawnMargin() {
		return
	}
	a.style.Draw(a, c)
}

// Opacity 粒子最终不透明度
func (a *Ambient) Opacity() float64 {
	return a.Alpha * a.profile.Opacity
}

// Glow 是否绘制光晕
func (a *Ambient) Glow() bool {
	return a.profile.Glow
}

// Field 持续类特效：固定数量的 Ambient 粒子
type Field struct {
	name      config.EffectType
	profile   Profile
	bounds    *Bounds
	particles *particle.Collection
}

// NewField 创建持续类特效
//
// 参数:
//   - effectType: 特效类型（用于日志和调试）
//   - style: 外观
//   - profile: 运动参数
//   - env: 运行环境
func NewField(effectType config.EffectType, style Style, profile Profile, env Env) *Field {
	env = env.WithDefaults()
	f := &Field{
		name:    effectType,
		profile: profile,
		bounds:  &Bounds{Width: env.Width, Height: env.Height},
	}

	ps := make([]particle.Particle, 0, max(profile.Count, 0))
	for i := 0; i < profile.Count; i++ {
		a := &Ambient{
			style:   style,
			profile: &f.profile,
			bounds:  f.bounds,
			rng:     env.Rand,
			Alpha:   1,
		}
		a.Variant = style.PickVariant(env.Rand, i)
		a.respawn(true)
		ps = append(ps, a)
	}
	f.particles = particle.NewCollection(ps...)
	return f
}

func (f *Field) Tick(c render.Canvas) {
	f.particles.Step(c)
}

func (f *Field) Resize(width, height float64) {
	f.bounds.Width = width
	f.bounds.Height = height
}

// Done 持续类特效只有在粒子数为 0 时才结束
func (f *Field) Done() bool {
	return f.particles.Empty()
}

// Type 特效类型
func (f *Field) Type() config.EffectType {
	return f.name
}

// Len 粒子数量
func (f *Field) Len() int {
	return f.particles.Len()
}

// Particles 当前粒子
func (f *Field) Particles() []*Ambient {
	out := make([]*Ambient, 0, f.particles.Len())
	for _, p := range f.particles.Particles() {
		out = append(out, p.(*Ambient))
	}
	return out
}

// roundRobin 依次循环选择子类型
func roundRobin(variants, index int) int {
	if variants <= 0 {
		return 0
	}
	return index % variants
}

// weighted 按权重随机选择子类型
func weighted(r *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	x := r.Float64() * total
	for i, w := range weights {
		if x < w {
			return i
		}
		x -= w
	}
	return len(weights) - 1
}
