package firework

import (
	"math/rand"

	"github.com/gonewx/festfx/internal/particle"
	"github.com/gonewx/festfx/pkg/render"
)

// Phase 烟花所处阶段
type Phase int

const (
	PhaseLaunch Phase = iota // 火箭升空
	PhaseFade                // 已炸开，粒子消散中
	PhaseDead                // 全部粒子消失
)

func (p Phase) String() string {
	switch p {
	case PhaseLaunch:
		return "launch"
	case PhaseFade:
		return "fade"
	case PhaseDead:
		return "dead"
	}
	return "unknown"
}

// Firework 单个烟花：launch → burst（瞬时）→ fade → dead
type Firework struct {
	rocket    *Rocket
	particles *particle.Collection
	phase     Phase
	shape     Shape
	hue       float64
	opts      BurstOptions
	rng       *rand.Rand
	onBurst   func(x, y float64)

	burstX, burstY float64
}

// NewFirework 创建一个处于升空阶段的烟花
//
// 参数:
//   - rocket: 升空火箭
//   - shape: 炸开形状（ShapeRandom 在炸开时才随机）
//   - opts: 炸开参数
//   - r: 随机源
//   - onBurst: 炸开回调，可为 nil
func NewFirework(rocket *Rocket, shape Shape, opts BurstOptions, r *rand.Rand, onBurst func(x, y float64)) *Firework {
	return &Firework{
		rocket:    rocket,
		particles: particle.NewCollection(),
		phase:     PhaseLaunch,
		shape:     shape,
		hue:       rocket.Hue,
		opts:      opts,
		rng:       r,
		onBurst:   onBurst,
	}
}

// Phase 当前阶段
func (f *Firework) Phase() Phase {
	return f.phase
}

// Dead 是否已结束
func (f *Firework) Dead() bool {
	return f.phase == PhaseDead
}

// ParticleCount 当前火花数量
func (f *Firework) ParticleCount() int {
	return f.particles.Len()
}

// BurstPosition 炸开位置，仅在 PhaseFade 之后有意义
func (f *Firework) BurstPosition() (float64, float64) {
	return f.burstX, f.burstY
}

// Tick 推进一帧并绘制
func (f *Firework) Tick(c render.Canvas) {
	switch f.phase {
	case PhaseLaunch:
		if f.rocket.Update() {
			if c != nil {
				f.rocket.Draw(c)
			}
			return
		}
		f.burst()
	case PhaseFade:
		f.particles.Step(c)
		if f.particles.Empty() {
			f.phase = PhaseDead
		}
	}
}

// burst 在火箭到顶位置瞬间生成全部粒子；没有粒子时直接结束
func (f *Firework) burst() {
	f.burstX, f.burstY = f.rocket.X, f.rocket.Y
	f.particles.Add(Burst(f.shape, f.burstX, f.burstY, f.hue, f.opts, f.rng)...)
	if f.particles.Empty() {
		f.phase = PhaseDead
		return
	}
	f.phase = PhaseFade
	if f.onBurst != nil {
		f.onBurst(f.burstX, f.burstY)
	}
}
