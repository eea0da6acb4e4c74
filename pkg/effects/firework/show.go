package firework

import (
	"math"
	"time"

	"github.com/gonewx/festfx/pkg/config"
	"github.com/gonewx/festfx/pkg/effects"
	"github.com/gonewx/festfx/pkg/render"
)

const (
	// framesPerSecond 发射间隔按帧计数
	framesPerSecond = 60

	// multiLaunchChance 每次发射附带额外火箭的概率
	multiLaunchChance = 0.3

	multiLaunchDelayMin = 150 * time.Millisecond
	multiLaunchDelayMax = 400 * time.Millisecond
)

// Options 烟花表演参数
type Options struct {
	Count       int // 同时在空中的烟花上限
	Interval    time.Duration
	Shape       Shape
	MultiLaunch bool
	Burst       BurstOptions
}

// OptionsFromParams 从特效参数读取表演参数
func OptionsFromParams(p config.EffectParams) Options {
	return Options{
		Count:       p.Int(config.ParamCount),
		Interval:    time.Duration(p.Float(config.ParamInterval) * float64(time.Second)),
		Shape:       Shape(p.Int(config.ParamShape)),
		MultiLaunch: p.Bool(config.ParamMultiLaunch),
		Burst: BurstOptions{
			ParticleCount: p.Int(config.ParamParticleCount),
			SparkCount:    p.Int(config.ParamSparkCount),
			ExplodeChance: p.Float(config.ParamExplodeChance),
			TrailLength:   p.Int(config.ParamTrailLength),
			Speed:         p.Float(config.ParamSpeed),
			Opacity:       p.Float(config.ParamOpacity),
		},
	}
}

// Show 持续的烟花表演，实现 effects.Effect
//
// 每 Interval 发射一枚火箭，空中烟花数不超过 Count；开启 MultiLaunch 时，
// 每次发射有 30% 概率在 150~400ms 后追加 1~2 枚火箭（通过 Env.After 调度，
// 特效停止后这些回调不会再生效）。
type Show struct {
	env       effects.Env
	bounds    effects.Bounds
	opts      Options
	fireworks []*Firework

	frame       int
	nextLaunch  int
	launchEvery int
}

// NewShow 创建烟花表演
func NewShow(opts Options, env effects.Env) *Show {
	env = env.WithDefaults()
	every := int(math.Round(opts.Interval.Seconds() * framesPerSecond))
	return &Show{
		env:         env,
		bounds:      effects.Bounds{Width: env.Width, Height: env.Height},
		opts:        opts,
		launchEvery: max(every, 1),
	}
}

// NewShowFromParams 按特效参数创建烟花表演
func NewShowFromParams(p config.EffectParams, env effects.Env) *Show {
	return NewShow(OptionsFromParams(p), env)
}

func (s *Show) Tick(c render.Canvas) {
	s.frame++
	if s.opts.Count > 0 && s.frame >= s.nextLaunch && len(s.fireworks) < s.opts.Count {
		s.launch()
		s.nextLaunch = s.frame + s.launchEvery
	}

	alive := s.fireworks[:0]
	for _, fw := range s.fireworks {
		fw.Tick(c)
		if !fw.Dead() {
			alive = append(alive, fw)
		}
	}
	clear(s.fireworks[len(alive):])
	s.fireworks = alive
}

func (s *Show) Resize(width, height float64) {
	s.bounds.Width = width
	s.bounds.Height = height
}

// Done 表演不会自然结束
func (s *Show) Done() bool {
	return false
}

// Active 空中的烟花数量
func (s *Show) Active() int {
	return len(s.fireworks)
}

// Fireworks 当前烟花
func (s *Show) Fireworks() []*Firework {
	return s.fireworks
}

// launch 随机位置发射一枚，并按概率安排追加发射
func (s *Show) launch() {
	s.launchRandom()
	if !s.opts.MultiLaunch || s.env.Rand.Float64() >= multiLaunchChance {
		return
	}
	extra := 1 + s.env.Rand.Intn(2)
	for i := 0; i < extra; i++ {
		delay := multiLaunchDelayMin + time.Duration(s.env.Rand.Int63n(int64(multiLaunchDelayMax-multiLaunchDelayMin)))
		s.env.After(delay, s.launchExtra)
	}
}

// launchExtra 追加发射允许超出 Count，但不超过两倍
func (s *Show) launchExtra() {
	if len(s.fireworks) >= 2*s.opts.Count {
		return
	}
	s.launchRandom()
}

func (s *Show) launchRandom() {
	r := s.env.Rand
	w, h := s.bounds.Width, s.bounds.Height
	startX := effects.RandRange(r, w*0.1, w*0.9)
	targetX := startX + effects.RandRange(r, -w*0.1, w*0.1)
	targetY := effects.RandRange(r, h*0.15, h*0.45)
	s.fire(startX, targetX, targetY)
}

// LaunchAt 从屏幕底部向 (x, y) 发射一枚
func (s *Show) LaunchAt(x, y float64) *Firework {
	return s.fire(x, x, y)
}

func (s *Show) fire(startX, targetX, targetY float64) *Firework {
	r := s.env.Rand
	hue := r.Float64() * 360
	rocket := NewRocket(startX, s.bounds.Height, targetX, targetY, hue, s.opts.Burst.Speed, s.opts.Burst.Opacity)
	fw := NewFirework(rocket, s.opts.Shape, s.opts.Burst, r, s.env.OnBurst)
	s.fireworks = append(s.fireworks, fw)
	return fw
}
