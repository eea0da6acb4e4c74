package animation

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/festfx/pkg/config"
	"github.com/gonewx/festfx/pkg/effects"
	"github.com/gonewx/festfx/pkg/render"
)

// Factory 根据描述符创建特效
type Factory func(d *config.EffectDescriptor, env effects.Env) (effects.Effect, error)

// Runtime 特效运行时：画布、当前特效和唯一的帧循环
//
// 不变式：
//   - 任意时刻最多只有一个待执行的帧回调
//   - Start 总是先 Stop，Stop 同步取消帧回调和该特效安排的所有定时器
//   - 每次 Start/Stop 递增代次，旧代次的回调即使已经排队也不会生效
//
// Runtime 的所有方法都只能在渲染协程上调用。
type Runtime struct {
	loop    *Loop
	host    render.Host
	factory Factory
	rng     *rand.Rand

	// OnBurst 烟花炸开通知，可为 nil
	OnBurst func(x, y float64)

	width, height int

	surface    render.Surface
	effect     effects.Effect
	descriptor *config.EffectDescriptor

	generation uint64
	frameID    FrameID
	scheduled  bool
	running    bool
	hidden     bool
	timers     map[TimerID]struct{}
}

// NewRuntime 创建运行时
//
// 参数:
//   - loop: 帧调度器
//   - host: 画布宿主
//   - factory: 特效工厂
//   - width, height: 初始视口尺寸
func NewRuntime(loop *Loop, host render.Host, factory Factory, width, height int) *Runtime {
	return &Runtime{
		loop:    loop,
		host:    host,
		factory: factory,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		width:   width,
		height:  height,
		timers:  make(map[TimerID]struct{}),
	}
}

// SetRand 替换随机源（测试使用固定种子）
func (r *Runtime) SetRand(rng *rand.Rand) {
	r.rng = rng
}

// Start 播放描述符对应的特效
//
// 会先停止当前特效；画布在第一次启动时按视口尺寸创建。窗口隐藏时只记录状态，
// 等 Resume 后再开始逐帧。
func (r *Runtime) Start(d *config.EffectDescriptor) error {
	r.Stop()

	if r.surface == nil {
		r.surface = r.host.NewSurface(r.width, r.height)
	}

	gen := r.generation
	env := effects.Env{
		Width:   float64(r.width),
		Height:  float64(r.height),
		Rand:    r.rng,
		After:   r.afterFunc(gen),
		OnBurst: r.OnBurst,
	}
	eff, err := r.factory(d, env)
	if err != nil {
		r.disposeSurface()
		return fmt.Errorf("create effect %s: %w", d.EffectType, err)
	}

	r.effect = eff
	r.descriptor = d
	r.running = true
	log.Printf("[Runtime] Started effect %s", d)

	if !r.hidden {
		r.scheduleFrame()
	}
	return nil
}

// Stop 停止当前特效并移除画布，可重复调用
func (r *Runtime) Stop() {
	r.generation++
	r.cancelFrame()
	for id := range r.timers {
		r.loop.CancelTimer(id)
		delete(r.timers, id)
	}
	if r.running {
		log.Printf("[Runtime] Stopped effect %s", r.descriptor.EffectType)
	}
	r.running = false
	r.effect = nil
	r.descriptor = nil
	r.disposeSurface()
}

// Pause 窗口隐藏：取消帧回调但保留特效状态，重复调用无副作用
func (r *Runtime) Pause() {
	r.hidden = true
	r.cancelFrame()
}

// Resume 窗口可见：从当前粒子状态继续，重复调用无副作用
func (r *Runtime) Resume() {
	r.hidden = false
	if r.running && !r.scheduled {
		r.scheduleFrame()
	}
}

// Resize 视口尺寸变化，只更新尺寸字段，粒子不重新定位
func (r *Runtime) Resize(width, height int) {
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	if r.surface != nil {
		r.surface.Resize(width, height)
	}
	if r.effect != nil {
		r.effect.Resize(float64(width), float64(height))
	}
}

// Running 是否有特效在播放（暂停时仍为 true）
func (r *Runtime) Running() bool {
	return r.running
}

// Paused 是否因窗口隐藏而暂停
func (r *Runtime) Paused() bool {
	return r.hidden
}

// Descriptor 当前播放的描述符
func (r *Runtime) Descriptor() *config.EffectDescriptor {
	return r.descriptor
}

// Effect 当前特效
func (r *Runtime) Effect() effects.Effect {
	return r.effect
}

// Surface 当前画布，未运行时为 nil
func (r *Runtime) Surface() render.Surface {
	return r.surface
}

// Size 视口尺寸
func (r *Runtime) Size() (int, int) {
	return r.width, r.height
}

func (r *Runtime) scheduleFrame() {
	gen := r.generation
	r.frameID = r.loop.RequestFrame(func(now time.Time) {
		r.tick(gen)
	})
	r.scheduled = true
}

func (r *Runtime) cancelFrame() {
	if !r.scheduled {
		return
	}
	r.loop.CancelFrame(r.frameID)
	r.scheduled = false
}

// tick 单帧：清屏 → 更新并绘制 → 请求下一帧
func (r *Runtime) tick(gen uint64) {
	r.scheduled = false
	if gen != r.generation || !r.running || r.hidden {
		return
	}
	r.surface.Clear()
	r.effect.Tick(r.surface)
	if r.effect.Done() {
		log.Printf("[Runtime] Effect %s finished", r.descriptor.EffectType)
		r.Stop()
		return
	}
	r.scheduleFrame()
}

// afterFunc 返回绑定到代次 gen 的延迟执行函数
func (r *Runtime) afterFunc(gen uint64) func(d time.Duration, fn func()) {
	return func(d time.Duration, fn func()) {
		if gen != r.generation {
			return
		}
		var id TimerID
		id = r.loop.AfterFunc(d, func() {
			delete(r.timers, id)
			if gen != r.generation || !r.running {
				return
			}
			fn()
		})
		r.timers[id] = struct{}{}
	}
}

func (r *Runtime) disposeSurface() {
	if r.surface == nil {
		return
	}
	r.surface.Dispose()
	r.surface = nil
}
