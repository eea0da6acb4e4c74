package game

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/gonewx/festfx/pkg/config"
	"github.com/gonewx/festfx/pkg/schedule"
)

// EffectRunner 播放特效的运行时（animation.Runtime）
type EffectRunner interface {
	Start(d *config.EffectDescriptor) error
	Stop()
	Running() bool
}

// RuntimeState 进程内唯一的特效运行状态
type RuntimeState struct {
	// Active 当前按日程生效的描述符，nil 表示没有特效
	Active *config.EffectDescriptor
	// LastConfig 最近一次拿到的完整配置
	LastConfig *config.EffectConfig
	// ManuallyDisabled 用户手动关闭，跨日程切换保持
	ManuallyDisabled bool
	// LastCheck 最近一次检查的时间
	LastCheck time.Time
}

// ToggleState 开关控件的显示状态
type ToggleState struct {
	Visible bool
	On      bool
	Label   string
}

// Controller 定期重新评估日程，并按结果启停特效
//
// Check 可以在任意协程调用（并发调用时只有一个生效，其余直接返回）；
// 评估结果通过 Dispatch 交给渲染协程应用，RuntimeState 只在渲染协程上读写。
type Controller struct {
	service *ConfigService
	url     string
	runner  EffectRunner

	// Dispatch 把状态变更投递到渲染协程，默认同步执行
	Dispatch func(fn func())
	// Now 时钟，测试中可替换
	Now func() time.Time

	checking atomic.Bool
	state    RuntimeState
}

// NewController 创建控制器
func NewController(service *ConfigService, url string, runner EffectRunner) *Controller {
	return &Controller{
		service:  service,
		url:      url,
		runner:   runner,
		Dispatch: func(fn func()) { fn() },
		Now:      time.Now,
	}
}

// Check 获取配置并解析当前特效
//
// 返回:
//   - bool: false 表示已有检查在进行，本次调用被忽略
func (c *Controller) Check(ctx context.Context) bool {
	if !c.checking.CompareAndSwap(false, true) {
		return false
	}
	defer c.checking.Store(false)

	cfg := c.service.Fetch(ctx, c.url)
	now := c.Now()
	var active *config.EffectDescriptor
	if cfg != nil && cfg.Enabled {
		active = schedule.ResolveActive(cfg.Effects, now)
	}
	c.Dispatch(func() { c.apply(cfg, active, now) })
	return true
}

// Run 立即检查一次，之后每 interval 检查一次，直到 ctx 取消
func (c *Controller) Run(ctx context.Context, interval time.Duration) {
	c.Check(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Check(ctx)
		}
	}
}

// apply 应用评估结果：特效类型变化时先停再启，手动关闭时不自动启动
func (c *Controller) apply(cfg *config.EffectConfig, active *config.EffectDescriptor, now time.Time) {
	c.state.LastCheck = now
	if cfg != nil {
		c.state.LastConfig = cfg
	}

	if effectTypeOf(c.state.Active) == effectTypeOf(active) {
		c.state.Active = active
		return
	}

	log.Printf("[Controller] Active effect changed: %s -> %s", describe(c.state.Active), describe(active))
	c.runner.Stop()
	c.state.Active = active
	if active == nil {
		return
	}
	if c.state.ManuallyDisabled {
		log.Printf("[Controller] %s is manually disabled, not starting", active.EffectType)
		return
	}
	if err := c.runner.Start(active); err != nil {
		log.Printf("[Controller] Warning: Failed to start %s: %v", active.EffectType, err)
	}
}

// Toggle 用户点击开关：翻转手动关闭标记并启停当前特效，不影响日程
func (c *Controller) Toggle() {
	if c.state.Active == nil {
		return
	}
	c.state.ManuallyDisabled = !c.state.ManuallyDisabled
	if c.state.ManuallyDisabled {
		log.Printf("[Controller] %s disabled by user", c.state.Active.EffectType)
		c.runner.Stop()
		return
	}
	log.Printf("[Controller] %s enabled by user", c.state.Active.EffectType)
	if err := c.runner.Start(c.state.Active); err != nil {
		log.Printf("[Controller] Warning: Failed to start %s: %v", c.state.Active.EffectType, err)
	}
}

// State 当前运行状态（副本）
func (c *Controller) State() RuntimeState {
	return c.state
}

// Toggle 状态由 {isRunning, isManuallyDisabled} 推导
func (c *Controller) ToggleState() ToggleState {
	if c.state.Active == nil {
		return ToggleState{}
	}
	on := c.runner.Running() && !c.state.ManuallyDisabled
	label := c.state.Active.EffectType.DisplayName() + ": OFF"
	if on {
		label = c.state.Active.EffectType.DisplayName() + ": ON"
	}
	return ToggleState{Visible: true, On: on, Label: label}
}

func effectTypeOf(d *config.EffectDescriptor) config.EffectType {
	if d == nil {
		return ""
	}
	return d.EffectType
}

func describe(d *config.EffectDescriptor) string {
	if d == nil {
		return "none"
	}
	return d.String()
}
