// Package effects 实现持续飘落类的节日特效（雪花、灯笼、爱心、樱花、枫叶、夏日）
//
// 每种特效生成固定数量的粒子：从屏幕外随机位置出生，按速度/风力/透明度下落，
// 水平方向正弦摆动；左右越界时回绕，从底部离开后在顶部重生，永不结束。
// 烟花特效见子包 firework，按类型构造特效见子包 catalog。
package effects

import (
	"math/rand"
	"time"

	"github.com/gonewx/festfx/pkg/render"
)

// Effect 一个正在播放的特效
type Effect interface {
	// Tick 推进一帧并绘制，画布已由调用方清空
	Tick(c render.Canvas)

	// Resize 视口尺寸变化，已有粒子不重新定位
	Resize(width, height float64)

	// Done 特效是否已自然结束（持续类特效永远返回 false）
	Done() bool
}

// Env 特效运行环境，由动画运行时提供
type Env struct {
	Width  float64
	Height float64

	// Rand 随机源，为 nil 时使用按时间播种的随机源
	Rand *rand.Rand

	// After 延迟执行回调，绑定到运行时的当前代次：
	// 特效停止后，未触发的回调会被取消或静默丢弃
	After func(d time.Duration, fn func())

	// OnBurst 烟花炸开时的通知（例如播放音效），可为 nil
	OnBurst func(x, y float64)
}

// WithDefaults 补齐缺省字段
func (e Env) WithDefaults() Env {
	if e.Rand == nil {
		e.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.After == nil {
		// 没有调度器时立即执行，保证回调始终在调用方所在的协程
		e.After = func(_ time.Duration, fn func()) { fn() }
	}
	if e.Width <= 0 {
		e.Width = 1
	}
	if e.Height <= 0 {
		e.Height = 1
	}
	return e
}

// Bounds 视口尺寸，特效内的所有粒子共享同一个实例
//
// Resize 只做字段写入，粒子在下一次 Update 时读到新值。
type Bounds struct {
	Width  float64
	Height float64
}

// RandRange 返回 [min, max) 内的随机数
func RandRange(r *rand.Rand, min, max float64) float64 {
	return min + r.Float64()*(max-min)
}
