package particle

import "github.com/gonewx/festfx/pkg/render"

// Collection 一组粒子的逐帧更新器
//
// Step 分两阶段执行：
//  1. 更新所有粒子，丢弃死亡粒子，绘制存活粒子
//  2. 对本帧更新过的存活粒子检查 ShouldExplode，子粒子追加到集合末尾，
//     从下一帧开始参与更新
//
// 死亡粒子不会被绘制，也不会再触发爆炸。
type Collection struct {
	particles []Particle
	spare     []Particle
}

// NewCollection 创建粒子集合
func NewCollection(initial ...Particle) *Collection {
	c := &Collection{}
	c.Add(initial...)
	return c
}

// Add 追加粒子
func (c *Collection) Add(ps ...Particle) {
	c.particles = append(c.particles, ps...)
}

// Len 当前粒子数量
func (c *Collection) Len() int {
	return len(c.particles)
}

// Empty 集合是否为空
func (c *Collection) Empty() bool {
	return len(c.particles) == 0
}

// Clear 移除全部粒子
func (c *Collection) Clear() {
	clear(c.particles)
	c.particles = c.particles[:0]
}

// Particles 返回当前粒子（只读视图）
func (c *Collection) Particles() []Particle {
	return c.particles
}

// Step 推进一帧并绘制，canvas 为 nil 时只更新不绘制
//
// 返回:
//   - int: 本帧新产生的子粒子数量
func (c *Collection) Step(canvas render.Canvas) int {
	alive := c.spare[:0]
	for _, p := range c.particles {
		if !p.Update() {
			continue
		}
		alive = append(alive, p)
		if canvas != nil {
			p.Draw(canvas)
		}
	}

	spawned := 0
	updated := len(alive)
	for i := 0; i < updated; i++ {
		p := alive[i]
		if !p.ShouldExplode() {
			continue
		}
		children := p.SecondaryExplosion()
		spawned += len(children)
		alive = append(alive, children...)
	}

	// 交换缓冲区，旧切片清空引用后留作下一帧复用
	clear(c.particles)
	c.spare = c.particles[:0]
	c.particles = alive
	return spawned
}
