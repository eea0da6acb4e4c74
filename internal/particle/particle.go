// Package particle 提供所有特效共用的粒子抽象和逐帧更新引擎
//
// 每个粒子都满足 Particle 接口：逐帧更新自身状态、绘制到画布、
// 并可在满足条件时产生一次二次爆炸（子粒子）。
package particle

import "github.com/gonewx/festfx/pkg/render"

// Particle 单个粒子
type Particle interface {
	// Update 推进一帧，返回粒子是否仍然存活
	Update() bool

	// Draw 把粒子绘制到画布
	Draw(c render.Canvas)

	// ShouldExplode 是否应在本帧触发二次爆炸
	//
	// 对同一个粒子最多返回一次 true：返回 true 后粒子必须自行记录已爆炸。
	ShouldExplode() bool

	// SecondaryExplosion 生成二次爆炸的子粒子
	//
	// 只在 ShouldExplode 返回 true 后被调用一次。
	SecondaryExplosion() []Particle
}

// Inert 为不会二次爆炸的粒子提供默认实现，嵌入即可
type Inert struct{}

func (Inert) ShouldExplode() bool { return false }

func (Inert) SecondaryExplosion() []Particle { return nil }
