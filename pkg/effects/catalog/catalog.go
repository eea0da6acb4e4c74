// Package catalog 按特效类型构造特效实例
package catalog

import (
	"fmt"

	"github.com/gonewx/festfx/pkg/config"
	"github.com/gonewx/festfx/pkg/effects"
	"github.com/gonewx/festfx/pkg/effects/firework"
)

// New 根据特效类型和参数创建特效
//
// 参数:
//   - effectType: 特效类型
//   - params: 已校验的参数（未配置项取该类型默认值）
//   - env: 运行环境
//
// 返回:
//   - effects.Effect: 特效实例
//   - error: 未知特效类型
func New(effectType config.EffectType, params config.EffectParams, env effects.Env) (effects.Effect, error) {
	if effectType == config.EffectFirework {
		return firework.NewShowFromParams(params, env), nil
	}
	if effects.IsAmbient(effectType) {
		return effects.NewAmbient(effectType, params, env)
	}
	return nil, fmt.Errorf("unknown effect type %q", effectType)
}

// FromDescriptor 按描述符创建特效
func FromDescriptor(d *config.EffectDescriptor, env effects.Env) (effects.Effect, error) {
	return New(d.EffectType, d.ResolvedParams(), env)
}
