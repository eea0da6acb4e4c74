package effects

import (
	"fmt"

	"github.com/gonewx/festfx/pkg/config"
)

// styles 持续类特效的外观注册表
var styles = map[config.EffectType]Style{
	config.EffectSnow:    SnowStyle{},
	config.EffectLantern: LanternStyle{},
	config.EffectHeart:   HeartStyle{},
	config.EffectSakura:  SakuraStyle{},
	config.EffectMaple:   MapleStyle{},
	config.EffectSummer:  SummerStyle{},
}

// StyleFor 返回持续类特效的外观，烟花等非持续类特效返回 false
func StyleFor(effectType config.EffectType) (Style, bool) {
	s, ok := styles[effectType]
	return s, ok
}

// IsAmbient 是否为持续类特效
func IsAmbient(effectType config.EffectType) bool {
	_, ok := styles[effectType]
	return ok
}

// NewAmbient 按类型创建持续类特效
func NewAmbient(effectType config.EffectType, params config.EffectParams, env Env) (*Field, error) {
	style, ok := StyleFor(effectType)
	if !ok {
		return nil, fmt.Errorf("effect %q is not an ambient effect", effectType)
	}
	return NewField(effectType, style, ProfileFromParams(params), env), nil
}
