package config

import (
	"encoding/json"
	"math"
	"sort"
)

// 特效参数名
const (
	ParamSpeed         = "speed"
	ParamOpacity       = "opacity"
	ParamWind          = "wind"
	ParamSize          = "size"
	ParamCount         = "count"
	ParamRotate        = "rotate"
	ParamGlow          = "glow"
	ParamParticleCount = "particleCount"
	ParamSparkCount    = "sparkCount"
	ParamExplodeChance = "explodeChance"
	ParamTrailLength   = "trailLength"
	ParamInterval      = "interval"
	ParamShape         = "shape"
	ParamMultiLaunch   = "multiLaunch"
)

// ParamKind 参数值类型
type ParamKind int

const (
	ParamFloat ParamKind = iota
	ParamInt
	ParamBool
)

// ParamSpec 单个参数的闭区间约束和默认值
//
// 布尔参数的 Min/Max 无意义，Default 用 0/1 表示 false/true。
type ParamSpec struct {
	Kind    ParamKind
	Min     float64
	Max     float64
	Default float64
}

func floatParam(min, max, def float64) ParamSpec {
	return ParamSpec{Kind: ParamFloat, Min: min, Max: max, Default: def}
}

func intParam(min, max, def int) ParamSpec {
	return ParamSpec{Kind: ParamInt, Min: float64(min), Max: float64(max), Default: float64(def)}
}

func boolParam(def bool) ParamSpec {
	spec := ParamSpec{Kind: ParamBool, Min: 0, Max: 1}
	if def {
		spec.Default = 1
	}
	return spec
}

// ambientParams 构造飘落类特效的公共参数表
func ambientParams(minCount, maxCount, defCount int, extra map[string]ParamSpec) map[string]ParamSpec {
	specs := map[string]ParamSpec{
		ParamSpeed:   floatParam(0.1, 5, 1),
		ParamOpacity: floatParam(0, 1, 0.85),
		ParamWind:    floatParam(-5, 5, 0),
		ParamSize:    floatParam(0.2, 5, 1),
		ParamCount:   intParam(minCount, maxCount, defCount),
	}
	for name, spec := range extra {
		specs[name] = spec
	}
	return specs
}

// paramSpecs 每种特效允许的参数；不在表中的参数名视为非法
var paramSpecs = map[EffectType]map[string]ParamSpec{
	EffectSnow:    ambientParams(10, 500, 150, map[string]ParamSpec{ParamGlow: boolParam(true)}),
	EffectLantern: ambientParams(1, 60, 18, map[string]ParamSpec{ParamGlow: boolParam(true)}),
	EffectHeart:   ambientParams(5, 200, 40, map[string]ParamSpec{ParamGlow: boolParam(false)}),
	EffectSakura:  ambientParams(5, 300, 60, map[string]ParamSpec{ParamRotate: boolParam(true)}),
	EffectMaple:   ambientParams(5, 200, 40, map[string]ParamSpec{ParamRotate: boolParam(true)}),
	EffectSummer:  ambientParams(5, 100, 24, map[string]ParamSpec{ParamRotate: boolParam(true)}),
	EffectFirework: {
		ParamSpeed:         floatParam(0.1, 5, 1),
		ParamOpacity:       floatParam(0, 1, 1),
		ParamCount:         intParam(1, 20, 5),
		ParamParticleCount: intParam(10, 300, 80),
		ParamSparkCount:    intParam(1, 20, 6),
		ParamExplodeChance: floatParam(0, 1, 0.15),
		ParamTrailLength:   intParam(0, 30, 5),
		ParamInterval:      floatParam(0.2, 10, 1.2),
		ParamShape:         intParam(0, 10, 0),
		ParamMultiLaunch:   boolParam(true),
	},
}

// ParamSpecFor 查询某种特效的参数约束
func ParamSpecFor(effectType EffectType, name string) (ParamSpec, bool) {
	specs, ok := paramSpecs[effectType]
	if !ok {
		return ParamSpec{}, false
	}
	spec, ok := specs[name]
	return spec, ok
}

// ParamNames 返回某种特效允许的参数名（排序后）
func ParamNames(effectType EffectType) []string {
	names := make([]string, 0, len(paramSpecs[effectType]))
	for name := range paramSpecs[effectType] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EffectParams 已校验的特效调参值
//
// 未配置的参数按特效类型取默认值。布尔值以 0/1 存储。
type EffectParams struct {
	effectType EffectType
	values     map[string]float64
}

// NewEffectParams 构造并校验参数
//
// 参数:
//   - effectType: 特效类型
//   - values: 参数名到数值的映射（布尔参数用 0/1）
//
// 返回:
//   - EffectParams: 校验通过的参数
//   - error: 任何未知参数或越界值都会导致失败
func NewEffectParams(effectType EffectType, values map[string]float64) (EffectParams, error) {
	params := EffectParams{effectType: effectType, values: make(map[string]float64, len(values))}
	for name, v := range values {
		if err := checkParam(effectType, "params."+name, name, v); err != nil {
			return EffectParams{}, err
		}
		params.values[name] = v
	}
	return params, nil
}

// DefaultParams 返回全部取默认值的参数
func DefaultParams(effectType EffectType) EffectParams {
	return EffectParams{effectType: effectType}
}

// Float 读取数值参数
func (p EffectParams) Float(name string) float64 {
	if v, ok := p.values[name]; ok {
		return v
	}
	spec, _ := ParamSpecFor(p.effectType, name)
	return spec.Default
}

// Int 读取整数参数
func (p EffectParams) Int(name string) int {
	return int(math.Round(p.Float(name)))
}

// Bool 读取布尔参数
func (p EffectParams) Bool(name string) bool {
	return p.Float(name) != 0
}

// Has 参数是否被显式配置
func (p EffectParams) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Len 显式配置的参数个数
func (p EffectParams) Len() int {
	return len(p.values)
}

func checkParam(effectType EffectType, path, name string, v float64) error {
	spec, ok := ParamSpecFor(effectType, name)
	if !ok {
		return invalid(path, "unknown parameter for effect %q", effectType)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(path, "not a finite number")
	}
	if v < spec.Min || v > spec.Max {
		return invalid(path, "%v out of range [%v, %v]", v, spec.Min, spec.Max)
	}
	if spec.Kind == ParamInt && v != math.Trunc(v) {
		return invalid(path, "%v is not an integer", v)
	}
	if spec.Kind == ParamBool && v != 0 && v != 1 {
		return invalid(path, "%v is not a bool", v)
	}
	return nil
}

// parseParams 解析 JSON 参数对象，数值/布尔类型必须与参数定义一致
func parseParams(effectType EffectType, path string, raw map[string]json.RawMessage) (EffectParams, error) {
	params := EffectParams{effectType: effectType, values: make(map[string]float64, len(raw))}
	for name, msg := range raw {
		fieldPath := path + "." + name
		spec, ok := ParamSpecFor(effectType, name)
		if !ok {
			return EffectParams{}, invalid(fieldPath, "unknown parameter for effect %q", effectType)
		}

		var value interface{}
		if err := json.Unmarshal(msg, &value); err != nil {
			return EffectParams{}, invalid(fieldPath, "malformed value: %v", err)
		}

		switch v := value.(type) {
		case bool:
			if spec.Kind != ParamBool {
				return EffectParams{}, invalid(fieldPath, "expected a number, got bool")
			}
			if v {
				params.values[name] = 1
			} else {
				params.values[name] = 0
			}
		case float64:
			if spec.Kind == ParamBool {
				return EffectParams{}, invalid(fieldPath, "expected a bool, got number")
			}
			if err := checkParam(effectType, fieldPath, name, v); err != nil {
				return EffectParams{}, err
			}
			params.values[name] = v
		default:
			return EffectParams{}, invalid(fieldPath, "expected a number or bool")
		}
	}
	return params, nil
}
