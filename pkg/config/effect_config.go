package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// EffectType 特效类型
type EffectType string

const (
	EffectSnow     EffectType = "snow"
	EffectFirework EffectType = "firework"
	EffectLantern  EffectType = "lantern"
	EffectHeart    EffectType = "heart"
	EffectSakura   EffectType = "sakura"
	EffectMaple    EffectType = "maple"
	EffectSummer   EffectType = "summer"
)

// AllEffectTypes 全部特效类型（预览工具按此顺序切换）
var AllEffectTypes = []EffectType{
	EffectSnow,
	EffectFirework,
	EffectLantern,
	EffectHeart,
	EffectSakura,
	EffectMaple,
	EffectSummer,
}

var effectDisplayNames = map[EffectType]string{
	EffectSnow:     "Snow",
	EffectFirework: "Fireworks",
	EffectLantern:  "Lanterns",
	EffectHeart:    "Hearts",
	EffectSakura:   "Sakura",
	EffectMaple:    "Maple",
	EffectSummer:   "Summer",
}

// Valid 是否为已知特效类型
func (t EffectType) Valid() bool {
	_, ok := effectDisplayNames[t]
	return ok
}

// DisplayName 开关按钮上显示的名称
func (t EffectType) DisplayName() string {
	if name, ok := effectDisplayNames[t]; ok {
		return name
	}
	return string(t)
}

// Cycle 循环规则
type Cycle string

const (
	CycleNone    Cycle = ""
	CycleDaily   Cycle = "daily"
	CycleWeekly  Cycle = "weekly"
	CycleMonthly Cycle = "monthly"
)

// Valid 是否为已知循环规则（空值表示不循环）
func (c Cycle) Valid() bool {
	switch c {
	case CycleNone, CycleDaily, CycleWeekly, CycleMonthly:
		return true
	}
	return false
}

const (
	// DefaultCacheDuration 配置未指定 cacheDurationSeconds 时的缓存时长
	DefaultCacheDuration = 3600 * time.Second

	minCacheDurationSeconds = 1
	maxCacheDurationSeconds = 86400
)

// EffectConfig 远程特效配置
//
// 只有通过 ParseEffectConfig 校验的配置才会进入调度。
type EffectConfig struct {
	Enabled bool
	// CacheDurationSeconds 0 表示未配置
	CacheDurationSeconds float64
	Effects              []EffectDescriptor
}

// CacheDuration 缓存有效期，未配置时取默认 3600 秒
func (c *EffectConfig) CacheDuration() time.Duration {
	if c == nil || c.CacheDurationSeconds <= 0 {
		return DefaultCacheDuration
	}
	return time.Duration(c.CacheDurationSeconds * float64(time.Second))
}

// EffectDescriptor 一条候选特效及其生效时间窗
//
// 列表中的位置即优先级，先匹配者生效。
type EffectDescriptor struct {
	EffectType EffectType
	StartTime  *time.Time
	EndTime    *time.Time
	Cycle      Cycle
	Params     EffectParams
}

// ResolvedParams 返回带特效类型的参数，未配置项取该类型的默认值
func (d EffectDescriptor) ResolvedParams() EffectParams {
	return EffectParams{effectType: d.EffectType, values: d.Params.values}
}

// String 便于日志输出
func (d EffectDescriptor) String() string {
	start, end := "-", "-"
	if d.StartTime != nil {
		start = FormatTimestamp(*d.StartTime)
	}
	if d.EndTime != nil {
		end = FormatTimestamp(*d.EndTime)
	}
	cycle := string(d.Cycle)
	if cycle == "" {
		cycle = "once"
	}
	return fmt.Sprintf("%s[%s ~ %s, %s]", d.EffectType, start, end, cycle)
}

// rawEffectConfig JSON 线上格式
type rawEffectConfig struct {
	Enabled              *bool           `json:"enabled"`
	CacheDurationSeconds *float64        `json:"cacheDurationSeconds"`
	Effects              []rawDescriptor `json:"effects"`
}

type rawDescriptor struct {
	EffectType string                     `json:"effectType"`
	StartTime  *string                    `json:"startTime"`
	EndTime    *string                    `json:"endTime"`
	Cycle      *string                    `json:"cycle"`
	Params     map[string]json.RawMessage `json:"params"`
}

// ParseEffectConfig 解析并校验 JSON 特效配置
//
// 校验失败时返回的错误满足 errors.Is(err, ErrInvalidConfig)。
// 任意一条描述符非法都会使整个配置失效（fail closed）。
//
// 参数:
//   - data: 远程返回的原始 JSON 文本
//
// 返回:
//   - *EffectConfig: 校验通过的配置
//   - error: JSON 格式错误或校验失败
func ParseEffectConfig(data []byte) (*EffectConfig, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, invalid("$", "empty payload")
	}

	var raw rawEffectConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON: %v", ErrInvalidConfig, err)
	}

	if raw.Enabled == nil {
		return nil, invalid("enabled", "required")
	}

	cfg := &EffectConfig{Enabled: *raw.Enabled}

	if raw.CacheDurationSeconds != nil {
		d := *raw.CacheDurationSeconds
		if math.IsNaN(d) || d < minCacheDurationSeconds || d > maxCacheDurationSeconds {
			return nil, invalid("cacheDurationSeconds", "%v out of range [%d, %d]", d, minCacheDurationSeconds, maxCacheDurationSeconds)
		}
		cfg.CacheDurationSeconds = d
	}

	if cfg.Enabled && len(raw.Effects) == 0 {
		return nil, invalid("effects", "must not be empty when enabled")
	}

	cfg.Effects = make([]EffectDescriptor, 0, len(raw.Effects))
	for i, rd := range raw.Effects {
		d, err := parseDescriptor(fmt.Sprintf("effects[%d]", i), rd)
		if err != nil {
			return nil, err
		}
		cfg.Effects = append(cfg.Effects, d)
	}

	return cfg, nil
}

func parseDescriptor(path string, rd rawDescriptor) (EffectDescriptor, error) {
	d := EffectDescriptor{EffectType: EffectType(rd.EffectType)}
	if !d.EffectType.Valid() {
		return EffectDescriptor{}, invalid(path+".effectType", "unknown effect type %q", rd.EffectType)
	}

	if rd.StartTime != nil {
		t, err := ParseTimestamp(*rd.StartTime)
		if err != nil {
			return EffectDescriptor{}, invalid(path+".startTime", "%v", err)
		}
		d.StartTime = &t
	}
	if rd.EndTime != nil {
		t, err := ParseTimestamp(*rd.EndTime)
		if err != nil {
			return EffectDescriptor{}, invalid(path+".endTime", "%v", err)
		}
		d.EndTime = &t
	}
	if d.StartTime != nil && d.EndTime != nil && d.StartTime.After(*d.EndTime) {
		return EffectDescriptor{}, invalid(path, "startTime is after endTime")
	}

	if rd.Cycle != nil {
		d.Cycle = Cycle(*rd.Cycle)
		if d.Cycle == CycleNone || !d.Cycle.Valid() {
			return EffectDescriptor{}, invalid(path+".cycle", "unknown cycle %q", *rd.Cycle)
		}
	}

	params, err := parseParams(d.EffectType, path+".params", rd.Params)
	if err != nil {
		return EffectDescriptor{}, err
	}
	d.Params = params

	return d, nil
}
