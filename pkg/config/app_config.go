package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig 宿主应用配置
//
// 描述节日特效浮层的运行参数：远程特效配置地址、定时检查间隔、
// gdata 存储名以及浮层窗口、开关按钮的布局。
//
// 配置文件位置: data/festfx.yaml（内嵌默认值，可用 --config 覆盖）
type AppConfig struct {
	// ConfigURL 远程特效配置地址，支持 http(s)://、ws(s)://、file://
	ConfigURL string `yaml:"configURL"`

	// CheckIntervalSeconds 定时重新检查特效的间隔（秒）
	CheckIntervalSeconds int `yaml:"checkIntervalSeconds"`

	// FetchTimeoutSeconds 单次拉取配置的超时（秒）
	FetchTimeoutSeconds int `yaml:"fetchTimeoutSeconds"`

	// StorageAppName gdata 存储使用的应用名（决定缓存目录）
	StorageAppName string `yaml:"storageAppName"`

	// Window 浮层窗口设置
	Window WindowConfig `yaml:"window"`

	// Toggle 特效开关按钮布局
	Toggle ToggleConfig `yaml:"toggle"`

	// Sound 是否在烟花爆炸时播放音效
	Sound bool `yaml:"sound"`

	// Verbose 启用详细日志输出
	Verbose bool `yaml:"verbose"`
}

// WindowConfig 浮层窗口设置
//
// Width/Height 为 0 时使用当前显示器尺寸（全屏浮层）。
type WindowConfig struct {
	Width       int  `yaml:"width"`
	Height      int  `yaml:"height"`
	Floating    bool `yaml:"floating"`
	Transparent bool `yaml:"transparent"`
	Decorated   bool `yaml:"decorated"`
}

// ToggleConfig 开关按钮的位置和尺寸（像素）
type ToggleConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

const (
	// DefaultCheckInterval 默认重新检查间隔
	DefaultCheckInterval = 60 * time.Second

	// MinCheckIntervalSeconds 最小检查间隔，避免频繁请求配置服务
	MinCheckIntervalSeconds = 5
)

// DefaultAppConfig 返回默认应用配置
func DefaultAppConfig() AppConfig {
	return AppConfig{
		ConfigURL:            "",
		CheckIntervalSeconds: int(DefaultCheckInterval / time.Second),
		FetchTimeoutSeconds:  10,
		StorageAppName:       "festfx",
		Window: WindowConfig{
			Floating:    true,
			Transparent: true,
			Decorated:   false,
		},
		Toggle: ToggleConfig{
			X:      16,
			Y:      16,
			Width:  150,
			Height: 28,
		},
	}
}

// LoadAppConfig 从文件加载应用配置
//
// 文件中的字段覆盖默认值，未出现的字段保持默认。
//
// 参数:
//   - path: 配置文件路径
//
// 返回:
//   - AppConfig: 合并后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("failed to read app config: %w", err)
	}
	return ParseAppConfig(data)
}

// ParseAppConfig 解析 YAML 格式的应用配置（内嵌默认配置也走这里）
func ParseAppConfig(data []byte) (AppConfig, error) {
	cfg := DefaultAppConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("failed to parse app config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, fmt.Errorf("invalid app config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
func (c *AppConfig) Validate() error {
	if c.CheckIntervalSeconds < MinCheckIntervalSeconds {
		return fmt.Errorf("checkIntervalSeconds must be >= %d, got %d", MinCheckIntervalSeconds, c.CheckIntervalSeconds)
	}
	if c.FetchTimeoutSeconds < 1 {
		return fmt.Errorf("fetchTimeoutSeconds must be >= 1, got %d", c.FetchTimeoutSeconds)
	}
	if c.StorageAppName == "" {
		return fmt.Errorf("storageAppName must not be empty")
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("window size must not be negative: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Toggle.Width <= 0 || c.Toggle.Height <= 0 {
		return fmt.Errorf("toggle size must be positive: %.0fx%.0f", c.Toggle.Width, c.Toggle.Height)
	}
	return nil
}

// CheckInterval 返回检查间隔
func (c *AppConfig) CheckInterval() time.Duration {
	return time.Duration(c.CheckIntervalSeconds) * time.Second
}

// FetchTimeout 返回拉取超时
func (c *AppConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}
