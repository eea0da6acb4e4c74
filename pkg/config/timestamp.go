package config

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts 配置中允许的时间格式，按顺序尝试
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp 解析配置中的时间字符串
//
// 不带时区的格式按本地时区解释（与桌面端用户看到的时钟一致）。
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// FormatTimestamp 按主格式输出时间（用于日志和工具输出）
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayouts[0])
}
