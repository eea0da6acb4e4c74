package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig 特效配置校验失败
//
// 所有 ValidationError 都可以用 errors.Is(err, ErrInvalidConfig) 识别。
var ErrInvalidConfig = errors.New("invalid effect config")

// ValidationError 描述一条具体的校验失败
//
// Path 是出错字段的路径，如 "effects[2].params.speed"。
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Unwrap 让 errors.Is(err, ErrInvalidConfig) 成立
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

func invalid(path, format string, args ...interface{}) error {
	return &ValidationError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
