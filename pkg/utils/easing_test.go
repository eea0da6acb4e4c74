package utils

import (
	"math"
	"testing"
)

// TestEaseOutCubic 测试三次方缓出函数
func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.875}, // 1 - (1-0.5)^3
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestEaseInOutSine 测试正弦缓入缓出
func TestEaseInOutSine(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"中点", 0.5, 0.5},
		{"终点", 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseInOutSine(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseInOutSine(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestApproach 测试步进逼近不越过目标
func TestApproach(t *testing.T) {
	tests := []struct {
		name                  string
		current, target, step float64
		expected              float64
	}{
		{"向上", 0, 1, 0.25, 0.25},
		{"向下", 1, 0, 0.25, 0.75},
		{"不越过", 0.9, 1, 0.25, 1},
		{"已到达", 1, 1, 0.25, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Approach(tt.current, tt.target, tt.step); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Approach(%v, %v, %v) = %v, 期望 %v", tt.current, tt.target, tt.step, got, tt.expected)
			}
		})
	}
}

// TestLerp 测试线性插值
func TestLerp(t *testing.T) {
	if got := Lerp(10, 20, 0.5); got != 15 {
		t.Errorf("Lerp(10, 20, 0.5) = %v, 期望 15", got)
	}
}
