package utils

import "math"

// 缓动函数：输入进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（开关按钮淡入）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutSine 正弦缓入缓出
// 特点：首尾平滑（悬停高亮呼吸）
// 公式：f(t) = -(cos(πt) - 1) / 2
func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// Approach 以固定步长把 current 推向 target，不越过目标
func Approach(current, target, step float64) float64 {
	if current < target {
		return math.Min(current+step, target)
	}
	return math.Max(current-step, target)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
