package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSL 由色相(0-360)、饱和度(0-1)、亮度(0-1)构造不透明颜色
func HSL(h, s, l float64) color.NRGBA {
	return HSLA(h, s, l, 1)
}

// HSLA 带透明度的 HSL 颜色
func HSLA(h, s, l, a float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, clamp01(s), clamp01(l)).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alphaByte(a)}
}

// Fade 把颜色的透明度乘以 alpha
func Fade(c color.Color, alpha float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = alphaByte(float64(n.A) / 255 * alpha)
	return n
}

// Lerp 在 RGB 空间插值两种颜色（含透明度）
func Lerp(from, to color.Color, t float64) color.NRGBA {
	t = clamp01(t)
	a := color.NRGBAModel.Convert(from).(color.NRGBA)
	b := color.NRGBAModel.Convert(to).(color.NRGBA)
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(math.Round(alpha))}
}

func alphaByte(a float64) uint8 {
	return uint8(math.Round(clamp01(a) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
