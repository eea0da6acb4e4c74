// Package audio 合成烟花爆炸音效并通过 ebiten 或 beep 播放
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// SampleRate 所有音效统一使用的采样率
const SampleRate = beep.SampleRate(48000)

const (
	// burstDuration 单次爆炸音效时长
	burstDuration = 600 * time.Millisecond
	// thumpFreq 低频冲击的起始频率
	thumpFreq = 90.0
	// burstVolume 输出增益
	burstVolume = 0.35
)

// burstGenerator 爆炸音效：衰减白噪声叠加下滑的低频冲击
type burstGenerator struct {
	rng      *rand.Rand
	position int
	total    int
	phase    float64
	// lowpass 单极低通状态，让噪声更闷
	lowpass float64
}

// NewBurst 创建一次爆炸音效
//
// 参数:
//   - rng: 噪声随机源
//
// 返回:
//   - beep.Streamer: 有限长度的立体声流
func NewBurst(rng *rand.Rand) beep.Streamer {
	return &burstGenerator{rng: rng, total: SampleRate.N(burstDuration)}
}

func (g *burstGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.position >= g.total {
			return i, i > 0
		}
		t := float64(g.position) / float64(SampleRate)

		noise := g.rng.Float64()*2 - 1
		g.lowpass += 0.18 * (noise - g.lowpass)
		crackle := g.lowpass * math.Exp(-t*7)

		freq := thumpFreq * math.Exp(-t*3)
		g.phase += freq / float64(SampleRate)
		g.phase -= math.Floor(g.phase)
		thump := math.Sin(2*math.Pi*g.phase) * math.Exp(-t*12)

		v := burstVolume * (0.7*crackle + 0.6*thump)
		samples[i][0] = v
		samples[i][1] = v
		g.position++
	}
	return len(samples), true
}

func (g *burstGenerator) Err() error { return nil }

// PCM16 把流渲染为 16 位小端立体声 PCM（ebiten audio 的输入格式）
func PCM16(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				sample := int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)
				out = append(out, byte(sample), byte(sample>>8))
			}
		}
		if !ok {
			return out
		}
	}
}
