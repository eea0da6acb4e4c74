package audio

import (
	"bytes"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// minBurstGap 两次爆炸音效的最小间隔，同一帧多个烟花炸开只响一次
const minBurstGap = 80 * time.Millisecond

// Player 播放爆炸音效
type Player interface {
	PlayBurst()
}

// throttle 限制播放频率
type throttle struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func (t *throttle) allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < minBurstGap {
		return false
	}
	t.last = now
	return true
}

// EbitenPlayer 通过 ebiten 音频上下文播放（桌面浮层）
//
// 爆炸音效只合成一次，每次播放创建新的 Player 共享同一份 PCM。
type EbitenPlayer struct {
	context  *ebitenaudio.Context
	pcm      []byte
	throttle throttle
}

// NewEbitenPlayer 创建播放器
//
// 参数:
//   - ctx: ebiten 音频上下文，采样率必须为 SampleRate
func NewEbitenPlayer(ctx *ebitenaudio.Context) (*EbitenPlayer, error) {
	if ctx.SampleRate() != int(SampleRate) {
		return nil, fmt.Errorf("audio context sample rate %d, want %d", ctx.SampleRate(), SampleRate)
	}
	return &EbitenPlayer{
		context:  ctx,
		pcm:      PCM16(NewBurst(rand.New(rand.NewSource(time.Now().UnixNano())))),
		throttle: throttle{now: time.Now},
	}, nil
}

func (p *EbitenPlayer) PlayBurst() {
	if !p.throttle.allow() {
		return
	}
	player, err := p.context.NewPlayer(bytes.NewReader(p.pcm))
	if err != nil {
		log.Printf("[Audio] Warning: Failed to create player: %v", err)
		return
	}
	player.Play()
}

// BeepPlayer 通过 beep speaker 播放（终端预览）
type BeepPlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rng         *rand.Rand
	throttle    throttle
	initialized bool
}

func NewBeepPlayer() *BeepPlayer {
	return &BeepPlayer{
		mixer:    &beep.Mixer{},
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		throttle: throttle{now: time.Now},
	}
}

// Initialize 打开声卡，失败时播放器保持静音
func (p *BeepPlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

func (p *BeepPlayer) PlayBurst() {
	if !p.throttle.allow() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	burst := NewBurst(p.rng)
	speaker.Lock()
	p.mixer.Add(burst)
	speaker.Unlock()
}

// Cleanup 清空混音器
func (p *BeepPlayer) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
