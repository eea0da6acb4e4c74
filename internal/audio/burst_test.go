package audio

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func TestBurst_FiniteAndBounded(t *testing.T) {
	s := NewBurst(rand.New(rand.NewSource(1)))
	buf := make([][2]float64, 1024)
	total := 0
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for _, f := range buf[:n] {
			peak = math.Max(peak, math.Abs(f[0]))
			if f[0] != f[1] {
				t.Fatalf("channels differ: %v", f)
			}
		}
		total += n
		if !ok {
			break
		}
	}
	if want := SampleRate.N(burstDuration); total != want {
		t.Errorf("samples = %d, want %d", total, want)
	}
	if peak == 0 || peak > 1 {
		t.Errorf("peak = %v, want (0, 1]", peak)
	}
}

func TestPCM16_Length(t *testing.T) {
	pcm := PCM16(NewBurst(rand.New(rand.NewSource(2))))
	// 2 声道 × 2 字节
	if want := SampleRate.N(burstDuration) * 4; len(pcm) != want {
		t.Errorf("len = %d, want %d", len(pcm), want)
	}
}

func TestThrottle(t *testing.T) {
	now := time.Unix(0, 0)
	th := throttle{now: func() time.Time { return now }}
	if !th.allow() {
		t.Fatal("first burst must play")
	}
	now = now.Add(10 * time.Millisecond)
	if th.allow() {
		t.Error("burst within the gap must be dropped")
	}
	now = now.Add(minBurstGap)
	if !th.allow() {
		t.Error("burst after the gap must play")
	}
}

func TestBeepPlayer_UninitializedIsSilent(t *testing.T) {
	p := NewBeepPlayer()
	p.PlayBurst()
	p.Cleanup()
}
