package effects

import (
	"math/rand"
	"testing"

	"github.com/gonewx/festfx/pkg/config"
	"github.com/gonewx/festfx/pkg/render"
)

func testEnv(w, h float64) Env {
	return Env{Width: w, Height: h, Rand: rand.New(rand.NewSource(42))}
}

// TestNewAmbient_AllTypes 每种持续类特效都能创建并按默认数量生成粒子
func TestNewAmbient_AllTypes(t *testing.T) {
	for _, et := range config.AllEffectTypes {
		if et == config.EffectFirework {
			continue
		}
		t.Run(string(et), func(t *testing.T) {
			params := config.DefaultParams(et)
			field, err := NewAmbient(et, params, testEnv(800, 600))
			if err != nil {
				t.Fatalf("NewAmbient(%s) error: %v", et, err)
			}
			if field.Len() != params.Int(config.ParamCount) {
				t.Errorf("particle count = %d, want %d", field.Len(), params.Int(config.ParamCount))
			}

			rec := render.NewRecorder(800, 600)
			for i := 0; i < 600; i++ {
				field.Tick(rec)
			}
			if rec.DrawCalls() == 0 {
				t.Error("field should draw something within 600 frames")
			}
			if field.Done() {
				t.Error("ambient field must never end")
			}
			if field.Len() != params.Int(config.ParamCount) {
				t.Errorf("particle count changed to %d", field.Len())
			}
		})
	}
}

func TestNewAmbient_RejectsFirework(t *testing.T) {
	if _, err := NewAmbient(config.EffectFirework, config.DefaultParams(config.EffectFirework), testEnv(10, 10)); err == nil {
		t.Fatal("firework is not an ambient effect")
	}
	if IsAmbient(config.EffectFirework) {
		t.Error("IsAmbient(firework) should be false")
	}
}

// TestAmbient_RespawnAtTop 从底部离开的粒子在顶部重生
func TestAmbient_RespawnAtTop(t *testing.T) {
	field := NewField(config.EffectSnow, SnowStyle{}, Profile{Speed: 1, Opacity: 1, Size: 1, Count: 1}, testEnv(200, 100))
	a := field.Particles()[0]
	a.Y = 100 + a.spawnMargin() + 1
	a.VY = 1

	if !a.Update() {
		t.Fatal("ambient particles never die")
	}
	if a.Y >= 0 {
		t.Errorf("respawned particle should start above the screen, y = %v", a.Y)
	}
	if a.ShouldExplode() || a.SecondaryExplosion() != nil {
		t.Error("ambient particles never explode")
	}
}

// TestAmbient_WrapX 左右越界回绕
func TestAmbient_WrapX(t *testing.T) {
	field := NewField(config.EffectSnow, SnowStyle{}, Profile{Speed: 1, Opacity: 1, Size: 1, Count: 1, Wind: 0}, testEnv(200, 100))
	a := field.Particles()[0]
	a.SwingAmp = 0
	a.VX = 0
	a.Y = 10

	a.X = -a.spawnMargin() - 1
	a.Update()
	if a.X <= 200 {
		t.Errorf("left overflow should wrap to the right edge, x = %v", a.X)
	}

	a.X = 200 + a.spawnMargin() + 1
	a.Update()
	if a.X >= 0 {
		t.Errorf("right overflow should wrap to the left edge, x = %v", a.X)
	}
}

func TestAmbient_WindDrift(t *testing.T) {
	field := NewField(config.EffectMaple, MapleStyle{}, Profile{Speed: 1, Opacity: 1, Size: 1, Count: 1, Wind: 2}, testEnv(1000, 1000))
	a := field.Particles()[0]
	a.SwingAmp = 0
	a.VX = 0
	a.X, a.Y = 500, 500
	a.Update()
	if a.X != 502 {
		t.Errorf("x = %v, want 502 after one frame of wind 2", a.X)
	}
}

// TestAmbient_VariantFixed 子类型在重生后保持不变
func TestAmbient_VariantFixed(t *testing.T) {
	field := NewField(config.EffectSummer, SummerStyle{}, Profile{Speed: 1, Opacity: 1, Size: 1, Count: 8}, testEnv(100, 50))
	ps := field.Particles()
	for i, a := range ps {
		if a.Variant != i%summerIconCount {
			t.Errorf("particle %d variant = %d, want round-robin %d", i, a.Variant, i%summerIconCount)
		}
	}
	for i := 0; i < 2000; i++ {
		field.Tick(nil)
	}
	for i, a := range field.Particles() {
		if a.Variant != i%summerIconCount {
			t.Errorf("particle %d variant changed to %d", i, a.Variant)
		}
	}
}

func TestField_ResizeUpdatesBounds(t *testing.T) {
	field := NewField(config.EffectHeart, HeartStyle{}, Profile{Speed: 1, Opacity: 1, Size: 1, Count: 3}, testEnv(100, 100))
	field.Resize(640, 480)
	if field.bounds.Width != 640 || field.bounds.Height != 480 {
		t.Errorf("bounds = %+v", field.bounds)
	}
	if field.Particles()[0].bounds != field.bounds {
		t.Error("particles must share the field bounds")
	}
}

func TestField_ZeroCountEndsImmediately(t *testing.T) {
	field := NewField(config.EffectSnow, SnowStyle{}, Profile{Speed: 1, Count: 0}, testEnv(100, 100))
	if !field.Done() {
		t.Error("a field without particles should be done")
	}
}

func TestWeighted(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	counts := make([]int, 2)
	for i := 0; i < 10000; i++ {
		counts[weighted(r, []float64{0.9, 0.1})]++
	}
	if counts[0] < 8500 || counts[1] < 500 {
		t.Errorf("weighted distribution off: %v", counts)
	}
}

func TestShapePaths(t *testing.T) {
	tests := []struct {
		name string
		path *render.Path
	}{
		{"heart", HeartPath(50, 50, 0, 10)},
		{"star", StarPath(50, 50, 0, 10, 5, 1, 0.5)},
		{"maple", MaplePath(50, 50, 0, 10)},
		{"petal", petalPath(50, 50, 0, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minX, minY, maxX, maxY := tt.path.Bounds()
			if minX < 30 || maxX > 70 || minY < 30 || maxY > 70 {
				t.Errorf("%s bounds out of range: %v %v %v %v", tt.name, minX, minY, maxX, maxY)
			}
			if maxX-minX < 5 || maxY-minY < 5 {
				t.Errorf("%s is degenerate", tt.name)
			}
		})
	}
}
