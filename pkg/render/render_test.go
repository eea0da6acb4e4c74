package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestHSL(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l float64
		want    color.NRGBA
	}{
		{"红色", 0, 1, 0.5, color.NRGBA{255, 0, 0, 255}},
		{"绿色", 120, 1, 0.5, color.NRGBA{0, 255, 0, 255}},
		{"色相回绕", 360 + 240, 1, 0.5, color.NRGBA{0, 0, 255, 255}},
		{"负色相", -120, 1, 0.5, color.NRGBA{0, 0, 255, 255}},
		{"白色", 0, 0, 1, color.NRGBA{255, 255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HSL(tt.h, tt.s, tt.l); got != tt.want {
				t.Errorf("HSL(%v, %v, %v) = %v, want %v", tt.h, tt.s, tt.l, got, tt.want)
			}
		})
	}
}

func TestFadeAndLerp(t *testing.T) {
	c := Fade(color.NRGBA{200, 100, 50, 255}, 0.5)
	if c.A != 128 || c.R != 200 {
		t.Errorf("Fade = %v, want alpha 128 and rgb unchanged", c)
	}

	if got := Fade(color.White, 2); got.A != 255 {
		t.Errorf("Fade alpha should clamp to 255, got %d", got.A)
	}

	mid := Lerp(color.NRGBA{0, 0, 0, 0}, color.NRGBA{255, 255, 255, 255}, 0.5)
	if mid.R < 126 || mid.R > 129 || mid.A < 126 || mid.A > 129 {
		t.Errorf("Lerp midpoint = %v", mid)
	}
}

func TestPathPointsAndBounds(t *testing.T) {
	var p Path
	p.MoveTo(10, 10)
	p.LineTo(30, 10)
	p.QuadTo(40, 20, 30, 30)
	p.Close()

	pts := p.Points()
	if len(pts) != 2+8 {
		t.Fatalf("expected 10 points, got %d", len(pts))
	}
	last := pts[len(pts)-1]
	if last != [2]float64{30, 30} {
		t.Errorf("quad end = %v, want (30,30)", last)
	}

	minX, minY, maxX, maxY := p.Bounds()
	if minX != 10 || minY != 10 || maxY != 30 {
		t.Errorf("bounds = %v %v %v %v", minX, minY, maxX, maxY)
	}
	if maxX <= 30 || maxX > 40 {
		t.Errorf("curve should bulge right of 30, maxX=%v", maxX)
	}
}

func TestPathArc(t *testing.T) {
	var p Path
	p.Arc(0, 0, 10, 0, math.Pi)
	pts := p.Points()
	if len(pts) != 9 {
		t.Fatalf("expected 9 arc samples, got %d", len(pts))
	}
	if math.Abs(pts[0][0]-10) > 1e-9 || math.Abs(pts[8][0]+10) > 1e-9 {
		t.Errorf("arc endpoints = %v %v", pts[0], pts[8])
	}
}

func TestRecorderHost(t *testing.T) {
	host := &RecorderHost{}
	if host.Last() != nil {
		t.Fatal("new host should have no surfaces")
	}

	s := host.NewSurface(100, 50)
	s.FillCircle(1, 1, 1, color.White)
	s.FillCircle(2, 2, 1, color.White)
	s.DrawText("hi", 0, 0, color.White)
	s.Clear()

	rec := host.Last()
	if rec.Count("FillCircle") != 2 || rec.DrawCalls() != 3 || rec.Clears() != 1 {
		t.Errorf("unexpected counts: circles=%d calls=%d clears=%d", rec.Count("FillCircle"), rec.DrawCalls(), rec.Clears())
	}
	if texts := rec.Texts(); len(texts) != 1 || texts[0] != "hi" {
		t.Errorf("texts = %v", texts)
	}

	s.Resize(200, 80)
	if w, h := s.Size(); w != 200 || h != 80 {
		t.Errorf("size after resize = %vx%v", w, h)
	}

	if host.Live() != 1 {
		t.Errorf("Live = %d, want 1", host.Live())
	}
	s.Dispose()
	if host.Live() != 0 {
		t.Errorf("Live after dispose = %d, want 0", host.Live())
	}
}

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 10)
	return screen
}

func TestTerminalCanvas(t *testing.T) {
	screen := newSimScreen(t)
	c := NewTerminalCanvas(screen)

	w, h := c.Size()
	if w != 40*DefaultCellWidth || h != 10*DefaultCellHeight {
		t.Fatalf("Size = %vx%v", w, h)
	}

	c.FillCircle(20, 20, 1, color.White)
	if r, _, _, _ := screen.GetContent(2, 1); r != '.' {
		t.Errorf("small circle glyph = %q, want '.'", r)
	}

	c.FillCircle(100, 40, 10, color.White)
	if r, _, _, _ := screen.GetContent(12, 2); r != 'O' {
		t.Errorf("large circle glyph = %q, want 'O'", r)
	}

	// 几乎透明的颜色不绘制
	c.FillCircle(0, 0, 3, color.NRGBA{255, 255, 255, 4})
	if r, _, _, _ := screen.GetContent(0, 0); r == '*' {
		t.Error("transparent circle should be skipped")
	}

	// 越界坐标静默忽略
	c.FillCircle(-50, 9999, 3, color.White)

	c.DrawText("ON", 8, 16*5, color.White)
	if r, _, _, _ := screen.GetContent(1, 5); r != 'O' {
		t.Errorf("text first rune = %q", r)
	}
	if r, _, _, _ := screen.GetContent(2, 5); r != 'N' {
		t.Errorf("text second rune = %q", r)
	}

	c.StrokeLine(0, 16*8, 8*5, 16*8, 1, color.White)
	for x := 0; x <= 5; x++ {
		if r, _, _, _ := screen.GetContent(x, 8); r != '\'' {
			t.Errorf("line cell %d = %q", x, r)
		}
	}
}
