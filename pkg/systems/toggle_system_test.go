package systems

import (
	"math"
	"testing"

	"github.com/gonewx/festfx/pkg/components"
	"github.com/gonewx/festfx/pkg/game"
	"github.com/gonewx/festfx/pkg/render"
)

func newTestToggle(state *game.ToggleState, clicks *int) (*ToggleSystem, *components.ToggleComponent) {
	toggle := &components.ToggleComponent{X: 16, Y: 16, Width: 150, Height: 28}
	toggle.OnClick = func() { *clicks++ }
	return NewToggleSystem(toggle, func() game.ToggleState { return *state }), toggle
}

// TestToggleSystem_SyncsState 测试按钮文字和可见性跟随控制器状态
func TestToggleSystem_SyncsState(t *testing.T) {
	state := game.ToggleState{Visible: true, On: true, Label: "Snow: ON"}
	clicks := 0
	sys, toggle := newTestToggle(&state, &clicks)

	sys.Step(1.0/60, 0, 0, false, false)
	if !toggle.Visible || !toggle.On || toggle.Label != "Snow: ON" {
		t.Fatalf("toggle not synced: %+v", toggle)
	}

	state = game.ToggleState{}
	sys.Step(1.0/60, 0, 0, false, false)
	if toggle.Visible {
		t.Error("toggle should hide when no effect is active")
	}
}

// TestToggleSystem_ClickOnRelease 测试释放鼠标时触发点击
func TestToggleSystem_ClickOnRelease(t *testing.T) {
	state := game.ToggleState{Visible: true, On: true, Label: "Snow: ON"}
	clicks := 0
	sys, toggle := newTestToggle(&state, &clicks)

	sys.Step(1.0/60, 50, 30, true, false)
	if toggle.State != components.UIClicked {
		t.Errorf("State = %v, want UIClicked", toggle.State)
	}
	if clicks != 0 {
		t.Fatal("click fired on press")
	}

	sys.Step(1.0/60, 50, 30, false, true)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if toggle.State != components.UIHovered {
		t.Errorf("State = %v, want UIHovered", toggle.State)
	}
	if !sys.Hovered() {
		t.Error("Hovered() = false")
	}
}

// TestToggleSystem_IgnoresOutsideAndHidden 测试按钮外和隐藏时不响应
func TestToggleSystem_IgnoresOutsideAndHidden(t *testing.T) {
	state := game.ToggleState{Visible: true, Label: "Snow: OFF"}
	clicks := 0
	sys, _ := newTestToggle(&state, &clicks)

	sys.Step(1.0/60, 400, 300, false, true)
	state.Visible = false
	sys.Step(1.0/60, 50, 30, false, true)

	if clicks != 0 {
		t.Errorf("clicks = %d, want 0", clicks)
	}
}

// TestToggleSystem_FadeAndDraw 测试淡入后绘制文字，完全隐藏时不绘制
func TestToggleSystem_FadeAndDraw(t *testing.T) {
	state := game.ToggleState{Visible: true, On: true, Label: "Fireworks: ON"}
	clicks := 0
	sys, toggle := newTestToggle(&state, &clicks)
	rec := render.NewRecorder(800, 600)

	sys.Draw(rec)
	if rec.DrawCalls() != 0 {
		t.Fatal("drew before fading in")
	}

	for i := 0; i < 30; i++ {
		sys.Step(1.0/60, 0, 0, false, false)
	}
	if toggle.Fade != 1 {
		t.Fatalf("Fade = %v, want 1", toggle.Fade)
	}
	sys.Draw(rec)
	texts := rec.Texts()
	if len(texts) != 1 || texts[0] != "Fireworks: ON" {
		t.Errorf("texts = %v", texts)
	}
	if rec.Count("FillPath") != 1 {
		t.Errorf("FillPath = %d, want 1", rec.Count("FillPath"))
	}

	state.Visible = false
	for i := 0; i < 30; i++ {
		sys.Step(1.0/60, 0, 0, false, false)
	}
	rec.Reset()
	sys.Draw(rec)
	if rec.DrawCalls() != 0 {
		t.Error("drew after fading out")
	}
}

// TestHoverHighlight 测试悬停高亮在呼吸相位内往复
func TestHoverHighlight(t *testing.T) {
	tests := []struct {
		pulse float64
		want  float64
	}{
		{0, 0.08},
		{0.5, 0.13},
		{1, 0.18},
		{1.5, 0.13},
	}
	for _, tt := range tests {
		if got := hoverHighlight(tt.pulse); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("hoverHighlight(%v) = %v, want %v", tt.pulse, got, tt.want)
		}
	}
}

// TestToggleSystem_PulseResetsWhenLeaving 测试移出按钮后呼吸相位归零
func TestToggleSystem_PulseResetsWhenLeaving(t *testing.T) {
	state := game.ToggleState{Visible: true, On: true, Label: "Snow: ON"}
	clicks := 0
	sys, toggle := newTestToggle(&state, &clicks)

	sys.Step(0.2, 50, 30, false, false)
	if toggle.Pulse <= 0 {
		t.Fatalf("Pulse = %v, want > 0 while hovered", toggle.Pulse)
	}
	sys.Step(0.2, 400, 300, false, false)
	if toggle.Pulse != 0 {
		t.Errorf("Pulse = %v, want 0", toggle.Pulse)
	}
}
