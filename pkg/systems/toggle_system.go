package systems

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/festfx/pkg/components"
	"github.com/gonewx/festfx/pkg/game"
	"github.com/gonewx/festfx/pkg/render"
	"github.com/gonewx/festfx/pkg/utils"
)

const (
	// toggleFadeSeconds 按钮显示/隐藏的过渡时长
	toggleFadeSeconds = 0.25
	// toggleTextHeight 调试字体的行高
	toggleTextHeight = 16.0
	// togglePulseSeconds 悬停高亮一次呼吸（亮→暗）的时长
	togglePulseSeconds = 0.8
)

// ToggleSystem 特效开关按钮的交互和绘制
//
// 职责：
//   - 每帧从 source 同步 {可见, 开/关, 文字}
//   - 检测鼠标悬停和释放（释放瞬间触发 OnClick）
//   - 在浮层左上角绘制胶囊形按钮
type ToggleSystem struct {
	toggle *components.ToggleComponent
	source func() game.ToggleState
}

// NewToggleSystem 创建开关系统
//
// 参数:
//   - toggle: 按钮组件
//   - source: 当前开关状态（通常是 Controller.ToggleState）
func NewToggleSystem(toggle *components.ToggleComponent, source func() game.ToggleState) *ToggleSystem {
	return &ToggleSystem{toggle: toggle, source: source}
}

// Update 读取鼠标输入并更新按钮
func (s *ToggleSystem) Update(deltaTime float64) {
	mouseX, mouseY := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	released := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	s.Step(deltaTime, float64(mouseX), float64(mouseY), pressed, released)
}

// Step 与输入设备无关的更新逻辑
func (s *ToggleSystem) Step(deltaTime, mouseX, mouseY float64, pressed, released bool) {
	t := s.toggle
	state := s.source()
	t.Visible, t.On, t.Label = state.Visible, state.On, state.Label

	target := 0.0
	if t.Visible {
		target = 1
	}
	t.Fade = utils.Approach(t.Fade, target, deltaTime/toggleFadeSeconds)

	// 隐藏或淡出中不响应点击
	if !t.Visible {
		t.State = components.UINormal
		return
	}

	if !t.Contains(mouseX, mouseY) {
		t.State = components.UINormal
		t.Pulse = 0
		return
	}
	t.Pulse = math.Mod(t.Pulse+deltaTime/togglePulseSeconds, 2)
	switch {
	case pressed:
		t.State = components.UIClicked
	case released:
		if t.OnClick != nil {
			t.OnClick()
		}
		t.State = components.UIHovered
	default:
		t.State = components.UIHovered
	}
}

// Hovered 鼠标是否在按钮上（宿主据此切换光标）
func (s *ToggleSystem) Hovered() bool {
	return s.toggle.Visible && s.toggle.State != components.UINormal
}

// Draw 绘制按钮
func (s *ToggleSystem) Draw(c render.Canvas) {
	t := s.toggle
	if t.Fade <= 0 {
		return
	}
	alpha := utils.EaseOutCubic(t.Fade)

	bg := render.HSL(0, 0, 0.22)
	if t.On {
		bg = render.HSL(145, 0.5, 0.32)
	}
	switch t.State {
	case components.UIHovered:
		bg = render.Lerp(bg, render.HSL(0, 0, 1), hoverHighlight(t.Pulse))
	case components.UIClicked:
		bg = render.Lerp(bg, render.HSL(0, 0, 0), 0.2)
	}
	c.FillPath(pillPath(t.X, t.Y, t.Width, t.Height), render.Fade(bg, 0.85*alpha))

	r := t.Height / 2
	dot := render.HSL(0, 0, 0.6)
	if t.On {
		dot = render.HSL(130, 0.9, 0.6)
	}
	c.FillCircle(t.X+r, t.Y+r, r*0.4, render.Fade(dot, alpha))
	c.DrawText(t.Label, t.X+r*2, t.Y+(t.Height-toggleTextHeight)/2, render.Fade(render.HSL(0, 0, 1), alpha))
}

// hoverHighlight 悬停高亮强度，随呼吸相位在 0.08 ~ 0.18 之间往复
func hoverHighlight(pulse float64) float64 {
	phase := pulse
	if phase > 1 {
		phase = 2 - phase
	}
	return utils.Lerp(0.08, 0.18, utils.EaseInOutSine(phase))
}

// pillPath 两端为半圆的圆角矩形
func pillPath(x, y, w, h float64) *render.Path {
	r := h / 2
	p := &render.Path{}
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.Arc(x+w-r, y+r, r, -math.Pi/2, math.Pi/2)
	p.LineTo(x+r, y+h)
	p.Arc(x+r, y+r, r, math.Pi/2, 3*math.Pi/2)
	p.Close()
	return p
}
