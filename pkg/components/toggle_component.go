package components

// UIState 控件的交互状态
type UIState int

const (
	// UINormal 默认状态
	UINormal UIState = iota
	// UIHovered 鼠标悬停
	UIHovered
	// UIClicked 鼠标按下
	UIClicked
)

// ToggleComponent 特效开关按钮
//
// 纯数据组件：位置、文字、开关状态和淡入淡出进度，
// 由 systems.ToggleSystem 负责交互和绘制。
type ToggleComponent struct {
	// X, Y 左上角位置（像素）
	X, Y float64
	// Width, Height 按钮尺寸（像素）
	Width, Height float64

	// Label 按钮文字，形如 "Snow: ON"
	Label string
	// On 特效是否正在播放
	On bool
	// Visible 当前是否有生效的特效（没有时隐藏按钮）
	Visible bool

	// State 当前交互状态
	State UIState
	// Fade 显示进度，0 = 完全隐藏，1 = 完全显示
	Fade float64
	// Pulse 悬停高亮的呼吸相位，在 [0, 2) 内循环
	Pulse float64

	// OnClick 点击回调
	OnClick func()
}

// Contains 点是否落在按钮范围内
func (t *ToggleComponent) Contains(x, y float64) bool {
	return x >= t.X && x <= t.X+t.Width && y >= t.Y && y <= t.Y+t.Height
}
