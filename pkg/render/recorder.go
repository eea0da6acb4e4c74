package render

import (
	"image/color"
	"sync"
)

// Recorder 记录绘图调用的画布，不依赖 GPU，供测试和无头运行使用
type Recorder struct {
	mu       sync.Mutex
	width    float64
	height   float64
	ops      map[string]int
	texts    []string
	clears   int
	resizes  int
	disposed bool
}

// NewRecorder 创建指定尺寸的记录画布
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: float64(width), height: float64(height), ops: make(map[string]int)}
}

func (r *Recorder) record(op string) {
	r.mu.Lock()
	r.ops[op]++
	r.mu.Unlock()
}

func (r *Recorder) Size() (float64, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	r.clears++
	r.mu.Unlock()
}

func (r *Recorder) FillCircle(x, y, radius float64, clr color.Color) { r.record("FillCircle") }

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	r.record("StrokeLine")
}

func (r *Recorder) FillPath(p *Path, clr color.Color) { r.record("FillPath") }

func (r *Recorder) StrokePath(p *Path, width float64, clr color.Color) { r.record("StrokePath") }

func (r *Recorder) FillRadialGradient(x, y, radius float64, stops ...GradientStop) {
	r.record("FillRadialGradient")
}

func (r *Recorder) FillLinearGradientRect(x, y, w, h float64, top, bottom color.Color) {
	r.record("FillLinearGradientRect")
}

func (r *Recorder) DrawText(s string, x, y float64, clr color.Color) {
	r.mu.Lock()
	r.ops["DrawText"]++
	r.texts = append(r.texts, s)
	r.mu.Unlock()
}

func (r *Recorder) Resize(width, height int) {
	r.mu.Lock()
	r.width, r.height = float64(width), float64(height)
	r.resizes++
	r.mu.Unlock()
}

func (r *Recorder) Dispose() {
	r.mu.Lock()
	r.disposed = true
	r.mu.Unlock()
}

// Count 返回某类绘图调用的次数
func (r *Recorder) Count(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ops[op]
}

// DrawCalls 返回除 Clear 以外的绘图调用总数
func (r *Recorder) DrawCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, n := range r.ops {
		total += n
	}
	return total
}

func (r *Recorder) Clears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}

func (r *Recorder) Resizes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resizes
}

func (r *Recorder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

func (r *Recorder) Disposed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disposed
}

// Reset 清空统计（尺寸保持不变）
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.ops = make(map[string]int)
	r.texts = nil
	r.clears = 0
	r.mu.Unlock()
}

// RecorderHost 创建 Recorder 画布并记录所有创建过的画布
type RecorderHost struct {
	mu      sync.Mutex
	created []*Recorder
}

func (h *RecorderHost) NewSurface(width, height int) Surface {
	rec := NewRecorder(width, height)
	h.mu.Lock()
	h.created = append(h.created, rec)
	h.mu.Unlock()
	return rec
}

// Created 返回创建过的全部画布
func (h *RecorderHost) Created() []*Recorder {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*Recorder(nil), h.created...)
}

// Live 返回尚未销毁的画布数量
func (h *RecorderHost) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, rec := range h.created {
		if !rec.Disposed() {
			n++
		}
	}
	return n
}

// Last 返回最近创建的画布，没有时返回 nil
func (h *RecorderHost) Last() *Recorder {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.created) == 0 {
		return nil
	}
	return h.created[len(h.created)-1]
}
