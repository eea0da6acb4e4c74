// Package animation 管理特效画布和逐帧循环
//
// Loop 是运行在渲染协程上的帧/定时器调度器（requestAnimationFrame + setTimeout 的等价物），
// Runtime 负责画布的创建与销毁，并保证任意时刻最多只有一个帧循环。
package animation

import (
	"sort"
	"sync"
	"time"
)

// FrameID 帧回调句柄
type FrameID uint64

// TimerID 定时器句柄
type TimerID uint64

type frameRequest struct {
	id FrameID
	cb func(now time.Time)
}

type timer struct {
	id  TimerID
	due time.Time
	cb  func()
}

// Loop 帧与定时器调度器
//
// 除 Post 外的所有方法都只能在渲染协程（调用 RunFrame 的协程）上调用。
type Loop struct {
	mu     sync.Mutex
	posted []func()

	now    time.Time
	nextID uint64
	frames []frameRequest
	timers []timer
}

// NewLoop 创建调度器，start 为初始时钟
func NewLoop(start time.Time) *Loop {
	return &Loop{now: start}
}

// Now 最近一次 RunFrame 的时间
func (l *Loop) Now() time.Time {
	return l.now
}

func (l *Loop) id() uint64 {
	l.nextID++
	return l.nextID
}

// RequestFrame 请求在下一次 RunFrame 时执行 cb
func (l *Loop) RequestFrame(cb func(now time.Time)) FrameID {
	id := FrameID(l.id())
	l.frames = append(l.frames, frameRequest{id: id, cb: cb})
	return id
}

// CancelFrame 取消尚未执行的帧回调，重复取消无副作用
func (l *Loop) CancelFrame(id FrameID) {
	for i, f := range l.frames {
		if f.id == id {
			l.frames = append(l.frames[:i], l.frames[i+1:]...)
			return
		}
	}
}

// AfterFunc 在 d 之后的第一帧执行 cb
func (l *Loop) AfterFunc(d time.Duration, cb func()) TimerID {
	id := TimerID(l.id())
	l.timers = append(l.timers, timer{id: id, due: l.now.Add(d), cb: cb})
	return id
}

// CancelTimer 取消定时器，重复取消无副作用
func (l *Loop) CancelTimer(id TimerID) {
	for i, t := range l.timers {
		if t.id == id {
			l.timers = append(l.timers[:i], l.timers[i+1:]...)
			return
		}
	}
}

// Post 把 fn 投递到渲染协程，在下一次 RunFrame 开始时执行（协程安全）
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()
}

// PendingFrames 待执行的帧回调数量
func (l *Loop) PendingFrames() int {
	return len(l.frames)
}

// PendingTimers 待触发的定时器数量
func (l *Loop) PendingTimers() int {
	return len(l.timers)
}

// RunFrame 执行一帧：投递任务 → 到期定时器 → 本帧之前请求的帧回调
//
// 帧回调中再次 RequestFrame 的回调留到下一帧执行。
func (l *Loop) RunFrame(now time.Time) {
	if now.After(l.now) {
		l.now = now
	}

	l.mu.Lock()
	posted := l.posted
	l.posted = nil
	l.mu.Unlock()
	for _, fn := range posted {
		fn()
	}

	l.fireTimers()

	frames := l.frames
	l.frames = nil
	for _, f := range frames {
		f.cb(l.now)
	}
}

// fireTimers 按到期时间顺序触发到期定时器
func (l *Loop) fireTimers() {
	var due []timer
	pending := l.timers[:0]
	for _, t := range l.timers {
		if !t.due.After(l.now) {
			due = append(due, t)
		} else {
			pending = append(pending, t)
		}
	}
	l.timers = pending
	sort.SliceStable(due, func(i, j int) bool { return due[i].due.Before(due[j].due) })
	for _, t := range due {
		t.cb()
	}
}
