package systems

import (
	"time"

	"github.com/gonewx/dotfield/pkg/components"
)

// FrameCallback 帧回调，参数为当前单调时间
type FrameCallback func(now time.Duration)

// FrameHandle 帧请求句柄，0 表示无效句柄
type FrameHandle uint64

// FrameScheduler 逐帧调度原语
type FrameScheduler interface {
	RequestFrame(cb FrameCallback) FrameHandle
	CancelFrame(h FrameHandle)
}

// FrameQueue 协作式帧调度器
//
// 宿主（ebiten Update 或无头渲染循环）每帧调用一次 Tick。
// Tick 只执行本次调用开始前已登记的回调；回调内重新登记的请求在下一次 Tick 执行。
type FrameQueue struct {
	next    FrameHandle
	pending []frameRequest
}

type frameRequest struct {
	handle FrameHandle
	cb     FrameCallback
}

// NewFrameQueue 创建空的帧队列
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame 登记一个下一帧执行的回调
func (q *FrameQueue) RequestFrame(cb FrameCallback) FrameHandle {
	q.next++
	q.pending = append(q.pending, frameRequest{handle: q.next, cb: cb})
	return q.next
}

// CancelFrame 取消尚未执行的请求；句柄已执行或不存在时忽略
func (q *FrameQueue) CancelFrame(h FrameHandle) {
	for i, req := range q.pending {
		if req.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pending 返回待执行的请求数
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Tick 执行一帧，返回执行的回调数
func (q *FrameQueue) Tick(now time.Duration) int {
	batch := q.pending
	q.pending = nil
	for _, req := range batch {
		req.cb(now)
	}
	return len(batch)
}

// Clock 单调时钟
type Clock interface {
	Now() time.Duration
}

// MonotonicClock 以创建时刻为零点的单调时钟
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock 创建单调时钟
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// Now 返回自创建以来经过的时间（time.Since 使用单调读数）
func (c *MonotonicClock) Now() time.Duration {
	return time.Since(c.start)
}

// Canvas 宿主提供的画布元素
type Canvas interface {
	// ContainerRect 返回容器矩形；画布尚未挂载时返回 false
	ContainerRect() (components.Rect, bool)
	// Resize 把绘图表面调整为设备像素尺寸
	Resize(width, height int)
	// Surface 返回当前绘图表面
	Surface() Surface
}

// ResizeSubscriber 窗口尺寸变化通知
type ResizeSubscriber interface {
	Subscribe(fn func()) (unsubscribe func())
}

// ElementSizeObserver 观察画布元素自身的尺寸
//
// 与窗口尺寸无关：侧栏展开等布局变化也会触发。仅在尺寸真正变化时回调。
type ElementSizeObserver struct {
	width, height float64
	listener      func(width, height float64)
}

// Observe 设置回调，替换已有的回调
func (o *ElementSizeObserver) Observe(fn func(width, height float64)) {
	o.listener = fn
}

// Disconnect 移除回调
func (o *ElementSizeObserver) Disconnect() {
	o.listener = nil
}

// Seed 记录已知的元素尺寸而不回调；之后上报相同尺寸不会触发回调
func (o *ElementSizeObserver) Seed(width, height float64) {
	o.width, o.height = width, height
}

// Report 宿主每帧上报元素尺寸；与上次不同时通知回调
func (o *ElementSizeObserver) Report(width, height float64) {
	if width == o.width && height == o.height {
		return
	}
	o.width, o.height = width, height
	if o.listener != nil {
		o.listener(width, height)
	}
}

// WindowResizeNotifier 宿主窗口尺寸变化的广播器，实现 ResizeSubscriber
type WindowResizeNotifier struct {
	next      int
	listeners map[int]func()
	lastW     int
	lastH     int
}

// NewWindowResizeNotifier 创建广播器
func NewWindowResizeNotifier() *WindowResizeNotifier {
	return &WindowResizeNotifier{listeners: make(map[int]func())}
}

// Subscribe 注册监听器，返回取消函数
func (n *WindowResizeNotifier) Subscribe(fn func()) func() {
	n.next++
	id := n.next
	n.listeners[id] = fn
	return func() { delete(n.listeners, id) }
}

// Listeners 返回当前监听器数量
func (n *WindowResizeNotifier) Listeners() int {
	return len(n.listeners)
}

// Report 宿主上报窗口尺寸；变化时通知所有监听器
func (n *WindowResizeNotifier) Report(width, height int) {
	if width == n.lastW && height == n.lastH {
		return
	}
	first := n.lastW == 0 && n.lastH == 0
	n.lastW, n.lastH = width, height
	if first {
		return
	}
	for _, fn := range n.listeners {
		fn()
	}
}
