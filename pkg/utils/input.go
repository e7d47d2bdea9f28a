// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// TapSlop 位移不超过该像素数的按下-释放视为点击而非拖拽
const TapSlop = 8

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 刚按下（本帧）
	DragStateStarted
	// DragStateDragging 按住移动
	DragStateDragging
	// DragStateEnded 刚释放（本帧）
	DragStateEnded
)

// DragInfo 拖拽信息（屏幕坐标）
type DragInfo struct {
	State              DragState
	StartX, StartY     int
	CurrentX, CurrentY int
	// LastX, LastY 上一帧位置，用于计算逐帧位移
	LastX, LastY int
	// TouchID 当前跟踪的触摸 ID（-1 表示鼠标）
	TouchID ebiten.TouchID
}

// PointerTracker 跟踪鼠标/触摸指针，统一输出拖拽位移与点击
type PointerTracker struct {
	info DragInfo
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{info: DragInfo{TouchID: -1}}
}

// Update 读取本帧输入并推进状态（每帧调用一次）
func (pt *PointerTracker) Update() {
	if pt.info.State == DragStateNone || pt.info.State == DragStateEnded {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			x, y := ebiten.TouchPosition(ids[0])
			pt.info.TouchID = ids[0]
			pt.step(true, x, y)
			return
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			pt.info.TouchID = -1
			pt.step(true, x, y)
			return
		}
		pt.step(false, pt.info.CurrentX, pt.info.CurrentY)
		return
	}

	if pt.info.TouchID >= 0 {
		for _, id := range ebiten.AppendTouchIDs(nil) {
			if id == pt.info.TouchID {
				x, y := ebiten.TouchPosition(id)
				pt.step(true, x, y)
				return
			}
		}
		// 触摸已释放，沿用最后位置
		pt.step(false, pt.info.CurrentX, pt.info.CurrentY)
		return
	}
	x, y := ebiten.CursorPosition()
	pt.step(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), x, y)
}

// step 状态转移，与输入源无关
func (pt *PointerTracker) step(pressed bool, x, y int) {
	switch pt.info.State {
	case DragStateNone, DragStateEnded:
		if !pressed {
			pt.info.State = DragStateNone
			return
		}
		pt.info = DragInfo{
			State:    DragStateStarted,
			StartX:   x,
			StartY:   y,
			CurrentX: x,
			CurrentY: y,
			LastX:    x,
			LastY:    y,
			TouchID:  pt.info.TouchID,
		}
	case DragStateStarted, DragStateDragging:
		pt.info.LastX, pt.info.LastY = pt.info.CurrentX, pt.info.CurrentY
		pt.info.CurrentX, pt.info.CurrentY = x, y
		if pressed {
			pt.info.State = DragStateDragging
		} else {
			pt.info.State = DragStateEnded
		}
	}
}

// Reset 重置状态
func (pt *PointerTracker) Reset() {
	pt.info = DragInfo{TouchID: -1}
}

// Info 当前拖拽信息
func (pt *PointerTracker) Info() DragInfo {
	return pt.info
}

// IsDragging 是否按住中
func (pt *PointerTracker) IsDragging() bool {
	return pt.info.State == DragStateDragging
}

// FrameDelta 本帧指针位移
func (pt *PointerTracker) FrameDelta() (dx, dy int) {
	if pt.info.State != DragStateDragging && pt.info.State != DragStateEnded {
		return 0, 0
	}
	return pt.info.CurrentX - pt.info.LastX, pt.info.CurrentY - pt.info.LastY
}

// DragDistance 起点到当前位置的位移
func (pt *PointerTracker) DragDistance() (dx, dy int) {
	return pt.info.CurrentX - pt.info.StartX, pt.info.CurrentY - pt.info.StartY
}

// Tapped 本帧是否完成一次点击（释放且位移在 TapSlop 内），返回释放位置
func (pt *PointerTracker) Tapped() (bool, int, int) {
	if pt.info.State != DragStateEnded {
		return false, 0, 0
	}
	dx, dy := pt.DragDistance()
	if abs(dx) > TapSlop || abs(dy) > TapSlop {
		return false, 0, 0
	}
	return true, pt.info.CurrentX, pt.info.CurrentY
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
