// Package components 定义粒子场使用的纯数据组件
// 组件只携带数据，不包含业务逻辑
package components

// Particle 粒子场中的单个圆点
//
// 粒子缓冲区按响应式点数一次性分配并复用，粒子从不销毁，
// 只会在点数变化时原地重新播种。
//
// 这是纯数据组件，运动逻辑由当前预设的运动策略负责。
type Particle struct {
	// 画布坐标（像素）
	X float64
	Y float64

	// 半径及其目标值
	Size       float64
	TargetSize float64

	// 透明度 (0-1) 及其目标值
	Opacity       float64
	TargetOpacity float64

	// Color 十六进制颜色，如 "#7FD4FF"
	Color string

	// PresetData 由当前运动策略独占的私有状态（速度、目标点等）
	// 其他组件不得读取或修改
	PresetData any
}

// Position 画布坐标点
type Position struct {
	X float64
	Y float64
}

// Rect 浮点矩形（画布坐标）
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Empty 判断矩形是否没有面积
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersect 返回两个矩形的交集，没有交集时返回零矩形
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Area 返回矩形面积
func (r Rect) Area() float64 {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}
