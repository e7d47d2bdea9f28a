package systems

// VisibilityGate 可见性门控
//
// 包装宿主的相交观察：可见比例不低于阈值时视为可见。
// 不可见时帧循环仍然续约，但跳过更新与绘制。
type VisibilityGate struct {
	threshold float64
	ratio     float64
	visible   bool
}

// NewVisibilityGate 创建门控；首次相交通知到达前视为可见
func NewVisibilityGate(threshold float64) *VisibilityGate {
	return &VisibilityGate{threshold: threshold, ratio: 1, visible: true}
}

// OnIntersection 宿主上报画布的可见比例
func (g *VisibilityGate) OnIntersection(ratio float64) {
	g.ratio = ratio
	g.visible = ratio >= g.threshold
}

// Visible 当前是否可见
func (g *VisibilityGate) Visible() bool {
	return g.visible
}

// Ratio 最近一次上报的可见比例
func (g *VisibilityGate) Ratio() float64 {
	return g.ratio
}
