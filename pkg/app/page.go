package app

import (
	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/config"
)

// 模拟移动端时画布元素的短边（逻辑像素）
const phoneShortSide = 420

// page 可滚动的虚拟页面
//
// 画布元素固定在第一个区块顶部；侧栏展开时画布变窄，窗口尺寸不变。
type page struct {
	screenW, screenH int
	scroll           float64
	sidePanel        bool
	mobile           bool
	landscape        bool
}

// canvasRect 画布元素在页面坐标中的矩形
func (p *page) canvasRect() components.Rect {
	w := float64(p.screenW)
	h := float64(p.screenH)
	x := 0.0
	if p.sidePanel {
		x = config.SidePanelWidth
		w -= config.SidePanelWidth
	}
	if p.mobile {
		if p.landscape {
			h = min(h, phoneShortSide)
		} else {
			w = min(w, phoneShortSide)
		}
	}
	if w < 0 {
		w = 0
	}
	return components.Rect{X: x, Y: 0, W: w, H: h}
}

// viewport 视口在页面坐标中的矩形
func (p *page) viewport() components.Rect {
	return components.Rect{X: 0, Y: p.scroll, W: float64(p.screenW), H: float64(p.screenH)}
}

// maxScroll 最大滚动距离
func (p *page) maxScroll() float64 {
	return float64(p.screenH * (config.PageSections - 1))
}

// scrollBy 滚动并限制在页面范围内
func (p *page) scrollBy(dy float64) {
	p.scroll = min(max(p.scroll+dy, 0), p.maxScroll())
}

// visibleRatio 画布在视口内的可见比例
func (p *page) visibleRatio() float64 {
	canvas := p.canvasRect()
	area := canvas.Area()
	if area == 0 {
		return 0
	}
	return canvas.Intersect(p.viewport()).Area() / area
}
