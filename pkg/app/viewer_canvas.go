package app

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/systems"
)

// viewerCanvas 画布元素：离屏 ebiten 图像 + 页面中的矩形
type viewerCanvas struct {
	page    *page
	surface *systems.EbitenSurface
}

func newViewerCanvas(p *page, background string) *viewerCanvas {
	return &viewerCanvas{
		page:    p,
		surface: systems.NewEbitenSurface(nil, background),
	}
}

// ContainerRect 窗口尺寸尚未确定时返回 false
func (c *viewerCanvas) ContainerRect() (components.Rect, bool) {
	r := c.page.canvasRect()
	if r.Empty() {
		return components.Rect{}, false
	}
	return r, true
}

// Resize 尺寸变化时重建离屏图像
func (c *viewerCanvas) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if img := c.surface.Image(); img != nil {
		b := img.Bounds()
		if b.Dx() == width && b.Dy() == height {
			return
		}
		img.Deallocate()
	}
	c.surface.SetImage(ebiten.NewImage(width, height))
}

func (c *viewerCanvas) Surface() systems.Surface {
	return c.surface
}

// image 返回离屏图像，可能为 nil
func (c *viewerCanvas) image() *ebiten.Image {
	return c.surface.Image()
}
