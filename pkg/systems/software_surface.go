package systems

import (
	"image"
	"math"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"
)

// SoftwareSurface 基于纯软件光栅化的 canvas 表面，用于无头渲染与离线出图
type SoftwareSurface struct {
	backend    *softwarebackend.SoftwareBackend
	cv         *canvas.Canvas
	background string
}

// NewSoftwareSurface 创建 width×height 的软件表面
func NewSoftwareSurface(width, height int, background string) *SoftwareSurface {
	backend := softwarebackend.New(width, height)
	return &SoftwareSurface{
		backend:    backend,
		cv:         canvas.New(backend),
		background: background,
	}
}

// Image 返回当前帧图像
func (s *SoftwareSurface) Image() *image.RGBA {
	return s.backend.Image
}

// Size 返回表面尺寸
func (s *SoftwareSurface) Size() (int, int) {
	b := s.backend.Image.Bounds()
	return b.Dx(), b.Dy()
}

// ClearRect 清空矩形；配置了背景色时用背景色填充
func (s *SoftwareSurface) ClearRect(x, y, width, height float64) {
	s.cv.ClearRect(x, y, width, height)
	if s.background == "" {
		return
	}
	s.cv.SetGlobalAlpha(1)
	s.cv.SetFillStyle(s.background)
	s.cv.FillRect(x, y, width, height)
}

// SetFillStyle 设置填充色
func (s *SoftwareSurface) SetFillStyle(color string) {
	s.cv.SetFillStyle(color)
}

// SetGlobalAlpha 设置全局透明度
func (s *SoftwareSurface) SetGlobalAlpha(alpha float64) {
	s.cv.SetGlobalAlpha(alpha)
}

// FillCircle 绘制实心圆
func (s *SoftwareSurface) FillCircle(x, y, radius float64) {
	if radius <= 0 {
		return
	}
	s.cv.BeginPath()
	s.cv.Arc(x, y, radius, 0, 2*math.Pi, false)
	s.cv.Fill()
}
