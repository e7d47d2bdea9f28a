package systems

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/dotfield/pkg/utils"
)

// EbitenSurface 把 Surface 调用翻译为对 ebiten 图像的矢量绘制
type EbitenSurface struct {
	image      *ebiten.Image
	background color.RGBA
	fill       color.RGBA
	alpha      float64

	// colors 解析过的颜色缓存，粒子颜色来自有限的调色板
	colors map[string]color.RGBA
}

// NewEbitenSurface 创建绘图表面；background 为空时清屏为透明
func NewEbitenSurface(image *ebiten.Image, background string) *EbitenSurface {
	s := &EbitenSurface{
		image:  image,
		alpha:  1,
		colors: make(map[string]color.RGBA),
	}
	if background != "" {
		s.background = s.parse(background)
	}
	return s
}

// Image 返回底层图像
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.image
}

// SetImage 替换底层图像（画布尺寸变化后由宿主调用）
func (s *EbitenSurface) SetImage(image *ebiten.Image) {
	s.image = image
}

// ClearRect 用背景色填充矩形；整幅清屏时直接 Fill
func (s *EbitenSurface) ClearRect(x, y, width, height float64) {
	if s.image == nil {
		return
	}
	b := s.image.Bounds()
	if x <= 0 && y <= 0 && width >= float64(b.Dx()) && height >= float64(b.Dy()) {
		s.image.Fill(s.background)
		return
	}
	vector.DrawFilledRect(s.image, float32(x), float32(y), float32(width), float32(height), s.background, false)
}

// SetFillStyle 设置填充色
func (s *EbitenSurface) SetFillStyle(c string) {
	s.fill = s.parse(c)
}

// SetGlobalAlpha 设置全局透明度
func (s *EbitenSurface) SetGlobalAlpha(alpha float64) {
	s.alpha = utils.Clamp01(alpha)
}

// FillCircle 绘制实心圆
func (s *EbitenSurface) FillCircle(x, y, radius float64) {
	if s.image == nil || radius <= 0 {
		return
	}
	vector.DrawFilledCircle(s.image, float32(x), float32(y), float32(radius), utils.ScaleAlpha(s.fill, s.alpha), true)
}

func (s *EbitenSurface) parse(hex string) color.RGBA {
	if c, ok := s.colors[hex]; ok {
		return c
	}
	c, err := utils.ParseHexColor(hex)
	if err != nil {
		log.Printf("[Renderer] invalid color %q: %v", hex, err)
		c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	s.colors[hex] = c
	return c
}
