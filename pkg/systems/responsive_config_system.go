package systems

import (
	"math"

	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/config"
	"github.com/gonewx/dotfield/pkg/types"
	"github.com/gonewx/dotfield/pkg/utils"
)

// ResponsiveConfigSystem 响应式配置管理
//
// 根据容器尺寸与设备类别推导点数和场景边长。每次重新计算都会清空初始布局缓存，
// 点数变化（或缓冲区为空）时重新播种粒子。
type ResponsiveConfigSystem struct {
	rules   config.ResponsiveSection
	anchors config.AnchorSection
	buffer  *ParticleBuffer

	current   components.ResponsiveConfig
	hasConfig bool

	debugRect components.Rect
	hasDebug  bool
}

// NewResponsiveConfigSystem 创建响应式配置管理器
func NewResponsiveConfigSystem(cfg *config.FieldConfig, buffer *ParticleBuffer) *ResponsiveConfigSystem {
	return &ResponsiveConfigSystem{
		rules:   cfg.Responsive,
		anchors: cfg.Anchors,
		buffer:  buffer,
	}
}

// Recompute 重新计算响应式配置
//
// 副作用：
//   - 无条件清空初始布局缓存
//   - 点数与上次不同或缓冲区为空时，以模式锚点为中心重新播种
//   - right-side 模式下计算调试矩形
func (s *ResponsiveConfigSystem) Recompute(rect components.Rect, isMobile, isLandscape bool, mode types.DisplayMode) components.ResponsiveConfig {
	width, height := rect.W, rect.H
	isTablet := !isMobile && width < s.rules.TabletMaxWidth
	containerSize := s.containerSize(width, height, isMobile, isLandscape, mode)

	rc := components.ResponsiveConfig{
		DotCount:      s.dotCount(containerSize, isMobile, isTablet),
		ContainerSize: containerSize,
		IsMobile:      isMobile,
		IsTablet:      isTablet,
		Width:         width,
		Height:        height,
		IsLandscape:   isLandscape,
	}

	s.buffer.ClearCache()

	center := CenterPosition(width, height, mode, s.anchors)
	if !s.hasConfig || s.current.DotCount != rc.DotCount || s.buffer.Len() == 0 {
		s.buffer.Seed(rc.DotCount, center)
	}

	s.hasDebug = mode == types.ModeRightSide
	if s.hasDebug {
		side := containerSize
		box := components.Rect{X: center.X - side/2, Y: center.Y - side/2, W: side, H: side}
		s.debugRect = box.Intersect(components.Rect{W: width, H: height})
	} else {
		s.debugRect = components.Rect{}
	}

	s.current = rc
	s.hasConfig = true
	return rc
}

// containerSize 场景正方形边长
func (s *ResponsiveConfigSystem) containerSize(width, height float64, isMobile, isLandscape bool, mode types.DisplayMode) float64 {
	r := s.rules
	switch mode {
	case types.ModeRightSide:
		return math.Min(width*r.RightSideWidthRatio, height*r.RightSideHeightRatio)
	case types.ModeBottom:
		// 移动端横屏时高度是唯一的约束
		if isMobile && isLandscape {
			return height * r.BottomHeightRatio
		}
		return math.Min(width*r.BottomWidthRatio, height*r.BottomHeightRatio)
	default:
		return math.Min(width, height)
	}
}

// dotCount 设备类别基础点数按场景尺寸缩放，不低于 MinDots
func (s *ResponsiveConfigSystem) dotCount(containerSize float64, isMobile, isTablet bool) int {
	r := s.rules
	base := r.DesktopDots
	switch {
	case isMobile:
		base = r.MobileDots
	case isTablet:
		base = r.TabletDots
	}
	scale := utils.Clamp(containerSize/r.ReferenceSize, r.MinScale, 1)
	n := int(math.Round(float64(base) * scale))
	if n < r.MinDots {
		n = r.MinDots
	}
	return n
}

// Current 返回当前配置，尚未计算时返回 false
func (s *ResponsiveConfigSystem) Current() (components.ResponsiveConfig, bool) {
	return s.current, s.hasConfig
}

// DebugRect 返回 right-side 模式下的调试矩形（仅供开发工具使用）
func (s *ResponsiveConfigSystem) DebugRect() (components.Rect, bool) {
	return s.debugRect, s.hasDebug
}
