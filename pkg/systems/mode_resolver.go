package systems

import (
	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/config"
	"github.com/gonewx/dotfield/pkg/types"
)

// fullscreenPresets 始终全屏渲染的预设
var fullscreenPresets = map[types.PresetID]bool{
	types.PresetHero: true,
}

// ModeResolution 摆放模式解析结果
type ModeResolution struct {
	// Mode 名义模式
	Mode types.DisplayMode
	// EffectiveMode 应用移动端折叠规则后实际渲染的模式
	EffectiveMode types.DisplayMode
}

// ResolveMode 根据预设与设备类别解析摆放模式
//
// 全屏集合中的预设总是 fullscreen；其余预设移动端为 bottom、桌面端为 right-side。
// 移动端上 right-side 折叠为 bottom。未知预设按非全屏规则处理。
func ResolveMode(preset types.PresetID, isMobile bool) ModeResolution {
	mode := types.ModeRightSide
	switch {
	case fullscreenPresets[preset]:
		mode = types.ModeFullscreen
	case isMobile:
		mode = types.ModeBottom
	}

	effective := mode
	if isMobile && mode == types.ModeRightSide {
		effective = types.ModeBottom
	}
	return ModeResolution{Mode: mode, EffectiveMode: effective}
}

// CenterPosition 计算场景锚点
//
// right-side 与 bottom 使用各自的锚点比例，其余模式居中
func CenterPosition(width, height float64, mode types.DisplayMode, anchors config.AnchorSection) components.Position {
	a := anchors.Center
	switch mode {
	case types.ModeRightSide:
		a = anchors.RightSide
	case types.ModeBottom:
		a = anchors.Bottom
	}
	return components.Position{X: width * a.X, Y: height * a.Y}
}
