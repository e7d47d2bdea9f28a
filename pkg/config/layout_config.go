// Package config 提供粒子场与查看器的配置
//
// 可调参数通过 YAML 文件加载（见 field_config.go），
// 查看器页面布局使用本文件中的常量。
package config

// Viewer Window Configuration (查看器窗口配置)
const (
	// ViewerWindowWidth 查看器默认窗口宽度
	ViewerWindowWidth = 1200

	// ViewerWindowHeight 查看器默认窗口高度
	ViewerWindowHeight = 800
)

// Virtual Page Layout (虚拟页面布局)
// 画布元素位于一个可滚动的虚拟页面中，用于模拟页面滚动导致的可见性变化
const (
	// PageSections 虚拟页面的区块数，每个区块高度等于窗口高度
	// 画布固定在第一个区块，滚动到后续区块时画布逐渐离开视口
	PageSections = 3

	// ScrollStep 每次滚轮/方向键滚动的像素数
	ScrollStep = 60.0

	// SidePanelWidth 侧边面板宽度，打开面板会让画布元素变窄（不改变窗口尺寸）
	SidePanelWidth = 280

	// DefaultFieldConfigPath 默认配置文件（嵌入资源路径）
	DefaultFieldConfigPath = "data/field.yaml"
)
