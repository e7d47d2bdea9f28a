// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// PresetID 标识一个页面视觉场景（预设）
// 每个预设对应一套运动策略和初始布局
type PresetID string

const (
	// PresetHero 首屏场景（全屏）
	PresetHero PresetID = "hero"
	// PresetSpeed 速度场景
	PresetSpeed PresetID = "speed"
	// PresetFees 费用场景
	PresetFees PresetID = "fees"
	// PresetMEV MEV 场景
	PresetMEV PresetID = "mev"
	// PresetVault 金库场景
	PresetVault PresetID = "vault"
	// PresetLinks 链接场景
	PresetLinks PresetID = "links"
)

// AllPresets 返回所有已知预设，顺序即查看器中的切换顺序
func AllPresets() []PresetID {
	return []PresetID{PresetHero, PresetSpeed, PresetFees, PresetMEV, PresetVault, PresetLinks}
}

// IsKnown 判断是否为已知预设
func (p PresetID) IsKnown() bool {
	for _, known := range AllPresets() {
		if p == known {
			return true
		}
	}
	return false
}

// String 返回预设的字符串表示
func (p PresetID) String() string {
	return string(p)
}
