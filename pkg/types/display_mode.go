package types

// DisplayMode 粒子场的摆放模式
type DisplayMode string

const (
	// ModeFullscreen 铺满整个画布，锚点居中
	ModeFullscreen DisplayMode = "fullscreen"
	// ModeRightSide 桌面端右侧摆放
	ModeRightSide DisplayMode = "right-side"
	// ModeBottom 移动端底部摆放
	ModeBottom DisplayMode = "bottom"
)

// String 返回模式的字符串表示
func (m DisplayMode) String() string {
	return string(m)
}
