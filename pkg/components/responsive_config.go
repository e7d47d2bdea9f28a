package components

// ResponsiveConfig 响应式配置快照
//
// 由容器尺寸和设备类别推导，创建后不可修改。
// 容器像素尺寸或设备类别变化时重新计算，任何一次重新计算都会使初始位置缓存失效。
type ResponsiveConfig struct {
	DotCount      int     // 粒子数量
	ContainerSize float64 // 场景所占正方形的边长（像素）
	IsMobile      bool
	IsTablet      bool

	// 以下字段仅用于诊断输出
	Width       float64
	Height      float64
	IsLandscape bool
}

// SameDeviceClass 判断两个配置在缓存键维度（移动端/平板）上是否一致
func (c ResponsiveConfig) SameDeviceClass(o ResponsiveConfig) bool {
	return c.IsMobile == o.IsMobile && c.IsTablet == o.IsTablet
}
