//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 桌面端强制使用移动端布局的环境变量
const MobileEmulateEnv = "DOTFIELD_MOBILE_EMULATE"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false，除非设置了 DOTFIELD_MOBILE_EMULATE=1
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
