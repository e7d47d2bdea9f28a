//go:build !mobile

// stub.go - 非移动端构建时的占位文件
//
// 绑定入口与数据嵌入只在 -tags mobile 时编译（见 mobile.go / embed.go），
// 普通构建下本包只导出空的 Dummy。
package mobile

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
