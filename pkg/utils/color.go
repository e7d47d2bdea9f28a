package utils

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor 解析 "#RRGGBB" / "#RGB" 颜色字符串
//
// 返回不透明的 color.RGBA，解析失败时返回错误
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if len(s) == 4 && s[0] == '#' {
		// go-colorful 只接受 6 位格式，先展开短格式
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// ScaleAlpha 按透明度缩放颜色（ebiten 使用预乘 alpha）
func ScaleAlpha(c color.RGBA, alpha float64) color.RGBA {
	a := Clamp01(alpha)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// HSVHex 将 HSV (hue: 0-360, saturation: 0-1, value: 0-1) 转换为十六进制颜色
func HSVHex(h, s, v float64) string {
	return colorful.Hsv(Wrap(h, 0, 360), Clamp01(s), Clamp01(v)).Clamped().Hex()
}

// BlendHex 在两个十六进制颜色之间按 t 混合（Lab 空间，过渡更均匀）
// 任一颜色解析失败时返回 a
func BlendHex(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendLab(cb, Clamp01(t)).Clamped().Hex()
}
