package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/dotfield/internal/particle"
	"github.com/gonewx/dotfield/pkg/types"
)

// FieldConfig 粒子场配置
//
// 包含响应式断点与点数、三种摆放模式的锚点比例、渲染参数、
// 可见性阈值、播种参数以及每个预设的调参字符串。
//
// 配置文件位置: data/field.yaml
type FieldConfig struct {
	Responsive ResponsiveSection             `yaml:"responsive"`
	Anchors    AnchorSection                 `yaml:"anchors"`
	Render     RenderSection                 `yaml:"render"`
	Visibility VisibilitySection             `yaml:"visibility"`
	Seed       SeedSection                   `yaml:"seed"`
	Presets    map[string]particle.RawTuning `yaml:"presets"`
}

// ResponsiveSection 响应式点数与尺寸规则
type ResponsiveSection struct {
	// TabletMaxWidth 非移动端且容器宽度小于该值时视为平板
	TabletMaxWidth float64 `yaml:"tabletMaxWidth"`

	// 各设备类别的基础点数
	MobileDots  int `yaml:"mobileDots"`
	TabletDots  int `yaml:"tabletDots"`
	DesktopDots int `yaml:"desktopDots"`
	MinDots     int `yaml:"minDots"`

	// ReferenceSize 基础点数对应的场景边长，更小的场景按比例减少点数
	ReferenceSize float64 `yaml:"referenceSize"`
	// MinScale 点数缩放下限
	MinScale float64 `yaml:"minScale"`

	// 各模式下场景正方形边长相对容器宽高的比例
	RightSideWidthRatio  float64 `yaml:"rightSideWidthRatio"`
	RightSideHeightRatio float64 `yaml:"rightSideHeightRatio"`
	BottomWidthRatio     float64 `yaml:"bottomWidthRatio"`
	BottomHeightRatio    float64 `yaml:"bottomHeightRatio"`
}

// AnchorSection 各模式锚点（相对容器宽高的比例）
type AnchorSection struct {
	RightSide Anchor `yaml:"rightSide"`
	Bottom    Anchor `yaml:"bottom"`
	Center    Anchor `yaml:"center"`
}

// Anchor 锚点比例
type Anchor struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// RenderSection 渲染参数
type RenderSection struct {
	// FadeInMs 首次加载淡入时长（毫秒）
	FadeInMs int `yaml:"fadeInMs"`
	// OpacityEpsilon 透明度低于该值的粒子不绘制
	OpacityEpsilon float64 `yaml:"opacityEpsilon"`
	// SizeQuantum 批次键的尺寸取整粒度
	SizeQuantum float64 `yaml:"sizeQuantum"`
	// Background 画布背景色，为空时画布透明
	Background string `yaml:"background"`
}

// VisibilitySection 可见性门控参数
type VisibilitySection struct {
	Threshold float64 `yaml:"threshold"`
}

// SeedSection 播种参数
type SeedSection struct {
	// Jitter 休眠态粒子围绕中心的抖动正方形边长（像素）
	Jitter float64 `yaml:"jitter"`
	Color  string  `yaml:"color"`
}

// DefaultFieldConfig 返回内置默认配置
//
// 与 data/field.yaml 保持一致，用于测试以及配置文件缺失时的降级
func DefaultFieldConfig() *FieldConfig {
	return &FieldConfig{
		Responsive: ResponsiveSection{
			TabletMaxWidth:       1024,
			MobileDots:           420,
			TabletDots:           700,
			DesktopDots:          1100,
			MinDots:              120,
			ReferenceSize:        720,
			MinScale:             0.55,
			RightSideWidthRatio:  0.5,
			RightSideHeightRatio: 0.9,
			BottomWidthRatio:     0.95,
			BottomHeightRatio:    0.5,
		},
		Anchors: AnchorSection{
			RightSide: Anchor{X: 0.72, Y: 0.5},
			Bottom:    Anchor{X: 0.5, Y: 0.72},
			Center:    Anchor{X: 0.5, Y: 0.5},
		},
		Render: RenderSection{
			FadeInMs:       1200,
			OpacityEpsilon: 0.01,
			SizeQuantum:    0.5,
			Background:     "#05070D",
		},
		Visibility: VisibilitySection{Threshold: 0.1},
		Seed:       SeedSection{Jitter: 100, Color: "#FFFFFF"},
		Presets:    defaultPresetTuning(),
	}
}

func defaultPresetTuning() map[string]particle.RawTuning {
	return map[string]particle.RawTuning{
		"hero": {
			Palette: []string{"#7FD4FF", "#B8E8FF", "#FFFFFF"},
			Blend:   1,
			Size:    "[0.8 2.2]",
			Opacity: "[0.45 0.95]",
			Speed:   "0.0025",
			Pulse:   "FastInOutWeak 0,0.75 0.5,1 1,0.75",
			Spread:  "0.46",
			Easing:  "EaseOutCubic",
		},
		"speed": {
			Palette: []string{"#FFD36E", "#FFB347", "#FFFFFF"},
			Size:    "[0.8 1.8]",
			Opacity: "[0.35 0.9]",
			Speed:   "[1.5 5]",
			Spread:  "0.9",
			Easing:  "EaseOutQuad",
		},
		"fees": {
			Palette: []string{"#8CF5C0", "#4FD89A"},
			Size:    "[1 2]",
			Opacity: "[0.5 0.95]",
			Speed:   "0.08",
			Pulse:   "0,0.85 0.5,1 1,0.85",
			Spread:  "0.8",
			Easing:  "EaseOut",
		},
		"mev": {
			Palette: []string{"#FF6B9A", "#C17BFF", "#FFFFFF"},
			Size:    "[0.7 2]",
			Opacity: "[0.3 0.85]",
			Speed:   "[0.4 1.2]",
			Spread:  "0.85",
		},
		"vault": {
			Palette: []string{"#F5C26B", "#FFE2A8"},
			Size:    "[1 2.2]",
			Opacity: "[0.5 1]",
			Speed:   "0.004",
			Spread:  "0.45",
			Easing:  "EaseInOutCubic",
		},
		"links": {
			Palette: []string{"hsv(232 0.4 1)", "#6FE3FF", "#FFFFFF"},
			Size:    "[0.9 2]",
			Opacity: "[0.4 0.9]",
			Speed:   "[0.006 0.014]",
			Spread:  "0.85",
		},
	}
}

// LoadFieldConfig 加载粒子场配置
//
// 从指定路径加载 YAML 格式的配置文件，未写出的字段使用默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/field.yaml"）
//
// 返回:
//   - *FieldConfig: 加载成功后的配置结构
//   - error: 加载失败时返回错误
func LoadFieldConfig(path string) (*FieldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read field config: %w", err)
	}
	return ParseFieldConfig(data)
}

// ParseFieldConfig 从 YAML 数据解析配置（嵌入资源使用此入口）
func ParseFieldConfig(data []byte) (*FieldConfig, error) {
	cfg := DefaultFieldConfig()
	// 预设调参整体替换，而不是按 key 合并到默认值上
	cfg.Presets = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse field config: %w", err)
	}
	if cfg.Presets == nil {
		cfg.Presets = defaultPresetTuning()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid field config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查配置值是否在合理范围内：
//   - 各类点数为正且不小于 MinDots
//   - 比例类参数位于 (0, 1]
//   - 淡入时长为正，可见性阈值位于 [0, 1]
//   - 预设调参可以被编译，且只包含已知预设
func (c *FieldConfig) Validate() error {
	r := c.Responsive
	if r.MinDots <= 0 {
		return fmt.Errorf("minDots must be positive, got %d", r.MinDots)
	}
	for name, dots := range map[string]int{"mobileDots": r.MobileDots, "tabletDots": r.TabletDots, "desktopDots": r.DesktopDots} {
		if dots < r.MinDots {
			return fmt.Errorf("%s(%d) must be >= minDots(%d)", name, dots, r.MinDots)
		}
	}
	if r.ReferenceSize <= 0 {
		return fmt.Errorf("referenceSize must be positive, got %.1f", r.ReferenceSize)
	}
	ratios := map[string]float64{
		"minScale":             r.MinScale,
		"rightSideWidthRatio":  r.RightSideWidthRatio,
		"rightSideHeightRatio": r.RightSideHeightRatio,
		"bottomWidthRatio":     r.BottomWidthRatio,
		"bottomHeightRatio":    r.BottomHeightRatio,
	}
	for name, v := range ratios {
		if v <= 0 || v > 1 {
			return fmt.Errorf("%s must be in (0, 1], got %.3f", name, v)
		}
	}

	if c.Render.FadeInMs <= 0 {
		return fmt.Errorf("fadeInMs must be positive, got %d", c.Render.FadeInMs)
	}
	if c.Render.SizeQuantum <= 0 {
		return fmt.Errorf("sizeQuantum must be positive, got %.3f", c.Render.SizeQuantum)
	}
	if c.Render.OpacityEpsilon < 0 || c.Render.OpacityEpsilon >= 1 {
		return fmt.Errorf("opacityEpsilon must be in [0, 1), got %.3f", c.Render.OpacityEpsilon)
	}
	if c.Visibility.Threshold < 0 || c.Visibility.Threshold > 1 {
		return fmt.Errorf("visibility threshold must be in [0, 1], got %.3f", c.Visibility.Threshold)
	}
	if c.Seed.Jitter < 0 {
		return fmt.Errorf("seed jitter must be >= 0, got %.1f", c.Seed.Jitter)
	}

	for name, raw := range c.Presets {
		if !types.PresetID(name).IsKnown() {
			return fmt.Errorf("unknown preset %q", name)
		}
		if _, err := particle.CompileTuning(raw); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
	}

	return nil
}

// FadeInDuration 返回淡入时长
func (c *FieldConfig) FadeInDuration() time.Duration {
	return time.Duration(c.Render.FadeInMs) * time.Millisecond
}

// Tuning 编译并返回指定预设的调参
//
// 预设未配置时返回 false
func (c *FieldConfig) Tuning(id types.PresetID) (*particle.Tuning, bool) {
	raw, ok := c.Presets[string(id)]
	if !ok {
		return nil, false
	}
	t, err := particle.CompileTuning(raw)
	if err != nil {
		return nil, false
	}
	return t, true
}
