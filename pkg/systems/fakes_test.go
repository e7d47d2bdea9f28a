package systems

import (
	"errors"
	"time"

	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/config"
	"github.com/gonewx/dotfield/pkg/presets"
	"github.com/gonewx/dotfield/pkg/types"
)

// fakeClock 手动推进的时钟
type fakeClock struct {
	now time.Duration
}

func (c *fakeClock) Now() time.Duration { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now += d }

// surfaceCall 记录一次 Surface 调用
type surfaceCall struct {
	op    string
	color string
	alpha float64
	x, y  float64
	r     float64
}

// recordingSurface 记录所有绘制调用
type recordingSurface struct {
	calls []surfaceCall
}

func (s *recordingSurface) ClearRect(x, y, width, height float64) {
	s.calls = append(s.calls, surfaceCall{op: "clear", x: width, y: height})
}

func (s *recordingSurface) SetFillStyle(color string) {
	s.calls = append(s.calls, surfaceCall{op: "fill", color: color})
}

func (s *recordingSurface) SetGlobalAlpha(alpha float64) {
	s.calls = append(s.calls, surfaceCall{op: "alpha", alpha: alpha})
}

func (s *recordingSurface) FillCircle(x, y, radius float64) {
	s.calls = append(s.calls, surfaceCall{op: "circle", x: x, y: y, r: radius})
}

func (s *recordingSurface) count(op string) int {
	n := 0
	for _, c := range s.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func (s *recordingSurface) reset() {
	s.calls = s.calls[:0]
}

// fakeCanvas 固定尺寸的画布
type fakeCanvas struct {
	rect     components.Rect
	attached bool
	surface  *recordingSurface
	resizes  int
}

func newFakeCanvas(w, h float64) *fakeCanvas {
	return &fakeCanvas{
		rect:     components.Rect{W: w, H: h},
		attached: true,
		surface:  &recordingSurface{},
	}
}

func (c *fakeCanvas) ContainerRect() (components.Rect, bool) {
	return c.rect, c.attached
}

func (c *fakeCanvas) Resize(width, height int) { c.resizes++ }

func (c *fakeCanvas) Surface() Surface { return c.surface }

// spyStrategy 统计调用次数，可注入错误或 panic
type spyStrategy struct {
	calculateCalls int
	initCalls      int
	updateCalls    int
	lastRefs       *components.PresetRefs

	failCalculate bool
	panicUpdate   bool
}

func (s *spyStrategy) CalculatePositions(width, height float64, center components.Position, rc components.ResponsiveConfig) ([]components.Position, error) {
	s.calculateCalls++
	if s.failCalculate {
		return nil, errors.New("boom")
	}
	positions := make([]components.Position, rc.DotCount)
	for i := range positions {
		positions[i] = components.Position{X: center.X + float64(i), Y: center.Y}
	}
	return positions, nil
}

func (s *spyStrategy) InitializeMovement(particles []components.Particle, positions []components.Position, width, height float64, center components.Position, rc components.ResponsiveConfig) error {
	s.initCalls++
	return nil
}

func (s *spyStrategy) Update(particles []components.Particle, width, height float64, center components.Position, rc components.ResponsiveConfig, refs *components.PresetRefs) error {
	s.updateCalls++
	s.lastRefs = refs
	if s.panicUpdate {
		panic("update exploded")
	}
	for i := range particles {
		particles[i].Opacity = 1
	}
	return nil
}

// spyWithRefs 声明暂存状态的 spy
type spyWithRefs struct {
	spyStrategy
}

func (s *spyWithRefs) NewRefs() *components.PresetRefs {
	refs := components.NewPresetRefs()
	refs.Set("angle", 0)
	return refs
}

// spyRegistry 为每个已知预设注册一个 spy
func spyRegistry() (*presets.Registry, map[types.PresetID]*spyStrategy) {
	r := presets.NewRegistry()
	spies := make(map[types.PresetID]*spyStrategy)
	for _, id := range types.AllPresets() {
		s := &spyStrategy{}
		spies[id] = s
		r.Register(id, s)
	}
	return r, spies
}

func testFieldConfig() *config.FieldConfig {
	return config.DefaultFieldConfig()
}
