package systems

import (
	"math"
	"testing"
	"time"

	"github.com/gonewx/dotfield/pkg/components"
)

func newTestRenderer() (*CanvasRenderer, *fakeClock) {
	clock := &fakeClock{}
	return NewCanvasRenderer(testFieldConfig(), clock), clock
}

// TestCanvasRenderer_FadeMultiplier 淡入系数从 0 线性增长到 1，结束后清除起点
func TestCanvasRenderer_FadeMultiplier(t *testing.T) {
	r, clock := newTestRenderer()
	duration := testFieldConfig().FadeInDuration()
	surface := &recordingSurface{}
	particles := []components.Particle{{X: 1, Y: 1, Size: 1, Opacity: 1, Color: "#FFFFFF"}}

	alphaAt := func() float64 {
		surface.reset()
		r.Draw(surface, 100, 100, particles)
		for _, c := range surface.calls {
			if c.op == "alpha" {
				return c.alpha
			}
		}
		t.Fatal("no alpha call recorded")
		return 0
	}

	r.StartFadeIn()
	if got := alphaAt(); got != 0 {
		t.Errorf("alpha at t=0 = %v, want 0", got)
	}

	clock.Advance(duration / 4)
	if got := alphaAt(); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("alpha at t=d/4 = %v, want 0.25", got)
	}
	if !r.FadeStart().Set {
		t.Error("fade start cleared before the fade finished")
	}

	clock.Advance(duration)
	if got := alphaAt(); got != 1 {
		t.Errorf("alpha at t>=d = %v, want 1", got)
	}
	if r.FadeStart().Set {
		t.Error("fade start still set after the fade finished")
	}

	clock.Advance(time.Second)
	if got := alphaAt(); got != 1 {
		t.Errorf("alpha after fade = %v, want 1", got)
	}
}

// TestCanvasRenderer_Batching 按 (颜色, 取整尺寸) 分组，组内只设置一次填充色
func TestCanvasRenderer_Batching(t *testing.T) {
	r, _ := newTestRenderer()
	surface := &recordingSurface{}
	particles := []components.Particle{
		{X: 0, Size: 1.0, Opacity: 0.5, Color: "#FF0000"},
		{X: 1, Size: 2.0, Opacity: 0.5, Color: "#00FF00"},
		{X: 2, Size: 1.1, Opacity: 0.5, Color: "#FF0000"}, // 取整后与第一个同组
		{X: 3, Size: 1.0, Opacity: 0.001, Color: "#FF0000"},
		{X: 4, Size: 1.4, Opacity: 0.5, Color: "#FF0000"}, // 1.5 组
	}

	r.Draw(surface, 100, 100, particles)

	if surface.calls[0].op != "clear" || surface.calls[0].x != 100 || surface.calls[0].y != 100 {
		t.Fatalf("first call = %+v, want full clear", surface.calls[0])
	}
	if got := surface.count("fill"); got != 3 {
		t.Errorf("fill style changes = %d, want 3", got)
	}
	if got := surface.count("circle"); got != 4 {
		t.Errorf("circles = %d, want 4", got)
	}

	// 批次按首次出现的顺序绘制
	var order []float64
	for _, c := range surface.calls {
		if c.op == "circle" {
			order = append(order, c.x)
		}
	}
	want := []float64{0, 2, 1, 4}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("draw order = %v, want %v", order, want)
		}
	}

	stats := r.LastStats()
	if stats.Drawn != 4 || stats.Skipped != 1 || stats.Batches != 3 {
		t.Errorf("LastStats() = %+v", stats)
	}
}

// TestCanvasRenderer_PerParticleAlpha 每个粒子单独设置透明度
func TestCanvasRenderer_PerParticleAlpha(t *testing.T) {
	r, _ := newTestRenderer()
	surface := &recordingSurface{}
	particles := []components.Particle{
		{Size: 1, Opacity: 0.3, Color: "#FFFFFF"},
		{Size: 1, Opacity: 0.9, Color: "#FFFFFF"},
	}

	r.Draw(surface, 10, 10, particles)

	var alphas []float64
	for _, c := range surface.calls {
		if c.op == "alpha" {
			alphas = append(alphas, c.alpha)
		}
	}
	// 最后一次调用把全局透明度恢复为 1
	want := []float64{0.3, 0.9, 1}
	if len(alphas) != len(want) {
		t.Fatalf("alpha calls = %v, want %v", alphas, want)
	}
	for i := range want {
		if alphas[i] != want[i] {
			t.Errorf("alpha[%d] = %v, want %v", i, alphas[i], want[i])
		}
	}
}

func TestCanvasRenderer_EmptyFrame(t *testing.T) {
	r, _ := newTestRenderer()
	surface := &recordingSurface{}

	r.Draw(surface, 10, 10, nil)

	if surface.count("clear") != 1 || surface.count("circle") != 0 {
		t.Errorf("unexpected calls: %+v", surface.calls)
	}
	if r.LastStats() != (RenderStats{}) {
		t.Errorf("LastStats() = %+v, want zero", r.LastStats())
	}
}
