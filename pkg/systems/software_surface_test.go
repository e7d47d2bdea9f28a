package systems

import (
	"testing"

	"github.com/gonewx/dotfield/pkg/components"
)

func TestSoftwareSurface_Size(t *testing.T) {
	s := NewSoftwareSurface(64, 32, "")
	w, h := s.Size()
	if w != 64 || h != 32 {
		t.Errorf("Size() = (%d, %d), want (64, 32)", w, h)
	}
}

// TestSoftwareSurface_FillCircle 圆心处为填充色，远离圆的像素保持背景色
func TestSoftwareSurface_FillCircle(t *testing.T) {
	s := NewSoftwareSurface(40, 40, "#000000")
	s.ClearRect(0, 0, 40, 40)
	s.SetFillStyle("#FF0000")
	s.SetGlobalAlpha(1)
	s.FillCircle(20, 20, 8)

	img := s.Image()
	center := img.RGBAAt(20, 20)
	if center.R < 200 || center.G > 50 || center.B > 50 {
		t.Errorf("center pixel = %+v, want red", center)
	}
	corner := img.RGBAAt(2, 2)
	if corner.R > 10 || corner.A < 250 {
		t.Errorf("corner pixel = %+v, want opaque background", corner)
	}
}

func TestSoftwareSurface_ZeroRadiusIsNoop(t *testing.T) {
	s := NewSoftwareSurface(10, 10, "#000000")
	s.ClearRect(0, 0, 10, 10)
	s.SetFillStyle("#FFFFFF")
	s.FillCircle(5, 5, 0)

	if px := s.Image().RGBAAt(5, 5); px.R > 10 {
		t.Errorf("pixel = %+v, want background", px)
	}
}

// TestCanvasRenderer_DrawsOntoSoftwareSurface 渲染器经软件表面出图，淡入完成后粒子可见
func TestCanvasRenderer_DrawsOntoSoftwareSurface(t *testing.T) {
	r, clock := newTestRenderer()
	s := NewSoftwareSurface(50, 50, "#000000")
	particles := []components.Particle{
		{X: 25, Y: 25, Size: 6, Opacity: 1, Color: "#00FF00"},
		{X: 5, Y: 5, Size: 3, Opacity: 0, Color: "#FFFFFF"},
	}

	r.StartFadeIn()
	clock.Advance(testFieldConfig().FadeInDuration())
	r.Draw(s, 50, 50, particles)

	if px := s.Image().RGBAAt(25, 25); px.G < 200 {
		t.Errorf("particle pixel = %+v, want green", px)
	}
	if px := s.Image().RGBAAt(5, 5); px.R > 10 {
		t.Errorf("transparent particle drawn: %+v", px)
	}
	if stats := r.LastStats(); stats.Drawn != 1 || stats.Skipped != 1 {
		t.Errorf("stats = %+v, want 1 drawn 1 skipped", stats)
	}
}
