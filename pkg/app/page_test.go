package app

import (
	"math"
	"testing"

	"github.com/gonewx/dotfield/pkg/config"
)

func TestPage_CanvasRect(t *testing.T) {
	tests := []struct {
		name  string
		p     page
		wantX float64
		wantW float64
		wantH float64
	}{
		{"desktop", page{screenW: 1200, screenH: 800}, 0, 1200, 800},
		{"side panel", page{screenW: 1200, screenH: 800, sidePanel: true}, config.SidePanelWidth, 1200 - config.SidePanelWidth, 800},
		{"phone portrait", page{screenW: 1200, screenH: 800, mobile: true}, 0, phoneShortSide, 800},
		{"phone landscape", page{screenW: 1200, screenH: 800, mobile: true, landscape: true}, 0, 1200, phoneShortSide},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.p.canvasRect()
			if r.X != tt.wantX || r.W != tt.wantW || r.H != tt.wantH {
				t.Errorf("canvasRect() = %+v, want x=%v w=%v h=%v", r, tt.wantX, tt.wantW, tt.wantH)
			}
		})
	}
}

// TestPage_VisibleRatio 滚动时画布逐渐离开视口
func TestPage_VisibleRatio(t *testing.T) {
	p := page{screenW: 1200, screenH: 800}

	if got := p.visibleRatio(); got != 1 {
		t.Errorf("ratio at top = %v, want 1", got)
	}

	p.scrollBy(600)
	if got := p.visibleRatio(); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("ratio after 600px = %v, want 0.25", got)
	}

	p.scrollBy(10000)
	if p.scroll != p.maxScroll() {
		t.Errorf("scroll = %v, want clamped to %v", p.scroll, p.maxScroll())
	}
	if got := p.visibleRatio(); got != 0 {
		t.Errorf("ratio at bottom = %v, want 0", got)
	}

	p.scrollBy(-100000)
	if p.scroll != 0 {
		t.Errorf("scroll = %v, want 0", p.scroll)
	}
}

func TestPage_EmptyScreen(t *testing.T) {
	var p page
	if got := p.visibleRatio(); got != 0 {
		t.Errorf("ratio with empty screen = %v, want 0", got)
	}
}
