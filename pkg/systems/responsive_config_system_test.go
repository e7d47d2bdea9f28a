package systems

import (
	"testing"

	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/types"
)

func newResponsive() (*ResponsiveConfigSystem, *ParticleBuffer, map[types.PresetID]*spyStrategy) {
	registry, spies := spyRegistry()
	cfg := testFieldConfig()
	buffer := NewParticleBuffer(registry, cfg, 1)
	return NewResponsiveConfigSystem(cfg, buffer), buffer, spies
}

func TestResponsiveConfigSystem_Recompute(t *testing.T) {
	tests := []struct {
		name          string
		w, h          float64
		isMobile      bool
		isLandscape   bool
		mode          types.DisplayMode
		wantDots      int
		wantContainer float64
		wantTablet    bool
	}{
		{"desktop fullscreen", 1200, 800, false, false, types.ModeFullscreen, 1100, 800, false},
		{"desktop right-side", 1200, 800, false, false, types.ModeRightSide, 917, 600, false},
		{"tablet fullscreen", 900, 700, false, false, types.ModeFullscreen, 681, 700, true},
		{"mobile portrait bottom", 390, 844, true, false, types.ModeBottom, 231, 370.5, false},
		{"mobile landscape bottom", 844, 390, true, true, types.ModeBottom, 231, 195, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newResponsive()
			rc := s.Recompute(components.Rect{W: tt.w, H: tt.h}, tt.isMobile, tt.isLandscape, tt.mode)
			if rc.DotCount != tt.wantDots {
				t.Errorf("DotCount = %d, want %d", rc.DotCount, tt.wantDots)
			}
			if rc.ContainerSize != tt.wantContainer {
				t.Errorf("ContainerSize = %v, want %v", rc.ContainerSize, tt.wantContainer)
			}
			if rc.IsTablet != tt.wantTablet {
				t.Errorf("IsTablet = %v, want %v", rc.IsTablet, tt.wantTablet)
			}
			if rc.IsMobile != tt.isMobile {
				t.Errorf("IsMobile = %v, want %v", rc.IsMobile, tt.isMobile)
			}
		})
	}
}

// TestResponsiveConfigSystem_MinDots 缩放后的点数不低于 MinDots
func TestResponsiveConfigSystem_MinDots(t *testing.T) {
	registry, _ := spyRegistry()
	cfg := testFieldConfig()
	cfg.Responsive.MinDots = 300
	s := NewResponsiveConfigSystem(cfg, NewParticleBuffer(registry, cfg, 1))

	rc := s.Recompute(components.Rect{W: 390, H: 844}, true, false, types.ModeBottom)
	if rc.DotCount != 300 {
		t.Errorf("DotCount = %d, want 300", rc.DotCount)
	}
}

// TestResponsiveConfigSystem_ClearsCache 每次重算都会清空缓存
func TestResponsiveConfigSystem_ClearsCache(t *testing.T) {
	s, buffer, _ := newResponsive()
	rc := s.Recompute(components.Rect{W: 1200, H: 800}, false, false, types.ModeRightSide)
	buffer.ComputeInitialLayout(types.PresetSpeed, 1200, 800, rc, types.ModeRightSide)
	if buffer.CacheLen() != 1 {
		t.Fatalf("CacheLen() = %d, want 1", buffer.CacheLen())
	}

	// 平板断点：缓存键从 speed::false::false 变为 speed::false::true
	next := s.Recompute(components.Rect{W: 1000, H: 800}, false, false, types.ModeRightSide)
	if next.SameDeviceClass(rc) {
		t.Fatal("expected device class change")
	}
	if buffer.CacheLen() != 0 {
		t.Errorf("CacheLen() = %d after recompute, want 0", buffer.CacheLen())
	}
	if _, ok := buffer.CachedLayout(CacheKey(types.PresetSpeed, rc)); ok {
		t.Error("stale layout survived recompute")
	}

	// 设备类别不变的细微尺寸变化同样清空
	buffer.ComputeInitialLayout(types.PresetSpeed, 1000, 800, next, types.ModeRightSide)
	s.Recompute(components.Rect{W: 1001, H: 800}, false, false, types.ModeRightSide)
	if buffer.CacheLen() != 0 {
		t.Errorf("CacheLen() = %d after subtle resize, want 0", buffer.CacheLen())
	}
}

// TestResponsiveConfigSystem_ReseedOnlyOnCountChange 点数不变时不重新播种
func TestResponsiveConfigSystem_ReseedOnlyOnCountChange(t *testing.T) {
	s, buffer, _ := newResponsive()
	rc := s.Recompute(components.Rect{W: 1200, H: 800}, false, false, types.ModeFullscreen)
	if buffer.Len() != rc.DotCount {
		t.Fatalf("Len() = %d, want %d", buffer.Len(), rc.DotCount)
	}

	buffer.Particles()[0].Opacity = 0.5
	// 更高的窗口，边长仍受宽度限制以上，点数保持 1100
	s.Recompute(components.Rect{W: 1300, H: 900}, false, false, types.ModeFullscreen)
	if buffer.Particles()[0].Opacity != 0.5 {
		t.Error("buffer re-seeded although dot count was unchanged")
	}

	next := s.Recompute(components.Rect{W: 1200, H: 800}, false, false, types.ModeRightSide)
	if next.DotCount == rc.DotCount {
		t.Fatal("expected a different dot count")
	}
	if buffer.Len() != next.DotCount {
		t.Errorf("Len() = %d, want %d", buffer.Len(), next.DotCount)
	}
	if buffer.Particles()[0].Opacity != 0 {
		t.Error("re-seeded particle should start at opacity 0")
	}
}

func TestResponsiveConfigSystem_DebugRect(t *testing.T) {
	s, _, _ := newResponsive()

	s.Recompute(components.Rect{W: 1200, H: 800}, false, false, types.ModeFullscreen)
	if _, ok := s.DebugRect(); ok {
		t.Error("DebugRect available outside right-side mode")
	}

	s.Recompute(components.Rect{W: 1200, H: 800}, false, false, types.ModeRightSide)
	got, ok := s.DebugRect()
	want := components.Rect{X: 564, Y: 100, W: 600, H: 600}
	if !ok || got != want {
		t.Errorf("DebugRect() = (%+v, %v), want %+v", got, ok, want)
	}
}

// TestResponsiveConfigSystem_DebugRectClipped 调试矩形裁剪到容器内
func TestResponsiveConfigSystem_DebugRectClipped(t *testing.T) {
	registry, _ := spyRegistry()
	cfg := testFieldConfig()
	cfg.Anchors.RightSide.X = 0.95
	s := NewResponsiveConfigSystem(cfg, NewParticleBuffer(registry, cfg, 1))

	s.Recompute(components.Rect{W: 1200, H: 800}, false, false, types.ModeRightSide)
	got, _ := s.DebugRect()
	if got.X+got.W > 1200 {
		t.Errorf("DebugRect %+v exceeds container width", got)
	}
	if got.W != 360 || got.H != 600 {
		t.Errorf("DebugRect size = %vx%v, want 360x600", got.W, got.H)
	}
}
