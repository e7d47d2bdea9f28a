package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gonewx/dotfield/pkg/types"
)

func TestDefaultFieldConfigIsValid(t *testing.T) {
	cfg := DefaultFieldConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultFieldConfig().Validate() error: %v", err)
	}
	for _, id := range types.AllPresets() {
		if _, ok := cfg.Tuning(id); !ok {
			t.Errorf("default config missing tuning for %q", id)
		}
	}
	if cfg.FadeInDuration() != 1200*time.Millisecond {
		t.Errorf("FadeInDuration() = %v, want 1.2s", cfg.FadeInDuration())
	}
}

func TestLoadFieldConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *FieldConfig)
	}{
		{
			name: "partial override keeps defaults",
			yamlContent: `
responsive:
  desktopDots: 1500
render:
  fadeInMs: 800
`,
			validate: func(t *testing.T, cfg *FieldConfig) {
				if cfg.Responsive.DesktopDots != 1500 {
					t.Errorf("expected desktopDots = 1500, got %d", cfg.Responsive.DesktopDots)
				}
				if cfg.Responsive.MobileDots != 420 {
					t.Errorf("expected default mobileDots = 420, got %d", cfg.Responsive.MobileDots)
				}
				if cfg.FadeInDuration() != 800*time.Millisecond {
					t.Errorf("expected fade 800ms, got %v", cfg.FadeInDuration())
				}
				if len(cfg.Presets) != 6 {
					t.Errorf("expected default presets, got %d", len(cfg.Presets))
				}
			},
		},
		{
			name: "presets replace defaults wholesale",
			yamlContent: `
presets:
  hero:
    palette: ["#FFFFFF"]
    size: "[1 2]"
`,
			validate: func(t *testing.T, cfg *FieldConfig) {
				if len(cfg.Presets) != 1 {
					t.Fatalf("expected only hero tuning, got %d presets", len(cfg.Presets))
				}
				if _, ok := cfg.Tuning(types.PresetSpeed); ok {
					t.Error("speed tuning should not be present")
				}
			},
		},
		{
			name: "dots below minimum",
			yamlContent: `
responsive:
  minDots: 200
  mobileDots: 100
`,
			wantErr:     true,
			errContains: "mobileDots",
		},
		{
			name: "ratio out of range",
			yamlContent: `
responsive:
  bottomHeightRatio: 1.5
`,
			wantErr:     true,
			errContains: "bottomHeightRatio",
		},
		{
			name: "zero fade",
			yamlContent: `
render:
  fadeInMs: 0
`,
			wantErr:     true,
			errContains: "fadeInMs",
		},
		{
			name: "unknown preset",
			yamlContent: `
presets:
  pricing:
    palette: ["#FFFFFF"]
`,
			wantErr:     true,
			errContains: "pricing",
		},
		{
			name: "bad tuning string",
			yamlContent: `
presets:
  mev:
    palette: ["#FFFFFF"]
    speed: "[fast slow]"
`,
			wantErr:     true,
			errContains: "speed",
		},
		{
			name:        "malformed yaml",
			yamlContent: "responsive: [",
			wantErr:     true,
			errContains: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "field.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to write fixture: %v", err)
			}

			cfg, err := LoadFieldConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadFieldConfig_MissingFile(t *testing.T) {
	_, err := LoadFieldConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestShippedFieldConfig 验证仓库自带的 data/field.yaml 可以通过校验
func TestShippedFieldConfig(t *testing.T) {
	cfg, err := LoadFieldConfig(filepath.Join("..", "..", "data", "field.yaml"))
	if err != nil {
		t.Fatalf("data/field.yaml failed to load: %v", err)
	}
	if len(cfg.Presets) != len(types.AllPresets()) {
		t.Errorf("data/field.yaml has %d presets, want %d", len(cfg.Presets), len(types.AllPresets()))
	}

	// hero 三色加 blend: 1 展开为五色；links 的 hsv 条目编译为十六进制
	hero, ok := cfg.Tuning(types.PresetHero)
	if !ok || len(hero.Palette) != 5 {
		t.Errorf("hero palette = %v, want 5 compiled colours", hero)
	}
	links, ok := cfg.Tuning(types.PresetLinks)
	if !ok || !strings.HasPrefix(links.Palette[0], "#") || len(links.Palette[0]) != 7 {
		t.Errorf("links palette did not compile: %v", links)
	}
}
