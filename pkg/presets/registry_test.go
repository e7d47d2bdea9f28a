package presets

import (
	"errors"
	"testing"

	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/config"
	"github.com/gonewx/dotfield/pkg/types"
)

func TestDefaultRegistryRegistersAllPresets(t *testing.T) {
	r := DefaultRegistry(config.DefaultFieldConfig(), 1)

	for _, id := range types.AllPresets() {
		if _, err := r.Lookup(id); err != nil {
			t.Errorf("Lookup(%q) error = %v", id, err)
		}
	}
	if got := len(r.IDs()); got != len(types.AllPresets()) {
		t.Errorf("IDs() len = %d, want %d", got, len(types.AllPresets()))
	}
}

func TestLookupUnknownPreset(t *testing.T) {
	r := DefaultRegistry(config.DefaultFieldConfig(), 1)

	_, err := r.Lookup("nope")
	if !errors.Is(err, ErrPresetNotFound) {
		t.Fatalf("Lookup(nope) error = %v, want ErrPresetNotFound", err)
	}
}

func TestDefaultRegistrySkipsMissingTuning(t *testing.T) {
	cfg := config.DefaultFieldConfig()
	delete(cfg.Presets, string(types.PresetLinks))

	r := DefaultRegistry(cfg, 1)
	if _, err := r.Lookup(types.PresetLinks); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("Lookup(links) error = %v, want ErrPresetNotFound", err)
	}
	if _, err := r.Lookup(types.PresetHero); err != nil {
		t.Errorf("Lookup(hero) error = %v", err)
	}
}

func TestRefsProviders(t *testing.T) {
	r := DefaultRegistry(config.DefaultFieldConfig(), 1)

	tests := []struct {
		id       types.PresetID
		wantRefs bool
	}{
		{types.PresetHero, true},
		{types.PresetSpeed, false},
		{types.PresetFees, false},
		{types.PresetMEV, false},
		{types.PresetVault, true},
		{types.PresetLinks, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			s, err := r.Lookup(tt.id)
			if err != nil {
				t.Fatal(err)
			}
			provider, ok := s.(RefsProvider)
			if ok != tt.wantRefs {
				t.Fatalf("RefsProvider = %v, want %v", ok, tt.wantRefs)
			}
			if ok && provider.NewRefs() == nil {
				t.Error("NewRefs() returned nil")
			}
		})
	}
}

func TestRegisterReplaces(t *testing.T) {
	r := NewRegistry()
	first := &stubStrategy{}
	second := &stubStrategy{}
	r.Register(types.PresetHero, first)
	r.Register(types.PresetHero, second)

	got, err := r.Lookup(types.PresetHero)
	if err != nil {
		t.Fatal(err)
	}
	if got != second {
		t.Error("Register did not replace existing strategy")
	}
}

type stubStrategy struct{}

func (s *stubStrategy) CalculatePositions(width, height float64, center components.Position, rc components.ResponsiveConfig) ([]components.Position, error) {
	return nil, nil
}

func (s *stubStrategy) InitializeMovement(particles []components.Particle, positions []components.Position, width, height float64, center components.Position, rc components.ResponsiveConfig) error {
	return nil
}

func (s *stubStrategy) Update(particles []components.Particle, width, height float64, center components.Position, rc components.ResponsiveConfig, refs *components.PresetRefs) error {
	return nil
}
