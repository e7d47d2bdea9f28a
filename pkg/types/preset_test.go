package types

import "testing"

func TestPresetIDIsKnown(t *testing.T) {
	for _, p := range AllPresets() {
		if !p.IsKnown() {
			t.Errorf("%q should be known", p)
		}
	}
	if PresetID("pricing").IsKnown() {
		t.Error("unexpected known preset \"pricing\"")
	}
	if PresetID("").IsKnown() {
		t.Error("empty preset id must not be known")
	}
}

func TestAllPresetsOrder(t *testing.T) {
	want := []PresetID{"hero", "speed", "fees", "mev", "vault", "links"}
	got := AllPresets()
	if len(got) != len(want) {
		t.Fatalf("AllPresets() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AllPresets()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
