package particle

import "fmt"

// CompileTuning parses every value string of a RawTuning.
//
// The palette goes through CompilePalette; value strings are validated
// with ParseValue so a typo in YAML is reported instead of silently
// turning into zero.
func CompileTuning(raw RawTuning) (*Tuning, error) {
	palette, err := CompilePalette(raw.Palette, raw.Blend)
	if err != nil {
		return nil, err
	}

	t := &Tuning{
		Palette: palette,
		Easing:  raw.Easing,
	}

	fields := []struct {
		name string
		src  string
		dst  *Value
	}{
		{"size", raw.Size, &t.Size},
		{"opacity", raw.Opacity, &t.Opacity},
		{"speed", raw.Speed, &t.Speed},
		{"pulse", raw.Pulse, &t.Pulse},
		{"spread", raw.Spread, &t.Spread},
	}

	for _, f := range fields {
		v, err := ParseValue(f.src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}

	if t.Easing != "" && !isInterpolation(t.Easing) {
		return nil, fmt.Errorf("unknown easing %q", t.Easing)
	}

	return t, nil
}

func isInterpolation(name string) bool {
	for _, keyword := range interpolationKeywords {
		if keyword == name {
			return true
		}
	}
	return false
}
