// Package particle provides the value DSL used to tune the dot-field motion
// strategies, and the compiled tuning records the strategies read at runtime.
//
// Tuning values are plain strings so they can live in YAML next to the rest
// of the field configuration. A value string may be:
//   - Fixed value: "1.5"
//   - Range: "[0.4 0.9]" (uniform random value between min and max)
//   - Double range: "[.4 .6] [.8 1.2]" (random start and end, linear curve)
//   - Keyframes: "0,0.6 0.5,1 1,0.6" (time,value pairs on a 0-1 timeline)
//   - Keyframes with interpolation: "EaseOut 0,0 1,1"
package particle

// RawTuning is the YAML shape of a single preset's tuning block.
type RawTuning struct {
	// Palette lists the colours particles are drawn from: "#RRGGBB", "#RGB" or "hsv(h s v)".
	Palette []string `yaml:"palette"`
	// Blend inserts this many Lab-blended shades between adjacent palette colours.
	Blend int `yaml:"blend"`

	Size    string `yaml:"size"`    // Particle radius in pixels
	Opacity string `yaml:"opacity"` // Target opacity (0-1)
	Speed   string `yaml:"speed"`   // Strategy-specific speed unit (px/frame or rad/frame)
	Pulse   string `yaml:"pulse"`   // Opacity multiplier curve over one pulse cycle
	Spread  string `yaml:"spread"`  // Layout spread as a fraction of the container size

	// Easing names the interpolation used when particles travel to their targets.
	Easing string `yaml:"easing"`
}

// Tuning is a compiled RawTuning. Strategies only ever see this form.
type Tuning struct {
	Palette []string
	Size    Value
	Opacity Value
	Speed   Value
	Pulse   Value
	Spread  Value
	Easing  string
}

// Keyframe represents a single point of a value curve.
type Keyframe struct {
	Time  float64 // Normalized time (0-1)
	Value float64 // Value at this keyframe
}

// Value is a parsed tuning value: either a [Min, Max] range or a keyframe curve.
type Value struct {
	Min           float64
	Max           float64
	Keyframes     []Keyframe
	Interpolation string
}
