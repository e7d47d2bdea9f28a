package particle

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/gonewx/dotfield/pkg/utils"
)

// interpolationKeywords lists the easing names the DSL understands.
// Longer names come first so substring matching never picks a prefix.
var interpolationKeywords = []string{"EaseInOutCubic", "EaseOutCubic", "EaseOutQuad", "FastInOutWeak", "EaseOut", "EaseIn", "Linear"}

// ParseValue parses a tuning value string and reports malformed input.
// An empty string is a valid zero value.
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, nil
	}

	// 双范围格式 "[min1 max1] [min2 max2]"：随机起点和终点，线性过渡
	if strings.Count(s, "[") == 2 && strings.Count(s, "]") == 2 {
		parts := strings.SplitN(s, "]", 2)
		startMin, startMax, err := parseBracket(parts[0] + "]")
		if err != nil {
			return Value{}, err
		}
		endMin, endMax, err := parseBracket(strings.TrimSpace(parts[1]))
		if err != nil {
			return Value{}, err
		}
		return Value{
			Keyframes: []Keyframe{
				{Time: 0, Value: RandomInRange(startMin, startMax)},
				{Time: 1, Value: RandomInRange(endMin, endMax)},
			},
			Interpolation: "Linear",
		}, nil
	}

	if strings.HasPrefix(s, "[") {
		lo, hi, err := parseBracket(s)
		if err != nil {
			return Value{}, err
		}
		return Value{Min: lo, Max: hi}, nil
	}

	var interp string
	for _, keyword := range interpolationKeywords {
		if strings.Contains(s, keyword) {
			interp = keyword
			s = strings.TrimSpace(strings.ReplaceAll(s, keyword, ""))
			break
		}
	}

	if strings.Contains(s, ",") || interp != "" {
		fields := strings.Fields(s)
		keyframes := make([]Keyframe, 0, len(fields))
		for _, field := range fields {
			pair := strings.Split(field, ",")
			if len(pair) != 2 {
				return Value{}, fmt.Errorf("invalid keyframe %q", field)
			}
			t, err1 := strconv.ParseFloat(pair[0], 64)
			v, err2 := strconv.ParseFloat(pair[1], 64)
			if err1 != nil || err2 != nil {
				return Value{}, fmt.Errorf("invalid keyframe %q", field)
			}
			keyframes = append(keyframes, Keyframe{Time: t, Value: v})
		}
		if len(keyframes) == 0 {
			return Value{}, fmt.Errorf("interpolation %q without keyframes", interp)
		}
		for i := 1; i < len(keyframes); i++ {
			if keyframes[i].Time < keyframes[i-1].Time {
				return Value{}, fmt.Errorf("keyframes out of order at %v", keyframes[i].Time)
			}
		}
		return Value{Keyframes: keyframes, Interpolation: interp}, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid value %q", s)
	}
	return Value{Min: v, Max: v}, nil
}

// parseBracket parses "[min max]" or "[value]".
func parseBracket(s string) (float64, float64, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return 0, 0, fmt.Errorf("invalid range %q", s)
	}
	parts := strings.Fields(strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"))
	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid range %q", s)
		}
		return v, v, nil
	case 2:
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			return 0, 0, fmt.Errorf("invalid range %q", s)
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		return lo, hi, nil
	}
	return 0, 0, fmt.Errorf("invalid range %q", s)
}

// IsCurve reports whether the value is a keyframe curve.
func (v Value) IsCurve() bool {
	return len(v.Keyframes) > 0
}

// Sample draws a value: a uniform sample of the range, or the curve's
// starting value.
func (v Value) Sample(rng *rand.Rand) float64 {
	if v.IsCurve() {
		return v.Keyframes[0].Value
	}
	if v.Min >= v.Max || rng == nil {
		return v.Min
	}
	return v.Min + rng.Float64()*(v.Max-v.Min)
}

// At evaluates the value at normalized time t. Ranges return their midpoint.
func (v Value) At(t float64) float64 {
	if v.IsCurve() {
		return EvaluateKeyframes(v.Keyframes, t, v.Interpolation)
	}
	return (v.Min + v.Max) / 2
}

// EvaluateKeyframes calculates the interpolated value at time t (0-1)
// using the provided keyframes and interpolation mode.
//
// Parameters:
//   - keyframes: Array of keyframes (must be sorted by Time)
//   - t: Normalized time (0-1)
//   - interpolation: Interpolation mode ("Linear", "EaseIn", etc.)
func EvaluateKeyframes(keyframes []Keyframe, t float64, interpolation string) float64 {
	if len(keyframes) == 0 {
		return 0
	}
	if len(keyframes) == 1 {
		return keyframes[0].Value
	}

	t = math.Max(0, math.Min(1, t))
	if t < keyframes[0].Time {
		return keyframes[0].Value
	}

	for i := 0; i < len(keyframes)-1; i++ {
		k0 := keyframes[i]
		k1 := keyframes[i+1]
		if t < k0.Time || t > k1.Time {
			continue
		}
		duration := k1.Time - k0.Time
		if duration <= 0 {
			return k0.Value
		}
		ratio := Interpolate((t-k0.Time)/duration, interpolation)
		return k0.Value + ratio*(k1.Value-k0.Value)
	}

	return keyframes[len(keyframes)-1].Value
}

// Interpolate maps a linear ratio through the named easing.
// Unknown names fall back to linear.
func Interpolate(ratio float64, interpolation string) float64 {
	switch interpolation {
	case "EaseIn":
		return ratio * ratio
	case "EaseOut":
		return 1 - (1-ratio)*(1-ratio)
	case "FastInOutWeak":
		return ratio * ratio * (3 - 2*ratio)
	case "EaseOutQuad":
		return utils.EaseOutQuad(ratio)
	case "EaseOutCubic":
		return utils.EaseOutCubic(ratio)
	case "EaseInOutCubic":
		return utils.EaseInOutCubic(ratio)
	default:
		return ratio
	}
}

// RandomInRange returns a random float64 in the range [min, max].
func RandomInRange(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + rand.Float64()*(max-min)
}
