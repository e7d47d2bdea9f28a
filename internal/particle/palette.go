package particle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gonewx/dotfield/pkg/utils"
)

// maxBlendSteps bounds how many shades may be inserted between two palette colours.
const maxBlendSteps = 8

// CompilePalette normalizes palette entries to "#RRGGBB".
//
// An entry is either a hex colour ("#RGB" or "#RRGGBB") or "hsv(h s v)" with
// hue in degrees and saturation/value in 0-1. When blend > 0, that many
// Lab-interpolated shades are inserted between each adjacent pair, so a
// palette of n colours grows to n + (n-1)*blend entries.
func CompilePalette(entries []string, blend int) ([]string, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("palette is empty")
	}
	if blend < 0 || blend > maxBlendSteps {
		return nil, fmt.Errorf("blend %d out of range [0, %d]", blend, maxBlendSteps)
	}

	base := make([]string, 0, len(entries))
	for i, entry := range entries {
		hex, err := compileColour(entry)
		if err != nil {
			return nil, fmt.Errorf("palette[%d]: %w", i, err)
		}
		base = append(base, hex)
	}
	if blend == 0 || len(base) == 1 {
		return base, nil
	}

	out := make([]string, 0, len(base)+(len(base)-1)*blend)
	for i := 0; i < len(base)-1; i++ {
		out = append(out, base[i])
		for s := 1; s <= blend; s++ {
			t := float64(s) / float64(blend+1)
			out = append(out, strings.ToUpper(utils.BlendHex(base[i], base[i+1], t)))
		}
	}
	return append(out, base[len(base)-1]), nil
}

func compileColour(entry string) (string, error) {
	s := strings.TrimSpace(entry)
	if strings.HasPrefix(strings.ToLower(s), "hsv(") {
		h, sat, v, err := parseHSV(s)
		if err != nil {
			return "", err
		}
		s = utils.HSVHex(h, sat, v)
	}
	c, err := utils.ParseHexColor(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B), nil
}

// parseHSV parses "hsv(h s v)" or "hsv(h, s, v)".
func parseHSV(s string) (h, sat, v float64, err error) {
	if !strings.HasSuffix(s, ")") {
		return 0, 0, 0, fmt.Errorf("invalid hsv colour %q", s)
	}
	body := strings.ReplaceAll(s[len("hsv("):len(s)-1], ",", " ")
	parts := strings.Fields(body)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid hsv colour %q", s)
	}
	var vals [3]float64
	for i, p := range parts {
		vals[i], err = strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid hsv colour %q", s)
		}
	}
	if vals[1] < 0 || vals[1] > 1 || vals[2] < 0 || vals[2] > 1 {
		return 0, 0, 0, fmt.Errorf("hsv saturation and value must be in [0, 1]: %q", s)
	}
	return vals[0], vals[1], vals[2], nil
}
