package particle

import (
	"strings"
	"testing"
)

func TestCompilePalette(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		blend   int
		want    []string
	}{
		{"hex passthrough", []string{"#7FD4FF", "#FFFFFF"}, 0, []string{"#7FD4FF", "#FFFFFF"}},
		{"short and lowercase hex", []string{"#fff", " #00ff80 "}, 0, []string{"#FFFFFF", "#00FF80"}},
		{"hsv red", []string{"hsv(0 1 1)"}, 0, []string{"#FF0000"}},
		{"hsv with commas", []string{"HSV(120, 1, 1)"}, 0, []string{"#00FF00"}},
		{"hsv hue wraps", []string{"hsv(360 1 1)"}, 0, []string{"#FF0000"}},
		{"blend ignored for single colour", []string{"#123456"}, 3, []string{"#123456"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompilePalette(tt.entries, tt.blend)
			if err != nil {
				t.Fatalf("CompilePalette() error: %v", err)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("CompilePalette() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCompilePalette_Blend 相邻颜色之间插入混合色，端点保持原色
func TestCompilePalette_Blend(t *testing.T) {
	for _, blend := range []int{1, 2, 4} {
		got, err := CompilePalette([]string{"#000000", "#FFFFFF", "#FF0000"}, blend)
		if err != nil {
			t.Fatalf("blend %d: %v", blend, err)
		}
		if want := 3 + 2*blend; len(got) != want {
			t.Fatalf("blend %d: len = %d, want %d", blend, len(got), want)
		}
		if got[0] != "#000000" || got[blend+1] != "#FFFFFF" || got[len(got)-1] != "#FF0000" {
			t.Errorf("blend %d: endpoints moved: %v", blend, got)
		}
		for i, c := range got {
			if len(c) != 7 || c[0] != '#' || c != strings.ToUpper(c) {
				t.Errorf("blend %d: entry %d = %q, want #RRGGBB", blend, i, c)
			}
		}
		// 黑到白之间的混合色亮度单调递增
		for i := 1; i <= blend+1; i++ {
			if got[i] <= got[i-1] {
				t.Errorf("blend %d: %q not lighter than %q", blend, got[i], got[i-1])
			}
		}
	}
}

func TestCompilePalette_Errors(t *testing.T) {
	tests := []struct {
		name        string
		entries     []string
		blend       int
		errContains string
	}{
		{"empty", nil, 0, "empty"},
		{"bad hex", []string{"#FFFFFF", "#GG0000"}, 0, "palette[1]"},
		{"named colour", []string{"red"}, 0, "palette[0]"},
		{"hsv missing component", []string{"hsv(10 1)"}, 0, "hsv"},
		{"hsv not a number", []string{"hsv(a 1 1)"}, 0, "hsv"},
		{"hsv unclosed", []string{"hsv(10 1 1"}, 0, "hsv"},
		{"hsv saturation out of range", []string{"hsv(10 2 1)"}, 0, "saturation"},
		{"negative blend", []string{"#FFFFFF"}, -1, "blend"},
		{"blend too large", []string{"#FFFFFF"}, maxBlendSteps + 1, "blend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompilePalette(tt.entries, tt.blend)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not mention %q", err, tt.errContains)
			}
		})
	}
}
