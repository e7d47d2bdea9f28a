package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/field.yaml": {Data: []byte("render:\n  fadeInMs: 900\n")},
	}
}

// TestNotInitialized 未初始化（或以 nil 初始化）时读取返回 ErrNotInitialized
func TestNotInitialized(t *testing.T) {
	Init(nil)

	if _, err := ReadFile("data/field.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile() error = %v", err)
	}
}

func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"plain", "data/field.yaml", false},
		{"dot prefix", "./data/field.yaml", false},
		{"missing", "data/missing.yaml", true},
		{"wrong prefix", "assets/field.yaml", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && len(data) == 0 {
				t.Error("ReadFile returned empty data")
			}
		})
	}
}
