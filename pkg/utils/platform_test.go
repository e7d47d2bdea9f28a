//go:build !mobile

package utils

import "testing"

func TestIsMobile_Desktop(t *testing.T) {
	t.Setenv(MobileEmulateEnv, "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}

	t.Setenv(MobileEmulateEnv, "1")
	if !IsMobile() {
		t.Error("IsMobile() should honor the emulate env")
	}
}
