//go:build linux

package uinput

import "testing"

func TestRequestCodesAreDistinct(t *testing.T) {
	codes := map[string]uint{
		"UI_SET_EVBIT":   UI_SET_EVBIT(),
		"UI_SET_KEYBIT":  UI_SET_KEYBIT(),
		"UI_DEV_SETUP":   UI_DEV_SETUP(),
		"UI_DEV_CREATE":  UI_DEV_CREATE(),
		"UI_DEV_DESTROY": UI_DEV_DESTROY(),
	}

	seen := make(map[uint]string, len(codes))

	for name, code := range codes {
		if other, ok := seen[code]; ok {
			t.Fatalf("%s and %s both encode to request code %#x", name, other, code)
		}

		seen[code] = name
	}
}

func TestNoDataRequestsCarryZeroSize(t *testing.T) {
	if sz := (UI_DEV_CREATE() >> 16) & 0x3fff; sz != 0 {
		t.Fatalf("UI_DEV_CREATE size field = %d, want 0", sz)
	}

	if sz := (UI_DEV_DESTROY() >> 16) & 0x3fff; sz != 0 {
		t.Fatalf("UI_DEV_DESTROY size field = %d, want 0", sz)
	}
}
