package keycode

import (
	"testing"

	"github.com/kbswitch/remapd/linux/input"
	"github.com/kbswitch/remapd/profile"
)

func TestSchemaToNumericCode(t *testing.T) {
	tests := []struct {
		key  string
		want uint16
	}{
		{"A", input.KEY_A},
		{"a", input.KEY_A},
		{"MOUSE_LEFT", input.BTN_LEFT},
		{"CTRL", input.KEY_LEFTCTRL},
		{"ENTER", input.KEY_ENTER},
		{"KEY_A", input.KEY_A},
		{"NUM_ENTER", input.KEY_KPENTER},
	}

	for _, tt := range tests {
		got, ok := SchemaToNumericCode(profile.SchemaKey(tt.key))
		if !ok {
			t.Errorf("SchemaToNumericCode(%q): not found", tt.key)
			continue
		}

		if got != tt.want {
			t.Errorf("SchemaToNumericCode(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestSchemaToNumericCodeFallsBackToRawKernelName(t *testing.T) {
	tests := []struct {
		key  string
		want uint16
	}{
		{"KEY_ZOOM", input.KEY_ZOOM}, // raw kernel name, no schema alias
		{"ZOOM", input.KEY_ZOOM},     // bare name, resolved via "KEY_" prefix
		{"BTN_9", input.BTN_9},       // raw kernel name, no schema alias
	}

	for _, tt := range tests {
		got, ok := SchemaToNumericCode(profile.SchemaKey(tt.key))
		if !ok {
			t.Errorf("SchemaToNumericCode(%q): not found", tt.key)
			continue
		}

		if got != tt.want {
			t.Errorf("SchemaToNumericCode(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestSchemaToNumericCodeUnknown(t *testing.T) {
	if _, ok := SchemaToNumericCode(profile.SchemaKey("NOT_A_REAL_KEY")); ok {
		t.Fatal("SchemaToNumericCode(unknown) = ok, want not found")
	}
}

func TestEvdevCodeToSchemaRoundTrip(t *testing.T) {
	code, ok := SchemaToNumericCode(profile.SchemaKey("LEFT"))
	if !ok {
		t.Fatal("SchemaToNumericCode(\"LEFT\") not found")
	}

	key, ok := EvdevCodeToSchema(code)
	if !ok {
		t.Fatalf("EvdevCodeToSchema(%d) not found", code)
	}

	if key != "LEFT" {
		t.Fatalf("EvdevCodeToSchema(%d) = %q, want LEFT", code, key)
	}
}

func TestEvdevNameToSchemaFallsBackToIdentity(t *testing.T) {
	if got := EvdevNameToSchema("KEY_UNKNOWN_VENDOR_KEY"); got != "KEY_UNKNOWN_VENDOR_KEY" {
		t.Fatalf("EvdevNameToSchema(unknown) = %q, want identity fallback", got)
	}
}
