//go:build linux

package daemon

import (
	"testing"

	"github.com/kbswitch/remapd/keycode"
	"github.com/kbswitch/remapd/linux/input"
	"github.com/kbswitch/remapd/profile"
)

func TestCapabilitiesUnionsOutputKeys(t *testing.T) {
	p, err := profile.New("p1", "P", []string{"/dev/input/event0"}, []profile.Layer{
		{
			ID:   profile.BaseLayerID,
			Name: "Base",
			Bindings: map[profile.SchemaKey]profile.Binding{
				"A": {InputCode: "A", Action: profile.ActionKey, OutputKeys: []profile.SchemaKey{"B"}},
				"C": {InputCode: "C", Action: profile.ActionChord, OutputKeys: []profile.SchemaKey{"D", "E"}},
			},
		},
	}, nil, true)
	if err != nil {
		t.Fatalf("profile.New: %v", err)
	}

	caps := capabilities(p)

	wantB, _ := keycode.SchemaToNumericCode("B")
	wantD, _ := keycode.SchemaToNumericCode("D")
	wantE, _ := keycode.SchemaToNumericCode("E")

	got := make(map[uint16]bool)
	for _, code := range caps[input.EV_KEY] {
		got[code] = true
	}

	for _, want := range []uint16{wantB, wantD, wantE} {
		if !got[want] {
			t.Fatalf("capabilities missing code %d, got %v", want, got)
		}
	}
}

func TestCapabilitiesIncludesTextKeysWhenMacroHasTextStep(t *testing.T) {
	p, err := profile.New("p1", "P", []string{"/dev/input/event0"}, []profile.Layer{
		{
			ID:   profile.BaseLayerID,
			Name: "Base",
			Bindings: map[profile.SchemaKey]profile.Binding{
				"F1": {InputCode: "F1", Action: profile.ActionMacro, MacroID: "greet"},
			},
		},
	}, map[string]profile.MacroAction{
		"greet": {
			ID:          "greet",
			Name:        "Greet",
			Steps:       []profile.MacroStep{{Kind: profile.StepText, Text: "Hi"}},
			RepeatCount: 1,
		},
	}, true)
	if err != nil {
		t.Fatalf("profile.New: %v", err)
	}

	caps := capabilities(p)

	shiftCode, _ := keycode.SchemaToNumericCode("SHIFT")

	found := false
	for _, code := range caps[input.EV_KEY] {
		if code == shiftCode {
			found = true
		}
	}

	if !found {
		t.Fatal("capabilities should include SHIFT when a profile has a TEXT macro step")
	}
}
