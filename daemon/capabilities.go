//go:build linux

package daemon

import (
	"github.com/kbswitch/remapd/keycode"
	"github.com/kbswitch/remapd/linux/input"
	"github.com/kbswitch/remapd/profile"
)

// textMacroKeys is the fixed key set typeText (engine package) may emit
// for any TEXT macro step: every ASCII letter and digit, punctuation-free
// whitespace keys, and SHIFT for uppercase letters. It is unioned in
// unconditionally whenever a profile has at least one TEXT step, since
// the exact characters typed aren't known until the macro actually runs.
func textMacroKeys() []profile.SchemaKey {
	keys := []profile.SchemaKey{"SHIFT", "SPACE", "ENTER", "TAB"}

	for c := 'A'; c <= 'Z'; c++ {
		keys = append(keys, profile.SchemaKey(string(c)))
	}

	for c := '0'; c <= '9'; c++ {
		keys = append(keys, profile.SchemaKey(string(c)))
	}

	return keys
}

// capabilities computes the union of every numeric key code a Profile's
// engine could ever emit, for uinput.Create's event-capability argument.
// Codes that don't resolve through the keycode map are silently dropped.
func capabilities(p *profile.Profile) map[uint16][]uint16 {
	var (
		seen = make(map[uint16]struct{})
		keys []profile.SchemaKey
	)

	for _, layer := range p.Layers {
		for _, binding := range layer.Bindings {
			if binding.Action == profile.ActionPassthrough {
				keys = append(keys, binding.InputCode)
			}

			keys = append(keys, binding.OutputKeys...)
		}
	}

	hasText := false

	for _, macro := range p.Macros {
		for _, step := range macro.Steps {
			switch step.Kind {
			case profile.StepKeyDown, profile.StepKeyUp, profile.StepKeyPress:
				keys = append(keys, step.Key)
			case profile.StepText:
				hasText = true
			}
		}
	}

	if hasText {
		keys = append(keys, textMacroKeys()...)
	}

	for _, key := range keys {
		code, ok := keycode.SchemaToNumericCode(key)
		if !ok {
			continue
		}

		seen[code] = struct{}{}
	}

	codes := make([]uint16, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}

	return map[uint16][]uint16{input.EV_KEY: codes}
}
