package keycode

import (
	"github.com/kbswitch/remapd/profile"
)

// EvdevCodeToSchema converts a numeric evdev/uinput key or button code to
// its schema key name. If the code has no known schema alias, it returns
// false.
func EvdevCodeToSchema(code uint16) (profile.SchemaKey, bool) {
	key, ok := numericToSchema[code]

	return key, ok
}

// SchemaToNumericCode converts a schema key name to its numeric
// evdev/uinput code. The lookup canonicalizes key first via [profile.Canon],
// so "key_a" and "KEY_A" resolve the same as "A". Raw kernel names (e.g.
// "KEY_ZOOM", "BTN_9") not covered by the closed schema-alias set are also
// accepted, tried plain and with a "KEY_" or "BTN_" prefix.
func SchemaToNumericCode(key profile.SchemaKey) (uint16, bool) {
	code, ok := schemaToNumeric[key]
	if ok {
		return code, ok
	}

	code, ok = schemaToNumeric[profile.Canon(string(key))]
	if ok {
		return code, ok
	}

	raw := string(profile.Canon(string(key)))

	code, ok = kernelNameToCode[raw]
	if ok {
		return code, ok
	}

	code, ok = kernelNameToCode["KEY_"+raw]
	if ok {
		return code, ok
	}

	return kernelNameToCode["BTN_"+raw]
}

// SchemaToEvdevName converts a schema key name to the evdev constant name
// it aliases (e.g. "A" -> "KEY_A"), for diagnostics and logging.
func SchemaToEvdevName(key profile.SchemaKey) (string, bool) {
	name, ok := schemaToEvdev[key]
	if ok {
		return name, ok
	}

	name, ok = schemaToEvdev[profile.Canon(string(key))]

	return name, ok
}

// EvdevNameToSchema converts a raw evdev constant name (e.g. "KEY_A") to
// its schema alias, falling back to the name itself (treated as a schema
// key verbatim) when no alias exists, mirroring the original mapping's
// identity fallback.
func EvdevNameToSchema(evdevName string) profile.SchemaKey {
	if key, ok := evdevToSchema[evdevName]; ok {
		return key
	}

	return profile.SchemaKey(evdevName)
}
