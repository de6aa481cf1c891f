package keycode

import (
	"github.com/kbswitch/remapd/linux/input"
	"github.com/kbswitch/remapd/profile"
)

// entry pairs an evdev constant name with the numeric code the kernel
// header assigns it, so the tables below can be built from a single
// source list instead of two parallel ones that could drift apart.
type entry struct {
	evdevName string
	schema    profile.SchemaKey
	numeric   uint16
}

var (
	// evdevToSchema maps kernel evdev code names to schema key names.
	evdevToSchema map[string]profile.SchemaKey

	// schemaToEvdev is the reverse of evdevToSchema, plus every evdev name
	// mapping to itself so raw kernel names are always valid schema keys.
	schemaToEvdev map[profile.SchemaKey]string

	// schemaToNumeric maps schema key names directly to numeric codes.
	schemaToNumeric map[profile.SchemaKey]uint16

	// numericToSchema is the reverse of schemaToNumeric.
	numericToSchema map[uint16]profile.SchemaKey
)

func init() {
	entries := []entry{
		// Mouse buttons
		{"BTN_LEFT", "MOUSE_LEFT", input.BTN_LEFT},
		{"BTN_RIGHT", "MOUSE_RIGHT", input.BTN_RIGHT},
		{"BTN_MIDDLE", "MOUSE_MIDDLE", input.BTN_MIDDLE},
		{"BTN_SIDE", "MOUSE_SIDE", input.BTN_SIDE},
		{"BTN_EXTRA", "MOUSE_EXTRA", input.BTN_EXTRA},
		{"BTN_FORWARD", "MOUSE_FORWARD", input.BTN_FORWARD},
		{"BTN_BACK", "MOUSE_BACK", input.BTN_BACK},
		{"BTN_TASK", "MOUSE_TASK", input.BTN_TASK},

		// Modifiers
		{"KEY_LEFTCTRL", "CTRL", input.KEY_LEFTCTRL},
		{"KEY_RIGHTCTRL", "CTRL_R", input.KEY_RIGHTCTRL},
		{"KEY_LEFTSHIFT", "SHIFT", input.KEY_LEFTSHIFT},
		{"KEY_RIGHTSHIFT", "SHIFT_R", input.KEY_RIGHTSHIFT},
		{"KEY_LEFTALT", "ALT", input.KEY_LEFTALT},
		{"KEY_RIGHTALT", "ALT_R", input.KEY_RIGHTALT},
		{"KEY_LEFTMETA", "META", input.KEY_LEFTMETA},
		{"KEY_RIGHTMETA", "META_R", input.KEY_RIGHTMETA},

		// Special keys
		{"KEY_ESC", "ESC", input.KEY_ESC},
		{"KEY_TAB", "TAB", input.KEY_TAB},
		{"KEY_CAPSLOCK", "CAPS", input.KEY_CAPSLOCK},
		{"KEY_ENTER", "ENTER", input.KEY_ENTER},
		{"KEY_SPACE", "SPACE", input.KEY_SPACE},
		{"KEY_BACKSPACE", "BACKSPACE", input.KEY_BACKSPACE},
		{"KEY_DELETE", "DELETE", input.KEY_DELETE},
		{"KEY_INSERT", "INSERT", input.KEY_INSERT},
		{"KEY_HOME", "HOME", input.KEY_HOME},
		{"KEY_END", "END", input.KEY_END},
		{"KEY_PAGEUP", "PAGEUP", input.KEY_PAGEUP},
		{"KEY_PAGEDOWN", "PAGEDOWN", input.KEY_PAGEDOWN},

		// Arrows
		{"KEY_UP", "UP", input.KEY_UP},
		{"KEY_DOWN", "DOWN", input.KEY_DOWN},
		{"KEY_LEFT", "LEFT", input.KEY_LEFT},
		{"KEY_RIGHT", "RIGHT", input.KEY_RIGHT},

		// Function keys
		{"KEY_F1", "F1", input.KEY_F1},
		{"KEY_F2", "F2", input.KEY_F2},
		{"KEY_F3", "F3", input.KEY_F3},
		{"KEY_F4", "F4", input.KEY_F4},
		{"KEY_F5", "F5", input.KEY_F5},
		{"KEY_F6", "F6", input.KEY_F6},
		{"KEY_F7", "F7", input.KEY_F7},
		{"KEY_F8", "F8", input.KEY_F8},
		{"KEY_F9", "F9", input.KEY_F9},
		{"KEY_F10", "F10", input.KEY_F10},
		{"KEY_F11", "F11", input.KEY_F11},
		{"KEY_F12", "F12", input.KEY_F12},
		{"KEY_F13", "F13", input.KEY_F13},
		{"KEY_F14", "F14", input.KEY_F14},
		{"KEY_F15", "F15", input.KEY_F15},
		{"KEY_F16", "F16", input.KEY_F16},
		{"KEY_F17", "F17", input.KEY_F17},
		{"KEY_F18", "F18", input.KEY_F18},
		{"KEY_F19", "F19", input.KEY_F19},
		{"KEY_F20", "F20", input.KEY_F20},
		{"KEY_F21", "F21", input.KEY_F21},
		{"KEY_F22", "F22", input.KEY_F22},
		{"KEY_F23", "F23", input.KEY_F23},
		{"KEY_F24", "F24", input.KEY_F24},

		// Media keys
		{"KEY_MUTE", "MUTE", input.KEY_MUTE},
		{"KEY_VOLUMEDOWN", "VOL_DOWN", input.KEY_VOLUMEDOWN},
		{"KEY_VOLUMEUP", "VOL_UP", input.KEY_VOLUMEUP},
		{"KEY_PLAYPAUSE", "PLAY_PAUSE", input.KEY_PLAYPAUSE},
		{"KEY_STOPCD", "STOP", input.KEY_STOPCD},
		{"KEY_PREVIOUSSONG", "PREV_TRACK", input.KEY_PREVIOUSSONG},
		{"KEY_NEXTSONG", "NEXT_TRACK", input.KEY_NEXTSONG},

		// Print screen / scroll lock / pause
		{"KEY_SYSRQ", "PRINT_SCREEN", input.KEY_SYSRQ},
		{"KEY_SCROLLLOCK", "SCROLL_LOCK", input.KEY_SCROLLLOCK},
		{"KEY_PAUSE", "PAUSE", input.KEY_PAUSE},

		// Numpad
		{"KEY_KP0", "NUM_0", input.KEY_KP0},
		{"KEY_KP1", "NUM_1", input.KEY_KP1},
		{"KEY_KP2", "NUM_2", input.KEY_KP2},
		{"KEY_KP3", "NUM_3", input.KEY_KP3},
		{"KEY_KP4", "NUM_4", input.KEY_KP4},
		{"KEY_KP5", "NUM_5", input.KEY_KP5},
		{"KEY_KP6", "NUM_6", input.KEY_KP6},
		{"KEY_KP7", "NUM_7", input.KEY_KP7},
		{"KEY_KP8", "NUM_8", input.KEY_KP8},
		{"KEY_KP9", "NUM_9", input.KEY_KP9},
		{"KEY_KPENTER", "NUM_ENTER", input.KEY_KPENTER},
		{"KEY_KPPLUS", "NUM_PLUS", input.KEY_KPPLUS},
		{"KEY_KPMINUS", "NUM_MINUS", input.KEY_KPMINUS},
		{"KEY_KPASTERISK", "NUM_MULT", input.KEY_KPASTERISK},
		{"KEY_KPSLASH", "NUM_DIV", input.KEY_KPSLASH},
		{"KEY_KPDOT", "NUM_DOT", input.KEY_KPDOT},
		{"KEY_NUMLOCK", "NUM_LOCK", input.KEY_NUMLOCK},

		// Punctuation
		{"KEY_MINUS", "MINUS", input.KEY_MINUS},
		{"KEY_EQUAL", "EQUAL", input.KEY_EQUAL},
		{"KEY_LEFTBRACE", "LBRACKET", input.KEY_LEFTBRACE},
		{"KEY_RIGHTBRACE", "RBRACKET", input.KEY_RIGHTBRACE},
		{"KEY_SEMICOLON", "SEMICOLON", input.KEY_SEMICOLON},
		{"KEY_APOSTROPHE", "APOSTROPHE", input.KEY_APOSTROPHE},
		{"KEY_GRAVE", "GRAVE", input.KEY_GRAVE},
		{"KEY_BACKSLASH", "BACKSLASH", input.KEY_BACKSLASH},
		{"KEY_COMMA", "COMMA", input.KEY_COMMA},
		{"KEY_DOT", "DOT", input.KEY_DOT},
		{"KEY_SLASH", "SLASH", input.KEY_SLASH},

		// Letters
		{"KEY_A", "A", input.KEY_A}, {"KEY_B", "B", input.KEY_B}, {"KEY_C", "C", input.KEY_C},
		{"KEY_D", "D", input.KEY_D}, {"KEY_E", "E", input.KEY_E}, {"KEY_F", "F", input.KEY_F},
		{"KEY_G", "G", input.KEY_G}, {"KEY_H", "H", input.KEY_H}, {"KEY_I", "I", input.KEY_I},
		{"KEY_J", "J", input.KEY_J}, {"KEY_K", "K", input.KEY_K}, {"KEY_L", "L", input.KEY_L},
		{"KEY_M", "M", input.KEY_M}, {"KEY_N", "N", input.KEY_N}, {"KEY_O", "O", input.KEY_O},
		{"KEY_P", "P", input.KEY_P}, {"KEY_Q", "Q", input.KEY_Q}, {"KEY_R", "R", input.KEY_R},
		{"KEY_S", "S", input.KEY_S}, {"KEY_T", "T", input.KEY_T}, {"KEY_U", "U", input.KEY_U},
		{"KEY_V", "V", input.KEY_V}, {"KEY_W", "W", input.KEY_W}, {"KEY_X", "X", input.KEY_X},
		{"KEY_Y", "Y", input.KEY_Y}, {"KEY_Z", "Z", input.KEY_Z},

		// Digits
		{"KEY_0", "0", input.KEY_0}, {"KEY_1", "1", input.KEY_1}, {"KEY_2", "2", input.KEY_2},
		{"KEY_3", "3", input.KEY_3}, {"KEY_4", "4", input.KEY_4}, {"KEY_5", "5", input.KEY_5},
		{"KEY_6", "6", input.KEY_6}, {"KEY_7", "7", input.KEY_7}, {"KEY_8", "8", input.KEY_8},
		{"KEY_9", "9", input.KEY_9},
	}

	evdevToSchema = make(map[string]profile.SchemaKey, len(entries))
	schemaToEvdev = make(map[profile.SchemaKey]string, len(entries)*2)
	schemaToNumeric = make(map[profile.SchemaKey]uint16, len(entries)*2)
	numericToSchema = make(map[uint16]profile.SchemaKey, len(entries))

	for _, e := range entries {
		evdevToSchema[e.evdevName] = e.schema
		schemaToEvdev[e.schema] = e.evdevName
		schemaToNumeric[e.schema] = e.numeric
		numericToSchema[e.numeric] = e.schema

		// The raw evdev name is always a valid schema key too, same as
		// the original mapping's fallback-to-identity behavior.
		if _, ok := schemaToEvdev[profile.SchemaKey(e.evdevName)]; !ok {
			schemaToEvdev[profile.SchemaKey(e.evdevName)] = e.evdevName
			schemaToNumeric[profile.SchemaKey(e.evdevName)] = e.numeric
		}
	}
}
