// Package keycode translates between kernel evdev/uinput numeric key codes
// and the portable, human-readable schema key names used in profile
// documents (e.g. numeric code 30 <-> evdev name "KEY_A" <-> schema name
// "A"). The tables are built once in init and never mutated afterward, so
// lookups are safe for concurrent use without locking.
package keycode
