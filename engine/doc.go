// Package engine implements the remap engine: a deterministic state
// machine translating physical key/button events into remapped output
// events (single key, chord, macro, layer switch, passthrough, or
// disabled), with press/release bookkeeping that survives layer changes
// between a key's press and its release.
package engine
