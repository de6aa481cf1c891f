package engine

import (
	"github.com/kbswitch/remapd/profile"
)

// InputEvent is the numeric-code view of a single key/button event that
// reaches the engine. The daemon decodes raw kernel input_event structs
// into this at the dispatch boundary.
type InputEvent struct {
	Type  uint16
	Code  uint16
	Value int32
}

// Key event values, mirroring the kernel's EV_KEY semantics.
const (
	ValueUp     int32 = 0
	ValueDown   int32 = 1
	ValueRepeat int32 = 2
)

// Sink is the output side the engine writes remapped events to: the
// virtual device, in production, or a recording fake in tests.
type Sink interface {
	Emit(evType, code uint16, value int32) error
	Sync() error
}

// KeyState is the engine's entire mutable state. It is not safe for
// concurrent use; the dispatch thread is the sole mutator.
type KeyState struct {
	// ActiveLayer is the currently selected layer id, "base" when no
	// shift layer is held.
	ActiveLayer string

	// PhysicalPressed holds every physical numeric code currently down.
	PhysicalPressed map[uint16]struct{}

	// ActiveBindings remembers, per physical code, the Binding that fired
	// on its most recent press — used again on release regardless of
	// which layer is active by then.
	ActiveBindings map[uint16]profile.Binding

	// OutputHeld is a multiset of numeric output codes currently
	// asserted by this engine, keyed by code with a hold count.
	OutputHeld map[uint16]int

	// LayerModifierHeld is the physical numeric code of the layer
	// modifier currently held, if any.
	LayerModifierHeld *uint16
}

func newKeyState() *KeyState {
	return &KeyState{
		ActiveLayer:     profile.BaseLayerID,
		PhysicalPressed: make(map[uint16]struct{}),
		ActiveBindings:  make(map[uint16]profile.Binding),
		OutputHeld:      make(map[uint16]int),
	}
}
