package engine

import (
	"github.com/kbswitch/remapd/keycode"
	"github.com/kbswitch/remapd/linux/input"
	"github.com/kbswitch/remapd/profile"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("package", "engine")

// Engine is the central remap state machine. It is built from a Profile
// and an output Sink, and processes one InputEvent at a time.
type Engine struct {
	profile *profile.Profile
	state   *KeyState
	sink    Sink

	bindings       map[string]map[uint16]profile.Binding
	layerModifiers map[uint16]string
}

// New builds an Engine from p, resolving every binding's schema keys to
// numeric codes and rebuilding the layer lookup tables.
func New(p *profile.Profile) (*Engine, error) {
	var e *Engine

	e = &Engine{
		profile: p,
		state:   newKeyState(),
	}

	e.buildLookupTables()

	return e, nil
}

// SetSink installs the output sink the engine writes remapped events to.
func (e *Engine) SetSink(s Sink) {
	e.sink = s
}

// LayerInfo reports the active layer id and every layer id available in
// the current profile, for observability.
func (e *Engine) LayerInfo() (active string, available []string) {
	available = make([]string, 0, len(e.profile.Layers))

	for _, layer := range e.profile.Layers {
		available = append(available, layer.ID)
	}

	return e.state.ActiveLayer, available
}

func (e *Engine) buildLookupTables() {
	var (
		layer   profile.Layer
		code    profile.SchemaKey
		binding profile.Binding
		warned  = make(map[string]struct{})
	)

	e.bindings = make(map[string]map[uint16]profile.Binding, len(e.profile.Layers))
	e.layerModifiers = make(map[uint16]string)

	for _, layer = range e.profile.Layers {
		layerBindings := make(map[uint16]profile.Binding, len(layer.Bindings))

		for code, binding = range layer.Bindings {
			numeric, ok := keycode.SchemaToNumericCode(code)
			if !ok {
				e.warnUnresolved(warned, string(code))
				continue
			}

			layerBindings[numeric] = binding
		}

		e.bindings[layer.ID] = layerBindings

		if layer.HoldModifier != "" {
			numeric, ok := keycode.SchemaToNumericCode(layer.HoldModifier)
			if !ok {
				e.warnUnresolved(warned, string(layer.HoldModifier))
				continue
			}

			e.layerModifiers[numeric] = layer.ID
		}
	}
}

func (e *Engine) warnUnresolved(warned map[string]struct{}, key string) {
	if _, ok := warned[key]; ok {
		return
	}

	warned[key] = struct{}{}
	log.WithError(ErrBindingResolve).Warnf("binding key %q is inert this reload", key)
}

// ProcessEvent is the engine's single entry point. It returns true if ev
// was consumed (the caller must not forward it to the sink) and false if
// ev should be passed through unchanged.
func (e *Engine) ProcessEvent(ev InputEvent) bool {
	if ev.Type != input.EV_KEY {
		return false
	}

	if layerID, ok := e.layerModifiers[ev.Code]; ok {
		e.handleLayerModifier(ev, layerID)
		return true
	}

	// A code that fired on press keeps the binding it fired with until
	// release, no matter which layer is active by the time release
	// arrives. resolve() reflects the current layer, not the one active
	// at press time.
	if ev.Value == ValueUp || ev.Value == ValueRepeat {
		if active, had := e.state.ActiveBindings[ev.Code]; had {
			if ev.Value == ValueUp {
				delete(e.state.PhysicalPressed, ev.Code)
				delete(e.state.ActiveBindings, ev.Code)
				e.handleBindingUp(active)
			}

			return true
		}
	}

	binding, ok := e.resolve(ev.Code)
	if !ok {
		return false
	}

	switch ev.Value {
	case ValueDown:
		e.state.PhysicalPressed[ev.Code] = struct{}{}
		e.state.ActiveBindings[ev.Code] = binding
		e.handleBindingDown(binding)
	case ValueUp:
		delete(e.state.PhysicalPressed, ev.Code)
	case ValueRepeat:
		// swallowed: no re-trigger on autorepeat
	}

	return true
}

func (e *Engine) handleLayerModifier(ev InputEvent, layerID string) {
	switch ev.Value {
	case ValueDown:
		e.state.ActiveLayer = layerID
		code := ev.Code
		e.state.LayerModifierHeld = &code
		e.state.PhysicalPressed[ev.Code] = struct{}{}
	case ValueUp:
		if e.state.LayerModifierHeld != nil && *e.state.LayerModifierHeld == ev.Code {
			e.state.LayerModifierHeld = nil
			e.state.ActiveLayer = profile.BaseLayerID
		}

		delete(e.state.PhysicalPressed, ev.Code)
	case ValueRepeat:
		// swallowed
	}
}

func (e *Engine) resolve(code uint16) (profile.Binding, bool) {
	var (
		layerBindings map[uint16]profile.Binding
		binding       profile.Binding
		ok            bool
	)

	layerBindings, ok = e.bindings[e.state.ActiveLayer]
	if ok {
		binding, ok = layerBindings[code]
		if ok {
			return binding, true
		}
	}

	if e.state.ActiveLayer == profile.BaseLayerID {
		return profile.Binding{}, false
	}

	layerBindings, ok = e.bindings[profile.BaseLayerID]
	if !ok {
		return profile.Binding{}, false
	}

	binding, ok = layerBindings[code]

	return binding, ok
}

func (e *Engine) handleBindingDown(binding profile.Binding) {
	switch binding.Action {
	case profile.ActionPassthrough:
		e.emitResolved(binding.InputCode, ValueDown)
	case profile.ActionKey:
		if len(binding.OutputKeys) > 0 {
			e.emitResolved(binding.OutputKeys[0], ValueDown)
		}
	case profile.ActionChord:
		for _, key := range binding.OutputKeys {
			e.emitResolved(key, ValueDown)
		}
	case profile.ActionMacro:
		if macro, ok := e.profile.Macros[binding.MacroID]; ok {
			e.executeMacro(macro)
		}
	case profile.ActionDisabled:
		// consumed, nothing emitted
	}
}

func (e *Engine) handleBindingUp(binding profile.Binding) {
	switch binding.Action {
	case profile.ActionPassthrough:
		e.emitResolved(binding.InputCode, ValueUp)
	case profile.ActionKey:
		if len(binding.OutputKeys) > 0 {
			e.emitResolved(binding.OutputKeys[0], ValueUp)
		}
	case profile.ActionChord:
		for i := len(binding.OutputKeys) - 1; i >= 0; i-- {
			e.emitResolved(binding.OutputKeys[i], ValueUp)
		}
	case profile.ActionMacro, profile.ActionDisabled:
		// no release-side effect
	}
}

func (e *Engine) emitResolved(key profile.SchemaKey, value int32) {
	code, ok := keycode.SchemaToNumericCode(key)
	if !ok {
		return
	}

	e.emit(code, value)
}

// emit writes one key event to the sink, maintaining OutputHeld so the
// engine never asserts a duplicate down or releases a code it doesn't
// hold.
func (e *Engine) emit(code uint16, value int32) {
	switch value {
	case ValueDown:
		if e.state.OutputHeld[code] > 0 {
			return
		}

		e.state.OutputHeld[code]++
	case ValueUp:
		if e.state.OutputHeld[code] <= 0 {
			return
		}

		e.state.OutputHeld[code]--
		if e.state.OutputHeld[code] == 0 {
			delete(e.state.OutputHeld, code)
		}
	}

	if e.sink == nil {
		return
	}

	if err := e.sink.Emit(input.EV_KEY, code, value); err != nil {
		log.WithError(err).Warn("sink emit failed")
		return
	}

	if err := e.sink.Sync(); err != nil {
		log.WithError(err).Warn("sink sync failed")
	}
}

// ReleaseAllKeys emits up for every code in OutputHeld and clears the
// engine's press-tracking state.
func (e *Engine) ReleaseAllKeys() {
	for code, count := range e.state.OutputHeld {
		for ; count > 0; count-- {
			if e.sink != nil {
				if err := e.sink.Emit(input.EV_KEY, code, ValueUp); err != nil {
					log.WithError(err).Warn("sink emit failed during release")
				} else if err := e.sink.Sync(); err != nil {
					log.WithError(err).Warn("sink sync failed during release")
				}
			}
		}
	}

	e.state.OutputHeld = make(map[uint16]int)
	e.state.ActiveBindings = make(map[uint16]profile.Binding)
	e.state.PhysicalPressed = make(map[uint16]struct{})
	e.state.ActiveLayer = profile.BaseLayerID
	e.state.LayerModifierHeld = nil
}

// ReloadProfile releases every currently held output, swaps in p, and
// rebuilds the lookup tables. The active layer resets to "base".
func (e *Engine) ReloadProfile(p *profile.Profile) error {
	e.ReleaseAllKeys()
	e.profile = p
	e.buildLookupTables()

	return nil
}
