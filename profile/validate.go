package profile

import (
	"fmt"
)

// New constructs a Profile from its parts and validates it. The returned
// error, if any, is a *ValidationError wrapping ErrValidation.
func New(id, name string, devices []string, layers []Layer, macros map[string]MacroAction, isDefault bool) (*Profile, error) {
	var p *Profile

	p = &Profile{
		ID:           id,
		Name:         name,
		InputDevices: devices,
		Layers:       layers,
		Macros:       macros,
		IsDefault:    isDefault,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks p against every invariant a profile document must
// satisfy: unique layer IDs, a base layer, unique binding input codes per
// layer, resolvable macro references, and well-formed macro scripts. It
// returns the first violation found, wrapped as *ValidationError.
func (p *Profile) Validate() error {
	var (
		seenLayers = make(map[string]struct{}, len(p.Layers))
		haveBase   bool
		layer      Layer
		err        error
	)

	for _, layer = range p.Layers {
		if layer.ID == "" {
			return p.fieldError("layers[].id", "layer id must not be empty")
		}

		if _, ok := seenLayers[layer.ID]; ok {
			return p.fieldError(fmt.Sprintf("layers[%s].id", layer.ID), "duplicate layer id")
		}

		seenLayers[layer.ID] = struct{}{}

		if layer.ID == BaseLayerID {
			haveBase = true
		}

		err = p.validateLayer(layer)
		if err != nil {
			return err
		}
	}

	if !haveBase {
		return p.fieldError("layers", fmt.Sprintf("profile must define a %q layer", BaseLayerID))
	}

	for _, macro := range p.Macros {
		err = p.validateMacro(macro)
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *Profile) validateLayer(layer Layer) error {
	var (
		code    SchemaKey
		binding Binding
		err     error
	)

	for code, binding = range layer.Bindings {
		if binding.InputCode != code {
			return p.fieldError(
				fmt.Sprintf("layers[%s].bindings[%s].input_code", layer.ID, code),
				"binding input_code must match its map key",
			)
		}

		err = p.validateBinding(layer, binding)
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *Profile) validateBinding(layer Layer, binding Binding) error {
	var field = fmt.Sprintf("layers[%s].bindings[%s]", layer.ID, binding.InputCode)

	switch binding.Action {
	case ActionKey, ActionChord:
		if len(binding.OutputKeys) == 0 {
			return p.fieldError(field+".output_keys", "KEY and CHORD bindings require at least one output key")
		}
	case ActionMacro:
		if binding.MacroID == "" {
			return p.fieldError(field+".macro_id", "MACRO bindings require a macro_id")
		}

		macro, ok := p.Macros[binding.MacroID]
		if !ok {
			return p.fieldError(field+".macro_id", fmt.Sprintf("no macro named %q in this profile", binding.MacroID))
		}

		return p.validateMacro(macro)
	case ActionPassthrough, ActionDisabled:
		// no additional fields required
	default:
		return p.fieldError(field+".action", fmt.Sprintf("unknown action type %d", binding.Action))
	}

	return nil
}

func (p *Profile) validateMacro(macro MacroAction) error {
	var (
		field = fmt.Sprintf("macros[%s]", macro.ID)
		err   error
	)

	if macro.RepeatCount < 1 {
		return p.fieldError(field+".repeat_count", "repeat_count must be >= 1")
	}

	for i, step := range macro.Steps {
		err = p.validateStep(fmt.Sprintf("%s.steps[%d]", field, i), step)
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *Profile) validateStep(field string, step MacroStep) error {
	switch step.Kind {
	case StepKeyDown, StepKeyUp, StepKeyPress:
		if step.Key == "" {
			return p.fieldError(field+".key", "key step requires a key")
		}
	case StepDelay:
		// DelayMS is unsigned; zero is valid (a no-op delay).
	case StepText:
		if step.Text == "" {
			return p.fieldError(field+".text", "text step requires non-empty text")
		}
	default:
		return p.fieldError(field+".kind", fmt.Sprintf("unknown macro step kind %d", step.Kind))
	}

	return nil
}
