package profile

import (
	"errors"
	"testing"
)

func simpleProfile() *Profile {
	return &Profile{
		ID:   "simple",
		Name: "Simple",
		Layers: []Layer{
			{
				ID:   BaseLayerID,
				Name: "Base",
				Bindings: map[SchemaKey]Binding{
					"KEY_A": {InputCode: "KEY_A", Action: ActionKey, OutputKeys: []SchemaKey{"KEY_B"}},
				},
			},
		},
	}
}

func hypershiftProfile() *Profile {
	return &Profile{
		ID:   "hypershift",
		Name: "Hypershift",
		Layers: []Layer{
			{
				ID:   BaseLayerID,
				Name: "Base",
				Bindings: map[SchemaKey]Binding{
					"KEY_CAPSLOCK": {InputCode: "KEY_CAPSLOCK", Action: ActionDisabled},
				},
			},
			{
				ID:           "nav",
				Name:         "Navigation",
				HoldModifier: "KEY_CAPSLOCK",
				Bindings: map[SchemaKey]Binding{
					"KEY_H": {InputCode: "KEY_H", Action: ActionKey, OutputKeys: []SchemaKey{"KEY_LEFT"}},
					"KEY_J": {InputCode: "KEY_J", Action: ActionKey, OutputKeys: []SchemaKey{"KEY_DOWN"}},
				},
			},
		},
	}
}

func macroProfile() *Profile {
	return &Profile{
		ID:   "macro",
		Name: "Macro",
		Layers: []Layer{
			{
				ID:   BaseLayerID,
				Name: "Base",
				Bindings: map[SchemaKey]Binding{
					"KEY_F1": {InputCode: "KEY_F1", Action: ActionMacro, MacroID: "greet"},
				},
			},
		},
		Macros: map[string]MacroAction{
			"greet": {
				ID:          "greet",
				Name:        "Greet",
				RepeatCount: 1,
				Steps: []MacroStep{
					{Kind: StepText, Text: "hi"},
					{Kind: StepDelay, DelayMS: 50},
				},
			},
		},
	}
}

func TestValidateAccepts(t *testing.T) {
	tests := []struct {
		name    string
		profile *Profile
	}{
		{"simple", simpleProfile()},
		{"hypershift", hypershiftProfile()},
		{"macro", macroProfile()},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			if err := tt.profile.Validate(); err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Profile)
		wantErr string
	}{
		{
			name: "missing base layer",
			mutate: func(p *Profile) {
				p.Layers[0].ID = "not-base"
			},
		},
		{
			name: "duplicate layer id",
			mutate: func(p *Profile) {
				p.Layers = append(p.Layers, p.Layers[0])
			},
		},
		{
			name: "binding key mismatch",
			mutate: func(p *Profile) {
				p.Layers[0].Bindings["KEY_A"] = Binding{InputCode: "KEY_WRONG", Action: ActionKey, OutputKeys: []SchemaKey{"KEY_B"}}
			},
		},
		{
			name: "key binding without output",
			mutate: func(p *Profile) {
				p.Layers[0].Bindings["KEY_A"] = Binding{InputCode: "KEY_A", Action: ActionKey}
			},
		},
		{
			name: "macro binding without macro_id",
			mutate: func(p *Profile) {
				p.Layers[0].Bindings["KEY_A"] = Binding{InputCode: "KEY_A", Action: ActionMacro}
			},
		},
		{
			name: "macro binding referencing unknown macro",
			mutate: func(p *Profile) {
				p.Layers[0].Bindings["KEY_A"] = Binding{InputCode: "KEY_A", Action: ActionMacro, MacroID: "missing"}
			},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			p := simpleProfile()
			tt.mutate(p)

			err := p.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}

			if !errors.Is(err, ErrValidation) {
				t.Fatalf("errors.Is(err, ErrValidation) = false, err = %v", err)
			}
		})
	}
}

func TestMacroValidatesBadRepeatCount(t *testing.T) {
	p := macroProfile()
	macro := p.Macros["greet"]
	macro.RepeatCount = 0
	p.Macros["greet"] = macro

	if err := p.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("Validate() = %v, want ErrValidation", err)
	}
}

func TestLayerLookup(t *testing.T) {
	p := hypershiftProfile()

	layer, ok := p.Layer("nav")
	if !ok {
		t.Fatal("Layer(\"nav\") not found")
	}

	if layer.HoldModifier != "KEY_CAPSLOCK" {
		t.Fatalf("HoldModifier = %q, want KEY_CAPSLOCK", layer.HoldModifier)
	}

	if _, ok = p.Layer("missing"); ok {
		t.Fatal("Layer(\"missing\") found, want not found")
	}
}

func TestCanon(t *testing.T) {
	tests := []struct {
		in   string
		want SchemaKey
	}{
		{"key_a", "KEY_A"},
		{" KEY_A ", "KEY_A"},
		{"Key_Left", "KEY_LEFT"},
	}

	for _, tt := range tests {
		if got := Canon(tt.in); got != tt.want {
			t.Errorf("Canon(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
