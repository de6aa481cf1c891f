package profilestore

import (
	"sort"

	"github.com/kbswitch/remapd/profile"
)

// bindingDoc is the on-disk shape of a profile.Binding.
type bindingDoc struct {
	InputCode  string   `yaml:"input_code"`
	Action     string   `yaml:"action"`
	OutputKeys []string `yaml:"output_keys,omitempty"`
	MacroID    string   `yaml:"macro_id,omitempty"`
}

// layerDoc is the on-disk shape of a profile.Layer.
type layerDoc struct {
	ID           string       `yaml:"id"`
	Name         string       `yaml:"name"`
	HoldModifier string       `yaml:"hold_modifier,omitempty"`
	Bindings     []bindingDoc `yaml:"bindings"`
}

// macroStepDoc is the on-disk shape of a profile.MacroStep.
type macroStepDoc struct {
	Kind    string `yaml:"kind"`
	Key     string `yaml:"key,omitempty"`
	DelayMS uint   `yaml:"delay_ms,omitempty"`
	Text    string `yaml:"text,omitempty"`
}

// macroDoc is the on-disk shape of a profile.MacroAction.
type macroDoc struct {
	ID            string         `yaml:"id"`
	Name          string         `yaml:"name"`
	Steps         []macroStepDoc `yaml:"steps"`
	RepeatCount   uint           `yaml:"repeat_count"`
	RepeatDelayMS uint           `yaml:"repeat_delay_ms,omitempty"`
}

// document is the on-disk shape of a profile.Profile: one YAML file per
// profile under the store's config directory.
type document struct {
	ID           string     `yaml:"id"`
	Name         string     `yaml:"name"`
	InputDevices []string   `yaml:"input_devices"`
	Layers       []layerDoc `yaml:"layers"`
	Macros       []macroDoc `yaml:"macros,omitempty"`
	IsDefault    bool       `yaml:"is_default,omitempty"`
}

var actionNames = map[profile.ActionType]string{
	profile.ActionKey:         "KEY",
	profile.ActionChord:       "CHORD",
	profile.ActionMacro:       "MACRO",
	profile.ActionPassthrough: "PASSTHROUGH",
	profile.ActionDisabled:    "DISABLED",
}

var actionValues = map[string]profile.ActionType{
	"KEY":         profile.ActionKey,
	"CHORD":       profile.ActionChord,
	"MACRO":       profile.ActionMacro,
	"PASSTHROUGH": profile.ActionPassthrough,
	"DISABLED":    profile.ActionDisabled,
}

var stepKindNames = map[profile.MacroStepKind]string{
	profile.StepKeyDown:  "KEY_DOWN",
	profile.StepKeyUp:    "KEY_UP",
	profile.StepKeyPress: "KEY_PRESS",
	profile.StepDelay:    "DELAY",
	profile.StepText:     "TEXT",
}

var stepKindValues = map[string]profile.MacroStepKind{
	"KEY_DOWN":  profile.StepKeyDown,
	"KEY_UP":    profile.StepKeyUp,
	"KEY_PRESS": profile.StepKeyPress,
	"DELAY":     profile.StepDelay,
	"TEXT":      profile.StepText,
}

func schemaKeys(ss []string) []profile.SchemaKey {
	var keys []profile.SchemaKey

	for _, s := range ss {
		keys = append(keys, profile.Canon(s))
	}

	return keys
}

func stringKeys(ks []profile.SchemaKey) []string {
	var ss []string

	for _, k := range ks {
		ss = append(ss, string(k))
	}

	return ss
}

func toDocument(p *profile.Profile) document {
	var doc document

	doc.ID = p.ID
	doc.Name = p.Name
	doc.InputDevices = p.InputDevices
	doc.IsDefault = p.IsDefault

	for _, layer := range p.Layers {
		var ld layerDoc

		ld.ID = layer.ID
		ld.Name = layer.Name
		ld.HoldModifier = string(layer.HoldModifier)

		for _, binding := range layer.Bindings {
			ld.Bindings = append(ld.Bindings, bindingDoc{
				InputCode:  string(binding.InputCode),
				Action:     actionNames[binding.Action],
				OutputKeys: stringKeys(binding.OutputKeys),
				MacroID:    binding.MacroID,
			})
		}

		doc.Layers = append(doc.Layers, ld)
	}

	for _, id := range sortedMacroIDs(p.Macros) {
		macroAction := p.Macros[id]

		var md macroDoc

		md.ID = macroAction.ID
		md.Name = macroAction.Name
		md.RepeatCount = macroAction.RepeatCount
		md.RepeatDelayMS = macroAction.RepeatDelayMS

		for _, step := range macroAction.Steps {
			md.Steps = append(md.Steps, macroStepDoc{
				Kind:    stepKindNames[step.Kind],
				Key:     string(step.Key),
				DelayMS: step.DelayMS,
				Text:    step.Text,
			})
		}

		doc.Macros = append(doc.Macros, md)
	}

	return doc
}

func fromDocument(doc document) (*profile.Profile, error) {
	var (
		layers []profile.Layer
		macros map[string]profile.MacroAction
	)

	for _, ld := range doc.Layers {
		bindings := make(map[profile.SchemaKey]profile.Binding, len(ld.Bindings))

		for _, bd := range ld.Bindings {
			code := profile.Canon(bd.InputCode)

			bindings[code] = profile.Binding{
				InputCode:  code,
				Action:     actionValues[bd.Action],
				OutputKeys: schemaKeys(bd.OutputKeys),
				MacroID:    bd.MacroID,
			}
		}

		layers = append(layers, profile.Layer{
			ID:           ld.ID,
			Name:         ld.Name,
			Bindings:     bindings,
			HoldModifier: profile.Canon(ld.HoldModifier),
		})
	}

	if len(doc.Macros) > 0 {
		macros = make(map[string]profile.MacroAction, len(doc.Macros))
	}

	for _, md := range doc.Macros {
		var steps []profile.MacroStep

		for _, sd := range md.Steps {
			steps = append(steps, profile.MacroStep{
				Kind:    stepKindValues[sd.Kind],
				Key:     profile.Canon(sd.Key),
				DelayMS: sd.DelayMS,
				Text:    sd.Text,
			})
		}

		macros[md.ID] = profile.MacroAction{
			ID:            md.ID,
			Name:          md.Name,
			Steps:         steps,
			RepeatCount:   md.RepeatCount,
			RepeatDelayMS: md.RepeatDelayMS,
		}
	}

	return profile.New(doc.ID, doc.Name, doc.InputDevices, layers, macros, doc.IsDefault)
}

func sortedMacroIDs(macros map[string]profile.MacroAction) []string {
	ids := make([]string, 0, len(macros))

	for id := range macros {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}
