package profile

// SchemaKey is an opaque, case-insensitive-on-input key name drawn from the
// closed set described in the profile document schema (letters, digits,
// modifiers, arrows, function keys, media keys, numpad, punctuation, mouse
// buttons, or a raw kernel KEY_*/BTN_* name). Profiles loaded from a
// document have every SchemaKey canonicalized to upper case via [Canon];
// [New] stores keys as given.
type SchemaKey string

// ActionType is the action a Binding performs when its input code fires.
type ActionType int

const (
	// ActionKey emits a single output key.
	ActionKey ActionType = iota

	// ActionChord emits multiple output keys together, in order on press
	// and reverse order on release.
	ActionChord

	// ActionMacro runs a MacroAction to completion on press.
	ActionMacro

	// ActionPassthrough re-emits the physical input code unchanged.
	ActionPassthrough

	// ActionDisabled consumes the event and emits nothing.
	ActionDisabled
)

// String returns the schema document spelling of a.
func (a ActionType) String() string {
	switch a {
	case ActionKey:
		return "KEY"
	case ActionChord:
		return "CHORD"
	case ActionMacro:
		return "MACRO"
	case ActionPassthrough:
		return "PASSTHROUGH"
	case ActionDisabled:
		return "DISABLED"
	default:
		return "UNKNOWN"
	}
}

// Binding maps one physical input code to one output action.
type Binding struct {
	// InputCode is the schema key name of the physical key or button that
	// triggers this binding.
	InputCode SchemaKey

	// Action selects which effect firing this binding has.
	Action ActionType

	// OutputKeys is the ordered sequence of schema key names emitted by
	// KEY (first element only) and CHORD (full sequence) bindings.
	OutputKeys []SchemaKey

	// MacroID names the MacroAction to run, for ActionMacro bindings.
	MacroID string
}

// Layer is a named set of bindings, keyed by input code, optionally gated
// by a hold modifier (a "shift layer" / Hypershift layer).
type Layer struct {
	// ID uniquely identifies the layer within a Profile. The layer with
	// ID "base" is the always-on fallback and must exist in every profile.
	ID string

	// Name is a human-readable label.
	Name string

	// Bindings holds this layer's bindings, keyed by InputCode.
	Bindings map[SchemaKey]Binding

	// HoldModifier is the schema key name that, while held, activates this
	// layer. Empty means this layer is not a shift layer (only "base"
	// should leave this empty; it's meaningless for "base" anyway since
	// base is always active).
	HoldModifier SchemaKey
}

// BaseLayerID is the identifier every Profile's always-on fallback layer
// must use.
const BaseLayerID = "base"

// MacroStepKind tags the variant a MacroStep holds.
type MacroStepKind int

const (
	// StepKeyDown emits a single key-down event.
	StepKeyDown MacroStepKind = iota

	// StepKeyUp emits a single key-up event.
	StepKeyUp

	// StepKeyPress emits a key-down, a brief pause, then a key-up.
	StepKeyPress

	// StepDelay pauses execution for a fixed duration.
	StepDelay

	// StepText types a short ASCII string, letter by letter.
	StepText
)

// MacroStep is one instruction of a MacroAction's script.
type MacroStep struct {
	// Kind selects which field(s) below are meaningful.
	Kind MacroStepKind

	// Key is the schema key name for StepKeyDown/StepKeyUp/StepKeyPress.
	Key SchemaKey

	// DelayMS is the pause duration in milliseconds for StepDelay.
	DelayMS uint

	// Text is the literal string to type for StepText.
	Text string
}

// MacroAction is a named, repeatable script of MacroSteps.
type MacroAction struct {
	// ID uniquely identifies the macro within a Profile's Macros map.
	ID string

	// Name is a human-readable label.
	Name string

	// Steps is the ordered script executed on every repetition.
	Steps []MacroStep

	// RepeatCount is the number of times Steps runs; must be >= 1.
	RepeatCount uint

	// RepeatDelayMS is the pause between repetitions (not after the last).
	RepeatDelayMS uint
}

// Profile is the complete, immutable remap configuration for a set of
// physical devices: the layers that define its bindings and the macros
// its MACRO bindings may reference.
type Profile struct {
	// ID uniquely identifies the profile in a ProfileStore.
	ID string

	// Name is a human-readable label.
	Name string

	// InputDevices lists the stable device identifiers this profile
	// expects to grab, in the order they should be acquired.
	InputDevices []string

	// Layers holds this profile's layers, in declaration order. A layer
	// named BaseLayerID must be present.
	Layers []Layer

	// Macros maps macro ID to MacroAction for every macro any Binding in
	// Layers may reference.
	Macros map[string]MacroAction

	// IsDefault marks this as the profile a fresh config_dir falls back
	// to when no active pointer has been set yet.
	IsDefault bool
}

// Layer looks up a layer by ID.
func (p *Profile) Layer(id string) (Layer, bool) {
	for _, layer := range p.Layers {
		if layer.ID == id {
			return layer, true
		}
	}

	return Layer{}, false
}
