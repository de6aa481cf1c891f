package engine

import (
	"testing"

	"github.com/kbswitch/remapd/linux/input"
	"github.com/kbswitch/remapd/profile"
)

type recordedEmit struct {
	code  uint16
	value int32
}

type fakeSink struct {
	emits []recordedEmit
}

func (f *fakeSink) Emit(evType, code uint16, value int32) error {
	f.emits = append(f.emits, recordedEmit{code: code, value: value})
	return nil
}

func (f *fakeSink) Sync() error {
	return nil
}

func newTestEngine(t *testing.T, p *profile.Profile) (*Engine, *fakeSink) {
	t.Helper()

	e, err := New(p)
	if err != nil {
		t.Fatalf("New() = %v, want nil", err)
	}

	sink := &fakeSink{}
	e.SetSink(sink)

	return e, sink
}

func TestSimpleKeyRemap(t *testing.T) {
	p := &profile.Profile{
		ID: "s1",
		Layers: []profile.Layer{
			{
				ID: profile.BaseLayerID,
				Bindings: map[profile.SchemaKey]profile.Binding{
					"BTN_SIDE": {InputCode: "BTN_SIDE", Action: profile.ActionKey, OutputKeys: []profile.SchemaKey{"A"}},
				},
			},
		},
	}

	e, sink := newTestEngine(t, p)

	if !e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_SIDE, Value: ValueDown}) {
		t.Fatal("press not handled")
	}

	if !e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_SIDE, Value: ValueUp}) {
		t.Fatal("release not handled")
	}

	want := []recordedEmit{{input.KEY_A, ValueDown}, {input.KEY_A, ValueUp}}
	assertEmits(t, sink.emits, want)
}

func TestChordOrder(t *testing.T) {
	p := &profile.Profile{
		ID: "s2",
		Layers: []profile.Layer{
			{
				ID: profile.BaseLayerID,
				Bindings: map[profile.SchemaKey]profile.Binding{
					"BTN_EXTRA": {InputCode: "BTN_EXTRA", Action: profile.ActionChord, OutputKeys: []profile.SchemaKey{"CTRL", "C"}},
				},
			},
		},
	}

	e, sink := newTestEngine(t, p)

	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_EXTRA, Value: ValueDown})
	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_EXTRA, Value: ValueUp})

	want := []recordedEmit{
		{input.KEY_LEFTCTRL, ValueDown},
		{input.KEY_C, ValueDown},
		{input.KEY_C, ValueUp},
		{input.KEY_LEFTCTRL, ValueUp},
	}
	assertEmits(t, sink.emits, want)
}

func hypershiftTestProfile() *profile.Profile {
	return &profile.Profile{
		ID: "s3",
		Layers: []profile.Layer{
			{
				ID: profile.BaseLayerID,
				Bindings: map[profile.SchemaKey]profile.Binding{
					"BTN_SIDE": {InputCode: "BTN_SIDE", Action: profile.ActionKey, OutputKeys: []profile.SchemaKey{"A"}},
				},
			},
			{
				ID:           "shift",
				HoldModifier: "BTN_EXTRA",
				Bindings: map[profile.SchemaKey]profile.Binding{
					"BTN_SIDE": {InputCode: "BTN_SIDE", Action: profile.ActionKey, OutputKeys: []profile.SchemaKey{"B"}},
				},
			},
		},
	}
}

func TestHypershiftLayer(t *testing.T) {
	p := hypershiftTestProfile()
	e, sink := newTestEngine(t, p)

	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_EXTRA, Value: ValueDown})

	active, _ := e.LayerInfo()
	if active != "shift" {
		t.Fatalf("active layer = %q, want shift", active)
	}

	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_SIDE, Value: ValueDown})
	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_SIDE, Value: ValueUp})
	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_EXTRA, Value: ValueUp})

	active, _ = e.LayerInfo()
	if active != profile.BaseLayerID {
		t.Fatalf("active layer after release = %q, want base", active)
	}

	want := []recordedEmit{{input.KEY_B, ValueDown}, {input.KEY_B, ValueUp}}
	assertEmits(t, sink.emits, want)
}

func TestLayerSwitchMidPress(t *testing.T) {
	p := hypershiftTestProfile()
	e, sink := newTestEngine(t, p)

	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_SIDE, Value: ValueDown})
	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_EXTRA, Value: ValueDown})
	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_SIDE, Value: ValueUp})
	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_EXTRA, Value: ValueUp})

	want := []recordedEmit{{input.KEY_A, ValueDown}, {input.KEY_A, ValueUp}}
	assertEmits(t, sink.emits, want)
}

func TestDisabledVsPassthrough(t *testing.T) {
	p := &profile.Profile{
		ID: "s5",
		Layers: []profile.Layer{
			{
				ID: profile.BaseLayerID,
				Bindings: map[profile.SchemaKey]profile.Binding{
					"BTN_FORWARD": {InputCode: "BTN_FORWARD", Action: profile.ActionDisabled},
					"BTN_BACK":    {InputCode: "BTN_BACK", Action: profile.ActionPassthrough},
				},
			},
		},
	}

	e, sink := newTestEngine(t, p)

	events := []InputEvent{
		{Type: input.EV_KEY, Code: input.BTN_FORWARD, Value: ValueDown},
		{Type: input.EV_KEY, Code: input.BTN_FORWARD, Value: ValueUp},
		{Type: input.EV_KEY, Code: input.BTN_BACK, Value: ValueDown},
		{Type: input.EV_KEY, Code: input.BTN_BACK, Value: ValueUp},
	}

	for _, ev := range events {
		if !e.ProcessEvent(ev) {
			t.Fatalf("event %+v not handled", ev)
		}
	}

	want := []recordedEmit{{input.BTN_BACK, ValueDown}, {input.BTN_BACK, ValueUp}}
	assertEmits(t, sink.emits, want)
}

func TestNonKeyEventPassesThrough(t *testing.T) {
	e, _ := newTestEngine(t, &profile.Profile{
		ID:     "s-rel",
		Layers: []profile.Layer{{ID: profile.BaseLayerID, Bindings: map[profile.SchemaKey]profile.Binding{}}},
	})

	if e.ProcessEvent(InputEvent{Type: input.EV_REL, Code: 0, Value: 5}) {
		t.Fatal("non-key event should not be handled")
	}
}

func TestOutputHeldIdempotentAndGhostFree(t *testing.T) {
	p := &profile.Profile{
		ID: "idempotent",
		Layers: []profile.Layer{
			{
				ID: profile.BaseLayerID,
				Bindings: map[profile.SchemaKey]profile.Binding{
					"BTN_SIDE":  {InputCode: "BTN_SIDE", Action: profile.ActionKey, OutputKeys: []profile.SchemaKey{"A"}},
					"BTN_EXTRA": {InputCode: "BTN_EXTRA", Action: profile.ActionKey, OutputKeys: []profile.SchemaKey{"A"}},
				},
			},
		},
	}

	e, sink := newTestEngine(t, p)

	// Both bindings emit down(A); the second down must be suppressed
	// since A is already held.
	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_SIDE, Value: ValueDown})
	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_EXTRA, Value: ValueDown})

	// The suppressed second down left A's hold count at 1, so releasing
	// BTN_SIDE emits up(A); releasing BTN_EXTRA then finds A not held and
	// emits no ghost up.
	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_SIDE, Value: ValueUp})

	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_EXTRA, Value: ValueUp})

	want := []recordedEmit{{input.KEY_A, ValueDown}, {input.KEY_A, ValueUp}}
	assertEmits(t, sink.emits, want)
}

func TestReleaseUsesPressTimeBindingAcrossLayerSwitch(t *testing.T) {
	p := &profile.Profile{
		ID: "press-binding-survives-layer-switch",
		Layers: []profile.Layer{
			{
				ID:       profile.BaseLayerID,
				Bindings: map[profile.SchemaKey]profile.Binding{},
			},
			{
				ID:           "shift",
				HoldModifier: "BTN_EXTRA",
				Bindings: map[profile.SchemaKey]profile.Binding{
					"BTN_SIDE": {InputCode: "BTN_SIDE", Action: profile.ActionKey, OutputKeys: []profile.SchemaKey{"A"}},
				},
			},
		},
	}

	e, sink := newTestEngine(t, p)

	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_EXTRA, Value: ValueDown})
	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_SIDE, Value: ValueDown})
	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_EXTRA, Value: ValueUp})

	if !e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_SIDE, Value: ValueUp}) {
		t.Fatal("release not handled")
	}

	want := []recordedEmit{{input.KEY_A, ValueDown}, {input.KEY_A, ValueUp}}
	assertEmits(t, sink.emits, want)
}

func TestReleaseOfUnknownCodeIsSilentlyConsumed(t *testing.T) {
	p := &profile.Profile{
		ID: "unknown-release",
		Layers: []profile.Layer{
			{
				ID: profile.BaseLayerID,
				Bindings: map[profile.SchemaKey]profile.Binding{
					"BTN_SIDE": {InputCode: "BTN_SIDE", Action: profile.ActionKey, OutputKeys: []profile.SchemaKey{"A"}},
				},
			},
		},
	}

	e, sink := newTestEngine(t, p)

	if !e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_SIDE, Value: ValueUp}) {
		t.Fatal("release of unbound-press code should still be consumed")
	}

	if len(sink.emits) != 0 {
		t.Fatalf("emits = %v, want none", sink.emits)
	}
}

func TestAutorepeatSwallowed(t *testing.T) {
	p := &profile.Profile{
		ID: "repeat",
		Layers: []profile.Layer{
			{
				ID: profile.BaseLayerID,
				Bindings: map[profile.SchemaKey]profile.Binding{
					"BTN_SIDE": {InputCode: "BTN_SIDE", Action: profile.ActionKey, OutputKeys: []profile.SchemaKey{"A"}},
				},
			},
		},
	}

	e, sink := newTestEngine(t, p)

	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_SIDE, Value: ValueDown})
	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_SIDE, Value: ValueRepeat})
	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_SIDE, Value: ValueUp})

	want := []recordedEmit{{input.KEY_A, ValueDown}, {input.KEY_A, ValueUp}}
	assertEmits(t, sink.emits, want)
}

func TestReloadProfileResetsState(t *testing.T) {
	p := &profile.Profile{
		ID: "reload",
		Layers: []profile.Layer{
			{
				ID: profile.BaseLayerID,
				Bindings: map[profile.SchemaKey]profile.Binding{
					"BTN_SIDE": {InputCode: "BTN_SIDE", Action: profile.ActionKey, OutputKeys: []profile.SchemaKey{"A"}},
				},
			},
		},
	}

	e, sink := newTestEngine(t, p)

	e.ProcessEvent(InputEvent{Type: input.EV_KEY, Code: input.BTN_SIDE, Value: ValueDown})

	if err := e.ReloadProfile(p); err != nil {
		t.Fatalf("ReloadProfile() = %v, want nil", err)
	}

	if len(e.state.OutputHeld) != 0 {
		t.Fatalf("OutputHeld after reload = %v, want empty", e.state.OutputHeld)
	}

	active, _ := e.LayerInfo()
	if active != profile.BaseLayerID {
		t.Fatalf("active layer after reload = %q, want base", active)
	}

	lastEmit := sink.emits[len(sink.emits)-1]
	if lastEmit != (recordedEmit{input.KEY_A, ValueUp}) {
		t.Fatalf("last emit before reload = %+v, want release of A", lastEmit)
	}
}

func assertEmits(t *testing.T, got []recordedEmit, want []recordedEmit) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("emits = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("emits = %v, want %v", got, want)
		}
	}
}
