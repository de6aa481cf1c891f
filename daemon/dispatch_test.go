//go:build linux

package daemon

import (
	"testing"

	"github.com/kbswitch/remapd/engine"
	"github.com/kbswitch/remapd/keycode"
	"github.com/kbswitch/remapd/linux/input"
	"github.com/kbswitch/remapd/profile"
	"github.com/sirupsen/logrus"
)

type fakeSink struct {
	emitted []engine.InputEvent
	synced  int
}

func (f *fakeSink) Emit(evType, code uint16, value int32) error {
	f.emitted = append(f.emitted, engine.InputEvent{Type: evType, Code: code, Value: value})
	return nil
}

func (f *fakeSink) Sync() error {
	f.synced++
	return nil
}

func newTestOrchestrator(t *testing.T, p *profile.Profile) (*Orchestrator, *fakeSink) {
	t.Helper()

	e, err := engine.New(p)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}

	sink := &fakeSink{}
	e.SetSink(sink)

	return &Orchestrator{
		engine: e,
		sink:   sink,
		log:    logrus.WithField("test", "daemon"),
	}, sink
}

func disabledPassthroughProfile(t *testing.T) *profile.Profile {
	t.Helper()

	p, err := profile.New("p1", "P", []string{"/dev/input/event0"}, []profile.Layer{
		{
			ID:   profile.BaseLayerID,
			Name: "Base",
			Bindings: map[profile.SchemaKey]profile.Binding{
				"A": {InputCode: "A", Action: profile.ActionKey, OutputKeys: []profile.SchemaKey{"B"}},
			},
		},
	}, nil, true)
	if err != nil {
		t.Fatalf("profile.New: %v", err)
	}

	return p
}

func TestForwardConsumedEventNotPassedToSink(t *testing.T) {
	o, sink := newTestOrchestrator(t, disabledPassthroughProfile(t))

	codeA, ok := keycode.SchemaToNumericCode("A")
	if !ok {
		t.Fatal("A should resolve")
	}

	o.forward(input.Event{Type: input.EV_KEY, Code: codeA, Value: 1})

	if len(sink.emitted) != 1 {
		t.Fatalf("sink.emitted = %+v, want exactly the remapped B event", sink.emitted)
	}
}

func TestForwardUnresolvedEventPassesThroughWithSync(t *testing.T) {
	o, sink := newTestOrchestrator(t, disabledPassthroughProfile(t))

	unresolvedCode, ok := keycode.SchemaToNumericCode("Z")
	if !ok {
		t.Fatal("Z should resolve")
	}

	o.forward(input.Event{Type: input.EV_KEY, Code: unresolvedCode, Value: 1})

	if len(sink.emitted) != 1 || sink.emitted[0].Code != unresolvedCode {
		t.Fatalf("sink.emitted = %+v, want raw passthrough of Z", sink.emitted)
	}

	if sink.synced != 1 {
		t.Fatalf("synced = %d, want 1", sink.synced)
	}
}

func TestForwardSynEventNotDoubleSynced(t *testing.T) {
	o, sink := newTestOrchestrator(t, disabledPassthroughProfile(t))

	o.forward(input.Event{Type: input.EV_SYN, Code: input.SYN_REPORT, Value: 0})

	if sink.synced != 0 {
		t.Fatalf("synced = %d, want 0 (EV_SYN itself is the sync)", sink.synced)
	}
}
