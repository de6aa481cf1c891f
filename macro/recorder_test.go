package macro

import (
	"testing"
	"time"

	"github.com/kbswitch/remapd/engine"
	"github.com/kbswitch/remapd/linux/input"
	"github.com/kbswitch/remapd/profile"
)

func TestRecorderDefaultState(t *testing.T) {
	r := NewRecorder(DefaultConfig())

	if r.IsRecording() {
		t.Fatal("new recorder should not be recording")
	}

	if r.EventCount() != 0 {
		t.Fatal("new recorder should have no events")
	}
}

func TestStartClearsPreviousEvents(t *testing.T) {
	r := NewRecorder(DefaultConfig())

	r.Start()
	r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_A, Value: engine.ValueDown}, 0)

	if r.EventCount() != 1 {
		t.Fatalf("EventCount() = %d, want 1", r.EventCount())
	}

	r.Start()

	if r.EventCount() != 0 {
		t.Fatalf("EventCount() after restart = %d, want 0", r.EventCount())
	}
}

func TestRecordEventIgnoresNonKeyAndRepeat(t *testing.T) {
	r := NewRecorder(DefaultConfig())
	r.Start()

	if r.RecordEvent(engine.InputEvent{Type: input.EV_REL, Code: 0, Value: 5}, 0) {
		t.Fatal("non-key event should be ignored")
	}

	if r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_A, Value: engine.ValueRepeat}, 0) {
		t.Fatal("autorepeat event should be ignored")
	}

	if r.EventCount() != 0 {
		t.Fatalf("EventCount() = %d, want 0", r.EventCount())
	}
}

func TestRecordEventIgnoredWhenNotRecording(t *testing.T) {
	r := NewRecorder(DefaultConfig())

	if r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_A, Value: engine.ValueDown}, 0) {
		t.Fatal("event should be ignored when not recording")
	}
}

func TestEventCallback(t *testing.T) {
	r := NewRecorder(DefaultConfig())

	var got []RecordedEvent
	r.SetEventCallback(func(ev RecordedEvent) {
		got = append(got, ev)
	})

	r.Start()
	r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_A, Value: engine.ValueDown}, 0)

	if len(got) != 1 {
		t.Fatalf("callback fired %d times, want 1", len(got))
	}

	if got[0].KeyName != "A" {
		t.Fatalf("callback KeyName = %q, want A", got[0].KeyName)
	}
}

func TestClearKeepsRecording(t *testing.T) {
	r := NewRecorder(DefaultConfig())
	r.Start()
	r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_A, Value: engine.ValueDown}, 0)
	r.Clear()

	if !r.IsRecording() {
		t.Fatal("Clear should not stop recording")
	}

	if r.EventCount() != 0 {
		t.Fatal("Clear should empty the buffer")
	}
}

// TestRecorderMerge is scenario S6: a quick down/up pair on each of two
// keys, each merged into a single KEY_PRESS, with a quantized delay
// between them.
func TestRecorderMerge(t *testing.T) {
	r := NewRecorder(DefaultConfig())
	r.Start()

	r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_A, Value: engine.ValueDown}, 1000*time.Millisecond)
	r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_A, Value: engine.ValueUp}, 1050*time.Millisecond)
	r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_B, Value: engine.ValueDown}, 1500*time.Millisecond)
	r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_B, Value: engine.ValueUp}, 1550*time.Millisecond)

	macro := r.Stop("recorded_macro", "test macro")

	want := []profile.MacroStep{
		{Kind: profile.StepKeyPress, Key: "A"},
		{Kind: profile.StepDelay, DelayMS: 450},
		{Kind: profile.StepKeyPress, Key: "B"},
	}

	assertSteps(t, macro.Steps, want)

	if macro.ID != "recorded_macro" || macro.RepeatCount != 1 {
		t.Fatalf("macro = %+v, want recorded_macro defaults", macro)
	}
}

// TestHeldKeyNotMerged is scenario S7: a 200ms hold exceeds the merge
// window, so down and up stay separate steps.
func TestHeldKeyNotMerged(t *testing.T) {
	r := NewRecorder(DefaultConfig())
	r.Start()

	r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_A, Value: engine.ValueDown}, 1000*time.Millisecond)
	r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_A, Value: engine.ValueUp}, 1200*time.Millisecond)

	macro := r.Stop("", "test macro")

	want := []profile.MacroStep{
		{Kind: profile.StepKeyDown, Key: "A"},
		{Kind: profile.StepDelay, DelayMS: 200},
		{Kind: profile.StepKeyUp, Key: "A"},
	}

	assertSteps(t, macro.Steps, want)
}

func TestNoMergeKeepsSeparateDownUp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergePressRelease = false

	r := NewRecorder(cfg)
	r.Start()

	r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_A, Value: engine.ValueDown}, 0)
	r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_A, Value: engine.ValueUp}, 10*time.Millisecond)

	macro := r.Stop("", "test macro")

	want := []profile.MacroStep{
		{Kind: profile.StepKeyDown, Key: "A"},
		{Kind: profile.StepDelay, DelayMS: 10},
		{Kind: profile.StepKeyUp, Key: "A"},
	}

	assertSteps(t, macro.Steps, want)
}

func TestMinDelayThreshold(t *testing.T) {
	r := NewRecorder(DefaultConfig())
	r.Start()

	r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_A, Value: engine.ValueDown}, 0)
	r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_B, Value: engine.ValueDown}, 5*time.Millisecond)

	macro := r.Stop("", "test macro")

	for _, step := range macro.Steps {
		if step.Kind == profile.StepDelay {
			t.Fatalf("delay below MinDelayMS should not be recorded, got %+v", macro.Steps)
		}
	}
}

func TestMaxDelayCap(t *testing.T) {
	r := NewRecorder(DefaultConfig())
	r.Start()

	r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_A, Value: engine.ValueDown}, 0)
	r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_B, Value: engine.ValueDown}, 10*time.Second)

	macro := r.Stop("", "test macro")

	if macro.Steps[1].Kind != profile.StepDelay || macro.Steps[1].DelayMS != 5000 {
		t.Fatalf("delay step = %+v, want capped at 5000ms", macro.Steps[1])
	}
}

func TestNoDelaysRecorded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RecordDelays = false

	r := NewRecorder(cfg)
	r.Start()

	r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_A, Value: engine.ValueDown}, 0)
	r.RecordEvent(engine.InputEvent{Type: input.EV_KEY, Code: input.KEY_B, Value: engine.ValueDown}, time.Second)

	macro := r.Stop("", "test macro")

	for _, step := range macro.Steps {
		if step.Kind == profile.StepDelay {
			t.Fatalf("RecordDelays=false should never emit a DELAY step, got %+v", macro.Steps)
		}
	}
}

func TestStopKeyUppercased(t *testing.T) {
	d := NewDeviceMacroRecorder("/dev/input/event0", "esc", "test macro", DefaultConfig())

	if d.StopKey != "ESC" {
		t.Fatalf("StopKey = %q, want ESC", d.StopKey)
	}
}

func TestStopMintsIDWhenBlank(t *testing.T) {
	r := NewRecorder(DefaultConfig())
	r.Start()

	macro := r.Stop("", "untitled")

	if macro.ID == "" {
		t.Fatal("Stop left ID blank")
	}

	if macro.Name != "untitled" {
		t.Fatalf("Name = %q, want untitled", macro.Name)
	}
}

func assertSteps(t *testing.T, got, want []profile.MacroStep) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("steps = %+v, want %+v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("steps = %+v, want %+v", got, want)
		}
	}
}
