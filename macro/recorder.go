package macro

import (
	"time"

	"github.com/google/uuid"
	"github.com/kbswitch/remapd/engine"
	"github.com/kbswitch/remapd/keycode"
	"github.com/kbswitch/remapd/linux/input"
	"github.com/kbswitch/remapd/profile"
)

// mergeWindow is the maximum gap between a down and its matching up for
// MergePressRelease to fold them into a single KEY_PRESS step. Left
// unexported and fixed rather than configurable.
const mergeWindow = 100 * time.Millisecond

// Config tunes a Recorder's compilation behavior.
type Config struct {
	// MinDelayMS is the smallest gap between steps worth recording as a
	// DELAY step.
	MinDelayMS uint

	// MaxDelayMS caps how long a single DELAY step may be.
	MaxDelayMS uint

	// RecordDelays enables emitting DELAY steps at all.
	RecordDelays bool

	// MergePressRelease enables folding a quick down+up into KEY_PRESS.
	MergePressRelease bool
}

// DefaultConfig returns the recorder's default tuning: 10ms minimum
// delay, 5000ms maximum delay, delays recorded, press/release merged.
func DefaultConfig() Config {
	return Config{
		MinDelayMS:        10,
		MaxDelayMS:        5000,
		RecordDelays:      true,
		MergePressRelease: true,
	}
}

// RecordedEvent is one accepted key event in a Recorder's buffer.
type RecordedEvent struct {
	// Timestamp is a monotonic offset from recording start, not wall clock.
	Timestamp time.Duration

	// Code is the numeric evdev code of the key or button.
	Code uint16

	// Value is 0 (up) or 1 (down); autorepeat (2) is never recorded.
	Value int32

	// KeyName is the schema key name resolved via the keycode map.
	KeyName profile.SchemaKey
}

// Recorder accepts a live stream of key events while recording and
// compiles them into a profile.MacroAction on Stop. It owns no lock;
// callers driving RecordEvent from multiple goroutines must serialize
// themselves.
type Recorder struct {
	cfg       Config
	recording bool
	events    []RecordedEvent
	callback  func(RecordedEvent)
}

// NewRecorder builds a Recorder with the given tuning.
func NewRecorder(cfg Config) *Recorder {
	return &Recorder{cfg: cfg}
}

// Start clears the event buffer and begins recording.
func (r *Recorder) Start() {
	r.events = nil
	r.recording = true
}

// Stop ends recording and compiles the buffered events into a
// MacroAction. id names the macro; a blank id mints a fresh UUID instead.
func (r *Recorder) Stop(id, name string) profile.MacroAction {
	r.recording = false

	if id == "" {
		id = uuid.NewString()
	}

	return profile.MacroAction{
		ID:            id,
		Name:          name,
		Steps:         compile(r.events, r.cfg),
		RepeatCount:   1,
		RepeatDelayMS: 0,
	}
}

// Clear empties the event buffer without changing the recording flag.
func (r *Recorder) Clear() {
	r.events = nil
}

// RecordEvent appends ev to the buffer if the recorder is recording, ev
// is a key event, and ev.Value isn't autorepeat. It returns whether the
// event was accepted.
func (r *Recorder) RecordEvent(ev engine.InputEvent, ts time.Duration) bool {
	if !r.recording {
		return false
	}

	if ev.Type != input.EV_KEY {
		return false
	}

	if ev.Value == engine.ValueRepeat {
		return false
	}

	keyName, _ := keycode.EvdevCodeToSchema(ev.Code)

	recorded := RecordedEvent{
		Timestamp: ts,
		Code:      ev.Code,
		Value:     ev.Value,
		KeyName:   keyName,
	}

	r.events = append(r.events, recorded)

	if r.callback != nil {
		r.callback(recorded)
	}

	return true
}

// SetEventCallback installs fn to be invoked synchronously for every
// event RecordEvent accepts.
func (r *Recorder) SetEventCallback(fn func(RecordedEvent)) {
	r.callback = fn
}

// EventCount reports how many events are currently buffered.
func (r *Recorder) EventCount() int {
	return len(r.events)
}

// IsRecording reports whether the recorder is currently accepting events.
func (r *Recorder) IsRecording() bool {
	return r.recording
}
