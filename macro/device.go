package macro

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kbswitch/remapd/engine"
	"github.com/kbswitch/remapd/keycode"
	"github.com/kbswitch/remapd/linux/input"
	"github.com/kbswitch/remapd/profile"
)

// ErrRecordTimeout is returned by RecordFromDevice when timeout elapses
// before the stop key is pressed and released.
var ErrRecordTimeout error = errors.New("macro recording timed out")

// DeviceMacroRecorder wraps a Recorder with exclusive device capture: it
// grabs a device, feeds its events to the recorder, and stops on either
// a read timeout or the stop key's press-then-release.
type DeviceMacroRecorder struct {
	// DevicePath is the evdev device path to grab for the duration of
	// the recording.
	DevicePath string

	// StopKey is the schema key name that ends recording when pressed
	// and released. Uppercased on construction.
	StopKey profile.SchemaKey

	// MacroName labels the compiled MacroAction.
	MacroName string

	recorder *Recorder
}

// NewDeviceMacroRecorder builds a DeviceMacroRecorder for path, stopping
// on stopKey, with the given recorder tuning.
func NewDeviceMacroRecorder(path string, stopKey profile.SchemaKey, name string, cfg Config) *DeviceMacroRecorder {
	return &DeviceMacroRecorder{
		DevicePath: path,
		StopKey:    profile.SchemaKey(strings.ToUpper(string(stopKey))),
		MacroName:  name,
		recorder:   NewRecorder(cfg),
	}
}

// RecordFromDevice grabs the device, records until the stop key is
// pressed and released or timeout elapses with no events, and ungrabs
// the device on every exit path.
func (d *DeviceMacroRecorder) RecordFromDevice(ctx context.Context, timeout time.Duration) (profile.MacroAction, error) {
	var (
		dev *input.Device
		err error
	)

	dev, err = input.NewDevice(d.DevicePath)
	if err != nil {
		return profile.MacroAction{}, fmt.Errorf("DeviceMacroRecorder.RecordFromDevice: %w", err)
	}
	defer dev.Close()

	err = dev.Grab()
	if err != nil {
		return profile.MacroAction{}, fmt.Errorf("DeviceMacroRecorder.RecordFromDevice: %w", err)
	}
	defer dev.Ungrab()

	captureCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, errs := dev.ReadEvents(captureCtx)

	start := time.Now()
	d.recorder.Start()

	var stopPressed bool

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return d.recorder.Stop("", d.MacroName), nil
			}

			accepted := d.recorder.RecordEvent(toEngineEvent(ev), time.Since(start))
			if !accepted {
				continue
			}

			keyName, _ := keycode.EvdevCodeToSchema(ev.Code)
			if keyName != d.StopKey {
				continue
			}

			if ev.Value == engine.ValueDown {
				stopPressed = true
			} else if ev.Value == engine.ValueUp && stopPressed {
				return d.recorder.Stop("", d.MacroName), nil
			}
		case err = <-errs:
			if err != nil {
				return profile.MacroAction{}, fmt.Errorf("DeviceMacroRecorder.RecordFromDevice: %w", err)
			}

			return d.recorder.Stop("", d.MacroName), nil
		case <-time.After(timeout):
			return d.recorder.Stop("", d.MacroName), ErrRecordTimeout
		}
	}
}

func toEngineEvent(ev input.Event) engine.InputEvent {
	return engine.InputEvent{
		Type:  ev.Type,
		Code:  ev.Code,
		Value: ev.Value,
	}
}
