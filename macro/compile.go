package macro

import (
	"time"

	"github.com/kbswitch/remapd/engine"
	"github.com/kbswitch/remapd/profile"
)

// compile walks events left to right, merging quick press+release pairs
// into KEY_PRESS steps and inserting quantized DELAY steps ahead of each
// emitted step based on the gap since the previously emitted step.
func compile(events []RecordedEvent, cfg Config) []profile.MacroStep {
	var (
		steps    []profile.MacroStep
		prevTS   time.Duration
		havePrev bool
		i        int
	)

	for i < len(events) {
		ev := events[i]

		if cfg.MergePressRelease && ev.Value == engine.ValueDown && i+1 < len(events) {
			next := events[i+1]

			if next.Code == ev.Code && next.Value == engine.ValueUp && next.Timestamp-ev.Timestamp <= mergeWindow {
				steps = appendDelay(steps, &prevTS, &havePrev, ev.Timestamp, cfg)
				steps = append(steps, profile.MacroStep{Kind: profile.StepKeyPress, Key: ev.KeyName})
				prevTS, havePrev = next.Timestamp, true
				i += 2

				continue
			}
		}

		steps = appendDelay(steps, &prevTS, &havePrev, ev.Timestamp, cfg)

		kind := profile.StepKeyUp
		if ev.Value == engine.ValueDown {
			kind = profile.StepKeyDown
		}

		steps = append(steps, profile.MacroStep{Kind: kind, Key: ev.KeyName})
		prevTS, havePrev = ev.Timestamp, true
		i++
	}

	return steps
}

// appendDelay emits a DELAY step ahead of the next step if the gap since
// the previously emitted step's timestamp is at least cfg.MinDelayMS,
// clamped to cfg.MaxDelayMS. No delay precedes the very first step.
func appendDelay(steps []profile.MacroStep, prevTS *time.Duration, havePrev *bool, ts time.Duration, cfg Config) []profile.MacroStep {
	if !*havePrev || !cfg.RecordDelays {
		return steps
	}

	delta := ts - *prevTS
	min := time.Duration(cfg.MinDelayMS) * time.Millisecond
	max := time.Duration(cfg.MaxDelayMS) * time.Millisecond

	if delta < min {
		return steps
	}

	if delta > max {
		delta = max
	}

	return append(steps, profile.MacroStep{Kind: profile.StepDelay, DelayMS: uint(delta.Milliseconds())})
}
