package engine

import (
	"time"
	"unicode"

	"github.com/kbswitch/remapd/profile"
)

// keyPressHold is the brief down-to-up delay for a KEY_PRESS macro step
// and for each emitted character of a TEXT step, matching the source
// behavior's fixed ~10ms press.
const keyPressHold = 10 * time.Millisecond

// executeMacro runs every step of macro RepeatCount times, sleeping
// RepeatDelayMS between repetitions (not after the last). It runs to
// completion before ProcessEvent returns.
func (e *Engine) executeMacro(macro profile.MacroAction) {
	for i := uint(0); i < macro.RepeatCount; i++ {
		for _, step := range macro.Steps {
			e.executeMacroStep(step)
		}

		if macro.RepeatDelayMS > 0 && i < macro.RepeatCount-1 {
			time.Sleep(time.Duration(macro.RepeatDelayMS) * time.Millisecond)
		}
	}
}

func (e *Engine) executeMacroStep(step profile.MacroStep) {
	switch step.Kind {
	case profile.StepKeyDown:
		e.emitResolved(step.Key, ValueDown)
	case profile.StepKeyUp:
		e.emitResolved(step.Key, ValueUp)
	case profile.StepKeyPress:
		e.emitResolved(step.Key, ValueDown)
		time.Sleep(keyPressHold)
		e.emitResolved(step.Key, ValueUp)
	case profile.StepDelay:
		if step.DelayMS > 0 {
			time.Sleep(time.Duration(step.DelayMS) * time.Millisecond)
		}
	case profile.StepText:
		e.typeText(step.Text)
	}
}

// typeText emits a key press per character: letters (shift-wrapped when
// uppercase), digits, and space/newline/tab map to SPACE/ENTER/TAB.
// Unsupported characters are skipped silently. There is no Unicode
// input-method layer.
func (e *Engine) typeText(text string) {
	for _, ch := range text {
		key, needsShift, ok := textKey(ch)
		if !ok {
			continue
		}

		if needsShift {
			e.emitResolved("SHIFT", ValueDown)
		}

		e.emitResolved(key, ValueDown)
		time.Sleep(keyPressHold)
		e.emitResolved(key, ValueUp)

		if needsShift {
			e.emitResolved("SHIFT", ValueUp)
		}

		time.Sleep(keyPressHold)
	}
}

func textKey(ch rune) (key profile.SchemaKey, needsShift bool, ok bool) {
	switch {
	case unicode.IsLetter(ch) && ch <= unicode.MaxASCII:
		return profile.SchemaKey(string(unicode.ToUpper(ch))), unicode.IsUpper(ch), true
	case unicode.IsDigit(ch) && ch <= unicode.MaxASCII:
		return profile.SchemaKey(string(ch)), false, true
	case ch == ' ':
		return "SPACE", false, true
	case ch == '\n':
		return "ENTER", false, true
	case ch == '\t':
		return "TAB", false, true
	default:
		return "", false, false
	}
}
