package profile

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel wrapped by every *ValidationError returned
// from New and Validate.
var ErrValidation error = errors.New("profile validation failed")

// ValidationError names the offending field and profile/layer/binding it
// was found on.
type ValidationError struct {
	// Profile is the ID of the profile under validation.
	Profile string

	// Field names the offending field, e.g. "layers[1].bindings[KEY_A].output_keys".
	Field string

	// Reason describes what is wrong with Field.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("profile %q: field %s: %s", e.Profile, e.Field, e.Reason)
}

// Unwrap allows errors.Is(err, ErrValidation) to succeed.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func (p *Profile) fieldError(field, reason string) *ValidationError {
	return &ValidationError{
		Profile: p.ID,
		Field:   field,
		Reason:  reason,
	}
}
