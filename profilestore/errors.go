package profilestore

import "errors"

// ErrNotFound is returned when a profile ID has no corresponding document
// in the store's config directory.
var ErrNotFound error = errors.New("profilestore: profile not found")

// ErrNoActiveProfile is returned by LoadActive when the active pointer
// file is missing or empty and no default profile exists to fall back to.
var ErrNoActiveProfile error = errors.New("profilestore: no active profile")
