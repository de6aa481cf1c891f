package engine

import "errors"

// ErrBindingResolve is returned/logged when a binding's schema key name
// does not resolve to a numeric code. The binding becomes inert rather
// than fatal: it is simply omitted from the lookup tables.
var ErrBindingResolve error = errors.New("binding does not resolve to a numeric code")
