// Package profile implements the typed data model for a remap profile:
// layers of bindings, chords, macros, and the shift-layer relationships
// between them. Profile, Layer, Binding, and MacroAction are plain data;
// validation happens once at construction and never again for the
// lifetime of the profile.
package profile
