// Package macro implements the macro recorder: an online compiler that
// turns a live stream of key events into a reusable profile.MacroAction,
// merging quick press+release pairs into KEY_PRESS steps and inserting
// quantized delay steps between them.
package macro
