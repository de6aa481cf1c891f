// Package uinput creates a virtual evdev output device through the
// kernel's /dev/uinput interface: the daemon emits remapped key events
// there instead of to the physical devices it has grabbed. It is built
// on the same raw golang.org/x/sys/unix ioctl plumbing as linux/input,
// rather than cgo bindings to libevdev.
package uinput
