package daemon

import "errors"

// ErrAlreadyRunning is returned by Setup when another instance already
// holds the config directory's lock file.
var ErrAlreadyRunning error = errors.New("daemon: another instance is already running")

// ErrPermission is returned by Setup when opening or grabbing a
// configured input device fails for lack of permission.
var ErrPermission error = errors.New("daemon: permission denied acquiring device")

// ErrDeviceNotFound is returned by Setup when a configured input device
// path does not exist.
var ErrDeviceNotFound error = errors.New("daemon: configured device not found")

// ErrNoDevices is returned by Setup when the active profile names no
// input devices at all.
var ErrNoDevices error = errors.New("daemon: active profile names no input devices")
