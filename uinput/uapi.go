//go:build linux

package uinput

import "github.com/kbswitch/remapd/linux/ioctl"

// uinputMagic is the ioctl magic number ('U') the kernel's uinput driver
// registers all of its requests under.
const uinputMagic = uint('U')

// uinputMaxNameSize is UINPUT_MAX_NAME_SIZE from linux/uinput.h.
const uinputMaxNameSize = 80

// inputID mirrors struct input_id from linux/input.h.
type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// uinputSetup mirrors struct uinput_setup, the argument to UI_DEV_SETUP.
type uinputSetup struct {
	ID           inputID
	Name         [uinputMaxNameSize]byte
	FFEffectsMax uint32
}

// UI_SET_EVBIT enables an event type (EV_KEY, EV_SYN, ...) on the device
// being configured.
func UI_SET_EVBIT() uint {
	return ioctl.IOW(uinputMagic, 100, int(0))
}

// UI_SET_KEYBIT enables a specific key or button code on the device
// being configured. Requires EV_KEY to already be enabled via
// [UI_SET_EVBIT].
func UI_SET_KEYBIT() uint {
	return ioctl.IOW(uinputMagic, 101, int(0))
}

// UI_DEV_SETUP configures the device's identity (name, bus/vendor/product/
// version) in one call, superseding the legacy write(2)-based
// uinput_user_dev setup path.
func UI_DEV_SETUP() uint {
	return ioctl.IOW(uinputMagic, 3, uinputSetup{})
}

// UI_DEV_CREATE finalizes device creation: after this call the device
// appears under /dev/input and is visible to the rest of the input
// subsystem.
func UI_DEV_CREATE() uint {
	return ioctl.IO(uinputMagic, 1)
}

// UI_DEV_DESTROY removes the virtual device.
func UI_DEV_DESTROY() uint {
	return ioctl.IO(uinputMagic, 2)
}
