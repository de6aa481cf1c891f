//go:build linux

package uinput

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/kbswitch/remapd/linux/ioctl"
	"github.com/kbswitch/remapd/linux/input"
	"golang.org/x/sys/unix"
)

// ErrEmit is returned when writing an event to the virtual device fails.
var ErrEmit error = errors.New("uinput: emit failed")

// Device is a virtual evdev output device created through /dev/uinput.
// It satisfies engine.Sink.
type Device struct {
	file *os.File
}

// Create opens /dev/uinput and configures a virtual device named name
// that supports every event type and code in events (typically just
// EV_KEY with the profile's union of resolvable output codes). EV_SYN is
// always enabled regardless of events' contents.
func Create(name string, events map[uint16][]uint16) (*Device, error) {
	var (
		file *os.File
		dev  *Device
		err  error
	)

	file, err = os.OpenFile("/dev/uinput", os.O_RDWR|os.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("uinput.Create: %w", err)
	}

	dev = &Device{file: file}

	err = dev.setBits(input.EV_SYN, nil)
	if err != nil {
		dev.file.Close()
		return nil, fmt.Errorf("uinput.Create: %w", err)
	}

	for evType, codes := range events {
		err = dev.setBits(evType, codes)
		if err != nil {
			dev.file.Close()
			return nil, fmt.Errorf("uinput.Create: %w", err)
		}
	}

	err = dev.setup(name)
	if err != nil {
		dev.file.Close()
		return nil, fmt.Errorf("uinput.Create: %w", err)
	}

	err = ioctl.Any(dev.file.Fd(), UI_DEV_CREATE(), new(int))
	if err != nil {
		dev.file.Close()
		return nil, fmt.Errorf("uinput.Create: %w", err)
	}

	return dev, nil
}

func (d *Device) setBits(evType uint16, codes []uint16) error {
	var err error

	// UI_SET_EVBIT and UI_SET_KEYBIT take the bit number by value.
	err = unix.IoctlSetInt(int(d.file.Fd()), UI_SET_EVBIT(), int(evType))
	if err != nil {
		return err
	}

	for _, code := range codes {
		err = unix.IoctlSetInt(int(d.file.Fd()), UI_SET_KEYBIT(), int(code))
		if err != nil {
			return err
		}
	}

	return nil
}

func (d *Device) setup(name string) error {
	var (
		setup uinputSetup
		err   error
	)

	copy(setup.Name[:], name)

	setup.ID = inputID{
		Bustype: input.BUS_USB,
		Vendor:  0x1d6b,
		Product: 0x0104,
		Version: 1,
	}

	err = ioctl.Any(d.file.Fd(), UI_DEV_SETUP(), &setup)
	if err != nil {
		return err
	}

	return nil
}

// Emit writes one (type, code, value) event to the device. The event's
// timestamp fields are left zero; the kernel fills them in.
func (d *Device) Emit(evType, code uint16, value int32) error {
	var (
		buf bytes.Buffer
		err error
	)

	err = binary.Write(&buf, binary.NativeEndian, input.Event{
		Type:  evType,
		Code:  code,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("Device.Emit: %w: %w", ErrEmit, err)
	}

	_, err = unix.Write(int(d.file.Fd()), buf.Bytes())
	if err != nil {
		return fmt.Errorf("Device.Emit: %w: %w", ErrEmit, err)
	}

	return nil
}

// Sync emits an EV_SYN/SYN_REPORT event, marking the end of a batch of
// events for downstream readers.
func (d *Device) Sync() error {
	return d.Emit(input.EV_SYN, input.SYN_REPORT, 0)
}

// Close destroys the virtual device and closes the underlying file.
func (d *Device) Close() error {
	var err error

	err = ioctl.Any(d.file.Fd(), UI_DEV_DESTROY(), new(int))
	if err != nil {
		return fmt.Errorf("Device.Close: %w", err)
	}

	err = d.file.Close()
	if err != nil {
		return fmt.Errorf("Device.Close: %w", err)
	}

	return nil
}
