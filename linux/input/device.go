//go:build linux

package input

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"github.com/kbswitch/remapd/linux/ioctl"
	"golang.org/x/sys/unix"
)

// Device represents an evdev input device.
// It wraps the opened /dev/input/eventN file.
type Device struct {
	file *os.File
	fd   uintptr
}

// NewDevice opens the evdev device at the given path and returns a Device.
// The path is cleaned before opening, and the device file is opened
// in read-write mode. The caller is responsible for closing the device
// when no longer needed.
func NewDevice(path string) (*Device, error) {
	var (
		device *Device
		file   *os.File
		err    error
	)

	file, err = os.OpenFile(filepath.Clean(path), os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("input.NewDevice: %w", err)
	}

	device = &Device{
		file: file,
		fd:   file.Fd(),
	}

	return device, nil
}

// Devices scans /dev/input for event devices, opens each one, and
// returns a slice of Device pointers. If any device fails to open,
// an error is returned and no devices are returned.
func Devices() ([]*Device, error) {
	var (
		devices []*Device
		device  *Device
		paths   []string
		path    string
		err     error
	)

	paths, err = filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, fmt.Errorf("input.Devices: %w", err)
	}

	devices = make([]*Device, 0, len(paths))
	for _, path = range paths {
		device, err = NewDevice(path)
		if err != nil {
			return nil, fmt.Errorf("input.Devices: %w", err)
		}

		devices = append(devices, device)
	}

	return devices, nil
}

// Fd returns the underlying file descriptor, for registration with an
// epoll instance or other readiness multiplexer.
func (dev *Device) Fd() uintptr {
	return dev.fd
}

// Name returns the human-readable name of the evdev device.
// It sends the [EVIOCGNAME] ioctl to read up to 256 bytes and
// converts the null-terminated result into a Go string.
func (dev *Device) Name() (string, error) {
	var (
		buf []byte
		err error
	)

	buf = make([]byte, 256)

	err = ioctl.Any(dev.fd, EVIOCGNAME(256), &buf[0])
	if err != nil {
		return "", fmt.Errorf("Device.Name: %w", err)
	}

	return unix.ByteSliceToString(buf), nil
}

// ID returns the platform-specific identifier for this evdev device.
// It issues the EVIOCGID ioctl to fetch the bus, vendor, product, and version fields.
// The result is formatted as:
// "bus 0x<bustype> vendor 0x<vendor> product 0x<product> version 0x<version>".
// e.g. "bus 0x3 vendor 0x46d product 0xc24f version 0x111".
func (dev *Device) ID() (string, error) {
	var (
		id  ID
		err error
	)

	err = ioctl.Any(dev.fd, EVIOCGID, &id)
	if err != nil {
		return "", fmt.Errorf("Device.ID: %w", err)
	}

	return fmt.Sprintf(
		"bus 0x%x vendor 0x%x product 0x%x version 0x%x",
		id.Bustype,
		id.Vendor,
		id.Product,
		id.Version,
	), nil
}

// Events returns a slice of the event types the device supports, leaving
// out EV_REP.
func (dev *Device) Events() ([]uint16, error) {
	var (
		buf       []byte
		events    []uint16
		eventType uint16
		err       error
	)

	buf = make([]byte, (EV_MAX+7)/8)

	err = ioctl.Any(
		dev.fd,
		EVIOCGBIT(0, uint(len(buf))),
		&buf[0],
	)
	if err != nil {
		return nil, fmt.Errorf("Device.Events: %w", err)
	}

	events = make([]uint16, 0, EV_CNT)

	for eventType = range uint16(EV_CNT) {
		if !TestBit(buf, uint(eventType)) {
			continue
		}

		if eventType == EV_REP {
			continue
		}

		events = append(events, eventType)
	}

	return events, nil
}

// Codes returns all supported numeric event codes for the given eventType.
func (dev *Device) Codes(eventType uint16) ([]uint16, error) {
	var (
		buf            []byte
		codes          []uint16
		maxCodes, code uint
		ok             bool
		err            error
	)

	maxCodes, ok = MaxCodes(eventType)
	if !ok {
		return nil, fmt.Errorf("Device.Codes: %w %d", ErrInvalidEventType, eventType)
	}

	buf = make([]byte, maxCodes/8+1)

	err = ioctl.Any(
		dev.fd,
		EVIOCGBIT(uint(eventType), uint(len(buf))),
		&buf[0],
	)
	if err != nil {
		return nil, fmt.Errorf("Device.Codes: %w", err)
	}

	codes = make([]uint16, 0, maxCodes+1)

	for code = range maxCodes + 1 {
		if !TestBit(buf, code) {
			continue
		}

		codes = append(codes, uint16(code))
	}

	return codes, nil
}

// Grab acquires exclusive access to the device's event stream: no other
// process (including the kernel's normal consumers) observes events from
// it until Ungrab is called or the device is closed.
func (dev *Device) Grab() error {
	var (
		arg int = 1
		err error
	)

	err = ioctl.Any(dev.fd, EVIOCGRAB(), &arg)
	if err != nil {
		return fmt.Errorf("Device.Grab: %w", err)
	}

	return nil
}

// Ungrab releases a grab acquired by Grab.
func (dev *Device) Ungrab() error {
	var err error

	// EVIOCGRAB takes its argument by value; a pointer to 0 would be
	// non-zero and request another grab.
	err = unix.IoctlSetInt(int(dev.fd), EVIOCGRAB(), 0)
	if err != nil {
		return fmt.Errorf("Device.Ungrab: %w", err)
	}

	return nil
}

// Read blocks until at least one event is available and returns all
// events read in a single underlying read(2) call. A Device's file is
// opened in blocking mode, so Read is meant to be called only after a
// readiness multiplexer (epoll) has reported the fd readable.
func (dev *Device) Read() ([]Event, error) {
	const eventSize = int(unsafe.Sizeof(Event{}))

	var (
		buf    []byte
		n      int
		err    error
		events []Event
		reader *bytes.Reader
		event  Event
	)

	buf = make([]byte, eventSize*64)

	n, err = unix.Read(int(dev.fd), buf)
	if err != nil {
		return nil, fmt.Errorf("Device.Read: %w", err)
	}

	reader = bytes.NewReader(buf[:n])
	events = make([]Event, 0, n/eventSize)

	for reader.Len() >= eventSize {
		err = binary.Read(reader, binary.NativeEndian, &event)
		if err != nil {
			return nil, fmt.Errorf("Device.Read: %w", err)
		}

		events = append(events, event)
	}

	return events, nil
}

// ReadEvents starts a goroutine that reads events from the device until
// ctx is canceled or a read fails, sending decoded events and the
// terminal error (nil on clean cancellation) to the returned channels.
func (dev *Device) ReadEvents(ctx context.Context) (<-chan Event, <-chan error) {
	var (
		events = make(chan Event)
		errs   = make(chan error, 1)
	)

	go func() {
		defer close(events)
		defer close(errs)

		for {
			batch, err := dev.Read()
			if err != nil {
				select {
				case <-ctx.Done():
					errs <- nil
				default:
					errs <- err
				}

				return
			}

			for _, ev := range batch {
				select {
				case events <- ev:
				case <-ctx.Done():
					errs <- nil
					return
				}
			}
		}
	}()

	return events, errs
}

// Close closes the evdev device by closing its underlying file handle.
func (dev *Device) Close() error {
	var err error

	err = dev.file.Close()
	if err != nil {
		return fmt.Errorf("Device.Close: %w", err)
	}

	return nil
}
