//go:build linux

package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/kbswitch/remapd/engine"
	"github.com/kbswitch/remapd/hotkey"
	"github.com/kbswitch/remapd/linux/input"
	"github.com/kbswitch/remapd/profile"
	"github.com/kbswitch/remapd/profilestore"
	"github.com/kbswitch/remapd/uinput"
	"github.com/sirupsen/logrus"
)

// lockFileName is the single-instance lock file's name, relative to the
// config directory.
const lockFileName = ".remapd.lock"

// intentQueueSize bounds how many pending hotkey/watcher intents the
// orchestrator buffers between dispatch iterations.
const intentQueueSize = 16

// outputSink is the virtual output device: the engine's sink, also used
// for raw passthrough and closed by Cleanup.
type outputSink interface {
	engine.Sink
	Close() error
}

// Orchestrator wires the profile store, remap engine, virtual sink, and
// grabbed physical devices into a running daemon.
type Orchestrator struct {
	store *profilestore.Store
	log   *logrus.Entry

	lock             *flock.Flock
	devices          []*input.Device
	sink             outputSink
	engine           *engine.Engine
	queue            *hotkey.Queue
	watcher          *profilestore.Watcher
	active           *profile.Profile
	enableAppWatcher bool
}

// New builds an Orchestrator against store, logging through log.
func New(store *profilestore.Store, log *logrus.Entry) *Orchestrator {
	return &Orchestrator{
		store: store,
		log:   log,
		queue: hotkey.NewQueue(intentQueueSize),
	}
}

// EnableAppWatcher toggles whether Run starts an fsnotify watcher on the
// active-pointer file, feeding external profile switches into the same
// intent queue a hotkey listener would use. Must be called before Run.
func (o *Orchestrator) EnableAppWatcher(enabled bool) {
	o.enableAppWatcher = enabled
}

// Setup takes the single-instance lock, loads and grabs the active
// profile's devices, creates the virtual output sink, and builds the
// remap engine. A failure part-way through leaves whatever was already
// acquired (the lock, devices grabbed so far, the sink) in place; the
// caller should call Cleanup to release it.
func (o *Orchestrator) Setup(ctx context.Context, configDir string) error {
	var (
		locked bool
		p      *profile.Profile
		err    error
	)

	o.lock = flock.New(filepath.Join(configDir, lockFileName))

	locked, err = o.lock.TryLock()
	if err != nil {
		return fmt.Errorf("Orchestrator.Setup: %w", err)
	}
	if !locked {
		return fmt.Errorf("Orchestrator.Setup: %w", ErrAlreadyRunning)
	}

	p, err = o.store.LoadActive()
	if err != nil {
		return fmt.Errorf("Orchestrator.Setup: %w", err)
	}

	if len(p.InputDevices) == 0 {
		return fmt.Errorf("Orchestrator.Setup: %w", ErrNoDevices)
	}

	err = o.grabDevices(p.InputDevices)
	if err != nil {
		return fmt.Errorf("Orchestrator.Setup: %w", err)
	}

	sink, err := uinput.Create("remapd virtual output", capabilities(p))
	if err != nil {
		return fmt.Errorf("Orchestrator.Setup: %w", err)
	}
	o.sink = sink

	o.engine, err = engine.New(p)
	if err != nil {
		return fmt.Errorf("Orchestrator.Setup: %w", err)
	}
	o.engine.SetSink(o.sink)

	o.active = p

	if o.enableAppWatcher {
		o.watcher, err = profilestore.NewWatcher(o.store)
		if err != nil {
			return fmt.Errorf("Orchestrator.Setup: %w", err)
		}
	}

	return nil
}

func (o *Orchestrator) grabDevices(paths []string) error {
	for _, path := range paths {
		dev, err := input.NewDevice(path)
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrDeviceNotFound, path)
		}
		if errors.Is(err, os.ErrPermission) {
			return fmt.Errorf("%w: %s", ErrPermission, path)
		}
		if err != nil {
			return err
		}

		err = dev.Grab()
		if errors.Is(err, os.ErrPermission) {
			dev.Close()
			return fmt.Errorf("%w: %s", ErrPermission, path)
		}
		if err != nil {
			dev.Close()
			return err
		}

		o.devices = append(o.devices, dev)
	}

	return nil
}

// ReloadProfile re-reads the active profile from disk, following the
// store's active pointer, and swaps it into the engine, draining held
// outputs first.
func (o *Orchestrator) ReloadProfile() error {
	var (
		p   *profile.Profile
		err error
	)

	p, err = o.store.LoadActive()
	if err != nil {
		return fmt.Errorf("Orchestrator.ReloadProfile: %w", err)
	}

	err = o.engine.ReloadProfile(p)
	if err != nil {
		return fmt.Errorf("Orchestrator.ReloadProfile: %w", err)
	}

	o.active = p

	return nil
}

// SwitchProfile drains held outputs, installs p as the engine's profile,
// and records it as the active profile in the store.
func (o *Orchestrator) SwitchProfile(p *profile.Profile) error {
	var err error

	err = o.engine.ReloadProfile(p)
	if err != nil {
		return fmt.Errorf("Orchestrator.SwitchProfile: %w", err)
	}

	o.active = p

	err = o.store.SetActive(p.ID)
	if err != nil {
		return fmt.Errorf("Orchestrator.SwitchProfile: %w", err)
	}

	return nil
}

// Cleanup ungrabs every device, releases all held outputs, closes the
// virtual sink, stops the watcher, and releases the lock file. It is
// safe to call after a failed or partial Setup and more than once.
func (o *Orchestrator) Cleanup() error {
	var errs []error

	for _, dev := range o.devices {
		if err := dev.Ungrab(); err != nil {
			errs = append(errs, err)
		}

		if err := dev.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	o.devices = nil

	if o.engine != nil {
		o.engine.ReleaseAllKeys()
	}

	if o.sink != nil {
		if err := o.sink.Close(); err != nil {
			errs = append(errs, err)
		}
		o.sink = nil
	}

	if o.watcher != nil {
		if err := o.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		o.watcher = nil
	}

	if o.lock != nil {
		if err := o.lock.Unlock(); err != nil {
			errs = append(errs, err)
		}
		o.lock = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("Orchestrator.Cleanup: %w", errors.Join(errs...))
	}

	return nil
}
