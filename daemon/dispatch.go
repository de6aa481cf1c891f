//go:build linux

package daemon

import (
	"context"
	"errors"

	"github.com/kbswitch/remapd/engine"
	"github.com/kbswitch/remapd/hotkey"
	"github.com/kbswitch/remapd/linux/input"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

// epollWaitMillis bounds each epoll_wait call so the dispatch loop checks
// ctx for cancellation at least this often even with no device activity.
const epollWaitMillis = 250

// Run starts the dispatch loop and the intent consumer, and blocks until
// ctx is canceled or either goroutine returns an error.
func (o *Orchestrator) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return o.dispatchLoop(ctx)
	})

	g.Go(func() error {
		return o.intentLoop(ctx)
	})

	if o.watcher != nil {
		g.Go(func() error {
			return o.watchLoop(ctx)
		})
	}

	return g.Wait()
}

func (o *Orchestrator) dispatchLoop(ctx context.Context) error {
	var (
		epfd int
		err  error
	)

	epfd, err = unix.EpollCreate1(0)
	if err != nil {
		return err
	}
	defer unix.Close(epfd)

	byFd := make(map[int32]*input.Device, len(o.devices))

	for _, dev := range o.devices {
		fd := int32(dev.Fd())

		err = unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, int(fd), &unix.EpollEvent{
			Events: unix.EPOLLIN,
			Fd:     fd,
		})
		if err != nil {
			return err
		}

		byFd[fd] = dev
	}

	events := make([]unix.EpollEvent, len(o.devices))

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := unix.EpollWait(epfd, events, epollWaitMillis)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}

			return err
		}

		for i := 0; i < n; i++ {
			dev, ok := byFd[events[i].Fd]
			if !ok {
				continue
			}

			o.readDevice(dev)
		}
	}
}

func (o *Orchestrator) readDevice(dev *input.Device) {
	batch, err := dev.Read()
	if err != nil {
		o.log.WithError(err).Warn("device read failed")
		return
	}

	for _, raw := range batch {
		o.forward(raw)
	}
}

// forward processes one raw kernel event through the engine, passing it
// to the sink unchanged when the engine doesn't consume it. Forwarded
// EV_SYN events aren't followed by a manufactured sync (they are one);
// every other forwarded event gets one, since the engine's own emit path
// already syncs after every resolved output.
func (o *Orchestrator) forward(raw input.Event) {
	consumed := o.engine.ProcessEvent(engine.InputEvent{
		Type:  raw.Type,
		Code:  raw.Code,
		Value: raw.Value,
	})
	if consumed {
		return
	}

	if err := o.sink.Emit(raw.Type, raw.Code, raw.Value); err != nil {
		o.log.WithError(err).Warn("passthrough emit failed")
		return
	}

	if raw.Type == input.EV_SYN {
		return
	}

	if err := o.sink.Sync(); err != nil {
		o.log.WithError(err).Warn("passthrough sync failed")
	}
}

func (o *Orchestrator) intentLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case intent, ok := <-o.queue.C():
			if !ok {
				return nil
			}

			o.handleIntent(intent)
		}
	}
}

func (o *Orchestrator) handleIntent(intent hotkey.Intent) {
	switch intent.Kind {
	case hotkey.Reload:
		if err := o.ReloadProfile(); err != nil {
			o.log.WithError(err).Warn("reload profile failed")
		}
	case hotkey.Switch:
		p, err := o.store.Load(intent.ProfileID)
		if err != nil {
			o.log.WithError(err).Warn("load profile for switch failed")
			return
		}

		if err := o.SwitchProfile(p); err != nil {
			o.log.WithError(err).Warn("switch profile failed")
		}
	}
}

func (o *Orchestrator) watchLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-o.watcher.Changed:
			if !ok {
				return nil
			}

			o.queue.PushReload()
		case err, ok := <-o.watcher.Errors:
			if !ok {
				return nil
			}

			o.log.WithError(err).Warn("profile watcher error")
		}
	}
}
