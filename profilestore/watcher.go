package profilestore

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watcher notifies the daemon when the active pointer file changes on
// disk, whoever wrote it: Store.SetActive, an operator editing the file
// directly, or a companion tool switching profiles.
type Watcher struct {
	fsw *fsnotify.Watcher

	// Changed receives an empty signal whenever the active pointer file
	// is written or created; the receiver reads the new ID from the
	// store. Renames and removals of the file itself are ignored.
	Changed chan struct{}

	// Errors surfaces the underlying fsnotify watcher's error stream.
	Errors chan error
}

// NewWatcher starts watching store's config directory for changes to its
// active pointer file.
func NewWatcher(s *Store) (*Watcher, error) {
	var (
		fsw *fsnotify.Watcher
		err error
	)

	fsw, err = fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("profilestore.NewWatcher: %w", err)
	}

	err = fsw.Add(s.ConfigDir())
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("profilestore.NewWatcher: %w", err)
	}

	w := &Watcher{
		fsw:     fsw,
		Changed: make(chan struct{}, 1),
		Errors:  make(chan error, 1),
	}

	go w.run(s.activePath())

	return w, nil
}

func (w *Watcher) run(activePath string) {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if event.Name != activePath {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			select {
			case w.Changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

			select {
			case w.Errors <- err:
			default:
			}
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error

	err = w.fsw.Close()
	if err != nil {
		return fmt.Errorf("Watcher.Close: %w", err)
	}

	return nil
}
