package hotkey

// Kind distinguishes the two intents a Queue carries.
type Kind int

const (
	// Reload re-reads the active profile's document from disk without
	// changing which profile is active.
	Reload Kind = iota

	// Switch activates a different profile by ID.
	Switch
)

// Intent is one request for the orchestrator to act on between dispatch
// iterations.
type Intent struct {
	Kind      Kind
	ProfileID string
}

// Queue is a bounded, non-blocking intent queue: producers (a global
// hotkey listener, a profilestore.Watcher) push from arbitrary
// goroutines, and a single consumer goroutine drains it. A full queue
// drops the newest intent rather than blocking its producer, since
// hotkey presses are transient and a dropped one is superseded by
// whatever the user presses next.
type Queue struct {
	c chan Intent
}

// NewQueue builds a Queue buffering up to size pending intents.
func NewQueue(size int) *Queue {
	return &Queue{c: make(chan Intent, size)}
}

// PushReload enqueues a Reload intent, returning false if the queue is full.
func (q *Queue) PushReload() bool {
	return q.push(Intent{Kind: Reload})
}

// PushSwitch enqueues a Switch intent for profileID, returning false if
// the queue is full.
func (q *Queue) PushSwitch(profileID string) bool {
	return q.push(Intent{Kind: Switch, ProfileID: profileID})
}

func (q *Queue) push(intent Intent) bool {
	select {
	case q.c <- intent:
		return true
	default:
		return false
	}
}

// C returns the channel a consumer goroutine ranges over to drain
// intents. Only one consumer should range over it at a time.
func (q *Queue) C() <-chan Intent {
	return q.c
}

// Close closes the underlying channel. Callers must stop pushing before
// calling Close; pushing after Close panics, matching close(chan)'s
// usual contract.
func (q *Queue) Close() {
	close(q.c)
}
