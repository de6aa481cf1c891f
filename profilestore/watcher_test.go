package profilestore

import (
	"testing"
	"time"
)

func TestWatcherNotifiesOnActiveChange(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w, err := NewWatcher(s)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	err = s.SetActive("profile-b")
	if err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	select {
	case <-w.Changed:
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}
