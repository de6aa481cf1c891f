package hotkey

import "testing"

func TestPushAndDrain(t *testing.T) {
	q := NewQueue(2)

	if !q.PushReload() {
		t.Fatal("PushReload on empty queue should succeed")
	}

	if !q.PushSwitch("profile-b") {
		t.Fatal("PushSwitch on non-full queue should succeed")
	}

	first := <-q.C()
	if first.Kind != Reload {
		t.Fatalf("first intent = %+v, want Reload", first)
	}

	second := <-q.C()
	if second.Kind != Switch || second.ProfileID != "profile-b" {
		t.Fatalf("second intent = %+v, want Switch profile-b", second)
	}
}

func TestPushDropsWhenFull(t *testing.T) {
	q := NewQueue(1)

	if !q.PushReload() {
		t.Fatal("first push should succeed")
	}

	if q.PushReload() {
		t.Fatal("push into a full queue should report false")
	}
}
