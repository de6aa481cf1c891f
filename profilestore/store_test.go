package profilestore

import (
	"errors"
	"testing"

	"github.com/kbswitch/remapd/profile"
)

func testProfile(t *testing.T, id string, isDefault bool) *profile.Profile {
	t.Helper()

	layers := []profile.Layer{
		{
			ID:   profile.BaseLayerID,
			Name: "Base",
			Bindings: map[profile.SchemaKey]profile.Binding{
				"A": {InputCode: "A", Action: profile.ActionKey, OutputKeys: []profile.SchemaKey{"B"}},
			},
		},
	}

	p, err := profile.New(id, "Test Profile", []string{"/dev/input/event0"}, layers, nil, isDefault)
	if err != nil {
		t.Fatalf("profile.New: %v", err)
	}

	return p
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := testProfile(t, "default", true)

	err = s.Save(want)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load("default")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.ID != want.ID || got.Name != want.Name || len(got.Layers) != len(want.Layers) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}

	binding := got.Layers[0].Bindings["A"]
	if binding.Action != profile.ActionKey || len(binding.OutputKeys) != 1 || binding.OutputKeys[0] != "B" {
		t.Fatalf("round-tripped binding = %+v", binding)
	}
}

func TestLoadMissingReturnsErrNotFound(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = s.Load("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load error = %v, want ErrNotFound", err)
	}
}

func TestSetActiveAndActiveID(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = s.SetActive("profile-a")
	if err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	id, err := s.ActiveID()
	if err != nil {
		t.Fatalf("ActiveID: %v", err)
	}

	if id != "profile-a" {
		t.Fatalf("ActiveID = %q, want profile-a", id)
	}
}

func TestLoadActiveFallsBackToDefault(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = s.Save(testProfile(t, "default", true))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.LoadActive()
	if err != nil {
		t.Fatalf("LoadActive: %v", err)
	}

	if got.ID != "default" {
		t.Fatalf("LoadActive = %q, want default", got.ID)
	}
}

func TestLoadActiveNoDefaultReturnsError(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = s.Save(testProfile(t, "not-default", false))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err = s.LoadActive()
	if !errors.Is(err, ErrNoActiveProfile) {
		t.Fatalf("LoadActive error = %v, want ErrNoActiveProfile", err)
	}
}

func TestListSkipsActivePointerFile(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = s.Save(testProfile(t, "default", true))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	err = s.SetActive("default")
	if err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	profiles, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(profiles) != 1 {
		t.Fatalf("List returned %d profiles, want 1", len(profiles))
	}
}
