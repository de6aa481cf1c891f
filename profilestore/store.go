package profilestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/kbswitch/remapd/profile"
	"gopkg.in/yaml.v3"
)

// activeFileName is the one-line pointer file naming the active profile's
// ID, relative to a Store's config directory.
const activeFileName = "active"

const profileFileSuffix = ".yaml"

// Store is a file-backed adapter over a config directory holding one YAML
// document per profile plus an "active" pointer file.
type Store struct {
	configDir string
}

// New builds a Store rooted at configDir. configDir must already exist;
// New does not create it.
func New(configDir string) (*Store, error) {
	var (
		info os.FileInfo
		err  error
	)

	info, err = os.Stat(configDir)
	if err != nil {
		return nil, fmt.Errorf("profilestore.New: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("profilestore.New: %s is not a directory", configDir)
	}

	return &Store{configDir: configDir}, nil
}

// ConfigDir returns the directory the store is rooted at.
func (s *Store) ConfigDir() string {
	return s.configDir
}

func (s *Store) profilePath(id string) string {
	return filepath.Join(s.configDir, id+profileFileSuffix)
}

func (s *Store) activePath() string {
	return filepath.Join(s.configDir, activeFileName)
}

// Load reads and validates the profile named id.
func (s *Store) Load(id string) (*profile.Profile, error) {
	var (
		raw []byte
		doc document
		p   *profile.Profile
		err error
	)

	raw, err = os.ReadFile(s.profilePath(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("Store.Load: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("Store.Load: %w", err)
	}

	err = yaml.Unmarshal(raw, &doc)
	if err != nil {
		return nil, fmt.Errorf("Store.Load: %w", err)
	}

	p, err = fromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("Store.Load: %w", err)
	}

	return p, nil
}

// List loads every profile document in the config directory.
func (s *Store) List() ([]*profile.Profile, error) {
	var (
		entries  []os.DirEntry
		profiles []*profile.Profile
		err      error
	)

	entries, err = os.ReadDir(s.configDir)
	if err != nil {
		return nil, fmt.Errorf("Store.List: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), profileFileSuffix) {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), profileFileSuffix)

		p, err := s.Load(id)
		if err != nil {
			return nil, fmt.Errorf("Store.List: %w", err)
		}

		profiles = append(profiles, p)
	}

	return profiles, nil
}

// Save validates p and atomically writes its YAML document.
func (s *Store) Save(p *profile.Profile) error {
	var (
		raw []byte
		err error
	)

	err = p.Validate()
	if err != nil {
		return fmt.Errorf("Store.Save: %w", err)
	}

	raw, err = yaml.Marshal(toDocument(p))
	if err != nil {
		return fmt.Errorf("Store.Save: %w", err)
	}

	err = renameio.WriteFile(s.profilePath(p.ID), raw, 0o600)
	if err != nil {
		return fmt.Errorf("Store.Save: %w", err)
	}

	return nil
}

// SetActive atomically points the active pointer file at id. It does not
// verify that a profile named id exists on disk.
func (s *Store) SetActive(id string) error {
	var err error

	err = renameio.WriteFile(s.activePath(), []byte(id), 0o600)
	if err != nil {
		return fmt.Errorf("Store.SetActive: %w", err)
	}

	return nil
}

// ActiveID reads the active pointer file's contents, with no validation
// that the named profile exists.
func (s *Store) ActiveID() (string, error) {
	var (
		raw []byte
		err error
	)

	raw, err = os.ReadFile(s.activePath())
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("Store.ActiveID: %w", err)
	}

	return strings.TrimSpace(string(raw)), nil
}

// LoadActive loads the profile named by the active pointer file. If the
// pointer is unset or empty, it falls back to the first profile on disk
// with IsDefault set. If neither exists, it returns ErrNoActiveProfile.
func (s *Store) LoadActive() (*profile.Profile, error) {
	var (
		id       string
		profiles []*profile.Profile
		err      error
	)

	id, err = s.ActiveID()
	if err != nil {
		return nil, fmt.Errorf("Store.LoadActive: %w", err)
	}

	if id != "" {
		p, err := s.Load(id)
		if err != nil {
			return nil, fmt.Errorf("Store.LoadActive: %w", err)
		}

		return p, nil
	}

	profiles, err = s.List()
	if err != nil {
		return nil, fmt.Errorf("Store.LoadActive: %w", err)
	}

	for _, p := range profiles {
		if p.IsDefault {
			return p, nil
		}
	}

	return nil, fmt.Errorf("Store.LoadActive: %w", ErrNoActiveProfile)
}
