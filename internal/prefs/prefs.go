// Package prefs remembers viewer state between runs.
package prefs

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName names the gdata storage directory.
const AppName = "folio3d"

const (
	prefsObject   = "viewer"
	prefsProperty = "prefs"
)

type Prefs struct {
	LastSection string `yaml:"lastSection"`
	Visits      int    `yaml:"visits"`
}

// Store loads and saves Prefs. A Store without a gdata manager keeps prefs in
// memory only, and Save becomes a no-op.
type Store struct {
	data  *gdata.Manager
	prefs Prefs
}

// Open creates the gdata manager for AppName. On failure it returns a
// memory-only store along with the error.
func Open() (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return NewStore(nil), fmt.Errorf("failed to open prefs storage: %w", err)
	}
	return NewStore(m), nil
}

func NewStore(m *gdata.Manager) *Store {
	s := &Store{data: m}
	if err := s.Load(); err != nil {
		log.Printf("[Prefs] Warning: %v (using defaults)", err)
	}
	return s
}

func (s *Store) Load() error {
	s.prefs = Prefs{}
	if s.data == nil || !s.data.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}
	raw, err := s.data.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("failed to load prefs: %w", err)
	}
	var p Prefs
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("failed to unmarshal prefs: %w", err)
	}
	s.prefs = p
	return nil
}

func (s *Store) Save() error {
	if s.data == nil {
		return nil
	}
	raw, err := yaml.Marshal(s.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}
	if err := s.data.SaveObjectProp(prefsObject, prefsProperty, raw); err != nil {
		return fmt.Errorf("failed to save prefs: %w", err)
	}
	return nil
}

func (s *Store) Prefs() Prefs {
	return s.prefs
}

// Visit records that the named section was shown.
func (s *Store) Visit(section string) {
	s.prefs.LastSection = section
	s.prefs.Visits++
}

// Persistent reports whether prefs survive a restart.
func (s *Store) Persistent() bool {
	return s.data != nil
}
