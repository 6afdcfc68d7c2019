package lexicon

import (
	"fmt"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML override file. Tables present in the file replace the
// built-in ones; absent tables keep their defaults.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML override data on top of the defaults.
func Parse(data []byte) (*Lexicon, error) {
	lex := Default()
	if err := yaml.Unmarshal(data, lex); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	lex.normalize()
	if err := lex.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lexicon: %w", err)
	}
	return lex, nil
}

// Store publishes the current lexicon. Readers take a snapshot with Current
// and use it for the whole analysis.
type Store struct {
	current atomic.Pointer[Lexicon]
	path    string
}

// NewStore returns a store holding lex.
func NewStore(lex *Lexicon) *Store {
	s := &Store{}
	s.current.Store(lex)
	return s
}

// OpenStore builds a store from path, or from the defaults when path is empty.
func OpenStore(path string) (*Store, error) {
	if path == "" {
		return NewStore(Default()), nil
	}
	lex, err := Load(path)
	if err != nil {
		return nil, err
	}
	s := NewStore(lex)
	s.path = path
	return s, nil
}

// Current returns the published lexicon.
func (s *Store) Current() *Lexicon {
	return s.current.Load()
}

// Path is the override file backing the store, if any.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the override file and publishes the result. On error the
// previous lexicon stays published.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	lex, err := Load(s.path)
	if err != nil {
		return err
	}
	s.current.Store(lex)
	return nil
}

// Source hands out lexicon snapshots. *Store implements it.
type Source interface {
	Current() *Lexicon
}
