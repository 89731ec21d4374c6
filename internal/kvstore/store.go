package kvstore

import (
	"fmt"
	"unicode/utf8"

	"github.com/matsen/kv/internal/logging"
)

var log = logging.For("kvstore")

// Store runs one load, mutate, save cycle per operation against a Repository.
type Store struct {
	repo Repository
}

// New returns a Store over repo.
func New(repo Repository) *Store {
	return &Store{repo: repo}
}

// DeleteResult lists the keys removed by Delete, in removal order.
type DeleteResult struct {
	Removed []string `json:"removed"`
}

// Get returns the value for key, or ErrKeyNotFound.
func (s *Store) Get(key string) (string, error) {
	m, err := s.load()
	if err != nil {
		return "", err
	}
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	return v, nil
}

// All returns the whole mapping.
func (s *Store) All() (Mapping, error) {
	return s.load()
}

// Set inserts or overwrites key and persists the mapping.
// Keys and values must be valid UTF-8; nothing is loaded otherwise.
func (s *Store) Set(key, value string) error {
	if !utf8.ValidString(key) {
		return fmt.Errorf("key %q: %w", key, ErrInvalidUTF8)
	}
	if !utf8.ValidString(value) {
		return fmt.Errorf("value %q: %w", value, ErrInvalidUTF8)
	}

	m, err := s.load()
	if err != nil {
		return err
	}
	m[key] = value
	log.Debug("set", "key", key)
	return s.save(m)
}

// RemoveByKey removes key if present and persists. It reports whether anything was removed.
func (s *Store) RemoveByKey(key string) (bool, error) {
	m, err := s.load()
	if err != nil {
		return false, err
	}
	return s.removeByKey(m, key)
}

// RemoveByValue removes the first key holding value and persists.
// It returns the removed key, or "" and false if no key holds value.
func (s *Store) RemoveByValue(value string) (string, bool, error) {
	m, err := s.load()
	if err != nil {
		return "", false, err
	}
	return s.removeByValue(m, value)
}

// Delete applies key removal then value removal to a single loaded mapping.
// Each removal that succeeds is persisted on its own. A nil key or value
// skips that mode; both nil is ErrNothingToDelete and nothing is loaded.
func (s *Store) Delete(key, value *string) (*DeleteResult, error) {
	if key == nil && value == nil {
		return nil, ErrNothingToDelete
	}

	m, err := s.load()
	if err != nil {
		return nil, err
	}

	result := &DeleteResult{Removed: []string{}}
	if key != nil {
		removed, err := s.removeByKey(m, *key)
		if err != nil {
			return nil, err
		}
		if removed {
			result.Removed = append(result.Removed, *key)
		}
	}
	if value != nil {
		k, removed, err := s.removeByValue(m, *value)
		if err != nil {
			return nil, err
		}
		if removed {
			result.Removed = append(result.Removed, k)
		}
	}
	return result, nil
}

func (s *Store) removeByKey(m Mapping, key string) (bool, error) {
	if !m.RemoveKey(key) {
		return false, nil
	}
	log.Debug("removed by key", "key", key)
	if err := s.save(m); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) removeByValue(m Mapping, value string) (string, bool, error) {
	k, ok := m.KeyForValue(value)
	if !ok {
		return "", false, nil
	}
	delete(m, k)
	log.Debug("removed by value", "key", k)
	if err := s.save(m); err != nil {
		return "", false, err
	}
	return k, true, nil
}

func (s *Store) load() (Mapping, error) {
	m, err := s.repo.Load()
	if err != nil {
		return nil, err
	}
	log.Debug("loaded database", "path", s.repo.Path(), "entries", len(m))
	return m, nil
}

func (s *Store) save(m Mapping) error {
	if err := s.repo.Save(m); err != nil {
		return err
	}
	log.Debug("saved database", "path", s.repo.Path(), "entries", len(m))
	return nil
}
