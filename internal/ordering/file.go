package ordering

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"github.com/zjrosen/espalier/internal/log"
)

// FileStore persists orderings in a YAML file under a single "orderings"
// map, one key per seen path. Writes buffer in memory; Flush writes the
// file. The file is meant to be hand-editable, which is why the wire form
// stays a flat comma-separated list.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	orders map[string][]string
	dirty  bool
}

var _ Store = (*FileStore)(nil)
var _ Flusher = (*FileStore)(nil)

// NewFileStore loads the store at path, starting empty when the file does
// not exist yet.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		orders: make(map[string][]string),
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading orderings file: %w", err)
		}
		return s, nil
	}

	for key, joined := range v.GetStringMapString("orderings") {
		if names := SplitNames(joined); len(names) > 0 {
			s.orders[Normalize(key)] = names
		}
	}
	log.Debug(log.CatOrdering, "loaded orderings", "path", path, "entries", len(s.orders))
	return s, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the recorded order for (rootKey, path).
func (s *FileStore) Get(rootKey, path string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[Key(rootKey, path)]
	if !ok {
		return nil, false
	}
	return copyNames(order), true
}

// Set records the order for (rootKey, path) in memory. An empty order
// clears the entry. The file is not touched until Flush.
func (s *FileStore) Set(rootKey, path string, order []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Key(rootKey, path)
	if len(order) == 0 {
		if _, ok := s.orders[key]; ok {
			delete(s.orders, key)
			s.dirty = true
		}
		return nil
	}
	s.orders[key] = copyNames(order)
	s.dirty = true
	return nil
}

// All returns a copy of every recorded ordering.
func (s *FileStore) All() (map[string][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make(map[string][]string, len(s.orders))
	for key, order := range s.orders {
		all[key] = copyNames(order)
	}
	return all, nil
}

// Reset removes the entry for (rootKey, path).
func (s *FileStore) Reset(rootKey, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Key(rootKey, path)
	if _, ok := s.orders[key]; ok {
		delete(s.orders, key)
		s.dirty = true
	}
	return nil
}

// ResetAll removes every entry.
func (s *FileStore) ResetAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.orders) > 0 {
		s.dirty = true
	}
	s.orders = make(map[string][]string)
	return nil
}

// Flush writes buffered changes to the backing file. A store with no
// changes since the last flush writes nothing.
func (s *FileStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}

	joined := make(map[string]string, len(s.orders))
	for key, order := range s.orders {
		joined[key] = JoinNames(order)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("creating orderings directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("orderings", joined)
	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing orderings file: %w", err)
	}

	s.dirty = false
	log.Debug(log.CatOrdering, "flushed orderings", "path", s.path, "entries", len(s.orders))
	return nil
}
