package ordering

import "sync"

// MemoryStore keeps orderings in process memory. It backs tests and
// --no-persist runs, where a session should start from the authored order
// and leave no trace behind.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string][]string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[string][]string)}
}

// Get returns the recorded order for (rootKey, path).
func (s *MemoryStore) Get(rootKey, path string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[Key(rootKey, path)]
	if !ok {
		return nil, false
	}
	return copyNames(order), true
}

// Set records the order for (rootKey, path). An empty order clears the
// entry.
func (s *MemoryStore) Set(rootKey, path string, order []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Key(rootKey, path)
	if len(order) == 0 {
		delete(s.orders, key)
		return nil
	}
	s.orders[key] = copyNames(order)
	return nil
}

// All returns a copy of every recorded ordering.
func (s *MemoryStore) All() (map[string][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make(map[string][]string, len(s.orders))
	for key, order := range s.orders {
		all[key] = copyNames(order)
	}
	return all, nil
}

// Reset removes the entry for (rootKey, path).
func (s *MemoryStore) Reset(rootKey, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.orders, Key(rootKey, path))
	return nil
}

// ResetAll removes every entry.
func (s *MemoryStore) ResetAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = make(map[string][]string)
	return nil
}

func copyNames(names []string) []string {
	cp := make([]string, len(names))
	copy(cp, names)
	return cp
}
