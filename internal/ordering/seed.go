package ordering

import (
	"errors"
	"fmt"

	"github.com/zjrosen/espalier/internal/log"
	"github.com/zjrosen/espalier/internal/registry"
)

// SeedEntry declares the initial order for one group path.
type SeedEntry struct {
	Path  string
	Names []string
}

// Seed declares initial orderings for paths the store has never seen.
// Seeds come from the built-in menu layout and from the config file; they
// give a fresh install a sensible order without overriding anything the
// user's store already knows.
type Seed struct {
	RootKey string
	Entries []SeedEntry
}

// Apply writes each entry whose path the store does not already know.
// Existing entries always win; a seed never overwrites recorded history.
// Failed writes are collected, and the remaining entries still apply.
func (s Seed) Apply(store registry.OrderingStore) error {
	var errs []error
	for _, e := range s.Entries {
		if len(e.Names) == 0 {
			continue
		}
		if _, ok := store.Get(s.RootKey, e.Path); ok {
			continue
		}
		if err := store.Set(s.RootKey, e.Path, e.Names); err != nil {
			errs = append(errs, fmt.Errorf("seeding %q: %w", e.Path, err))
			continue
		}
		log.Debug(log.CatOrdering, "seeded ordering", "rootKey", s.RootKey, "path", e.Path, "names", len(e.Names))
	}
	return errors.Join(errs...)
}
