package ordering

// frozenStore is a Store whose merge-facing writes are disabled. Reads,
// reset, and introspection pass through, so the order maintenance commands
// keep working against the underlying backend.
type frozenStore struct {
	Store
}

// Frozen wraps store so Set succeeds without recording anything. Backing
// the order-freeze flag: merges still rank by what the store already knows,
// but newly seen items are never written back.
func Frozen(store Store) Store {
	return frozenStore{Store: store}
}

func (frozenStore) Set(rootKey, path string, order []string) error {
	return nil
}
