package registry

// OrderingStore persists the first-seen ordering of children per group path,
// so merge order stays stable across runs even as new items appear.
//
// Keys are (rootKey, path) pairs: rootKey namespaces independent registries,
// path is the slash-joined group path relative to the registry root (empty
// for the root's own children). Values are ordered identifier lists; absent
// identifiers keep their recorded slot so temporarily missing items return to
// their old position.
//
// Implementations must be safe for concurrent use; a single merge calls the
// store sequentially but independent merges may share one store.
type OrderingStore interface {
	// Get returns the recorded order for a path and whether one exists.
	Get(rootKey, path string) ([]string, bool)

	// Set records the order for a path, replacing any previous record.
	Set(rootKey, path string, order []string) error
}
