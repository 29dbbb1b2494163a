// Package ordering provides the persistence backends for first-seen menu
// ordering. Every backend speaks the same wire form: one entry per seen
// group path, keyed by lowercased "rootKey/path", valued by the
// comma-separated identifier list.
package ordering

import (
	"strings"

	"github.com/zjrosen/espalier/internal/registry"
)

// Store is what the order:* commands need from a backend: the merge-facing
// read/write pair plus introspection and reset.
type Store interface {
	registry.OrderingStore

	// All returns every recorded ordering, keyed by storage key.
	All() (map[string][]string, error)

	// Reset removes one recorded path.
	Reset(rootKey, path string) error

	// ResetAll removes every recorded path.
	ResetAll() error
}

// Flusher is implemented by stores that buffer writes in memory. Callers
// flush after an assemble, and before exit.
type Flusher interface {
	Flush() error
}

// Key builds the storage key for one (rootKey, path) pair. The root path
// renders as "rootKey/".
func Key(rootKey, path string) string {
	return Normalize(rootKey + "/" + path)
}

// Normalize lowercases a key component. Backends store and look up root keys
// and paths case-insensitively, so hand-edited entries match regardless of
// case.
func Normalize(s string) string {
	return strings.ToLower(s)
}

// JoinNames encodes an ordered name list in the persisted wire form.
func JoinNames(names []string) string {
	return strings.Join(names, ",")
}

// SplitNames decodes a persisted name list. Entries are trimmed and empties
// dropped, so hand-edited files survive stray whitespace and trailing
// commas.
func SplitNames(s string) []string {
	parts := strings.Split(s, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
