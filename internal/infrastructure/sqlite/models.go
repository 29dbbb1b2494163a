package sqlite

import (
	"time"

	"github.com/zjrosen/espalier/internal/ordering"
)

// OrderingModel represents the database row for the orderings table.
// Fields map directly to SQL columns with Unix timestamps for time values.
type OrderingModel struct {
	RootKey   string
	Path      string
	Names     string // comma-separated identifier list, the shared wire form
	CreatedAt int64  // Unix timestamp
	UpdatedAt int64  // Unix timestamp
}

// newOrderingModel builds a row for (rootKey, path) with normalized keys.
func newOrderingModel(rootKey, path string, names []string) *OrderingModel {
	now := time.Now().Unix()
	return &OrderingModel{
		RootKey:   ordering.Normalize(rootKey),
		Path:      ordering.Normalize(path),
		Names:     ordering.JoinNames(names),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// names decodes the stored identifier list.
func (m *OrderingModel) names() []string {
	return ordering.SplitNames(m.Names)
}

// key returns the storage key the other backends use, so a dump from any
// backend reads the same.
func (m *OrderingModel) key() string {
	return m.RootKey + "/" + m.Path
}
