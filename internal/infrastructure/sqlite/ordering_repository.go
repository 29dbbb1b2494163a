package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/zjrosen/espalier/internal/log"
	"github.com/zjrosen/espalier/internal/ordering"
)

// orderingColumns is the list of columns to select for ordering queries.
const orderingColumns = `root_key, path, names, created_at, updated_at`

// orderingRepository implements ordering.Store using SQLite.
type orderingRepository struct {
	db *sql.DB
}

// newOrderingRepository creates a new orderingRepository instance.
func newOrderingRepository(db *sql.DB) *orderingRepository {
	return &orderingRepository{db: db}
}

// Ensure orderingRepository implements ordering.Store.
var _ ordering.Store = (*orderingRepository)(nil)

// scanOrdering scans a row into an OrderingModel.
func scanOrdering(scanner interface{ Scan(...any) error }) (*OrderingModel, error) {
	var model OrderingModel
	err := scanner.Scan(
		&model.RootKey, &model.Path, &model.Names,
		&model.CreatedAt, &model.UpdatedAt,
	)
	return &model, err
}

// Get returns the recorded order for a path and whether one exists.
// Query failures are logged and reported as "no record": the merge must not
// stall on a flaky disk, and the next Set will retry the write path anyway.
func (r *orderingRepository) Get(rootKey, path string) ([]string, bool) {
	row := r.db.QueryRow(
		`SELECT `+orderingColumns+` FROM orderings WHERE root_key = ? AND path = ?`,
		ordering.Normalize(rootKey), ordering.Normalize(path),
	)
	model, err := scanOrdering(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		log.ErrorErr(log.CatDB, "failed to read ordering", err, "rootKey", rootKey, "path", path)
		return nil, false
	}
	return model.names(), true
}

// Set records the order for a path, replacing any previous record. An empty
// order removes the record entirely.
func (r *orderingRepository) Set(rootKey, path string, order []string) error {
	if len(order) == 0 {
		return r.Reset(rootKey, path)
	}

	model := newOrderingModel(rootKey, path, order)
	_, err := r.db.Exec(
		`INSERT INTO orderings (root_key, path, names, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(root_key, path) DO UPDATE SET
			names = excluded.names,
			updated_at = excluded.updated_at`,
		model.RootKey, model.Path, model.Names, model.CreatedAt, model.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record ordering: %w", err)
	}
	return nil
}

// All returns every recorded ordering, keyed by storage key.
func (r *orderingRepository) All() (map[string][]string, error) {
	rows, err := r.db.Query(
		`SELECT ` + orderingColumns + ` FROM orderings ORDER BY root_key, path`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orderings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	all := make(map[string][]string)
	for rows.Next() {
		model, err := scanOrdering(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ordering row: %w", err)
		}
		all[model.key()] = model.names()
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ordering rows: %w", err)
	}

	return all, nil
}

// Reset removes one recorded path. Resetting an unknown path is not an error.
func (r *orderingRepository) Reset(rootKey, path string) error {
	_, err := r.db.Exec(
		`DELETE FROM orderings WHERE root_key = ? AND path = ?`,
		ordering.Normalize(rootKey), ordering.Normalize(path),
	)
	if err != nil {
		return fmt.Errorf("failed to reset ordering: %w", err)
	}
	return nil
}

// ResetAll removes every recorded path.
func (r *orderingRepository) ResetAll() error {
	if _, err := r.db.Exec(`DELETE FROM orderings`); err != nil {
		return fmt.Errorf("failed to reset orderings: %w", err)
	}
	return nil
}
