package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/espalier/internal/ordering"
	"github.com/zjrosen/espalier/internal/registry"
)

// setupTestRepo creates a new DB and returns the repository for testing.
// The DB is closed when the test completes.
func setupTestRepo(t *testing.T) ordering.Store {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := NewDB(dbPath)
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() { db.Close() })
	return db.OrderingRepository()
}

func TestOrderingRepository_GetMissingPath(t *testing.T) {
	repo := setupTestRepo(t)

	names, ok := repo.Get("menu", "File")
	require.False(t, ok, "Get should report no record for an unknown path")
	require.Nil(t, names)
}

func TestOrderingRepository_SetAndGet(t *testing.T) {
	repo := setupTestRepo(t)

	err := repo.Set("menu", "File", []string{"Open", "Save", "Close"})
	require.NoError(t, err)

	names, ok := repo.Get("menu", "File")
	require.True(t, ok)
	require.Equal(t, []string{"Open", "Save", "Close"}, names)
}

func TestOrderingRepository_SetReplacesExisting(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Set("menu", "File", []string{"Open", "Save"}))
	require.NoError(t, repo.Set("menu", "File", []string{"Open", "Save", "Close"}))

	names, ok := repo.Get("menu", "File")
	require.True(t, ok)
	require.Equal(t, []string{"Open", "Save", "Close"}, names)
}

func TestOrderingRepository_UpsertKeepsCreatedAt(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := NewDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// Seed a row with a known created_at, then overwrite through the repo.
	_, err = db.Connection().Exec(
		"INSERT INTO orderings (root_key, path, names, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		"menu", "file", "Open,Save", 1000, 1000,
	)
	require.NoError(t, err)

	repo := db.OrderingRepository()
	require.NoError(t, repo.Set("menu", "File", []string{"Open", "Save", "Close"}))

	var createdAt, updatedAt int64
	err = db.Connection().QueryRow(
		"SELECT created_at, updated_at FROM orderings WHERE root_key = 'menu' AND path = 'file'",
	).Scan(&createdAt, &updatedAt)
	require.NoError(t, err)
	require.Equal(t, int64(1000), createdAt, "Upsert should keep the original created_at")
	require.Greater(t, updatedAt, int64(1000), "Upsert should advance updated_at")
}

func TestOrderingRepository_KeysAreCaseInsensitive(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Set("Menu", "File/Recent", []string{"A", "B"}))

	names, ok := repo.Get("menu", "file/recent")
	require.True(t, ok, "Lookup should be case-insensitive")
	require.Equal(t, []string{"A", "B"}, names)
}

func TestOrderingRepository_ValuesPreserveCase(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Set("menu", "File", []string{"Save As", "EXPORT"}))

	names, ok := repo.Get("menu", "File")
	require.True(t, ok)
	require.Equal(t, []string{"Save As", "EXPORT"}, names)
}

func TestOrderingRepository_EmptyOrderClearsEntry(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Set("menu", "File", []string{"Open"}))
	require.NoError(t, repo.Set("menu", "File", nil))

	_, ok := repo.Get("menu", "File")
	require.False(t, ok, "Empty order should remove the record")
}

func TestOrderingRepository_All(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Set("menu", "", []string{"File", "Edit"}))
	require.NoError(t, repo.Set("menu", "File", []string{"Open", "Save"}))

	all, err := repo.All()
	require.NoError(t, err)
	require.Equal(t, map[string][]string{
		"menu/":     {"File", "Edit"},
		"menu/file": {"Open", "Save"},
	}, all)
}

func TestOrderingRepository_Reset(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Set("menu", "File", []string{"Open"}))
	require.NoError(t, repo.Set("menu", "Edit", []string{"Undo"}))

	require.NoError(t, repo.Reset("menu", "File"))

	_, ok := repo.Get("menu", "File")
	require.False(t, ok, "Reset path should be gone")
	_, ok = repo.Get("menu", "Edit")
	require.True(t, ok, "Other paths should survive a reset")

	// Resetting an unknown path is not an error
	require.NoError(t, repo.Reset("menu", "Nope"))
}

func TestOrderingRepository_ResetAll(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Set("menu", "File", []string{"Open"}))
	require.NoError(t, repo.Set("menu", "Edit", []string{"Undo"}))

	require.NoError(t, repo.ResetAll())

	all, err := repo.All()
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestOrderingRepository_PersistsAcrossReopen(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err)
	require.NoError(t, db1.OrderingRepository().Set("menu", "File", []string{"Open", "Save"}))
	require.NoError(t, db1.Close())

	db2, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db2.Close()

	names, ok := db2.OrderingRepository().Get("menu", "File")
	require.True(t, ok, "Recorded order should survive a reopen")
	require.Equal(t, []string{"Open", "Save"}, names)
}

func TestOrderingRepository_RecordsMergeOrder(t *testing.T) {
	repo := setupTestRepo(t)

	top := registry.NewGroup("builtin", registry.OrderingWeak,
		registry.NewGroup("File", registry.OrderingWeak,
			registry.NewSingleItem("Open"),
			registry.NewSingleItem("Save"),
		),
	)
	reg := registry.NewGroup("registered", registry.OrderingWeak,
		registry.NewGroup("File", registry.OrderingWeak,
			registry.NewSingleItem("Close"),
		),
		registry.NewSingleItem("Help"),
	)

	m := registry.NewMerger(registry.MergerConfig{Store: repo, RootKey: "menu"})
	diags := m.Visit(registry.VisitorFuncs{}, top, reg)
	require.Empty(t, diags)

	names, ok := repo.Get("menu", "")
	require.True(t, ok, "Merge should record the root level")
	require.Equal(t, []string{"File", "Help"}, names)

	names, ok = repo.Get("menu", "File")
	require.True(t, ok, "Merge should record nested levels")
	require.Equal(t, []string{"Open", "Save", "Close"}, names)
}

// TestOrderingRepository_RoundTrip is a property-based test using rapid.
// It verifies that any comma-free name list survives a Set/Get round trip
// under any key casing.
func TestOrderingRepository_RoundTrip(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		repo := setupTestRepo(t)

		path := rapid.StringMatching(`[A-Za-z]{1,6}(/[A-Za-z]{1,6}){0,2}`).Draw(r, "path")
		numNames := rapid.IntRange(1, 8).Draw(r, "numNames")

		seen := make(map[string]bool)
		var names []string
		for i := 0; i < numNames; i++ {
			name := rapid.StringMatching(`[A-Za-z][A-Za-z0-9_-]{0,11}`).Draw(r, "name")
			if seen[name] {
				// Duplicate draw, skip
				continue
			}
			seen[name] = true
			names = append(names, name)
		}

		if err := repo.Set("menu", path, names); err != nil {
			r.Fatalf("Set failed: %v", err)
		}

		got, ok := repo.Get("MENU", ordering.Normalize(path))
		if !ok {
			r.Fatalf("Get found no record for path %q", path)
		}
		if len(got) != len(names) {
			r.Fatalf("round trip changed length: sent %v, got %v", names, got)
		}
		for i := range names {
			if got[i] != names[i] {
				r.Fatalf("round trip changed name %d: sent %v, got %v", i, names, got)
			}
		}
	})
}
