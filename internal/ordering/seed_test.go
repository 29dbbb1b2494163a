package ordering

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeed_AppliesUnknownPaths(t *testing.T) {
	store := NewMemoryStore()

	seed := Seed{
		RootKey: "menu",
		Entries: []SeedEntry{
			{Path: "", Names: []string{"Project", "Tools", "Help"}},
			{Path: "Tools", Names: []string{"Format", "Lint"}},
		},
	}
	require.NoError(t, seed.Apply(store))

	order, ok := store.Get("menu", "")
	require.True(t, ok)
	require.Equal(t, []string{"Project", "Tools", "Help"}, order)

	order, ok = store.Get("menu", "Tools")
	require.True(t, ok)
	require.Equal(t, []string{"Format", "Lint"}, order)
}

func TestSeed_NeverOverwritesRecordedHistory(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set("menu", "", []string{"Help", "Project"}))

	seed := Seed{
		RootKey: "menu",
		Entries: []SeedEntry{
			{Path: "", Names: []string{"Project", "Tools", "Help"}},
			{Path: "Tools", Names: []string{"Format"}},
		},
	}
	require.NoError(t, seed.Apply(store))

	order, _ := store.Get("menu", "")
	require.Equal(t, []string{"Help", "Project"}, order)

	order, _ = store.Get("menu", "Tools")
	require.Equal(t, []string{"Format"}, order)
}

func TestSeed_SkipsEmptyEntries(t *testing.T) {
	store := NewMemoryStore()

	seed := Seed{
		RootKey: "menu",
		Entries: []SeedEntry{{Path: "Tools"}},
	}
	require.NoError(t, seed.Apply(store))

	_, ok := store.Get("menu", "Tools")
	require.False(t, ok)
}

type rejectingStore struct {
	*MemoryStore
}

func (s *rejectingStore) Set(_, _ string, _ []string) error {
	return errors.New("read-only store")
}

func TestSeed_CollectsWriteFailures(t *testing.T) {
	store := &rejectingStore{MemoryStore: NewMemoryStore()}

	seed := Seed{
		RootKey: "menu",
		Entries: []SeedEntry{
			{Path: "", Names: []string{"Project"}},
			{Path: "Tools", Names: []string{"Format"}},
		},
	}

	err := seed.Apply(store)
	require.Error(t, err)
	require.Contains(t, err.Error(), `seeding ""`)
	require.Contains(t, err.Error(), `seeding "Tools"`)
	require.Contains(t, err.Error(), "read-only store")
}
