package ordering

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetMissingPath(t *testing.T) {
	store := NewMemoryStore()

	order, ok := store.Get("menu", "File")
	require.False(t, ok)
	require.Nil(t, order)
}

func TestMemoryStore_SetAndGet(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Set("menu", "File", []string{"Open", "Save", "Close"}))

	order, ok := store.Get("menu", "File")
	require.True(t, ok)
	require.Equal(t, []string{"Open", "Save", "Close"}, order)
}

func TestMemoryStore_KeysAreCaseInsensitive(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Set("Menu", "File/Recent", []string{"A", "B"}))

	order, ok := store.Get("menu", "file/recent")
	require.True(t, ok)
	require.Equal(t, []string{"A", "B"}, order)
}

func TestMemoryStore_ValuesPreserveCase(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Set("menu", "", []string{"File", "EDIT", "view"}))

	order, _ := store.Get("menu", "")
	require.Equal(t, []string{"File", "EDIT", "view"}, order)
}

func TestMemoryStore_GetReturnsACopy(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set("menu", "", []string{"A", "B"}))

	order, _ := store.Get("menu", "")
	order[0] = "mutated"

	fresh, _ := store.Get("menu", "")
	require.Equal(t, []string{"A", "B"}, fresh)
}

func TestMemoryStore_EmptyOrderClearsEntry(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set("menu", "File", []string{"Open"}))

	require.NoError(t, store.Set("menu", "File", nil))

	_, ok := store.Get("menu", "File")
	require.False(t, ok)
}

func TestMemoryStore_All(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set("menu", "", []string{"File", "Edit"}))
	require.NoError(t, store.Set("menu", "File", []string{"Open"}))

	all, err := store.All()
	require.NoError(t, err)
	require.Equal(t, map[string][]string{
		"menu/":     {"File", "Edit"},
		"menu/file": {"Open"},
	}, all)
}

func TestMemoryStore_Reset(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set("menu", "", []string{"File"}))
	require.NoError(t, store.Set("menu", "File", []string{"Open"}))

	require.NoError(t, store.Reset("menu", "File"))

	_, ok := store.Get("menu", "File")
	require.False(t, ok)
	_, ok = store.Get("menu", "")
	require.True(t, ok)
}

func TestMemoryStore_ResetAll(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set("menu", "", []string{"File"}))
	require.NoError(t, store.Set("menu", "File", []string{"Open"}))

	require.NoError(t, store.ResetAll())

	all, err := store.All()
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestSplitNames_TrimsAndDropsEmpties(t *testing.T) {
	require.Equal(t, []string{"Open", "Save As", "Close"}, SplitNames("Open, Save As ,,Close,"))
	require.Empty(t, SplitNames(""))
	require.Empty(t, SplitNames(" , ,"))
}

func TestKey_RootPathHasTrailingSlash(t *testing.T) {
	require.Equal(t, "menu/", Key("Menu", ""))
	require.Equal(t, "menu/file/recent", Key("menu", "File/Recent"))
}
