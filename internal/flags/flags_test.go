package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		flag     string
		expected bool
	}{
		{
			name:     "known flag set to true returns true",
			registry: New(map[string]bool{FlagExecInPlace: true}),
			flag:     FlagExecInPlace,
			expected: true,
		},
		{
			name:     "known flag set to false returns false",
			registry: New(map[string]bool{FlagOrderFreeze: false}),
			flag:     FlagOrderFreeze,
			expected: false,
		},
		{
			name:     "unknown flag returns false",
			registry: New(map[string]bool{FlagExecInPlace: true}),
			flag:     "unknown-flag",
			expected: false,
		},
		{
			name:     "nil registry returns false",
			registry: nil,
			flag:     FlagExecInPlace,
			expected: false,
		},
		{
			name:     "empty registry returns false",
			registry: New(map[string]bool{}),
			flag:     FlagShowDiagnostics,
			expected: false,
		},
		{
			name:     "nil flags map returns false",
			registry: New(nil),
			flag:     FlagOrderFreeze,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.registry.Enabled(tt.flag))
		})
	}
}

func TestRegistry_Enabled_MultipleFlags(t *testing.T) {
	r := New(map[string]bool{
		FlagExecInPlace:     true,
		FlagOrderFreeze:     false,
		FlagShowDiagnostics: true,
	})

	require.True(t, r.Enabled(FlagExecInPlace))
	require.False(t, r.Enabled(FlagOrderFreeze))
	require.True(t, r.Enabled(FlagShowDiagnostics))
	require.False(t, r.Enabled("not-a-flag"))
}

func TestRegistry_All(t *testing.T) {
	r := New(map[string]bool{FlagExecInPlace: true, FlagOrderFreeze: false})
	require.Equal(t, map[string]bool{FlagExecInPlace: true, FlagOrderFreeze: false}, r.All())

	var nilRegistry *Registry
	require.Equal(t, map[string]bool{}, nilRegistry.All())
	require.Equal(t, map[string]bool{}, New(nil).All())
}

func TestRegistry_All_ReturnsDefensiveCopy(t *testing.T) {
	r := New(map[string]bool{FlagExecInPlace: true})

	copied := r.All()
	copied[FlagExecInPlace] = false
	copied[FlagOrderFreeze] = true

	require.True(t, r.Enabled(FlagExecInPlace), "registry should not be affected by copy mutation")
	require.False(t, r.Enabled(FlagOrderFreeze), "registry should not gain flags from copy mutation")
}

func TestNew_WithNilFlags(t *testing.T) {
	r := New(nil)
	require.NotNil(t, r)
	require.False(t, r.Enabled(FlagExecInPlace))
}
