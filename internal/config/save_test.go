package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveSeeds_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	err := SaveSeeds(path, []SeedConfig{
		{Path: "", Names: []string{"Project", "Tools", "Help"}},
	})
	require.NoError(t, err)

	cfg := loadConfigFile(t, path)
	require.Len(t, cfg.Ordering.Seeds, 1)
	require.Equal(t, "", cfg.Ordering.Seeds[0].Path)
	require.Equal(t, []string{"Project", "Tools", "Help"}, cfg.Ordering.Seeds[0].Names)
}

func TestSaveSeeds_PreservesOtherSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	initial := `# my tweaks
fragments_dir: ~/dotfiles/espalier # keep this comment

ordering:
  backend: sqlite

ui:
  show_status_bar: false
`
	require.NoError(t, os.WriteFile(path, []byte(initial), 0o644))

	err := SaveSeeds(path, []SeedConfig{{Path: "Tools", Names: []string{"Docker", "Kubernetes"}}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# my tweaks")
	require.Contains(t, string(data), "# keep this comment")

	cfg := loadConfigFile(t, path)
	require.Equal(t, "~/dotfiles/espalier", cfg.FragmentsDir)
	require.Equal(t, "sqlite", cfg.Ordering.Backend)
	require.False(t, cfg.UI.ShowStatusBar)
	require.Len(t, cfg.Ordering.Seeds, 1)
	require.Equal(t, "Tools", cfg.Ordering.Seeds[0].Path)
}

func TestSaveSeeds_ReplacesExistingSeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	initial := `ordering:
  seeds:
    - path: ""
      names: [Old, Stale]
`
	require.NoError(t, os.WriteFile(path, []byte(initial), 0o644))

	err := SaveSeeds(path, []SeedConfig{
		{Path: "", Names: []string{"Project", "Tools"}},
		{Path: "Tools", Names: []string{"Docker"}},
	})
	require.NoError(t, err)

	cfg := loadConfigFile(t, path)
	require.Len(t, cfg.Ordering.Seeds, 2)
	require.Equal(t, []string{"Project", "Tools"}, cfg.Ordering.Seeds[0].Names)
	require.Equal(t, []string{"Docker"}, cfg.Ordering.Seeds[1].Names)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "Stale")
}

func TestSaveSeeds_BareOrderingPlaceholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ordering:\n"), 0o644))

	err := SaveSeeds(path, []SeedConfig{{Path: "", Names: []string{"Project"}}})
	require.NoError(t, err)

	cfg := loadConfigFile(t, path)
	require.Len(t, cfg.Ordering.Seeds, 1)
}

func TestSaveSeeds_AppendsOrderingSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auto_reload: true\n"), 0o644))

	err := SaveSeeds(path, []SeedConfig{{Path: "", Names: []string{"Project"}}})
	require.NoError(t, err)

	cfg := loadConfigFile(t, path)
	require.True(t, cfg.AutoReload)
	require.Len(t, cfg.Ordering.Seeds, 1)
}

func TestSaveSeeds_FlowStyleNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	err := SaveSeeds(path, []SeedConfig{{Path: "", Names: []string{"Project", "Tools", "Help"}}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "names: [Project, Tools, Help]")
}

func TestSaveSeeds_EmptySeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	initial := `ordering:
  seeds:
    - path: ""
      names: [Project]
`
	require.NoError(t, os.WriteFile(path, []byte(initial), 0o644))

	require.NoError(t, SaveSeeds(path, nil))

	cfg := loadConfigFile(t, path)
	require.Empty(t, cfg.Ordering.Seeds)
}
