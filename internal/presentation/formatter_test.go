package presentation_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/espalier/internal/fragments"
	"github.com/zjrosen/espalier/internal/menus"
	"github.com/zjrosen/espalier/internal/presentation"
	"github.com/zjrosen/espalier/internal/registry"
)

// testSnapshot builds a small assembled menu by hand: two top-level entries,
// one nested group, one diagnostic.
func testSnapshot() *menus.Snapshot {
	return &menus.Snapshot{
		ID:        "snap-1",
		CreatedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Fragments: 2,
		Roots: []*menus.Node{
			{Name: "Project", Group: true, Children: []*menus.Node{
				{Name: "Shell", Path: registry.Path{"Project"}, Exec: "exec $SHELL"},
				{Name: "Git", Path: registry.Path{"Project"}, Group: true, Children: []*menus.Node{
					{Name: "Status", Path: registry.Path{"Project", "Git"}, Exec: "git status", Description: "Show working tree status"},
				}},
			}},
			{Name: "Quit", Exec: "exit"},
		},
		Diagnostics: []registry.Diagnostic{
			{Kind: registry.DiagUnsatisfiableHint, Path: "Tools", Name: "Disk", Detail: `before "Swap": no such sibling`},
		},
	}
}

func TestFromSnapshot(t *testing.T) {
	dto := presentation.FromSnapshot(testSnapshot())

	require.Equal(t, "snap-1", dto.ID)
	require.Equal(t, 2, dto.Fragments)
	require.Equal(t, 3, dto.Actions)
	require.Equal(t, 2, dto.Groups)

	require.Len(t, dto.Menu, 2)
	require.Equal(t, "Project", dto.Menu[0].Name)
	require.Equal(t, "Project", dto.Menu[0].Path)
	require.True(t, dto.Menu[0].Group)

	status := dto.Menu[0].Children[1].Children[0]
	require.Equal(t, "Project/Git/Status", status.Path)
	require.Equal(t, "git status", status.Exec)
	require.Equal(t, "Show working tree status", status.Description)

	require.Len(t, dto.Diagnostics, 1)
	require.Equal(t, "unsatisfiable-hint", dto.Diagnostics[0].Kind)
	require.Equal(t, "Tools", dto.Diagnostics[0].Path)
}

func TestTreeLines(t *testing.T) {
	dto := presentation.FromSnapshot(testSnapshot())

	lines := presentation.TreeLines(dto)
	require.Equal(t, []string{
		"Project",
		"├─ Shell  $ exec $SHELL",
		"└─ Git",
		"   └─ Status  $ git status",
		"Quit  $ exit",
	}, lines)
}

func TestFormatTree_IncludesDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	f := presentation.NewFormatter(&buf)

	err := f.FormatTree(presentation.FromSnapshot(testSnapshot()))
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "Project")
	require.Contains(t, out, `warning: unsatisfiable-hint at "Tools" (item "Disk"): before "Swap": no such sibling`)
}

func TestFormatJSON_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	f := presentation.NewFormatter(&buf)

	err := f.FormatJSON(presentation.FromSnapshot(testSnapshot()))
	require.NoError(t, err)

	var decoded presentation.SnapshotDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "snap-1", decoded.ID)
	require.Equal(t, 3, decoded.Actions)
	require.Equal(t, "Project/Shell", decoded.Menu[0].Children[0].Path)
}

func TestFromFragmentFile_CountsDefs(t *testing.T) {
	f := &fragments.File{
		Name: "git",
		Path: "10-git.yaml",
		Items: []fragments.Def{
			{Name: "Git", Items: []fragments.Def{
				{Name: "Status", Exec: "git status"},
				{Name: "Log", Exec: "git log --oneline"},
			}},
			{At: "Project", Name: "Push", Exec: "git push"},
		},
	}

	dto := presentation.FromFragmentFile(f)
	require.Equal(t, "git", dto.Name)
	require.Equal(t, "10-git.yaml", dto.Path)
	require.Equal(t, 3, dto.Actions)
	require.Equal(t, 1, dto.Groups)
}

func TestFormatFragments(t *testing.T) {
	var buf bytes.Buffer
	f := presentation.NewFormatter(&buf)

	err := f.FormatFragments([]presentation.FragmentDTO{
		{Name: "git", Path: "10-git.yaml", Actions: 3, Groups: 1},
		{Name: "docker", Path: "20-docker.yml", Actions: 2, Groups: 1},
	})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "NAME")
	require.Contains(t, out, "10-git.yaml")
	require.Contains(t, out, "20-docker.yml")
}

func TestFormatFragments_Empty(t *testing.T) {
	var buf bytes.Buffer
	f := presentation.NewFormatter(&buf)

	require.NoError(t, f.FormatFragments(nil))
	require.Contains(t, buf.String(), "no fragments loaded")
}

func TestFromOrders_SortsByPath(t *testing.T) {
	dtos := presentation.FromOrders(map[string][]string{
		"menu/Tools":   {"Uptime", "Docker"},
		"menu":         {"Project", "Tools", "Help"},
		"menu/Project": {"Shell", "Editor", "Git"},
	})

	require.Len(t, dtos, 3)
	require.Equal(t, "menu", dtos[0].Path)
	require.Equal(t, "menu/Project", dtos[1].Path)
	require.Equal(t, "menu/Tools", dtos[2].Path)
	require.Equal(t, []string{"Uptime", "Docker"}, dtos[2].Names)
}

func TestFormatOrders(t *testing.T) {
	var buf bytes.Buffer
	f := presentation.NewFormatter(&buf)

	err := f.FormatOrders([]presentation.OrderDTO{
		{Path: "menu", Names: []string{"Project", "Tools", "Help"}},
	})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "Project, Tools, Help")
}
