package treeview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/espalier/internal/menus"
	"github.com/zjrosen/espalier/internal/registry"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	m.Run()
}

// fixtureRoots builds a small two-section tree by hand:
//
//	Project
//	├─ Git
//	│  ├─ Status
//	│  └─ Log
//	└─ Shell
//	Scratch
func fixtureRoots() []*menus.Node {
	status := &menus.Node{Name: "Status", Path: registry.Path{"Project", "Git"}, Exec: "git status -sb", Description: "Working tree summary"}
	log := &menus.Node{Name: "Log", Path: registry.Path{"Project", "Git"}, Exec: "git log --oneline"}
	git := &menus.Node{Name: "Git", Path: registry.Path{"Project"}, Group: true, Children: []*menus.Node{status, log}}
	shell := &menus.Node{Name: "Shell", Path: registry.Path{"Project"}, Exec: "$SHELL"}
	project := &menus.Node{Name: "Project", Group: true, Children: []*menus.Node{git, shell}}
	scratch := &menus.Node{Name: "Scratch", Exec: "$EDITOR ~/scratch.md"}
	return []*menus.Node{project, scratch}
}

func rowNames(rows []row) []string {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.node.Name
	}
	return names
}

func TestWalkRows_FlattensDepthFirst(t *testing.T) {
	rows := walkRows(fixtureRoots(), "", nil)

	require.Equal(t, []string{"Project", "Git", "Status", "Log", "Shell", "Scratch"}, rowNames(rows))
}

func TestWalkRows_TopLevelFlushLeft(t *testing.T) {
	rows := walkRows(fixtureRoots(), "", nil)

	require.Empty(t, rows[0].prefix, "Project")
	require.Empty(t, rows[5].prefix, "Scratch")
}

func TestWalkRows_BranchConnectors(t *testing.T) {
	rows := walkRows(fixtureRoots(), "", nil)

	require.Equal(t, "├─ ", rows[1].prefix, "Git")
	require.Equal(t, "│  ├─ ", rows[2].prefix, "Status")
	require.Equal(t, "│  └─ ", rows[3].prefix, "Log")
	require.Equal(t, "└─ ", rows[4].prefix, "Shell")
}

func TestWalkRows_SkipsCollapsedChildren(t *testing.T) {
	collapsed := map[string]bool{"Project/Git": true}
	rows := walkRows(fixtureRoots(), "", collapsed)

	require.Equal(t, []string{"Project", "Git", "Shell", "Scratch"}, rowNames(rows))
}

func TestWalkRows_CollapsedRoot(t *testing.T) {
	collapsed := map[string]bool{"Project": true}
	rows := walkRows(fixtureRoots(), "", collapsed)

	require.Equal(t, []string{"Project", "Scratch"}, rowNames(rows))
}

func TestFilterRows_MatchesActionName(t *testing.T) {
	rows := filterRows(fixtureRoots(), "status")

	require.Equal(t, []string{"Project", "Git", "Status"}, rowNames(rows))
}

func TestFilterRows_MatchesExec(t *testing.T) {
	rows := filterRows(fixtureRoots(), "scratch.md")

	require.Equal(t, []string{"Scratch"}, rowNames(rows))
}

func TestFilterRows_GroupMatchKeepsSubtree(t *testing.T) {
	rows := filterRows(fixtureRoots(), "git")

	// Matching the Git group keeps everything under it visible.
	require.Equal(t, []string{"Project", "Git", "Status", "Log"}, rowNames(rows))
}

func TestFilterRows_IgnoresCollapseState(t *testing.T) {
	// A filtered view always shows matches, even inside collapsed groups.
	m := &Model{collapsed: map[string]bool{"Project/Git": true}}
	m.snapshot = &menus.Snapshot{ID: "s1", Roots: fixtureRoots()}
	m.filter.SetValue("log")
	m.rebuildRows()

	require.Equal(t, []string{"Project", "Git", "Log"}, rowNames(m.rows))
}

func TestFilterRows_NoMatches(t *testing.T) {
	require.Empty(t, filterRows(fixtureRoots(), "zzz"))
}

func TestRenderRow_CursorAndMarkers(t *testing.T) {
	m := &Model{collapsed: make(map[string]bool)}
	m.rows = walkRows(fixtureRoots(), "", m.collapsed)

	line := ansi.Strip(m.renderRow(0, 40))
	require.True(t, strings.HasPrefix(line, ">"), "cursor row: %q", line)
	require.Contains(t, line, "▾ Project")

	m.collapsed["Project"] = true
	line = ansi.Strip(m.renderRow(0, 40))
	require.Contains(t, line, "▸ Project")

	line = ansi.Strip(m.renderRow(5, 40))
	require.True(t, strings.HasPrefix(line, " "), "non-cursor row: %q", line)
}

func TestRenderRow_ExecPreviewRightAligned(t *testing.T) {
	m := &Model{collapsed: make(map[string]bool)}
	m.rows = walkRows(fixtureRoots(), "", m.collapsed)
	m.cursor = 2

	line := ansi.Strip(m.renderRow(2, 60))
	require.Contains(t, line, "Status")
	require.Contains(t, line, "git status -sb")
}

func TestRenderRow_NoPreviewWhenNarrow(t *testing.T) {
	m := &Model{collapsed: make(map[string]bool)}
	m.rows = walkRows(fixtureRoots(), "", m.collapsed)

	line := ansi.Strip(m.renderRow(2, 16))
	require.Contains(t, line, "Status")
	require.NotContains(t, line, "git status")
}

func TestRenderRows_EmptyStates(t *testing.T) {
	m := &Model{collapsed: make(map[string]bool)}
	require.Contains(t, ansi.Strip(m.renderRows(40, 10)), "assembling")

	m.snapshot = &menus.Snapshot{ID: "s1"}
	m.rebuildRows()
	require.Contains(t, ansi.Strip(m.renderRows(40, 10)), "menu is empty")

	m.filter.SetValue("nope")
	m.rebuildRows()
	require.Contains(t, ansi.Strip(m.renderRows(40, 10)), `"nope"`)
}

func TestRenderRows_ScrollIndicators(t *testing.T) {
	m := &Model{collapsed: make(map[string]bool)}
	m.snapshot = &menus.Snapshot{ID: "s1", Roots: fixtureRoots()}
	m.rebuildRows()
	m.scroll = 1

	out := ansi.Strip(m.renderRows(40, 3))
	require.Contains(t, out, "↑ 1 more above")
	require.Contains(t, out, "↓ 2 more below")
}
