package treeview

import (
	"fmt"
	"strings"

	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/espalier/internal/menus"
	"github.com/zjrosen/espalier/internal/ui/styles"
)

// row is one visible line of the tree: the node plus the branch prefix
// computed during the walk.
type row struct {
	node   *menus.Node
	prefix string // "│  " / "   " runs plus the "├─ " or "└─ " connector
}

// rowZoneID names the bubblezone for a visible row index.
func rowZoneID(i int) string {
	return fmt.Sprintf("espalier_row_%d", i)
}

// rebuildRows recomputes the visible rows from the snapshot, collapse state,
// and filter, then clamps the cursor.
func (m *Model) rebuildRows() {
	m.rows = nil
	if m.snapshot != nil {
		if q := strings.TrimSpace(m.filter.Value()); q != "" {
			m.rows = filterRows(m.snapshot.Roots, q)
		} else {
			m.rows = walkRows(m.snapshot.Roots, "", m.collapsed)
		}
	}
	m.clampViewport()
}

// walkRows flattens nodes depth-first, skipping children of collapsed
// groups. Top-level nodes render flush left; below them indent carries the
// accumulated "│  "/"   " runs of the ancestors and a branch connector.
func walkRows(nodes []*menus.Node, indent string, collapsed map[string]bool) []row {
	var out []row
	for i, n := range nodes {
		last := i == len(nodes)-1
		top := len(n.Path) == 0

		prefix := ""
		childIndent := ""
		if !top {
			if last {
				prefix = indent + "└─ "
				childIndent = indent + "   "
			} else {
				prefix = indent + "├─ "
				childIndent = indent + "│  "
			}
		}

		out = append(out, row{node: n, prefix: prefix})
		if n.Group && !collapsed[n.FullPath()] {
			out = append(out, walkRows(n.Children, childIndent, collapsed)...)
		}
	}
	return out
}

// filterRows returns matching actions with their ancestor groups, all
// expanded. A group matches when its own name does, which keeps whole
// sections visible when filtering by section name.
func filterRows(roots []*menus.Node, query string) []row {
	q := strings.ToLower(query)
	matches := func(n *menus.Node) bool {
		if strings.Contains(strings.ToLower(n.Name), q) {
			return true
		}
		return !n.Group && strings.Contains(strings.ToLower(n.Exec), q)
	}

	var prune func(nodes []*menus.Node, keepAll bool) []*menus.Node
	prune = func(nodes []*menus.Node, keepAll bool) []*menus.Node {
		var out []*menus.Node
		for _, n := range nodes {
			hit := keepAll || matches(n)
			if n.Group {
				kids := prune(n.Children, hit)
				if len(kids) > 0 || hit {
					clone := *n
					clone.Children = kids
					out = append(out, &clone)
				}
				continue
			}
			if hit {
				out = append(out, n)
			}
		}
		return out
	}

	return walkRows(prune(roots, false), "", nil)
}

// renderRow renders one visible line constrained to width columns.
func (m *Model) renderRow(i int, width int) string {
	r := m.rows[i]
	n := r.node
	selected := i == m.cursor

	var sb strings.Builder
	if selected {
		sb.WriteString(styles.SelectionIndicatorStyle.Render(">"))
	} else {
		sb.WriteString(" ")
	}
	sb.WriteString(styles.MutedStyle.Render(r.prefix))

	if n.Group {
		marker := "▾ "
		if m.collapsed[n.FullPath()] {
			marker = "▸ "
		}
		sb.WriteString(styles.MutedStyle.Render(marker))
	}

	used := 1 + runewidth.StringWidth(r.prefix)
	if n.Group {
		used += 2
	}

	name := styles.TruncateString(n.Name, max(width-used, 0))
	if n.Group {
		sb.WriteString(styles.GroupStyle.Render(name))
		line := sb.String()
		return zone.Mark(rowZoneID(i), line)
	}

	sb.WriteString(styles.ActionStyle.Render(name))
	used += runewidth.StringWidth(name)

	// Right-aligned command preview when there is room for a readable one.
	const gap = 2
	if avail := width - used - gap; n.Exec != "" && avail >= 8 {
		preview := runewidth.Truncate(n.Exec, avail, "…")
		pad := width - used - runewidth.StringWidth(preview)
		sb.WriteString(strings.Repeat(" ", max(pad, gap)))
		sb.WriteString(styles.ExecStyle.Render(preview))
	}

	return zone.Mark(rowZoneID(i), sb.String())
}

// renderRows renders the visible viewport with scroll indicators.
func (m *Model) renderRows(width, height int) string {
	if m.snapshot == nil {
		return styles.MutedStyle.Render("assembling menu...")
	}
	if len(m.rows) == 0 {
		if m.filter.Value() != "" {
			return styles.MutedStyle.Render("no actions match " + fmt.Sprintf("%q", m.filter.Value()))
		}
		return styles.MutedStyle.Render("menu is empty - drop fragments into the fragments directory")
	}

	end := min(m.scroll+height, len(m.rows))

	var sb strings.Builder
	if m.scroll > 0 {
		sb.WriteString(styles.MutedStyle.Render(fmt.Sprintf("  ↑ %d more above", m.scroll)))
		sb.WriteString("\n")
	}
	for i := m.scroll; i < end; i++ {
		sb.WriteString(m.renderRow(i, width))
		sb.WriteString("\n")
	}
	if remaining := len(m.rows) - end; remaining > 0 {
		sb.WriteString(styles.MutedStyle.Render(fmt.Sprintf("  ↓ %d more below", remaining)))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
