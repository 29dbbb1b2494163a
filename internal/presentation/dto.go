package presentation

import (
	"maps"
	"slices"
	"time"

	"github.com/zjrosen/espalier/internal/fragments"
	"github.com/zjrosen/espalier/internal/menus"
	"github.com/zjrosen/espalier/internal/registry"
)

// SnapshotDTO represents an assembled menu for presentation
type SnapshotDTO struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	Fragments   int             `json:"fragments"`
	Actions     int             `json:"actions"`
	Groups      int             `json:"groups"`
	Menu        []NodeDTO       `json:"menu"`
	Diagnostics []DiagnosticDTO `json:"diagnostics,omitempty"`
}

// NodeDTO represents one menu entry with its resolved position
type NodeDTO struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"` // full slash path including the entry itself
	Exec        string    `json:"exec,omitempty"`
	Description string    `json:"description,omitempty"`
	Group       bool      `json:"group,omitempty"`
	Children    []NodeDTO `json:"children,omitempty"`
}

// DiagnosticDTO represents one recoverable merge problem
type DiagnosticDTO struct {
	Kind   string `json:"kind"`
	Path   string `json:"path"`
	Name   string `json:"name,omitempty"`
	Detail string `json:"detail"`
}

// FragmentDTO represents a loaded fragment file with its contribution counts
type FragmentDTO struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Actions int    `json:"actions"`
	Groups  int    `json:"groups"`
}

// OrderDTO represents one recorded sibling order
type OrderDTO struct {
	Path  string   `json:"path"`
	Names []string `json:"names"`
}

// FromSnapshot converts an assembled snapshot to a DTO.
func FromSnapshot(snap *menus.Snapshot) SnapshotDTO {
	menu := make([]NodeDTO, len(snap.Roots))
	for i, n := range snap.Roots {
		menu[i] = fromNode(n)
	}

	var diags []DiagnosticDTO
	for _, d := range snap.Diagnostics {
		diags = append(diags, fromDiagnostic(d))
	}

	return SnapshotDTO{
		ID:          snap.ID,
		CreatedAt:   snap.CreatedAt,
		Fragments:   snap.Fragments,
		Actions:     snap.Actions(),
		Groups:      snap.Groups(),
		Menu:        menu,
		Diagnostics: diags,
	}
}

// fromNode converts a menu node and its subtree to DTOs.
func fromNode(n *menus.Node) NodeDTO {
	var children []NodeDTO
	for _, c := range n.Children {
		children = append(children, fromNode(c))
	}

	return NodeDTO{
		Name:        n.Name,
		Path:        n.FullPath(),
		Exec:        n.Exec,
		Description: n.Description,
		Group:       n.Group,
		Children:    children,
	}
}

func fromDiagnostic(d registry.Diagnostic) DiagnosticDTO {
	return DiagnosticDTO{
		Kind:   d.Kind.String(),
		Path:   d.Path,
		Name:   d.Name,
		Detail: d.Detail,
	}
}

// FromFragmentFile converts a parsed fragment to a DTO.
func FromFragmentFile(f *fragments.File) FragmentDTO {
	dto := FragmentDTO{
		Name: f.Name,
		Path: f.Path,
	}
	countDefs(f.Items, &dto)
	return dto
}

// countDefs tallies actions and groups across a def subtree.
func countDefs(defs []fragments.Def, dto *FragmentDTO) {
	for i := range defs {
		if defs[i].IsGroup() {
			dto.Groups++
			countDefs(defs[i].Items, dto)
		} else {
			dto.Actions++
		}
	}
}

// FromFragmentFiles converts a slice of parsed fragments to DTOs.
func FromFragmentFiles(files []*fragments.File) []FragmentDTO {
	dtos := make([]FragmentDTO, len(files))
	for i, f := range files {
		dtos[i] = FromFragmentFile(f)
	}
	return dtos
}

// FromOrders converts recorded orderings to DTOs sorted by path.
func FromOrders(orders map[string][]string) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(orders))
	for _, path := range slices.Sorted(maps.Keys(orders)) {
		dtos = append(dtos, OrderDTO{Path: path, Names: orders[path]})
	}
	return dtos
}
