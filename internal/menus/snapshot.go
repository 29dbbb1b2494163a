package menus

import (
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/espalier/internal/registry"
)

// Node is one entry in a frozen menu tree. Leaves carry the action payload;
// groups carry children. Nodes are not mutated after assembly.
type Node struct {
	Name        string
	Path        registry.Path // ancestor group names, excluding the node itself
	Exec        string        // empty for groups
	Description string
	Group       bool
	Children    []*Node
}

// FullPath returns the node's slash path including its own name.
func (n *Node) FullPath() string {
	if len(n.Path) == 0 {
		return n.Name
	}
	return n.Path.String() + "/" + n.Name
}

// Depth returns how many groups enclose the node.
func (n *Node) Depth() int { return len(n.Path) }

// Snapshot is the immutable result of one assembly: the merged tree in final
// traversal order plus everything the merge reported.
type Snapshot struct {
	ID          string
	CreatedAt   time.Time
	Fragments   int // fragment files that contributed
	Roots       []*Node
	Diagnostics []registry.Diagnostic
}

// Flatten returns every node in traversal order, groups before their
// children. This is what the tree pane renders top to bottom and what the
// watch diff compares.
func (s *Snapshot) Flatten() []*Node {
	var out []*Node
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			out = append(out, n)
			walk(n.Children)
		}
	}
	walk(s.Roots)
	return out
}

// Actions returns the number of leaves in the snapshot.
func (s *Snapshot) Actions() int {
	count := 0
	for _, n := range s.Flatten() {
		if !n.Group {
			count++
		}
	}
	return count
}

// Groups returns the number of groups in the snapshot.
func (s *Snapshot) Groups() int {
	count := 0
	for _, n := range s.Flatten() {
		if n.Group {
			count++
		}
	}
	return count
}

// snapshotBuilder freezes a merge traversal into nodes.
type snapshotBuilder struct {
	root  *Node
	stack []*Node
}

func newSnapshotBuilder() *snapshotBuilder {
	root := &Node{Group: true}
	return &snapshotBuilder{root: root, stack: []*Node{root}}
}

func (b *snapshotBuilder) top() *Node { return b.stack[len(b.stack)-1] }

// BeginGroup implements registry.Visitor.
func (b *snapshotBuilder) BeginGroup(group *registry.GroupItem, path registry.Path) {
	n := &Node{Name: group.Name(), Path: path, Group: true}
	parent := b.top()
	parent.Children = append(parent.Children, n)
	b.stack = append(b.stack, n)
}

// EndGroup implements registry.Visitor.
func (b *snapshotBuilder) EndGroup(group *registry.GroupItem, path registry.Path) {
	b.stack = b.stack[:len(b.stack)-1]
}

// Visit implements registry.Visitor.
func (b *snapshotBuilder) Visit(item registry.Item, path registry.Path) {
	n := &Node{Name: item.Name(), Path: path}
	if a, ok := item.(*Action); ok {
		n.Exec = a.Exec()
		n.Description = a.Description()
	}
	parent := b.top()
	parent.Children = append(parent.Children, n)
}

// finish seals the walked tree into a snapshot.
func (b *snapshotBuilder) finish(fragmentCount int, diags []registry.Diagnostic) *Snapshot {
	return &Snapshot{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now(),
		Fragments:   fragmentCount,
		Roots:       b.root.Children,
		Diagnostics: diags,
	}
}
