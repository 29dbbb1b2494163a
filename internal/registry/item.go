package registry

// Item is a node in a registry tree. The variant set is closed: SingleItem,
// GroupItem, IndirectItem, and ComputedItem. SingleItem may be embedded to
// attach domain payloads to leaves; the merge treats any Item that is not a
// group, indirect, or computed variant as a leaf.
type Item interface {
	// Name identifies the item among its siblings. May be empty for
	// anonymous, indirect, and computed items.
	Name() string

	// Hint returns the item's ordering hint.
	Hint() Hint

	// SetHint replaces the item's ordering hint. Registration overwrites
	// the hint with the placement's hint.
	SetHint(Hint)

	item()
}

// base carries the state shared by every variant.
type base struct {
	name string
	hint Hint
}

func (b *base) Name() string { return b.name }

func (b *base) Hint() Hint { return b.hint }

func (b *base) SetHint(h Hint) { b.hint = h }

func (b *base) item() {}

// SingleItem is a terminal leaf. It carries no children and no behavior of
// its own; embed it in a domain type to hang a payload off a leaf.
type SingleItem struct {
	base
}

// NewSingleItem creates a leaf with the given name.
func NewSingleItem(name string) *SingleItem {
	return &SingleItem{base: base{name: name}}
}

// WithHint sets the ordering hint and returns the item for fluent chaining.
func (s *SingleItem) WithHint(h Hint) *SingleItem {
	s.hint = h
	return s
}

// Ordering selects how a group's children relate to path computation and
// merge-time reordering.
type Ordering int

const (
	// OrderingAnonymous groups are transparent: the name is omitted from
	// paths and the children merge individually into the parent's sequence.
	OrderingAnonymous Ordering = iota

	// OrderingWeak groups are path-significant; their child sequence may be
	// reordered and merged with another group at the same path.
	OrderingWeak

	// OrderingStrong groups are path-significant and their authored child
	// order is authoritative. Two Strong groups at one path is a conflict.
	OrderingStrong
)

// String returns the lowercase name of the ordering mode.
func (o Ordering) String() string {
	switch o {
	case OrderingAnonymous:
		return "anonymous"
	case OrderingWeak:
		return "weak"
	case OrderingStrong:
		return "strong"
	default:
		return "unknown"
	}
}

// GroupItem is an ordered container of child items. Children keep their
// authoring insertion order until a merge computes the final order.
type GroupItem struct {
	base
	ordering Ordering
	children []Item
}

// NewGroup creates a group with the given name, ordering mode, and initial
// children. Name uniqueness among children is not validated; the merge
// resolves duplicates.
func NewGroup(name string, ordering Ordering, children ...Item) *GroupItem {
	g := &GroupItem{base: base{name: name}, ordering: ordering}
	g.Append(children...)
	return g
}

// Ordering returns the group's ordering mode.
func (g *GroupItem) Ordering() Ordering {
	return g.ordering
}

// Children returns the group's child slice in insertion order. The slice is
// owned by the group; callers must not mutate it.
func (g *GroupItem) Children() []Item {
	return g.children
}

// Append adds children in order and returns the group for fluent chaining.
// Nil items are skipped.
func (g *GroupItem) Append(children ...Item) *GroupItem {
	for _, c := range children {
		if c != nil {
			g.children = append(g.children, c)
		}
	}
	return g
}

// WithHint sets the ordering hint and returns the group for fluent chaining.
func (g *GroupItem) WithHint(h Hint) *GroupItem {
	g.hint = h
	return g
}

// IndirectItem holds a shared reference to another item so one constructed
// subtree can be registered at several places. The wrapper's own name is
// empty; the referenced item's name and hint govern path computation, except
// that the wrapper's hint replaces a referent hint of Unspecified.
type IndirectItem struct {
	base
	target Item
}

// Shared wraps an item for registration by reference.
func Shared(target Item) *IndirectItem {
	return &IndirectItem{target: target}
}

// Target returns the referenced item.
func (i *IndirectItem) Target() Item {
	return i.target
}

// WithHint sets the wrapper's hint and returns it for fluent chaining. The
// hint takes effect when the referent's own hint is Unspecified.
func (i *IndirectItem) WithHint(h Hint) *IndirectItem {
	i.hint = h
	return i
}

// Factory produces an item for a ComputedItem. It is invoked with the active
// visitor on every visit, immediately before the slot is walked. Returning
// nil means the item contributes nothing this time.
type Factory func(Visitor) Item

// ComputedItem defers its content to a factory, supporting context-sensitive
// entries. The factory result is never memoized.
type ComputedItem struct {
	base
	factory Factory
}

// Computed wraps a factory as a registrable item.
func Computed(factory Factory) *ComputedItem {
	return &ComputedItem{factory: factory}
}

// WithHint sets the wrapper's hint and returns it for fluent chaining. The
// hint takes effect when the produced item's own hint is Unspecified.
func (c *ComputedItem) WithHint(h Hint) *ComputedItem {
	c.hint = h
	return c
}
