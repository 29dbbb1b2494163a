package registry

// MergerConfig configures a Merger. The zero value merges without
// persistence and without a diagnostic sink.
type MergerConfig struct {
	// Store persists first-seen ordering per group path. Nil disables
	// recording and seeding.
	Store OrderingStore

	// RootKey namespaces this merger's entries in the store.
	RootKey string

	// OnDiagnostic, when set, receives each diagnostic as it is emitted,
	// in addition to the slice Visit returns.
	OnDiagnostic func(Diagnostic)
}

// Merger combines an authored default tree with a dynamically registered
// tree into one deterministic traversal. A Merger is stateless between
// calls; it may be reused and carries only its configuration.
type Merger struct {
	store   OrderingStore
	rootKey string
	onDiag  func(Diagnostic)
}

// NewMerger creates a Merger from cfg.
func NewMerger(cfg MergerConfig) *Merger {
	return &Merger{
		store:   cfg.Store,
		rootKey: cfg.RootKey,
		onDiag:  cfg.OnDiagnostic,
	}
}

// Visit merges top (the authored skeleton, may be nil) with reg (the
// registered contributions, may be nil) and walks the result through v.
// The root itself receives no callbacks; its merged children are the top
// level. Every call recomputes the full merge; the only durable side effect
// is first-seen order recording in the store.
//
// Returned diagnostics describe recoverable conflicts the merge degraded
// around. A visit never fails.
func (m *Merger) Visit(v Visitor, top Item, reg *GroupItem) []Diagnostic {
	w := &walker{m: m, visitor: v}

	mode := OrderingWeak
	var sources [][]Item
	if top != nil {
		if g, ok := top.(*GroupItem); ok {
			sources = append(sources, g.Children())
			mode = maxOrdering(mode, g.Ordering())
		} else {
			sources = append(sources, []Item{top})
		}
	}
	if reg != nil {
		sources = append(sources, reg.Children())
		mode = maxOrdering(mode, reg.Ordering())
	}

	w.walkLevel(Path{}, mode, sources)
	return w.diags
}

// Visit merges and walks without an ordering store. See Merger.Visit.
func Visit(v Visitor, top Item, reg *GroupItem) []Diagnostic {
	return NewMerger(MergerConfig{}).Visit(v, top, reg)
}

// walker carries the per-visit state: the active visitor and the diagnostics
// accumulated so far.
type walker struct {
	m       *Merger
	visitor Visitor
	diags   []Diagnostic
}

func (w *walker) report(d Diagnostic) {
	w.diags = append(w.diags, d)
	if w.m.onDiag != nil {
		w.m.onDiag(d)
	}
}

// centry is one slot in a group's merged candidate child list. Group slots
// accumulate every same-named group contribution; leaf slots hold exactly
// one item and duplicates coexist as separate slots.
type centry struct {
	name     string
	hint     Hint
	seq      int
	item     Item
	groups   []*GroupItem
	ordering Ordering
	strong   bool
}

func (e *centry) isGroup() bool { return len(e.groups) > 0 }

// walkLevel merges one group level: collect candidates from all
// contributing child lists, compute their final order, then walk them.
func (w *walker) walkLevel(path Path, mode Ordering, sources [][]Item) {
	entries := w.collect(path, sources)
	if len(entries) == 0 {
		return
	}

	ordered := w.orderEntries(path, mode, entries)

	for _, e := range ordered {
		if e.isGroup() {
			primary := e.groups[0]
			w.visitor.BeginGroup(primary, path)
			children := make([][]Item, 0, len(e.groups))
			for _, g := range e.groups {
				children = append(children, g.Children())
			}
			w.walkLevel(path.child(e.name), e.ordering, children)
			w.visitor.EndGroup(primary, path)
		} else {
			w.visitor.Visit(e.item, path)
		}
	}
}

// collector builds the candidate list for one level, resolving delegating
// variants and flattening transparent groups.
type collector struct {
	w       *walker
	path    Path
	entries []*centry
	byName  map[string]*centry
}

func (w *walker) collect(path Path, sources [][]Item) []*centry {
	c := &collector{w: w, path: path, byName: make(map[string]*centry)}
	for _, src := range sources {
		for _, item := range src {
			c.add(item, Unspecified())
		}
	}
	return c.entries
}

// add resolves one contributed item. The carried hint is the nearest
// enclosing delegator's hint; it applies wherever an item's own hint is
// Unspecified, so hints thread through Shared, Computed, and transparent
// group wrappers.
func (c *collector) add(item Item, carried Hint) {
	switch it := item.(type) {
	case nil:
		return
	case *IndirectItem:
		if it.Target() != nil {
			c.add(it.Target(), it.Hint().or(carried))
		}
	case *ComputedItem:
		if it.factory == nil {
			return
		}
		if produced := it.factory(c.w.visitor); produced != nil {
			c.add(produced, it.Hint().or(carried))
		}
	case *GroupItem:
		hint := it.Hint().or(carried)
		if it.Ordering() == OrderingAnonymous {
			for _, child := range it.Children() {
				c.add(child, hint)
			}
			return
		}
		c.addGroup(it, hint)
	default:
		c.entries = append(c.entries, &centry{
			name: item.Name(),
			hint: item.Hint().or(carried),
			seq:  len(c.entries),
			item: item,
		})
	}
}

// addGroup merges a named group contribution into an existing slot when one
// exists. The ordering mode resolves to the stronger contribution; a second
// distinct Strong claim loses wholesale and only the first claimant's
// children appear.
func (c *collector) addGroup(g *GroupItem, hint Hint) {
	slot, ok := c.byName[g.Name()]
	if !ok || g.Name() == "" {
		e := &centry{
			name:     g.Name(),
			hint:     hint,
			seq:      len(c.entries),
			item:     g,
			groups:   []*GroupItem{g},
			ordering: g.Ordering(),
			strong:   g.Ordering() == OrderingStrong,
		}
		c.entries = append(c.entries, e)
		if g.Name() != "" {
			c.byName[g.Name()] = e
		}
		return
	}

	for _, existing := range slot.groups {
		if existing == g {
			// The same shared group mounted here twice contributes once.
			return
		}
	}

	if g.Ordering() == OrderingStrong && slot.strong {
		c.w.report(Diagnostic{
			Kind:   DiagOrderingConflict,
			Path:   c.path.String(),
			Name:   g.Name(),
			Detail: "second strong group at this path; keeping the first contribution",
		})
		return
	}

	slot.ordering = maxOrdering(slot.ordering, g.Ordering())
	slot.strong = slot.strong || g.Ordering() == OrderingStrong
	if slot.hint.IsUnspecified() {
		slot.hint = hint
	}
	slot.groups = append(slot.groups, g)
}

func maxOrdering(a, b Ordering) Ordering {
	if b > a {
		return b
	}
	return a
}
