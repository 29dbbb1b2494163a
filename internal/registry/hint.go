package registry

import "fmt"

// HintKind enumerates the ordering requests an item can carry.
type HintKind int

const (
	// HintUnspecified leaves placement to recorded order and arrival order.
	// For delegating items (Shared, Computed, transparent groups) an
	// Unspecified hint is replaced by the delegator's own hint.
	HintUnspecified HintKind = iota

	// HintBefore places the item immediately before a named sibling.
	HintBefore

	// HintAfter places the item immediately after a named sibling.
	HintAfter

	// HintBegin floats the item to the front of its sibling group.
	HintBegin

	// HintEnd keeps the item at the back, after unhinted newcomers.
	HintEnd
)

// String returns the lowercase name of the hint kind.
func (k HintKind) String() string {
	switch k {
	case HintUnspecified:
		return "unspecified"
	case HintBefore:
		return "before"
	case HintAfter:
		return "after"
	case HintBegin:
		return "begin"
	case HintEnd:
		return "end"
	default:
		return fmt.Sprintf("hintkind(%d)", int(k))
	}
}

// Hint is a per-item request for its position among siblings. The zero value
// is Unspecified.
type Hint struct {
	kind   HintKind
	anchor string
}

// Unspecified returns the neutral hint.
func Unspecified() Hint {
	return Hint{}
}

// Before requests a position immediately before the named sibling.
func Before(anchor string) Hint {
	return Hint{kind: HintBefore, anchor: anchor}
}

// After requests a position immediately after the named sibling.
func After(anchor string) Hint {
	return Hint{kind: HintAfter, anchor: anchor}
}

// Begin requests a position at the front of the sibling group.
func Begin() Hint {
	return Hint{kind: HintBegin}
}

// End requests a position at the back of the sibling group.
func End() Hint {
	return Hint{kind: HintEnd}
}

// Kind returns the hint kind.
func (h Hint) Kind() HintKind {
	return h.kind
}

// Anchor returns the sibling name a Before/After hint refers to. Empty for
// other kinds.
func (h Hint) Anchor() string {
	return h.anchor
}

// IsUnspecified reports whether the hint is the neutral hint.
func (h Hint) IsUnspecified() bool {
	return h.kind == HintUnspecified
}

// String renders the hint for diagnostics and logging.
func (h Hint) String() string {
	switch h.kind {
	case HintBefore, HintAfter:
		return fmt.Sprintf("%s(%s)", h.kind, h.anchor)
	default:
		return h.kind.String()
	}
}

// or returns h unless it is Unspecified, in which case it returns the
// delegator's hint. This implements hint delegation through Shared, Computed,
// and transparent group wrappers.
func (h Hint) or(delegated Hint) Hint {
	if h.IsUnspecified() {
		return delegated
	}
	return h
}
