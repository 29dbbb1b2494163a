package registry

import (
	"errors"
	"fmt"
)

// Registration errors. RegisterItem reports path conflicts instead of
// panicking; the tree is left unchanged when registration fails.
var (
	// ErrNilRoot indicates registration against a nil root group.
	ErrNilRoot = errors.New("nil root group")

	// ErrNilItem indicates an attempt to register a nil item.
	ErrNilItem = errors.New("nil item")

	// ErrPathConflict indicates a placement path segment that names an
	// existing child which is not a group.
	ErrPathConflict = errors.New("placement path segment is not a group")
)

// RegisterItem appends item into root under the placement path, creating
// missing intermediate groups on demand. The placement hint overwrites any
// hint the item already carried. Duplicate names are allowed; the merge
// resolves their order later. No ordering computation happens here.
func RegisterItem(root *GroupItem, p Placement, item Item) error {
	if root == nil {
		return fmt.Errorf("registering %q: %w", p.Path(), ErrNilRoot)
	}
	if item == nil {
		return fmt.Errorf("registering at %q: %w", p.Path(), ErrNilItem)
	}

	group := root
	for _, seg := range p.segments() {
		next, err := descend(group, seg)
		if err != nil {
			return fmt.Errorf("registering %q at %q: %w", item.Name(), p.Path(), err)
		}
		group = next
	}

	item.SetHint(p.Hint())
	group.Append(item)
	return nil
}

// descend finds the child group named seg, creating it when absent. Shared
// wrappers resolve through their target, so a shared subtree keeps receiving
// registrations wherever it is mounted. Computed children are skipped: their
// name is unknown until a visit runs the factory.
func descend(group *GroupItem, seg string) (*GroupItem, error) {
	for _, child := range group.Children() {
		resolved := child
		if ind, ok := child.(*IndirectItem); ok {
			resolved = ind.Target()
			if resolved == nil {
				continue
			}
		}
		if _, ok := resolved.(*ComputedItem); ok {
			continue
		}
		if resolved.Name() != seg {
			continue
		}
		sub, ok := resolved.(*GroupItem)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrPathConflict, seg)
		}
		return sub, nil
	}

	created := NewGroup(seg, OrderingWeak)
	group.Append(created)
	return created, nil
}

// RegisteredItem pairs an item with its placement so modules can declare
// contributions up front and apply them during an explicit bootstrap phase,
// in slice order, instead of relying on initialization side effects.
type RegisteredItem struct {
	placement Placement
	item      Item
}

// NewRegisteredItem creates a deferred registration.
func NewRegisteredItem(item Item, p Placement) RegisteredItem {
	return RegisteredItem{placement: p, item: item}
}

// Placement returns the target placement.
func (r RegisteredItem) Placement() Placement {
	return r.placement
}

// Item returns the item to register.
func (r RegisteredItem) Item() Item {
	return r.item
}

// RegisterTo applies the registration to a root group.
func (r RegisteredItem) RegisterTo(root *GroupItem) error {
	return RegisterItem(root, r.placement, r.item)
}

// RegisterAll applies every registration in order. It is best-effort: a
// failed registration does not stop the rest, and the joined error reports
// everything that went wrong.
func RegisterAll(root *GroupItem, regs ...RegisteredItem) error {
	var errs []error
	for _, r := range regs {
		if err := r.RegisterTo(root); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
