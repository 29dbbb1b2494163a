package registry

import "strings"

// Path is the sequence of group names from the registry root down to, but
// not including, the node a visitor callback receives.
type Path []string

// String joins the path with slashes. The root path renders as "".
func (p Path) String() string {
	return strings.Join(p, "/")
}

// child returns a new path extended by name. The result never aliases p's
// backing array, so sibling recursions cannot clobber each other.
func (p Path) child(name string) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, name)
}

// Visitor receives the merged tree in traversal order. This three-callback
// contract is everything a tree consumer implements.
type Visitor interface {
	// BeginGroup is called before a group's children are walked.
	BeginGroup(group *GroupItem, path Path)

	// EndGroup is called after a group's children are walked.
	EndGroup(group *GroupItem, path Path)

	// Visit is called for each leaf.
	Visit(item Item, path Path)
}

// VisitorFuncs adapts up to three closures into a Visitor. Nil fields are
// skipped.
type VisitorFuncs struct {
	OnBeginGroup func(group *GroupItem, path Path)
	OnEndGroup   func(group *GroupItem, path Path)
	OnVisit      func(item Item, path Path)
}

// BeginGroup implements Visitor.
func (v VisitorFuncs) BeginGroup(group *GroupItem, path Path) {
	if v.OnBeginGroup != nil {
		v.OnBeginGroup(group, path)
	}
}

// EndGroup implements Visitor.
func (v VisitorFuncs) EndGroup(group *GroupItem, path Path) {
	if v.OnEndGroup != nil {
		v.OnEndGroup(group, path)
	}
}

// Visit implements Visitor.
func (v VisitorFuncs) Visit(item Item, path Path) {
	if v.OnVisit != nil {
		v.OnVisit(item, path)
	}
}
