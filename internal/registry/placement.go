package registry

import "strings"

// Placement names where a registered item goes: a slash-separated path of
// group names relative to a root group, plus an ordering hint applied to the
// item once it is appended into the deepest resolved group.
type Placement struct {
	path string
	hint Hint
}

// At builds a placement for the given path. An optional single hint may
// follow; extra hints are ignored. An empty path targets the root group
// itself.
func At(path string, hint ...Hint) Placement {
	p := Placement{path: path}
	if len(hint) > 0 {
		p.hint = hint[0]
	}
	return p
}

// Path returns the raw slash-separated path.
func (p Placement) Path() string {
	return p.path
}

// Hint returns the hint applied at registration time.
func (p Placement) Hint() Hint {
	return p.hint
}

// segments splits the path into group names, dropping empty components so
// "A//B" and "/A/B/" resolve like "A/B".
func (p Placement) segments() []string {
	if p.path == "" {
		return nil
	}
	parts := strings.Split(p.path, "/")
	segs := parts[:0]
	for _, part := range parts {
		if part != "" {
			segs = append(segs, part)
		}
	}
	return segs
}
