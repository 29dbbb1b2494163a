package registry

import "fmt"

// DiagnosticKind classifies the recoverable problems a merge can encounter.
type DiagnosticKind int

const (
	// DiagPathConflict: a placement path segment names an existing child
	// that is not a group.
	DiagPathConflict DiagnosticKind = iota

	// DiagOrderingConflict: two or more Strong groups claim the same path.
	DiagOrderingConflict

	// DiagUnsatisfiableHint: a Before/After hint names a sibling absent
	// from the final child list, names the item itself, or contradicts
	// other constraints.
	DiagUnsatisfiableHint

	// DiagOrderingPersist: the ordering store rejected a write; the merge
	// completed but the computed order is not durable this run.
	DiagOrderingPersist
)

// String returns the diagnostic kind's stable identifier.
func (k DiagnosticKind) String() string {
	switch k {
	case DiagPathConflict:
		return "path-conflict"
	case DiagOrderingConflict:
		return "ordering-conflict"
	case DiagUnsatisfiableHint:
		return "unsatisfiable-hint"
	case DiagOrderingPersist:
		return "ordering-persist"
	default:
		return fmt.Sprintf("diagnostic(%d)", int(k))
	}
}

// Diagnostic is a developer-facing report of a recoverable merge problem.
// Diagnostics never abort a visit; the merge degrades deterministically and
// reports what it did.
type Diagnostic struct {
	Kind   DiagnosticKind
	Path   string // group path where the problem was found
	Name   string // offending item or anchor name, when known
	Detail string
}

// String renders the diagnostic for logs.
func (d Diagnostic) String() string {
	if d.Name != "" {
		return fmt.Sprintf("%s at %q (item %q): %s", d.Kind, d.Path, d.Name, d.Detail)
	}
	return fmt.Sprintf("%s at %q: %s", d.Kind, d.Path, d.Detail)
}
