// Package fragments defines the YAML fragment schema and the directory
// loader that discovers fragment files. A fragment contributes actions and
// groups at named menu paths. This package stops at parsed, validated
// definitions; conversion into registry items happens in internal/menus.
package fragments

import (
	"fmt"

	"github.com/zjrosen/espalier/internal/registry"
)

// Ordering mode names accepted by the `ordering` key.
const (
	OrderingAnonymous = "anonymous"
	OrderingWeak      = "weak"
	OrderingStrong    = "strong"
)

// File is the root structure of one fragment document.
type File struct {
	Name  string `yaml:"name"`  // fragment identity; defaults to the file name without extension
	Items []Def  `yaml:"items"` // top-level contributed entries

	// Path is the file's path within the fragments directory, set by the
	// loader.
	Path string `yaml:"-"`
}

// Def defines a single contributed entry. A def is a group when it carries
// `items` or an explicit `ordering`; otherwise it is an action and `exec` is
// required. An empty group is authored by setting `ordering` alone.
type Def struct {
	At          string `yaml:"at"`          // placement path, top-level defs only
	Name        string `yaml:"name"`        // required except on anonymous groups
	Before      string `yaml:"before"`      // hint: immediately before the named sibling
	After       string `yaml:"after"`       // hint: immediately after the named sibling
	Begin       bool   `yaml:"begin"`       // hint: front of the sibling group
	End         bool   `yaml:"end"`         // hint: back of the sibling group
	Exec        string `yaml:"exec"`        // shell command, actions only
	Description string `yaml:"description"` // markdown shown in the detail pane
	Ordering    string `yaml:"ordering"`    // anonymous|weak|strong, groups only; default weak
	Items       []Def  `yaml:"items"`       // nested defs, makes this def a group
}

// IsGroup reports whether the def describes a group rather than an action.
func (d *Def) IsGroup() bool {
	return len(d.Items) > 0 || d.Ordering != ""
}

// Hint returns the registry hint encoded by the def's hint keys.
func (d *Def) Hint() registry.Hint {
	switch {
	case d.Before != "":
		return registry.Before(d.Before)
	case d.After != "":
		return registry.After(d.After)
	case d.Begin:
		return registry.Begin()
	case d.End:
		return registry.End()
	}
	return registry.Unspecified()
}

// OrderingMode maps the `ordering` key to the registry mode. Groups without
// an explicit mode are Weak. Callers must validate first; an unknown value
// falls back to Weak here.
func (d *Def) OrderingMode() registry.Ordering {
	switch d.Ordering {
	case OrderingAnonymous:
		return registry.OrderingAnonymous
	case OrderingStrong:
		return registry.OrderingStrong
	default:
		return registry.OrderingWeak
	}
}

// Validate checks every def in the file.
func (f *File) Validate() error {
	for i := range f.Items {
		if err := f.Items[i].validate(true); err != nil {
			return err
		}
	}
	return nil
}

// validate checks one def and its children. Top-level defs may carry an
// `at` path; nested defs may not.
func (d *Def) validate(top bool) error {
	if !top && d.At != "" {
		return fmt.Errorf("item %s: at is only valid on top-level items", d.label())
	}
	if d.Exec != "" && len(d.Items) > 0 {
		return fmt.Errorf("item %s: exec and items are mutually exclusive", d.label())
	}
	if d.Exec != "" && d.Ordering != "" {
		return fmt.Errorf("item %s: ordering is only valid on groups", d.label())
	}
	if d.hintCount() > 1 {
		return fmt.Errorf("item %s: at most one of before, after, begin, end", d.label())
	}
	switch d.Ordering {
	case "", OrderingAnonymous, OrderingWeak, OrderingStrong:
	default:
		return fmt.Errorf("item %s: unknown ordering %q", d.label(), d.Ordering)
	}
	if !d.IsGroup() && d.Exec == "" {
		return fmt.Errorf("item %s: either exec or items is required", d.label())
	}
	if d.Name == "" && !(d.IsGroup() && d.Ordering == OrderingAnonymous) {
		return fmt.Errorf("unnamed item: name is required except on anonymous groups")
	}
	for i := range d.Items {
		if err := d.Items[i].validate(false); err != nil {
			return fmt.Errorf("item %s: %w", d.label(), err)
		}
	}
	return nil
}

func (d *Def) hintCount() int {
	n := 0
	if d.Before != "" {
		n++
	}
	if d.After != "" {
		n++
	}
	if d.Begin {
		n++
	}
	if d.End {
		n++
	}
	return n
}

// label names the def in validation errors.
func (d *Def) label() string {
	if d.Name == "" {
		return "(anonymous)"
	}
	return fmt.Sprintf("%q", d.Name)
}
