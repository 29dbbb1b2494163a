package menus

import (
	"github.com/zjrosen/espalier/internal/registry"
)

// Action is a launchable menu leaf: a registry item carrying the shell
// command it stands for and an optional markdown description for the detail
// pane.
type Action struct {
	registry.SingleItem
	exec        string
	description string
}

// ActionOption configures an Action at construction.
type ActionOption func(*Action)

// WithDescription attaches a markdown description.
func WithDescription(markdown string) ActionOption {
	return func(a *Action) { a.description = markdown }
}

// WithHint sets the action's ordering hint.
func WithHint(h registry.Hint) ActionOption {
	return func(a *Action) { a.SetHint(h) }
}

// NewAction creates an action named name that evaluates to command.
func NewAction(name, command string, opts ...ActionOption) *Action {
	a := &Action{SingleItem: *registry.NewSingleItem(name), exec: command}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Exec returns the shell command.
func (a *Action) Exec() string { return a.exec }

// Description returns the markdown description, empty when the author gave
// none.
func (a *Action) Description() string { return a.description }
