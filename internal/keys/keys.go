// Package keys contains keybinding definitions.
package keys

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings for the menu browser.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Collapse key.Binding
	Expand   key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Actions
	Select  key.Binding
	Reload  key.Binding
	Filter  key.Binding
	Details key.Binding
	Yank    key.Binding
	FoldAll key.Binding

	// General
	Help         key.Binding
	Escape       key.Binding
	Quit         key.Binding
	ToggleStatus key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "collapse"),
		),
		Expand: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "expand"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first entry"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last entry"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "page down"),
		),

		// Actions
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run action"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload fragments"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Details: key.NewBinding(
			key.WithKeys("d", "tab"),
			key.WithHelp("d", "toggle details"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy command"),
		),
		FoldAll: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "fold/unfold all"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "go back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle status bar"),
		),
	}
}

// FromConfig returns the default keymap with user overrides applied.
// overrides maps a lowercase binding name ("up", "select", "quit", ...) to
// its replacement keys. Unknown names and empty key lists are ignored, so a
// stale config entry degrades to the default binding.
func FromConfig(overrides map[string][]string) KeyMap {
	km := DefaultKeyMap()
	if len(overrides) == 0 {
		return km
	}

	bindings := map[string]*key.Binding{
		"up":            &km.Up,
		"down":          &km.Down,
		"collapse":      &km.Collapse,
		"expand":        &km.Expand,
		"top":           &km.Top,
		"bottom":        &km.Bottom,
		"page_up":       &km.PageUp,
		"page_down":     &km.PageDown,
		"select":        &km.Select,
		"reload":        &km.Reload,
		"filter":        &km.Filter,
		"details":       &km.Details,
		"yank":          &km.Yank,
		"fold_all":      &km.FoldAll,
		"help":          &km.Help,
		"escape":        &km.Escape,
		"quit":          &km.Quit,
		"toggle_status": &km.ToggleStatus,
	}

	for name, replacement := range overrides {
		b, ok := bindings[strings.ToLower(name)]
		if !ok || len(replacement) == 0 {
			continue
		}
		b.SetKeys(replacement...)
		b.SetHelp(strings.Join(replacement, "/"), b.Help().Desc)
	}
	return km
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Collapse, k.Expand, k.Top, k.Bottom, k.PageUp, k.PageDown}, // Navigation
		{k.Select, k.Reload, k.Filter, k.Details, k.Yank, k.FoldAll},                // Actions
		{k.Help, k.ToggleStatus, k.Escape, k.Quit},                                  // General
	}
}
