package menus

import (
	"fmt"
	"os"

	"github.com/zjrosen/espalier/internal/ordering"
	"github.com/zjrosen/espalier/internal/registry"
)

// RootKey namespaces espalier's persisted orderings in every store backend.
const RootKey = "menu"

// DefaultTree returns the authored skeleton: the stable top-level groups
// fragments hang off, with the builtin actions. The skeleton side is
// authoritative in merges; fragment contributions layer on top of it.
func DefaultTree() *registry.GroupItem {
	return registry.NewGroup(RootKey, registry.OrderingWeak,
		registry.NewGroup("Project", registry.OrderingWeak,
			NewAction("Shell", "exec $SHELL",
				WithDescription("Drop into a fresh `$SHELL` in the current directory.")),
			NewAction("Editor", "$EDITOR .",
				WithDescription("Open the current directory in `$EDITOR`.")),
		),
		registry.NewGroup("Tools", registry.OrderingWeak),
		registry.NewGroup("Help", registry.OrderingWeak,
			NewAction("Cheatsheet", "espalier --help",
				WithDescription("Print the espalier command reference.")),
		),
	)
}

// Builtins returns the registered builtin contributions, applied after
// fragment registrations during bootstrap. configFile and fragmentsDir come
// from the active configuration.
func Builtins(configFile, fragmentsDir string) []registry.RegisteredItem {
	// One action, two mounts: the fragments directory is reachable from
	// Project and from Help through the same shared item.
	openFragments := NewAction("Fragments", fmt.Sprintf("$EDITOR %q", fragmentsDir),
		WithDescription("Open the fragments directory. Every `*.yaml` file in it becomes part of this menu."))

	// Built per visit so a changed $EDITOR shows up on the next reload.
	editConfig := registry.Computed(func(registry.Visitor) registry.Item {
		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}
		return NewAction("Edit Config", fmt.Sprintf("%s %q", editor, configFile),
			WithDescription("Open the espalier configuration file."))
	})

	return []registry.RegisteredItem{
		registry.NewRegisteredItem(registry.Shared(openFragments), registry.At("Project", registry.End())),
		registry.NewRegisteredItem(registry.Shared(openFragments), registry.At("Help")),
		registry.NewRegisteredItem(editConfig, registry.At("Help", registry.End())),
	}
}

// Seed returns the builtin ordering seed: the top-level order a fresh store
// starts from. Recorded entries always win over the seed.
func Seed() ordering.Seed {
	return ordering.Seed{
		RootKey: RootKey,
		Entries: []ordering.SeedEntry{
			{Path: "", Names: []string{"Project", "Tools", "Help"}},
		},
	}
}
