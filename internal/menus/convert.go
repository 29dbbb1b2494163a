package menus

import (
	"github.com/zjrosen/espalier/internal/fragments"
	"github.com/zjrosen/espalier/internal/registry"
)

// Registrations converts loaded fragment files into deferred registrations,
// in file order then item order. A top-level definition's `at` path and hint
// become its placement; nested definitions keep their hints on the items
// themselves.
func Registrations(files []*fragments.File) []registry.RegisteredItem {
	var regs []registry.RegisteredItem
	for _, f := range files {
		for _, def := range f.Items {
			regs = append(regs, registry.NewRegisteredItem(
				buildItem(def),
				registry.At(def.At, def.Hint()),
			))
		}
	}
	return regs
}

// buildItem converts one validated definition into a registry item.
func buildItem(def fragments.Def) registry.Item {
	if !def.IsGroup() {
		return NewAction(def.Name, def.Exec, WithDescription(def.Description))
	}

	g := registry.NewGroup(def.Name, def.OrderingMode())
	for _, child := range def.Items {
		item := buildItem(child)
		item.SetHint(child.Hint())
		g.Append(item)
	}
	return g
}
