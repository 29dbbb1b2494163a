package testutil

// fileYAML and itemYAML mirror the fragment schema with omitempty tags so
// generated fixtures read like hand-written files.
type fileYAML struct {
	Name  string     `yaml:"name,omitempty"`
	Items []itemYAML `yaml:"items"`
}

type itemYAML struct {
	At          string     `yaml:"at,omitempty"`
	Name        string     `yaml:"name,omitempty"`
	Before      string     `yaml:"before,omitempty"`
	After       string     `yaml:"after,omitempty"`
	Begin       bool       `yaml:"begin,omitempty"`
	End         bool       `yaml:"end,omitempty"`
	Exec        string     `yaml:"exec,omitempty"`
	Description string     `yaml:"description,omitempty"`
	Ordering    string     `yaml:"ordering,omitempty"`
	Items       []itemYAML `yaml:"items,omitempty"`
}

// fragmentData holds one fragment file to be written.
type fragmentData struct {
	filename string
	items    []ItemData
}

func (f fragmentData) model() fileYAML {
	out := fileYAML{}
	for _, it := range f.items {
		out.Items = append(out.Items, it.model())
	}
	return out
}

// ItemData holds data for one fragment item.
type ItemData struct {
	at          string
	name        string
	before      string
	after       string
	begin       bool
	end         bool
	exec        string
	description string
	ordering    string
	items       []ItemData
}

func (i ItemData) model() itemYAML {
	out := itemYAML{
		At:          i.at,
		Name:        i.name,
		Before:      i.before,
		After:       i.after,
		Begin:       i.begin,
		End:         i.end,
		Exec:        i.exec,
		Description: i.description,
		Ordering:    i.ordering,
	}
	for _, child := range i.items {
		out.Items = append(out.Items, child.model())
	}
	return out
}

// Item creates an ItemData with optional configuration.
func Item(name string, opts ...ItemOption) ItemData {
	it := ItemData{name: name}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

// ItemOption configures an item during builder setup.
type ItemOption func(*ItemData)

// At pins a top-level item to a path in the menu tree.
func At(path string) ItemOption {
	return func(i *ItemData) { i.at = path }
}

// Exec sets the shell command the item runs.
func Exec(cmd string) ItemOption {
	return func(i *ItemData) { i.exec = cmd }
}

// Description sets the item description.
func Description(text string) ItemOption {
	return func(i *ItemData) { i.description = text }
}

// Before hints the item to sort before the named sibling.
func Before(name string) ItemOption {
	return func(i *ItemData) { i.before = name }
}

// After hints the item to sort after the named sibling.
func After(name string) ItemOption {
	return func(i *ItemData) { i.after = name }
}

// Begin hints the item to the front of its group.
func Begin() ItemOption {
	return func(i *ItemData) { i.begin = true }
}

// End hints the item to the back of its group.
func End() ItemOption {
	return func(i *ItemData) { i.end = true }
}

// Ordering marks the item as a group with the given ordering mode.
func Ordering(mode string) ItemOption {
	return func(i *ItemData) { i.ordering = mode }
}

// Items adds child items, turning the item into a group (nested option).
func Items(children ...ItemData) ItemOption {
	return func(i *ItemData) { i.items = append(i.items, children...) }
}
