package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatJSON formats any result as indented JSON
func (f *Formatter) FormatJSON(result any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// FormatTree writes the menu as a branch-glyph tree, followed by any
// diagnostics the merge reported.
func (f *Formatter) FormatTree(snap SnapshotDTO) error {
	for _, line := range TreeLines(snap) {
		if _, err := fmt.Fprintln(f.writer, line); err != nil {
			return err
		}
	}

	if len(snap.Diagnostics) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(f.writer); err != nil {
		return err
	}
	for _, d := range snap.Diagnostics {
		var err error
		if d.Name != "" {
			_, err = fmt.Fprintf(f.writer, "warning: %s at %q (item %q): %s\n", d.Kind, d.Path, d.Name, d.Detail)
		} else {
			_, err = fmt.Fprintf(f.writer, "warning: %s at %q: %s\n", d.Kind, d.Path, d.Detail)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// TreeLines renders the menu one entry per line. Top-level groups sit flush
// left; nested entries get ├─/└─ connectors. Actions show their command after
// a `$` marker. The watch command diffs these lines between reloads.
func TreeLines(snap SnapshotDTO) []string {
	var lines []string
	var walk func(nodes []NodeDTO, prefix string)
	walk = func(nodes []NodeDTO, prefix string) {
		for i, n := range nodes {
			connector := "├─ "
			childPrefix := prefix + "│  "
			if i == len(nodes)-1 {
				connector = "└─ "
				childPrefix = prefix + "   "
			}

			line := prefix + connector + n.Name
			if n.Exec != "" {
				line += "  $ " + n.Exec
			}
			lines = append(lines, line)
			walk(n.Children, childPrefix)
		}
	}

	for _, n := range snap.Menu {
		line := n.Name
		if n.Exec != "" {
			line += "  $ " + n.Exec
		}
		lines = append(lines, line)
		walk(n.Children, "")
	}
	return lines
}

// FormatFragments writes loaded fragments as an aligned listing.
func (f *Formatter) FormatFragments(fragments []FragmentDTO) error {
	if len(fragments) == 0 {
		_, err := fmt.Fprintln(f.writer, "no fragments loaded")
		return err
	}

	tw := tabwriter.NewWriter(f.writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFILE\tACTIONS\tGROUPS")
	for _, frag := range fragments {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", frag.Name, frag.Path, frag.Actions, frag.Groups)
	}
	return tw.Flush()
}

// FormatOrders writes recorded orderings, one path per line.
func (f *Formatter) FormatOrders(orders []OrderDTO) error {
	if len(orders) == 0 {
		_, err := fmt.Fprintln(f.writer, "no recorded orderings")
		return err
	}

	tw := tabwriter.NewWriter(f.writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tORDER")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\n", o.Path, strings.Join(o.Names, ", "))
	}
	return tw.Flush()
}
