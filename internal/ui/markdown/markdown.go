// Package markdown renders action descriptions for the detail pane.
package markdown

import (
	"github.com/charmbracelet/glamour"
)

// noMarginStyle is a JSON style overlay that removes document margins, so
// rendered descriptions align with the pane border instead of floating.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with espalier's configuration: a fixed wrap width
// and the style from ui.markdown_style.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a markdown renderer with the given width and style.
// style should be "dark" or "light". Defaults to "dark" if empty.
// A fixed style path is used instead of WithAutoStyle(): auto detection
// queries the terminal background, and the OSC response can leak into
// Bubble Tea's input stream.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}
