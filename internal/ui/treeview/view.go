package treeview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/espalier/internal/log"
	"github.com/zjrosen/espalier/internal/ui/markdown"
	"github.com/zjrosen/espalier/internal/ui/panes"
	"github.com/zjrosen/espalier/internal/ui/styles"
)

// detailPaneRatio is the share of the width the description pane takes.
const detailPaneRatio = 40

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	menuWidth := m.width
	detailWidth := 0
	detail := m.detailContent()
	if m.showDetails && detail != "" {
		detailWidth = m.width * detailPaneRatio / 100
		menuWidth = m.width - detailWidth
	}

	bottom := m.renderBottom()
	paneHeight := m.height - lipgloss.Height(bottom)

	menuPane := panes.BorderedPane(panes.BorderConfig{
		Content:            m.renderRows(menuWidth-2, paneHeight-2),
		Width:              menuWidth,
		Height:             paneHeight,
		TopLeft:            "Menu",
		TopRight:           m.paneCounter(),
		Focused:            true,
		FocusedBorderColor: styles.BorderHighlightColor,
	})

	content := menuPane
	if detailWidth > 0 {
		detailPane := panes.BorderedPane(panes.BorderConfig{
			Content: detail,
			Width:   detailWidth,
			Height:  paneHeight,
			TopLeft: "Details",
		})
		content = lipgloss.JoinHorizontal(lipgloss.Top, menuPane, detailPane)
	}

	return zone.Scan(content + "\n" + bottom)
}

// paneCounter is the top-right border title: action and group totals.
func (m *Model) paneCounter() string {
	if m.snapshot == nil {
		return ""
	}
	return fmt.Sprintf("%d actions · %d groups", m.snapshot.Actions(), m.snapshot.Groups())
}

// renderBottom stacks the filter line, status bar, and help text.
func (m *Model) renderBottom() string {
	var lines []string

	if m.filtering || m.filter.Value() != "" {
		lines = append(lines, m.filter.View())
	}
	if m.showStatus {
		lines = append(lines, styles.StatusBarStyle.Width(m.width).Render(m.statusLine()))
	}
	lines = append(lines, m.help.View(m.keys))

	return strings.Join(lines, "\n")
}

// detailContent renders the selected action's markdown description, wrapped
// to the pane width. Plain wrapping is the fallback when glamour fails.
func (m *Model) detailContent() string {
	n := m.Selected()
	if n == nil || n.Group {
		return ""
	}

	width := m.width*detailPaneRatio/100 - 2
	if width < 10 {
		return ""
	}

	body := n.Description
	if body == "" {
		body = "*no description*"
	}
	body = "# " + n.Name + "\n\n" + body + "\n\n```sh\n" + n.Exec + "\n```"

	if m.md == nil || m.md.Width() != width {
		r, err := markdown.New(width, m.mdStyle)
		if err != nil {
			log.ErrorErr(log.CatUI, "markdown renderer init failed", err)
			return wordwrap.String(body, width)
		}
		m.md = r
	}

	out, err := m.md.Render(body)
	if err != nil {
		log.ErrorErr(log.CatUI, "markdown render failed", err, "path", n.FullPath())
		return wordwrap.String(body, width)
	}
	return out
}
