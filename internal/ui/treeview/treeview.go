// Package treeview is the interactive menu browser: the assembled snapshot
// rendered as a collapsible tree with an optional markdown detail pane.
package treeview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"

	"github.com/zjrosen/espalier/internal/flags"
	"github.com/zjrosen/espalier/internal/keys"
	"github.com/zjrosen/espalier/internal/log"
	"github.com/zjrosen/espalier/internal/menus"
	"github.com/zjrosen/espalier/internal/pubsub"
	"github.com/zjrosen/espalier/internal/ui/markdown"
	"github.com/zjrosen/espalier/internal/ui/styles"
)

// Config configures the browser model.
type Config struct {
	// Service assembles snapshots. Required.
	Service *menus.Service

	// Keys holds the active keybindings. Zero value means DefaultKeyMap.
	Keys keys.KeyMap

	// ShowDetails opens the description pane on start.
	ShowDetails bool

	// ShowStatus shows the status bar on start.
	ShowStatus bool

	// MarkdownStyle is the glamour style for the detail pane.
	MarkdownStyle string

	// Flags gates optional behavior (show-diagnostics).
	Flags *flags.Registry
}

// assembledMsg carries the result of a key-triggered reload.
type assembledMsg struct {
	snap *menus.Snapshot
	err  error
}

// snapshotEvent arrives when any assemble publishes, including
// watcher-triggered ones running outside this program.
type snapshotEvent = pubsub.Event[*menus.Snapshot]

// Model is the browser's Bubble Tea model.
type Model struct {
	service *menus.Service
	keys    keys.KeyMap
	flags   *flags.Registry

	ctx    context.Context
	events <-chan snapshotEvent

	snapshot *menus.Snapshot
	loadErr  error
	rows     []row
	cursor   int
	scroll   int

	collapsed map[string]bool

	filtering bool
	filter    textinput.Model

	showDetails bool
	showStatus  bool
	showHelp    bool
	help        help.Model
	mdStyle     string
	md          *markdown.Renderer

	statusMsg string
	selection *menus.Node

	width    int
	height   int
	quitting bool
}

// New creates the browser. ctx bounds the snapshot subscription; cancel it
// after the program exits.
func New(ctx context.Context, cfg Config) *Model {
	km := cfg.Keys
	if len(km.Up.Keys()) == 0 {
		km = keys.DefaultKeyMap()
	}

	ti := textinput.New()
	ti.Placeholder = "filter actions"
	ti.Prompt = "/"
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.TextPlaceholderColor)

	return &Model{
		service:     cfg.Service,
		keys:        km,
		flags:       cfg.Flags,
		ctx:         ctx,
		events:      cfg.Service.Subscribe(ctx),
		collapsed:   make(map[string]bool),
		filter:      ti,
		showDetails: cfg.ShowDetails,
		showStatus:  cfg.ShowStatus,
		help:        help.New(),
		mdStyle:     cfg.MarkdownStyle,
	}
}

// Selection returns the action chosen with Select, or nil when the browser
// was quit without choosing.
func (m *Model) Selection() *menus.Node {
	return m.selection
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.assembleCmd(), m.listenCmd())
}

// assembleCmd runs one assemble off the update loop.
func (m *Model) assembleCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.service.Assemble(m.ctx)
		return assembledMsg{snap: snap, err: err}
	}
}

// listenCmd waits for the next published snapshot (watcher reloads).
func (m *Model) listenCmd() tea.Cmd {
	return pubsub.ListenCmd(m.ctx, m.events)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.md = nil // rebuilt at the new width on next render
		m.clampViewport()
		return m, nil

	case assembledMsg:
		m.applySnapshot(msg.snap, msg.err)
		return m, nil

	case snapshotEvent:
		// Assembles triggered elsewhere (fs watcher). Key-triggered ones
		// arrive twice, as assembledMsg and as this event; applySnapshot
		// is idempotent per snapshot ID.
		if msg.Payload != nil {
			m.applySnapshot(msg.Payload, nil)
		}
		return m, m.listenCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

// applySnapshot swaps in a new snapshot, preserving cursor position by path
// where possible.
func (m *Model) applySnapshot(snap *menus.Snapshot, err error) {
	if snap == nil {
		m.loadErr = err
		return
	}
	if m.snapshot != nil && m.snapshot.ID == snap.ID {
		return
	}

	var keep string
	if n := m.Selected(); n != nil {
		keep = n.FullPath()
	}

	m.snapshot = snap
	m.loadErr = err
	m.rebuildRows()

	if keep != "" {
		for i, r := range m.rows {
			if r.node.FullPath() == keep {
				m.cursor = i
				break
			}
		}
	}
	m.clampViewport()
}

// Selected returns the node under the cursor.
func (m *Model) Selected() *menus.Node {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return m.rows[m.cursor].node
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		switch {
		case m.showHelp:
			m.showHelp = false
		case m.filter.Value() != "":
			m.filter.SetValue("")
			m.rebuildRows()
		default:
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.viewportHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.viewportHeight())
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.clampViewport()
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(m.rows)-1, 0)
		m.clampViewport()

	case key.Matches(msg, m.keys.Collapse):
		m.collapseSelected()
	case key.Matches(msg, m.keys.Expand):
		m.expandSelected()
	case key.Matches(msg, m.keys.FoldAll):
		m.toggleFoldAll()

	case key.Matches(msg, m.keys.Select):
		return m.selectCurrent()

	case key.Matches(msg, m.keys.Reload):
		m.statusMsg = "reloading..."
		return m, m.assembleCmd()

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Details):
		m.showDetails = !m.showDetails
	case key.Matches(msg, m.keys.ToggleStatus):
		m.showStatus = !m.showStatus

	case key.Matches(msg, m.keys.Yank):
		if n := m.Selected(); n != nil && !n.Group {
			termenv.Copy(n.Exec)
			m.statusMsg = "copied: " + n.Exec
			log.Debug(log.CatUI, "yanked action command", "path", n.FullPath())
		}
	}

	return m, nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.rebuildRows()
		return m, nil
	case key.Matches(msg, m.keys.Select):
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.rebuildRows()
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.moveCursor(-1)
		return m, nil
	case msg.Button == tea.MouseButtonWheelDown:
		m.moveCursor(1)
		return m, nil
	}

	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	end := min(m.scroll+m.viewportHeight(), len(m.rows))
	for i := m.scroll; i < end; i++ {
		if z := zone.Get(rowZoneID(i)); z != nil && z.InBounds(msg) {
			if m.cursor == i {
				return m.selectCurrent()
			}
			m.cursor = i
			m.clampViewport()
			return m, nil
		}
	}
	return m, nil
}

// selectCurrent runs the Select action on the node under the cursor: groups
// toggle, actions end the program carrying the selection.
func (m *Model) selectCurrent() (tea.Model, tea.Cmd) {
	n := m.Selected()
	if n == nil {
		return m, nil
	}
	if n.Group {
		m.toggleCollapse(n)
		return m, nil
	}
	m.selection = n
	m.quitting = true
	log.Info(log.CatUI, "action selected", "path", n.FullPath(), "exec", n.Exec)
	return m, tea.Quit
}

func (m *Model) collapseSelected() {
	n := m.Selected()
	if n == nil {
		return
	}
	if n.Group && !m.collapsed[n.FullPath()] {
		m.collapsed[n.FullPath()] = true
		m.rebuildRows()
		return
	}
	// On a leaf or an already-collapsed group: jump to the parent group.
	if parent := n.Path.String(); parent != "" {
		for i, r := range m.rows {
			if r.node.Group && r.node.FullPath() == parent {
				m.cursor = i
				m.clampViewport()
				return
			}
		}
	}
}

func (m *Model) expandSelected() {
	n := m.Selected()
	if n == nil || !n.Group {
		return
	}
	if m.collapsed[n.FullPath()] {
		delete(m.collapsed, n.FullPath())
		m.rebuildRows()
	}
}

func (m *Model) toggleCollapse(n *menus.Node) {
	if m.collapsed[n.FullPath()] {
		delete(m.collapsed, n.FullPath())
	} else {
		m.collapsed[n.FullPath()] = true
	}
	m.rebuildRows()
}

// toggleFoldAll collapses every group, or expands everything when any group
// is already collapsed.
func (m *Model) toggleFoldAll() {
	if m.snapshot == nil {
		return
	}
	if len(m.collapsed) > 0 {
		m.collapsed = make(map[string]bool)
	} else {
		for _, n := range m.snapshot.Flatten() {
			if n.Group {
				m.collapsed[n.FullPath()] = true
			}
		}
	}
	m.rebuildRows()
}

func (m *Model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.rows)-1)
	m.clampViewport()
}

// clampViewport keeps the cursor visible and the scroll offset in range.
func (m *Model) clampViewport() {
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
	vh := m.viewportHeight()
	if vh <= 0 {
		return
	}
	if m.cursor >= m.scroll+vh {
		m.scroll = m.cursor - vh + 1
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	m.scroll = min(m.scroll, max(len(m.rows)-vh, 0))
	m.scroll = max(m.scroll, 0)
}

// viewportHeight returns the number of menu rows that fit on screen.
func (m *Model) viewportHeight() int {
	reserved := 2 // pane borders
	if m.showStatus {
		reserved++
	}
	if m.filtering || m.filter.Value() != "" {
		reserved++
	}
	if m.showHelp {
		reserved += 4
	} else {
		reserved++ // short help line
	}
	return max(m.height-reserved, 1)
}

func (m *Model) fragments() int {
	if m.snapshot == nil {
		return 0
	}
	return m.snapshot.Fragments
}

func (m *Model) diagnostics() int {
	if m.snapshot == nil {
		return 0
	}
	return len(m.snapshot.Diagnostics)
}

// statusLine builds the status bar content.
func (m *Model) statusLine() string {
	if m.snapshot == nil {
		return "assembling menu..."
	}

	parts := []string{
		fmt.Sprintf("%d fragments", m.fragments()),
		fmt.Sprintf("%d actions", m.snapshot.Actions()),
	}
	if m.filter.Value() != "" {
		parts = append(parts, fmt.Sprintf("filter: %q", m.filter.Value()))
	}
	if m.statusMsg != "" {
		parts = append(parts, m.statusMsg)
	}
	line := strings.Join(parts, "  ·  ")

	if m.flags.Enabled(flags.FlagShowDiagnostics) {
		if d := styles.FormatDiagnosticCount(m.diagnostics()); d != "" {
			line += "  ·  " + styles.DiagnosticStyle.Render(d)
		}
	}
	if m.loadErr != nil {
		line += "  ·  " + lipgloss.NewStyle().Foreground(styles.StatusErrorColor).
			Render("load: "+m.loadErr.Error())
	}
	return line
}
