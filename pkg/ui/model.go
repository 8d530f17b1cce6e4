// Package ui is the interactive terminal front end: a window pane over the
// focused subtree, a breadcrumb bar, and an aggregate detail pane.
package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/canopy/pkg/debug"
	"github.com/vanderheijden86/canopy/pkg/export"
	"github.com/vanderheijden86/canopy/pkg/model"
	"github.com/vanderheijden86/canopy/pkg/nav"
	"github.com/vanderheijden86/canopy/pkg/treepath"
	"github.com/vanderheijden86/canopy/pkg/watcher"
	"github.com/vanderheijden86/canopy/pkg/window"
)

// Width threshold below which the detail pane is hidden automatically.
const minDetailWidth = 100

// ReloadFunc re-reads the dataset from its source. It runs when the watcher
// reports a change.
type ReloadFunc func() (*model.Node, error)

type datasetChangedMsg struct{}

type reloadedMsg struct{ tree *model.Node }

type reloadErrMsg struct{ err error }

// Model is the bubbletea model for the canopy viewer.
type Model struct {
	engine *nav.Engine
	state  nav.State
	rows   []*window.ViewNode
	cursor int
	top    int

	theme Theme
	keys  KeyMap
	md    *glamour.TermRenderer

	watcher *watcher.Watcher
	reload  ReloadFunc

	width       int
	height      int
	showDetail  bool
	showWeights bool
	status      string

	datasetName string
	snapshotDir string
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithWatcher attaches a started file watcher; the model reloads the dataset
// on change signals.
func WithWatcher(w *watcher.Watcher, reload ReloadFunc) ModelOption {
	return func(m *Model) {
		m.watcher = w
		m.reload = reload
	}
}

// WithDatasetName sets the name shown in the header.
func WithDatasetName(name string) ModelOption {
	return func(m *Model) { m.datasetName = name }
}

// WithSnapshotDir sets the directory snapshots are written to.
func WithSnapshotDir(dir string) ModelOption {
	return func(m *Model) { m.snapshotDir = dir }
}

// WithShowWeights controls the initial weight column visibility.
func WithShowWeights(show bool) ModelOption {
	return func(m *Model) { m.showWeights = show }
}

// NewModel creates the viewer model over a ready navigation engine.
func NewModel(engine *nav.Engine, opts ...ModelOption) Model {
	md, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(60),
	)

	m := Model{
		engine:      engine,
		state:       engine.Initial(),
		theme:       DefaultTheme(lipgloss.DefaultRenderer()),
		keys:        DefaultKeyMap(),
		md:          md,
		showDetail:  true,
		showWeights: true,
		snapshotDir: ".",
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.syncRows()
	return m
}

// State exposes the current navigation state, mainly for tests.
func (m Model) State() nav.State { return m.state }

// CursorRow returns the view node under the cursor, or nil.
func (m Model) CursorRow() *window.ViewNode {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor]
}

func (m *Model) syncRows() {
	m.rows = window.Flatten(m.state.Window)

	// Keep the cursor on the selection when it is visible.
	m.cursor = 0
	if sel := m.engine.SelectionView(m.state); sel != nil {
		for i, vn := range m.rows {
			if vn == sel {
				m.cursor = i
				break
			}
		}
	}
	m.top = clampScroll(m.cursor, m.top, m.treeHeight(), len(m.rows))
}

func (m Model) treeHeight() int {
	h := m.height - 4 // header, breadcrumbs, status bar, spacing
	if h < 1 {
		h = 10
	}
	return h
}

func (m Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	ch := m.watcher.Changed()
	return func() tea.Msg {
		<-ch
		return datasetChangedMsg{}
	}
}

func (m Model) reloadCmd() tea.Cmd {
	reload := m.reload
	return func() tea.Msg {
		tree, err := reload()
		if err != nil {
			return reloadErrMsg{err: err}
		}
		return reloadedMsg{tree: tree}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.top = clampScroll(m.cursor, m.top, m.treeHeight(), len(m.rows))
		return m, nil

	case datasetChangedMsg:
		debug.Log("dataset change signal received")
		if m.reload == nil {
			return m, m.waitForChange()
		}
		return m, tea.Batch(m.reloadCmd(), m.waitForChange())

	case reloadedMsg:
		return m.applyReload(msg.tree), nil

	case reloadErrMsg:
		m.status = fmt.Sprintf("reload failed: %v", msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// applyReload swaps in a freshly loaded tree, preserving the focus position
// as far as it still resolves.
func (m Model) applyReload(tree *model.Node) Model {
	engine, err := nav.New(tree, nav.WithWindowDepth(m.engine.WindowDepth()))
	if err != nil {
		m.status = fmt.Sprintf("reload rejected: %v", err)
		return m
	}

	oldFocus := m.state.Focus
	m.engine = engine
	m.state = engine.FocusAt(engine.Initial(), oldFocus)
	m.syncRows()
	m.status = "dataset reloaded"
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.state = m.engine.Select(m.state, m.rows[m.cursor])
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.state = m.engine.Select(m.state, m.rows[m.cursor])
		}

	case key.Matches(msg, m.keys.Focus):
		if row := m.CursorRow(); row != nil {
			m.state = m.engine.ReRoot(m.state, row)
			m.syncRows()
		}

	case key.Matches(msg, m.keys.Back):
		if len(m.state.Focus) > 0 {
			parent := treepath.Clip(m.state.Focus, len(m.state.Focus)-1)
			m.state = m.engine.FocusAt(m.state, parent)
			m.syncRows()
		}

	case key.Matches(msg, m.keys.Reset):
		m.state = m.engine.Reset(m.state)
		m.syncRows()

	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail

	case key.Matches(msg, m.keys.Weights):
		m.showWeights = !m.showWeights

	case key.Matches(msg, m.keys.Yank):
		if row := m.CursorRow(); row != nil {
			abs := treepath.Concat(m.state.Focus, row.PathFromFocus)
			if err := clipboard.WriteAll(abs.String()); err != nil {
				m.status = fmt.Sprintf("yank failed: %v", err)
			} else {
				m.status = fmt.Sprintf("yanked %s", abs.String())
			}
		}

	case key.Matches(msg, m.keys.Snapshot):
		m = m.saveSnapshot()
	}

	m.top = clampScroll(m.cursor, m.top, m.treeHeight(), len(m.rows))
	return m, nil
}

func (m Model) saveSnapshot() Model {
	focus := m.engine.FocusNode(m.state)
	if focus == nil {
		m.status = "nothing to snapshot"
		return m
	}
	path := fmt.Sprintf("%s/canopy-%s.svg", m.snapshotDir, sanitizeName(focus.Name))
	err := export.SaveSnapshot(export.SnapshotOptions{
		Path:     path,
		Title:    m.datasetName,
		Root:     focus,
		MaxDepth: m.engine.WindowDepth(),
	})
	if err != nil {
		m.status = fmt.Sprintf("snapshot failed: %v", err)
	} else {
		m.status = fmt.Sprintf("snapshot saved: %s", path)
	}
	return m
}

func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}

// View implements tea.Model.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	header := m.theme.Header.Render("canopy")
	if m.datasetName != "" {
		header += " " + m.theme.MutedText.Render(m.datasetName)
	}

	crumbs := m.renderBreadcrumbs(width)

	treeWidth := width
	detail := ""
	if m.showDetail && width >= minDetailWidth {
		detailWidth := width / 3
		treeWidth = width - detailWidth - 2
		if d, ok := m.engine.DescribeSelection(m.state); ok {
			detail = renderDetailPane(d, detailWidth, m.md, m.theme)
		}
	}

	tree := renderTreePane(m.rows, m.cursor, m.top, m.treeHeight(), treeWidth, m.showWeights, m.theme)

	body := tree
	if detail != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, tree, "  ", detail)
	}

	status := m.renderStatusBar(width)

	return strings.Join([]string{header, crumbs, body, status}, "\n")
}

func (m Model) renderBreadcrumbs(width int) string {
	crumbs := m.engine.Breadcrumbs(m.state)
	parts := make([]string, 0, len(crumbs))
	for _, c := range crumbs {
		parts = append(parts, m.theme.Crumb.Render(c.Name))
	}
	sep := m.theme.CrumbSep.Render(" › ")
	return truncateWidth(strings.Join(parts, sep), width, "…")
}

func (m Model) renderStatusBar(width int) string {
	if m.status != "" {
		return m.theme.StatusBar.Render(truncate(m.status, width))
	}
	help := "↑/↓ move · enter focus · b up · r reset · d detail · w weights · s snapshot · y yank · q quit"
	return m.theme.StatusBar.Render(truncate(help, width))
}
