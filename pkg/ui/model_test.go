package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/canopy/pkg/model"
	"github.com/vanderheijden86/canopy/pkg/nav"
	"github.com/vanderheijden86/canopy/pkg/testutil"
)

func newTestModel(t *testing.T, tree *model.Node, depth int) Model {
	t.Helper()
	engine, err := nav.New(tree, nav.WithWindowDepth(depth))
	if err != nil {
		t.Fatalf("nav.New: %v", err)
	}
	return NewModel(engine, WithDatasetName("test"))
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func pressKey(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestNewModelInitialState(t *testing.T) {
	m := newTestModel(t, testutil.FlareSubset(), 2)

	if len(m.rows) == 0 {
		t.Fatal("no rows after init")
	}
	if m.rows[0].Name != "flare" {
		t.Errorf("first row = %q, want window root", m.rows[0].Name)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
	if m.State().Selected {
		t.Error("nothing should be selected initially")
	}
}

func TestCursorMovementSelects(t *testing.T) {
	m := newTestModel(t, testutil.FlareSubset(), 2)

	m = pressKey(t, m, keyRunes("j"))
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	if !m.State().Selected {
		t.Error("moving the cursor should select the row")
	}
	if m.CursorRow().Name != m.rows[1].Name {
		t.Error("cursor row mismatch")
	}

	m = pressKey(t, m, keyRunes("k"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 after up", m.cursor)
	}
}

func TestCursorStopsAtBounds(t *testing.T) {
	m := newTestModel(t, testutil.Leaf("solo", 1), 2)

	m = pressKey(t, m, keyRunes("k"))
	if m.cursor != 0 {
		t.Errorf("cursor moved above top: %d", m.cursor)
	}
	m = pressKey(t, m, keyRunes("j"))
	if m.cursor != 0 {
		t.Errorf("cursor moved past bottom: %d", m.cursor)
	}
}

func TestEnterReRoots(t *testing.T) {
	m := newTestModel(t, testutil.FlareSubset(), 2)

	// Move to the first child (analytics) and focus it.
	m = pressKey(t, m, keyRunes("j"))
	name := m.CursorRow().Name
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.rows[0].Name != name {
		t.Errorf("window root = %q, want %q after re-root", m.rows[0].Name, name)
	}
	if len(m.State().Focus) == 0 {
		t.Error("focus path should be non-empty after re-root")
	}
	if !m.State().Selected {
		t.Error("re-root should leave a selection")
	}
}

func TestBackMovesUpAndClearsSelection(t *testing.T) {
	m := newTestModel(t, testutil.FlareSubset(), 2)
	m = pressKey(t, m, keyRunes("j"))
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = pressKey(t, m, keyRunes("b"))
	if len(m.State().Focus) != 0 {
		t.Errorf("focus = %v, want root after back", m.State().Focus)
	}
	if m.State().Selected {
		t.Error("back should clear the selection")
	}
}

func TestResetReturnsToRoot(t *testing.T) {
	m := newTestModel(t, testutil.FlareSubset(), 2)
	m = pressKey(t, m, keyRunes("j"))
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = pressKey(t, m, keyRunes("j"))
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = pressKey(t, m, keyRunes("r"))
	if len(m.State().Focus) != 0 {
		t.Errorf("focus = %v, want root after reset", m.State().Focus)
	}
	if m.rows[0].Name != "flare" {
		t.Errorf("window root = %q after reset", m.rows[0].Name)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, testutil.Leaf("solo", 1), 2)
	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("quit key should return a command")
	}
	if msg := cmd(); msg == nil {
		t.Error("quit command returned nil msg")
	}
}

func TestToggleWeights(t *testing.T) {
	m := newTestModel(t, testutil.ClusterSubtree(), 2)
	m.width = 80
	m.height = 24

	withWeights := m.View()
	if !strings.Contains(withWeights, "3938") {
		t.Error("weights should be visible by default")
	}

	m = pressKey(t, m, keyRunes("w"))
	without := m.View()
	if strings.Contains(without, "3938") {
		t.Error("weights should be hidden after toggle")
	}
}

func TestViewShowsBreadcrumbsAndHiddenMarker(t *testing.T) {
	m := newTestModel(t, testutil.FlareSubset(), 1)
	m.width = 80
	m.height = 24

	view := m.View()
	if !strings.Contains(view, "flare") {
		t.Error("view missing root breadcrumb")
	}
	// At depth 1 the analytics node has hidden children.
	if !strings.Contains(view, "…") {
		t.Error("view missing hidden-children marker")
	}
}

func TestWindowSizeUpdatesLayout(t *testing.T) {
	m := newTestModel(t, testutil.FlareSubset(), 2)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d", m.width, m.height)
	}

	view := m.View()
	if view == "" {
		t.Error("empty view")
	}
}

func TestApplyReloadPreservesFocus(t *testing.T) {
	m := newTestModel(t, testutil.FlareSubset(), 2)
	m = pressKey(t, m, keyRunes("j"))
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	focus := m.State().Focus

	// Reload with an identical tree keeps the position.
	m = m.applyReload(testutil.FlareSubset())
	if len(m.State().Focus) != len(focus) {
		t.Errorf("focus = %v, want %v after reload", m.State().Focus, focus)
	}
	if m.status != "dataset reloaded" {
		t.Errorf("status = %q", m.status)
	}
}

func TestApplyReloadTruncatesStaleFocus(t *testing.T) {
	m := newTestModel(t, testutil.FlareSubset(), 2)
	m = pressKey(t, m, keyRunes("j"))
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Reload with a much smaller tree; the old focus no longer resolves.
	m = m.applyReload(testutil.Leaf("tiny", 1))
	if len(m.State().Focus) != 0 {
		t.Errorf("stale focus should truncate to root, got %v", m.State().Focus)
	}
	if m.rows[0].Name != "tiny" {
		t.Errorf("window root = %q", m.rows[0].Name)
	}
}

func TestApplyReloadRejectsInvalidTree(t *testing.T) {
	m := newTestModel(t, testutil.FlareSubset(), 2)
	before := m.engine

	m = m.applyReload(&model.Node{Name: ""})
	if m.engine != before {
		t.Error("invalid reload should keep the old engine")
	}
	if !strings.Contains(m.status, "reload rejected") {
		t.Errorf("status = %q", m.status)
	}
}
