package ui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/canopy/pkg/testutil"
	"github.com/vanderheijden86/canopy/pkg/window"
)

func testTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(io.Discard))
}

func TestRenderTreePaneRows(t *testing.T) {
	w := window.Build(testutil.ClusterSubtree(), 2)
	rows := window.Flatten(w)

	out := renderTreePane(rows, 0, 0, 20, 80, true, testTheme())
	lines := strings.Split(out, "\n")
	if len(lines) != len(rows) {
		t.Fatalf("line count = %d, want %d", len(lines), len(rows))
	}
	if !strings.Contains(out, "cluster") {
		t.Error("missing root row")
	}
	if !strings.Contains(out, "AgglomerativeCluster") {
		t.Error("missing leaf row")
	}
	if !strings.Contains(out, "3938") {
		t.Error("missing weight")
	}
}

func TestRenderTreePaneHidesWeights(t *testing.T) {
	w := window.Build(testutil.ClusterSubtree(), 2)
	rows := window.Flatten(w)

	out := renderTreePane(rows, 0, 0, 20, 80, false, testTheme())
	if strings.Contains(out, "3938") {
		t.Error("weights rendered despite toggle")
	}
}

func TestRenderTreePaneHiddenMarker(t *testing.T) {
	w := window.Build(testutil.FlareSubset(), 1)
	rows := window.Flatten(w)

	out := renderTreePane(rows, 0, 0, 20, 80, true, testTheme())
	if !strings.Contains(out, hiddenMark) {
		t.Error("depth-capped branches should carry the hidden marker")
	}
}

func TestRenderTreePaneScrolling(t *testing.T) {
	w := window.Build(testutil.FlareSubset(), 3)
	rows := window.Flatten(w)
	if len(rows) < 6 {
		t.Fatalf("fixture too small: %d rows", len(rows))
	}

	out := renderTreePane(rows, 5, 3, 3, 80, false, testTheme())
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Errorf("visible lines = %d, want 3", len(lines))
	}
	if strings.Contains(out, rows[0].Name) && rows[0].Name != rows[4].Name {
		t.Error("scrolled-out row still visible")
	}
}

func TestRenderTreePaneEmpty(t *testing.T) {
	out := renderTreePane(nil, 0, 0, 10, 80, true, testTheme())
	if !strings.Contains(out, "empty") {
		t.Errorf("empty window rendering = %q", out)
	}
}
