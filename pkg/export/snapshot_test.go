package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/canopy/pkg/testutil"
)

func TestSaveSnapshotSVG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.svg")

	err := SaveSnapshot(SnapshotOptions{
		Path:  path,
		Title: "cluster",
		Root:  testutil.ClusterSubtree(),
	})
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	if !strings.Contains(content, "<svg") {
		t.Error("output is not SVG")
	}
	for _, name := range []string{"cluster", "AgglomerativeCluster", "HierarchicalCluster"} {
		if !strings.Contains(content, name) {
			t.Errorf("SVG missing %q", name)
		}
	}
	if !strings.Contains(content, "15207") {
		t.Error("SVG missing total weight in summary")
	}
}

func TestSaveSnapshotPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.png")

	err := SaveSnapshot(SnapshotOptions{
		Path: path,
		Root: testutil.FlareSubset(),
	})
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("PNG file is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestSaveSnapshotInfersFormatAndExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap")

	err := SaveSnapshot(SnapshotOptions{
		Path: path,
		Root: testutil.Leaf("solo", 1),
	})
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if _, err := os.Stat(path + ".svg"); err != nil {
		t.Errorf("extensionless path should default to .svg: %v", err)
	}
}

func TestSaveSnapshotErrors(t *testing.T) {
	if err := SaveSnapshot(SnapshotOptions{Path: "x.svg"}); err == nil {
		t.Error("nil root should error")
	}
	if err := SaveSnapshot(SnapshotOptions{Root: testutil.Leaf("a", 1)}); err == nil {
		t.Error("empty path should error")
	}
	if err := SaveSnapshot(SnapshotOptions{Path: "x.gif", Root: testutil.Leaf("a", 1)}); err == nil {
		t.Error("unsupported format should error")
	}
}

func TestBuildLayoutProportionalWidths(t *testing.T) {
	root := testutil.Branch("root",
		testutil.Leaf("big", 300),
		testutil.Leaf("small", 100),
	)

	layout := buildLayout(SnapshotOptions{Root: root, MaxDepth: 1})

	var big, small layoutCell
	for _, c := range layout.Cells {
		switch c.Name {
		case "big":
			big = c
		case "small":
			small = c
		}
	}
	if big.W <= small.W {
		t.Errorf("big cell (%f) should be wider than small (%f)", big.W, small.W)
	}
	// 300 vs 100 should split roughly 3:1
	ratio := big.W / small.W
	if ratio < 2.5 || ratio > 3.5 {
		t.Errorf("width ratio = %f, want about 3", ratio)
	}
}

func TestBuildLayoutDepthCap(t *testing.T) {
	root := testutil.FlareSubset()
	layout := buildLayout(SnapshotOptions{Root: root, MaxDepth: 1})

	for _, c := range layout.Cells {
		if c.Depth > 1 {
			t.Errorf("cell %s at depth %d exceeds cap", c.Name, c.Depth)
		}
	}
}

func TestRenderSVGToWriterDeterministic(t *testing.T) {
	layout := buildLayout(SnapshotOptions{Root: testutil.ClusterSubtree(), Title: "t"})

	var a, b bytes.Buffer
	if err := renderSVGToWriter(&a, layout); err != nil {
		t.Fatal(err)
	}
	if err := renderSVGToWriter(&b, layout); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("SVG rendering is not deterministic")
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a very long node name", 10, "a very ..."},
		{"abc", 2, "ab"},
		{"abc", 0, ""},
	}
	for _, c := range cases {
		if got := truncate(c.in, c.max); got != c.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", c.in, c.max, got, c.want)
		}
	}
}
