package nav

import (
	"testing"

	"github.com/vanderheijden86/canopy/pkg/testutil"
	"github.com/vanderheijden86/canopy/pkg/treepath"
)

func TestBreadcrumbsFullChain(t *testing.T) {
	root := testutil.FlareSubset()
	crumbs := Breadcrumbs(root, treepath.Path{0, 0, 2})

	want := []string{"flare", "analytics", "cluster", "HierarchicalCluster"}
	if len(crumbs) != len(want) {
		t.Fatalf("expected %d crumbs, got %d", len(want), len(crumbs))
	}
	for i, name := range want {
		if crumbs[i].Name != name {
			t.Errorf("crumb %d: got %q, want %q", i, crumbs[i].Name, name)
		}
		if len(crumbs[i].Path) != i {
			t.Errorf("crumb %d: path length %d, want %d", i, len(crumbs[i].Path), i)
		}
	}
}

func TestBreadcrumbsRootOnly(t *testing.T) {
	root := testutil.FlareSubset()
	crumbs := Breadcrumbs(root, treepath.Path{})
	if len(crumbs) != 1 || crumbs[0].Name != "flare" {
		t.Fatalf("expected single root crumb, got %+v", crumbs)
	}
	if len(crumbs[0].Path) != 0 {
		t.Error("root crumb must carry the empty path")
	}
}

func TestBreadcrumbsStalePathDegrades(t *testing.T) {
	root := testutil.FlareSubset()
	// 0/0 resolves, the 99 does not: stop after cluster.
	crumbs := Breadcrumbs(root, treepath.Path{0, 0, 99, 1})

	want := []string{"flare", "analytics", "cluster"}
	if len(crumbs) != len(want) {
		t.Fatalf("expected %d crumbs, got %d", len(want), len(crumbs))
	}
	for i, name := range want {
		if crumbs[i].Name != name {
			t.Errorf("crumb %d: got %q, want %q", i, crumbs[i].Name, name)
		}
	}
}

func TestBreadcrumbsNilRoot(t *testing.T) {
	if got := Breadcrumbs(nil, treepath.Path{0}); got != nil {
		t.Errorf("nil root must yield no crumbs, got %+v", got)
	}
}

// Breadcrumb monotonicity: length at most len(target)+1, starts at the root,
// and each entry's path is a proper prefix of the next's.
func TestBreadcrumbsMonotonicity(t *testing.T) {
	root := testutil.FlareSubset()
	targets := []treepath.Path{
		{},
		{0},
		{1, 2, 3},
		{0, 1, 4},
		{0, 99},
		{7, 7, 7},
	}
	for _, target := range targets {
		crumbs := Breadcrumbs(root, target)
		if len(crumbs) > len(target)+1 {
			t.Errorf("target %v: %d crumbs exceeds len+1", target, len(crumbs))
		}
		if len(crumbs) == 0 || len(crumbs[0].Path) != 0 {
			t.Fatalf("target %v: chain must start at the root", target)
		}
		for i := 1; i < len(crumbs); i++ {
			prev, cur := crumbs[i-1].Path, crumbs[i].Path
			if len(prev) >= len(cur) || !treepath.HasPrefix(cur, prev) {
				t.Errorf("target %v: crumb %d path %v is not a proper prefix of %v",
					target, i-1, prev, cur)
			}
		}
	}
}

func TestEngineBreadcrumbsFollowSelection(t *testing.T) {
	e := newTestEngine(t)
	s := e.Initial()

	s = e.Select(s, mustView(t, s, treepath.Path{0, 1}))
	crumbs := e.Breadcrumbs(s)
	if len(crumbs) != 3 || crumbs[2].Name != "graph" {
		t.Fatalf("expected chain ending at graph, got %+v", crumbs)
	}

	// Without a selection the chain follows the focus.
	s = e.FocusAt(s, treepath.Path{1})
	crumbs = e.Breadcrumbs(s)
	if len(crumbs) != 2 || crumbs[1].Name != "animate" {
		t.Fatalf("expected chain ending at animate, got %+v", crumbs)
	}
}
