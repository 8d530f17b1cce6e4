// Package testutil provides shared tree fixtures and assertion helpers for
// canopy tests.
package testutil

import (
	"testing"

	"github.com/vanderheijden86/canopy/pkg/model"
)

// Leaf builds a weighted leaf node.
func Leaf(name string, value float64) *model.Node {
	v := value
	return &model.Node{Name: name, Value: &v}
}

// Branch builds an interior node with the given children.
func Branch(name string, children ...*model.Node) *model.Node {
	return &model.Node{Name: name, Children: children}
}

// ClusterSubtree returns the analytics/cluster subtree of the flare dataset,
// the canonical fixture for aggregate tests: four leaves whose weights sum to
// 15207.
func ClusterSubtree() *model.Node {
	return Branch("cluster",
		Leaf("AgglomerativeCluster", 3938),
		Leaf("CommunityStructure", 3812),
		Leaf("HierarchicalCluster", 6714),
		Leaf("MergeEdge", 743),
	)
}

// FlareSubset returns a small cut of the flare dataset: the analytics package
// with its cluster, graph and optimization subpackages. Deep enough to
// exercise depth clipping at the default window depth.
func FlareSubset() *model.Node {
	return Branch("flare",
		Branch("analytics",
			ClusterSubtree(),
			Branch("graph",
				Leaf("BetweennessCentrality", 3534),
				Leaf("LinkDistance", 5731),
				Leaf("MaxFlowMinCut", 7840),
				Leaf("ShortestPaths", 5914),
				Leaf("SpanningTree", 3416),
			),
			Branch("optimization",
				Leaf("AspectRatioBanker", 7074),
			),
		),
		Branch("animate",
			Leaf("Easing", 17010),
			Leaf("FunctionSequence", 5842),
			Branch("interpolate",
				Leaf("ArrayInterpolator", 1983),
				Leaf("ColorInterpolator", 2047),
				Leaf("DateInterpolator", 1375),
				Leaf("Interpolator", 8746),
				Leaf("MatrixInterpolator", 2202),
				Leaf("NumberInterpolator", 1382),
			),
		),
	)
}

// AssertSameNode fails the test when got is not the exact node want (pointer
// identity, since the full tree is never copied).
func AssertSameNode(t *testing.T, got, want *model.Node) {
	t.Helper()
	if got != want {
		gotName, wantName := "<nil>", "<nil>"
		if got != nil {
			gotName = got.Name
		}
		if want != nil {
			wantName = want.Name
		}
		t.Errorf("resolved wrong node: got %q, want %q", gotName, wantName)
	}
}
