package analysis

import (
	"math"
	"testing"

	"github.com/vanderheijden86/canopy/pkg/model"
	"github.com/vanderheijden86/canopy/pkg/testutil"
)

func TestSumWeightsClusterFixture(t *testing.T) {
	// AgglomerativeCluster=3938 + CommunityStructure=3812 +
	// HierarchicalCluster=6714 + MergeEdge=743 = 15207
	sum := SumWeights(testutil.ClusterSubtree())
	if sum != 15207 {
		t.Errorf("expected sum 15207, got %v", sum)
	}
}

func TestCountLeavesClusterFixture(t *testing.T) {
	if got := CountLeaves(testutil.ClusterSubtree()); got != 4 {
		t.Errorf("expected 4 leaves, got %d", got)
	}
}

func TestAggregatesNilSubtree(t *testing.T) {
	if SumWeights(nil) != 0 {
		t.Error("nil subtree must sum to 0")
	}
	if CountLeaves(nil) != 0 {
		t.Error("nil subtree has 0 leaves")
	}
	if NodeCount(nil) != 0 {
		t.Error("nil subtree has 0 nodes")
	}
}

func TestSumWeightsCountsInteriorValues(t *testing.T) {
	// value is meaningful on leaves by convention but read wherever present.
	root := testutil.Branch("root", testutil.Leaf("a", 5))
	v := 10.0
	root.Value = &v
	if got := SumWeights(root); got != 15 {
		t.Errorf("expected interior value included, got %v", got)
	}
}

func TestCountLeavesSingleNode(t *testing.T) {
	if got := CountLeaves(&model.Node{Name: "solo"}); got != 1 {
		t.Errorf("single childless node is 1 leaf, got %d", got)
	}
}

func TestNodeCountAndMaxDepth(t *testing.T) {
	cluster := testutil.ClusterSubtree()
	if got := NodeCount(cluster); got != 5 {
		t.Errorf("expected 5 nodes, got %d", got)
	}
	if got := MaxDepth(cluster); got != 1 {
		t.Errorf("expected depth 1, got %d", got)
	}
	if got := MaxDepth(&model.Node{Name: "solo"}); got != 0 {
		t.Errorf("single node has depth 0, got %d", got)
	}
	if got := MaxDepth(nil); got != -1 {
		t.Errorf("nil subtree has depth -1, got %d", got)
	}
}

func TestSumWeightsDeepChain(t *testing.T) {
	root := &model.Node{Name: "n"}
	cur := root
	for i := 0; i < 150_000; i++ {
		v := 1.0
		child := &model.Node{Name: "n", Value: &v}
		cur.Children = []*model.Node{child}
		cur = child
	}
	if got := SumWeights(root); got != 150_000 {
		t.Errorf("expected 150000, got %v", got)
	}
	if got := CountLeaves(root); got != 1 {
		t.Errorf("a chain has exactly 1 leaf, got %d", got)
	}
}

func TestLeafWeightsOrder(t *testing.T) {
	got := LeafWeights(testutil.ClusterSubtree())
	want := []float64{3938, 3812, 6714, 743}
	if len(got) != len(want) {
		t.Fatalf("expected %d weights, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("weight %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSummarizeWeights(t *testing.T) {
	s := SummarizeWeights(testutil.ClusterSubtree())
	if s.Leaves != 4 {
		t.Errorf("expected 4 leaves, got %d", s.Leaves)
	}
	if s.Sum != 15207 {
		t.Errorf("expected sum 15207, got %v", s.Sum)
	}
	if s.Min != 743 || s.Max != 6714 {
		t.Errorf("unexpected min/max: %v/%v", s.Min, s.Max)
	}
	wantMean := 15207.0 / 4
	if math.Abs(s.Mean-wantMean) > 1e-9 {
		t.Errorf("expected mean %v, got %v", wantMean, s.Mean)
	}
	if s.StdDev <= 0 {
		t.Errorf("expected positive std dev, got %v", s.StdDev)
	}
}

func TestSummarizeWeightsEmpty(t *testing.T) {
	if s := SummarizeWeights(nil); s.Leaves != 0 || s.Sum != 0 {
		t.Errorf("nil subtree must give zero summary, got %+v", s)
	}
	// Unweighted leaves are skipped entirely.
	root := testutil.Branch("root", &model.Node{Name: "bare"})
	if s := SummarizeWeights(root); s.Leaves != 0 {
		t.Errorf("unweighted leaves must not count, got %+v", s)
	}
}
