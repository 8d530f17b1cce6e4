package testutil

import (
	"testing"

	"github.com/vanderheijden86/canopy/pkg/model"
)

func countNodes(n *model.Node) int {
	count := 1
	for _, c := range n.Children {
		count += countNodes(c)
	}
	return count
}

func TestRandomTree_Deterministic(t *testing.T) {
	a := NewGenerator(DefaultGeneratorConfig(42)).RandomTree(200)
	b := NewGenerator(DefaultGeneratorConfig(42)).RandomTree(200)
	AssertSameNode(t, a, b)
}

func TestRandomTree_Valid(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1234} {
		tree := NewGenerator(DefaultGeneratorConfig(seed)).RandomTree(500)
		if err := tree.Validate(); err != nil {
			t.Errorf("seed %d: generated tree invalid: %v", seed, err)
		}
	}
}

func TestRandomTree_RespectsBudget(t *testing.T) {
	tree := NewGenerator(DefaultGeneratorConfig(3)).RandomTree(50)
	if got := countNodes(tree); got > 50 {
		t.Errorf("generated %d nodes, budget was 50", got)
	}
}

func TestRandomTree_MinimumOneNode(t *testing.T) {
	tree := NewGenerator(DefaultGeneratorConfig(9)).RandomTree(0)
	if tree == nil {
		t.Fatal("expected a single-node tree")
	}
	if !tree.IsLeaf() {
		t.Errorf("budget 0 should yield a lone leaf, got %d children", len(tree.Children))
	}
	if tree.Value == nil {
		t.Error("lone leaf should carry a weight")
	}
}

func TestChain(t *testing.T) {
	tree := NewGenerator(DefaultGeneratorConfig(5)).Chain(10)
	depth := 0
	for n := tree; ; n = n.Children[0] {
		if n.IsLeaf() {
			if n.Value == nil {
				t.Error("chain tip should carry a weight")
			}
			break
		}
		if len(n.Children) != 1 {
			t.Fatalf("chain node at depth %d has %d children", depth, len(n.Children))
		}
		depth++
	}
	if depth != 9 {
		t.Errorf("chain depth = %d, want 9", depth)
	}
}
