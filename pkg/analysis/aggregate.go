// Package analysis computes whole-subtree aggregates against the full tree.
//
// All reductions here run over the unabridged dataset, never over a window:
// the detail panel uses them to describe nodes that are only partially
// visible. Every walk is iterative; aggregation must not be the thing that
// falls over on a pathologically deep dataset.
package analysis

import "github.com/vanderheijden86/canopy/pkg/model"

// SumWeights returns the sum of value over every node in the subtree rooted
// at t, counting the root itself. Nodes without a value contribute 0. A nil
// subtree sums to 0.
func SumWeights(t *model.Node) float64 {
	if t == nil {
		return 0
	}
	var sum float64
	stack := []*model.Node{t}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Value != nil {
			sum += *n.Value
		}
		stack = append(stack, n.Children...)
	}
	return sum
}

// CountLeaves returns the number of nodes in the subtree with no children.
// A single childless node counts as 1 leaf; a nil subtree has 0.
func CountLeaves(t *model.Node) int {
	if t == nil {
		return 0
	}
	count := 0
	stack := []*model.Node{t}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(n.Children) == 0 {
			count++
			continue
		}
		stack = append(stack, n.Children...)
	}
	return count
}

// NodeCount returns the total number of nodes in the subtree, root included.
func NodeCount(t *model.Node) int {
	if t == nil {
		return 0
	}
	count := 0
	stack := []*model.Node{t}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		stack = append(stack, n.Children...)
	}
	return count
}

// MaxDepth returns the length of the longest root-to-leaf path in the
// subtree; a single node has depth 0, a nil subtree -1.
func MaxDepth(t *model.Node) int {
	if t == nil {
		return -1
	}
	type frame struct {
		node  *model.Node
		depth int
	}
	max := 0
	stack := []frame{{node: t, depth: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > max {
			max = f.depth
		}
		for _, child := range f.node.Children {
			stack = append(stack, frame{node: child, depth: f.depth + 1})
		}
	}
	return max
}

// LeafWeights collects the value of every weighted leaf in the subtree, in
// depth-first pre-order. Leaves without a value are skipped.
func LeafWeights(t *model.Node) []float64 {
	if t == nil {
		return nil
	}
	var out []float64
	stack := []*model.Node{t}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(n.Children) == 0 {
			if n.Value != nil {
				out = append(out, *n.Value)
			}
			continue
		}
		// Reverse push keeps pre-order.
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return out
}
