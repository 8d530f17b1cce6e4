// Package window derives a depth-bounded view of a subtree of the full tree.
//
// The builder copies a focused subtree down to a fixed number of tiers and
// stamps every copied node with the relative path taken to reach it, so a
// view node can always be mapped back to its exact position in the full
// tree. Nodes sitting on the depth bound that still have real descendants
// are marked HasHidden; their children are pruned from the view.
//
// View nodes are display-only projections: they carry no domain metadata,
// are recreated on every rebuild, and are never mutated in place.
package window

import (
	"github.com/vanderheijden86/canopy/pkg/model"
	"github.com/vanderheijden86/canopy/pkg/treepath"
)

// DefaultDepth is the window depth used when no explicit configuration is
// given: two tiers below the focus.
const DefaultDepth = 2

// ViewNode is one node of the depth-bounded view.
type ViewNode struct {
	Name  string
	Value *float64

	// PathFromFocus is the relative path from the window's root to this
	// node. The window root carries the empty path.
	PathFromFocus treepath.Path

	// HasHidden is true when the full-tree counterpart has descendants that
	// were pruned by the depth bound. It is only ever set on nodes at the
	// deepest rendered tier; leaves never carry it.
	HasHidden bool

	Parent   *ViewNode
	Children []*ViewNode
}

// IsLeaf reports whether the view node has no visible children. Note that a
// node with HasHidden set is a visible leaf whose full-tree counterpart is
// not a leaf.
func (v *ViewNode) IsLeaf() bool {
	return v == nil || len(v.Children) == 0
}

// Depth returns the node's tier below the window root.
func (v *ViewNode) Depth() int {
	if v == nil {
		return 0
	}
	return len(v.PathFromFocus)
}

// Build produces the depth-bounded view of the subtree rooted at focus.
// maxDepth is the number of tiers below the focus to copy; 0 yields a
// single-node window. A nil focus yields a nil window.
//
// The copy walks with an explicit stack rather than recursion, so depth
// clipping is the only thing bounding the output, not the goroutine stack.
// Output is deterministic: identical (focus, maxDepth) inputs produce
// identical windows.
func Build(focus *model.Node, maxDepth int) *ViewNode {
	if focus == nil {
		return nil
	}
	if maxDepth < 0 {
		maxDepth = 0
	}

	root := &ViewNode{
		Name:          focus.Name,
		Value:         focus.Value,
		PathFromFocus: treepath.Path{},
	}

	type frame struct {
		src *model.Node
		dst *ViewNode
	}
	stack := []frame{{src: focus, dst: root}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(f.src.Children) == 0 {
			continue
		}
		if f.dst.Depth() == maxDepth {
			// On the bound with real descendants: prune and mark.
			f.dst.HasHidden = true
			continue
		}

		f.dst.Children = make([]*ViewNode, len(f.src.Children))
		for i, child := range f.src.Children {
			vn := &ViewNode{
				Name:          child.Name,
				Value:         child.Value,
				PathFromFocus: treepath.Concat(f.dst.PathFromFocus, treepath.Path{i}),
				Parent:        f.dst,
			}
			f.dst.Children[i] = vn
			stack = append(stack, frame{src: child, dst: vn})
		}
	}

	return root
}

// Flatten enumerates the window's nodes in depth-first pre-order with
// siblings in child order. This is the canonical enumeration order used by
// selection re-anchoring and by layout consumers.
func Flatten(root *ViewNode) []*ViewNode {
	if root == nil {
		return nil
	}
	out := make([]*ViewNode, 0, 16)
	stack := []*ViewNode{root}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, v)
		// Push children in reverse so they pop in child order.
		for i := len(v.Children) - 1; i >= 0; i-- {
			stack = append(stack, v.Children[i])
		}
	}
	return out
}

// FindByPath returns the view node whose relative path equals rel, or nil
// when no visible node carries that path.
func FindByPath(root *ViewNode, rel treepath.Path) *ViewNode {
	if root == nil {
		return nil
	}
	node := root
	for _, idx := range rel {
		if idx < 0 || idx >= len(node.Children) {
			return nil
		}
		node = node.Children[idx]
	}
	return node
}
