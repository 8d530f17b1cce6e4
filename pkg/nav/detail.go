package nav

import (
	"github.com/vanderheijden86/canopy/pkg/analysis"
	"github.com/vanderheijden86/canopy/pkg/model"
	"github.com/vanderheijden86/canopy/pkg/treepath"
)

// Detail is everything the detail panel needs about one node, computed
// against the full tree regardless of how much of the node's subtree is
// currently visible.
type Detail struct {
	Name        string                 `json:"name"`
	Path        treepath.Path          `json:"path"`
	Value       *float64               `json:"value,omitempty"`
	ChildCount  int                    `json:"child_count"`
	SumWeights  float64                `json:"sum_weights"`
	LeafCount   int                    `json:"leaf_count"`
	NodeCount   int                    `json:"node_count"`
	Weights     analysis.WeightSummary `json:"weights"`
	Breadcrumbs []Crumb                `json:"-"`
	Meta        *model.Meta            `json:"meta,omitempty"`
}

// Describe resolves an absolute path against the full tree and assembles
// its detail record. The boolean is false when the path does not resolve.
func (e *Engine) Describe(abs treepath.Path) (Detail, bool) {
	node, ok := treepath.Resolve(e.tree, abs)
	if !ok {
		return Detail{}, false
	}
	return Detail{
		Name:        node.Name,
		Path:        treepath.Clone(abs),
		Value:       node.Value,
		ChildCount:  len(node.Children),
		SumWeights:  analysis.SumWeights(node),
		LeafCount:   analysis.CountLeaves(node),
		NodeCount:   analysis.NodeCount(node),
		Weights:     analysis.SummarizeWeights(node),
		Breadcrumbs: Breadcrumbs(e.tree, abs),
		Meta:        node.Meta,
	}, true
}

// DescribeSelection describes the state's selection, falling back to the
// focus when nothing is selected.
func (e *Engine) DescribeSelection(s State) (Detail, bool) {
	if s.Selected {
		return e.Describe(s.Selection)
	}
	return e.Describe(s.Focus)
}
