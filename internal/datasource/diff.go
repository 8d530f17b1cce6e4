package datasource

import (
	"fmt"

	"github.com/vanderheijden86/canopy/pkg/model"
)

// SourceDiff represents differences between two data sources
type SourceDiff struct {
	// SourceA is the path of the first source
	SourceA string
	// SourceB is the path of the second source
	SourceB string
	// MissingInA contains node paths present in B but not in A
	MissingInA []string
	// MissingInB contains node paths present in A but not in B
	MissingInB []string
	// WeightMismatch contains nodes whose weight differes between sources
	WeightMismatch []WeightDifference
	// CountA is the number of nodes in source A
	CountA int
	// CountB is the number of nodes in source B
	CountB int
}

// WeightDifference represents a weight mismatch for a single node
type WeightDifference struct {
	Path    string   `json:"path"`
	WeightA *float64 `json:"weight_a"`
	WeightB *float64 `json:"weight_b"`
}

// HasInconsistencies returns true if there are any differences between sources
func (d SourceDiff) HasInconsistencies() bool {
	return len(d.MissingInA) > 0 || len(d.MissingInB) > 0 || len(d.WeightMismatch) > 0
}

// Summary returns a human-readable summary of the differences
func (d SourceDiff) Summary() string {
	if !d.HasInconsistencies() {
		return fmt.Sprintf("Sources match (%d nodes each)", d.CountA)
	}

	summary := fmt.Sprintf("Inconsistencies found between %s and %s:\n", d.SourceA, d.SourceB)

	if d.CountA != d.CountB {
		summary += fmt.Sprintf("  - Count mismatch: %d vs %d\n", d.CountA, d.CountB)
	}

	if len(d.MissingInA) > 0 {
		summary += fmt.Sprintf("  - %d nodes in %s but not %s\n", len(d.MissingInA), d.SourceB, d.SourceA)
		if len(d.MissingInA) <= 5 {
			for _, p := range d.MissingInA {
				summary += fmt.Sprintf("    - %s\n", p)
			}
		}
	}

	if len(d.MissingInB) > 0 {
		summary += fmt.Sprintf("  - %d nodes in %s but not %s\n", len(d.MissingInB), d.SourceA, d.SourceB)
		if len(d.MissingInB) <= 5 {
			for _, p := range d.MissingInB {
				summary += fmt.Sprintf("    - %s\n", p)
			}
		}
	}

	if len(d.WeightMismatch) > 0 {
		summary += fmt.Sprintf("  - %d nodes with different weight\n", len(d.WeightMismatch))
		if len(d.WeightMismatch) <= 5 {
			for _, m := range d.WeightMismatch {
				summary += fmt.Sprintf("    - %s: %s vs %s\n", m.Path, formatWeight(m.WeightA), formatWeight(m.WeightB))
			}
		}
	}

	return summary
}

func formatWeight(w *float64) string {
	if w == nil {
		return "(none)"
	}
	return fmt.Sprintf("%g", *w)
}

// DiffOptions configures the diff operation
type DiffOptions struct {
	// CompareWeights enables weight comparison for nodes present in both trees
	CompareWeights bool
	// MaxDifferences limits the number of differences tracked (0 = unlimited)
	MaxDifferences int
}

// DefaultDiffOptions returns sensible default diff options
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{
		CompareWeights: true,
		MaxDifferences: 100,
	}
}

// flattenByPath walks the tree and keys every node by its name path. Sibling
// name collisions are disambiguated with the child index so no node is lost.
func flattenByPath(root *model.Node) map[string]*model.Node {
	out := make(map[string]*model.Node)
	if root == nil {
		return out
	}

	type frame struct {
		node *model.Node
		path string
	}
	stack := []frame{{node: root, path: root.Name}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		key := f.path
		if _, taken := out[key]; taken {
			key = fmt.Sprintf("%s#%d", f.path, len(out))
		}
		out[key] = f.node

		for i := len(f.node.Children) - 1; i >= 0; i-- {
			child := f.node.Children[i]
			stack = append(stack, frame{node: child, path: f.path + "/" + child.Name})
		}
	}
	return out
}

// DetectInconsistencies compares two trees and returns their differences
func DetectInconsistencies(treeA, treeB *model.Node, sourceA, sourceB string, opts DiffOptions) SourceDiff {
	diff := SourceDiff{
		SourceA: sourceA,
		SourceB: sourceB,
	}

	mapA := flattenByPath(treeA)
	mapB := flattenByPath(treeB)

	diff.CountA = len(mapA)
	diff.CountB = len(mapB)

	// Nodes in A but not in B
	for path := range mapA {
		if _, exists := mapB[path]; !exists {
			if opts.MaxDifferences == 0 || len(diff.MissingInB) < opts.MaxDifferences {
				diff.MissingInB = append(diff.MissingInB, path)
			}
		}
	}

	// Nodes in B but not in A, and weight mismatches
	for path, nodeB := range mapB {
		nodeA, exists := mapA[path]
		if !exists {
			if opts.MaxDifferences == 0 || len(diff.MissingInA) < opts.MaxDifferences {
				diff.MissingInA = append(diff.MissingInA, path)
			}
			continue
		}
		if opts.CompareWeights && !sameWeight(nodeA.Value, nodeB.Value) {
			if opts.MaxDifferences == 0 || len(diff.WeightMismatch) < opts.MaxDifferences {
				diff.WeightMismatch = append(diff.WeightMismatch, WeightDifference{
					Path:    path,
					WeightA: nodeA.Value,
					WeightB: nodeB.Value,
				})
			}
		}
	}

	return diff
}

func sameWeight(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// CompareSources loads and compares two data sources
func CompareSources(sourceA, sourceB DataSource, opts DiffOptions) (*SourceDiff, error) {
	treeA, err := LoadFromSource(sourceA)
	if err != nil {
		return nil, fmt.Errorf("failed to load source A (%s): %w", sourceA.Path, err)
	}

	treeB, err := LoadFromSource(sourceB)
	if err != nil {
		return nil, fmt.Errorf("failed to load source B (%s): %w", sourceB.Path, err)
	}

	diff := DetectInconsistencies(treeA, treeB, sourceA.Path, sourceB.Path, opts)
	return &diff, nil
}

// CheckAllSourcesConsistent compares all valid sources pairwise and reports
// any inconsistencies
func CheckAllSourcesConsistent(sources []DataSource, opts DiffOptions) ([]SourceDiff, error) {
	var diffs []SourceDiff

	for i := 0; i < len(sources); i++ {
		if !sources[i].Valid {
			continue
		}
		for j := i + 1; j < len(sources); j++ {
			if !sources[j].Valid {
				continue
			}

			diff, err := CompareSources(sources[i], sources[j], opts)
			if err != nil {
				continue
			}

			if diff.HasInconsistencies() {
				diffs = append(diffs, *diff)
			}
		}
	}

	return diffs, nil
}
