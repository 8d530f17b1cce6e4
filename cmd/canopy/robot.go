package main

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/canopy/pkg/analysis"
	"github.com/vanderheijden86/canopy/pkg/nav"
	"github.com/vanderheijden86/canopy/pkg/treepath"
)

// printDescribe resolves a slash-separated index path against the tree and
// writes the node's detail record as JSON, for scripted consumers.
func printDescribe(out io.Writer, engine *nav.Engine, pathStr string) error {
	path, err := treepath.Parse(pathStr)
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", pathStr, err)
	}
	detail, ok := engine.Describe(path)
	if !ok {
		return fmt.Errorf("path %q does not resolve in this dataset", pathStr)
	}

	crumbs := nav.Breadcrumbs(engine.Tree(), path)
	names := make([]string, len(crumbs))
	for i, c := range crumbs {
		names[i] = c.Name
	}

	payload := struct {
		nav.Detail
		Breadcrumbs []string `json:"breadcrumbs"`
	}{Detail: detail, Breadcrumbs: names}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

type datasetSummary struct {
	Source    string                 `json:"source"`
	Root      string                 `json:"root"`
	NodeCount int                    `json:"node_count"`
	LeafCount int                    `json:"leaf_count"`
	MaxDepth  int                    `json:"max_depth"`
	SumWeight float64                `json:"sum_weight"`
	Weights   analysis.WeightSummary `json:"weights"`
}

// printSummary writes whole-dataset aggregates as JSON.
func printSummary(out io.Writer, engine *nav.Engine, sourcePath string) error {
	tree := engine.Tree()
	summary := datasetSummary{
		Source:    sourcePath,
		Root:      tree.Name,
		NodeCount: analysis.NodeCount(tree),
		LeafCount: analysis.CountLeaves(tree),
		MaxDepth:  analysis.MaxDepth(tree),
		SumWeight: analysis.SumWeights(tree),
		Weights:   analysis.SummarizeWeights(tree),
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
