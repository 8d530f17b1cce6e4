//go:build ignore

// generate_testdata.go creates synthetic flare-style datasets for
// benchmarking and manual testing.
// Usage: go run scripts/generate_testdata.go
//
// Creates:
//
//	testdata/benchmark/small.json   (~100 nodes)
//	testdata/benchmark/medium.json  (~1000 nodes)
//	testdata/benchmark/large.json   (~10000 nodes)
//	testdata/benchmark/deep.json    (narrow but 40 levels deep)
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/canopy/pkg/model"
)

type datasetSpec struct {
	name       string
	target     int
	maxBreadth int
	maxDepth   int
}

var datasets = []datasetSpec{
	{"small", 100, 6, 5},
	{"medium", 1000, 8, 7},
	{"large", 10000, 10, 9},
	{"deep", 200, 2, 40},
}

func main() {
	outputDir := "testdata/benchmark"
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, ds := range datasets {
		fmt.Printf("Generating %s dataset (~%d nodes)...\n", ds.name, ds.target)

		// Reproducible per-size
		rng := rand.New(rand.NewSource(int64(ds.target)))
		budget := ds.target
		root := grow(rng, ds.name, 0, ds, &budget)

		data, err := json.MarshalIndent(root, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal %s: %v\n", ds.name, err)
			os.Exit(1)
		}

		outputPath := filepath.Join(outputDir, ds.name+".json")
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", outputPath, err)
			os.Exit(1)
		}

		fmt.Printf("  Written %s (%d bytes, %d nodes)\n", outputPath, len(data), ds.target-budget)
	}

	fmt.Println("\nDone! Datasets created in", outputDir)
}

// grow builds a random subtree, spending at most *budget nodes. Interior
// nodes carry no weight so that aggregates are exercised the way flare
// datasets exercise them.
func grow(rng *rand.Rand, name string, depth int, ds datasetSpec, budget *int) *model.Node {
	*budget--
	n := &model.Node{Name: fmt.Sprintf("%s%d", name, depth)}

	if depth >= ds.maxDepth || *budget <= 0 || (depth > 0 && rng.Float64() < 0.3) {
		v := float64(rng.Intn(9000) + 200)
		n.Value = &v
		return n
	}

	breadth := rng.Intn(ds.maxBreadth) + 1
	for i := 0; i < breadth && *budget > 0; i++ {
		child := grow(rng, fmt.Sprintf("%s_%d", name, i), depth+1, ds, budget)
		n.Children = append(n.Children, child)
	}
	if len(n.Children) == 0 {
		v := float64(rng.Intn(9000) + 200)
		n.Value = &v
	}
	return n
}
