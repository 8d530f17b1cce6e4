package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/vanderheijden86/canopy/pkg/model"
)

// WeightSummary describes the distribution of leaf weights in a subtree.
// Used by the detail panel to characterize a partially-visible node beyond
// the plain sum.
type WeightSummary struct {
	Leaves int     `json:"leaves"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// SummarizeWeights computes the leaf-weight distribution for the subtree
// rooted at t. A nil subtree or one without weighted leaves yields the zero
// summary.
func SummarizeWeights(t *model.Node) WeightSummary {
	weights := LeafWeights(t)
	if len(weights) == 0 {
		return WeightSummary{}
	}

	sorted := make([]float64, len(weights))
	copy(sorted, weights)
	sort.Float64s(sorted)

	s := WeightSummary{
		Leaves: len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
	for _, w := range sorted {
		s.Sum += w
	}
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}
