package testutil

import (
	"fmt"
	"math/rand"

	"github.com/vanderheijden86/canopy/pkg/model"
)

// GeneratorConfig controls random tree generation. All generators are
// deterministic for a given seed so failures reproduce.
type GeneratorConfig struct {
	Seed       int64
	MaxBreadth int
	MaxDepth   int
	// LeafChance is the probability that a non-root node below MaxDepth
	// stops growing and becomes a weighted leaf.
	LeafChance float64
	// MinWeight and MaxWeight bound generated leaf values.
	MinWeight float64
	MaxWeight float64
}

// DefaultGeneratorConfig returns a config producing bushy mid-sized trees.
func DefaultGeneratorConfig(seed int64) GeneratorConfig {
	return GeneratorConfig{
		Seed:       seed,
		MaxBreadth: 5,
		MaxDepth:   6,
		LeafChance: 0.35,
		MinWeight:  1,
		MaxWeight:  10000,
	}
}

// Generator produces random valid trees.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// NewGenerator creates a generator seeded from cfg.Seed.
func NewGenerator(cfg GeneratorConfig) *Generator {
	if cfg.MaxBreadth < 1 {
		cfg.MaxBreadth = 1
	}
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = 0
	}
	if cfg.MaxWeight < cfg.MinWeight {
		cfg.MaxWeight = cfg.MinWeight
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// RandomTree generates a tree of at most maxNodes nodes. The result always
// passes Validate: names are non-empty and unique among siblings, and leaves
// carry weights within the configured bounds.
func (g *Generator) RandomTree(maxNodes int) *model.Node {
	if maxNodes < 1 {
		maxNodes = 1
	}
	budget := maxNodes
	return g.grow("n", 0, &budget)
}

// Chain generates a single path of the given length, useful for exercising
// depth limits without breadth noise.
func (g *Generator) Chain(length int) *model.Node {
	root := &model.Node{Name: "chain0"}
	cur := root
	for i := 1; i < length; i++ {
		child := &model.Node{Name: fmt.Sprintf("chain%d", i)}
		cur.Children = []*model.Node{child}
		cur = child
	}
	w := g.weight()
	cur.Value = &w
	return root
}

func (g *Generator) grow(name string, depth int, budget *int) *model.Node {
	*budget--
	n := &model.Node{Name: name}

	stop := depth >= g.cfg.MaxDepth || *budget <= 0
	if !stop && depth > 0 {
		stop = g.rng.Float64() < g.cfg.LeafChance
	}
	if stop {
		w := g.weight()
		n.Value = &w
		return n
	}

	breadth := g.rng.Intn(g.cfg.MaxBreadth) + 1
	for i := 0; i < breadth && *budget > 0; i++ {
		n.Children = append(n.Children, g.grow(fmt.Sprintf("%s_%d", name, i), depth+1, budget))
	}
	if len(n.Children) == 0 {
		w := g.weight()
		n.Value = &w
	}
	return n
}

func (g *Generator) weight() float64 {
	span := g.cfg.MaxWeight - g.cfg.MinWeight
	return g.cfg.MinWeight + g.rng.Float64()*span
}
