package seedsource

import (
	"math/rand"

	"github.com/graphfuzz/graphfuzz-go/internal/graph"
)

// Attr generates a batch of small random graphs satisfying one requested
// attribute combination, standing in for the external Generator (out of
// scope per spec.md §1). Grounded on
// original_source/Generator/SmokeGenerator.py's per-attribute-combination
// generate() loop, simplified to a single deterministic edge-probability
// model instead of networkx's graph-type classes.
type Attr struct {
	// MaxNodes bounds how many nodes a generated graph may have; each call
	// picks a random node count in [1, MaxNodes].
	MaxNodes int
	// BatchSize is how many graphs InitialMultiple returns.
	BatchSize int
	// Rand is used for every random choice; a fresh rand.New(rand.NewSource(seed))
	// per caller keeps generation reproducible across runs with the same seed.
	Rand *rand.Rand
}

// NewAttr returns an Attr with the defaults SmokeGenerator itself uses:
// nodes in [1,10], a 5-graph batch.
func NewAttr(rnd *rand.Rand) *Attr {
	return &Attr{MaxNodes: 10, BatchSize: 5, Rand: rnd}
}

func (a *Attr) InitialMultiple(attrs graph.Attrs) ([]*graph.Graph, error) {
	out := make([]*graph.Graph, 0, a.BatchSize)
	for i := 0; i < a.BatchSize; i++ {
		out = append(out, a.generateOne(attrs))
	}
	return out, nil
}

func (a *Attr) generateOne(attrs graph.Attrs) *graph.Graph {
	g := graph.New(attrs)

	n := 1 + a.Rand.Intn(a.MaxNodes)
	for id := 0; id < n; id++ {
		g.AddNode(id)
	}

	p := 0.1 + a.Rand.Float64()*0.8
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			if u == v {
				continue
			}
			if !attrs.Directed && v < u {
				continue
			}
			if a.Rand.Float64() >= p {
				continue
			}
			weight := 1.0
			if attrs.Weighted {
				weight = float64(1 + a.Rand.Intn(200))
				if attrs.NegativeWeights && a.Rand.Intn(2) == 0 {
					weight = -weight
				}
			}
			g.AddEdge(u, v, weight)
			if attrs.MultiEdge && a.Rand.Intn(4) == 0 {
				g.AddEdge(u, v, weight)
			}
		}
	}
	return g
}
