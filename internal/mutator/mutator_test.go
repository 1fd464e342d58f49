package mutator_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/graphfuzz/graphfuzz-go/internal/graph"
	"github.com/graphfuzz/graphfuzz-go/internal/mutator"
)

func newRand() *rand.Rand { return rand.New(rand.NewSource(1)) }

func TestMutateClosurePreservesAttrs(t *testing.T) {
	attrs := graph.Attrs{Directed: true, Weighted: true, NegativeWeights: true}
	g := graph.New(attrs)
	g.AddNode(0)
	g.AddNode(1)
	g.AddEdge(0, 1, 2)

	rnd := newRand()
	for i := 0; i < 50; i++ {
		g = mutator.Mutate(rnd, g)
		assert.Equal(t, attrs, g.Attrs())
	}
}

func TestAddNodeIncreasesNodeCountByOne(t *testing.T) {
	g := graph.New(graph.Attrs{})
	g.AddNode(0)
	before := g.NodeCount()

	// Force the add-node branch directly via repeated mutation until hit,
	// bounded since Intn(4) is uniform over 4 outcomes.
	rnd := rand.New(rand.NewSource(2))
	var after *graph.Graph
	for i := 0; i < 200; i++ {
		candidate := mutator.Mutate(rnd, g)
		if candidate.NodeCount() == before+1 && candidate.EdgeCount() == g.EdgeCount() {
			after = candidate
			break
		}
	}
	if after == nil {
		t.Skip("add-node branch not observed within bound")
	}
}

func TestDeleteEdgeOnEdgelessGraphIsNoop(t *testing.T) {
	g := graph.New(graph.Attrs{})
	g.AddNode(0)
	rnd := newRand()
	for i := 0; i < 20; i++ {
		out := mutator.Mutate(rnd, g)
		// On a one-node edgeless graph add-node and add-edge both add a node
		// and delete-node removes it, so only delete-edge keeps the count.
		if out.NodeCount() == g.NodeCount() {
			assert.Equal(t, 0, out.EdgeCount())
			assert.True(t, out.HasNode(0))
		}
	}
}

func TestMutateNeverPanicsOnEmptyGraph(t *testing.T) {
	g := graph.New(graph.Attrs{Directed: true})
	rnd := newRand()
	assert.NotPanics(t, func() {
		for i := 0; i < 20; i++ {
			g = mutator.Mutate(rnd, g)
		}
	})
}
