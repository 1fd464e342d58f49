package seedsource_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphfuzz/graphfuzz-go/internal/graph"
	"github.com/graphfuzz/graphfuzz-go/internal/seedsource"
)

func TestTrivialIsOneNodeNoEdges(t *testing.T) {
	graphs, err := seedsource.Trivial{}.InitialMultiple(graph.Attrs{Directed: true})
	require.NoError(t, err)
	require.Len(t, graphs, 1)
	assert.Equal(t, 1, graphs[0].NodeCount())
	assert.Equal(t, 0, graphs[0].EdgeCount())
}

func TestAttrRespectsBatchSizeAndAttrs(t *testing.T) {
	a := seedsource.NewAttr(rand.New(rand.NewSource(1)))
	a.BatchSize = 3
	attrs := graph.Attrs{Directed: true, Weighted: true, NegativeWeights: true}

	graphs, err := a.InitialMultiple(attrs)
	require.NoError(t, err)
	require.Len(t, graphs, 3)
	for _, g := range graphs {
		assert.Equal(t, attrs, g.Attrs())
		assert.GreaterOrEqual(t, g.NodeCount(), 1)
	}
}

func TestAttrNoNegativeWeightsWhenDisallowed(t *testing.T) {
	a := seedsource.NewAttr(rand.New(rand.NewSource(42)))
	a.BatchSize = 10
	attrs := graph.Attrs{Directed: true, Weighted: true}

	graphs, err := a.InitialMultiple(attrs)
	require.NoError(t, err)
	for _, g := range graphs {
		assert.False(t, g.HasNegativeWeight())
	}
}
