package reference_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphfuzz/graphfuzz-go/internal/graph"
	"github.com/graphfuzz/graphfuzz-go/internal/tester/reference"
)

func threeCycle() *graph.Graph {
	g := graph.New(graph.Attrs{Directed: true})
	g.AddNode(0)
	g.AddNode(1)
	g.AddNode(2)
	g.AddEdge(0, 1, 1)
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 0, 1)
	return g
}

func TestSCCFindsTheDemonstrationBug(t *testing.T) {
	g := threeCycle()
	result, err := reference.SCC{}.Test(context.Background(), g, 0)
	require.NoError(t, err)
	require.Len(t, result.Discrepancies, 1, "exactly one discrepancy tag, not one per implementation pair")
	assert.Equal(t, reference.SCCTag, result.Discrepancies[0].Tag)
}

func TestSCCAgreesOnAcyclicGraph(t *testing.T) {
	g := graph.New(graph.Attrs{Directed: true})
	g.AddNode(0)
	g.AddNode(1)
	g.AddEdge(0, 1, 1)

	result, err := reference.SCC{}.Test(context.Background(), g, 0)
	require.NoError(t, err)
	assert.Empty(t, result.Discrepancies)
}

func TestSTPLScenario2NoDiscrepancy(t *testing.T) {
	g := graph.New(graph.Attrs{Directed: true, Weighted: true, NegativeWeights: true})
	g.AddNode(0)
	g.AddNode(1)
	g.AddNode(2)
	g.AddEdge(0, 1, 2)
	g.AddEdge(1, 2, -1)
	g.AddEdge(0, 2, 4)

	st := reference.STPL{From: 0, To: 2}
	result, err := st.Test(context.Background(), g, 0)
	require.NoError(t, err)
	assert.Empty(t, result.Discrepancies, "Dijkstra must be excluded under negative weights, leaving no disagreement")
}

func TestSTPLAgreesOnNonNegativeGraph(t *testing.T) {
	g := graph.New(graph.Attrs{Directed: true, Weighted: true})
	g.AddNode(0)
	g.AddNode(1)
	g.AddNode(2)
	g.AddEdge(0, 1, 2)
	g.AddEdge(1, 2, 3)
	g.AddEdge(0, 2, 10)

	st := reference.STPL{From: 0, To: 2}
	result, err := st.Test(context.Background(), g, 0)
	require.NoError(t, err)
	assert.Empty(t, result.Discrepancies)
}

func TestSTPLUnreachableIsInfinity(t *testing.T) {
	g := graph.New(graph.Attrs{Directed: true, Weighted: true})
	g.AddNode(0)
	g.AddNode(1)

	st := reference.STPL{From: 0, To: 1}
	result, err := st.Test(context.Background(), g, 0)
	require.NoError(t, err)
	assert.Empty(t, result.Discrepancies)
}
