package graph_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphfuzz/graphfuzz-go/internal/graph"
)

func TestAddRemoveNode(t *testing.T) {
	g := graph.New(graph.Attrs{Directed: true})
	assert.True(t, g.AddNode(0))
	assert.False(t, g.AddNode(0))
	assert.True(t, g.HasNode(0))

	g.AddEdge(0, 0, 1)
	g.RemoveNode(0)
	assert.False(t, g.HasNode(0))
	assert.Empty(t, g.Edges())
}

func TestUndirectedEdgeIsMirrored(t *testing.T) {
	g := graph.New(graph.Attrs{})
	g.AddNode(0)
	g.AddNode(1)
	g.AddEdge(0, 1, 5)

	assert.True(t, g.HasEdge(0, 1))
	assert.True(t, g.HasEdge(1, 0))
	assert.Equal(t, 1, g.EdgeCount(), "an undirected edge must be counted once, not once per mirrored direction")

	g.RemoveEdge(g.Edges()[0])
	assert.False(t, g.HasEdge(0, 1))
	assert.False(t, g.HasEdge(1, 0))
}

func TestCloneIsIndependent(t *testing.T) {
	g := graph.New(graph.Attrs{Directed: true, Weighted: true})
	g.AddNode(0)
	g.AddNode(1)
	g.AddEdge(0, 1, 2)

	clone := g.Clone()
	clone.AddNode(2)
	clone.AddEdge(1, 2, 3)

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 3, clone.NodeCount())
}

func TestGobRoundTrip(t *testing.T) {
	g := graph.New(graph.Attrs{Directed: true, Weighted: true, NegativeWeights: true})
	g.AddNode(0)
	g.AddNode(1)
	g.AddNode(2)
	g.AddEdge(0, 1, 2)
	g.AddEdge(1, 2, -1)

	data, err := g.GobEncode()
	require.NoError(t, err)

	var decoded graph.Graph
	require.NoError(t, decoded.GobDecode(data))

	assert.Equal(t, g.Attrs(), decoded.Attrs())
	if diff := cmp.Diff(g.Nodes(), decoded.Nodes(), cmpopts.SortSlices(func(a, b int) bool { return a < b })); diff != "" {
		t.Errorf("node set changed across a gob round trip (-want +got):\n%s", diff)
	}

	byEndpoints := func(edges []*graph.Edge) []graph.Edge {
		out := make([]graph.Edge, len(edges))
		for i, e := range edges {
			out[i] = *e
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].From != out[j].From {
				return out[i].From < out[j].From
			}
			return out[i].To < out[j].To
		})
		return out
	}
	if diff := cmp.Diff(byEndpoints(g.Edges()), byEndpoints(decoded.Edges()), cmpopts.IgnoreUnexported(graph.Edge{})); diff != "" {
		t.Errorf("edge set changed across a gob round trip (-want +got):\n%s", diff)
	}
	assert.True(t, decoded.HasNegativeWeight())
}

func TestHasNegativeCycle(t *testing.T) {
	g := graph.New(graph.Attrs{Directed: true, Weighted: true, NegativeWeights: true})
	for i := 0; i < 3; i++ {
		g.AddNode(i)
	}
	g.AddEdge(0, 1, 1)
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 0, -3)

	assert.True(t, g.HasNegativeCycle())
}
