package reference

import (
	"container/heap"
	"context"
	"math"

	"github.com/graphfuzz/graphfuzz-go/internal/graph"
	"github.com/graphfuzz/graphfuzz-go/internal/tester"
)

// STPL (single-target/source path length) differentially tests two
// independent Bellman-Ford implementations against a Dijkstra
// implementation, grounded on original_source/Tester/STPLTester.py and
// spec §8 scenario 2. Dijkstra is excluded whenever the graph carries a
// negative weight, since it is not defined there -- the remaining two
// testers must still agree with each other.
type STPL struct {
	// From and To select which pair of nodes every tester computes the
	// shortest path length between.
	From, To int
}

// STPLTag is the single discrepancy tag STPL reports, mirroring SCCTag: one
// event per algorithm family per graph, regardless of how many of the
// underlying implementations disagreed.
const STPLTag = "stpl"

func (s STPL) Test(_ context.Context, g *graph.Graph, _ float64) (tester.Result, error) {
	bf1 := bellmanFord(g, s.From, s.To)
	bf2 := bellmanFordAlt(g, s.From, s.To)

	agree := tester.FloatsAgree(bf1, bf2, tester.DefaultTolerance)

	if !g.HasNegativeWeight() {
		d := dijkstra(g, s.From, s.To)
		agree = agree &&
			tester.FloatsAgree(bf1, d, tester.DefaultTolerance) &&
			tester.FloatsAgree(bf2, d, tester.DefaultTolerance)
	}

	if agree {
		return tester.Result{}, nil
	}
	return tester.Result{Discrepancies: []tester.Discrepancy{{Tag: STPLTag, Graph: g}}}, nil
}

// bellmanFord is the textbook relax-every-edge-|V|-1-times algorithm.
func bellmanFord(g *graph.Graph, from, to int) float64 {
	dist := make(map[int]float64)
	for _, n := range g.Nodes() {
		dist[n] = math.Inf(1)
	}
	if _, ok := dist[from]; !ok {
		return math.Inf(1)
	}
	dist[from] = 0

	edges := g.Edges()
	for i := 0; i < len(dist)-1; i++ {
		changed := false
		for _, e := range edges {
			if dist[e.From]+e.Weight < dist[e.To] {
				dist[e.To] = dist[e.From] + e.Weight
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return dist[to]
}

// bellmanFordAlt is the same algorithm with a different traversal order
// (edges grouped by source node rather than flattened), kept as a second,
// independently-written implementation rather than a call to bellmanFord so
// the pair can actually disagree if either has a bug.
func bellmanFordAlt(g *graph.Graph, from, to int) float64 {
	nodes := g.Nodes()
	dist := make(map[int]float64, len(nodes))
	for _, n := range nodes {
		dist[n] = math.Inf(1)
	}
	if _, ok := dist[from]; !ok {
		return math.Inf(1)
	}
	dist[from] = 0

	for i := 0; i < len(nodes)-1; i++ {
		changed := false
		for _, n := range nodes {
			if math.IsInf(dist[n], 1) {
				continue
			}
			for _, e := range g.Neighbors(n) {
				if dist[n]+e.Weight < dist[e.To] {
					dist[e.To] = dist[n] + e.Weight
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return dist[to]
}

type pqItem struct {
	node int
	dist float64
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool   { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)        { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{})  { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// dijkstra assumes non-negative weights; callers must not invoke it on a
// graph with a negative weight present.
func dijkstra(g *graph.Graph, from, to int) float64 {
	dist := make(map[int]float64)
	for _, n := range g.Nodes() {
		dist[n] = math.Inf(1)
	}
	if _, ok := dist[from]; !ok {
		return math.Inf(1)
	}
	dist[from] = 0

	visited := make(map[int]bool)
	pq := &priorityQueue{{node: from, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqItem)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true
		for _, e := range g.Neighbors(cur.node) {
			if nd := dist[cur.node] + e.Weight; nd < dist[e.To] {
				dist[e.To] = nd
				heap.Push(pq, pqItem{node: e.To, dist: nd})
			}
		}
	}
	return dist[to]
}
