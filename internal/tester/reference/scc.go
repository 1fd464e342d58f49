// Copyright 2026 graphfuzz-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2 LICENSE that can be
// found in the LICENSE file.

// Package reference provides small, deterministic stand-ins for the
// concrete graph algorithms spec.md treats as external collaborators
// (§1, §6). They exist only so the fuzz loop, corpus, and reporter can be
// exercised end to end in tests -- production use is expected to plug in
// real implementations via the Tester interface.
package reference

import (
	"context"
	"sort"

	"github.com/graphfuzz/graphfuzz-go/internal/graph"
	"github.com/graphfuzz/graphfuzz-go/internal/tester"
)

// SCC differentially tests three strongly-connected-components
// implementations: two independent correct algorithms (Tarjan, Kosaraju)
// and one deliberately defective one, grounded on
// original_source/Tester/SCCTester.py and on spec §8 scenario 1. It exists
// to demonstrate the harness finding a real disagreement, not to model a
// realistic bug.
type SCC struct{}

// SCCTag is the single discrepancy tag SCC reports -- one tag per algorithm
// family, not one per pairwise implementation comparison, so that "the
// three implementations didn't all agree" is exactly one reportable event.
const SCCTag = "scc"

func (SCC) Test(_ context.Context, g *graph.Graph, _ float64) (tester.Result, error) {
	tarjan := canonicalize(tarjanSCC(g))
	kosaraju := canonicalize(kosarajuSCC(g))
	buggy := canonicalize(buggyThreeCycleSCC(g))

	if equalPartitions(tarjan, kosaraju) && equalPartitions(tarjan, buggy) {
		return tester.Result{}, nil
	}
	return tester.Result{Discrepancies: []tester.Discrepancy{{Tag: SCCTag, Graph: g}}}, nil
}

// tarjanSCC is a standard, correct Tarjan's algorithm.
func tarjanSCC(g *graph.Graph) [][]int {
	nodes := sortedNodes(g)
	index := make(map[int]int)
	lowlink := make(map[int]int)
	onStack := make(map[int]bool)
	var stack []int
	counter := 0
	var sccs [][]int

	var strongconnect func(v int)
	strongconnect = func(v int) {
		index[v] = counter
		lowlink[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, e := range sortedNeighbors(g, v) {
			w := e.To
			if _, seen := index[w]; !seen {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if index[w] < lowlink[v] {
					lowlink[v] = index[w]
				}
			}
		}

		if lowlink[v] == index[v] {
			var component []int
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				component = append(component, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, component)
		}
	}

	for _, v := range nodes {
		if _, seen := index[v]; !seen {
			strongconnect(v)
		}
	}
	return sccs
}

// kosarajuSCC is Kosaraju's two-pass algorithm: DFS finish order on G, then
// DFS on the transpose in reverse finish order.
func kosarajuSCC(g *graph.Graph) [][]int {
	nodes := sortedNodes(g)
	visited := make(map[int]bool)
	var order []int

	var dfs1 func(v int)
	dfs1 = func(v int) {
		visited[v] = true
		for _, e := range sortedNeighbors(g, v) {
			if !visited[e.To] {
				dfs1(e.To)
			}
		}
		order = append(order, v)
	}
	for _, v := range nodes {
		if !visited[v] {
			dfs1(v)
		}
	}

	transpose := make(map[int][]int)
	for _, e := range g.Edges() {
		transpose[e.To] = append(transpose[e.To], e.From)
	}
	for _, nbrs := range transpose {
		sort.Ints(nbrs)
	}

	visited2 := make(map[int]bool)
	var sccs [][]int
	var dfs2 func(v int, component *[]int)
	dfs2 = func(v int, component *[]int) {
		visited2[v] = true
		*component = append(*component, v)
		for _, w := range transpose[v] {
			if !visited2[w] {
				dfs2(w, component)
			}
		}
	}
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		if !visited2[v] {
			var component []int
			dfs2(v, &component)
			sccs = append(sccs, component)
		}
	}
	return sccs
}

// buggyThreeCycleSCC computes the correct answer and then applies an
// intentional defect: any component that forms a simple directed cycle
// (every member has exactly one in-component outgoing edge) is split by
// peeling its highest-id node off into a singleton. This reproduces
// spec §8 scenario 1 exactly: {0,1,2} with edges (0,1),(1,2),(2,0)
// becomes {{0,1},{2}}.
func buggyThreeCycleSCC(g *graph.Graph) [][]int {
	correct := tarjanSCC(g)
	var out [][]int
	for _, component := range correct {
		if len(component) >= 2 && isSimpleCycle(g, component) {
			peeled, rest := peelMax(component)
			out = append(out, rest, []int{peeled})
			continue
		}
		out = append(out, component)
	}
	return out
}

func isSimpleCycle(g *graph.Graph, component []int) bool {
	members := make(map[int]bool, len(component))
	for _, v := range component {
		members[v] = true
	}
	for _, v := range component {
		inComponentOut := 0
		for _, e := range g.Neighbors(v) {
			if members[e.To] {
				inComponentOut++
			}
		}
		if inComponentOut != 1 {
			return false
		}
	}
	return true
}

func peelMax(component []int) (max int, rest []int) {
	max = component[0]
	for _, v := range component[1:] {
		if v > max {
			max = v
		}
	}
	for _, v := range component {
		if v != max {
			rest = append(rest, v)
		}
	}
	return max, rest
}

func sortedNodes(g *graph.Graph) []int {
	nodes := g.Nodes()
	sort.Ints(nodes)
	return nodes
}

func sortedNeighbors(g *graph.Graph, v int) []*graph.Edge {
	edges := g.Neighbors(v)
	sort.Slice(edges, func(i, j int) bool { return edges[i].To < edges[j].To })
	return edges
}

// canonicalize sorts each component and then sorts the list of components
// so two logically-equal partitions compare equal regardless of discovery
// order.
func canonicalize(sccs [][]int) [][]int {
	out := make([][]int, len(sccs))
	for i, c := range sccs {
		cc := append([]int(nil), c...)
		sort.Ints(cc)
		out[i] = cc
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		for k := range out[i] {
			if out[i][k] != out[j][k] {
				return out[i][k] < out[j][k]
			}
		}
		return false
	})
	return out
}

func equalPartitions(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
