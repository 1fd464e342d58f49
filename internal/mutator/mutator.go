// Copyright 2026 graphfuzz-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2 LICENSE that can be
// found in the LICENSE file.

// Package mutator applies one random local edit to a graph, grounded on
// original_source/Mutator/SimpleMutator.py: add-node, delete-node, add-edge,
// delete-edge, chosen uniformly at random. The result is always a fresh
// *graph.Graph; the input is never modified (spec §3: "graphs within a
// corpus are never mutated in place after insertion").
package mutator

import (
	"math/rand"

	"github.com/graphfuzz/graphfuzz-go/internal/graph"
)

const (
	maxAddEdgeAttempts = 100
	minEdgeWeight      = 1
	maxEdgeWeight      = 500
)

// Mutate returns a clone of g with exactly one of the four edits applied.
// The clone preserves g's attribute flags (directedness, multi-edge,
// weighted/unweighted) per spec §4.1's closure property.
func Mutate(rnd *rand.Rand, g *graph.Graph) *graph.Graph {
	out := g.Clone()
	switch rnd.Intn(4) {
	case 0:
		addNode(out)
	case 1:
		deleteNode(rnd, out)
	case 2:
		addEdge(rnd, out)
	case 3:
		deleteEdge(rnd, out)
	}
	return out
}

func addNode(g *graph.Graph) {
	if max, ok := g.MaxNodeID(); ok {
		g.AddNode(max + 1)
	} else {
		g.AddNode(0)
	}
}

func deleteNode(rnd *rand.Rand, g *graph.Graph) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return
	}
	g.RemoveNode(nodes[rnd.Intn(len(nodes))])
}

func addEdge(rnd *rand.Rand, g *graph.Graph) {
	nodes := g.Nodes()
	attrs := g.Attrs()

	var from, to int
	switch {
	case len(nodes) == 0:
		g.AddNode(0)
		g.AddNode(1)
		from, to = 0, 1
	case len(nodes) == 1:
		only := nodes[0]
		next := only + 1
		g.AddNode(next)
		from, to = only, next
	default:
		from, to = pickDistinct(rnd, nodes)
		if !attrs.MultiEdge {
			attempts := 0
			for g.HasEdge(from, to) && attempts < maxAddEdgeAttempts {
				from, to = pickDistinct(rnd, nodes)
				attempts++
			}
			if attempts == maxAddEdgeAttempts && g.HasEdge(from, to) {
				max, _ := g.MaxNodeID()
				fresh := max + 1
				g.AddNode(fresh)
				from, to = fresh, nodes[rnd.Intn(len(nodes))]
			}
		}
	}

	weight := 1.0
	if attrs.Weighted {
		weight = float64(minEdgeWeight + rnd.Intn(maxEdgeWeight-minEdgeWeight+1))
		if attrs.NegativeWeights && g.HasNegativeWeight() && rnd.Intn(2) == 0 {
			weight = -weight
		}
	}
	g.AddEdge(from, to, weight)
}

func pickDistinct(rnd *rand.Rand, nodes []int) (int, int) {
	i := rnd.Intn(len(nodes))
	j := rnd.Intn(len(nodes) - 1)
	if j >= i {
		j++
	}
	return nodes[i], nodes[j]
}

func deleteEdge(rnd *rand.Rand, g *graph.Graph) {
	edges := g.Edges()
	if len(edges) == 0 {
		return
	}
	g.RemoveEdge(edges[rnd.Intn(len(edges))])
}
