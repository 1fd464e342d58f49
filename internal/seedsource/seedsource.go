// Copyright 2026 graphfuzz-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2 LICENSE that can be
// found in the LICENSE file.

// Package seedsource defines the SeedSource capability (spec.md §6): the
// only way the fuzz loop sees an initial-seed Generator, which is itself
// out of scope. The concrete sources here stand in for that external
// Generator in tests and example binaries.
package seedsource

import "github.com/graphfuzz/graphfuzz-go/internal/graph"

// SeedSource produces an initial batch of graphs admissible for a given
// algorithm family's attribute combination.
type SeedSource interface {
	// InitialMultiple returns a batch of graphs, all satisfying attrs.
	InitialMultiple(attrs graph.Attrs) ([]*graph.Graph, error)
}

// Trivial always returns a single one-node, no-edge graph, matching the
// fallback of spec.md §4.4 step 1 used whenever multiple-seeds mode is off.
type Trivial struct{}

func (Trivial) InitialMultiple(attrs graph.Attrs) ([]*graph.Graph, error) {
	g := graph.New(attrs)
	g.AddNode(0)
	return []*graph.Graph{g}, nil
}
