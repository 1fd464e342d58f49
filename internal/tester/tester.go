// Copyright 2026 graphfuzz-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2 LICENSE that can be
// found in the LICENSE file.

// Package tester defines the Tester capability of spec §6: the only way
// the core ever sees a concrete graph algorithm. Concrete algorithms
// (SCC, MST, STPL, ...) are out of scope for the core; this package carries
// the interface plus a handful of small deterministic reference
// implementations (package reference) used to exercise the harness in
// tests, grounded on original_source/Tester/*.py.
package tester

import (
	"context"
	"math"

	"github.com/graphfuzz/graphfuzz-go/internal/feedback"
	"github.com/graphfuzz/graphfuzz-go/internal/graph"
)

// Discrepancy names one pairwise disagreement between implementations.
type Discrepancy struct {
	Tag   string
	Graph *graph.Graph
}

// Result is what running a Tester on one graph produces: zero or more
// Discrepancies (empty means every implementation agreed), plus, for
// coverage-driven feedback modes, whichever (file, line)/(file, branch)
// points the instrumented run touched.
type Result struct {
	Discrepancies []Discrepancy
	Coverage      []feedback.Point
}

// Tester runs an algorithm family against a graph and reports
// disagreements, per spec §6: test(G, timestamp) -> [(tag, graph)].
type Tester interface {
	Test(ctx context.Context, g *graph.Graph, timestamp float64) (Result, error)
}

// Tolerance levels for comparing floating-point algorithm outputs (spec
// §6): tight by default, relaxed for link-prediction-style scores such as
// Adamic-Adar or Jaccard similarity.
const (
	DefaultTolerance        = 1e-6
	LinkPredictionTolerance = 1e-3
)

// FloatsAgree reports whether a and b are within tol of each other,
// treating two +Inf (or two -Inf) values -- used by shortest-path testers
// for "no path exists" -- as agreeing.
func FloatsAgree(a, b, tol float64) bool {
	if math.IsInf(a, 1) && math.IsInf(b, 1) {
		return true
	}
	if math.IsInf(a, -1) && math.IsInf(b, -1) {
		return true
	}
	return math.Abs(a-b) <= tol
}
