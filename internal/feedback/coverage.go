// Copyright 2026 graphfuzz-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2 LICENSE that can be
// found in the LICENSE file.

// Package feedback decides whether a mutated graph is interesting enough to
// re-enter the corpus, grounded on the mutex-guarded signal bookkeeping of
// the teacher's pkg/corpus/selection.go and pkg/fuzzer/seeds.go, generalized
// from syscall program-counter signal to (file, line)/(file, branch) pairs.
package feedback

import (
	"sync"

	"golang.org/x/exp/maps"
)

// Point is one coverage observation: a source location (line mode) or a
// branch identifier (branch mode) within a file, per spec §3.
type Point struct {
	File string
	ID   int
}

// CoverageSet is the single shared, mutex-guarded set of the whole run
// (spec §3 "Coverage set", §5 "Shared resources"). The feedback evaluator is
// its sole writer: the coverage, branch and combination modes read and
// write it under the same lock; the regular and none modes do not touch it
// (spec §4.3).
type CoverageSet struct {
	mu     sync.Mutex
	points map[Point]struct{}
}

// NewCoverageSet returns an empty, shared coverage set.
func NewCoverageSet() *CoverageSet {
	return &CoverageSet{points: make(map[Point]struct{})}
}

// Snapshot returns a copy of the points seen so far. Safe for concurrent
// use; the copy is independent of future writers.
func (c *CoverageSet) Snapshot() map[Point]struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.points)
}

// Len reports the current size of the shared set.
func (c *CoverageSet) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.points)
}

// AddNew merges hits into the shared set and returns how many were
// previously unseen. A single brief critical section does the
// set-difference and the union, per spec §9's design note.
func (c *CoverageSet) AddNew(hits []Point) int {
	if len(hits) == 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	added := 0
	for _, p := range hits {
		if _, ok := c.points[p]; !ok {
			c.points[p] = struct{}{}
			added++
		}
	}
	return added
}
