// Copyright 2026 graphfuzz-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2 LICENSE that can be
// found in the LICENSE file.

// Package corpus stores graphs for the fuzz loop to draw from, in memory
// or batched on disk, grounded on original_source/Scheduler/*.py and on the
// mutex-guarded selection shape of the teacher's pkg/corpus/selection.go.
package corpus

import (
	"errors"
	"time"

	"github.com/graphfuzz/graphfuzz-go/internal/graph"
)

// ErrEmpty is returned by Sample when the corpus holds no records. The fuzz
// loop treats it as recoverable: fall back to a freshly generated seed
// (spec §4.2, §7 kind 1).
var ErrEmpty = errors.New("corpus: empty")

// Record is the ⟨sequence, timestamp, graph⟩ tuple of spec §3.
type Record struct {
	Seq       int64
	Timestamp float64
	Graph     *graph.Graph
}

// Scheduler is the corpus's public contract: append, random sample, and a
// finite, non-restartable replay in insertion order.
type Scheduler interface {
	// Add appends records in submission order, assigning each a strictly
	// increasing sequence number.
	Add(records ...Record) error
	// Sample returns one graph chosen at random from the records
	// currently available to this backend: the in-memory backend picks
	// uniformly over all records, the disk backend picks a closed batch
	// uniformly and then a record within it. Returns ErrEmpty if none are
	// available.
	Sample() (*graph.Graph, error)
	// Iterate returns every stored record in insertion order. The
	// returned slice is a single-shot snapshot, not a restartable
	// cursor.
	Iterate() ([]Record, error)
	// Close flushes any open resources (the currently open disk batch).
	Close() error
}

// Clock abstracts wall-clock time relative to a run-start origin, so tests
// can supply a deterministic clock instead of time.Now.
type Clock func() time.Duration

// RealClock returns a Clock reporting the time elapsed since start, matching spec §3's
// "wall-clock seconds relative to the run-start origin".
func RealClock(start time.Time) Clock {
	return func() time.Duration { return time.Since(start) }
}
