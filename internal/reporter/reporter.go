// Copyright 2026 graphfuzz-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2 LICENSE that can be
// found in the LICENSE file.

// Package reporter implements the Reporter of spec.md §4.6: write-once
// first-seen timestamps, monotonic per-tag counts, and persistence of every
// discrepancy record to a per-run file. Grounded verbatim on
// original_source/Fuzzer/STPLFuzzer.py's process_test_results, with metrics
// export added (§4.6 expansion) the way the teacher's pkg/stats wraps
// counters for pkg/fuzzer/retry.go.
package reporter

import (
	"encoding/gob"
	"fmt"
	"os"
	"sync"

	"github.com/VividCortex/gohistogram"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/graphfuzz/graphfuzz-go/internal/applog"
	"github.com/graphfuzz/graphfuzz-go/internal/graph"
)

// Record is one persisted discrepancy: the tag, the graph that triggered
// it, and the wall-clock offset in seconds since run-start.
type Record struct {
	Tag       string
	Graph     *graph.Graph
	Timestamp float64
}

// Snapshot is the read-only view observe() maintains: first_seen_at and
// total_count, both keyed by discrepancy tag.
type Snapshot struct {
	FirstSeenAt map[string]float64
	TotalCount  map[string]int64
}

// Reporter accumulates discrepancy observations for a single run and
// persists each one, per spec.md §3/§4.6.
type Reporter struct {
	mu          sync.Mutex
	firstSeenAt map[string]float64
	totalCount  map[string]int64

	runID     string
	algorithm string
	out       *gob.Encoder
	closer    func() error

	log *applog.Logger

	firstSeenHist   *gohistogram.NumericHistogram
	countVec        *prometheus.CounterVec
	firstSeenGauge  *prometheus.GaugeVec
}

// New opens (creating/truncating) `{algorithm}_discrepancy_{runID}.pkl`
// under dir and returns a Reporter that appends every observed discrepancy
// to it, matching the naming spec.md §4.6 requires.
func New(dir, algorithm, runID string, log *applog.Logger) (*Reporter, error) {
	path := fmt.Sprintf("%s/%s_discrepancy_%s.pkl", dir, algorithm, runID)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("reporter: create %s: %w", path, err)
	}

	r := &Reporter{
		firstSeenAt: make(map[string]float64),
		totalCount:  make(map[string]int64),
		runID:       runID,
		algorithm:   algorithm,
		out:         gob.NewEncoder(f),
		closer:      f.Close,
		log:         log,
		firstSeenHist: gohistogram.NewHistogram(20),
		countVec: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "graphfuzz",
			Name:      "discrepancy_total",
			Help:      "Number of times each discrepancy tag has been observed.",
		}, []string{"algorithm", "tag"}),
		firstSeenGauge: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "graphfuzz",
			Name:      "discrepancy_first_seen_seconds",
			Help:      "Wall-clock seconds since run start at which a tag was first observed.",
		}, []string{"algorithm", "tag"}),
	}
	return r, nil
}

// Collectors returns the Prometheus collectors this Reporter feeds, for a
// caller that wants to register them with its own registry.
func (r *Reporter) Collectors() []prometheus.Collector {
	return []prometheus.Collector{r.countVec, r.firstSeenGauge}
}

// Observe records one discrepancy at atSeconds. The first call for a given
// tag sets first_seen_at (write-once); every call increments total_count
// and appends a Record to the persisted log.
func (r *Reporter) Observe(tag string, g *graph.Graph, atSeconds float64) error {
	r.mu.Lock()
	if _, ok := r.firstSeenAt[tag]; !ok {
		r.firstSeenAt[tag] = atSeconds
		r.log.Logf(0, "Recorded first occurrence of '%s' at %v seconds since start.", tag, atSeconds)
		dump := applog.Truncate([]byte(g.DebugString()), 200, 200)
		r.log.Logf(1, "graph for '%s': %s", tag, dump)
		r.firstSeenHist.Add(atSeconds)
		r.firstSeenGauge.WithLabelValues(r.algorithm, tag).Set(atSeconds)
	}
	r.totalCount[tag]++
	r.countVec.WithLabelValues(r.algorithm, tag).Inc()
	r.mu.Unlock()

	if err := r.out.Encode(Record{Tag: tag, Graph: g, Timestamp: atSeconds}); err != nil {
		return fmt.Errorf("reporter: persist discrepancy: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the current first_seen_at/total_count state.
func (r *Reporter) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := Snapshot{
		FirstSeenAt: make(map[string]float64, len(r.firstSeenAt)),
		TotalCount:  make(map[string]int64, len(r.totalCount)),
	}
	for k, v := range r.firstSeenAt {
		s.FirstSeenAt[k] = v
	}
	for k, v := range r.totalCount {
		s.TotalCount[k] = v
	}
	return s
}

// FirstSeenQuantile reports a quantile (e.g. 0.5 for the median) of every
// first-seen timestamp observed so far, answering spec.md §1's "how does
// the population of unique discrepancies grow over wall-clock time"
// measurement goal without re-reading the persisted log.
func (r *Reporter) FirstSeenQuantile(q float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.firstSeenHist.Quantile(q)
}

// Close flushes the persisted discrepancy log. Per spec.md §5's
// cancellation rule, callers must call this only after the current
// iteration has fully completed, never mid-write.
func (r *Reporter) Close() error {
	return r.closer()
}
