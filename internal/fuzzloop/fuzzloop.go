// Copyright 2026 graphfuzz-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2 LICENSE that can be
// found in the LICENSE file.

// Package fuzzloop implements the PICK -> MUTATE -> TEST ->
// TIMEOUT|AGREE|DISAGREE -> FEEDBACK -> KEEP|DROP -> REPORT state machine
// of spec.md §4.4, one iteration per call of Run's inner loop. Grounded on
// pkg/fuzzer/fuzzer.go's nextInput/Done request-response shape and
// syz-fuzzer/control.go's loop() generate-vs-mutate structure, adapted from
// syscall programs to graphs.
package fuzzloop

import (
	"context"
	"math/rand"
	"time"

	"github.com/graphfuzz/graphfuzz-go/internal/applog"
	"github.com/graphfuzz/graphfuzz-go/internal/corpus"
	"github.com/graphfuzz/graphfuzz-go/internal/feedback"
	"github.com/graphfuzz/graphfuzz-go/internal/ferrors"
	"github.com/graphfuzz/graphfuzz-go/internal/graph"
	"github.com/graphfuzz/graphfuzz-go/internal/mutator"
	"github.com/graphfuzz/graphfuzz-go/internal/reporter"
	"github.com/graphfuzz/graphfuzz-go/internal/seedsource"
	"github.com/graphfuzz/graphfuzz-go/internal/tester"
)

// Config bundles every collaborator one worker's fuzz loop needs: a
// SeedSource, a Tester, a scheduler, a feedback evaluator, a reporter, an
// iteration budget, and a per-iteration timeout -- spec.md §4.4's stated
// inputs.
type Config struct {
	Seeds     seedsource.SeedSource
	Tester    tester.Tester
	Scheduler corpus.Scheduler
	Evaluator *feedback.Evaluator
	Reporter  *reporter.Reporter
	Attrs     graph.Attrs

	NumIterations int
	Timeout       time.Duration

	Rand *rand.Rand
	Log  *applog.Logger

	// Clock returns the time elapsed since the run-start origin shared
	// across every worker (spec.md §4.5's "common run-start origin").
	Clock func() time.Duration
}

// trivialSeed is the spec.md §4.4 step 1 fallback: a single node, no
// edges, used whenever the corpus is empty and no seed source is given, or
// the configured source fails.
var trivialSeed = seedsource.Trivial{}

// Run executes Config.NumIterations iterations of the fuzz loop, returning
// when the budget is exhausted or ctx is cancelled (the run coordinator's
// global deadline, spec.md §4.5/§5). It never returns an error for a
// recoverable per-iteration failure; those are logged and treated as
// "no discrepancy, not interesting" per spec.md §7 kind 1.
func Run(ctx context.Context, cfg Config) error {
	if err := seedInitial(cfg); err != nil {
		return ferrors.Wrap(ferrors.Fatal, err)
	}

	for i := 0; i < cfg.NumIterations; i++ {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		runIteration(ctx, cfg)
	}
	return nil
}

func seedInitial(cfg Config) error {
	source := cfg.Seeds
	if source == nil {
		source = trivialSeed
	}
	graphs, err := source.InitialMultiple(cfg.Attrs)
	if err != nil || len(graphs) == 0 {
		cfg.Log.Errorf("seed source failed (%v), falling back to a trivial graph", err)
		graphs, _ = trivialSeed.InitialMultiple(cfg.Attrs)
	}

	records := make([]corpus.Record, 0, len(graphs))
	for _, g := range graphs {
		records = append(records, corpus.Record{Timestamp: 0, Graph: g})
	}
	return cfg.Scheduler.Add(records...)
}

// runIteration performs one PICK->MUTATE->TEST->FEEDBACK->REPORT cycle. Any
// error from Sample or Test is recoverable (spec.md §7 kind 1): log it and
// move on without recording a discrepancy.
func runIteration(ctx context.Context, cfg Config) {
	now := cfg.Clock().Seconds()

	g, err := cfg.Scheduler.Sample()
	if err != nil {
		cfg.Log.Logf(1, "sample failed (%v), regenerating a trivial seed", err)
		seeds, _ := trivialSeed.InitialMultiple(cfg.Attrs)
		g = seeds[0]
	}

	mutated := mutator.Mutate(cfg.Rand, g)

	iterCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	result, err := cfg.Tester.Test(iterCtx, mutated, now)
	cancel()
	if err != nil {
		cfg.Log.Logf(1, "tester error (%v), treated as no discrepancy", err)
		result = tester.Result{}
	}
	if iterCtx.Err() != nil {
		cfg.Log.Logf(2, "tester timed out after %v", cfg.Timeout)
	}

	interesting := cfg.Evaluator.Evaluate(feedback.Input{
		HasDiscrepancy: len(result.Discrepancies) > 0,
		Hits:           result.Coverage,
	})
	if interesting {
		if err := cfg.Scheduler.Add(corpus.Record{Timestamp: now, Graph: mutated}); err != nil {
			cfg.Log.Errorf("appending to corpus: %v", err)
		}
	}

	for _, d := range result.Discrepancies {
		if err := cfg.Reporter.Observe(d.Tag, d.Graph, now); err != nil {
			cfg.Log.Errorf("persisting discrepancy %q: %v", d.Tag, err)
		}
	}
}
