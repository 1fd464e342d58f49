// Copyright 2026 graphfuzz-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2 LICENSE that can be
// found in the LICENSE file.

// Package coordinator runs K worker fuzz loops sharing one coverage set and
// a common run-start origin, each with its own log file, interrupted
// cooperatively at a global deadline (spec.md §4.5). Workers are goroutines
// coordinated with golang.org/x/sync/errgroup rather than OS processes (see
// DESIGN.md for why), grounded on the teacher's own job/goroutine fan-out
// in pkg/fuzzer/fuzzer.go's startJob/runningJobs bookkeeping.
package coordinator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/graphfuzz/graphfuzz-go/internal/applog"
	"github.com/graphfuzz/graphfuzz-go/internal/corpus"
	"github.com/graphfuzz/graphfuzz-go/internal/feedback"
	"github.com/graphfuzz/graphfuzz-go/internal/ferrors"
	"github.com/graphfuzz/graphfuzz-go/internal/fuzzloop"
	"github.com/graphfuzz/graphfuzz-go/internal/graph"
	"github.com/graphfuzz/graphfuzz-go/internal/reporter"
	"github.com/graphfuzz/graphfuzz-go/internal/seedsource"
	"github.com/graphfuzz/graphfuzz-go/internal/tester"
)

// WorkerSpec describes one of the K workers the coordinator launches: its
// own scheduler and log destination, sharing everything else with its
// siblings.
type WorkerSpec struct {
	LogPath string
}

// Params bundles what every worker in one run needs, mirroring
// fuzzloop.Config but factored so the coordinator can inject the pieces
// that must be shared (CoverageSet, run-start Clock) versus per-worker
// (Scheduler, Log).
type Params struct {
	Seeds         seedsource.SeedSource
	NewTester     func() tester.Tester
	NewScheduler  func(workerIndex int) (corpus.Scheduler, error)
	Attrs         graph.Attrs
	FeedbackMode  feedback.Mode
	NumIterations int
	PerIterTimeout time.Duration
	LogDir        string
	Algorithm     string
	RunID         string
}

// Run launches len(workers) goroutines, each running its own fuzzloop.Run,
// sharing one feedback.CoverageSet and one wall-clock origin, and returns
// once every worker has finished or ctx's deadline cancels them all
// (spec.md §4.5's cooperative-interrupt-at-deadline).
//
// Per spec.md §7, a Setup-kind failure in one worker must abort only that
// worker while its siblings keep running; only a Fatal-kind failure
// terminates the whole run. errgroup.WithContext's built-in behavior --
// cancelling every goroutine's context on the first non-nil return, of any
// kind -- is therefore wrong here, so cancellation is driven explicitly:
// workers share a context this function cancels itself, and only does so
// once a worker's error classifies as Fatal.
func Run(ctx context.Context, workers []WorkerSpec, p Params) error {
	start := time.Now()
	clock := corpus.RealClock(start)
	coverage := feedback.NewCoverageSet()

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	for i, spec := range workers {
		i, spec := i, spec
		g.Go(func() error {
			err := runWorker(workerCtx, i, spec, p, clock, coverage, start)
			if err != nil && ferrors.Is(err, ferrors.Fatal) {
				cancel()
			}
			return err
		})
	}
	return g.Wait()
}

func runWorker(
	ctx context.Context,
	index int,
	spec WorkerSpec,
	p Params,
	clock corpus.Clock,
	coverage *feedback.CoverageSet,
	start time.Time,
) error {
	logger, closer, err := applog.NewFile(spec.LogPath, 3)
	if err != nil {
		return ferrors.Wrap(ferrors.Setup, fmt.Errorf("coordinator: worker %d: %w", index, err))
	}
	defer closer.Close()

	scheduler, err := p.NewScheduler(index)
	if err != nil {
		return ferrors.Wrap(ferrors.Setup, fmt.Errorf("coordinator: worker %d: create scheduler: %w", index, err))
	}
	defer scheduler.Close()

	rep, err := reporter.New(p.LogDir, p.Algorithm, fmt.Sprintf("%s-%d", p.RunID, index), logger)
	if err != nil {
		return ferrors.Wrap(ferrors.Setup, fmt.Errorf("coordinator: worker %d: create reporter: %w", index, err))
	}
	defer rep.Close()

	cfg := fuzzloop.Config{
		Seeds:         p.Seeds,
		Tester:        p.NewTester(),
		Scheduler:     scheduler,
		Evaluator:     feedback.New(p.FeedbackMode, coverage),
		Reporter:      rep,
		Attrs:         p.Attrs,
		NumIterations: p.NumIterations,
		Timeout:       p.PerIterTimeout,
		Rand:          rand.New(rand.NewSource(int64(index) + start.UnixNano())),
		Log:           logger,
		Clock:         clock,
	}
	logger.Logf(0, "worker %d starting, %d iterations, timeout %v", index, p.NumIterations, p.PerIterTimeout)
	return fuzzloop.Run(ctx, cfg)
}
