// Copyright 2026 graphfuzz-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2 LICENSE that can be
// found in the LICENSE file.

// Command graphfuzz-parallel is the parallel launcher of spec.md §6:
// repeated `NAME OUTPUT_FOLDER K` triples plus the shared flags, run under
// one coordinator-wide deadline.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/graphfuzz/graphfuzz-go/internal/config"
	"github.com/graphfuzz/graphfuzz-go/internal/coordinator"
	"github.com/graphfuzz/graphfuzz-go/internal/corpus"
	"github.com/graphfuzz/graphfuzz-go/internal/feedback"
	"github.com/graphfuzz/graphfuzz-go/internal/ferrors"
	"github.com/graphfuzz/graphfuzz-go/internal/graph"
	"github.com/graphfuzz/graphfuzz-go/internal/seedsource"
	"github.com/graphfuzz/graphfuzz-go/internal/tester"
	"github.com/graphfuzz/graphfuzz-go/internal/tester/reference"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("graphfuzz-parallel", flag.ContinueOnError)
	numIterations := fs.Int("num-iterations", 60, "iteration budget N per worker")
	useMultipleGraphs := fs.Bool("use-multiple-graphs", false, "seed from multiple attribute-matching graphs instead of one trivial graph")
	feedbackCheckType := fs.String("feedback-check-type", "regular", "one of regular,coverage,combination,branch,none")
	scheduler := fs.String("scheduler", "mem", "one of mem,disk")
	perIterTimeout := fs.Float64("timeout", 20, "per-iteration timeout in seconds")
	globalTimeout := fs.Float64("global-timeout", 0, "coordinator-wide deadline in seconds; 0 means none")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	groups, err := parseGroups(fs.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	mode := feedback.Mode(*feedbackCheckType)
	if _, ok := feedback.ParseMode(string(mode)); !ok {
		fmt.Fprintf(os.Stderr, "unknown feedback-check-type %q\n", mode)
		return 1
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if *globalTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, time.Duration(*globalTimeout*float64(time.Second)))
		defer cancel()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	runID := uuid.New().String()[:8]
	exit := 0
	for _, grp := range groups {
		if err := runGroup(ctx, grp, mode, *scheduler, *numIterations, *useMultipleGraphs, *perIterTimeout, runID); err != nil {
			fmt.Fprintln(os.Stderr, err)
			if ferrors.Is(err, ferrors.Fatal) {
				return 1
			}
			exit = 1
		}
	}
	return exit
}

type group struct {
	name         string
	outputFolder string
	workers      int
}

func parseGroups(args []string) ([]group, error) {
	if len(args)%3 != 0 || len(args) == 0 {
		return nil, fmt.Errorf("expected one or more NAME OUTPUT_FOLDER K triples, got %d positional arguments", len(args))
	}
	var groups []group
	for i := 0; i < len(args); i += 3 {
		k, err := strconv.Atoi(args[i+2])
		if err != nil || k <= 0 {
			return nil, fmt.Errorf("invalid worker count %q for %s", args[i+2], args[i])
		}
		groups = append(groups, group{name: args[i], outputFolder: args[i+1], workers: k})
	}
	return groups, nil
}

func runGroup(ctx context.Context, grp group, mode feedback.Mode, schedulerKind string, numIterations int, useMultipleGraphs bool, perIterTimeout float64, runID string) error {
	cfg := config.Run{
		FuzzerName:        grp.name,
		NumIterations:     numIterations,
		UseMultipleGraphs: useMultipleGraphs,
		FeedbackCheckType: mode,
		Scheduler:         config.SchedulerKind(schedulerKind),
		Folder:            grp.outputFolder,
		Timeout:           perIterTimeout,
		Output:            config.OutputFile,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	newTester, err := testerFor(grp.name)
	if err != nil {
		return err
	}

	var seeds seedsource.SeedSource = seedsource.Trivial{}
	if useMultipleGraphs {
		seeds = seedsource.NewAttr(rand.New(rand.NewSource(time.Now().UnixNano())))
	}

	if err := os.MkdirAll(grp.outputFolder, 0o755); err != nil {
		return ferrors.Wrap(ferrors.Setup, fmt.Errorf("create output folder %q: %w", grp.outputFolder, err))
	}

	workers := make([]coordinator.WorkerSpec, grp.workers)
	for i := range workers {
		workers[i] = coordinator.WorkerSpec{LogPath: filepath.Join(grp.outputFolder, fmt.Sprintf("worker-%d.log", i))}
	}

	params := coordinator.Params{
		Seeds:          seeds,
		NewTester:      newTester,
		Attrs:          attrsFor(grp.name),
		FeedbackMode:   mode,
		NumIterations:  numIterations,
		PerIterTimeout: time.Duration(perIterTimeout * float64(time.Second)),
		LogDir:         grp.outputFolder,
		Algorithm:      grp.name,
		RunID:          runID,
		NewScheduler: func(workerIndex int) (corpus.Scheduler, error) {
			rnd := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerIndex)))
			if cfg.Scheduler == config.SchedulerDisk {
				workerDir := filepath.Join(grp.outputFolder, fmt.Sprintf("worker-%d", workerIndex))
				return corpus.NewDisk(rnd, workerDir, grp.name)
			}
			return corpus.NewMem(rnd), nil
		},
	}
	return coordinator.Run(ctx, workers, params)
}

func testerFor(name string) (func() tester.Tester, error) {
	switch name {
	case "SCC":
		return func() tester.Tester { return reference.SCC{} }, nil
	case "STPL":
		return func() tester.Tester { return reference.STPL{From: 0, To: 1} }, nil
	default:
		return nil, ferrors.Wrap(ferrors.Setup, fmt.Errorf(
			"no reference Tester is wired for %q; only SCC and STPL have example implementations", name))
	}
}

func attrsFor(name string) graph.Attrs {
	switch name {
	case "STPL":
		return graph.Attrs{Directed: true, Weighted: true, NegativeWeights: true}
	default:
		return graph.Attrs{Directed: true}
	}
}
