// Copyright 2026 graphfuzz-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2 LICENSE that can be
// found in the LICENSE file.

// Command graphfuzz is the single-instance launcher of spec.md §6: a
// positional fuzzer name plus flags selecting the feedback mode, corpus
// backend, and per-iteration timeout, driving one worker's fuzz loop to
// completion.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/graphfuzz/graphfuzz-go/internal/applog"
	"github.com/graphfuzz/graphfuzz-go/internal/config"
	"github.com/graphfuzz/graphfuzz-go/internal/corpus"
	"github.com/graphfuzz/graphfuzz-go/internal/feedback"
	"github.com/graphfuzz/graphfuzz-go/internal/ferrors"
	"github.com/graphfuzz/graphfuzz-go/internal/fuzzloop"
	"github.com/graphfuzz/graphfuzz-go/internal/graph"
	"github.com/graphfuzz/graphfuzz-go/internal/reporter"
	"github.com/graphfuzz/graphfuzz-go/internal/seedsource"
	"github.com/graphfuzz/graphfuzz-go/internal/tester"
	"github.com/graphfuzz/graphfuzz-go/internal/tester/reference"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("graphfuzz", flag.ContinueOnError)
	numIterations := fs.Int("num-iterations", 60, "iteration budget N")
	useMultipleGraphs := fs.Bool("use-multiple-graphs", false, "seed from multiple attribute-matching graphs instead of one trivial graph")
	feedbackCheckType := fs.String("feedback-check-type", "regular", "one of regular,coverage,combination,branch,none")
	output := fs.String("output", "console", "one of file,console")
	scheduler := fs.String("scheduler", "mem", "one of mem,disk")
	folder := fs.String("folder", "", "corpus directory (disk scheduler only)")
	timeout := fs.Float64("timeout", 20, "per-iteration timeout in seconds")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: graphfuzz [flags] fuzzer-name\nfuzzer-name one of: %s\n",
			strings.Join(config.FuzzerNames, ", "))
		return 2
	}

	cfg := config.Run{
		FuzzerName:        fs.Arg(0),
		NumIterations:     *numIterations,
		UseMultipleGraphs: *useMultipleGraphs,
		FeedbackCheckType: feedback.Mode(*feedbackCheckType),
		Output:            config.Output(*output),
		Scheduler:         config.SchedulerKind(*scheduler),
		Folder:            *folder,
		Timeout:           *timeout,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log := newLogger(cfg.Output)

	newTester, err := testerFor(cfg.FuzzerName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	sched, err := schedulerFor(cfg, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer sched.Close()

	rep, err := reporter.New(reportDir(cfg), cfg.FuzzerName, uuid.New().String()[:8], log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer rep.Close()

	var seeds seedsource.SeedSource = seedsource.Trivial{}
	if cfg.UseMultipleGraphs {
		seeds = seedsource.NewAttr(rand.New(rand.NewSource(time.Now().UnixNano())))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Timeout*float64(cfg.NumIterations))*time.Second)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	loopCfg := fuzzloop.Config{
		Seeds:         seeds,
		Tester:        newTester(),
		Scheduler:     sched,
		Evaluator:     feedback.New(cfg.FeedbackCheckType, feedback.NewCoverageSet()),
		Reporter:      rep,
		Attrs:         attrsFor(cfg.FuzzerName),
		NumIterations: cfg.NumIterations,
		Timeout:       time.Duration(cfg.Timeout * float64(time.Second)),
		Rand:          rand.New(rand.NewSource(time.Now().UnixNano())),
		Log:           log,
		Clock:         corpus.RealClock(time.Now()),
	}

	if err := fuzzloop.Run(ctx, loopCfg); err != nil {
		if ferrors.Is(err, ferrors.Fatal) {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		log.Errorf("run ended with error: %v", err)
	}
	return 0
}

func newLogger(out config.Output) *applog.Logger {
	if out == config.OutputFile {
		l, _, err := applog.NewFile("graphfuzz.log", 3)
		if err == nil {
			return l
		}
	}
	return applog.New(os.Stderr, 3)
}

func reportDir(cfg config.Run) string {
	if cfg.Scheduler == config.SchedulerDisk {
		return cfg.Folder
	}
	return "."
}

func schedulerFor(cfg config.Run, rnd *rand.Rand) (corpus.Scheduler, error) {
	switch cfg.Scheduler {
	case config.SchedulerDisk:
		return corpus.NewDisk(rnd, cfg.Folder, cfg.FuzzerName)
	default:
		return corpus.NewMem(rnd), nil
	}
}

// testerFor returns the reference Tester wired to a fuzzer name. Only SCC
// and STPL ship worked examples (spec.md §6 expansion); the rest of the
// documented fuzzer names are accepted by the CLI (spec.md §6's name list)
// but require a real Tester to be supplied by an embedder of this module.
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
