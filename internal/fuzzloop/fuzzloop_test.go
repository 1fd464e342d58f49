package fuzzloop_test

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphfuzz/graphfuzz-go/internal/applog"
	"github.com/graphfuzz/graphfuzz-go/internal/corpus"
	"github.com/graphfuzz/graphfuzz-go/internal/feedback"
	"github.com/graphfuzz/graphfuzz-go/internal/fuzzloop"
	"github.com/graphfuzz/graphfuzz-go/internal/graph"
	"github.com/graphfuzz/graphfuzz-go/internal/reporter"
	"github.com/graphfuzz/graphfuzz-go/internal/tester"
)

// alwaysAgreeTester reports no discrepancies, ever.
type alwaysAgreeTester struct{}

func (alwaysAgreeTester) Test(context.Context, *graph.Graph, float64) (tester.Result, error) {
	return tester.Result{}, nil
}

// hangingTester blocks until its context is cancelled, modeling spec.md §8's
// "a tester that sleeps forever" boundary case.
type hangingTester struct{}

func (hangingTester) Test(ctx context.Context, _ *graph.Graph, _ float64) (tester.Result, error) {
	<-ctx.Done()
	return tester.Result{}, ctx.Err()
}

// failingSeedSource always errors, forcing the trivial-graph fallback.
type failingSeedSource struct{}

func (failingSeedSource) InitialMultiple(graph.Attrs) ([]*graph.Graph, error) {
	return nil, errors.New("generator unavailable")
}

func newTestConfig(t *testing.T, tst tester.Tester, numIterations int, timeout time.Duration) fuzzloop.Config {
	t.Helper()
	dir := t.TempDir()
	log := applog.New(&bytes.Buffer{}, 9)
	rep, err := reporter.New(dir, "test", "00000000", log)
	require.NoError(t, err)
	t.Cleanup(func() { rep.Close() })

	return fuzzloop.Config{
		Tester:        tst,
		Scheduler:     corpus.NewMem(rand.New(rand.NewSource(1))),
		Evaluator:     feedback.New(feedback.ModeNone, feedback.NewCoverageSet()),
		Reporter:      rep,
		Attrs:         graph.Attrs{Directed: true},
		NumIterations: numIterations,
		Timeout:       timeout,
		Rand:          rand.New(rand.NewSource(2)),
		Log:           log,
		Clock:         func() time.Duration { return 0 },
	}
}

func TestRunMakesProgressWithEmptyCorpusAndFailingSeedSource(t *testing.T) {
	cfg := newTestConfig(t, alwaysAgreeTester{}, 5, time.Second)
	cfg.Seeds = failingSeedSource{}

	require.NoError(t, fuzzloop.Run(context.Background(), cfg))

	records, err := cfg.Scheduler.Iterate()
	require.NoError(t, err)
	assert.NotEmpty(t, records, "the trivial-seed fallback must let the loop make progress")
}

func TestRunAppendsEveryIterationInNoneMode(t *testing.T) {
	cfg := newTestConfig(t, alwaysAgreeTester{}, 10, time.Second)
	require.NoError(t, fuzzloop.Run(context.Background(), cfg))

	records, err := cfg.Scheduler.Iterate()
	require.NoError(t, err)
	// One trivial seed plus one append per iteration.
	assert.Equal(t, 11, len(records))
}

func TestRunSurvivesAHangingTesterWithinTimeout(t *testing.T) {
	cfg := newTestConfig(t, hangingTester{}, 10, 50*time.Millisecond)

	start := time.Now()
	require.NoError(t, fuzzloop.Run(context.Background(), cfg))
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 15*time.Second, "10 iterations at a 50ms timeout must finish well under 15s")
}

func TestRunStopsOnContextCancellation(t *testing.T) {
	cfg := newTestConfig(t, alwaysAgreeTester{}, 1000, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, fuzzloop.Run(ctx, cfg))

	records, err := cfg.Scheduler.Iterate()
	require.NoError(t, err)
	// Only the initial seed should have been added; no iteration ran.
	assert.Equal(t, 1, len(records))
}
