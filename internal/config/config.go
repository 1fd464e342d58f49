// Copyright 2026 graphfuzz-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2 LICENSE that can be
// found in the LICENSE file.

// Package config assembles and validates the typed run configuration the
// CLI layer derives from flags (spec.md §6). There is no file-based config
// in spec.md, so unlike the teacher's pkg/mgrconfig this is a plain struct
// with a Validate method, not a JSON-loading layer.
package config

import (
	"fmt"

	"github.com/graphfuzz/graphfuzz-go/internal/feedback"
	"github.com/graphfuzz/graphfuzz-go/internal/ferrors"
)

// FuzzerNames is the fixed, ordered choice list spec.md §6 specifies for
// the positional fuzzer-name argument.
var FuzzerNames = []string{
	"AdamicAdar", "BCC", "HarmonicCentrality", "JaccardSimilarity",
	"MAXFV", "MaxMatching", "MST", "SCC", "STPL",
}

// Output selects where the reporter's human-readable lines go.
type Output string

const (
	OutputFile    Output = "file"
	OutputConsole Output = "console"
)

// SchedulerKind selects the corpus backend.
type SchedulerKind string

const (
	SchedulerMem  SchedulerKind = "mem"
	SchedulerDisk SchedulerKind = "disk"
)

// Run is one single-instance launcher's fully-validated configuration.
type Run struct {
	FuzzerName        string
	NumIterations     int
	UseMultipleGraphs bool
	FeedbackCheckType feedback.Mode
	Output            Output
	Scheduler         SchedulerKind
	Folder            string
	Timeout           float64
}

// Defaults matches spec.md §6's documented flag defaults.
func Defaults(fuzzerName string) Run {
	return Run{
		FuzzerName:        fuzzerName,
		NumIterations:     60,
		UseMultipleGraphs: false,
		FeedbackCheckType: feedback.ModeRegular,
		Output:            OutputConsole,
		Scheduler:         SchedulerMem,
		Timeout:           20,
	}
}

// Validate reports a Setup-kind error (spec.md §7 kind 2) for anything the
// CLI layer cannot recover from: an unknown fuzzer name, feedback mode,
// scheduler kind or output, a disk scheduler missing its --folder, or a
// non-positive iteration count or timeout.
func (r Run) Validate() error {
	if !contains(FuzzerNames, r.FuzzerName) {
		return ferrors.Wrap(ferrors.Setup, fmt.Errorf("unknown fuzzer %q", r.FuzzerName))
	}
	if _, ok := feedback.ParseMode(string(r.FeedbackCheckType)); !ok {
		return ferrors.Wrap(ferrors.Setup, fmt.Errorf("unknown feedback-check-type %q", r.FeedbackCheckType))
	}
	switch r.Scheduler {
	case SchedulerMem:
	case SchedulerDisk:
		if r.Folder == "" {
			return ferrors.Wrap(ferrors.Setup, fmt.Errorf("--folder is required when --scheduler=disk"))
		}
	default:
		return ferrors.Wrap(ferrors.Setup, fmt.Errorf("unknown scheduler %q", r.Scheduler))
	}
	switch r.Output {
	case OutputFile, OutputConsole:
	default:
		return ferrors.Wrap(ferrors.Setup, fmt.Errorf("unknown output %q", r.Output))
	}
	if r.NumIterations <= 0 {
		return ferrors.Wrap(ferrors.Setup, fmt.Errorf("--num-iterations must be positive, got %d", r.NumIterations))
	}
	if r.Timeout <= 0 {
		return ferrors.Wrap(ferrors.Setup, fmt.Errorf("--timeout must be positive, got %v", r.Timeout))
	}
	return nil
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// Parallel is one parallel-launcher worker group: a fuzzer name, its own
// output folder, and how many workers K to run against it.
type Parallel struct {
	FuzzerName   string
	OutputFolder string
	Workers      int
}
