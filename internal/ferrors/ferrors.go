// Copyright 2026 graphfuzz-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2 LICENSE that can be
// found in the LICENSE file.

// Package ferrors classifies the three error kinds of spec.md §7:
// recoverable per-iteration errors, setup errors, and fatal errors. The
// teacher never builds a parallel error-kind hierarchy of its own; call
// sites just decide whether to keep going (pkg/fuzzer/retry.go's
// crash-estimator degrading gracefully) or bail (most `main` functions'
// `log.Fatalf`). This package makes that same decision inspectable so the
// fuzz loop and coordinator can act on it uniformly.
package ferrors

import "errors"

// Kind is one of the three error categories spec.md §7 defines.
type Kind int

const (
	// Recoverable errors (test timeout, tester exception, empty corpus on
	// sample, malformed batch file) are logged and treated as "no
	// discrepancy, not interesting"; the loop continues.
	Recoverable Kind = iota
	// Setup errors (unknown fuzzer name, unknown scheduler, uncreatable
	// corpus directory) abort the affected worker; the coordinator
	// continues the others.
	Setup
	// Fatal errors (disk full while writing discrepancies, a worker the
	// coordinator cannot spawn) terminate the whole run.
	Fatal
)

func (k Kind) String() string {
	switch k {
	case Recoverable:
		return "recoverable"
	case Setup:
		return "setup"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// classified wraps an error with its Kind, satisfying errors.Unwrap so
// callers can still match the underlying sentinel with errors.Is.
type classified struct {
	kind Kind
	err  error
}

func (c *classified) Error() string { return c.err.Error() }
func (c *classified) Unwrap() error { return c.err }

// Wrap annotates err with kind. A nil err returns nil.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &classified{kind: kind, err: err}
}

// ClassifyOf returns the Kind err was wrapped with, defaulting to Fatal for
// any error that was never classified -- an unrecognized error is safer to
// treat as run-ending than to silently swallow.
func ClassifyOf(err error) Kind {
	var c *classified
	if errors.As(err, &c) {
		return c.kind
	}
	return Fatal
}

// Is reports whether err was classified (directly or via wrapping) as kind.
func Is(err error, kind Kind) bool {
	return ClassifyOf(err) == kind
}
