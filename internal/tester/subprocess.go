package tester

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"os/exec"

	"github.com/graphfuzz/graphfuzz-go/internal/graph"
)

// subprocessRequest/subprocessResponse are the gob-encoded messages written
// to and read from the child's stdin/stdout. The wire format is
// intentionally the simplest thing that could work (spec §9: "the
// persisted/wire formats are opaque... implementations may choose any
// stable binary format") -- unlike the teacher's flatbuffers-based
// executor protocol, which needs schema-generated code we cannot produce
// without running flatc.
type subprocessRequest struct {
	Graph     *graph.Graph
	Timestamp float64
}

type subprocessResponse struct {
	Discrepancies []Discrepancy
}

// SubprocessTester runs an external binary once per Test call and
// communicates over its stdin/stdout, so a tester that hangs or spins can
// be killed outright instead of merely abandoned in-process. This mirrors
// syz-fuzzer/proc.go's child-process execution model, without its
// shared-memory transport: our payloads (one graph) are small enough that
// a gob-encoded pipe is simplest and sufficient.
type SubprocessTester struct {
	// Path is the tester binary to invoke; Args are passed through as-is.
	Path string
	Args []string
}

// Test starts Path as a child process, writes the request, waits for a
// response, and kills the child if ctx is done first -- the "kill-on-expiry"
// policy spec §5 and §9 call for.
func (s *SubprocessTester) Test(ctx context.Context, g *graph.Graph, timestamp float64) (Result, error) {
	cmd := exec.CommandContext(ctx, s.Path, s.Args...)
	cmd.Cancel = func() error { return cmd.Process.Kill() }

	var in bytes.Buffer
	if err := gob.NewEncoder(&in).Encode(subprocessRequest{Graph: g, Timestamp: timestamp}); err != nil {
		return Result{}, fmt.Errorf("tester: encode request: %w", err)
	}
	cmd.Stdin = &in

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			// Timed out: spec §4.4 step (c) -- "no discrepancy, not
			// interesting", not an error the loop should abort on.
			return Result{}, nil
		}
		return Result{}, fmt.Errorf("tester: run %s: %w", s.Path, err)
	}

	var resp subprocessResponse
	if err := gob.NewDecoder(&out).Decode(&resp); err != nil {
		return Result{}, fmt.Errorf("tester: decode response: %w", err)
	}
	return Result{Discrepancies: resp.Discrepancies}, nil
}
