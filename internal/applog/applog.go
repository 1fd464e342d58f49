// Copyright 2026 graphfuzz-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2 LICENSE that can be
// found in the LICENSE file.

// Package applog is a small verbosity-leveled logger in the shape of
// syzkaller's pkg/log: Logf(level, format, args...) gated by a configurable
// threshold, plus Truncate for bounding saved log sizes. Unlike the
// teacher's single global sink, a Logger here is a value so the run
// coordinator (§4.5) can give each worker its own file.
package applog

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger writes leveled messages to an underlying io.Writer, filtering out
// anything above Verbosity, the way syzkaller's global -v flag does.
type Logger struct {
	mu        sync.Mutex
	out       *log.Logger
	Verbosity int
}

// New wraps w with a standard timestamp prefix.
func New(w io.Writer, verbosity int) *Logger {
	return &Logger{out: log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds), Verbosity: verbosity}
}

// NewFile opens (creating/truncating) path and returns a Logger backed by
// it, for the run coordinator's "distinct log file per worker" requirement.
func NewFile(path string, verbosity int) (*Logger, io.Closer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("applog: create %s: %w", path, err)
	}
	return New(f, verbosity), f, nil
}

// Logf emits a message if level <= Verbosity.
func (l *Logger) Logf(level int, format string, args ...interface{}) {
	if l == nil || level > l.Verbosity {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Printf(format, args...)
}

// Errorf always emits, prefixed as an error -- used for conditions the spec
// classifies as recoverable (§7): worth recording, not worth aborting on.
func (l *Logger) Errorf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Printf("ERROR: "+format, args...)
}

// Truncate leaves up to begin bytes at the start of data and up to end
// bytes at the end, replacing the middle with a marker. Used to bound
// saved discrepancy/log artifacts without dropping them entirely.
func Truncate(data []byte, begin, end int) []byte {
	if begin+end >= len(data) {
		return data
	}
	var b bytes.Buffer
	b.Write(data[:begin])
	if begin > 0 {
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "<<cut %d bytes out>>", len(data)-begin-end)
	if end > 0 {
		b.WriteString("\n\n")
	}
	b.Write(data[len(data)-end:])
	return b.Bytes()
}
