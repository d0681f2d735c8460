// Copyright 2024 The tcase Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package stack captures and formats stack traces for the errors package.
// It is not meant to be used directly; construct errors with the errors
// package instead.
package stack

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	maxFrames = 8 // maximum number of stack frames to record

	truncated = "\t..." // marker line appended when the trace is cut short
)

// Trace holds a snapshot of program counters.
type Trace []uintptr

// New captures the stack of the calling goroutine. skip is the number of
// frames to leave out; skip=0 records the caller of New as the innermost
// frame.
func New(skip int) Trace {
	pc := make([]uintptr, maxFrames+1)
	return Trace(pc[:runtime.Callers(skip+2, pc)])
}

// String formats the trace as human-friendly text, one frame per line.
func (t Trace) String() string {
	var lines []string

	// runtime.CallersFrames must be used to translate the PCs; indexing
	// into the slice directly miscounts inlined frames.
	frames := runtime.CallersFrames(t)
	for {
		f, more := frames.Next()
		lines = append(lines, fmt.Sprintf("\tat %s (%s:%d)", f.Function, filepath.Base(f.File), f.Line))
		if !more {
			break
		}
		if len(lines) >= maxFrames {
			lines = append(lines, truncated)
			break
		}
	}
	return strings.Join(lines, "\n")
}
