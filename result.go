// Copyright 2024 The tcase Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package tcase

import (
	"fmt"
	"io"
	"os"

	"github.com/gotestcase/tcase/errors"
)

// Outcome is the terminal verdict of a test case run.
type Outcome int

// The three outcomes a result record can carry.
const (
	Passed Outcome = iota
	Failed
	Skipped
)

// String returns the exact word persisted to result records.
func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	}
	panic(fmt.Sprintf("unknown outcome %d", int(o)))
}

// Sentinel result destinations naming the process output streams instead of
// real files. Writers must match these exact strings.
const (
	ResultStdout = "/dev/stdout"
	ResultStderr = "/dev/stderr"
)

// writeRecord serializes a single result record to w.
//
// The record is one newline-terminated line: the outcome word alone for
// Passed, or "<word>: <reason>" for Failed and Skipped. This is the only
// format the consuming harness understands, byte for byte.
func writeRecord(w io.Writer, outcome Outcome, reason string) error {
	var err error
	if reason == "" {
		_, err = fmt.Fprintf(w, "%s\n", outcome)
	} else {
		_, err = fmt.Fprintf(w, "%s: %s\n", outcome, reason)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to write results file; result %s, reason %q", outcome, reason)
	}
	return nil
}

// createResult writes the result record for this run's destination.
//
// Passed must come with an empty reason and Failed/Skipped with a non-empty
// one. Any I/O failure is fatal: a framework that cannot report its own
// result must not pretend to have succeeded.
func (r *runRoot) createResult(outcome Outcome, reason string) {
	if (outcome == Passed) != (reason == "") {
		panic(fmt.Sprintf("createResult: outcome %s with reason %q", outcome, reason))
	}

	var err error
	switch r.resfile {
	case ResultStdout:
		err = writeRecord(r.stdout, outcome, reason)
	case ResultStderr:
		err = writeRecord(r.stderr, outcome, reason)
	default:
		var f *os.File
		if f, err = os.Create(r.resfile); err != nil {
			err = errors.Wrapf(err, "cannot create results file %q", r.resfile)
			break
		}
		err = writeRecord(f, outcome, reason)
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "failed to close results file %q", r.resfile)
		}
	}

	if err != nil {
		r.fatalf("%v", err)
	}
}
