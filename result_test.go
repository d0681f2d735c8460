// Copyright 2024 The tcase Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package tcase

import (
	"bytes"
	"path/filepath"
	"strings"
	gotesting "testing"

	"github.com/gotestcase/tcase/testutil"
)

func TestOutcomeString(t *gotesting.T) {
	for _, c := range []struct {
		outcome Outcome
		want    string
	}{
		{Passed, "passed"},
		{Failed, "failed"},
		{Skipped, "skipped"},
	} {
		if got := c.outcome.String(); got != c.want {
			t.Errorf("Outcome(%d).String() = %q; want %q", int(c.outcome), got, c.want)
		}
	}
}

func TestWriteRecord(t *gotesting.T) {
	for _, c := range []struct {
		name    string
		outcome Outcome
		reason  string
		want    string
	}{
		{"passed", Passed, "", "passed\n"},
		{"failed", Failed, "X", "failed: X\n"},
		{"skipped", Skipped, "busy cluster", "skipped: busy cluster\n"},
	} {
		t.Run(c.name, func(t *gotesting.T) {
			var buf bytes.Buffer
			if err := writeRecord(&buf, c.outcome, c.reason); err != nil {
				t.Fatalf("writeRecord failed: %v", err)
			}
			if buf.String() != c.want {
				t.Errorf("Record %q; want %q", buf.String(), c.want)
			}
		})
	}
}

func TestCreateResultRoundTrip(t *gotesting.T) {
	res := filepath.Join(testutil.TempDir(t), "result")
	tr := newTestRoot(mustNew(t, "roundtrip", nil), res)

	tr.createResult(Failed, "X")

	if got := readResult(t, res); got != "failed: X\n" {
		t.Errorf("Result record %q; want %q", got, "failed: X\n")
	}
}

func TestCreateResultTruncatesExisting(t *gotesting.T) {
	dir := testutil.TempDir(t)
	if err := testutil.WriteFiles(dir, map[string]string{"result": "stale content\n"}); err != nil {
		t.Fatal(err)
	}
	res := filepath.Join(dir, "result")
	tr := newTestRoot(mustNew(t, "truncate", nil), res)

	tr.createResult(Passed, "")

	if got := readResult(t, res); got != "passed\n" {
		t.Errorf("Result record %q; want %q", got, "passed\n")
	}
}

func TestCreateResultStreamSentinels(t *gotesting.T) {
	tr := newTestRoot(mustNew(t, "stdout", nil), ResultStdout)
	tr.createResult(Skipped, "to stdout")
	if got := tr.stdout.String(); got != "skipped: to stdout\n" {
		t.Errorf("Stdout record %q; want %q", got, "skipped: to stdout\n")
	}

	tr = newTestRoot(mustNew(t, "stderr", nil), ResultStderr)
	tr.createResult(Failed, "to stderr")
	if got := tr.stderr.String(); got != "failed: to stderr\n" {
		t.Errorf("Stderr record %q; want %q", got, "failed: to stderr\n")
	}
}

func TestCreateResultOpenFailureIsFatal(t *gotesting.T) {
	res := filepath.Join(testutil.TempDir(t), "missing", "subdir", "result")
	tr := newTestRoot(mustNew(t, "badpath", nil), res)

	done := make(chan struct{})
	go func() {
		defer close(done)
		tr.createResult(Passed, "")
	}()
	<-done

	if !tr.exited || tr.status != statusFatal {
		t.Errorf("Terminated with exited=%v status=%d; want true, %d", tr.exited, tr.status, statusFatal)
	}
	if out := tr.stderr.String(); !strings.Contains(out, "FATAL ERROR: ") || !strings.Contains(out, "cannot create results file") {
		t.Errorf("Diagnostic output %q; want a fatal error about the results file", out)
	}
}
