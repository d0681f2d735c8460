// Copyright 2024 The tcase Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package tcase

import "context"

// Run executes the test case body and reports the outcome to resfile.
//
// resfile is either a filesystem path to create or truncate, or one of the
// ResultStdout/ResultStderr sentinels naming a process output stream.
//
// If the body returns without invoking a terminal primitive, the non-fatal
// check failures recorded so far decide the verdict: none means passed, N
// of them mean failed with a reason carrying the count. Run therefore never
// returns in production; every path writes exactly one result record and
// ends the process. The error return exists for the harness contract.
func Run(ctx context.Context, tc *TestCase, resfile string) error {
	return run(ctx, tc, newRunRoot(tc, resfile))
}

// run drives a body with an explicit root, so tests can supply fake
// collaborators.
func run(ctx context.Context, tc *TestCase, r *runRoot) error {
	s := r.newState()

	if tc.body != nil {
		tc.body(ctx, s)
	}

	if r.failCount == 0 {
		s.Pass()
	}
	s.Fatalf("%d checks failed; see output for more details", r.failCount)
	return nil // not reached
}
