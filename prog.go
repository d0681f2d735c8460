// Copyright 2024 The tcase Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package tcase

import (
	"path/filepath"
	"strings"
)

// RequireProgram verifies that the named external program is runnable and
// skips or fails the test case when it is not.
//
// An absolute prog is probed directly for executable access; if the probe
// fails the test case is skipped, because a missing absolute path usually
// points at an optional, environment-specific tool. A bare prog is searched
// for in each directory named in the PATH environment variable, in order,
// first hit wins; if no directory has it the test case fails, because that
// indicates a defect in the test environment setup that should be flagged.
// A relative prog with a directory component has no defined search
// semantics and is a fatal configuration error, never a test outcome.
func (s *State) RequireProgram(prog string) {
	r := s.root

	if filepath.IsAbs(prog) {
		if r.eaccess(prog) != nil {
			r.terminate(Skipped,
				formatReason("", 0, "The required program %s could not be found", prog),
				statusSuccess)
		}
		return
	}

	if filepath.Dir(prog) != "." {
		r.fatalf("Relative paths are not allowed when searching for a program (%s)", prog)
	}

	path, _ := r.lookupEnv("PATH")
	for _, dir := range strings.Split(path, ":") {
		if dir == "" {
			continue
		}
		// Probe errors are ignored: an unreadable directory just means
		// the search moves on to the next one.
		if r.eaccess(filepath.Join(dir, prog)) == nil {
			return
		}
	}

	r.terminate(Failed,
		formatReason("", 0, "The required program %s could not be found in the PATH", prog),
		statusFailure)
}
