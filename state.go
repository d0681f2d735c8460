// Copyright 2024 The tcase Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package tcase

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"code.cloudfoundry.org/clock"
	"golang.org/x/sys/unix"

	"github.com/gotestcase/tcase/internal/logging"
)

// Process exit statuses used by terminal outcome primitives.
//
// A failed test exits with statusFailure; passed and skipped tests exit
// with statusSuccess, since a skip is not a suite-level failure. Fatal
// framework errors use statusFatal to stay distinguishable from an
// ordinary test failure.
const (
	statusSuccess = 0
	statusFailure = 1
	statusFatal   = 2
)

// runRoot is the execution context of a single test case run. It is shared
// by every State handed out during the run and is private to the framework.
//
// The run is strictly single threaded: the body either returns or ends the
// process through a terminal primitive, so no field needs locking.
type runRoot struct {
	tc        *TestCase
	resfile   string // result record destination
	failCount int    // non-fatal check failures recorded so far

	out    *logging.Emitter // diagnostic stream
	stdout io.Writer
	stderr io.Writer

	lookupEnv func(name string) (string, bool)
	eaccess   func(path string) error // executable-access probe
	exit      func(status int)        // must not return
}

// newRunRoot creates a run context wired to the real process environment.
func newRunRoot(tc *TestCase, resfile string) *runRoot {
	clk := clock.NewClock()
	sink := logging.NewWriterSink(os.Stderr)
	return &runRoot{
		tc:        tc,
		resfile:   resfile,
		out:       logging.NewEmitter(logging.NewSinkLogger(logging.LevelInfo, false, sink), clk),
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		lookupEnv: os.LookupEnv,
		eaccess:   func(path string) error { return unix.Access(path, unix.X_OK) },
		exit:      os.Exit,
	}
}

func (r *runRoot) newState() *State {
	return &State{root: r}
}

// terminate writes the one result record of this run and ends the process.
// It never returns.
func (r *runRoot) terminate(outcome Outcome, reason string, status int) {
	r.createResult(outcome, reason)
	r.exit(status)
	panic("unreachable")
}

// failCheck records a non-fatal check failure: the reason is logged to the
// diagnostic stream and the run keeps going.
func (r *runRoot) failCheck(reason string) {
	r.out.Log("*** Check failed: " + reason)
	r.failCount++
}

// fatalf reports an unrecoverable framework error and aborts the process.
// It is reserved for conditions that make the result record itself
// unreliable; returning an error instead would risk a false pass.
func (r *runRoot) fatalf(format string, args ...interface{}) {
	fmt.Fprintf(r.stderr, "FATAL ERROR: %s\n", fmt.Sprintf(format, args...))
	r.exit(statusFatal)
	panic("unreachable")
}

// State holds state relevant to one run of a test case. It is passed to the
// body callback and is the only way to report an outcome.
//
// Parts of its interface are patterned after Go's testing.T type: Error
// records a failure and returns, Fatal and Skip end the test case. Unlike
// testing.T, the terminal methods end the whole process after persisting a
// result record for the driving harness.
type State struct {
	root *runRoot
}

// Ident returns the identifier of the test case being run.
func (s *State) Ident() string { return s.root.tc.Ident() }

// MDVar returns the value of the named metadata variable, which must be
// present.
func (s *State) MDVar(name string) string { return s.root.tc.MDVar(name) }

// HasMDVar reports whether the named metadata variable is defined.
func (s *State) HasMDVar(name string) bool { return s.root.tc.HasMDVar(name) }

// SetMDVar sets a metadata variable to a formatted value.
func (s *State) SetMDVar(name, format string, args ...interface{}) error {
	return s.root.tc.SetMDVar(name, format, args...)
}

// ConfigVar returns the value of the named configuration variable, which
// must be present.
func (s *State) ConfigVar(name string) string { return s.root.tc.ConfigVar(name) }

// HasConfigVar reports whether the named configuration variable is defined.
func (s *State) HasConfigVar(name string) bool { return s.root.tc.HasConfigVar(name) }

// ConfigVarDefault returns the value of the named configuration variable,
// or def when it is not defined.
func (s *State) ConfigVarDefault(name, def string) string {
	return s.root.tc.ConfigVarDefault(name, def)
}

// Log formats its arguments with default formatting and writes them to the
// diagnostic stream.
func (s *State) Log(args ...interface{}) {
	s.root.out.Log(fmt.Sprint(args...))
}

// Logf is similar to Log but formats its arguments using fmt.Sprintf.
func (s *State) Logf(format string, args ...interface{}) {
	s.root.out.Log(fmt.Sprintf(format, args...))
}

// HasError reports whether a non-fatal check failure has been recorded so
// far in this run.
func (s *State) HasError() bool { return s.root.failCount > 0 }

// Pass records a passed outcome and ends the process with a success status.
// It never returns.
func (s *State) Pass() {
	s.root.terminate(Passed, "", statusSuccess)
}

// Fatal formats its arguments with default formatting, records a failed
// outcome with that reason and ends the process with a failure status.
// It never returns. Use it for outcome-defining assertions.
func (s *State) Fatal(args ...interface{}) {
	s.root.terminate(Failed, formatReason("", 0, "%s", fmt.Sprint(args...)), statusFailure)
}

// Fatalf is similar to Fatal but formats its reason using fmt.Sprintf.
func (s *State) Fatalf(format string, args ...interface{}) {
	s.root.terminate(Failed, formatReason("", 0, format, args...), statusFailure)
}

// Skip records a skipped outcome with the given reason and ends the process
// with a success status; a skip is not a suite-level failure. It never
// returns.
func (s *State) Skip(args ...interface{}) {
	s.root.terminate(Skipped, formatReason("", 0, "%s", fmt.Sprint(args...)), statusSuccess)
}

// Skipf is similar to Skip but formats its reason using fmt.Sprintf.
func (s *State) Skipf(format string, args ...interface{}) {
	s.root.terminate(Skipped, formatReason("", 0, format, args...), statusSuccess)
}

// Error records a non-fatal check failure tagged with the caller's source
// location and lets the body continue. The accumulated failures decide the
// final outcome when the body returns.
func (s *State) Error(args ...interface{}) {
	file, line := callerLocation(1)
	s.root.failCheck(formatReason(file, line, "%s", fmt.Sprint(args...)))
}

// Errorf is similar to Error but formats its reason using fmt.Sprintf.
func (s *State) Errorf(format string, args ...interface{}) {
	file, line := callerLocation(1)
	s.root.failCheck(formatReason(file, line, format, args...))
}

// Nonfatal records a non-fatal check failure without a source location tag.
func (s *State) Nonfatal(args ...interface{}) {
	s.root.failCheck(formatReason("", 0, "%s", fmt.Sprint(args...)))
}

// Nonfatalf is similar to Nonfatal but formats its reason using fmt.Sprintf.
func (s *State) Nonfatalf(format string, args ...interface{}) {
	s.root.failCheck(formatReason("", 0, format, args...))
}

// errnoOf extracts a POSIX errno from err, unwrapping wrapped errors.
// A nil error or one without an errno yields 0.
func errnoOf(err error) syscall.Errno {
	var errno syscall.Errno
	if stderrors.As(err, &errno) {
		return errno
	}
	return 0
}

// errnoTest verifies that result is true and that err carries the expected
// errno, dispatching a violation either to the non-fatal or the terminal
// failure path.
func (s *State) errnoTest(file string, line int, want syscall.Errno, err error, expr string, result, fatal bool) {
	var reason string
	if result {
		got := errnoOf(err)
		if got == want {
			return
		}
		reason = formatReason(file, line, "Expected errno %d, got %d, in %s", int(want), int(got), expr)
	} else {
		reason = formatReason(file, line, "Expected true value in %s", expr)
	}
	if fatal {
		s.root.terminate(Failed, reason, statusFailure)
	}
	s.root.failCheck(reason)
}

// CheckErrno verifies that result (the outcome of evaluating the expression
// described by expr) is true and that err carries the errno want. On
// violation it records a non-fatal check failure and returns.
func (s *State) CheckErrno(want syscall.Errno, err error, expr string, result bool) {
	file, line := callerLocation(1)
	s.errnoTest(file, line, want, err, expr, result, false)
}

// RequireErrno is similar to CheckErrno but a violation fails the test case
// immediately. It only returns when the requirement holds.
func (s *State) RequireErrno(want syscall.Errno, err error, expr string, result bool) {
	file, line := callerLocation(1)
	s.errnoTest(file, line, want, err, expr, result, true)
}
