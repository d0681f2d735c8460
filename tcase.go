// Copyright 2024 The tcase Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package tcase implements the test-case lifecycle and outcome-reporting
// primitives used by programs that implement individual automated tests.
//
// A host process runs exactly one test case per invocation: the harness
// constructs a TestCase with New, calls Run with a result destination, and
// later reads the one-line result record (passed, failed or skipped) from
// that destination. The body callback reports its outcome through the State
// it receives; terminal primitives persist the record and end the process,
// non-fatal checks accumulate and are reduced to a final verdict when the
// body returns.
package tcase

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gotestcase/tcase/errors"
	"github.com/gotestcase/tcase/keyval"
)

// Fatal framework errors outside a run (notably during New) go through
// these hooks so tests can observe the abort. Production code never
// touches them.
var (
	fatalOut  io.Writer        = os.Stderr
	fatalExit func(status int) = os.Exit
)

// fatalf reports an unrecoverable framework error detected outside a run
// and aborts the process.
func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(fatalOut, "FATAL ERROR: %s\n", fmt.Sprintf(format, args...))
	fatalExit(statusFatal)
	panic("unreachable")
}

// SetupFunc prepares a test case before it runs. It may mutate metadata
// variables, except the read-only ident.
type SetupFunc func(tc *TestCase)

// BodyFunc is the test logic. It reports its outcome through s; returning
// normally yields a verdict computed from the non-fatal failures recorded
// so far.
type BodyFunc func(ctx context.Context, s *State)

// CleanupFunc releases resources after the run. The harness invokes it via
// Cleanup, in a fresh process, after the result record has been written;
// the body never calls it.
type CleanupFunc func(tc *TestCase)

// TestCase describes a single test case: an immutable identifier, up to
// three callbacks and a metadata store, plus an optional read-only
// configuration view supplied by the harness.
type TestCase struct {
	ident   string
	setup   SetupFunc
	body    BodyFunc
	cleanup CleanupFunc

	vars   *keyval.Map // metadata, owned by the test case
	config *keyval.Map // configuration view; nil when absent entirely
}

// Def declares a test case in literal form, for harnesses that keep a table
// of cases to instantiate.
type Def struct {
	Ident   string
	Setup   SetupFunc
	Body    BodyFunc
	Cleanup CleanupFunc
}

// New constructs a test case.
//
// The metadata store is seeded with ident and, when a cleanup callback is
// given, has.cleanup=true. setup runs before New returns and may adjust
// metadata; if it modifies the ident variable the process is aborted, since
// a test case that corrupts its own identity cannot be reported reliably.
// config may be nil, which is distinct from an empty configuration.
func New(ident string, setup SetupFunc, body BodyFunc, cleanup CleanupFunc, config *keyval.Map) (*TestCase, error) {
	tc := &TestCase{
		ident:   ident,
		setup:   setup,
		body:    body,
		cleanup: cleanup,
		vars:    keyval.New(),
		config:  config,
	}

	if err := tc.SetMDVar("ident", "%s", ident); err != nil {
		return nil, err
	}
	if cleanup != nil {
		if err := tc.SetMDVar("has.cleanup", "true"); err != nil {
			return nil, err
		}
	}

	if setup != nil {
		setup(tc)
	}
	if tc.MDVar("ident") != ident {
		fatalf("Test case setup modified the read-only 'ident' property")
	}

	return tc, nil
}

// NewFromDef constructs a test case from its declaration.
func NewFromDef(def *Def, config *keyval.Map) (*TestCase, error) {
	return New(def.Ident, def.Setup, def.Body, def.Cleanup, config)
}

// Ident returns the identifier the test case was constructed with.
func (tc *TestCase) Ident() string { return tc.ident }

// MDVar returns the value of the named metadata variable. The variable must
// be defined; check with HasMDVar or use LookupMDVar otherwise.
func (tc *TestCase) MDVar(name string) string {
	return tc.vars.Get(name)
}

// LookupMDVar returns the value of the named metadata variable and whether
// it is defined.
func (tc *TestCase) LookupMDVar(name string) (string, bool) {
	return tc.vars.Lookup(name)
}

// HasMDVar reports whether the named metadata variable is defined.
func (tc *TestCase) HasMDVar(name string) bool {
	return tc.vars.Has(name)
}

// SetMDVar sets the named metadata variable to a value built from a
// printf-style format. The last write wins.
func (tc *TestCase) SetMDVar(name, format string, args ...interface{}) error {
	if name == "" {
		return errors.New("metadata variable name must not be empty")
	}
	tc.vars.Set(name, fmt.Sprintf(format, args...))
	return nil
}

// MDVars returns a snapshot of all metadata variables in declaration order.
func (tc *TestCase) MDVars() *keyval.Map {
	return tc.vars.Clone()
}

// HasConfigVar reports whether the named configuration variable is defined.
// It is false whenever the configuration view is absent.
func (tc *TestCase) HasConfigVar(name string) bool {
	return tc.config != nil && tc.config.Has(name)
}

// ConfigVar returns the value of the named configuration variable. The
// variable must be defined; check with HasConfigVar first.
func (tc *TestCase) ConfigVar(name string) string {
	if tc.config == nil {
		panic(fmt.Sprintf("tcase: configuration variable %q requested but no configuration was supplied", name))
	}
	return tc.config.Get(name)
}

// ConfigVarDefault returns the value of the named configuration variable,
// or def when it is not defined or no configuration was supplied.
func (tc *TestCase) ConfigVarDefault(name, def string) string {
	if !tc.HasConfigVar(name) {
		return def
	}
	return tc.ConfigVar(name)
}

// Cleanup invokes the cleanup callback, if any. It is best effort and meant
// to be driven by the harness after Run's process has terminated.
func (tc *TestCase) Cleanup() error {
	if tc.cleanup != nil {
		tc.cleanup(tc)
	}
	return nil
}
