// Copyright 2024 The tcase Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package errors provides basic utilities to construct errors.
//
// Use this package instead of the standard library (errors.New, fmt.Errorf)
// to construct and wrap errors inside this module. Errors built here record
// the stack trace of their construction site and chain to their causes,
// which makes diagnostics from a failing harness far easier to read.
//
// To construct a new error, use New or Errorf.
//
//	errors.New("results file not writable")
//	errors.Errorf("variable %q undefined", name)
//
// To add context to an existing error, use Wrap or Wrapf.
//
//	errors.Wrap(err, "failed to load configuration variables")
//	errors.Wrapf(err, "failed to parse %s", path)
//
// The full chain with stack traces is printed by formatting an error with
// the "%+v" verb.
package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/gotestcase/tcase/errors/stack"
)

// impl is the error implementation used by this package.
type impl struct {
	msg   string      // message to be prepended to cause
	trace stack.Trace // stack captured where this error was created
	cause error       // wrapped error, or nil
}

// Error implements the error interface.
func (e *impl) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %s", e.msg, e.cause.Error())
}

// Unwrap returns the wrapped error, if any. This lets errors built by this
// package participate in the standard errors.Is/As traversal.
func (e *impl) Unwrap() error {
	return e.cause
}

// formatChain formats an error chain, innermost cause last.
func formatChain(err error) string {
	var chain []string
	for err != nil {
		if e, ok := err.(*impl); ok {
			chain = append(chain, fmt.Sprintf("%s\n%v", e.msg, e.trace))
			err = e.cause
		} else {
			chain = append(chain, fmt.Sprintf("%s\n\tat ???", err.Error()))
			err = nil
		}
	}
	return strings.Join(chain, "\n")
}

// Format implements fmt.Formatter. The "%+v" verb formats the whole error
// chain with stack traces.
func (e *impl) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		io.WriteString(s, formatChain(e))
	} else {
		io.WriteString(s, e.Error())
	}
}

// New creates a new error with the given message.
// This is similar to the standard errors.New, but also records the location
// where it was called.
func New(msg string) error {
	return &impl{msg, stack.New(1), nil}
}

// Errorf creates a new error with the given formatted message.
// This is similar to the standard fmt.Errorf, but also records the location
// where it was called.
func Errorf(format string, args ...interface{}) error {
	return &impl{fmt.Sprintf(format, args...), stack.New(1), nil}
}

// Wrap creates a new error with the given message, wrapping another error.
// This function also records the location where it was called.
// If cause is nil, this is the same as New.
func Wrap(cause error, msg string) error {
	return &impl{msg, stack.New(1), cause}
}

// Wrapf creates a new error with the given formatted message, wrapping
// another error. This function also records the location where it was
// called. If cause is nil, this is the same as Errorf.
func Wrapf(cause error, format string, args ...interface{}) error {
	return &impl{fmt.Sprintf(format, args...), stack.New(1), cause}
}
