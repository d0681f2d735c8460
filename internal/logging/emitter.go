// Copyright 2024 The tcase Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package logging

import "code.cloudfoundry.org/clock"

// Emitter is the convenience front end used by the run driver: it stamps
// messages with the current time from a clock and hands them to a Logger.
// Injecting a fake clock gives tests deterministic timestamps.
type Emitter struct {
	logger Logger
	clk    clock.Clock
}

// NewEmitter creates an Emitter that feeds logger with timestamps from clk.
func NewEmitter(logger Logger, clk clock.Clock) *Emitter {
	return &Emitter{logger: logger, clk: clk}
}

// Log emits an informational message.
func (e *Emitter) Log(msg string) {
	e.logger.Log(LevelInfo, e.clk.Now(), msg)
}

// Debug emits a debug message.
func (e *Emitter) Debug(msg string) {
	e.logger.Log(LevelDebug, e.clk.Now(), msg)
}
