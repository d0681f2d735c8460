// Copyright 2024 The tcase Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package logging routes diagnostic messages of the framework to
// configurable destinations.
//
// The framework itself emits very little: non-fatal check failures and
// whatever a test body logs. Everything goes through a Logger so that unit
// tests can capture the diagnostic stream instead of scraping stderr.
package logging

import "time"

// Level indicates the severity of a log message.
type Level int

// Valid log levels, in increasing order of severity.
const (
	LevelDebug Level = iota
	LevelInfo
)

// Logger processes log entries.
type Logger interface {
	// Log processes a single log entry. ts is the time the entry was
	// produced.
	Log(level Level, ts time.Time, msg string)
}

// SinkLogger is a Logger that forwards entries to a Sink.
type SinkLogger struct {
	level     Level
	timestamp bool
	sink      Sink
}

// NewSinkLogger creates a new SinkLogger.
//
// level is the minimum severity the sink gets notified of. If timestamp is
// true, a timestamp is prepended to each message before it reaches the sink.
func NewSinkLogger(level Level, timestamp bool, sink Sink) *SinkLogger {
	return &SinkLogger{
		level:     level,
		timestamp: timestamp,
		sink:      sink,
	}
}

// Log sends a log entry to the associated sink.
func (l *SinkLogger) Log(level Level, ts time.Time, msg string) {
	if level < l.level {
		return
	}
	if l.timestamp {
		msg = ts.UTC().Format("2006-01-02T15:04:05.000000Z ") + msg
	}
	l.sink.Log(msg)
}
