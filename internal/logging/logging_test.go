// Copyright 2024 The tcase Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package logging

import (
	"bytes"
	"testing"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"github.com/google/go-cmp/cmp"
)

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf)
	s.Log("hello")
	s.Log("world")

	const exp = "hello\nworld\n"
	if buf.String() != exp {
		t.Errorf("WriterSink wrote %q; want %q", buf.String(), exp)
	}
}

func TestFuncSink(t *testing.T) {
	var got []string
	s := NewFuncSink(func(msg string) { got = append(got, msg) })
	s.Log("a")
	s.Log("b")

	if diff := cmp.Diff(got, []string{"a", "b"}); diff != "" {
		t.Errorf("FuncSink messages mismatch (-got +want):\n%s", diff)
	}
}

func TestSinkLoggerLevelFilter(t *testing.T) {
	var got []string
	l := NewSinkLogger(LevelInfo, false, NewFuncSink(func(msg string) { got = append(got, msg) }))

	now := time.Now()
	l.Log(LevelDebug, now, "quiet")
	l.Log(LevelInfo, now, "loud")

	if diff := cmp.Diff(got, []string{"loud"}); diff != "" {
		t.Errorf("Logged messages mismatch (-got +want):\n%s", diff)
	}
}

func TestSinkLoggerTimestamp(t *testing.T) {
	var got []string
	l := NewSinkLogger(LevelInfo, true, NewFuncSink(func(msg string) { got = append(got, msg) }))

	ts := time.Date(2024, 5, 1, 12, 30, 45, 123456000, time.UTC)
	l.Log(LevelInfo, ts, "msg")

	exp := []string{"2024-05-01T12:30:45.123456Z msg"}
	if diff := cmp.Diff(got, exp); diff != "" {
		t.Errorf("Logged messages mismatch (-got +want):\n%s", diff)
	}
}

func TestEmitter(t *testing.T) {
	var got []string
	clk := fakeclock.NewFakeClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	e := NewEmitter(NewSinkLogger(LevelInfo, true, NewFuncSink(func(msg string) { got = append(got, msg) })), clk)

	e.Debug("dropped")
	e.Log("kept")

	exp := []string{"2024-05-01T12:00:00.000000Z kept"}
	if diff := cmp.Diff(got, exp); diff != "" {
		t.Errorf("Emitted messages mismatch (-got +want):\n%s", diff)
	}
}
