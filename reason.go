// Copyright 2024 The tcase Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package tcase

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// formatReason builds a failure or skip reason message, optionally prefixed
// with the source location that produced it. An empty file means no
// location; line must be 0 in that case.
//
// Reasons end up verbatim in result records, so this is the single place
// that decides their shape.
func formatReason(file string, line int, format string, args ...interface{}) string {
	if file == "" {
		if line != 0 {
			panic("formatReason: line must be 0 when no file is given")
		}
		return fmt.Sprintf(format, args...)
	}
	return fmt.Sprintf("%s:%d: ", file, line) + fmt.Sprintf(format, args...)
}

// callerLocation returns the file base name and line of the caller.
// skip=0 identifies the caller of callerLocation itself.
func callerLocation(skip int) (file string, line int) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "", 0
	}
	return filepath.Base(file), line
}
