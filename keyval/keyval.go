// Copyright 2024 The tcase Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package keyval provides an insertion-ordered string-to-string map.
//
// Test case metadata and configuration views are small sets of key/value
// pairs whose declaration order is meaningful to harnesses that print or
// serialize them, so a plain Go map does not fit.
package keyval

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is an insertion-ordered collection of string key/value pairs.
// Keys are unique; writing to an existing key replaces its value but keeps
// its original position. The zero value is not usable; call New.
type Map struct {
	om *orderedmap.OrderedMap[string, string]
}

// New creates an empty Map.
func New() *Map {
	return &Map{om: orderedmap.New[string, string]()}
}

// Set stores value under key. The last write wins.
func (m *Map) Set(key, value string) {
	m.om.Set(key, value)
}

// Lookup returns the value stored under key and whether it was present.
func (m *Map) Lookup(key string) (string, bool) {
	return m.om.Get(key)
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.om.Get(key)
	return ok
}

// Get returns the value stored under key. The key must be present; callers
// that are not sure should use Has or Lookup instead. Get panics on a
// missing key since that is a contract violation, not a runtime condition.
func (m *Map) Get(key string) string {
	v, ok := m.om.Get(key)
	if !ok {
		panic(fmt.Sprintf("keyval: key %q not present", key))
	}
	return v
}

// Len returns the number of pairs.
func (m *Map) Len() int {
	return m.om.Len()
}

// Keys returns all keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.om.Len())
	for p := m.om.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Each calls f once per pair, in insertion order.
func (m *Map) Each(f func(key, value string)) {
	for p := m.om.Oldest(); p != nil; p = p.Next() {
		f(p.Key, p.Value)
	}
}

// Clone returns an independent copy of the map preserving order.
func (m *Map) Clone() *Map {
	c := New()
	m.Each(c.Set)
	return c
}
