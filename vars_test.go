// Copyright 2024 The tcase Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package tcase

import (
	"path/filepath"
	"strings"
	gotesting "testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gotestcase/tcase/keyval"
	"github.com/gotestcase/tcase/testutil"
)

func TestLoadVars(t *gotesting.T) {
	dir := testutil.TempDir(t)
	if err := testutil.WriteFiles(dir, map[string]string{
		"10-base.yaml":  "workdir: /var/tmp\nshell: /bin/sh\n",
		"20-extra.yaml": "owner: root\n",
		"notes.txt":     "not a vars file\n",
	}); err != nil {
		t.Fatal(err)
	}

	vars, err := LoadVars(dir)
	if err != nil {
		t.Fatalf("LoadVars failed: %v", err)
	}

	// Files are visited in lexical order and keys keep document order.
	if diff := cmp.Diff(vars.Keys(), []string{"workdir", "shell", "owner"}); diff != "" {
		t.Errorf("Variable keys mismatch (-got +want):\n%s", diff)
	}
	if got := vars.Get("shell"); got != "/bin/sh" {
		t.Errorf("shell = %q; want %q", got, "/bin/sh")
	}
}

func TestLoadVarsDuplicateKey(t *gotesting.T) {
	dir := testutil.TempDir(t)
	if err := testutil.WriteFiles(dir, map[string]string{
		"a.yaml": "owner: root\n",
		"b.yaml": "owner: nobody\n",
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadVars(dir); err == nil {
		t.Error("LoadVars accepted a key defined in two files")
	} else if !strings.Contains(err.Error(), `duplicated key "owner"`) {
		t.Errorf("LoadVars error %q; want it to name the duplicated key", err)
	}
}

func TestLoadVarsNonStringValue(t *gotesting.T) {
	dir := testutil.TempDir(t)
	if err := testutil.WriteFiles(dir, map[string]string{
		"a.yaml": "port: 8080\n",
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadVars(dir); err == nil {
		t.Error("LoadVars accepted a non-string value")
	} else if !strings.Contains(err.Error(), `value for key "port" is not a string`) {
		t.Errorf("LoadVars error %q; want a non-string value complaint", err)
	}
}

func TestLoadVarsMissingDir(t *gotesting.T) {
	dir := filepath.Join(testutil.TempDir(t), "nonexistent")

	vars, err := LoadVars(dir)
	if err != nil {
		t.Fatalf("LoadVars failed for a missing dir: %v", err)
	}
	if vars == nil || vars.Len() != 0 {
		t.Errorf("LoadVars for a missing dir = %v; want an empty, present view", vars)
	}
}

func TestReadVarsFileKeepsDocumentOrder(t *gotesting.T) {
	dir := testutil.TempDir(t)
	if err := testutil.WriteFiles(dir, map[string]string{
		"vars.yaml": "zeta: last\nalpha: first\n",
	}); err != nil {
		t.Fatal(err)
	}

	vars := keyval.New()
	if err := ReadVarsFile(vars, filepath.Join(dir, "vars.yaml")); err != nil {
		t.Fatalf("ReadVarsFile failed: %v", err)
	}
	if diff := cmp.Diff(vars.Keys(), []string{"zeta", "alpha"}); diff != "" {
		t.Errorf("Variable keys mismatch (-got +want):\n%s", diff)
	}
}

func TestRunUsesLoadedConfig(t *gotesting.T) {
	dir := testutil.TempDir(t)
	if err := testutil.WriteFiles(dir, map[string]string{
		"vars.yaml": "fs.mkdir.mode: \"0750\"\n",
	}); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadVars(dir)
	if err != nil {
		t.Fatalf("LoadVars failed: %v", err)
	}
	tc, err := New("fs.mkdir.ok", nil, nil, nil, cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got := tc.ConfigVar("fs.mkdir.mode"); got != "0750" {
		t.Errorf("ConfigVar(fs.mkdir.mode) = %q; want %q", got, "0750")
	}
	if got := tc.ConfigVarDefault("fs.mkdir.user", "root"); got != "root" {
		t.Errorf("ConfigVarDefault(fs.mkdir.user) = %q; want %q", got, "root")
	}
}
