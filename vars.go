// Copyright 2024 The tcase Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package tcase

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/gotestcase/tcase/errors"
	"github.com/gotestcase/tcase/keyval"
)

// findVarsFiles returns the paths of all vars files under dir, sorted in a
// stable order. A missing dir yields no paths and no error.
func findVarsFiles(dir string) (paths []string, err error) {
	if err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if filepath.Ext(path) == ".yaml" {
			paths = append(paths, path)
		}
		return nil
	}); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "couldn't walk vars dir")
	}
	return paths, nil
}

// ReadVarsFile reads a YAML file containing flat key-value pairs into vars,
// preserving the order keys appear in the document. A key already present
// in vars is an error; configuration variables must have a single source.
func ReadVarsFile(vars *keyval.Map, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read vars from %s", path)
	}

	var doc yaml.MapSlice
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return errors.Wrapf(err, "failed to parse %s", path)
	}

	for _, item := range doc {
		key, ok := item.Key.(string)
		if !ok {
			return errors.Errorf("%s: key %v is not a string", path, item.Key)
		}
		val, ok := item.Value.(string)
		if !ok {
			return errors.Errorf("%s: value for key %q is not a string", path, key)
		}
		if vars.Has(key) {
			return errors.Errorf("%s: duplicated key %q", path, key)
		}
		vars.Set(key, val)
	}
	return nil
}

// LoadVars reads every *.yaml file under dir into a configuration view for
// New. Files are read in a stable order and must not define the same key
// twice. A missing dir yields an empty, but present, configuration.
func LoadVars(dir string) (*keyval.Map, error) {
	paths, err := findVarsFiles(dir)
	if err != nil {
		return nil, err
	}
	vars := keyval.New()
	for _, p := range paths {
		if err := ReadVarsFile(vars, p); err != nil {
			return nil, err
		}
	}
	return vars, nil
}
