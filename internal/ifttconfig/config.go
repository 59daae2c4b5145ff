// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ifttconfig loads the optional .ifttt.yaml project config: an
// ignore list, which is combined with the CLI's --ignore entries, and a
// default parallelism, which --parallelism and IFTTT_PARALLELISM override.
package ifttconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileConfig is the shape of .ifttt.yaml.
type FileConfig struct {
	Ignore      []string `yaml:"ignore"`
	Parallelism int      `yaml:"parallelism"`
}

var (
	loaded  FileConfig
	once    sync.Once
	loadErr error
)

// Load reads .ifttt.yaml from root, memoizing the result for the lifetime
// of the process. A missing file is not an error; Load returns the
// zero-value FileConfig in that case.
func Load(root string) (FileConfig, error) {
	once.Do(func() {
		loaded, loadErr = loadInternal(root)
	})
	return loaded, loadErr
}

func loadInternal(root string) (FileConfig, error) {
	path := filepath.Join(root, ".ifttt.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("ifttconfig: reading %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("ifttconfig: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveParallelism applies the flag > env (IFTTT_PARALLELISM) > file >
// default precedence. flagValue is the value as explicitly set on the
// command line, or 0 if the user never set it.
func ResolveParallelism(flagValue int, fileValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	if envValue, ok := parallelismFromEnv(); ok {
		return envValue
	}
	if fileValue > 0 {
		return fileValue
	}
	return runtime.NumCPU()
}

func parallelismFromEnv() (int, bool) {
	raw := os.Getenv("IFTTT_PARALLELISM")
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// MergeIgnore combines the file's ignore list with CLI-supplied entries,
// CLI entries first so duplicate suppression behaves predictably.
func MergeIgnore(flagValues, fileValues []string) []string {
	out := make([]string, 0, len(flagValues)+len(fileValues))
	out = append(out, flagValues...)
	out = append(out, fileValues...)
	return out
}
