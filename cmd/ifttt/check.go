// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ifttt-lint/ifttt/internal/ifttconfig"
	"github.com/ifttt-lint/ifttt/internal/lint"
)

var checkCmd = &cobra.Command{
	Use:   "check <diff-file|->",
	Short: "Validate a unified diff against IfChange/ThenChange directives",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	diffText, err := readDiffArg(args[0])
	if err != nil {
		return err
	}

	fileCfg, err := ifttconfig.Load(".")
	if err != nil {
		return err
	}
	parallelism := ifttconfig.ResolveParallelism(flagParallelism, fileCfg.Parallelism)
	ignoreList := ifttconfig.MergeIgnore(flagIgnore, fileCfg.Ignore)

	out := diagnosticWriter()

	code, err := lint.LintDiff(context.Background(), diffText, parallelism, flagVerbose, ignoreList, out, trace)
	if err != nil {
		return reportFatal(err, code)
	}
	exitCode = code
	return nil
}

// readDiffArg reads the diff text from path, or from stdin if path is "-".
func readDiffArg(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading diff from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading diff file %s: %w", path, err)
	}
	return string(data), nil
}

// diagnosticWriter returns the sink diagnostics are printed to: stdout
// normally, or io.Discard when --exit-code-only is set.
func diagnosticWriter() io.Writer {
	if flagExitCodeOnly {
		return io.Discard
	}
	return os.Stdout
}

// reportFatal prints a fatal engine error to stderr and folds it into the
// exitCodeError carried back through cobra's Execute().
func reportFatal(err error, code int) error {
	if !flagExitCodeOnly {
		fmt.Fprintln(os.Stderr, err)
	}
	return &exitCodeError{code: code}
}
