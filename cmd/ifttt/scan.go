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

	"github.com/spf13/cobra"

	"github.com/ifttt-lint/ifttt/internal/ifttconfig"
	"github.com/ifttt-lint/ifttt/internal/lint"
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Validate directive label uniqueness across a whole directory tree",
	Long: `scan discovers every file under dir that might carry LINT.
directives (via an external file-discovery tool) and checks their label
uniqueness. There is no diff to cross-reference against in this mode, so
orphan and target-resolution checks do not apply.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	dir := args[0]

	fileCfg, err := ifttconfig.Load(dir)
	if err != nil {
		return err
	}
	parallelism := ifttconfig.ResolveParallelism(flagParallelism, fileCfg.Parallelism)

	out := diagnosticWriter()

	code, err := lint.RunScan(context.Background(), dir, parallelism, flagVerbose, out, trace)
	if err != nil {
		return reportFatal(err, code)
	}
	exitCode = code
	return nil
}
