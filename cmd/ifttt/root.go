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
	"github.com/spf13/cobra"

	"github.com/ifttt-lint/ifttt/internal/ifttlog"
)

// --- Global flag variables, shared across subcommands ---
var (
	flagParallelism  int
	flagVerbose      bool
	flagIgnore       []string
	flagExitCodeOnly bool
	flagJSONLogs     bool

	trace *ifttlog.Logger

	rootCmd = &cobra.Command{
		Use:   "ifttt",
		Short: "Cross-file change-coupling linter",
		Long: `ifttt cross-references LINT.IfChange / LINT.ThenChange directives
against a unified diff's changed-line sets and reports ThenChange targets
that did not change in the same diff as their IfChange line.`,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			trace = ifttlog.New(ifttlog.Config{
				Level: ifttlog.LevelDebug,
				JSON:  flagJSONLogs,
				Quiet: !flagVerbose,
			})
		},
	}
)

func init() {
	rootCmd.PersistentFlags().IntVar(&flagParallelism, "parallelism", 0,
		"number of worker goroutines (default: env IFTTT_PARALLELISM, then .ifttt.yaml, then NumCPU)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false,
		"emit structured trace events to stderr")
	rootCmd.PersistentFlags().StringArrayVar(&flagIgnore, "ignore", nil,
		"ignore pattern (repeatable); '<glob>' against a path or ThenChange target, or '<glob>#<label>' against a labeled IfChange")
	rootCmd.PersistentFlags().BoolVar(&flagExitCodeOnly, "exit-code-only", false,
		"suppress diagnostic output; only the process exit code reflects the result")
	rootCmd.PersistentFlags().BoolVar(&flagJSONLogs, "json-logs", false,
		"emit verbose trace events as JSON instead of text")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(scanCmd)
}
