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
	"fmt"
	"os"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps the engine's exit code onto the
// process exit status. A command wiring error (bad flags, I/O setup
// failure) exits 2, matching the engine's own fatal-condition code.
func run() int {
	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*exitCodeError); ok {
			return exitErr.code
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	return exitCode
}

// exitCodeError carries a pre-determined process exit code out of a
// cobra RunE without cobra printing a redundant "Error: ..." line for
// conditions the engine has already reported as diagnostics.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string { return "" }

// exitCode is set by the active subcommand's RunE just before it
// returns, and read back by run() after rootCmd.Execute() returns nil.
var exitCode int
