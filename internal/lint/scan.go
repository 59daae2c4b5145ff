// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package lint

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// scanTimeout bounds the external file-discovery tool's run time.
const scanTimeout = 30 * time.Second

// discoverCandidateFiles shells out to an external text-search tool (rg)
// to find every file under dir containing the literal substring "LINT.".
// The tool is expected to emit one path per line on stdout, exit 0 for
// hits and 1 for no hits; any other exit code is fatal.
func discoverCandidateFiles(ctx context.Context, dir string) ([]string, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, scanTimeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, "rg", "--files-with-matches", "--fixed-strings", "LINT.", dir)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	exitCode := 0
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	} else if runErr != nil {
		return nil, &EngineError{Err: fmt.Errorf("%w: %v: %s", ErrExternalToolFailed, runErr, stderr.String())}
	}

	switch exitCode {
	case 0:
		return splitNonEmptyLines(stdout.String()), nil
	case 1:
		return nil, nil
	default:
		return nil, &EngineError{Err: fmt.Errorf("%w: rg exited %d: %s", ErrExternalToolFailed, exitCode, stderr.String())}
	}
}

func splitNonEmptyLines(s string) []string {
	var out []string
	scanner := bufio.NewScanner(strings.NewReader(s))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
