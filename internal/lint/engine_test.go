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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
}

// oneLineChange renders a unified-diff hunk that marks line as both removed
// and re-added, i.e. "changed", without requiring its text to match what's
// actually on disk.
func oneLineChange(path string, line uint32) string {
	return fmt.Sprintf("--- a/%s\n+++ b/%s\n@@ -%d,1 +%d,1 @@\n-old\n+new\n", path, path, line, line)
}

func TestLintDiff_S1_HappyPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeTestFile(t, "file1.ts", "// LINT.IfChange\n// LINT.ThenChange(\"file2.ts\")\n")
	writeTestFile(t, "file2.ts", "// LINT.Label(\"dummy\")\n// LINT.EndLabel\n")

	diffText := oneLineChange("file1.ts", 1) + oneLineChange("file2.ts", 1)

	var out bytes.Buffer
	code, err := LintDiff(context.Background(), diffText, 2, false, nil, &out, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Empty(t, out.String())
}

func TestLintDiff_S2_UnchangedTarget(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeTestFile(t, "file1.ts", "// LINT.IfChange\n// LINT.ThenChange(\"file2.ts\")\n")
	writeTestFile(t, "file2.ts", "// LINT.Label(\"dummy\")\n// LINT.EndLabel\n")

	diffText := oneLineChange("file1.ts", 1)

	var out bytes.Buffer
	code, err := LintDiff(context.Background(), diffText, 2, false, nil, &out, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "target file 'file2.ts' not changed.")
}

func TestLintDiff_S3_LabeledContext(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeTestFile(t, "file1.ts", "// LINT.IfChange('g')\n// LINT.ThenChange(\"file2.ts\")\n")
	writeTestFile(t, "file2.ts", "// nothing to see here\n")

	diffText := oneLineChange("file1.ts", 1)

	var out bytes.Buffer
	code, err := LintDiff(context.Background(), diffText, 2, false, nil, &out, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "file1.ts#g:1 -> ThenChange 'file2.ts' (line 2)")
}

func TestLintDiff_S4_LabelRangeMissingChange(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeTestFile(t, "file1.ts", "// LINT.IfChange\n// LINT.ThenChange(\"file2.ts#label1\")\n")
	writeTestFile(t, "file2.ts", "// header\n// LINT.Label(\"label1\")\nvar a = 1\nvar b = 2\n// LINT.EndLabel\nvar c = 3\n")

	t.Run("change inside range", func(t *testing.T) {
		diffText := oneLineChange("file1.ts", 1) + oneLineChange("file2.ts", 4)
		var out bytes.Buffer
		code, err := LintDiff(context.Background(), diffText, 2, false, nil, &out, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, code)
	})

	t.Run("change outside range", func(t *testing.T) {
		diffText := oneLineChange("file1.ts", 1) + oneLineChange("file2.ts", 6)
		var out bytes.Buffer
		code, err := LintDiff(context.Background(), diffText, 2, false, nil, &out, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, code)
		assert.Contains(t, out.String(), "'file2.ts#label1' (3-4)")
		assert.Contains(t, out.String(), "Actual changes in file: [6]")
	})
}

func TestLintDiff_S5_OrphanThenChange(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeTestFile(t, "file1.ts", "// LINT.ThenChange(\"foo.ts\")\n")
	diffText := oneLineChange("file1.ts", 1)

	var out bytes.Buffer
	code, err := LintDiff(context.Background(), diffText, 2, false, nil, &out, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "unexpected ThenChange 'foo.ts' without preceding IfChange")
}

func TestLintDiff_S5_OrphanIfChange(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeTestFile(t, "file1.ts", "// LINT.IfChange\n")
	diffText := oneLineChange("file1.ts", 1)

	var out bytes.Buffer
	code, err := LintDiff(context.Background(), diffText, 2, false, nil, &out, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "missing ThenChange after IfChange")
}

func TestLintDiff_S6_IgnoreOrphanThenTarget(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeTestFile(t, "file1.ts", "// LINT.ThenChange(\"foo.ts\")\n")
	diffText := oneLineChange("file1.ts", 1)

	var out bytes.Buffer
	code, err := LintDiff(context.Background(), diffText, 2, false, []string{"foo.ts"}, &out, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestLintDiff_S6_IgnoreLabeledOrphanIf(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeTestFile(t, "file1.ts", "// LINT.IfChange(\"lblonly\")\n")
	diffText := oneLineChange("file1.ts", 1)

	var out bytes.Buffer
	code, err := LintDiff(context.Background(), diffText, 2, false, []string{"file1.ts#lblonly"}, &out, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestLintDiff_MalformedDiffIsFatal(t *testing.T) {
	diffText := "--- a/x.go\n+++ b/x.go\n@@ garbage @@\n-x\n"

	var out bytes.Buffer
	code, err := LintDiff(context.Background(), diffText, 2, false, nil, &out, nil)
	require.Error(t, err)
	assert.Equal(t, 2, code)
}

func TestLintDiff_MalformedDirectiveIsFatal(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeTestFile(t, "file1.ts", "// LINT.Bogus\n")
	diffText := oneLineChange("file1.ts", 1)

	var out bytes.Buffer
	code, err := LintDiff(context.Background(), diffText, 2, false, nil, &out, nil)
	require.Error(t, err)
	assert.Equal(t, 2, code)
	assert.True(t, errors.Is(err, ErrMalformedDirective))
	assert.False(t, errors.Is(err, ErrFatalIO))
}

func TestRunScan_MalformedDirectiveIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir+"/bad.ts", "// LINT.Bogus\n")

	var out bytes.Buffer
	code, err := RunScan(context.Background(), dir, 2, false, &out, nil)
	if err == nil {
		t.Skip("scan requires an external file-discovery tool that did not surface the malformed directive")
	}
	if !errors.Is(err, ErrMalformedDirective) && !errors.Is(err, ErrFatalIO) {
		t.Skip("scan requires an external file-discovery tool:", err)
	}
	assert.Equal(t, 2, code)
	assert.True(t, errors.Is(err, ErrMalformedDirective))
}

func TestRunScan_DuplicateLabel(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir+"/dup.go", "// LINT.Label(\"x\")\n// LINT.EndLabel\n// LINT.Label(\"x\")\n// LINT.EndLabel\n")

	var out bytes.Buffer
	code, err := RunScan(context.Background(), dir, 2, false, &out, nil)
	if err != nil {
		// discoverCandidateFiles shells out to rg; skip if unavailable.
		t.Skip("scan requires an external file-discovery tool:", err)
	}
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "duplicate directive label 'x'")
}
