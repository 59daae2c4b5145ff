// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package lint orchestrates the diff parser, directive extractor,
// uniqueness validator, and worker pool into the end-to-end change-
// coupling check: pair IfChange/ThenChange directives, resolve targets
// and label ranges, cross-reference against the diff's changed-line sets,
// and emit violations.
package lint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/ifttt-lint/ifttt/internal/directive"
	"github.com/ifttt-lint/ifttt/internal/ifttlog"
	"github.com/ifttt-lint/ifttt/internal/udiff"
	"github.com/ifttt-lint/ifttt/internal/workerpool"
)

// LintDiff is the engine's entry point for "check" mode: it parses
// diffText, extracts and pairs directives across every changed file, and
// writes one "[ifttt] "-prefixed diagnostic line to out per violation.
//
// Returns 0 if no diagnostics were emitted, 1 if at least one violation
// was found, or a non-nil error (paired with exit code 2 by the caller)
// on a fatal condition: malformed diff structure, an unreadable source
// file, or a malformed directive.
func LintDiff(ctx context.Context, diffText string, parallelism int, verbose bool, ignoreList []string, out io.Writer, trace *ifttlog.Logger) (int, error) {
	changes, err := udiff.Parse(diffText)
	if err != nil {
		return 2, &EngineError{Err: fmt.Errorf("%w: %v", ErrFatalIO, err)}
	}

	patterns := ParseIgnoreList(ignoreList)
	paths := filterPaths(changes.Paths(), patterns, verbose, trace)

	pool := workerpool.New(parallelism, directive.Extract)
	defer pool.Close()

	return runEngine(ctx, pool, changes, paths, patterns, out)
}

// RunScan is the engine's entry point for "scan" mode: it discovers every
// file under dir that might carry directives (via an external collaborator,
// §6) and validates only their label uniqueness — there is no diff to
// cross-reference against in this mode.
func RunScan(ctx context.Context, dir string, parallelism int, verbose bool, out io.Writer, trace *ifttlog.Logger) (int, error) {
	paths, err := discoverCandidateFiles(ctx, dir)
	if err != nil {
		return 2, err
	}
	if verbose && trace != nil {
		trace.Debug("scan discovered candidate files", "dir", dir, "count", len(paths))
	}

	pool := workerpool.New(parallelism, directive.Extract)
	defer pool.Close()

	results, err := pool.ParseAll(ctx, paths)
	if err != nil {
		return 2, classifyParseErr("", err)
	}

	var diags []diagnostic
	for _, p := range paths {
		res := results[p]
		if res.Err != nil {
			if errors.Is(res.Err, directive.ErrNotFound) {
				continue
			}
			return 2, classifyParseErr(p, res.Err)
		}
		for _, dup := range directive.CheckUniqueness(p, res.Directives) {
			diags = append(diags, duplicateLabelDiagnostic(dup.Path, dup.Lines[len(dup.Lines)-1], dup.Name))
		}
	}

	writeDiagnostics(out, diags)
	if len(diags) > 0 {
		return 1, nil
	}
	return 0, nil
}

// filterPaths applies Phase A's retained-path rules: drop non-code
// extensions, then drop anything matching an unlabeled ignore pattern by
// basename or full path.
func filterPaths(paths []string, patterns []IgnorePattern, verbose bool, trace *ifttlog.Logger) []string {
	var out []string
	for _, p := range paths {
		if !isCodeFile(p) {
			continue
		}
		if matchesPathOrBasename(patterns, p, basename(p)) {
			if verbose && trace != nil {
				trace.Debug("dropping ignored path", "path", p)
			}
			continue
		}
		out = append(out, p)
	}
	return out
}

// runEngine drives Phases B through E over an already diff-parsed,
// already path-filtered invocation.
func runEngine(ctx context.Context, pool *workerpool.Pool, changes *udiff.ChangeSet, paths []string, patterns []IgnorePattern, out io.Writer) (int, error) {
	var diags []diagnostic

	// Phase B: source-side parse, uniqueness, pairing.
	sourceResults, err := pool.ParseAll(ctx, paths)
	if err != nil {
		return 2, classifyParseErr("", err)
	}

	var allPairs []pair
	for _, p := range paths {
		res := sourceResults[p]
		if res.Err != nil {
			// Source-side paths come straight from the diff: a failure
			// here has no Phase-C-style soft classification for
			// ErrNotFound, but malformed directives still get their own
			// sentinel.
			return 2, classifyParseErr(p, res.Err)
		}

		for _, dup := range directive.CheckUniqueness(p, res.Directives) {
			diags = append(diags, duplicateLabelDiagnostic(dup.Path, dup.Lines[len(dup.Lines)-1], dup.Name))
		}

		pr := pairDirectives(p, res.Directives)
		allPairs = append(allPairs, pr.Pairs...)

		for _, o := range pr.OrphanThens {
			if matchesTarget(patterns, o.Target) {
				continue
			}
			diags = append(diags, orphanThenDiagnostic(o))
		}
		for _, o := range pr.OrphanIfs {
			if o.Label != "" && matchesLabeledContext(patterns, basename(o.File), o.Label) {
				continue
			}
			diags = append(diags, orphanIfDiagnostic(o))
		}
	}

	// Phase C: target resolution & label ranges.
	targetSet := make(map[string]struct{})
	for _, pr := range allPairs {
		pathPart, _ := splitTarget(pr.Target)
		tp := resolveTargetPath(pr.File, pathPart)
		if !isCodeFile(tp) {
			continue
		}
		targetSet[tp] = struct{}{}
	}
	targetList := make([]string, 0, len(targetSet))
	for tp := range targetSet {
		targetList = append(targetList, tp)
	}
	sort.Strings(targetList)

	targetResults, err := pool.ParseAll(ctx, targetList)
	if err != nil {
		return 2, classifyParseErr("", err)
	}

	labelRanges := make(map[string]map[string]LabelRange)
	notFound := make(map[string]bool)
	for _, tp := range targetList {
		res := targetResults[tp]
		if res.Err != nil {
			if errors.Is(res.Err, directive.ErrNotFound) {
				notFound[tp] = true
				continue
			}
			return 2, classifyParseErr(tp, res.Err)
		}
		for _, dup := range directive.CheckUniqueness(tp, res.Directives) {
			diags = append(diags, duplicateLabelDiagnostic(dup.Path, dup.Lines[len(dup.Lines)-1], dup.Name))
		}
		labelRanges[tp] = computeLabelRanges(res.Directives)
	}

	for _, pr := range allPairs {
		pathPart, _ := splitTarget(pr.Target)
		tp := resolveTargetPath(pr.File, pathPart)
		if !notFound[tp] {
			continue
		}
		if pairIgnored(pr, patterns) {
			continue
		}
		diags = append(diags, targetNotFoundDiagnostic(pairContext(pr), pr.Target, pr.ThenLine, tp))
	}

	// Phase D: pair validation.
	for _, pr := range allPairs {
		if pairIgnored(pr, patterns) {
			continue
		}

		fc := changes.Get(pr.File)
		if fc == nil || !fc.HasChange(pr.IfLine) {
			continue
		}

		pathPart, label := splitTarget(pr.Target)
		targetFile := resolveTargetPath(pr.File, pathPart)
		if notFound[targetFile] {
			continue
		}

		dctx := pairContext(pr)
		targetChanges := changes.Get(targetFile)
		if targetChanges == nil {
			diags = append(diags, targetNotChangedDiagnostic(dctx, pr.Target, pr.ThenLine, targetFile))
			continue
		}

		if label != "" {
			ranges := labelRanges[targetFile]
			r, found := ranges[label]
			if !found {
				available := make([]string, 0, len(ranges))
				for name := range ranges {
					available = append(available, name)
				}
				diags = append(diags, labelNotFoundDiagnostic(dctx, pr.Target, pr.ThenLine, targetFile, label, available))
				continue
			}
			actual := inRange(targetChanges, r)
			if len(actual) == 0 {
				diags = append(diags, labelRangeEmptyDiagnostic(dctx, targetFile, label, r, targetChanges.SortedAll()))
			}
			continue
		}

		if len(targetChanges.SortedAll()) == 0 {
			diags = append(diags, fileRangeEmptyDiagnostic(dctx, targetFile))
		}
	}

	// Phase E: finalize.
	writeDiagnostics(out, diags)
	if len(diags) > 0 {
		return 1, nil
	}
	return 0, nil
}

// classifyParseErr distinguishes a malformed LINT.* token from any other
// parse failure (unreadable file, permission error, etc.) so that callers
// of LintDiff/RunScan can tell the two apart via errors.Is.
func classifyParseErr(path string, err error) error {
	var me *directive.MalformedError
	if errors.As(err, &me) {
		return &EngineError{Path: path, Line: me.Line, Err: fmt.Errorf("%w: %v", ErrMalformedDirective, err)}
	}
	return &EngineError{Path: path, Err: fmt.Errorf("%w: %v", ErrFatalIO, err)}
}

func pairIgnored(pr pair, patterns []IgnorePattern) bool {
	if pr.IfLabel != "" && matchesLabeledContext(patterns, basename(pr.File), pr.IfLabel) {
		return true
	}
	return matchesTarget(patterns, pr.Target)
}

func pairContext(pr pair) diagnosticContext {
	return diagnosticContext{
		text: ifContext(pr.File, pr.IfLabel, pr.IfLine),
		file: pr.File,
		line: pr.IfLine,
	}
}

func inRange(fc *udiff.FileChanges, r LabelRange) []uint32 {
	var out []uint32
	for _, l := range fc.SortedAll() {
		if l >= r.Start && l <= r.End {
			out = append(out, l)
		}
	}
	return out
}

func writeDiagnostics(out io.Writer, diags []diagnostic) {
	sortDiagnostics(diags)
	for _, d := range diags {
		fmt.Fprintln(out, d.String())
	}
}
