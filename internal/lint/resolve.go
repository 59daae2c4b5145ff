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
	"path"
	"strings"

	"github.com/ifttt-lint/ifttt/internal/directive"
)

// splitTarget splits a ThenChange target ("path", "path#label", or
// "#label") into its path part and optional label.
func splitTarget(target string) (pathPart, label string) {
	if idx := strings.IndexByte(target, '#'); idx >= 0 {
		return target[:idx], target[idx+1:]
	}
	return target, ""
}

// resolveTargetPath resolves the path part of a ThenChange target relative
// to the file that declared it: absolute paths are used as-is, an empty
// path part means "the pair's own file", otherwise it resolves relative to
// dirname(pairFile). This never touches the filesystem — it is a pure
// string computation over diff-style forward-slash paths.
func resolveTargetPath(pairFile, pathPart string) string {
	if pathPart == "" {
		return pairFile
	}
	if strings.HasPrefix(pathPart, "/") {
		return path.Clean(pathPart)
	}
	return path.Clean(path.Join(path.Dir(pairFile), pathPart))
}

// LabelRange is an inclusive source-line range for one named label.
type LabelRange struct {
	Start uint32
	End   uint32
}

// computeLabelRanges walks a file's directive list with a label stack,
// mapping each label name to its inclusive line range: Label pushes
// {name, startLine = line+1}; EndLabel pops the innermost open label and
// records name -> [startLine, line-1].
func computeLabelRanges(directives []directive.Directive) map[string]LabelRange {
	ranges := make(map[string]LabelRange)

	type open struct {
		name  string
		start uint32
	}
	var stack []open

	for _, d := range directives {
		switch d.Kind {
		case directive.KindLabel:
			stack = append(stack, open{name: d.Label, start: d.Line + 1})
		case directive.KindEndLabel:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			ranges[top.name] = LabelRange{Start: top.start, End: d.Line - 1}
		}
	}

	return ranges
}

// isCodeFile reports whether path's extension is outside the hard-coded
// non-code set.
func isCodeFile(p string) bool {
	switch extOf(p) {
	case "md", "markdown":
		return false
	default:
		return true
	}
}

func extOf(p string) string {
	idx := strings.LastIndexByte(p, '.')
	if idx < 0 || idx == len(p)-1 {
		return ""
	}
	return strings.ToLower(p[idx+1:])
}

// basename returns the final path component using forward-slash semantics,
// matching the path convention diffs and ThenChange targets use.
func basename(p string) string {
	return path.Base(p)
}
