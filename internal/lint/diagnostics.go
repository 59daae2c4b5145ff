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
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// diagnostic is one reportable line. File/Line order diagnostics for
// deterministic output regardless of inter-file scheduling order.
type diagnostic struct {
	File    string
	Line    uint32
	Message string
}

func (d diagnostic) String() string {
	return "[ifttt] " + d.Message
}

func sortDiagnostics(diags []diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].File != diags[j].File {
			return diags[i].File < diags[j].File
		}
		return diags[i].Line < diags[j].Line
	})
}

// ifContext renders the violation-context string used at the head of most
// diagnostics: "<file>#<label>:<line>" if labeled, else "<file>:<line>".
func ifContext(file string, label string, line uint32) string {
	if label != "" {
		return fmt.Sprintf("%s#%s:%d", file, label, line)
	}
	return fmt.Sprintf("%s:%d", file, line)
}

func duplicateLabelDiagnostic(path string, line uint32, name string) diagnostic {
	return diagnostic{
		File:    path,
		Line:    line,
		Message: fmt.Sprintf("%s:%d -> duplicate directive label '%s'", path, line, name),
	}
}

func orphanThenDiagnostic(o orphanThen) diagnostic {
	return diagnostic{
		File:    o.File,
		Line:    o.Line,
		Message: fmt.Sprintf("%s:%d -> unexpected ThenChange '%s' without preceding IfChange", o.File, o.Line, o.Target),
	}
}

func orphanIfDiagnostic(o orphanIf) diagnostic {
	label := o.Label
	suffix := ""
	if label != "" {
		suffix = "(" + label + ")"
	}
	return diagnostic{
		File:    o.File,
		Line:    o.Line,
		Message: fmt.Sprintf("%s:%d -> missing ThenChange after IfChange%s", o.File, o.Line, suffix),
	}
}

func targetNotFoundDiagnostic(ctx diagnosticContext, target string, thenLine uint32, targetFile string) diagnostic {
	return diagnostic{
		File:    ctx.file,
		Line:    ctx.line,
		Message: fmt.Sprintf("%s -> ThenChange '%s' (line %d): target file '%s' not found.", ctx.text, target, thenLine, targetFile),
	}
}

func targetNotChangedDiagnostic(ctx diagnosticContext, target string, thenLine uint32, targetFile string) diagnostic {
	return diagnostic{
		File:    ctx.file,
		Line:    ctx.line,
		Message: fmt.Sprintf("%s -> ThenChange '%s' (line %d): target file '%s' not changed.", ctx.text, target, thenLine, targetFile),
	}
}

func labelNotFoundDiagnostic(ctx diagnosticContext, target string, thenLine uint32, targetFile, label string, available []string) diagnostic {
	list := "none"
	if len(available) > 0 {
		sorted := append([]string(nil), available...)
		sort.Strings(sorted)
		list = strings.Join(sorted, ", ")
	}
	return diagnostic{
		File: ctx.file,
		Line: ctx.line,
		Message: fmt.Sprintf("%s -> ThenChange '%s' (line %d): label '%s' not found in '%s'. Available labels: %s",
			ctx.text, target, thenLine, label, targetFile, list),
	}
}

func labelRangeEmptyDiagnostic(ctx diagnosticContext, targetFile, label string, r LabelRange, actual []uint32) diagnostic {
	return diagnostic{
		File: ctx.file,
		Line: ctx.line,
		Message: fmt.Sprintf("%s -> expected changes in '%s#%s' (%d-%d), but none found. Actual changes in file: %s",
			ctx.text, targetFile, label, r.Start, r.End, formatLineList(actual)),
	}
}

func fileRangeEmptyDiagnostic(ctx diagnosticContext, targetFile string) diagnostic {
	return diagnostic{
		File:    ctx.file,
		Line:    ctx.line,
		Message: fmt.Sprintf("%s -> expected changes in '%s', but none found.", ctx.text, targetFile),
	}
}

// diagnosticContext carries both the rendered IfContext string and the
// source file/line it belongs to, so callers of the formatters above don't
// need to re-derive sort keys from the rendered string.
type diagnosticContext struct {
	text string
	file string
	line uint32
}

func formatLineList(lines []uint32) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = strconv.FormatUint(uint64(l), 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
