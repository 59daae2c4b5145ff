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
	"regexp"
	"strings"
)

// IgnorePattern is one compiled entry from the ignore list: "<glob>" or
// "<glob>#<label>". Glob supports "*" (any run) and "?" (single char);
// every other character is a literal, matched as an anchored full string.
type IgnorePattern struct {
	glob     string
	label    string
	hasLabel bool
	re       *regexp.Regexp
}

// ParseIgnoreList compiles a raw ignore list into IgnorePatterns.
func ParseIgnoreList(entries []string) []IgnorePattern {
	out := make([]IgnorePattern, 0, len(entries))
	for _, e := range entries {
		out = append(out, parseIgnoreEntry(e))
	}
	return out
}

func parseIgnoreEntry(entry string) IgnorePattern {
	glob := entry
	label := ""
	hasLabel := false
	if idx := strings.IndexByte(entry, '#'); idx >= 0 {
		glob = entry[:idx]
		label = entry[idx+1:]
		hasLabel = true
	}
	return IgnorePattern{
		glob:     glob,
		label:    label,
		hasLabel: hasLabel,
		re:       globToRegexp(glob),
	}
}

// globToRegexp translates a glob into an anchored regexp; every character
// other than "*" and "?" is escaped literally.
func globToRegexp(glob string) *regexp.Regexp {
	var b strings.Builder
	b.WriteByte('^')
	for _, r := range glob {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteByte('$')
	return regexp.MustCompile(b.String())
}

// matchesUnlabeled reports whether p (which must carry no label) matches
// candidate — a path, a basename, or a raw ThenChange target string —
// as a full anchored glob match.
func (p IgnorePattern) matchesUnlabeled(candidate string) bool {
	if p.hasLabel {
		return false
	}
	return p.re.MatchString(candidate)
}

// matchesLabeled reports whether p (which must carry a label) matches
// basename via its glob and label exactly.
func (p IgnorePattern) matchesLabeled(basename, label string) bool {
	if !p.hasLabel {
		return false
	}
	return p.re.MatchString(basename) && p.label == label
}

// matchesPathOrBasename reports whether any unlabeled pattern matches
// either the full path or its basename (Phase A filtering, spec §4.5.3).
func matchesPathOrBasename(patterns []IgnorePattern, fullPath, basename string) bool {
	for _, p := range patterns {
		if p.matchesUnlabeled(fullPath) || p.matchesUnlabeled(basename) {
			return true
		}
	}
	return false
}

// matchesTarget reports whether any unlabeled pattern matches a raw
// ThenChange target string exactly as written.
func matchesTarget(patterns []IgnorePattern, target string) bool {
	for _, p := range patterns {
		if p.matchesUnlabeled(target) {
			return true
		}
	}
	return false
}

// matchesLabeledContext reports whether any labeled pattern matches
// basename(file)#label.
func matchesLabeledContext(patterns []IgnorePattern, basename, label string) bool {
	for _, p := range patterns {
		if p.matchesLabeled(basename, label) {
			return true
		}
	}
	return false
}
