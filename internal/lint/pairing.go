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

import "github.com/ifttt-lint/ifttt/internal/directive"

// pair binds one IfChange to one ThenChange in the same file.
type pair struct {
	File     string
	IfLine   uint32
	IfLabel  string // "" if the IfChange carried no label
	Target   string
	ThenLine uint32
}

// orphanThen is a ThenChange with no preceding IfChange.
type orphanThen struct {
	File   string
	Line   uint32
	Target string
}

// orphanIf is an IfChange never followed by a ThenChange before EOF.
type orphanIf struct {
	File  string
	Line  uint32
	Label string // "" if unlabeled
}

// pairResult is the outcome of pairing one file's directive list.
type pairResult struct {
	Pairs       []pair
	OrphanThens []orphanThen
	OrphanIfs   []orphanIf
}

// pairDirectives runs the single-pass IfChange/ThenChange state machine:
// the first ThenChange after an IfChange clears the orphan flag, but every
// ThenChange seen while that IfChange is still open also forms its own
// pair. A later IfChange simply replaces currentIf without retroactively
// flagging the previous one as orphaned — only EOF does that check.
func pairDirectives(file string, directives []directive.Directive) pairResult {
	var res pairResult
	var currentIf *directive.Directive
	sawThen := false

	for i := range directives {
		d := directives[i]
		switch d.Kind {
		case directive.KindIfChange:
			cp := d
			currentIf = &cp
			sawThen = false

		case directive.KindThenChange:
			if currentIf == nil {
				res.OrphanThens = append(res.OrphanThens, orphanThen{File: file, Line: d.Line, Target: d.Target})
				continue
			}
			res.Pairs = append(res.Pairs, pair{
				File:     file,
				IfLine:   currentIf.Line,
				IfLabel:  currentIf.Label,
				Target:   d.Target,
				ThenLine: d.Line,
			})
			sawThen = true
		}
	}

	if currentIf != nil && !sawThen {
		res.OrphanIfs = append(res.OrphanIfs, orphanIf{File: file, Line: currentIf.Line, Label: currentIf.Label})
	}

	return res
}
