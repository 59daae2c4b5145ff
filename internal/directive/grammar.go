package directive

import (
	"regexp"
	"strings"
)

// Grammar regexes. Go's regexp package is RE2 and has no lookahead, so the
// spec's "IfChange\b(?!\s*\()" bare-vs-labeled disambiguation is done by
// hand below rather than encoded in a single pattern.
var (
	reIfHead      = regexp.MustCompile(`^LINT\.IfChange\b`)
	reIfLabelArgs = regexp.MustCompile(`^\(\s*['"]([^'"]+)['"]\s*\)`)

	reThenHead      = regexp.MustCompile(`^LINT\.ThenChange\b`)
	reThenSingleArg = regexp.MustCompile(`^\(\s*['"]([^'"]+)['"]\s*\)`)
	reThenArrayArg  = regexp.MustCompile(`^\(\s*\[([^\]]*)\]\s*,?\s*\)`)
	reQuotedItem    = regexp.MustCompile(`['"]([^'"]+)['"]`)

	reLabelHead = regexp.MustCompile(`^LINT\.Label\b`)
	reLabelArgs = regexp.MustCompile(`^\(\s*['"]([^'"]+)['"]\s*\)`)

	reEndLabelHead = regexp.MustCompile(`^LINT\.EndLabel\b`)

	reAnyLintToken = regexp.MustCompile(`^LINT\.([A-Za-z_][A-Za-z0-9_]*)`)
)

// scanDirectives walks lines (the flat, in-order list of comment interior
// text produced by extractCommentLines) and emits one Directive per
// recognized token. path is used only to annotate MalformedError.
func scanDirectives(path string, lines []commentLine) ([]Directive, error) {
	var out []Directive

	for idx := 0; idx < len(lines); {
		trimmed := strings.TrimLeft(lines[idx].Text, " \t")
		lineNo := lines[idx].Line

		switch {
		case reIfHead.MatchString(trimmed):
			rest := trimmed[len(reIfHead.FindString(trimmed)):]
			restTrim := strings.TrimLeft(rest, " \t")
			if strings.HasPrefix(restTrim, "(") {
				m := reIfLabelArgs.FindStringSubmatch(restTrim)
				if m == nil {
					return nil, &MalformedError{Path: path, Line: lineNo, Text: trimmed}
				}
				out = append(out, Directive{Kind: KindIfChange, Line: lineNo, Label: m[1]})
			} else {
				out = append(out, Directive{Kind: KindIfChange, Line: lineNo})
			}
			idx++

		case reThenHead.MatchString(trimmed):
			rest := trimmed[len(reThenHead.FindString(trimmed)):]
			targets, consumed, err := scanThenChangeArgs(path, lineNo, lines, idx, rest)
			if err != nil {
				return nil, err
			}
			for _, t := range targets {
				out = append(out, Directive{Kind: KindThenChange, Line: lineNo, Target: t})
			}
			idx = consumed

		case reLabelHead.MatchString(trimmed):
			rest := trimmed[len(reLabelHead.FindString(trimmed)):]
			restTrim := strings.TrimLeft(rest, " \t")
			m := reLabelArgs.FindStringSubmatch(restTrim)
			if m == nil {
				return nil, &MalformedError{Path: path, Line: lineNo, Text: trimmed}
			}
			out = append(out, Directive{Kind: KindLabel, Line: lineNo, Label: m[1]})
			idx++

		case reEndLabelHead.MatchString(trimmed):
			out = append(out, Directive{Kind: KindEndLabel, Line: lineNo})
			idx++

		case reAnyLintToken.MatchString(trimmed):
			return nil, &MalformedError{Path: path, Line: lineNo, Text: trimmed}

		default:
			idx++
		}
	}

	return out, nil
}

// scanThenChangeArgs resolves the argument list of one LINT.ThenChange
// token, which may be a single quoted target, an array of quoted targets,
// or (per spec.md §4.2) an unrecognized form that must be joined across
// subsequent comment lines until a ')' is found. rest is the text on the
// directive's own line, immediately after "LINT.ThenChange". Returns the
// resolved target strings and the index of the first unconsumed line.
func scanThenChangeArgs(path string, startLine uint32, lines []commentLine, startIdx int, rest string) ([]string, int, error) {
	buf := strings.TrimLeft(rest, " \t")
	idx := startIdx + 1

	for {
		if m := reThenSingleArg.FindStringSubmatch(buf); m != nil {
			return []string{m[1]}, idx, nil
		}
		if m := reThenArrayArg.FindStringSubmatch(buf); m != nil {
			items := reQuotedItem.FindAllStringSubmatch(m[1], -1)
			targets := make([]string, 0, len(items))
			for _, it := range items {
				targets = append(targets, it[1])
			}
			return targets, idx, nil
		}

		if idx >= len(lines) {
			return nil, 0, &MalformedError{Path: path, Line: startLine, Text: "LINT.ThenChange" + rest}
		}

		buf = buf + "\n" + lines[idx].Text
		idx++
	}
}
