package directive

import "fmt"

// DuplicateLabel is one label that appears more than once among a file's
// IfChange and Label directives.
type DuplicateLabel struct {
	Path  string
	Name  string
	Lines []uint32
}

// String renders a diagnostic line matching the format the lint engine
// uses for every other violation kind.
func (d DuplicateLabel) String() string {
	return fmt.Sprintf("[ifttt] %s:%d -> duplicate directive label '%s'", d.Path, d.Lines[len(d.Lines)-1], d.Name)
}

// CheckUniqueness scans directives (all directives found in one file) for
// labels reused across more than one IfChange or Label directive. Bare
// (unlabeled) IfChange directives are exempt: only names actually given to
// LINT.IfChange('name') or LINT.Label('name') can collide.
//
// This is a non-fatal check: it returns the duplicates found, the caller
// decides how to report them and whether they affect the exit code.
func CheckUniqueness(path string, directives []Directive) []DuplicateLabel {
	lines := make(map[string][]uint32)
	var order []string

	for _, d := range directives {
		if d.Label == "" {
			continue
		}
		if (d.Kind != KindIfChange) && (d.Kind != KindLabel) {
			continue
		}
		if _, seen := lines[d.Label]; !seen {
			order = append(order, d.Label)
		}
		lines[d.Label] = append(lines[d.Label], d.Line)
	}

	var out []DuplicateLabel
	for _, name := range order {
		if ls := lines[name]; len(ls) > 1 {
			out = append(out, DuplicateLabel{Path: path, Name: name, Lines: ls})
		}
	}
	return out
}
