// Package directive implements the in-source comment grammar this tool
// reads: LINT.IfChange / LINT.ThenChange / LINT.Label / LINT.EndLabel.
//
// # Description
//
// Extract reads one file's bytes, selects a comment syntax for its
// extension, pulls out the interior text of every comment, and scans that
// text for directive tokens. Uniqueness then checks the resulting directive
// list for duplicate labels within the file.
package directive

import "fmt"

// Kind identifies which of the four directive variants a Directive is.
type Kind int

const (
	KindIfChange Kind = iota
	KindThenChange
	KindLabel
	KindEndLabel
)

func (k Kind) String() string {
	switch k {
	case KindIfChange:
		return "IfChange"
	case KindThenChange:
		return "ThenChange"
	case KindLabel:
		return "Label"
	case KindEndLabel:
		return "EndLabel"
	default:
		return "Unknown"
	}
}

// Directive is one LINT.* token found inside a comment, at a 1-based source
// line number.
type Directive struct {
	Kind  Kind
	Line  uint32
	Label string // IfChange (optional), Label (required)
	Target string // ThenChange only
}

// String renders a Directive for debugging and test failure messages.
func (d Directive) String() string {
	switch d.Kind {
	case KindIfChange:
		if d.Label != "" {
			return fmt.Sprintf("IfChange(%q)@%d", d.Label, d.Line)
		}
		return fmt.Sprintf("IfChange@%d", d.Line)
	case KindThenChange:
		return fmt.Sprintf("ThenChange(%q)@%d", d.Target, d.Line)
	case KindLabel:
		return fmt.Sprintf("Label(%q)@%d", d.Label, d.Line)
	case KindEndLabel:
		return fmt.Sprintf("EndLabel@%d", d.Line)
	default:
		return fmt.Sprintf("Unknown@%d", d.Line)
	}
}

// MalformedError reports a directive that could not be parsed: it started
// with "LINT." in a recognized or unrecognized form but didn't match any of
// the four known kinds, or a ThenChange/IfChange/Label call that was never
// closed. Malformed directives are fatal for the invocation (spec.md §4.2).
type MalformedError struct {
	Path string
	Line uint32
	Text string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s:%d: malformed LINT directive: %s", e.Path, e.Line, e.Text)
}
