package directive

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotFound is returned by Extract when path does not exist on disk. The
// lint engine treats this specially during target resolution (spec's
// Phase C), where it becomes a target-not-found diagnostic, and in scan
// mode, where the file is skipped; for a changed file in check mode it is
// an ordinary fatal error.
var ErrNotFound = errors.New("directive: source file not found")

// Extract reads path from disk, selects a comment syntax by its extension,
// and scans its comments for LINT.* directives.
//
// A directory yields (nil, nil): the caller treats it as contributing no
// directives, per the directory-as-file rule. A missing path yields
// ErrNotFound. Any other read failure is wrapped and returned as-is; all
// three cases are distinguishable via errors.Is/os.IsNotExist by the caller.
//
// A recognized-but-unparseable directive token returns a *MalformedError,
// which callers must treat as fatal.
func Extract(path string) ([]Directive, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("directive: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("directive: read %s: %w", path, err)
	}

	syn := syntaxForExtension(extensionOf(path))
	lines := extractCommentLines(src, syn)

	directives, err := scanDirectives(path, lines)
	if err != nil {
		return nil, err
	}
	return directives, nil
}
