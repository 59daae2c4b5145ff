// Package udiff parses unified diffs into per-file changed-line sets.
//
// # Description
//
// This package turns a raw unified-diff string into a map from resolved file
// path to the set of line numbers added and removed. It delegates hunk
// walking to sourcegraph/go-diff after pre-filtering lines that would
// otherwise confuse that reader (body text that merely looks like a file
// header), and after go-diff hands back structured hunks, it re-derives the
// file path itself: stripping quotes, decoding C-style octal escapes, and
// stripping the leading "a/"-style prefix, none of which go-diff does for
// the caller.
//
// # Thread Safety
//
// Parse holds no package-level state and is safe to call concurrently.
package udiff

import (
	"bufio"
	"fmt"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"
)

// FileChanges records which line numbers changed in one file.
//
// Added line numbers are positions in the new file; Removed line numbers are
// positions in the old file. Context lines advance both counters without
// being recorded in either set.
type FileChanges struct {
	Path    string
	Added   map[uint32]struct{}
	Removed map[uint32]struct{}
}

// newFileChanges returns an empty FileChanges for path.
func newFileChanges(path string) *FileChanges {
	return &FileChanges{
		Path:    path,
		Added:   make(map[uint32]struct{}),
		Removed: make(map[uint32]struct{}),
	}
}

// HasChange reports whether line was added or removed in this file.
func (f *FileChanges) HasChange(line uint32) bool {
	if f == nil {
		return false
	}
	_, added := f.Added[line]
	if added {
		return true
	}
	_, removed := f.Removed[line]
	return removed
}

// SortedAll returns every changed line number (added ∪ removed), ascending,
// deduplicated. The lint engine uses it for label-range checks and for
// diagnostic formatting, where presentation order must be deterministic.
func (f *FileChanges) SortedAll() []uint32 {
	seen := make(map[uint32]struct{}, len(f.Added)+len(f.Removed))
	for l := range f.Added {
		seen[l] = struct{}{}
	}
	for l := range f.Removed {
		seen[l] = struct{}{}
	}
	out := make([]uint32, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sortUint32s(out)
	return out
}

func sortUint32s(s []uint32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// ChangeSet maps a resolved file path to its FileChanges, preserving the
// order in which paths were first seen in the diff.
type ChangeSet struct {
	order []string
	byKey map[string]*FileChanges
}

// NewChangeSet returns an empty ChangeSet.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{byKey: make(map[string]*FileChanges)}
}

// Get returns the FileChanges for path, or nil if the path never appeared.
func (c *ChangeSet) Get(path string) *FileChanges {
	return c.byKey[path]
}

// Paths returns all paths in first-seen order.
func (c *ChangeSet) Paths() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *ChangeSet) getOrCreate(path string) *FileChanges {
	if fc, ok := c.byKey[path]; ok {
		return fc
	}
	fc := newFileChanges(path)
	c.byKey[path] = fc
	c.order = append(c.order, path)
	return fc
}

// Parse converts a unified-diff string into a ChangeSet.
//
// Pure deletions (files whose "+++" target is /dev/null) are skipped
// entirely: spec.md §4.1 treats a deleted file as having nothing a
// ThenChange could ever target.
//
// Malformed unified-diff structure (a hunk header go-diff cannot parse, an
// unterminated hunk, etc.) is a fatal error. Path-decoding anomalies —
// un-decodable octal escapes, stray quoting — are best-effort and never
// fatal; Parse falls back to the raw path text it was given.
func Parse(diffText string) (*ChangeSet, error) {
	filtered := prefilter(diffText)

	reader := godiff.NewMultiFileDiffReader(strings.NewReader(filtered))
	fileDiffs, err := reader.ReadAllFiles()
	if err != nil {
		return nil, fmt.Errorf("udiff: parsing unified diff: %w", err)
	}

	cs := NewChangeSet()
	for _, fd := range fileDiffs {
		if fd.NewName == "/dev/null" {
			continue
		}

		rawPath := fd.NewName
		if rawPath == "" || rawPath == "/dev/null" {
			rawPath = fd.OrigName
		}
		path := resolvePathText(rawPath)
		if path == "" {
			continue
		}

		fc := cs.getOrCreate(path)
		for _, hunk := range fd.Hunks {
			walkHunk(hunk, fc)
		}
	}

	return cs, nil
}

// prefilter drops lines that would otherwise be misread as diff structure:
//   - version-control "diff " headers, which go-diff does not need and some
//     generators omit anyway.
//   - "--- "/"+++ " lines that are not real file headers, i.e. don't
//     continue with a one-character prefix and "/", nor "/dev/null". These
//     show up when a patched file's own body contains a Markdown horizontal
//     rule or similar "---" text.
func prefilter(diffText string) string {
	var out strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(diffText))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "diff ") {
			continue
		}
		if strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "+++ ") {
			rest := line[4:]
			if !looksLikeFileHeaderPath(rest) {
				continue
			}
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.String()
}

// looksLikeFileHeaderPath reports whether rest (the text following "--- "
// or "+++ ") looks like a real diff path: /dev/null, or any single
// character followed by "/".
func looksLikeFileHeaderPath(rest string) bool {
	if strings.HasPrefix(rest, "/dev/null") {
		return true
	}
	unquoted := strings.TrimPrefix(strings.TrimPrefix(rest, "\""), "'")
	r := []rune(unquoted)
	return len(r) >= 2 && r[1] == '/'
}

// walkHunk tags each change line in hunk as added, removed, or context,
// advancing the old/new line counters exactly as spec.md §4.1 describes.
func walkHunk(hunk *godiff.Hunk, fc *FileChanges) {
	oldLine := uint32(hunk.OrigStartLine)
	newLine := uint32(hunk.NewStartLine)

	body := string(hunk.Body)
	lines := strings.Split(body, "\n")
	// A trailing split artifact from the final "\n" in Body is an empty
	// string with no tag; drop it rather than miscounting it as context.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for _, line := range lines {
		if line == "" {
			oldLine++
			newLine++
			continue
		}
		switch line[0] {
		case '+':
			fc.Added[newLine] = struct{}{}
			newLine++
		case '-':
			fc.Removed[oldLine] = struct{}{}
			oldLine++
		default:
			oldLine++
			newLine++
		}
	}
}
