package directive

import "strings"

// commentSyntax describes how one language's comments are delimited.
// blockStart/blockEnd are empty when the language has no block-comment form.
type commentSyntax struct {
	lineMarker string
	blockStart string
	blockEnd   string
}

var (
	cLikeSyntax = commentSyntax{lineMarker: "//", blockStart: "/*", blockEnd: "*/"}
	hashSyntax  = commentSyntax{lineMarker: "#"}
)

// extensionSyntaxTable maps file extensions (without the leading dot) to
// their comment syntax, per spec.md §4.2.
var extensionSyntaxTable = map[string]commentSyntax{
	"ts": cLikeSyntax, "js": cLikeSyntax, "java": cLikeSyntax,
	"c": cLikeSyntax, "cc": cLikeSyntax, "cpp": cLikeSyntax,
	"h": cLikeSyntax, "hpp": cLikeSyntax, "cs": cLikeSyntax,
	"go": cLikeSyntax, "rs": cLikeSyntax, "swift": cLikeSyntax,
	"kt": cLikeSyntax, "kts": cLikeSyntax, "scala": cLikeSyntax, "php": cLikeSyntax,

	"py": hashSyntax, "rb": hashSyntax, "sh": hashSyntax,
	"bash": hashSyntax, "zsh": hashSyntax, "bzl": hashSyntax,
}

// syntaxForExtension returns the comment syntax for ext (no leading dot,
// case-sensitive as produced by callers). Unrecognized extensions fall back
// to the C-like "//" and "/* */" family, except ".bzl" which is already
// covered above and never reaches this fallback.
func syntaxForExtension(ext string) commentSyntax {
	if syn, ok := extensionSyntaxTable[ext]; ok {
		return syn
	}
	return cLikeSyntax
}

// extensionOf returns the extension (without the dot) of path, lowercased.
func extensionOf(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 || idx == len(path)-1 {
		return ""
	}
	return strings.ToLower(path[idx+1:])
}

// commentLine is one physical source line's worth of comment interior text,
// tagged with its 1-based source line number. A multi-line block comment
// contributes one commentLine per physical line it spans; a run of
// consecutive line comments contributes one commentLine per line.
type commentLine struct {
	Line uint32
	Text string
}

// extractCommentLines scans src and returns every comment's interior text,
// split into physical lines, in source order.
func extractCommentLines(src []byte, syn commentSyntax) []commentLine {
	var out []commentLine
	n := len(src)
	line := uint32(1)
	i := 0

	for i < n {
		switch {
		case syn.blockStart != "" && hasPrefixAt(src, i, syn.blockStart):
			i += len(syn.blockStart)
			startLine := line
			var buf strings.Builder
			for i < n {
				if hasPrefixAt(src, i, syn.blockEnd) {
					i += len(syn.blockEnd)
					break
				}
				if src[i] == '\n' {
					out = append(out, commentLine{Line: startLine, Text: buf.String()})
					buf.Reset()
					line++
					startLine = line
					i++
					continue
				}
				buf.WriteByte(src[i])
				i++
			}
			out = append(out, commentLine{Line: startLine, Text: buf.String()})

		case syn.lineMarker != "" && hasPrefixAt(src, i, syn.lineMarker):
			i += len(syn.lineMarker)
			startLine := line
			var buf strings.Builder
			for i < n && src[i] != '\n' {
				buf.WriteByte(src[i])
				i++
			}
			out = append(out, commentLine{Line: startLine, Text: buf.String()})

		case src[i] == '\n':
			line++
			i++

		default:
			i++
		}
	}

	return out
}

func hasPrefixAt(src []byte, i int, prefix string) bool {
	if i+len(prefix) > len(src) {
		return false
	}
	return string(src[i:i+len(prefix)]) == prefix
}
