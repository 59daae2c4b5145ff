// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyntaxForExtension(t *testing.T) {
	assert.Equal(t, hashSyntax, syntaxForExtension("py"))
	assert.Equal(t, cLikeSyntax, syntaxForExtension("go"))
	assert.Equal(t, cLikeSyntax, syntaxForExtension("unknownext"))
}

func TestExtensionOf(t *testing.T) {
	assert.Equal(t, "go", extensionOf("foo/bar.GO"))
	assert.Equal(t, "", extensionOf("Makefile"))
	assert.Equal(t, "", extensionOf("foo/bar."))
}

func TestExtractCommentLines_LineComments(t *testing.T) {
	src := []byte("package p\n// LINT.IfChange\nfunc F() {}\n// LINT.ThenChange(\"x.go\")\n")
	lines := extractCommentLines(src, cLikeSyntax)

	assert.Len(t, lines, 2)
	assert.Equal(t, uint32(2), lines[0].Line)
	assert.Equal(t, " LINT.IfChange", lines[0].Text)
	assert.Equal(t, uint32(4), lines[1].Line)
	assert.Equal(t, " LINT.ThenChange(\"x.go\")", lines[1].Text)
}

func TestExtractCommentLines_BlockComment(t *testing.T) {
	src := []byte("/* LINT.IfChange\n   more text\nLINT.EndLabel */\n")
	lines := extractCommentLines(src, cLikeSyntax)

	assert.Len(t, lines, 3)
	assert.Equal(t, " LINT.IfChange", lines[0].Text)
	assert.Equal(t, "   more text", lines[1].Text)
	assert.Equal(t, "LINT.EndLabel ", lines[2].Text)
}

func TestExtractCommentLines_HashSyntaxHasNoBlockForm(t *testing.T) {
	src := []byte("# LINT.IfChange\nx = 1\n# LINT.ThenChange(\"y.py\")\n")
	lines := extractCommentLines(src, hashSyntax)

	assert.Len(t, lines, 2)
	assert.Equal(t, uint32(1), lines[0].Line)
	assert.Equal(t, uint32(3), lines[1].Line)
}

func TestExtractCommentLines_UnclosedBlockCommentStillEmitsFinalLine(t *testing.T) {
	src := []byte("/* LINT.IfChange\ndangling")
	lines := extractCommentLines(src, cLikeSyntax)

	assert.Len(t, lines, 2)
	assert.Equal(t, "dangling", lines[1].Text)
}

func TestExtractCommentLines_NoComments(t *testing.T) {
	src := []byte("package p\nfunc F() {}\n")
	lines := extractCommentLines(src, cLikeSyntax)
	assert.Empty(t, lines)
}
