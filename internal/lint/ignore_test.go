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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIgnoreEntry_Unlabeled(t *testing.T) {
	p := parseIgnoreEntry("vendor/*")
	assert.False(t, p.hasLabel)
	assert.True(t, p.matchesUnlabeled("vendor/foo.go"))
	assert.False(t, p.matchesUnlabeled("src/foo.go"))
}

func TestParseIgnoreEntry_Labeled(t *testing.T) {
	p := parseIgnoreEntry("schema.go#v1")
	assert.True(t, p.hasLabel)
	assert.True(t, p.matchesLabeled("schema.go", "v1"))
	assert.False(t, p.matchesLabeled("schema.go", "v2"))
	assert.False(t, p.matchesUnlabeled("schema.go"), "a labeled pattern never matches unlabeled")
}

func TestGlobToRegexp_QuestionMarkMatchesSingleChar(t *testing.T) {
	p := parseIgnoreEntry("file?.go")
	assert.True(t, p.matchesUnlabeled("file1.go"))
	assert.False(t, p.matchesUnlabeled("file12.go"))
}

func TestGlobToRegexp_LiteralDotEscaped(t *testing.T) {
	p := parseIgnoreEntry("a.go")
	assert.True(t, p.matchesUnlabeled("a.go"))
	assert.False(t, p.matchesUnlabeled("axgo"), "literal '.' must not behave as regex wildcard")
}

func TestMatchesPathOrBasename(t *testing.T) {
	patterns := ParseIgnoreList([]string{"*.generated.go"})
	assert.True(t, matchesPathOrBasename(patterns, "internal/foo.generated.go", "foo.generated.go"))
	assert.False(t, matchesPathOrBasename(patterns, "internal/foo.go", "foo.go"))
}

func TestMatchesTarget(t *testing.T) {
	patterns := ParseIgnoreList([]string{"docs/*"})
	assert.True(t, matchesTarget(patterns, "docs/readme.md"))
	assert.False(t, matchesTarget(patterns, "src/readme.md"))
}

func TestMatchesLabeledContext(t *testing.T) {
	patterns := ParseIgnoreList([]string{"schema.go#legacy"})
	assert.True(t, matchesLabeledContext(patterns, "schema.go", "legacy"))
	assert.False(t, matchesLabeledContext(patterns, "schema.go", "current"))
}
