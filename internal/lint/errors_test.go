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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngineError_UnwrapsToSentinel(t *testing.T) {
	err := &EngineError{Path: "x.go", Line: 3, Err: ErrFatalIO}
	assert.True(t, errors.Is(err, ErrFatalIO))
}

func TestEngineError_ErrorMessageFormat(t *testing.T) {
	assert.Equal(t, "boom", (&EngineError{Err: errors.New("boom")}).Error())
	assert.Equal(t, "x.go: boom", (&EngineError{Path: "x.go", Err: errors.New("boom")}).Error())
	assert.Equal(t, "x.go:3: boom", (&EngineError{Path: "x.go", Line: 3, Err: errors.New("boom")}).Error())
}
