// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package draftable_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diffeo/go-draftable/draftable"
)

func TestGenerateIdentifier(t *testing.T) {
	letters := regexp.MustCompile(`^[a-zA-Z]{12}$`)
	seen := make(map[string]bool)
	for i := 0; i < 16; i++ {
		id := draftable.GenerateIdentifier()
		assert.Regexp(t, letters, id)
		assert.NoError(t, draftable.ValidateIdentifier(id))
		assert.False(t, seen[id], "duplicate identifier %q", id)
		seen[id] = true
	}
}
