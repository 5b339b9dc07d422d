// Unit tests for the Comparison and Export consistency rules.
//
// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package draftable_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/diffeo/go-draftable/draftable"
)

func boolPtr(b bool) *bool { return &b }

func timePtr(t time.Time) *time.Time { return &t }

// validComparison returns a minimal consistent comparison that is not
// ready yet.  Tests mutate a copy into the state they need.
func validComparison() draftable.Comparison {
	return draftable.Comparison{
		Identifier: "JQtaguVd",
		Left: draftable.Side{
			FileType:  "pdf",
			SourceURL: "https://example.com/left.pdf",
		},
		Right:        draftable.Side{FileType: "docx"},
		CreationTime: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestComparisonValidate(t *testing.T) {
	finished := time.Date(2018, 1, 1, 0, 1, 0, 0, time.UTC)
	tests := []struct {
		name   string
		mutate func(*draftable.Comparison)
		err    string
	}{
		{"pending", func(c *draftable.Comparison) {}, ""},
		{"ready", func(c *draftable.Comparison) {
			c.Ready = true
			c.ReadyTime = timePtr(finished)
			c.Failed = boolPtr(false)
		}, ""},
		{"failed", func(c *draftable.Comparison) {
			c.Ready = true
			c.ReadyTime = timePtr(finished)
			c.Failed = boolPtr(true)
			c.ErrorMessage = "could not retrieve the left document"
		}, ""},
		{"no identifier", func(c *draftable.Comparison) {
			c.Identifier = ""
		}, "Identifier: cannot be blank."},
		{"no creation time", func(c *draftable.Comparison) {
			c.CreationTime = time.Time{}
		}, "CreationTime: cannot be blank."},
		{"side without file type", func(c *draftable.Comparison) {
			c.Left.FileType = ""
		}, "Left: (FileType: cannot be blank.)."},
		{"pending with ready time", func(c *draftable.Comparison) {
			c.ReadyTime = timePtr(finished)
		}, "ReadyTime: must be absent until ready."},
		{"pending with failed flag", func(c *draftable.Comparison) {
			c.Failed = boolPtr(false)
		}, "Failed: must be absent until ready."},
		{"pending with error message", func(c *draftable.Comparison) {
			c.ErrorMessage = "too soon"
		}, "ErrorMessage: must be absent unless failed."},
		{"ready missing both", func(c *draftable.Comparison) {
			c.Ready = true
		}, "Failed: must be present when ready; ReadyTime: must be present when ready."},
		{"ready missing failed flag", func(c *draftable.Comparison) {
			c.Ready = true
			c.ReadyTime = timePtr(finished)
		}, "Failed: must be present when ready."},
		{"failed without message", func(c *draftable.Comparison) {
			c.Ready = true
			c.ReadyTime = timePtr(finished)
			c.Failed = boolPtr(true)
		}, "ErrorMessage: must be present when failed."},
		{"succeeded with message", func(c *draftable.Comparison) {
			c.Ready = true
			c.ReadyTime = timePtr(finished)
			c.Failed = boolPtr(false)
			c.ErrorMessage = "but nothing went wrong"
		}, "ErrorMessage: must be absent unless failed."},
	}
	for _, test := range tests {
		t.Run(test.name, func(tt *testing.T) {
			c := validComparison()
			test.mutate(&c)
			err := c.Validate()
			if test.err == "" {
				assert.NoError(tt, err)
			} else {
				assert.EqualError(tt, err, test.err)
			}
		})
	}
}

func TestComparisonHasFailed(t *testing.T) {
	c := validComparison()
	assert.False(t, c.HasFailed())
	c.Failed = boolPtr(false)
	assert.False(t, c.HasFailed())
	c.Failed = boolPtr(true)
	assert.True(t, c.HasFailed())
}

// validExport returns a minimal consistent export that is not ready
// yet.
func validExport() draftable.Export {
	return draftable.Export{
		Identifier: "e9i7extJ",
		Comparison: "JQtaguVd",
		Kind:       draftable.CombinedExport,
	}
}

func TestExportValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*draftable.Export)
		err    string
	}{
		{"pending", func(e *draftable.Export) {}, ""},
		{"ready", func(e *draftable.Export) {
			e.Ready = true
			e.Failed = boolPtr(false)
			e.URL = "https://example.com/export.pdf"
		}, ""},
		{"failed", func(e *draftable.Export) {
			e.Ready = true
			e.Failed = boolPtr(true)
			e.ErrorMessage = "the comparison has no page 7"
		}, ""},
		{"no identifier", func(e *draftable.Export) {
			e.Identifier = ""
		}, "Identifier: cannot be blank."},
		{"no comparison", func(e *draftable.Export) {
			e.Comparison = ""
		}, "Comparison: cannot be blank."},
		{"bad kind", func(e *draftable.Export) {
			e.Kind = draftable.ExportKind(17)
		}, "Kind: must be a valid value."},
		{"pending with URL", func(e *draftable.Export) {
			e.URL = "https://example.com/export.pdf"
		}, "URL: must be absent until ready and successful."},
		{"ready without URL", func(e *draftable.Export) {
			e.Ready = true
			e.Failed = boolPtr(false)
		}, "URL: must be present when ready."},
		{"failed with URL", func(e *draftable.Export) {
			e.Ready = true
			e.Failed = boolPtr(true)
			e.ErrorMessage = "broken"
			e.URL = "https://example.com/export.pdf"
		}, "URL: must be absent until ready and successful."},
		{"pending with failed flag", func(e *draftable.Export) {
			e.Failed = boolPtr(false)
		}, "Failed: must be absent until ready."},
		{"failed without message", func(e *draftable.Export) {
			e.Ready = true
			e.Failed = boolPtr(true)
		}, "ErrorMessage: must be present when failed."},
	}
	for _, test := range tests {
		t.Run(test.name, func(tt *testing.T) {
			e := validExport()
			test.mutate(&e)
			err := e.Validate()
			if test.err == "" {
				assert.NoError(tt, err)
			} else {
				assert.EqualError(tt, err, test.err)
			}
		})
	}
}

func TestExportHasFailed(t *testing.T) {
	e := validExport()
	assert.False(t, e.HasFailed())
	e.Failed = boolPtr(true)
	assert.True(t, e.HasFailed())
}
