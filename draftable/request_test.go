// Unit tests for request.go.
//
// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package draftable_test

import (
	"io/ioutil"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"

	"github.com/diffeo/go-draftable/draftable"
)

func TestSideFromURL(t *testing.T) {
	side, err := draftable.SideFromURL("https://example.com/left.pdf", "pdf")
	if assert.NoError(t, err) {
		assert.Equal(t, "https://example.com/left.pdf", side.SourceURL())
		assert.Equal(t, "pdf", side.FileType())
		assert.Equal(t, "", side.DisplayName())
		assert.False(t, side.HasContent())
		assert.NoError(t, side.Validate())
	}

	side, err = draftable.SideFromURL("https://example.com/left.pdf", "PDF")
	if assert.NoError(t, err) {
		assert.Equal(t, "pdf", side.FileType())
	}

	_, err = draftable.SideFromURL("https://example.com/virus.exe", "exe")
	if assert.Error(t, err) {
		assert.IsType(t, draftable.ErrInvalidArgument{}, err)
	}

	_, err = draftable.SideFromURL("://example.com/left.pdf", "pdf")
	assert.EqualError(t, err, "Invalid `sourceURL`: cannot be parsed")

	_, err = draftable.SideFromURL("", "pdf")
	assert.EqualError(t, err, "Invalid `sourceURL`: cannot be an empty string")
}

func TestSideFromFile(t *testing.T) {
	side, err := draftable.SideFromFile("/srv/docs/contract.pdf")
	if assert.NoError(t, err) {
		assert.Equal(t, "pdf", side.FileType())
		assert.Equal(t, "contract.pdf", side.Filename())
		assert.Equal(t, "", side.SourceURL())
		assert.True(t, side.HasContent())
	}

	side, err = draftable.SideFromFile("/srv/docs/CONTRACT.DOCX")
	if assert.NoError(t, err) {
		assert.Equal(t, "docx", side.FileType())
	}

	_, err = draftable.SideFromFile("/srv/docs/contract")
	assert.EqualError(t, err,
		"Invalid `path`: must have a file extension from which the file type can be inferred")

	_, err = draftable.SideFromFile("/srv/docs/archive.zip")
	if assert.Error(t, err) {
		assert.IsType(t, draftable.ErrInvalidArgument{}, err)
	}
}

func TestSideFromFileType(t *testing.T) {
	side, err := draftable.SideFromFileType("/srv/docs/renamed.bin", "pdf")
	if assert.NoError(t, err) {
		assert.Equal(t, "pdf", side.FileType())
		assert.Equal(t, "renamed.bin", side.Filename())
	}

	_, err = draftable.SideFromFileType("", "pdf")
	assert.EqualError(t, err, "Invalid `path`: cannot be an empty string")
}

func TestSideFromBytes(t *testing.T) {
	content := []byte("%PDF-1.4 pretend")
	side, err := draftable.SideFromBytes(content, "pdf")
	if assert.NoError(t, err) {
		assert.True(t, side.HasContent())
		assert.Equal(t, "file.pdf", side.Filename())
		rc, err := side.Open()
		if assert.NoError(t, err) {
			actual, err := ioutil.ReadAll(rc)
			if assert.NoError(t, err) {
				assert.Equal(t, content, actual)
			}
			assert.NoError(t, rc.Close())
		}
	}

	_, err = draftable.SideFromBytes(nil, "pdf")
	assert.EqualError(t, err, "Invalid `data`: cannot be nil")
}

func TestSideFromReader(t *testing.T) {
	side, err := draftable.SideFromReader(strings.NewReader("hello"), "docx")
	if assert.NoError(t, err) {
		assert.True(t, side.HasContent())
		assert.Equal(t, "file.docx", side.Filename())
		rc, err := side.Open()
		if assert.NoError(t, err) {
			actual, err := ioutil.ReadAll(rc)
			if assert.NoError(t, err) {
				assert.Equal(t, "hello", string(actual))
			}
			assert.NoError(t, rc.Close())
		}
	}

	_, err = draftable.SideFromReader(nil, "docx")
	assert.EqualError(t, err, "Invalid `r`: cannot be nil")
}

func TestSideOpenWithoutContent(t *testing.T) {
	side, err := draftable.SideFromURL("https://example.com/left.pdf", "pdf")
	if assert.NoError(t, err) {
		_, err = side.Open()
		assert.EqualError(t, err, "Invalid `side`: does not carry uploaded content")
	}
}

func TestSideWithDisplayName(t *testing.T) {
	side, err := draftable.SideFromURL("https://example.com/left.pdf", "pdf")
	if !assert.NoError(t, err) {
		return
	}
	named := side.WithDisplayName("old contract")
	assert.Equal(t, "old contract", named.DisplayName())
	// The original side is unchanged.
	assert.Equal(t, "", side.DisplayName())
}

func TestSideZeroValue(t *testing.T) {
	var side draftable.SideSpec
	assert.EqualError(t, side.Validate(),
		"Invalid `side`: must be created with one of the Side... constructors")
}

func TestComparisonRequestValidate(t *testing.T) {
	now := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	left, err := draftable.SideFromURL("https://example.com/left.pdf", "pdf")
	if !assert.NoError(t, err) {
		return
	}
	right, err := draftable.SideFromURL("https://example.com/right.pdf", "pdf")
	if !assert.NoError(t, err) {
		return
	}

	t.Run("minimal", func(tt *testing.T) {
		req := draftable.ComparisonRequest{Left: left, Right: right}
		assert.NoError(tt, req.Validate(now))
	})

	t.Run("everything", func(tt *testing.T) {
		expires := now.Add(time.Hour)
		req := draftable.ComparisonRequest{
			Left:       left,
			Right:      right,
			Identifier: "JQtaguVd",
			Public:     true,
			Expires:    &expires,
		}
		assert.NoError(tt, req.Validate(now))
	})

	t.Run("missing sides", func(tt *testing.T) {
		err := draftable.ComparisonRequest{}.Validate(now)
		if assert.Error(tt, err) {
			merr, ok := err.(*multierror.Error)
			if assert.True(tt, ok) && assert.Len(tt, merr.Errors, 2) {
				assert.EqualError(tt, merr.Errors[0],
					"Invalid `left`: must be created with one of the Side... constructors")
				assert.EqualError(tt, merr.Errors[1],
					"Invalid `right`: must be created with one of the Side... constructors")
			}
		}
	})

	t.Run("bad identifier", func(tt *testing.T) {
		req := draftable.ComparisonRequest{
			Left:       left,
			Right:      right,
			Identifier: "no spaces allowed",
		}
		err := req.Validate(now)
		if assert.Error(tt, err) {
			merr, ok := err.(*multierror.Error)
			if assert.True(tt, ok) && assert.Len(tt, merr.Errors, 1) {
				assert.IsType(tt, draftable.ErrInvalidArgument{}, merr.Errors[0])
			}
		}
	})

	t.Run("past expiry", func(tt *testing.T) {
		expires := now.Add(-time.Hour)
		req := draftable.ComparisonRequest{
			Left:    left,
			Right:   right,
			Expires: &expires,
		}
		err := req.Validate(now)
		if assert.Error(tt, err) {
			merr, ok := err.(*multierror.Error)
			if assert.True(tt, ok) && assert.Len(tt, merr.Errors, 1) {
				assert.EqualError(tt, merr.Errors[0],
					"Invalid `expires`: must be in the future")
			}
		}
	})

	t.Run("every violation at once", func(tt *testing.T) {
		expires := now.Add(-time.Hour)
		req := draftable.ComparisonRequest{
			Identifier: "no spaces allowed",
			Expires:    &expires,
		}
		err := req.Validate(now)
		if assert.Error(tt, err) {
			merr, ok := err.(*multierror.Error)
			if assert.True(tt, ok) {
				assert.Len(tt, merr.Errors, 4)
			}
		}
	})
}
