// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package draftable

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// sideContent enumerates the ways a SideSpec can provide its document.
type sideContent int

const (
	sideUnset sideContent = iota
	sideURL
	sideFile
	sideBytes
	sideReader
)

// SideSpec describes one document of a comparison being created.
// Exactly one content source (a URL the service fetches, a local
// file, a byte slice, or a reader) is fixed at construction by the
// Side... functions; the zero value is not usable.  A SideSpec is
// immutable; WithDisplayName returns a modified copy.
type SideSpec struct {
	content     sideContent
	sourceURL   string
	path        string
	data        []byte
	reader      io.Reader
	fileType    string
	displayName string
}

// SideFromURL creates a side whose document the service fetches from
// sourceURL.  fileType must be one of AllowedFileTypes.
func SideFromURL(sourceURL, fileType string) (SideSpec, error) {
	if sourceURL == "" {
		return SideSpec{}, ErrInvalidArgument{Param: "sourceURL", Reason: "cannot be an empty string"}
	}
	if err := ValidateSourceURL(sourceURL); err != nil {
		return SideSpec{}, err
	}
	if err := ValidateFileType(fileType); err != nil {
		return SideSpec{}, err
	}
	return SideSpec{
		content:   sideURL,
		sourceURL: sourceURL,
		fileType:  strings.ToLower(fileType),
	}, nil
}

// SideFromFile creates a side that uploads the named local file,
// inferring the file type from the path's extension.  The file is
// opened when the comparison is actually submitted, not here.
func SideFromFile(path string) (SideSpec, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return SideSpec{}, ErrInvalidArgument{
			Param:  "path",
			Reason: "must have a file extension from which the file type can be inferred",
		}
	}
	return SideFromFileType(path, ext)
}

// SideFromFileType creates a side that uploads the named local file
// with an explicitly provided file type.
func SideFromFileType(path, fileType string) (SideSpec, error) {
	if path == "" {
		return SideSpec{}, ErrInvalidArgument{Param: "path", Reason: "cannot be an empty string"}
	}
	if err := ValidateFileType(fileType); err != nil {
		return SideSpec{}, err
	}
	return SideSpec{
		content:  sideFile,
		path:     path,
		fileType: strings.ToLower(fileType),
	}, nil
}

// SideFromBytes creates a side that uploads the given document
// content.
func SideFromBytes(data []byte, fileType string) (SideSpec, error) {
	if data == nil {
		return SideSpec{}, ErrInvalidArgument{Param: "data", Reason: "cannot be nil"}
	}
	if err := ValidateFileType(fileType); err != nil {
		return SideSpec{}, err
	}
	return SideSpec{
		content:  sideBytes,
		data:     data,
		fileType: strings.ToLower(fileType),
	}, nil
}

// SideFromReader creates a side that uploads document content read
// from r.  The reader is consumed when the comparison is submitted,
// so a request built from it can only be submitted once.
func SideFromReader(r io.Reader, fileType string) (SideSpec, error) {
	if r == nil {
		return SideSpec{}, ErrInvalidArgument{Param: "r", Reason: "cannot be nil"}
	}
	if err := ValidateFileType(fileType); err != nil {
		return SideSpec{}, err
	}
	return SideSpec{
		content:  sideReader,
		reader:   r,
		fileType: strings.ToLower(fileType),
	}, nil
}

// WithDisplayName returns a copy of the side with a display name to
// show in the comparison viewer.
func (s SideSpec) WithDisplayName(name string) SideSpec {
	s.displayName = name
	return s
}

// FileType returns the side's lowercase file extension.
func (s SideSpec) FileType() string {
	return s.fileType
}

// DisplayName returns the side's display name, or the empty string if
// none was set.
func (s SideSpec) DisplayName() string {
	return s.displayName
}

// SourceURL returns the URL the service should fetch the document
// from, or the empty string if the side carries uploaded content.
func (s SideSpec) SourceURL() string {
	return s.sourceURL
}

// HasContent reports whether the side uploads document content
// directly rather than referencing a URL.
func (s SideSpec) HasContent() bool {
	return s.content == sideFile || s.content == sideBytes || s.content == sideReader
}

// Filename returns the name to attach to uploaded content: the base
// name of the local file if there is one, otherwise a name synthesized
// from the file type.
func (s SideSpec) Filename() string {
	if s.content == sideFile {
		return filepath.Base(s.path)
	}
	return "file." + s.fileType
}

// Open returns a reader for the side's uploaded content.  The caller
// must close it.  Open fails for URL-backed sides.
func (s SideSpec) Open() (io.ReadCloser, error) {
	switch s.content {
	case sideFile:
		return os.Open(s.path)
	case sideBytes:
		return ioutil.NopCloser(bytes.NewReader(s.data)), nil
	case sideReader:
		return ioutil.NopCloser(s.reader), nil
	}
	return nil, ErrInvalidArgument{Param: "side", Reason: "does not carry uploaded content"}
}

// Validate checks that the side was built by one of the Side...
// constructors.
func (s SideSpec) Validate() error {
	if s.content == sideUnset {
		return ErrInvalidArgument{Param: "side", Reason: "must be created with one of the Side... constructors"}
	}
	return nil
}

// ComparisonRequest describes a comparison to create.  Left and Right
// are required; everything else is optional.
type ComparisonRequest struct {
	// Left and Right are the two documents to compare.
	Left  SideSpec
	Right SideSpec

	// Identifier is the identifier for the new comparison.  If
	// empty the service generates one.  Providing an identifier
	// that is already in use fails the creation with ErrBadRequest.
	Identifier string

	// Public makes the comparison viewable without authentication.
	Public bool

	// Expires, if non-nil, is a future time at which the service
	// automatically deletes the comparison.  If nil the comparison
	// never expires.
	Expires *time.Time
}

// Validate checks every field of the request against the rules in
// validate.go, collecting all violations rather than stopping at the
// first.  now anchors the expiry check.
func (req ComparisonRequest) Validate(now time.Time) error {
	var result *multierror.Error
	if err := req.Left.Validate(); err != nil {
		result = multierror.Append(result, ErrInvalidArgument{Param: "left", Reason: "must be created with one of the Side... constructors"})
	}
	if err := req.Right.Validate(); err != nil {
		result = multierror.Append(result, ErrInvalidArgument{Param: "right", Reason: "must be created with one of the Side... constructors"})
	}
	if req.Identifier != "" {
		if err := ValidateIdentifier(req.Identifier); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if req.Expires != nil {
		if err := ValidateExpires(*req.Expires, now); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
