// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restdata defines common data structures shared between the
// restserver and restclient packages.  These are the JSON documents
// and form fields of the Draftable comparison API, plus conversions
// between them and the draftable package's domain types.
//
// API Usage
//
// All endpoints live under a common base URL; the hosted service
// uses https://api.draftable.com/v1.  The JSON endpoints are:
//
//	GET    comparisons                ComparisonList
//	POST   comparisons                multipart form, returns Comparison
//	GET    comparisons/{identifier}   Comparison
//	DELETE comparisons/{identifier}   no content
//	POST   exports                    form, returns Export
//	GET    exports/{identifier}       Export
//
// Every request carries the account's credentials in a header:
//
//	Authorization: Token <auth token>
//
// The comparison viewer is an HTML page, not a JSON resource:
//
//	GET comparisons/viewer/{accountId}/{identifier}
//
// It is reachable without credentials if the comparison is public, or
// with "valid_until" and "signature" query parameters produced by the
// signature package.
//
// Encoding Considerations
//
// Timestamps are represented in JSON as RFC 3339 strings,
// "2012-03-04T05:06:07.890Z".  Fields documented as optional are
// omitted from the serialization entirely when absent.
//
// Creating a comparison submits a multipart/form-data document rather
// than JSON, because it may need to carry the compared documents
// themselves.  Scalar fields for the two sides use dotted names,
// "left.file_type", "right.source_url", and so on; uploaded documents
// are the file parts "left.file" and "right.file".  The boolean
// "public" field is the literal string "true", omitted entirely when
// false, and "expiry_time" is an RFC 3339 string.
//
// HTTP Considerations
//
// Each operation has exactly one successful status: 200 OK for GET,
// 201 Created for POST, and 204 No Content for DELETE.  Anything else
// is a failure: 404 Not Found for a missing comparison or export, 400
// Bad Request for a rejected submission, 401 or 403 for credential
// problems.
//
// Errors
//
// The restserver in this module returns failures as encodings of the
// ErrorResponse type.  The hosted service makes no such promise, and
// the restclient package deliberately does not try to parse error
// bodies; it carries them verbatim inside its returned errors.
//
// If server code panics, this is captured and returned as an
// ErrorResponse with error code "panic".
package restdata

import (
	"errors"
	"strconv"
	"time"

	"github.com/diffeo/go-draftable/draftable"
)

// V1JSONMediaType is the preferred, most specific MIME type for the
// JSON representation of this content.
const V1JSONMediaType = "application/vnd.draftable.v1+json"

// JSONMediaType is the generic JSON MIME type.  The hosted service
// tags its responses with this.
const JSONMediaType = "application/json"

// Form field names used when creating a comparison.  The per-side
// fields take a "left." or "right." prefix, built with SideField.
const (
	IdentifierField = "identifier"
	PublicField     = "public"
	ExpiryTimeField = "expiry_time"

	FileTypeField    = "file_type"
	SourceURLField   = "source_url"
	DisplayNameField = "display_name"
	FileField        = "file"
)

// Form field names used when creating an export.
const (
	ComparisonField = "comparison"
	KindField       = "kind"
)

// SideField builds the dotted form field name for one side's
// attribute; SideField("left", FileTypeField) is "left.file_type".
func SideField(side, attr string) string {
	return side + "." + attr
}

// Path templates for the JSON resources, relative to the base URL.
// These are RFC 6570 URI templates; the restclient package fills in
// the parameters.
const (
	ComparisonsPath = "comparisons"
	ComparisonPath  = "comparisons/{identifier}"
	ExportsPath     = "exports"
	ExportPath      = "exports/{identifier}"
)

// Side describes one of the two documents of an existing comparison.
type Side struct {
	// FileType is the document's lowercase file extension.
	FileType string `json:"file_type"`

	// SourceURL is the URL the service fetched the document from.
	// Absent if the document's content was uploaded directly.
	SourceURL string `json:"source_url,omitempty"`

	// DisplayName is an optional name shown in the viewer in
	// place of the file name.
	DisplayName string `json:"display_name,omitempty"`
}

// ToSide converts the wire representation to a domain side.
func (s Side) ToSide() draftable.Side {
	return draftable.Side{
		FileType:    s.FileType,
		SourceURL:   s.SourceURL,
		DisplayName: s.DisplayName,
	}
}

// FromSide converts a domain side to its wire representation.
func FromSide(s draftable.Side) Side {
	return Side{
		FileType:    s.FileType,
		SourceURL:   s.SourceURL,
		DisplayName: s.DisplayName,
	}
}

// Comparison is the representation of a single comparison resource.
type Comparison struct {
	// Identifier is the comparison's unique name within its
	// account.
	Identifier string `json:"identifier"`

	// Left and Right describe the two compared documents.
	Left  Side `json:"left"`
	Right Side `json:"right"`

	// Public indicates the comparison can be viewed without
	// authentication.  Absent means private.
	Public bool `json:"public,omitempty"`

	// CreationTime is the time the comparison was created.
	CreationTime time.Time `json:"creation_time"`

	// ExpiryTime is the time the service will automatically
	// delete this comparison.  If this field is absent then the
	// comparison never expires.
	ExpiryTime time.Time `json:"expiry_time,omitempty"`

	// Ready indicates processing has finished.  ReadyTime and
	// Failed are present exactly when this is true.
	Ready bool `json:"ready"`

	// ReadyTime is the time processing finished.  If this field
	// is absent then the comparison is not ready yet.
	ReadyTime time.Time `json:"ready_time,omitempty"`

	// Failed indicates processing failed.  ErrorMessage is
	// present exactly when this is true.
	Failed *bool `json:"failed,omitempty"`

	// ErrorMessage describes how processing failed.
	ErrorMessage string `json:"error_message,omitempty"`
}

// ToComparison converts the wire representation to a domain
// comparison.  Representations that violate the readiness rules, for
// instance a ready comparison with no failure flag, are rejected
// rather than passed through, so a caller never observes an
// inconsistent comparison.
func (c Comparison) ToComparison() (draftable.Comparison, error) {
	out := draftable.Comparison{
		Identifier:   c.Identifier,
		Left:         c.Left.ToSide(),
		Right:        c.Right.ToSide(),
		Public:       c.Public,
		CreationTime: c.CreationTime,
		ExpiryTime:   optionalTime(c.ExpiryTime),
		Ready:        c.Ready,
		ReadyTime:    optionalTime(c.ReadyTime),
		Failed:       c.Failed,
		ErrorMessage: c.ErrorMessage,
	}
	if err := out.Validate(); err != nil {
		return draftable.Comparison{}, err
	}
	return out, nil
}

// FromComparison converts a domain comparison to its wire
// representation.
func FromComparison(c draftable.Comparison) Comparison {
	return Comparison{
		Identifier:   c.Identifier,
		Left:         FromSide(c.Left),
		Right:        FromSide(c.Right),
		Public:       c.Public,
		CreationTime: c.CreationTime,
		ExpiryTime:   timeValue(c.ExpiryTime),
		Ready:        c.Ready,
		ReadyTime:    timeValue(c.ReadyTime),
		Failed:       c.Failed,
		ErrorMessage: c.ErrorMessage,
	}
}

// ComparisonList is the response to listing the comparisons in an
// account.
type ComparisonList struct {
	// Count is the total number of comparisons in the account.
	Count int `json:"count,omitempty"`

	// Results holds the comparisons themselves, newest first.
	Results []Comparison `json:"results"`
}

// ToComparisons converts every listed comparison to its domain type.
// A single inconsistent entry fails the whole list.
func (l ComparisonList) ToComparisons() ([]draftable.Comparison, error) {
	out := make([]draftable.Comparison, len(l.Results))
	for i, c := range l.Results {
		var err error
		out[i], err = c.ToComparison()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FromComparisons converts domain comparisons to a wire list.
func FromComparisons(cs []draftable.Comparison) ComparisonList {
	l := ComparisonList{
		Count:   len(cs),
		Results: make([]Comparison, len(cs)),
	}
	for i, c := range cs {
		l.Results[i] = FromComparison(c)
	}
	return l
}

// Export is the representation of a single export resource.
type Export struct {
	// Identifier is the export's unique name within its account.
	// It is distinct from the parent comparison's identifier.
	Identifier string `json:"identifier"`

	// Comparison is the identifier of the comparison this export
	// was rendered from.
	Comparison string `json:"comparison"`

	// URL is the location of the rendered document.  It is absent
	// until the export is ready and has succeeded.
	URL string `json:"url,omitempty"`

	// Kind is the rendering style, one of "single_page",
	// "combined", "left", or "right".
	Kind draftable.ExportKind `json:"kind"`

	// Ready indicates rendering has finished.  Failed is present
	// exactly when this is true.
	Ready bool `json:"ready"`

	// Failed indicates rendering failed.  ErrorMessage is present
	// exactly when this is true.
	Failed *bool `json:"failed,omitempty"`

	// ErrorMessage describes how rendering failed.
	ErrorMessage string `json:"error_message,omitempty"`
}

// ToExport converts the wire representation to a domain export,
// applying the same consistency rules as Comparison.ToComparison.
func (e Export) ToExport() (draftable.Export, error) {
	out := draftable.Export{
		Identifier:   e.Identifier,
		Comparison:   e.Comparison,
		URL:          e.URL,
		Kind:         e.Kind,
		Ready:        e.Ready,
		Failed:       e.Failed,
		ErrorMessage: e.ErrorMessage,
	}
	if err := out.Validate(); err != nil {
		return draftable.Export{}, err
	}
	return out, nil
}

// FromExport converts a domain export to its wire representation.
func FromExport(e draftable.Export) Export {
	return Export{
		Identifier:   e.Identifier,
		Comparison:   e.Comparison,
		URL:          e.URL,
		Kind:         e.Kind,
		Ready:        e.Ready,
		Failed:       e.Failed,
		ErrorMessage: e.ErrorMessage,
	}
}

// CreateComparisonForm mirrors the fields of a comparison creation
// form, after the dotted field names have been split apart.  The
// restserver package decodes submitted forms into this structure via
// the mapstructure tags; every field keeps the form's own string
// representation.
type CreateComparisonForm struct {
	Identifier string   `mapstructure:"identifier"`
	Public     string   `mapstructure:"public"`
	ExpiryTime string   `mapstructure:"expiry_time"`
	Left       SideForm `mapstructure:"left"`
	Right      SideForm `mapstructure:"right"`
}

// SideForm holds one side's fields within a comparison creation form.
type SideForm struct {
	FileType    string `mapstructure:"file_type"`
	SourceURL   string `mapstructure:"source_url"`
	DisplayName string `mapstructure:"display_name"`

	// File holds the client-reported file name of the side's
	// uploaded document part, if one was attached.
	File string `mapstructure:"file"`
}

// ToSide converts one side of a creation form to a domain side.
func (f SideForm) ToSide() draftable.Side {
	return draftable.Side{
		FileType:    f.FileType,
		SourceURL:   f.SourceURL,
		DisplayName: f.DisplayName,
	}
}

// ToSpec converts one side of a creation form to the side
// specification a Draftable implementation accepts.  A side with an
// uploaded document part becomes a file-backed specification named
// after the upload; a side with a source URL becomes a URL-backed
// one.  The receiving implementation decides whether to ever read the
// named file back.
func (f SideForm) ToSpec() (draftable.SideSpec, error) {
	var spec draftable.SideSpec
	var err error
	switch {
	case f.File != "":
		spec, err = draftable.SideFromFileType(f.File, f.FileType)
	case f.SourceURL != "":
		spec, err = draftable.SideFromURL(f.SourceURL, f.FileType)
	default:
		err = errors.New("needs an uploaded file or a source URL")
	}
	if err != nil {
		return draftable.SideSpec{}, err
	}
	if f.DisplayName != "" {
		spec = spec.WithDisplayName(f.DisplayName)
	}
	return spec, nil
}

// ToRequest converts a decoded creation form back to a domain
// comparison request.  Errors are draftable.ErrInvalidArgument values
// naming the form field at fault.
func (f CreateComparisonForm) ToRequest() (draftable.ComparisonRequest, error) {
	req := draftable.ComparisonRequest{Identifier: f.Identifier}
	var err error
	req.Left, err = f.Left.ToSpec()
	if err != nil {
		return draftable.ComparisonRequest{}, draftable.ErrInvalidArgument{Param: "left", Err: err}
	}
	req.Right, err = f.Right.ToSpec()
	if err != nil {
		return draftable.ComparisonRequest{}, draftable.ErrInvalidArgument{Param: "right", Err: err}
	}
	if f.Public != "" {
		req.Public, err = strconv.ParseBool(f.Public)
		if err != nil {
			return draftable.ComparisonRequest{}, draftable.ErrInvalidArgument{Param: PublicField, Reason: "must be a boolean"}
		}
	}
	if f.ExpiryTime != "" {
		expires, err := time.Parse(time.RFC3339, f.ExpiryTime)
		if err != nil {
			return draftable.ComparisonRequest{}, draftable.ErrInvalidArgument{Param: ExpiryTimeField, Reason: "must be an RFC 3339 timestamp"}
		}
		req.Expires = &expires
	}
	return req, nil
}

// CreateExportForm mirrors the fields of an export creation form.
type CreateExportForm struct {
	Comparison string `mapstructure:"comparison"`
	Kind       string `mapstructure:"kind"`
}

// ErrorResponse can be a response to any method, generally
// accompanied by a failing HTTP status code.
type ErrorResponse struct {
	// Error is a short description of the failure.  This may be
	// the name of a draftable API error type, the string "panic",
	// or the string "error" for some other kind of error.
	Error string `json:"error"`

	// Message is a human-readable description of the failure.
	Message string `json:"message"`

	// Value is an extra parameter to the error if applicable,
	// such as the identifier that was not found.
	Value string `json:"value,omitempty"`

	// Stack holds a formatted backtrace, if the method failed due
	// to a panic.
	Stack string `json:"stack,omitempty"`
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeValue(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
