// Package draftable defines the domain types for the Draftable
// document-comparison API.
//
// A Comparison is a server-side resource describing a diff job between
// two documents, its left and right Side.  Comparisons are created by
// submitting a ComparisonRequest, whose sides are SideSpec values built
// with the Side... constructor functions.  An Export is a rendered
// artifact derived from a completed comparison.
//
// All of the entity types here are plain immutable records: observing a
// state change (for instance, a comparison becoming ready) means
// fetching a fresh instance.  The Draftable interface is the abstract
// API to a comparison service; the restclient package implements it
// against a remote server, and the memory package implements it
// in-process.
package draftable

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Draftable is the principal interface to a comparison service.
// Implementations of this interface provide a specific way to reach
// the service: over HTTP, or entirely in memory for tests.  All
// implementations scope their view to a single account.
type Draftable interface {
	// AllComparisons returns every comparison in the account, in
	// the service's own order (newest first).  No client-side
	// pagination is performed; whatever the service returns is
	// final.
	AllComparisons() ([]Comparison, error)

	// Comparison retrieves a single comparison by its identifier.
	// If no comparison exists with that identifier, returns an
	// instance of ErrComparisonNotFound as an error.
	Comparison(identifier string) (Comparison, error)

	// CreateComparison submits a new comparison.  The returned
	// comparison is generally not ready yet.  If the request
	// carries an identifier that is already in use, returns an
	// instance of ErrBadRequest.
	CreateComparison(req ComparisonRequest) (Comparison, error)

	// DeleteComparison deletes a comparison by its identifier.  If
	// no comparison exists with that identifier, returns an
	// instance of ErrComparisonNotFound.
	DeleteComparison(identifier string) error

	// Export retrieves a single export by its identifier.  Note
	// that export identifiers are distinct from comparison
	// identifiers.  If no export exists with that identifier,
	// returns an instance of ErrExportNotFound.
	Export(identifier string) (Export, error)

	// CreateExport starts rendering an export of the named
	// comparison.  The returned export is generally not ready yet;
	// poll Export to observe completion and collect the result
	// URL.
	CreateExport(comparison string, kind ExportKind) (Export, error)
}

// Comparison is a single comparison resource.  Instances are created
// by the service; the zero value is not meaningful.
type Comparison struct {
	// Identifier is the unique name of this comparison.  It never
	// changes.
	Identifier string

	// Left and Right describe the two compared documents.
	Left  Side
	Right Side

	// Public indicates the comparison can be viewed without
	// authentication.
	Public bool

	// CreationTime is the (service-assigned) UTC time the
	// comparison was created.
	CreationTime time.Time

	// ExpiryTime, if non-nil, is the UTC time at which the service
	// will automatically delete this comparison.  If nil the
	// comparison never expires.
	ExpiryTime *time.Time

	// Ready indicates the service has finished processing this
	// comparison.  The three fields below are only meaningful when
	// Ready is true.
	Ready bool

	// ReadyTime is the time processing finished.  It is non-nil
	// exactly when Ready is true.
	ReadyTime *time.Time

	// Failed reports whether processing failed.  It is non-nil
	// exactly when Ready is true.
	Failed *bool

	// ErrorMessage describes the processing failure.  It is
	// non-empty exactly when Failed is present and true.
	ErrorMessage string
}

// HasFailed reports whether the comparison is ready and its processing
// failed.
func (c Comparison) HasFailed() bool {
	return c.Failed != nil && *c.Failed
}

// Validate checks the internal consistency of a comparison.  A
// comparison that is not ready must not carry a ready time, failure
// flag, or error message; a ready comparison must carry both a ready
// time and a failure flag, and an error message exactly when it
// failed.  Every construction path (wire decoding, the in-memory
// store) runs this check so that an inconsistent comparison is never
// observable.
func (c Comparison) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Identifier, validation.Required),
		validation.Field(&c.Left),
		validation.Field(&c.Right),
		validation.Field(&c.CreationTime, validation.Required),
		validation.Field(&c.ReadyTime,
			validation.When(c.Ready, validation.NotNil.Error("must be present when ready")),
			validation.When(!c.Ready, validation.Nil.Error("must be absent until ready"))),
		validation.Field(&c.Failed,
			validation.When(c.Ready, validation.NotNil.Error("must be present when ready")),
			validation.When(!c.Ready, validation.Nil.Error("must be absent until ready"))),
		validation.Field(&c.ErrorMessage,
			validation.When(c.HasFailed(), validation.Required.Error("must be present when failed")),
			validation.When(!c.HasFailed(), validation.Empty.Error("must be absent unless failed"))),
	)
}

// Side describes one of the two documents in an existing comparison.
type Side struct {
	// FileType is the lowercase file extension of the document.
	FileType string

	// SourceURL is the URL the document was fetched from.  It is
	// empty if the document content was uploaded directly.
	SourceURL string

	// DisplayName is an optional name for the document shown in
	// the comparison viewer.
	DisplayName string
}

// Validate checks that the side carries the required file type.
func (s Side) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.FileType, validation.Required),
	)
}

// ExportKind identifies the rendering style of an export.
type ExportKind int

// Kinds of exports.  The wire representations are the lowercase
// snake_case strings in marshal.go.
const (
	// SinglePageExport renders one chosen page of the comparison.
	SinglePageExport ExportKind = iota

	// CombinedExport renders both documents side by side with
	// changes highlighted.
	CombinedExport

	// LeftExport renders the left document with deletions marked.
	LeftExport

	// RightExport renders the right document with insertions
	// marked.
	RightExport
)

// Export is a rendered artifact derived from a completed comparison.
type Export struct {
	// Identifier is the unique name of this export.  It is
	// distinct from the identifier of the comparison it was
	// derived from.
	Identifier string

	// Comparison is the identifier of the parent comparison.
	Comparison string

	// URL is the location of the rendered document.  It is empty
	// until the export is ready and has succeeded.
	URL string

	// Kind is the rendering style of this export.
	Kind ExportKind

	// Ready indicates the service has finished rendering.
	Ready bool

	// Failed reports whether rendering failed.  It is non-nil
	// exactly when Ready is true.
	Failed *bool

	// ErrorMessage describes the rendering failure.  It is
	// non-empty exactly when Failed is present and true.
	ErrorMessage string
}

// HasFailed reports whether the export is ready and its rendering
// failed.
func (e Export) HasFailed() bool {
	return e.Failed != nil && *e.Failed
}

// Validate checks the internal consistency of an export, applying the
// same readiness co-presence rules as Comparison.Validate.
func (e Export) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Identifier, validation.Required),
		validation.Field(&e.Comparison, validation.Required),
		validation.Field(&e.Kind, validation.In(SinglePageExport, CombinedExport, LeftExport, RightExport)),
		validation.Field(&e.URL,
			validation.When(e.Ready && !e.HasFailed(), validation.Required.Error("must be present when ready")),
			validation.When(!e.Ready || e.HasFailed(), validation.Empty.Error("must be absent until ready and successful"))),
		validation.Field(&e.Failed,
			validation.When(e.Ready, validation.NotNil.Error("must be present when ready")),
			validation.When(!e.Ready, validation.Nil.Error("must be absent until ready"))),
		validation.Field(&e.ErrorMessage,
			validation.When(e.HasFailed(), validation.Required.Error("must be present when failed")),
			validation.When(!e.HasFailed(), validation.Empty.Error("must be absent unless failed"))),
	)
}
