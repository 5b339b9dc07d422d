package draftable

import (
	"fmt"
)

// The errors in this file are the complete set of failures the public
// API surfaces.  Every fallible operation returns either nil or an
// instance of one of these types; in particular transport-internal
// errors never escape the restclient package undisguised.

// ErrInvalidArgument is returned when a parameter fails client-side
// validation, before any network traffic happens.  Param names the
// offending parameter.  If the failure aggregates several violations
// (for instance when validating a whole ComparisonRequest), Err holds
// the underlying collection.
type ErrInvalidArgument struct {
	Param  string
	Reason string
	Err    error
}

func (e ErrInvalidArgument) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Invalid `%s`: %v", e.Param, e.Err)
	}
	return fmt.Sprintf("Invalid `%s`: %s", e.Param, e.Reason)
}

// Unwrap returns the underlying violation collection, if any.
func (e ErrInvalidArgument) Unwrap() error {
	return e.Err
}

// ErrComparisonNotFound is returned by operations that look up a
// comparison by identifier, when no comparison with that identifier
// exists in the account.
type ErrComparisonNotFound struct {
	AccountID  string
	Identifier string
}

func (e ErrComparisonNotFound) Error() string {
	return fmt.Sprintf("No comparison %q exists in account %q", e.Identifier, e.AccountID)
}

// ErrExportNotFound is returned by operations that look up an export
// by identifier, when no export with that identifier exists in the
// account.
type ErrExportNotFound struct {
	AccountID  string
	Identifier string
}

func (e ErrExportNotFound) Error() string {
	return fmt.Sprintf("No export %q exists in account %q", e.Identifier, e.AccountID)
}

// ErrBadRequest is returned when the service rejects the content of a
// request, for instance a comparison identifier that is already in
// use.  Detail carries the raw response body from the service.  The
// request must be changed before it can succeed; retrying it as-is
// will not help.
type ErrBadRequest struct {
	Detail string
}

func (e ErrBadRequest) Error() string {
	return fmt.Sprintf("Bad request: %s", e.Detail)
}

// ErrInvalidAuthentication is returned when the service rejects the
// account credentials.  Detail carries the raw response body from the
// service.
type ErrInvalidAuthentication struct {
	Detail string
}

func (e ErrInvalidAuthentication) Error() string {
	return fmt.Sprintf("Invalid authentication: %s", e.Detail)
}

// ErrIO wraps a network-level failure: a connection error, a timeout,
// or a response that could not be read or decoded.  These failures
// are generally transient and safe to retry, though nothing here
// retries automatically.
type ErrIO struct {
	Err error
}

func (e ErrIO) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying I/O error.
func (e ErrIO) Unwrap() error {
	return e.Err
}

// ErrUnknown wraps any failure that does not match one of the other
// error types, including HTTP responses with unexpected status codes.
// It exists so that callers only ever observe the documented set of
// errors; the original cause is always preserved for diagnostics.
type ErrUnknown struct {
	// StatusCode is the HTTP status of the response, if the error
	// came from an unexpected response status; otherwise zero.
	StatusCode int

	// Detail carries the raw response body, if any.
	Detail string

	// Err is the original cause, if the error did not come from an
	// HTTP response.
	Err error
}

func (e ErrUnknown) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Unknown error: %v", e.Err)
	}
	return fmt.Sprintf("Unknown response status %d: %s", e.StatusCode, e.Detail)
}

// Unwrap returns the original cause, if any.
func (e ErrUnknown) Unwrap() error {
	return e.Err
}
