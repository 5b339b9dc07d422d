// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/diffeo/go-draftable/draftable"
)

// ErrorStatus describes errors that correspond to specific HTTP status
// codes.
type ErrorStatus interface {
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// ErrUnsupportedMediaType is returned from Decode() if the provided
// Content-Type: is unrecognized.  This translates directly into the
// equivalent HTTP 415 error.
type ErrUnsupportedMediaType struct {
	Type string
}

func (e ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf("Unsupported media type %q", e.Type)
}

// HTTPStatus returns a fixed 415 Unsupported Media Type error code.
func (e ErrUnsupportedMediaType) HTTPStatus() int {
	return http.StatusUnsupportedMediaType
}

// ErrNotFound is a wrapper error that indicates that, due to the
// embedded error, a REST service should return a 404 Not Found error.
type ErrNotFound struct {
	Err error
}

func (e ErrNotFound) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 404 Not Found error code.
func (e ErrNotFound) HTTPStatus() int {
	return http.StatusNotFound
}

// ErrBadRequest is returned as an error when there is an error
// decoding HTTP headers, the request body, or a submitted form.
type ErrBadRequest struct {
	Err error
}

func (e ErrBadRequest) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 400 Bad Request HTTP status code.
func (e ErrBadRequest) HTTPStatus() int {
	return http.StatusBadRequest
}

// ErrUnauthorized is a wrapper error for requests with missing or
// unrecognized credentials.
type ErrUnauthorized struct {
	Err error
}

func (e ErrUnauthorized) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 401 Unauthorized HTTP status code.
func (e ErrUnauthorized) HTTPStatus() int {
	return http.StatusUnauthorized
}

// ErrForbidden is a wrapper error for requests whose credentials are
// recognized but do not grant access, for instance a viewer URL with
// a bad signature.
type ErrForbidden struct {
	Err error
}

func (e ErrForbidden) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 403 Forbidden HTTP status code.
func (e ErrForbidden) HTTPStatus() int {
	return http.StatusForbidden
}

// FromError populates an ErrorResponse to fill in its fields based on
// an error value.  This remaps the well-known draftable errors to
// specific e.Error codes.
func (e *ErrorResponse) FromError(err error) {
	switch et := err.(type) {
	case draftable.ErrInvalidArgument:
		e.Error = "ErrInvalidArgument"
		e.Value = et.Param
	case draftable.ErrComparisonNotFound:
		e.Error = "ErrComparisonNotFound"
		e.Value = et.Identifier
	case draftable.ErrExportNotFound:
		e.Error = "ErrExportNotFound"
		e.Value = et.Identifier
	case draftable.ErrBadRequest:
		e.Error = "ErrBadRequest"
	case draftable.ErrInvalidAuthentication:
		e.Error = "ErrInvalidAuthentication"
	case ErrNotFound:
		// Discard this wrapper and report the embedded error
		e.FromError(et.Err)
	case ErrBadRequest:
		e.FromError(et.Err)
	case ErrUnauthorized:
		e.FromError(et.Err)
	case ErrForbidden:
		e.FromError(et.Err)
	}
}

// FromPanic populates an error response based on a panic.  Typical use
// is:
//
//     defer func() {
//         if obj := recover(); obj != nil {
//             resp := restdata.ErrorResponse{}
//             resp.FromPanic(obj)
//             // write resp out as makes sense
//         }
//    }
func (e *ErrorResponse) FromPanic(obj interface{}) {
	e.Error = "panic"
	if recoveredError, isError := obj.(error); isError {
		e.Message = recoveredError.Error()
	} else {
		e.Message = fmt.Sprintf("%+v", obj)
	}
	var stack [4096]byte
	len := runtime.Stack(stack[:], false)
	e.Stack = string(stack[:len])
}
