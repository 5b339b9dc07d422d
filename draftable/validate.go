// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package draftable

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// This file holds the parameter checks shared by every public entry
// point.  They run synchronously before any network call and are the
// only client-side defense against BadRequest responses from the
// service.  All of them report violations as ErrInvalidArgument.

const (
	minIdentifierLength = 1
	maxIdentifierLength = 1024
	maxSourceURLLength  = 2048
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// AllowedFileTypes lists the file extensions the service accepts, in
// the service's documented order: PDFs, then Word documents, then
// PowerPoint presentations.
var AllowedFileTypes = []string{"pdf", "docx", "docm", "doc", "rtf", "pptx", "pptm", "ppt"}

var allowedFileTypeSet = func() map[string]bool {
	m := make(map[string]bool, len(AllowedFileTypes))
	for _, t := range AllowedFileTypes {
		m[t] = true
	}
	return m
}()

// ValidateAccountID checks that an account ID is present.
func ValidateAccountID(accountID string) error {
	err := validation.Validate(accountID,
		validation.Required.Error("cannot be an empty string"))
	if err != nil {
		return ErrInvalidArgument{Param: "accountID", Reason: err.Error()}
	}
	return nil
}

// ValidateAuthToken checks that an auth token is present.
func ValidateAuthToken(authToken string) error {
	err := validation.Validate(authToken,
		validation.Required.Error("cannot be an empty string"))
	if err != nil {
		return ErrInvalidArgument{Param: "authToken", Reason: err.Error()}
	}
	return nil
}

// ValidateIdentifier checks that an identifier has between 1 and 1024
// characters, all of them ASCII letters, digits, or "-", ".", "_".
// The same input always produces the same verdict.
func ValidateIdentifier(identifier string) error {
	err := validation.Validate(identifier,
		validation.Required.Error("cannot be an empty string"),
		validation.Length(minIdentifierLength, maxIdentifierLength),
		validation.Match(identifierPattern).
			Error(`can only contain ASCII letters, numbers, and the characters "-._"`))
	if err != nil {
		return ErrInvalidArgument{Param: "identifier", Reason: err.Error()}
	}
	return nil
}

// ValidateFileType checks, case-insensitively, that a file type is one
// of AllowedFileTypes.
func ValidateFileType(fileType string) error {
	if !allowedFileTypeSet[strings.ToLower(fileType)] {
		return ErrInvalidArgument{
			Param: "fileType",
			Reason: fmt.Sprintf("must be one of the allowed file types (%s), not %q",
				strings.Join(AllowedFileTypes, ", "), fileType),
		}
	}
	return nil
}

// ValidateSourceURL checks that a source URL does not exceed 2048
// characters and parses as a URI.  Whether the service can actually
// fetch the URL is its own concern.
func ValidateSourceURL(sourceURL string) error {
	err := validation.Validate(sourceURL,
		validation.Length(0, maxSourceURLLength).
			Error(fmt.Sprintf("must not have more than %d characters", maxSourceURLLength)))
	if err != nil {
		return ErrInvalidArgument{Param: "sourceURL", Reason: err.Error()}
	}
	if _, err := url.Parse(sourceURL); err != nil {
		return ErrInvalidArgument{Param: "sourceURL", Reason: "cannot be parsed"}
	}
	return nil
}

// ValidateExpires checks that an expiry time lies in the future.  A
// one-second margin absorbs clock skew and request latency.
func ValidateExpires(expires, now time.Time) error {
	return validateInstant("expires", expires, now)
}

// ValidateValidUntil checks that a signed-URL expiry time lies in the
// future, with the same margin as ValidateExpires.
func ValidateValidUntil(validUntil, now time.Time) error {
	return validateInstant("validUntil", validUntil, now)
}

// ValidateValidFor checks that a signed-URL lifetime is positive.
func ValidateValidFor(validFor time.Duration) error {
	if validFor <= 0 {
		return ErrInvalidArgument{Param: "validFor", Reason: "must have positive duration"}
	}
	return nil
}

func validateInstant(param string, t, now time.Time) error {
	if t.IsZero() {
		return ErrInvalidArgument{Param: param, Reason: "cannot be the zero time"}
	}
	if t.Before(now.Add(time.Second)) {
		return ErrInvalidArgument{Param: param, Reason: "must be in the future"}
	}
	return nil
}
