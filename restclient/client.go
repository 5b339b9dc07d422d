// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restclient provides a draftable.Draftable client that makes
// HTTP calls to the Draftable comparison API.
//
// Call New() with credentials from the account console to use the
// hosted service; for instance,
//
//     client, err := restclient.New("Zge2air", "super-secret-token")
//
// A self-hosted installation, or the development server in
// github.com/diffeo/go-draftable/cmd/draftabled, works the same way
// through NewWithBaseURL:
//
//     client, err := restclient.NewWithBaseURL(account, token,
//         "http://localhost:5980/v1")
//
// Parameters are validated on the client before any network traffic
// happens, and every failure an operation returns is one of the error
// types in the draftable package.
package restclient

import (
	"net/url"
	"strings"

	"github.com/benbjohnson/clock"

	"github.com/diffeo/go-draftable/draftable"
)

// DefaultBaseURL is the endpoint of the hosted comparison service.
const DefaultBaseURL = "https://api.draftable.com/v1"

// Client implements draftable.Draftable against a remote comparison
// service.  Create one with New, NewWithBaseURL, or NewWithClock; the
// zero value is not usable.  A Client is safe for concurrent use.
type Client struct {
	rest
	clock clock.Clock
}

var _ draftable.Draftable = &Client{}

// New creates a Client for the hosted comparison service at
// DefaultBaseURL.
func New(accountID, authToken string) (*Client, error) {
	return NewWithBaseURL(accountID, authToken, DefaultBaseURL)
}

// NewWithBaseURL creates a Client for a comparison service rooted at
// baseURL, for instance a self-hosted installation.
func NewWithBaseURL(accountID, authToken, baseURL string) (*Client, error) {
	return NewWithClock(accountID, authToken, baseURL, clock.New())
}

// NewWithClock creates a Client whose notion of the current time
// comes from clk.  The clock anchors expiry validation, signed viewer
// URL lifetimes, and the polling in WaitForComparison; tests use a
// mock clock here.
func NewWithClock(accountID, authToken, baseURL string, clk clock.Clock) (*Client, error) {
	if err := draftable.ValidateAccountID(accountID); err != nil {
		return nil, err
	}
	if err := draftable.ValidateAuthToken(authToken); err != nil {
		return nil, err
	}
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		rest: rest{
			accountID: accountID,
			authToken: authToken,
			base:      base,
		},
		clock: clk,
	}, nil
}

// parseBaseURL validates and normalizes the service base URL.  The
// returned URL always ends in "/" so that relative paths resolve
// under its last segment instead of replacing it.
func parseBaseURL(baseURL string) (*url.URL, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, draftable.ErrInvalidArgument{Param: "baseURL", Reason: "cannot be parsed"}
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, draftable.ErrInvalidArgument{Param: "baseURL", Reason: "must be an absolute http or https URL"}
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return base, nil
}
