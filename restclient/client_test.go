// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffeo/go-draftable/draftable"
	"github.com/diffeo/go-draftable/memory"
	"github.com/diffeo/go-draftable/restdata"
	"github.com/diffeo/go-draftable/restserver"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name      string
		accountID string
		authToken string
		baseURL   string
		param     string
	}{
		{"empty account", "", "auth-token", DefaultBaseURL, "accountID"},
		{"empty token", "acct", "", DefaultBaseURL, "authToken"},
		{"unparseable URL", "acct", "auth-token", "://nope", "baseURL"},
		{"wrong scheme", "acct", "auth-token", "ftp://example.com/v1", "baseURL"},
		{"no host", "acct", "auth-token", "/just/a/path", "baseURL"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewWithBaseURL(test.accountID, test.authToken, test.baseURL)
			if assert.IsType(t, draftable.ErrInvalidArgument{}, err) {
				assert.Equal(t, test.param, err.(draftable.ErrInvalidArgument).Param)
			}
		})
	}

	client, err := New("acct", "auth-token")
	if assert.NoError(t, err) {
		assert.NotNil(t, client)
	}
}

// TestBaseURLNormalization verifies that the base URL resolves the
// same way with or without a trailing slash.
func TestBaseURLNormalization(t *testing.T) {
	for _, base := range []string{"http://example.com/v1", "http://example.com/v1/"} {
		client, err := NewWithBaseURL("acct", "auth-token", base)
		if !assert.NoError(t, err, base) {
			continue
		}
		url, err := client.PublicViewerURL("doc", false)
		if assert.NoError(t, err, base) {
			assert.Equal(t, "http://example.com/v1/comparisons/viewer/acct/doc", url)
		}
	}
}

// TestCloseAndReuse verifies that Close shuts down the transport but
// the next operation quietly brings it back.
func TestCloseAndReuse(t *testing.T) {
	store := memory.New()
	store.Account("acct", "auth-token")
	server := httptest.NewServer(restserver.NewRouter(store))
	defer server.Close()

	client, err := NewWithBaseURL("acct", "auth-token", server.URL)
	require.NoError(t, err)

	_, err = client.AllComparisons()
	assert.NoError(t, err)

	assert.NoError(t, client.Close())
	_, err = client.AllComparisons()
	assert.NoError(t, err)

	assert.NoError(t, client.Close())
	assert.NoError(t, client.Close())
}

// TestStatusClassification drives the client against a server that
// returns arbitrary statuses, and checks which error each one becomes.
func TestStatusClassification(t *testing.T) {
	var mu sync.Mutex
	status := http.StatusInternalServerError
	body := ""
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		w.Header().Set("Content-Type", restdata.JSONMediaType)
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	defer server.Close()

	client, err := NewWithBaseURL("acct", "auth-token", server.URL)
	require.NoError(t, err)
	defer client.Close()

	set := func(s int, b string) {
		mu.Lock()
		defer mu.Unlock()
		status = s
		body = b
	}

	set(http.StatusBadRequest, "malformed sides")
	_, err = client.AllComparisons()
	if assert.IsType(t, draftable.ErrBadRequest{}, err) {
		assert.Equal(t, "malformed sides", err.(draftable.ErrBadRequest).Detail)
	}

	set(http.StatusUnauthorized, "bad token")
	_, err = client.AllComparisons()
	if assert.IsType(t, draftable.ErrInvalidAuthentication{}, err) {
		assert.Equal(t, "bad token", err.(draftable.ErrInvalidAuthentication).Detail)
	}

	set(http.StatusForbidden, "no access")
	_, err = client.AllComparisons()
	assert.IsType(t, draftable.ErrInvalidAuthentication{}, err)

	// A 404 on the list endpoint does not name a missing comparison,
	// so it surfaces as ErrUnknown.
	set(http.StatusNotFound, "gone")
	_, err = client.AllComparisons()
	if assert.IsType(t, draftable.ErrUnknown{}, err) {
		assert.Equal(t, http.StatusNotFound, err.(draftable.ErrUnknown).StatusCode)
	}

	set(http.StatusInternalServerError, "oops")
	_, err = client.AllComparisons()
	if assert.IsType(t, draftable.ErrUnknown{}, err) {
		unknown := err.(draftable.ErrUnknown)
		assert.Equal(t, http.StatusInternalServerError, unknown.StatusCode)
		assert.Equal(t, "oops", unknown.Detail)
	}

	// A 404 on a specific comparison or export becomes the
	// corresponding not-found error, naming the client's account.
	set(http.StatusNotFound, "")
	_, err = client.Comparison("absent")
	if assert.IsType(t, draftable.ErrComparisonNotFound{}, err) {
		notFound := err.(draftable.ErrComparisonNotFound)
		assert.Equal(t, "acct", notFound.AccountID)
		assert.Equal(t, "absent", notFound.Identifier)
	}
	err = client.DeleteComparison("absent")
	assert.IsType(t, draftable.ErrComparisonNotFound{}, err)
	_, err = client.Export("absent")
	if assert.IsType(t, draftable.ErrExportNotFound{}, err) {
		notFound := err.(draftable.ErrExportNotFound)
		assert.Equal(t, "acct", notFound.AccountID)
		assert.Equal(t, "absent", notFound.Identifier)
	}

	// A success status with an undecodable body is an I/O error.
	set(http.StatusOK, "{")
	_, err = client.AllComparisons()
	assert.IsType(t, draftable.ErrIO{}, err)
}

func TestConnectionError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := NewWithBaseURL("acct", "auth-token", url)
	require.NoError(t, err)
	_, err = client.AllComparisons()
	assert.IsType(t, draftable.ErrIO{}, err)
}

// TestValidationBeforeTraffic verifies that invalid parameters are
// rejected on the client, before any request is made.
func TestValidationBeforeTraffic(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		http.Error(w, "should not be reached", http.StatusTeapot)
	}))
	defer server.Close()

	client, err := NewWithBaseURL("acct", "auth-token", server.URL)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Comparison("not valid!")
	assert.IsType(t, draftable.ErrInvalidArgument{}, err)
	err = client.DeleteComparison("not valid!")
	assert.IsType(t, draftable.ErrInvalidArgument{}, err)
	_, err = client.Export("not valid!")
	assert.IsType(t, draftable.ErrInvalidArgument{}, err)
	_, err = client.CreateComparison(draftable.ComparisonRequest{})
	assert.IsType(t, draftable.ErrInvalidArgument{}, err)
	_, err = client.CreateExport("not valid!", draftable.CombinedExport)
	assert.IsType(t, draftable.ErrInvalidArgument{}, err)
	_, err = client.CreateExport("parent", draftable.ExportKind(42))
	assert.IsType(t, draftable.ErrInvalidArgument{}, err)
	_, err = client.WaitForComparison("not valid!", time.Minute)
	assert.IsType(t, draftable.ErrInvalidArgument{}, err)

	assert.EqualValues(t, 0, atomic.LoadInt32(&requests))
}
