// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffeo/go-draftable/draftable"
	"github.com/diffeo/go-draftable/memory"
	"github.com/diffeo/go-draftable/restserver"
)

// asyncFixture builds a client talking to an in-process server with
// one pre-created comparison, "async-doc".
func asyncFixture(t *testing.T) (*Client, func()) {
	store := memory.New()
	account := store.Account("account", "auth-token")
	server := httptest.NewServer(restserver.NewRouter(store))

	left, err := draftable.SideFromURL("https://example.com/left.pdf", "pdf")
	require.NoError(t, err)
	right, err := draftable.SideFromURL("https://example.com/right.pdf", "pdf")
	require.NoError(t, err)
	_, err = account.CreateComparison(draftable.ComparisonRequest{
		Identifier: "async-doc",
		Left:       left,
		Right:      right,
	})
	require.NoError(t, err)

	client, err := NewWithBaseURL("account", "auth-token", server.URL)
	require.NoError(t, err)
	return client, func() {
		client.Close()
		server.Close()
	}
}

// TestAsyncParity verifies that the Go... variants return the same
// results as their synchronous counterparts.
func TestAsyncParity(t *testing.T) {
	client, teardown := asyncFixture(t)
	defer teardown()

	want, err := client.Comparison("async-doc")
	require.NoError(t, err)

	call := client.GoComparison("async-doc")
	<-call.Done()
	got, err := call.Comparison()
	if assert.NoError(t, err) {
		assert.Equal(t, want, got)
	}

	listCall := client.GoAllComparisons()
	comparisons, err := listCall.Comparisons()
	if assert.NoError(t, err) {
		assert.Equal(t, []draftable.Comparison{want}, comparisons)
	}

	// The result accessor can be called again after completion.
	got, err = call.Comparison()
	if assert.NoError(t, err) {
		assert.Equal(t, want, got)
	}
}

func TestAsyncErrors(t *testing.T) {
	client, teardown := asyncFixture(t)
	defer teardown()

	call := client.GoComparison("absent")
	_, err := call.Comparison()
	assert.IsType(t, draftable.ErrComparisonNotFound{}, err)

	// Validation failures complete the call without any traffic.
	createCall := client.GoCreateComparison(draftable.ComparisonRequest{})
	_, err = createCall.Comparison()
	assert.IsType(t, draftable.ErrInvalidArgument{}, err)
}

func TestAsyncDelete(t *testing.T) {
	client, teardown := asyncFixture(t)
	defer teardown()

	call := client.GoDeleteComparison("async-doc")
	assert.NoError(t, call.Err())
	_, err := client.Comparison("async-doc")
	assert.IsType(t, draftable.ErrComparisonNotFound{}, err)

	// Canceling a finished call does nothing.
	call.Cancel()
	assert.NoError(t, call.Err())
}

// TestCancel verifies that canceling a call aborts its in-flight
// request, and that Close cancels everything still running.
func TestCancel(t *testing.T) {
	// The handler holds every request open until the client gives up
	// on it.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client, err := NewWithBaseURL("account", "auth-token", server.URL)
	require.NoError(t, err)
	defer client.Close()

	call := client.GoComparison("pending-doc")
	call.Cancel()
	_, err = call.Comparison()
	assert.IsType(t, draftable.ErrIO{}, err)
	// A second cancel is harmless.
	call.Cancel()

	// Close aborts calls that are still in flight.
	abandoned := client.GoComparison("pending-doc")
	require.NoError(t, client.Close())
	_, err = abandoned.Comparison()
	assert.IsType(t, draftable.ErrIO{}, err)
}
