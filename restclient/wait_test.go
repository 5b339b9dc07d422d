// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffeo/go-draftable/draftable"
	"github.com/diffeo/go-draftable/memory"
	"github.com/diffeo/go-draftable/restdata"
	"github.com/diffeo/go-draftable/restserver"
)

// waitFixture builds a client and its backing store, on the real
// clock, optionally wrapping the server in middleware.
func waitFixture(t *testing.T, wrap func(http.Handler) http.Handler) (*memory.Store, *Client, func()) {
	store := memory.New()
	store.Account("account", "auth-token")
	var handler http.Handler = restserver.NewRouter(store)
	if wrap != nil {
		handler = wrap(handler)
	}
	server := httptest.NewServer(handler)
	client, err := NewWithBaseURL("account", "auth-token", server.URL)
	require.NoError(t, err)
	return store, client, func() {
		client.Close()
		server.Close()
	}
}

func createComparison(t *testing.T, store *memory.Store, identifier string) {
	left, err := draftable.SideFromURL("https://example.com/left.pdf", "pdf")
	require.NoError(t, err)
	right, err := draftable.SideFromURL("https://example.com/right.pdf", "pdf")
	require.NoError(t, err)
	_, err = store.Account("account", "auth-token").CreateComparison(draftable.ComparisonRequest{
		Identifier: identifier,
		Left:       left,
		Right:      right,
	})
	require.NoError(t, err)
}

// TestWaitAlreadyReady verifies that a comparison that is ready on the
// first poll comes back without any sleeping.
func TestWaitAlreadyReady(t *testing.T) {
	store, client, teardown := waitFixture(t, nil)
	defer teardown()
	createComparison(t, store, "fast-doc")

	comparison, err := client.WaitForComparison("fast-doc", time.Minute)
	if assert.NoError(t, err) {
		assert.True(t, comparison.Ready)
		assert.Equal(t, "fast-doc", comparison.Identifier)
	}
}

// TestWaitTimesOut verifies that the deadline cuts the wait short,
// returning the last observed state alongside the error.
func TestWaitTimesOut(t *testing.T) {
	store, client, teardown := waitFixture(t, nil)
	defer teardown()
	store.SetReadyAfter(time.Hour)
	createComparison(t, store, "slow-doc")

	// The first backoff interval already exceeds this timeout, so
	// the wait gives up after a single poll.
	comparison, err := client.WaitForComparison("slow-doc", 50*time.Millisecond)
	assert.IsType(t, draftable.ErrUnknown{}, err)
	assert.Equal(t, "slow-doc", comparison.Identifier)
	assert.False(t, comparison.Ready)
}

// TestWaitStopsOnError verifies that a terminal error ends the wait
// immediately instead of being retried against the deadline.
func TestWaitStopsOnError(t *testing.T) {
	_, client, teardown := waitFixture(t, nil)
	defer teardown()

	start := time.Now()
	_, err := client.WaitForComparison("no-such-doc", time.Minute)
	assert.IsType(t, draftable.ErrComparisonNotFound{}, err)
	assert.WithinDuration(t, start, time.Now(), 10*time.Second)
}

// TestWaitRetriesIO verifies that an I/O failure is retried rather
// than ending the wait.
func TestWaitRetriesIO(t *testing.T) {
	// The first response is truncated garbage; everything afterwards
	// passes through to the real server.
	var mu sync.Mutex
	poisoned := true
	wrap := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			first := poisoned
			poisoned = false
			mu.Unlock()
			if first {
				w.Header().Set("Content-Type", restdata.JSONMediaType)
				io.WriteString(w, "{")
				return
			}
			next.ServeHTTP(w, r)
		})
	}

	store, client, teardown := waitFixture(t, wrap)
	defer teardown()
	createComparison(t, store, "flaky-doc")

	comparison, err := client.WaitForComparison("flaky-doc", time.Minute)
	if assert.NoError(t, err) {
		assert.True(t, comparison.Ready)
	}
}
