// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/diffeo/go-draftable/draftable/draftabletest"
	"github.com/diffeo/go-draftable/memory"
	"github.com/diffeo/go-draftable/restserver"
)

// Suite runs the generic Draftable tests over the REST client,
// talking to an in-process HTTP server backed by an in-memory store.
// Every generic test therefore exercises the full round trip: request
// validation, form encoding, the server's form decoding, the store,
// and the response decoding on the way back.
type Suite struct {
	draftabletest.Suite
	server *httptest.Server
	client *Client
}

// SetupSuite does global setup for the test suite.
func (s *Suite) SetupSuite() {
	s.Suite.SetupSuite()

	store := memory.NewWithClock(s.Clock)
	s.AccountID = "account"
	store.Account(s.AccountID, "auth-token")
	s.server = httptest.NewServer(restserver.NewRouter(store))

	client, err := NewWithClock(s.AccountID, "auth-token", s.server.URL, s.Clock)
	s.Require().NoError(err)
	s.client = client
	s.Draftable = client
	s.Control = store
}

// TearDownSuite shuts down the client and the HTTP server.
func (s *Suite) TearDownSuite() {
	if s.client != nil {
		s.NoError(s.client.Close())
	}
	if s.server != nil {
		s.server.Close()
	}
}

// TestDraftable runs the Draftable generic tests.
func TestDraftable(t *testing.T) {
	suite.Run(t, &Suite{})
}
