// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"testing"

	"github.com/diffeo/go-draftable/draftable/draftabletest"
	"github.com/stretchr/testify/suite"
)

// Suite runs the generic Draftable tests over an in-memory store.
type Suite struct {
	draftabletest.Suite
}

// SetupSuite does global setup for the test suite.
func (s *Suite) SetupSuite() {
	s.Suite.SetupSuite()
	store := NewWithClock(s.Clock)
	s.AccountID = "account"
	s.Draftable = store.Account(s.AccountID, "auth-token")
	s.Control = store
}

// TestDraftable runs the Draftable generic tests.
func TestDraftable(t *testing.T) {
	suite.Run(t, &Suite{})
}
