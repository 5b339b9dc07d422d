// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package draftabletest provides generic functional tests for the
// Draftable interface.  A typical backend test module needs to wrap
// Suite to create its backend:
//
//     package mybackend
//
//     import (
//             "testing"
//
//             "github.com/diffeo/go-draftable/draftable/draftabletest"
//             "github.com/stretchr/testify/suite"
//     )
//
//     // Suite is the per-backend generic test suite.
//     type Suite struct {
//             draftabletest.Suite
//     }
//
//     // SetupSuite does global setup for the test suite.
//     func (s *Suite) SetupSuite() {
//             s.Suite.SetupSuite()
//             store := NewWithClock(s.Clock)
//             s.AccountID = "account"
//             s.Draftable = store.Account(s.AccountID, "auth-token")
//             s.Control = store
//     }
//
//     // TestDraftable runs the Draftable generic tests.
//     func TestDraftable(t *testing.T) {
//             suite.Run(t, &Suite{})
//     }
package draftabletest

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"

	"github.com/diffeo/go-draftable/draftable"
)

// Control is the set of knobs a backend exposes so that the generic
// tests can steer its simulated rendering.  The memory store
// implements it directly; a REST client backend passes the store
// behind its test server.
type Control interface {
	// SetReadyAfter sets the simulated rendering time for
	// subsequently created comparisons and exports.
	SetReadyAfter(d time.Duration)

	// FailNext makes the next created comparison report a failure
	// with message once it is ready.
	FailNext(message string)
}

// Suite is the generic Draftable backend test suite.
type Suite struct {
	suite.Suite

	// Clock contains the alternate time source to be used in tests.
	// It is pre-initialized to a mock clock.
	Clock *clock.Mock

	// Draftable contains the account-scoped interface to the
	// backend under test.  It is set by importing packages.
	Draftable draftable.Draftable

	// Control steers the backend's simulated rendering.  It is set
	// by importing packages.
	Control Control

	// AccountID is the account Draftable is scoped to.  It is set
	// by importing packages and is checked against the account IDs
	// reported in not-found errors.
	AccountID string
}

// SetupSuite does one-time initialization for the test suite.
func (s *Suite) SetupSuite() {
	s.Clock = clock.NewMock()
}

// SetupTest resets the backend before each test: every comparison is
// deleted and the rendering delay is set back to zero.
func (s *Suite) SetupTest() {
	s.Control.SetReadyAfter(0)
	comparisons, err := s.Draftable.AllComparisons()
	if s.NoError(err) {
		for _, c := range comparisons {
			s.NoError(s.Draftable.DeleteComparison(c.Identifier))
		}
	}
}
