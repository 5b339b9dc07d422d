// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package draftabletest

import (
	"time"

	"github.com/diffeo/go-draftable/draftable"
)

// TestComparisonLifecycle validates a basic comparison lifetime:
// create it, observe it pending, watch it become ready, delete it.
func (s *Suite) TestComparisonLifecycle() {
	s.Control.SetReadyAfter(time.Minute)
	created := s.CreateComparison(s.SimpleRequest())

	// The new comparison gets a generated identifier and echoes
	// back both sides
	s.NoError(draftable.ValidateIdentifier(created.Identifier))
	s.Equal("pdf", created.Left.FileType)
	s.Equal("https://example.com/left.pdf", created.Left.SourceURL)
	s.Equal("docx", created.Right.FileType)
	s.Equal("https://example.com/right.docx", created.Right.SourceURL)
	s.False(created.Public)
	s.Nil(created.ExpiryTime)
	s.WithinDuration(s.Clock.Now(), created.CreationTime, 0)

	// Rendering has not finished yet
	s.ComparisonPending(created)

	// Fetching it back shows the same pending comparison
	fetched, err := s.Draftable.Comparison(created.Identifier)
	if s.NoError(err) {
		s.Equal(created.Identifier, fetched.Identifier)
		s.ComparisonPending(fetched)
	}

	// Half the rendering time is not enough
	s.Clock.Add(30 * time.Second)
	fetched, err = s.Draftable.Comparison(created.Identifier)
	if s.NoError(err) {
		s.ComparisonPending(fetched)
	}

	// The readiness deadline itself is enough
	s.Clock.Add(30 * time.Second)
	fetched, err = s.Draftable.Comparison(created.Identifier)
	if s.NoError(err) {
		s.ComparisonReady(fetched)
		s.WithinDuration(created.CreationTime.Add(time.Minute), *fetched.ReadyTime, 0)
	}

	// Deleting it makes it gone, and a second delete says so
	err = s.Draftable.DeleteComparison(created.Identifier)
	s.NoError(err)
	_, err = s.Draftable.Comparison(created.Identifier)
	s.ComparisonIsMissing(err, created.Identifier)
	err = s.Draftable.DeleteComparison(created.Identifier)
	s.ComparisonIsMissing(err, created.Identifier)
}

// TestComparisonReadyImmediately checks the default simulated
// rendering time of zero: comparisons are ready as soon as they are
// created.
func (s *Suite) TestComparisonReadyImmediately() {
	created := s.CreateComparison(s.SimpleRequest())
	s.ComparisonReady(created)
	if s.NotNil(created.ReadyTime) {
		s.WithinDuration(created.CreationTime, *created.ReadyTime, 0)
	}
}

// TestFailedComparison checks that a simulated rendering failure is
// reported once the comparison is ready, and only for the single
// comparison it was armed for.
func (s *Suite) TestFailedComparison() {
	s.Control.SetReadyAfter(time.Minute)
	s.Control.FailNext("conversion timed out")

	failing := s.CreateComparison(s.SimpleRequest())
	okay := s.CreateComparison(s.SimpleRequest())

	// Neither comparison reports anything until rendering finishes
	s.ComparisonPending(failing)
	s.ComparisonPending(okay)

	s.Clock.Add(time.Minute)
	fetched, err := s.Draftable.Comparison(failing.Identifier)
	if s.NoError(err) {
		s.ComparisonFailed(fetched, "conversion timed out")
	}

	// The failure was armed for one comparison only
	fetched, err = s.Draftable.Comparison(okay.Identifier)
	if s.NoError(err) {
		s.ComparisonReady(fetched)
	}
}

// TestChosenIdentifier creates a comparison under a caller-chosen
// identifier.
func (s *Suite) TestChosenIdentifier() {
	req := s.SimpleRequest()
	req.Identifier = "chosen.identifier-01"
	created := s.CreateComparison(req)
	s.Equal("chosen.identifier-01", created.Identifier)

	fetched, err := s.Draftable.Comparison("chosen.identifier-01")
	if s.NoError(err) {
		s.Equal("chosen.identifier-01", fetched.Identifier)
	}
}

// TestDuplicateIdentifier checks that creating two comparisons under
// the same identifier fails the second creation.
func (s *Suite) TestDuplicateIdentifier() {
	req := s.SimpleRequest()
	req.Identifier = "duplicate"
	s.CreateComparison(req)

	_, err := s.Draftable.CreateComparison(req)
	s.IsType(draftable.ErrBadRequest{}, err)
}

// TestGeneratedIdentifiers checks that the service invents distinct,
// valid identifiers when the request does not choose one.
func (s *Suite) TestGeneratedIdentifiers() {
	first := s.CreateComparison(s.SimpleRequest())
	second := s.CreateComparison(s.SimpleRequest())
	s.NoError(draftable.ValidateIdentifier(first.Identifier))
	s.NoError(draftable.ValidateIdentifier(second.Identifier))
	s.NotEqual(first.Identifier, second.Identifier)
}

// TestComparisonNotFound checks the error from looking up or
// deleting comparisons that do not exist.
func (s *Suite) TestComparisonNotFound() {
	_, err := s.Draftable.Comparison("no-such-comparison")
	s.ComparisonIsMissing(err, "no-such-comparison")

	err = s.Draftable.DeleteComparison("no-such-comparison")
	s.ComparisonIsMissing(err, "no-such-comparison")
}

// TestListComparisons checks that listing returns every comparison,
// newest first.
func (s *Suite) TestListComparisons() {
	comparisons, err := s.Draftable.AllComparisons()
	if s.NoError(err) {
		s.Empty(comparisons)
	}

	for _, identifier := range []string{"first", "second", "third"} {
		req := s.SimpleRequest()
		req.Identifier = identifier
		s.CreateComparison(req)
		s.Clock.Add(time.Second)
	}

	comparisons, err = s.Draftable.AllComparisons()
	if s.NoError(err) {
		if s.Len(comparisons, 3) {
			s.Equal("third", comparisons[0].Identifier)
			s.Equal("second", comparisons[1].Identifier)
			s.Equal("first", comparisons[2].Identifier)
		}
	}
}

// TestPublicComparison checks that the public flag round-trips.
func (s *Suite) TestPublicComparison() {
	req := s.SimpleRequest()
	req.Public = true
	created := s.CreateComparison(req)
	s.True(created.Public)

	fetched, err := s.Draftable.Comparison(created.Identifier)
	if s.NoError(err) {
		s.True(fetched.Public)
	}
}

// TestExpiringComparison checks that a comparison with an expiry time
// disappears when that time arrives.
func (s *Suite) TestExpiringComparison() {
	expires := s.Clock.Now().Add(time.Hour)
	req := s.SimpleRequest()
	req.Identifier = "expiring"
	req.Expires = &expires
	created := s.CreateComparison(req)
	if s.NotNil(created.ExpiryTime) {
		s.WithinDuration(expires, *created.ExpiryTime, 0)
	}

	// Just before the expiry time it is still there
	s.Clock.Add(time.Hour - time.Second)
	_, err := s.Draftable.Comparison("expiring")
	s.NoError(err)

	// At the expiry time it is gone
	s.Clock.Add(time.Second)
	_, err = s.Draftable.Comparison("expiring")
	s.ComparisonIsMissing(err, "expiring")

	comparisons, err := s.Draftable.AllComparisons()
	if s.NoError(err) {
		s.Empty(comparisons)
	}
}

// TestExpiresValidation checks that a creation request whose expiry
// time is not in the future is rejected before anything is created.
func (s *Suite) TestExpiresValidation() {
	expires := s.Clock.Now()
	req := s.SimpleRequest()
	req.Expires = &expires
	_, err := s.Draftable.CreateComparison(req)
	s.IsType(draftable.ErrInvalidArgument{}, err)

	comparisons, err := s.Draftable.AllComparisons()
	if s.NoError(err) {
		s.Empty(comparisons)
	}
}

// TestInvalidRequest checks that a request built without the side
// constructors is rejected.
func (s *Suite) TestInvalidRequest() {
	_, err := s.Draftable.CreateComparison(draftable.ComparisonRequest{})
	s.IsType(draftable.ErrInvalidArgument{}, err)
}

// TestInvalidIdentifier checks that identifiers with characters
// outside the allowed set are rejected without being looked up.
func (s *Suite) TestInvalidIdentifier() {
	_, err := s.Draftable.Comparison("no spaces allowed")
	s.IsType(draftable.ErrInvalidArgument{}, err)

	err = s.Draftable.DeleteComparison("no spaces allowed")
	s.IsType(draftable.ErrInvalidArgument{}, err)
}

// TestUploadedContent creates a comparison from uploaded document
// content rather than source URLs.
func (s *Suite) TestUploadedContent() {
	req := draftable.ComparisonRequest{
		Identifier: "uploaded",
		Left:       s.ByteSide([]byte("%PDF-1.4 left"), "pdf").WithDisplayName("Draft A"),
		Right:      s.ByteSide([]byte("%PDF-1.4 right"), "pdf"),
	}
	created := s.CreateComparison(req)

	s.Equal("pdf", created.Left.FileType)
	s.Empty(created.Left.SourceURL)
	s.Equal("Draft A", created.Left.DisplayName)
	s.Equal("pdf", created.Right.FileType)
	s.Empty(created.Right.SourceURL)
}

// TestMixedSides compares an uploaded document against one fetched
// from a URL.
func (s *Suite) TestMixedSides() {
	req := draftable.ComparisonRequest{
		Left:  s.URLSide("https://example.com/contract-v1.pdf", "pdf"),
		Right: s.ByteSide([]byte("new revision"), "docx"),
	}
	created := s.CreateComparison(req)

	s.Equal("https://example.com/contract-v1.pdf", created.Left.SourceURL)
	s.Empty(created.Right.SourceURL)
	s.Equal("docx", created.Right.FileType)
}
