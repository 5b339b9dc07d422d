// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package draftabletest

import (
	"github.com/diffeo/go-draftable/draftable"
)

// ---------------------------------------------------------------------------
// Support functions for common tests

// URLSide builds a URL-backed request side, failing the test
// immediately if the arguments are rejected.
func (s *Suite) URLSide(sourceURL, fileType string) draftable.SideSpec {
	side, err := draftable.SideFromURL(sourceURL, fileType)
	s.Require().NoError(err)
	return side
}

// ByteSide builds an uploaded-content request side, failing the test
// immediately if the arguments are rejected.
func (s *Suite) ByteSide(data []byte, fileType string) draftable.SideSpec {
	side, err := draftable.SideFromBytes(data, fileType)
	s.Require().NoError(err)
	return side
}

// SimpleRequest builds the smallest valid comparison request, two
// URL-backed sides.
func (s *Suite) SimpleRequest() draftable.ComparisonRequest {
	return draftable.ComparisonRequest{
		Left:  s.URLSide("https://example.com/left.pdf", "pdf"),
		Right: s.URLSide("https://example.com/right.docx", "docx"),
	}
}

// CreateComparison submits a request and fails the test immediately
// if the creation fails.
func (s *Suite) CreateComparison(req draftable.ComparisonRequest) draftable.Comparison {
	comparison, err := s.Draftable.CreateComparison(req)
	s.Require().NoError(err)
	return comparison
}

// ComparisonPending checks that a comparison reports no readiness
// state at all.
func (s *Suite) ComparisonPending(c draftable.Comparison) {
	s.False(c.Ready)
	s.Nil(c.ReadyTime)
	s.Nil(c.Failed)
	s.Empty(c.ErrorMessage)
}

// ComparisonReady checks that a comparison is ready and succeeded.
func (s *Suite) ComparisonReady(c draftable.Comparison) {
	s.True(c.Ready)
	s.NotNil(c.ReadyTime)
	if s.NotNil(c.Failed) {
		s.False(*c.Failed)
	}
	s.Empty(c.ErrorMessage)
}

// ComparisonFailed checks that a comparison is ready and failed with
// the given message.
func (s *Suite) ComparisonFailed(c draftable.Comparison, message string) {
	s.True(c.Ready)
	s.NotNil(c.ReadyTime)
	if s.NotNil(c.Failed) {
		s.True(*c.Failed)
	}
	s.Equal(message, c.ErrorMessage)
}

// ExportPending checks that an export reports no readiness state and
// no URL yet.
func (s *Suite) ExportPending(e draftable.Export) {
	s.False(e.Ready)
	s.Nil(e.Failed)
	s.Empty(e.URL)
	s.Empty(e.ErrorMessage)
}

// ExportReady checks that an export is ready, succeeded, and carries
// a result URL.
func (s *Suite) ExportReady(e draftable.Export) {
	s.True(e.Ready)
	if s.NotNil(e.Failed) {
		s.False(*e.Failed)
	}
	s.NotEmpty(e.URL)
	s.Empty(e.ErrorMessage)
}

// ComparisonIsMissing checks that err reports a missing comparison in
// the suite's account.
func (s *Suite) ComparisonIsMissing(err error, identifier string) {
	if s.IsType(draftable.ErrComparisonNotFound{}, err) {
		e := err.(draftable.ErrComparisonNotFound)
		s.Equal(s.AccountID, e.AccountID)
		s.Equal(identifier, e.Identifier)
	}
}

// ExportIsMissing checks that err reports a missing export in the
// suite's account.
func (s *Suite) ExportIsMissing(err error, identifier string) {
	if s.IsType(draftable.ErrExportNotFound{}, err) {
		e := err.(draftable.ErrExportNotFound)
		s.Equal(s.AccountID, e.AccountID)
		s.Equal(identifier, e.Identifier)
	}
}
