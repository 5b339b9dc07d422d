// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package draftabletest

import (
	"time"

	"github.com/diffeo/go-draftable/draftable"
)

// TestExportLifecycle renders an export of a finished comparison and
// watches it become ready.
func (s *Suite) TestExportLifecycle() {
	req := s.SimpleRequest()
	req.Identifier = "exported"
	s.CreateComparison(req)

	s.Control.SetReadyAfter(time.Minute)
	export, err := s.Draftable.CreateExport("exported", draftable.CombinedExport)
	if !s.NoError(err) {
		return
	}
	s.NoError(draftable.ValidateIdentifier(export.Identifier))
	s.NotEqual("exported", export.Identifier)
	s.Equal("exported", export.Comparison)
	s.Equal(draftable.CombinedExport, export.Kind)
	s.ExportPending(export)

	// Fetching it back shows it still rendering
	fetched, err := s.Draftable.Export(export.Identifier)
	if s.NoError(err) {
		s.ExportPending(fetched)
	}

	// Once the rendering time passes it is ready and has a
	// download URL
	s.Clock.Add(time.Minute)
	fetched, err = s.Draftable.Export(export.Identifier)
	if s.NoError(err) {
		s.ExportReady(fetched)
		s.Equal("exported", fetched.Comparison)
		s.Equal(draftable.CombinedExport, fetched.Kind)
	}
}

// TestExportKinds round-trips each rendering style.
func (s *Suite) TestExportKinds() {
	req := s.SimpleRequest()
	req.Identifier = "kinds"
	s.CreateComparison(req)

	kinds := []draftable.ExportKind{
		draftable.SinglePageExport,
		draftable.CombinedExport,
		draftable.LeftExport,
		draftable.RightExport,
	}
	for _, kind := range kinds {
		export, err := s.Draftable.CreateExport("kinds", kind)
		if s.NoError(err) {
			s.Equal(kind, export.Kind)
			fetched, err := s.Draftable.Export(export.Identifier)
			if s.NoError(err) {
				s.Equal(kind, fetched.Kind)
			}
		}
	}
}

// TestExportOfPendingComparison checks that a comparison that is
// still rendering cannot be exported yet.
func (s *Suite) TestExportOfPendingComparison() {
	s.Control.SetReadyAfter(time.Minute)
	req := s.SimpleRequest()
	req.Identifier = "pending"
	s.CreateComparison(req)

	_, err := s.Draftable.CreateExport("pending", draftable.CombinedExport)
	s.IsType(draftable.ErrBadRequest{}, err)

	// Exporting works once the comparison is ready
	s.Clock.Add(time.Minute)
	_, err = s.Draftable.CreateExport("pending", draftable.CombinedExport)
	s.NoError(err)
}

// TestExportOfFailedComparison checks that a comparison whose
// rendering failed cannot be exported.
func (s *Suite) TestExportOfFailedComparison() {
	s.Control.FailNext("simulated failure")
	req := s.SimpleRequest()
	req.Identifier = "failed"
	s.CreateComparison(req)

	_, err := s.Draftable.CreateExport("failed", draftable.CombinedExport)
	s.IsType(draftable.ErrBadRequest{}, err)
}

// TestExportOfMissingComparison checks that exporting a comparison
// that does not exist fails.
func (s *Suite) TestExportOfMissingComparison() {
	_, err := s.Draftable.CreateExport("no-such-comparison", draftable.CombinedExport)
	s.IsType(draftable.ErrBadRequest{}, err)
}

// TestExportNotFound checks the error from looking up an export that
// does not exist.
func (s *Suite) TestExportNotFound() {
	_, err := s.Draftable.Export("no-such-export")
	s.ExportIsMissing(err, "no-such-export")
}

// TestExportInvalidKind checks that an out-of-range rendering style
// is rejected before anything is created.
func (s *Suite) TestExportInvalidKind() {
	req := s.SimpleRequest()
	req.Identifier = "kind-check"
	s.CreateComparison(req)

	_, err := s.Draftable.CreateExport("kind-check", draftable.ExportKind(42))
	s.IsType(draftable.ErrInvalidArgument{}, err)
}

// TestExportsFollowComparison checks that deleting a comparison also
// deletes its exports, and that expiry does the same.
func (s *Suite) TestExportsFollowComparison() {
	req := s.SimpleRequest()
	req.Identifier = "parent"
	s.CreateComparison(req)
	export, err := s.Draftable.CreateExport("parent", draftable.LeftExport)
	if !s.NoError(err) {
		return
	}

	s.NoError(s.Draftable.DeleteComparison("parent"))
	_, err = s.Draftable.Export(export.Identifier)
	s.ExportIsMissing(err, export.Identifier)

	// The same happens when the parent expires rather than being
	// deleted
	expires := s.Clock.Now().Add(time.Hour)
	req.Expires = &expires
	s.CreateComparison(req)
	export, err = s.Draftable.CreateExport("parent", draftable.LeftExport)
	if !s.NoError(err) {
		return
	}
	s.Clock.Add(time.Hour)
	_, err = s.Draftable.Export(export.Identifier)
	s.ExportIsMissing(err, export.Identifier)
}
