// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"fmt"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/diffeo/go-draftable/draftable"
)

// export is the stored form of one export.  Like comparisons, the
// record is immutable and readiness is computed on read; unlike
// comparisons, exports here never fail.
type export struct {
	identifier string
	comparison string
	kind       draftable.ExportKind
	readyTime  time.Time
}

// view renders the record as a draftable.Export as of time now.  The
// URL of a ready export is synthetic and does not resolve to a real
// document.
func (e *export) view(now time.Time) draftable.Export {
	result := draftable.Export{
		Identifier: e.identifier,
		Comparison: e.comparison,
		Kind:       e.kind,
	}
	if !now.Before(e.readyTime) {
		failed := false
		result.Ready = true
		result.Failed = &failed
		result.URL = fmt.Sprintf("https://exports.example.com/%s/%s.pdf", e.comparison, e.identifier)
	}
	return result
}

// Export retrieves one export.  Exports disappear together with their
// comparison, so an export of a deleted or expired comparison is not
// found.
func (a *Account) Export(identifier string) (draftable.Export, error) {
	if err := draftable.ValidateIdentifier(identifier); err != nil {
		return draftable.Export{}, err
	}
	var result draftable.Export
	err := a.do(func() error {
		now := a.store.clk.Now()
		a.purgeExpired(now)
		e := a.exports[identifier]
		if e == nil {
			return draftable.ErrExportNotFound{AccountID: a.accountID, Identifier: identifier}
		}
		result = e.view(now)
		return nil
	})
	return result, err
}

// CreateExport starts "rendering" an export of a comparison, which
// must exist, be ready, and not have failed.
func (a *Account) CreateExport(comparison string, kind draftable.ExportKind) (draftable.Export, error) {
	if err := draftable.ValidateIdentifier(comparison); err != nil {
		return draftable.Export{}, err
	}
	if _, err := kind.MarshalText(); err != nil {
		return draftable.Export{}, draftable.ErrInvalidArgument{Param: "kind", Err: err}
	}
	var result draftable.Export
	err := a.do(func() error {
		now := a.store.clk.Now()
		a.purgeExpired(now)
		c := a.comparisons[comparison]
		if c == nil {
			return draftable.ErrBadRequest{Detail: fmt.Sprintf("no comparison %q exists", comparison)}
		}
		view := c.view(now)
		if !view.Ready {
			return draftable.ErrBadRequest{Detail: fmt.Sprintf("comparison %q is not ready", comparison)}
		}
		if view.HasFailed() {
			return draftable.ErrBadRequest{Detail: fmt.Sprintf("comparison %q failed and cannot be exported", comparison)}
		}
		e := &export{
			identifier: uuid.NewV4().String(),
			comparison: comparison,
			kind:       kind,
			readyTime:  now.Add(a.store.readyAfter),
		}
		a.exports[e.identifier] = e
		result = e.view(now)
		return nil
	})
	return result, err
}
