// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"context"
	"net/url"

	"github.com/diffeo/go-draftable/draftable"
	"github.com/diffeo/go-draftable/restdata"
)

// Export fetches a single export by its identifier.
func (c *Client) Export(identifier string) (draftable.Export, error) {
	return c.export(context.Background(), identifier)
}

func (c *Client) export(ctx context.Context, identifier string) (draftable.Export, error) {
	if err := draftable.ValidateIdentifier(identifier); err != nil {
		return draftable.Export{}, err
	}
	var wire restdata.Export
	err := c.get(ctx, restdata.ExportPath, map[string]interface{}{"identifier": identifier}, &wire)
	if _, missing := err.(notFoundError); missing {
		return draftable.Export{}, draftable.ErrExportNotFound{AccountID: c.accountID, Identifier: identifier}
	}
	if err != nil {
		return draftable.Export{}, normalize(err)
	}
	result, err := wire.ToExport()
	if err != nil {
		return draftable.Export{}, draftable.ErrIO{Err: err}
	}
	return result, nil
}

// CreateExport starts rendering an export of the named comparison.
// The export comes back immediately with Ready false and no URL; poll
// Export to observe it finish.  The comparison must itself be ready
// before its exports can render.
func (c *Client) CreateExport(comparison string, kind draftable.ExportKind) (draftable.Export, error) {
	return c.createExport(context.Background(), comparison, kind)
}

func (c *Client) createExport(ctx context.Context, comparison string, kind draftable.ExportKind) (draftable.Export, error) {
	if err := draftable.ValidateIdentifier(comparison); err != nil {
		return draftable.Export{}, err
	}
	kindText, err := kind.MarshalText()
	if err != nil {
		return draftable.Export{}, draftable.ErrInvalidArgument{Param: "kind", Err: err}
	}
	values := url.Values{}
	values.Set(restdata.ComparisonField, comparison)
	values.Set(restdata.KindField, string(kindText))
	var wire restdata.Export
	if err := c.postForm(ctx, restdata.ExportsPath, values, &wire); err != nil {
		return draftable.Export{}, normalize(err)
	}
	result, err := wire.ToExport()
	if err != nil {
		return draftable.Export{}, draftable.ErrIO{Err: err}
	}
	return result, nil
}
