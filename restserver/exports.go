// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/diffeo/go-draftable/draftable"
	"github.com/diffeo/go-draftable/restdata"
)

// ExportCreate starts rendering an export from a parsed creation
// form.
func (api *restAPI) ExportCreate(ctx *context, in interface{}) (interface{}, error) {
	form, valid := in.(restdata.CreateExportForm)
	if !valid {
		return nil, errUnmarshal
	}
	var kind draftable.ExportKind
	if err := kind.UnmarshalText([]byte(form.Kind)); err != nil {
		return nil, restdata.ErrBadRequest{Err: err}
	}
	export, err := ctx.Account.CreateExport(form.Comparison, kind)
	if err != nil {
		return nil, httpError(err)
	}
	result := restdata.FromExport(export)
	var location string
	err = buildURLs(api.Router, "identifier", export.Identifier).
		URL(&location, "export").
		Error
	if err != nil {
		return nil, err
	}
	return responseCreated{Location: location, Body: result}, nil
}

// ExportGet retrieves one export by identifier.
func (api *restAPI) ExportGet(ctx *context) (interface{}, error) {
	export, err := ctx.Account.Export(ctx.Identifier)
	if err != nil {
		return nil, httpError(err)
	}
	return restdata.FromExport(export), nil
}
