// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/diffeo/go-draftable/restdata"
)

// ComparisonList returns every comparison in the account, newest
// first.
func (api *restAPI) ComparisonList(ctx *context) (interface{}, error) {
	comparisons, err := ctx.Account.AllComparisons()
	if err != nil {
		return nil, httpError(err)
	}
	return restdata.FromComparisons(comparisons), nil
}

// ComparisonCreate submits a new comparison from a parsed creation
// form.
func (api *restAPI) ComparisonCreate(ctx *context, in interface{}) (interface{}, error) {
	form, valid := in.(restdata.CreateComparisonForm)
	if !valid {
		return nil, errUnmarshal
	}
	req, err := form.ToRequest()
	if err != nil {
		return nil, restdata.ErrBadRequest{Err: err}
	}
	comparison, err := ctx.Account.CreateComparison(req)
	if err != nil {
		return nil, httpError(err)
	}
	result := restdata.FromComparison(comparison)
	var location string
	err = buildURLs(api.Router, "identifier", comparison.Identifier).
		URL(&location, "comparison").
		Error
	if err != nil {
		return nil, err
	}
	return responseCreated{Location: location, Body: result}, nil
}

// ComparisonGet retrieves one comparison by identifier.
func (api *restAPI) ComparisonGet(ctx *context) (interface{}, error) {
	comparison, err := ctx.Account.Comparison(ctx.Identifier)
	if err != nil {
		return nil, httpError(err)
	}
	return restdata.FromComparison(comparison), nil
}

// ComparisonDelete deletes one comparison by identifier.
func (api *restAPI) ComparisonDelete(ctx *context) (interface{}, error) {
	return nil, httpError(ctx.Account.DeleteComparison(ctx.Identifier))
}
