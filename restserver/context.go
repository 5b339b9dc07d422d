// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/diffeo/go-draftable/draftable"
	"github.com/diffeo/go-draftable/restdata"
)

// errUnmarshal is returned if the post contract is violated and a
// handler function is passed the wrong type.
var errUnmarshal = restdata.ErrBadRequest{
	Err: errors.New("Invalid input format"),
}

// context holds all of the information and objects that can be
// extracted from an incoming request: the authenticated account view
// and the identifier from the URL path, if there is one.
type context struct {
	Account    draftable.Draftable
	Identifier string
}

func (api *restAPI) Context(req *http.Request) (*context, error) {
	ctx := &context{}
	var err error
	ctx.Account, err = api.authenticate(req)
	if err != nil {
		return nil, err
	}
	ctx.Identifier = mux.Vars(req)["identifier"]
	return ctx, nil
}

// authenticate resolves the Authorization header to an account view.
// Every JSON resource requires credentials; only the viewer page has
// its own access rules.
func (api *restAPI) authenticate(req *http.Request) (draftable.Draftable, error) {
	header := req.Header.Get("Authorization")
	if header == "" {
		return nil, restdata.ErrUnauthorized{Err: errors.New("No Authorization header")}
	}
	token := strings.TrimPrefix(header, "Token ")
	if token == header {
		return nil, restdata.ErrUnauthorized{Err: errors.New(`Authorization scheme must be "Token"`)}
	}
	account := api.Store.Authenticate(token)
	if account == nil {
		return nil, restdata.ErrUnauthorized{Err: errors.New("Unrecognized auth token")}
	}
	return account, nil
}

// httpError attaches HTTP status information to the errors the
// draftable interface returns, so that a missing comparison really
// does produce a 404.  Errors that already know their status, and
// nil, pass through unchanged.
func httpError(err error) error {
	switch err.(type) {
	case nil:
		return nil
	case draftable.ErrComparisonNotFound, draftable.ErrExportNotFound:
		return restdata.ErrNotFound{Err: err}
	case draftable.ErrInvalidArgument, draftable.ErrBadRequest:
		return restdata.ErrBadRequest{Err: err}
	case draftable.ErrInvalidAuthentication:
		return restdata.ErrUnauthorized{Err: err}
	}
	return err
}
