// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"time"

	"github.com/gorilla/mux"

	"github.com/diffeo/go-draftable/draftable"
	"github.com/diffeo/go-draftable/restdata"
)

// Store is the backend a comparison service serves.  The memory
// package's Store satisfies it.
type Store interface {
	// Authenticate resolves an auth token to the matching
	// account's view, or nil if no account has that token.
	Authenticate(authToken string) draftable.Draftable

	// AuthToken reports the auth token of the named account, or
	// the empty string if no such account exists.  The viewer
	// page needs it to check signatures, which are keyed with the
	// token.
	AuthToken(accountID string) string

	// Now reports the store's notion of the current time, which
	// anchors signed-URL expiry checks.
	Now() time.Time
}

// NewRouter creates a new HTTP router that serves the Draftable
// comparison API for store.  All resources are directly under the URL
// path root; for more control over this setup, create a mux.Router
// and call PopulateRouter instead.
func NewRouter(store Store) *mux.Router {
	r := mux.NewRouter()
	PopulateRouter(r, store)
	return r
}

// PopulateRouter adds Draftable API routes to an existing
// github.com/gorilla/mux router object.  This can be used, for
// instance, to serve the API under the same version prefix as the
// hosted service:
//
//     r := mux.NewRouter()
//     s := r.PathPrefix("/v1").Subrouter()
//     restserver.PopulateRouter(s, store)
func PopulateRouter(r *mux.Router, store Store) {
	api := &restAPI{Store: store, Router: r}
	api.PopulateRouter(r)
}

// restAPI holds the persistent state for the Draftable REST API.
type restAPI struct {
	Store  Store
	Router *mux.Router
}

// PopulateRouter adds all Draftable URL paths to a router.
func (api *restAPI) PopulateRouter(r *mux.Router) {
	r.Path("/comparisons").Name("comparisons").Handler(&resourceHandler{
		Representation: restdata.CreateComparisonForm{},
		Context:        api.Context,
		Get:            api.ComparisonList,
		Post:           api.ComparisonCreate,
	})
	r.Path("/comparisons/viewer/{account}/{identifier}").Name("viewer").
		HandlerFunc(api.Viewer)
	r.Path("/comparisons/{identifier}").Name("comparison").Handler(&resourceHandler{
		Representation: restdata.Comparison{},
		Context:        api.Context,
		Get:            api.ComparisonGet,
		Delete:         api.ComparisonDelete,
	})
	r.Path("/exports").Name("exports").Handler(&resourceHandler{
		Representation: restdata.CreateExportForm{},
		Context:        api.Context,
		Post:           api.ExportCreate,
	})
	r.Path("/exports/{identifier}").Name("export").Handler(&resourceHandler{
		Representation: restdata.Export{},
		Context:        api.Context,
		Get:            api.ExportGet,
	})
}
