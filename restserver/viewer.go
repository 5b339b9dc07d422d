// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/diffeo/go-draftable/draftable"
	"github.com/diffeo/go-draftable/restdata"
	"github.com/diffeo/go-draftable/signature"
)

// Viewer serves the comparison viewer page.  Unlike the JSON
// resources it is an HTML endpoint with its own access rules: public
// comparisons need no credentials at all, private ones need a signed
// URL minted by the signature package, and the "wait" query flag
// makes an unknown identifier render a placeholder page instead of
// failing, so a link can be handed out before its comparison has been
// submitted.
func (api *restAPI) Viewer(resp http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	page, err := api.viewerPage(vars["account"], vars["identifier"], req.URL.Query())
	if err != nil {
		status := http.StatusInternalServerError
		if errS, hasStatus := err.(restdata.ErrorStatus); hasStatus {
			status = errS.HTTPStatus()
		}
		http.Error(resp, err.Error(), status)
		return
	}
	resp.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(resp, page)
}

func (api *restAPI) viewerPage(accountID, identifier string, query url.Values) (string, error) {
	authToken := api.Store.AuthToken(accountID)
	if authToken == "" {
		return "", restdata.ErrNotFound{Err: fmt.Errorf("no account %q", accountID)}
	}
	account := api.Store.Authenticate(authToken)

	_, wait := query["wait"]
	comparison, err := account.Comparison(identifier)
	switch err.(type) {
	case nil:
	case draftable.ErrComparisonNotFound, draftable.ErrInvalidArgument:
		if wait {
			// The comparison may simply not have been
			// submitted yet; render the placeholder page
			// it will appear on.
			return renderViewer(draftable.Comparison{Identifier: identifier}), nil
		}
		return "", restdata.ErrNotFound{Err: err}
	default:
		return "", err
	}

	if !comparison.Public {
		if err := api.checkSignature(authToken, accountID, identifier, query); err != nil {
			return "", err
		}
	}
	return renderViewer(comparison), nil
}

// checkSignature validates the signed-URL query parameters for a
// private comparison.
func (api *restAPI) checkSignature(authToken, accountID, identifier string, query url.Values) error {
	validUntil, err := strconv.ParseInt(query.Get("valid_until"), 10, 64)
	if err != nil {
		return restdata.ErrForbidden{Err: errors.New("viewer URL carries no valid signature")}
	}
	if !api.Store.Now().Before(time.Unix(validUntil, 0)) {
		return restdata.ErrForbidden{Err: errors.New("signed viewer URL has expired")}
	}
	if !signature.Verify(authToken, accountID, identifier, validUntil, query.Get("signature")) {
		return restdata.ErrForbidden{Err: errors.New("viewer URL signature does not match")}
	}
	return nil
}

// renderViewer produces the viewer page itself.  The development
// server has no real renderer, so the page just reports the state of
// the comparison it would show.
func renderViewer(c draftable.Comparison) string {
	state := "is still being processed"
	switch {
	case c.HasFailed():
		state = "could not be processed"
	case c.Ready:
		state = "is ready"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Comparison %[1]s</title></head>
<body><p>Comparison %[1]s %[2]s.</p></body>
</html>
`, html.EscapeString(c.Identifier), state)
}
