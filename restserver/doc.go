// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restserver publishes a Draftable backend as a REST service.
// The restclient package is a matching client.
//
// The complete REST API is defined in the restdata package.  The
// routes match the hosted comparison service, so a client pointed at
// this server with NewWithBaseURL behaves the same as one pointed at
// https://api.draftable.com/v1.
//
// HTTP Considerations
//
// Every JSON resource requires an account's credentials in an
// Authorization header:
//
//     Authorization: Token <auth token>
//
// Requests without recognizable credentials fail with 401
// Unauthorized.  The viewer page is the exception; its access rules
// (public comparisons, signed URLs) are described on the Viewer
// method.
//
// Comparisons and exports are created by POSTing HTML forms, either
// multipart/form-data or application/x-www-form-urlencoded; multipart
// is only necessary when a side uploads its document content.  All
// other requests and responses are JSON.
//
// MIME Types
//
// This interface understands MIME types as follows:
//
//     application/vnd.draftable.v1+json
//
// JSON representation of version 1 of this interface.
//
//     application/json
//     text/json
//
// JSON representation of latest version of this interface.
//
// URL Scheme
//
// The following URLs are defined:
//
//     /comparisons
//     /comparisons/{identifier}
//     /comparisons/viewer/{account}/{identifier}
//     /exports
//     /exports/{identifier}
//
// Identifiers are restricted to URL-safe ASCII by validation, so
// they appear in URLs without further encoding.
package restserver
