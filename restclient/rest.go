// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

// This file provides the generic REST transport underneath Client.

import (
	"context"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/jtacoma/uritemplates"

	"github.com/diffeo/go-draftable/draftable"
	"github.com/diffeo/go-draftable/restdata"
)

// notFoundError reports a 404 response.  Operations that address a
// specific comparison or export translate this into the corresponding
// draftable not-found error; anywhere else it surfaces as ErrUnknown.
type notFoundError struct {
	detail string
}

func (e notFoundError) Error() string {
	return "resource not found"
}

// rest performs HTTP calls against a comparison service, translating
// every failure into the draftable package's error types.  The HTTP
// client underneath is created on first use; Close tears it down, and
// a later operation quietly brings it back.
type rest struct {
	accountID string
	authToken string
	base      *url.URL

	mu     sync.Mutex
	client *http.Client
	calls  map[*call]struct{}
}

// template expands an RFC 6570 URI template relative to the base URL.
func (r *rest) template(template string, vars map[string]interface{}) (*url.URL, error) {
	tmpl, err := uritemplates.Parse(template)
	if err != nil {
		return nil, err
	}
	expanded, err := tmpl.Expand(vars)
	if err != nil {
		return nil, err
	}
	return r.base.Parse(expanded)
}

// httpClient returns the live HTTP client, creating one if Close was
// called or nothing has run yet.
func (r *rest) httpClient() *http.Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client == nil {
		r.client = &http.Client{}
	}
	return r.client
}

// register tracks an asynchronous call so Close can cancel it.  The
// call must arrange to deregister itself when it completes.
func (r *rest) register(c *call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = make(map[*call]struct{})
	}
	r.calls[c] = struct{}{}
}

func (r *rest) deregister(c *call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.calls, c)
}

// Close cancels any asynchronous calls still in flight and shuts down
// the underlying HTTP client.  The transport is not dead afterwards:
// the next operation creates a fresh client.  Closing twice, or while
// nothing is open, does nothing.
func (r *rest) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for c := range r.calls {
		c.cancel()
	}
	r.calls = nil
	if r.client != nil {
		r.client.CloseIdleConnections()
		r.client = nil
	}
	return nil
}

// do performs one HTTP request.  expect is the single status code the
// service returns when this operation succeeds; any other status is
// mapped onto the draftable error taxonomy by statusError.  If out is
// non-nil, the response body is decoded into it, which must be of
// pointer type.
func (r *rest) do(ctx context.Context, method string, url *url.URL, body io.Reader, contentType string, expect int, out interface{}) (err error) {
	req, err := http.NewRequest(method, url.String(), body)
	if err != nil {
		return draftable.ErrIO{Err: err}
	}
	req = req.WithContext(ctx)
	req.Header.Set("Authorization", "Token "+r.authToken)
	req.Header.Set("Accept", restdata.JSONMediaType)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := r.httpClient().Do(req)
	if err != nil {
		return draftable.ErrIO{Err: err}
	}

	defer func() {
		cerr := resp.Body.Close()
		if err == nil && cerr != nil {
			err = draftable.ErrIO{Err: cerr}
		}
	}()

	if resp.StatusCode != expect {
		return statusError(resp)
	}

	if out != nil {
		contentType := resp.Header.Get("Content-Type")
		if err := restdata.Decode(contentType, resp.Body, out); err != nil {
			return draftable.ErrIO{Err: err}
		}
	}

	return nil
}

// get retrieves the JSON resource at a path template, expecting
// 200 OK.
func (r *rest) get(ctx context.Context, template string, vars map[string]interface{}, out interface{}) error {
	url, err := r.template(template, vars)
	if err != nil {
		return err
	}
	return r.do(ctx, "GET", url, nil, "", http.StatusOK, out)
}

// delete deletes the resource at a path template, expecting 204 No
// Content.
func (r *rest) delete(ctx context.Context, template string, vars map[string]interface{}) error {
	url, err := r.template(template, vars)
	if err != nil {
		return err
	}
	return r.do(ctx, "DELETE", url, nil, "", http.StatusNoContent, nil)
}

// postForm submits a URL-encoded form to a path template, expecting
// 201 Created.
func (r *rest) postForm(ctx context.Context, template string, values url.Values, out interface{}) error {
	url, err := r.template(template, nil)
	if err != nil {
		return err
	}
	body := strings.NewReader(values.Encode())
	return r.do(ctx, "POST", url, body, "application/x-www-form-urlencoded", http.StatusCreated, out)
}

// postMultipart submits a multipart form to a path template,
// expecting 201 Created.  build writes the form's fields and file
// parts; it runs concurrently with the request so that uploaded
// documents are streamed rather than buffered.
func (r *rest) postMultipart(ctx context.Context, template string, build func(*multipart.Writer) error, out interface{}) (err error) {
	url, err := r.template(template, nil)
	if err != nil {
		return err
	}

	reader, writer := io.Pipe()
	form := multipart.NewWriter(writer)
	finished := make(chan error, 1)
	go func() {
		err := build(form)
		err = firstError(err, form.Close())
		// Closing the pipe with the build error, if any, aborts
		// the in-flight request reading from it.
		writer.CloseWithError(err)
		finished <- err
	}()
	defer func() {
		err = firstError(err, <-finished)
	}()

	return r.do(ctx, "POST", url, reader, form.FormDataContentType(), http.StatusCreated, out)
}

// statusError maps an unsuccessful HTTP response onto the error
// taxonomy.  It consumes the response body; failure bodies are
// carried verbatim, never parsed.
func statusError(resp *http.Response) error {
	var body []byte
	if resp.Body != nil {
		var err error
		body, err = ioutil.ReadAll(resp.Body)
		if err != nil {
			return draftable.ErrIO{Err: err}
		}
	}
	detail := string(body)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return notFoundError{detail: detail}
	case http.StatusBadRequest:
		return draftable.ErrBadRequest{Detail: detail}
	case http.StatusUnauthorized, http.StatusForbidden:
		return draftable.ErrInvalidAuthentication{Detail: detail}
	default:
		return draftable.ErrUnknown{StatusCode: resp.StatusCode, Detail: detail}
	}
}

// normalize guarantees the documented error surface: anything that is
// not already one of the draftable error types is wrapped in
// ErrUnknown, so callers only ever observe the documented set.
func normalize(err error) error {
	switch e := err.(type) {
	case nil:
		return nil
	case notFoundError:
		return draftable.ErrUnknown{StatusCode: http.StatusNotFound, Detail: e.detail}
	case draftable.ErrInvalidArgument,
		draftable.ErrComparisonNotFound,
		draftable.ErrExportNotFound,
		draftable.ErrBadRequest,
		draftable.ErrInvalidAuthentication,
		draftable.ErrIO,
		draftable.ErrUnknown:
		return err
	default:
		return draftable.ErrUnknown{Err: err}
	}
}

func firstError(e1, e2 error) error {
	if e1 != nil {
		return e1
	}
	return e2
}
