// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"context"
	"io"
	"mime/multipart"
	"net/url"
	"time"

	"github.com/diffeo/go-draftable/draftable"
	"github.com/diffeo/go-draftable/restdata"
)

// AllComparisons returns every comparison in the account, in the
// order the service reports them.
func (c *Client) AllComparisons() ([]draftable.Comparison, error) {
	return c.allComparisons(context.Background())
}

func (c *Client) allComparisons(ctx context.Context) ([]draftable.Comparison, error) {
	var list restdata.ComparisonList
	if err := c.get(ctx, restdata.ComparisonsPath, nil, &list); err != nil {
		return nil, normalize(err)
	}
	result, err := list.ToComparisons()
	if err != nil {
		return nil, draftable.ErrIO{Err: err}
	}
	return result, nil
}

// Comparison fetches a single comparison by its identifier.
func (c *Client) Comparison(identifier string) (draftable.Comparison, error) {
	return c.comparison(context.Background(), identifier)
}

func (c *Client) comparison(ctx context.Context, identifier string) (draftable.Comparison, error) {
	if err := draftable.ValidateIdentifier(identifier); err != nil {
		return draftable.Comparison{}, err
	}
	var wire restdata.Comparison
	err := c.get(ctx, restdata.ComparisonPath, map[string]interface{}{"identifier": identifier}, &wire)
	if _, missing := err.(notFoundError); missing {
		return draftable.Comparison{}, draftable.ErrComparisonNotFound{AccountID: c.accountID, Identifier: identifier}
	}
	if err != nil {
		return draftable.Comparison{}, normalize(err)
	}
	result, err := wire.ToComparison()
	if err != nil {
		return draftable.Comparison{}, draftable.ErrIO{Err: err}
	}
	return result, nil
}

// DeleteComparison deletes a comparison.  Its viewer URLs, and any
// exports rendered from it, stop working immediately.
func (c *Client) DeleteComparison(identifier string) error {
	return c.deleteComparison(context.Background(), identifier)
}

func (c *Client) deleteComparison(ctx context.Context, identifier string) error {
	if err := draftable.ValidateIdentifier(identifier); err != nil {
		return err
	}
	err := c.delete(ctx, restdata.ComparisonPath, map[string]interface{}{"identifier": identifier})
	if _, missing := err.(notFoundError); missing {
		return draftable.ErrComparisonNotFound{AccountID: c.accountID, Identifier: identifier}
	}
	return normalize(err)
}

// CreateComparison submits a new comparison.  The comparison comes
// back immediately with Ready false; the service renders it in the
// background.  Poll Comparison, or call WaitForComparison, to observe
// it finish.
func (c *Client) CreateComparison(req draftable.ComparisonRequest) (draftable.Comparison, error) {
	return c.createComparison(context.Background(), req)
}

func (c *Client) createComparison(ctx context.Context, req draftable.ComparisonRequest) (draftable.Comparison, error) {
	if err := req.Validate(c.clock.Now()); err != nil {
		return draftable.Comparison{}, draftable.ErrInvalidArgument{Param: "request", Err: err}
	}
	var wire restdata.Comparison
	var err error
	if req.Left.HasContent() || req.Right.HasContent() {
		err = c.postMultipart(ctx, restdata.ComparisonsPath, func(form *multipart.Writer) error {
			return writeComparisonForm(form, req)
		}, &wire)
	} else {
		err = c.postForm(ctx, restdata.ComparisonsPath, comparisonFormValues(req), &wire)
	}
	if err != nil {
		return draftable.Comparison{}, normalize(err)
	}
	result, err := wire.ToComparison()
	if err != nil {
		return draftable.Comparison{}, draftable.ErrIO{Err: err}
	}
	return result, nil
}

// comparisonFormValues renders a request with no uploaded content as
// a URL-encoded form.
func comparisonFormValues(req draftable.ComparisonRequest) url.Values {
	values := url.Values{}
	sideFormValues(values, "left", req.Left)
	sideFormValues(values, "right", req.Right)
	if req.Identifier != "" {
		values.Set(restdata.IdentifierField, req.Identifier)
	}
	if req.Public {
		values.Set(restdata.PublicField, "true")
	}
	if req.Expires != nil {
		values.Set(restdata.ExpiryTimeField, req.Expires.UTC().Format(time.RFC3339))
	}
	return values
}

func sideFormValues(values url.Values, side string, spec draftable.SideSpec) {
	values.Set(restdata.SideField(side, restdata.FileTypeField), spec.FileType())
	if spec.SourceURL() != "" {
		values.Set(restdata.SideField(side, restdata.SourceURLField), spec.SourceURL())
	}
	if spec.DisplayName() != "" {
		values.Set(restdata.SideField(side, restdata.DisplayNameField), spec.DisplayName())
	}
}

// writeComparisonForm renders a request as multipart form data,
// streaming any uploaded documents into the form.
func writeComparisonForm(form *multipart.Writer, req draftable.ComparisonRequest) error {
	if err := writeSideFields(form, "left", req.Left); err != nil {
		return err
	}
	if err := writeSideFields(form, "right", req.Right); err != nil {
		return err
	}
	if req.Identifier != "" {
		if err := form.WriteField(restdata.IdentifierField, req.Identifier); err != nil {
			return err
		}
	}
	if req.Public {
		if err := form.WriteField(restdata.PublicField, "true"); err != nil {
			return err
		}
	}
	if req.Expires != nil {
		if err := form.WriteField(restdata.ExpiryTimeField, req.Expires.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}

func writeSideFields(form *multipart.Writer, side string, spec draftable.SideSpec) error {
	if err := form.WriteField(restdata.SideField(side, restdata.FileTypeField), spec.FileType()); err != nil {
		return err
	}
	if spec.SourceURL() != "" {
		if err := form.WriteField(restdata.SideField(side, restdata.SourceURLField), spec.SourceURL()); err != nil {
			return err
		}
	}
	if spec.DisplayName() != "" {
		if err := form.WriteField(restdata.SideField(side, restdata.DisplayNameField), spec.DisplayName()); err != nil {
			return err
		}
	}
	if !spec.HasContent() {
		return nil
	}
	content, err := spec.Open()
	if err != nil {
		return err
	}
	part, err := form.CreateFormFile(restdata.SideField(side, restdata.FileField), spec.Filename())
	if err == nil {
		_, err = io.Copy(part, content)
	}
	return firstError(err, content.Close())
}
