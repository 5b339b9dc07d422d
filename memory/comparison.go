// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"time"

	"github.com/diffeo/go-draftable/draftable"
)

// comparison is the stored form of one comparison.  The record never
// changes after creation; readiness and expiry are functions of the
// clock, computed when the record is read.
type comparison struct {
	identifier   string
	left         draftable.Side
	right        draftable.Side
	public       bool
	creationTime time.Time
	expiryTime   *time.Time

	// readyTime is when "rendering" finishes.  failMessage, if
	// non-empty, is the failure the rendering reports then.
	readyTime   time.Time
	failMessage string
}

// expired reports whether the comparison's expiry time has passed.
func (c *comparison) expired(now time.Time) bool {
	return c.expiryTime != nil && !now.Before(*c.expiryTime)
}

// view renders the record as a draftable.Comparison as of time now.
func (c *comparison) view(now time.Time) draftable.Comparison {
	result := draftable.Comparison{
		Identifier:   c.identifier,
		Left:         c.left,
		Right:        c.right,
		Public:       c.public,
		CreationTime: c.creationTime,
	}
	if c.expiryTime != nil {
		expiry := *c.expiryTime
		result.ExpiryTime = &expiry
	}
	if !now.Before(c.readyTime) {
		readyTime := c.readyTime
		failed := c.failMessage != ""
		result.Ready = true
		result.ReadyTime = &readyTime
		result.Failed = &failed
		result.ErrorMessage = c.failMessage
	}
	return result
}

// sideOf projects the request side onto the stored form.  Uploaded
// content is discarded; only its metadata survives.
func sideOf(spec draftable.SideSpec) draftable.Side {
	return draftable.Side{
		FileType:    spec.FileType(),
		SourceURL:   spec.SourceURL(),
		DisplayName: spec.DisplayName(),
	}
}
