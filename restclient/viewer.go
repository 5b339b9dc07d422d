// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"fmt"
	"strings"
	"time"

	"github.com/diffeo/go-draftable/draftable"
	"github.com/diffeo/go-draftable/signature"
)

// viewerBase returns the base URL without its trailing slash, ready
// to have a viewer path appended.
func (c *Client) viewerBase() string {
	return strings.TrimSuffix(c.base.String(), "/")
}

// PublicViewerURL returns the URL of the interactive viewer page for
// a comparison created with Public set.  If wait is true the page
// waits for the comparison to appear instead of reporting an error,
// which avoids a race when the URL is handed out right after
// CreateComparison.  No network traffic happens.
func (c *Client) PublicViewerURL(identifier string, wait bool) (string, error) {
	if err := draftable.ValidateIdentifier(identifier); err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/comparisons/viewer/%s/%s", c.viewerBase(), c.accountID, identifier)
	if wait {
		url += "?wait"
	}
	return url, nil
}

// SignedViewerURL returns a viewer page URL for a private comparison,
// authorized until validUntil by an HMAC signature over the account,
// identifier, and expiry.  Anyone holding the URL can view that one
// comparison until the deadline passes; the account's auth token is
// never revealed.  No network traffic happens.
func (c *Client) SignedViewerURL(identifier string, validUntil time.Time, wait bool) (string, error) {
	if err := draftable.ValidateIdentifier(identifier); err != nil {
		return "", err
	}
	if err := draftable.ValidateValidUntil(validUntil, c.clock.Now()); err != nil {
		return "", err
	}
	epoch := validUntil.Unix()
	sig := signature.Sign(c.authToken, c.accountID, identifier, epoch)
	url := fmt.Sprintf("%s/comparisons/viewer/%s/%s?valid_until=%d&signature=%s",
		c.viewerBase(), c.accountID, identifier, epoch, sig)
	if wait {
		url += "&wait"
	}
	return url, nil
}

// SignedViewerURLFor is SignedViewerURL with a lifetime instead of a
// deadline: the returned URL stops working ttl from now.
func (c *Client) SignedViewerURLFor(identifier string, ttl time.Duration, wait bool) (string, error) {
	if err := draftable.ValidateIdentifier(identifier); err != nil {
		return "", err
	}
	if err := draftable.ValidateValidFor(ttl); err != nil {
		return "", err
	}
	return c.SignedViewerURL(identifier, c.clock.Now().Add(ttl), wait)
}
