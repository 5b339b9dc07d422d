// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/diffeo/go-draftable/draftable"
)

// WaitForComparison polls a comparison until the service finishes
// rendering it, and returns the ready (possibly failed) comparison as
// soon as one is observed.  Polling backs off exponentially, starting
// at 250ms and capping at 5s between fetches.  If the comparison is
// still not ready after timeout, WaitForComparison returns the last
// observed state along with an ErrUnknown wrapping the timeout; a
// zero timeout waits forever.  Errors from the underlying fetches end
// the wait immediately, except I/O errors, which are retried on the
// same schedule.
func (c *Client) WaitForComparison(identifier string, timeout time.Duration) (draftable.Comparison, error) {
	if err := draftable.ValidateIdentifier(identifier); err != nil {
		return draftable.Comparison{}, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = timeout
	b.Clock = c.clock
	// Reset captures the start time, which must come from the
	// clock assigned above.
	b.Reset()

	var last draftable.Comparison
	for {
		comparison, err := c.Comparison(identifier)
		switch err.(type) {
		case nil:
			last = comparison
			if comparison.Ready {
				return comparison, nil
			}
		case draftable.ErrIO:
			// Transient; keep polling.
		default:
			return last, err
		}
		wait := b.NextBackOff()
		if wait == backoff.Stop {
			return last, draftable.ErrUnknown{Err: fmt.Errorf("comparison %q was not ready after %v", identifier, timeout)}
		}
		c.clock.Sleep(wait)
	}
}
