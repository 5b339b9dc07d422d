// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

// This file provides the asynchronous variants of the client
// operations, in the style of the net/rpc Go method.  Each Go...
// method starts its operation in a goroutine and returns a handle;
// the handle's result accessor blocks until the operation finishes.
// Canceling a handle aborts its in-flight HTTP request, and Close on
// the client cancels every handle still running.

import (
	"context"

	"github.com/diffeo/go-draftable/draftable"
)

// call tracks one asynchronous operation.
type call struct {
	cancel context.CancelFunc
	done   chan struct{}
	value  interface{}
	err    error
}

// goCall starts fn in its own goroutine and returns the handle
// tracking it.  fn observes cancellation through its context.
func (c *Client) goCall(fn func(context.Context) (interface{}, error)) *call {
	ctx, cancel := context.WithCancel(context.Background())
	cl := &call{cancel: cancel, done: make(chan struct{})}
	c.register(cl)
	go func() {
		cl.value, cl.err = fn(ctx)
		c.deregister(cl)
		cancel()
		close(cl.done)
	}()
	return cl
}

// Done returns a channel that is closed when the operation finishes.
func (cl *call) Done() <-chan struct{} {
	return cl.done
}

// Cancel aborts the operation's HTTP request, if one is in flight.
// Canceling a finished operation does nothing.
func (cl *call) Cancel() {
	cl.cancel()
}

// AllComparisonsCall is an in-flight AllComparisons operation.
type AllComparisonsCall struct {
	*call
}

// Comparisons blocks until the operation finishes and returns its
// outcome.
func (cl *AllComparisonsCall) Comparisons() ([]draftable.Comparison, error) {
	<-cl.done
	if cl.err != nil {
		return nil, cl.err
	}
	return cl.value.([]draftable.Comparison), nil
}

// ComparisonCall is an in-flight operation that yields a comparison.
type ComparisonCall struct {
	*call
}

// Comparison blocks until the operation finishes and returns its
// outcome.
func (cl *ComparisonCall) Comparison() (draftable.Comparison, error) {
	<-cl.done
	if cl.err != nil {
		return draftable.Comparison{}, cl.err
	}
	return cl.value.(draftable.Comparison), nil
}

// DeleteCall is an in-flight DeleteComparison operation.
type DeleteCall struct {
	*call
}

// Err blocks until the operation finishes and returns its outcome.
func (cl *DeleteCall) Err() error {
	<-cl.done
	return cl.err
}

// ExportCall is an in-flight operation that yields an export.
type ExportCall struct {
	*call
}

// Export blocks until the operation finishes and returns its outcome.
func (cl *ExportCall) Export() (draftable.Export, error) {
	<-cl.done
	if cl.err != nil {
		return draftable.Export{}, cl.err
	}
	return cl.value.(draftable.Export), nil
}

// GoAllComparisons starts AllComparisons in the background.
func (c *Client) GoAllComparisons() *AllComparisonsCall {
	return &AllComparisonsCall{c.goCall(func(ctx context.Context) (interface{}, error) {
		comparisons, err := c.allComparisons(ctx)
		return comparisons, err
	})}
}

// GoComparison starts Comparison in the background.
func (c *Client) GoComparison(identifier string) *ComparisonCall {
	return &ComparisonCall{c.goCall(func(ctx context.Context) (interface{}, error) {
		comparison, err := c.comparison(ctx, identifier)
		return comparison, err
	})}
}

// GoCreateComparison starts CreateComparison in the background.  If
// the request fails validation the call finishes immediately without
// any network traffic.
func (c *Client) GoCreateComparison(req draftable.ComparisonRequest) *ComparisonCall {
	return &ComparisonCall{c.goCall(func(ctx context.Context) (interface{}, error) {
		comparison, err := c.createComparison(ctx, req)
		return comparison, err
	})}
}

// GoDeleteComparison starts DeleteComparison in the background.
func (c *Client) GoDeleteComparison(identifier string) *DeleteCall {
	return &DeleteCall{c.goCall(func(ctx context.Context) (interface{}, error) {
		return nil, c.deleteComparison(ctx, identifier)
	})}
}

// GoExport starts Export in the background.
func (c *Client) GoExport(identifier string) *ExportCall {
	return &ExportCall{c.goCall(func(ctx context.Context) (interface{}, error) {
		export, err := c.export(ctx, identifier)
		return export, err
	})}
}

// GoCreateExport starts CreateExport in the background.
func (c *Client) GoCreateExport(comparison string, kind draftable.ExportKind) *ExportCall {
	return &ExportCall{c.goCall(func(ctx context.Context) (interface{}, error) {
		export, err := c.createExport(ctx, comparison, kind)
		return export, err
	})}
}
