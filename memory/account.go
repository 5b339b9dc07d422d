// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"fmt"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/diffeo/go-draftable/draftable"
)

// Account is a view of a single account's comparisons and exports.
type Account struct {
	store       *Store
	accountID   string
	authToken   string
	comparisons map[string]*comparison
	order       []*comparison
	exports     map[string]*export
}

var _ draftable.Draftable = &Account{}

func newAccount(store *Store, accountID, authToken string) *Account {
	return &Account{
		store:       store,
		accountID:   accountID,
		authToken:   authToken,
		comparisons: make(map[string]*comparison),
		exports:     make(map[string]*export),
	}
}

func (a *Account) Store() *Store {
	return a.store
}

// do runs f under the global lock.
func (a *Account) do(f func() error) error {
	globalLock(a)
	defer globalUnlock(a)

	return f()
}

// draftable.Draftable interface:

// AllComparisons returns the account's comparisons, newest first.
// Expired comparisons are omitted.
func (a *Account) AllComparisons() ([]draftable.Comparison, error) {
	var result []draftable.Comparison
	err := a.do(func() error {
		now := a.store.clk.Now()
		a.purgeExpired(now)
		for i := len(a.order) - 1; i >= 0; i-- {
			result = append(result, a.order[i].view(now))
		}
		return nil
	})
	return result, err
}

// Comparison retrieves one comparison.  A comparison whose expiry
// time has passed is gone, indistinguishable from one that never
// existed.
func (a *Account) Comparison(identifier string) (draftable.Comparison, error) {
	if err := draftable.ValidateIdentifier(identifier); err != nil {
		return draftable.Comparison{}, err
	}
	var result draftable.Comparison
	err := a.do(func() error {
		now := a.store.clk.Now()
		a.purgeExpired(now)
		c := a.comparisons[identifier]
		if c == nil {
			return draftable.ErrComparisonNotFound{AccountID: a.accountID, Identifier: identifier}
		}
		result = c.view(now)
		return nil
	})
	return result, err
}

// CreateComparison adds a comparison to the account.  No documents
// are fetched or rendered; the comparison reports itself ready once
// the store's configured rendering delay elapses.
func (a *Account) CreateComparison(req draftable.ComparisonRequest) (draftable.Comparison, error) {
	if err := req.Validate(a.store.clk.Now()); err != nil {
		return draftable.Comparison{}, draftable.ErrInvalidArgument{Param: "request", Err: err}
	}
	var result draftable.Comparison
	err := a.do(func() error {
		now := a.store.clk.Now()
		a.purgeExpired(now)
		identifier := req.Identifier
		if identifier == "" {
			identifier = uuid.NewV4().String()
		} else if a.comparisons[identifier] != nil {
			return draftable.ErrBadRequest{Detail: fmt.Sprintf("comparison %q already exists", identifier)}
		}
		c := &comparison{
			identifier:   identifier,
			left:         sideOf(req.Left),
			right:        sideOf(req.Right),
			public:       req.Public,
			creationTime: now,
			readyTime:    now.Add(a.store.readyAfter),
		}
		if req.Expires != nil {
			expiry := *req.Expires
			c.expiryTime = &expiry
		}
		if a.store.failNext {
			c.failMessage = a.store.failMessage
			a.store.failNext = false
		}
		a.comparisons[identifier] = c
		a.order = append(a.order, c)
		result = c.view(now)
		return nil
	})
	return result, err
}

// DeleteComparison removes a comparison along with any exports
// rendered from it.
func (a *Account) DeleteComparison(identifier string) error {
	if err := draftable.ValidateIdentifier(identifier); err != nil {
		return err
	}
	return a.do(func() error {
		now := a.store.clk.Now()
		a.purgeExpired(now)
		c := a.comparisons[identifier]
		if c == nil {
			return draftable.ErrComparisonNotFound{AccountID: a.accountID, Identifier: identifier}
		}
		a.drop(c)
		return nil
	})
}

// purgeExpired removes comparisons whose expiry time has passed.
// The caller must hold the global lock.
func (a *Account) purgeExpired(now time.Time) {
	for _, c := range a.comparisons {
		if c.expired(now) {
			a.drop(c)
		}
	}
}

// drop removes one comparison and its exports.  The caller must hold
// the global lock.
func (a *Account) drop(c *comparison) {
	delete(a.comparisons, c.identifier)
	for i, o := range a.order {
		if o == c {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	for identifier, e := range a.exports {
		if e.comparison == c.identifier {
			delete(a.exports, identifier)
		}
	}
}
