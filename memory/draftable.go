// Package memory provides an in-process, in-memory implementation of
// the comparison service.  Nothing is persisted and no documents are
// actually rendered: a comparison created here simply reports itself
// ready once a configurable delay has elapsed on the store's clock.
// The entire store is behind a single global semaphore to protect
// against concurrent updates; in some cases this can limit
// performance in the name of correctness.
//
// This is mostly intended as a simple reference implementation that
// can be used for testing, including in-process testing of
// higher-level components.  It is generally tuned for correctness,
// not performance or scalability.
package memory

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/diffeo/go-draftable/draftable"
)

// New creates a new Store that operates purely in memory, on the real
// system clock.
func New() *Store {
	return NewWithClock(clock.New())
}

// NewWithClock creates a new Store whose notion of the current time
// comes from clk.  Tests pass a mock clock here to control when
// comparisons become ready and when they expire.
func NewWithClock(clk clock.Clock) *Store {
	return &Store{
		accounts: make(map[string]*Account),
		clk:      clk,
	}
}

// Store is an in-memory comparison service.  It holds any number of
// accounts, each with its own comparisons and exports; the Account
// method returns the view of a single account, and the view is what
// implements draftable.Draftable.
type Store struct {
	accounts map[string]*Account
	clk      clock.Clock
	sem      sync.Mutex

	readyAfter  time.Duration
	failNext    bool
	failMessage string
}

// storable is a common interface for objects that need to take the
// global lock on the store state.
type storable interface {
	// Store returns a pointer to the store object at the root of
	// this object tree.
	Store() *Store
}

// globalLock locks the store object at the root of the object tree.
// Pair this with globalUnlock, as
//
//     globalLock(self)
//     defer globalUnlock(self)
func globalLock(s storable) {
	s.Store().sem.Lock()
}

// globalUnlock unlocks the store object at the root of the object
// tree.
func globalUnlock(s storable) {
	s.Store().sem.Unlock()
}

func (s *Store) Store() *Store {
	return s
}

// Account returns the view of a single account, creating the account
// if needed.  If the account already exists its auth token is left
// unchanged.
func (s *Store) Account(accountID, authToken string) *Account {
	globalLock(s)
	defer globalUnlock(s)

	account := s.accounts[accountID]
	if account == nil {
		account = newAccount(s, accountID, authToken)
		s.accounts[accountID] = account
	}
	return account
}

// Authenticate finds the account holding an auth token, or returns
// nil if no account holds it.
func (s *Store) Authenticate(authToken string) draftable.Draftable {
	globalLock(s)
	defer globalUnlock(s)

	for _, account := range s.accounts {
		if account.authToken == authToken {
			return account
		}
	}
	return nil
}

// AuthToken returns the auth token of an account, or the empty string
// if the account does not exist.
func (s *Store) AuthToken(accountID string) string {
	globalLock(s)
	defer globalUnlock(s)

	if account := s.accounts[accountID]; account != nil {
		return account.authToken
	}
	return ""
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.clk.Now()
}

// SetReadyAfter sets the simulated rendering time: comparisons and
// exports created after this call report themselves ready d after
// their creation time.  The default is zero, everything ready as soon
// as it is created.  Existing objects keep the delay they were
// created with.
func (s *Store) SetReadyAfter(d time.Duration) {
	globalLock(s)
	defer globalUnlock(s)

	s.readyAfter = d
}

// FailNext makes the next created comparison, in any account, report
// a failure with message once it is ready.  Only that one creation is
// affected.
func (s *Store) FailNext(message string) {
	globalLock(s)
	defer globalUnlock(s)

	s.failNext = true
	s.failMessage = message
}
