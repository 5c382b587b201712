package library

import (
	"sync"
	"time"

	"github.com/iliyamo/library-loan-system/internal/store"
)

// Service is the single entry point for every state-changing operation on
// the library data.  It owns the entity store reference and a mutex that
// makes each operation atomic with respect to the others in this process:
// every transition is a read-modify-write across up to three collections and
// must not interleave with another one.
//
// The clock is a field so tests can pin approval and request dates.
type Service struct {
	store *store.EntityStore
	now   func() time.Time

	mu sync.Mutex
}

// New builds a Service over the given store using the wall clock.
func New(st *store.EntityStore) *Service {
	if st == nil {
		panic("nil store passed to library.New")
	}
	return &Service{store: st, now: time.Now}
}

// WithClock overrides the clock.  Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Store exposes the underlying entity store for bulk import/export paths
// that replace whole collections without going through the state machine.
func (s *Service) Store() *store.EntityStore { return s.store }

// today returns the current UTC date in ISO YYYY-MM-DD form, the only date
// format the data model carries.  Lexical order equals chronological order.
func (s *Service) today() string {
	return s.now().UTC().Format("2006-01-02")
}
