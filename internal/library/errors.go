// Package library implements the loan core: the transaction state machine,
// the inventory ledger that keeps availability counts and borrowed sets in
// step with transaction status, and the catalog/roster operations the admin
// and student surfaces call.  These sentinel values let handlers map domain
// failures onto HTTP status codes with errors.Is.
package library

import "errors"

// ErrConflict is returned when a request collides with existing state: a
// borrow or return request while an active transaction already exists for
// the same (student, book) pair, or deleting a book/student still referenced
// by an active transaction.  Handlers should translate this into 409.
var ErrConflict = errors.New("conflict")

// ErrNotFound is returned when the referenced record does not exist, for
// example a return request with no matching issued transaction.  Handlers
// should translate this into 404.
var ErrNotFound = errors.New("not found")

// ErrUnavailable is returned when a borrow approval finds no copies on the
// shelf.  The transaction stays pending and no state changes.  Handlers
// should translate this into 409.
var ErrUnavailable = errors.New("no copies available")

// IsDomain reports whether err wraps one of the domain sentinels above, as
// opposed to a validation or storage failure.
func IsDomain(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnavailable)
}
