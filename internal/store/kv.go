// Package store owns the three persisted entity collections (books, students,
// transactions).  Collections live as JSON arrays inside an external
// key-value collaborator; there is no partial-update primitive, every write
// replaces a whole collection.  The KV interface is deliberately tiny so the
// collaborator can be Redis, a MySQL key-value table, or an in-memory map in
// tests.
package store

import "context"

// KV is the persistence collaborator.  Get reports found=false when the key
// has never been written; Set overwrites unconditionally.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}
