package library_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/library-loan-system/internal/library"
	"github.com/iliyamo/library-loan-system/internal/model"
	"github.com/iliyamo/library-loan-system/internal/store"
)

// newTestService builds a service over an in-memory collaborator, seeded
// with a small fixture set.  The returned time pointer pins the clock; tests
// may move it to simulate later days.
func newTestService(t *testing.T) (*library.Service, *time.Time) {
	t.Helper()
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	svc := library.New(store.New(store.NewMemoryKV())).WithClock(func() time.Time { return now })

	ctx := context.Background()
	require.NoError(t, svc.SaveBooks(ctx, []model.Book{
		{ID: "b1", Title: "Dune", Author: "Frank Herbert", Category: "Fiction", TotalCopies: 1, AvailableCopies: 1},
		{ID: "b2", Title: "The Go Programming Language", Author: "Donovan & Kernighan", Category: "Tech", TotalCopies: 2, AvailableCopies: 2},
	}))
	require.NoError(t, svc.SaveStudents(ctx, []model.Student{
		{ID: "s1", Name: "Alice Johnson", Email: "alice@test.com", Phone: "555-0101", BorrowedBooks: "[]"},
		{ID: "s2", Name: "Bob Smith", Email: "bob@test.com", Phone: "555-0102", BorrowedBooks: "[]"},
	}))
	require.NoError(t, svc.SaveTransactions(ctx, []model.Transaction{}))
	return svc, &now
}

func getBook(t *testing.T, svc *library.Service, id string) model.Book {
	t.Helper()
	b, err := svc.BookByID(context.Background(), id)
	require.NoError(t, err)
	return *b
}

func getStudent(t *testing.T, svc *library.Service, id string) *model.Student {
	t.Helper()
	s, err := svc.StudentByID(context.Background(), id)
	require.NoError(t, err)
	return s
}

func TestBorrowApproveFlow(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tx, err := svc.RequestBorrow(ctx, "s1", "b1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, tx.Status)
	assert.Equal(t, "2024-05-10", tx.IssueDate)
	assert.Empty(t, tx.ReturnDate)

	// A pending request does not touch the shelf.
	assert.Equal(t, 1, getBook(t, svc, "b1").AvailableCopies)

	decided, err := svc.Decide(ctx, tx.ID, library.ActionApprove)
	require.NoError(t, err)
	require.NotNil(t, decided)
	assert.Equal(t, model.StatusIssued, decided.Status)

	assert.Equal(t, 0, getBook(t, svc, "b1").AvailableCopies)
	assert.True(t, getStudent(t, svc, "s1").HasBorrowed("b1"))
}

func TestApproveRestampsIssueDate(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()

	tx, err := svc.RequestBorrow(ctx, "s1", "b1")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10", tx.IssueDate)

	*now = now.Add(48 * time.Hour)
	decided, err := svc.Decide(ctx, tx.ID, library.ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-12", decided.IssueDate)
}

func TestApproveWithoutStock(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.RequestBorrow(ctx, "s1", "b1")
	require.NoError(t, err)
	_, err = svc.Decide(ctx, first.ID, library.ActionApprove)
	require.NoError(t, err)

	// Requesting against an empty shelf is allowed; stock is checked at
	// approval time.
	second, err := svc.RequestBorrow(ctx, "s2", "b1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, second.Status)

	_, err = svc.Decide(ctx, second.ID, library.ActionApprove)
	assert.ErrorIs(t, err, library.ErrUnavailable)

	// Nothing changed: shelf stays empty, the request stays pending.
	assert.Equal(t, 0, getBook(t, svc, "b1").AvailableCopies)
	txs, err := svc.Transactions(ctx)
	require.NoError(t, err)
	for _, tx := range txs {
		if tx.ID == second.ID {
			assert.Equal(t, model.StatusPending, tx.Status)
		}
	}
}

func TestReturnFlow(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()

	tx, err := svc.RequestBorrow(ctx, "s1", "b1")
	require.NoError(t, err)
	_, err = svc.Decide(ctx, tx.ID, library.ActionApprove)
	require.NoError(t, err)

	ret, err := svc.RequestReturn(ctx, "s1", "b1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusReturnRequested, ret.Status)
	assert.Equal(t, tx.ID, ret.ID, "return reuses the issued transaction")

	*now = now.Add(24 * time.Hour)
	done, err := svc.Decide(ctx, ret.ID, library.ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReturned, done.Status)
	assert.Equal(t, "2024-05-11", done.ReturnDate)

	assert.Equal(t, 1, getBook(t, svc, "b1").AvailableCopies)
	assert.False(t, getStudent(t, svc, "s1").HasBorrowed("b1"))
}

func TestDuplicateBorrowConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.RequestBorrow(ctx, "s1", "b1")
	require.NoError(t, err)

	_, err = svc.RequestBorrow(ctx, "s1", "b1")
	assert.ErrorIs(t, err, library.ErrConflict)

	// A different student or a different book is fine.
	_, err = svc.RequestBorrow(ctx, "s2", "b1")
	assert.NoError(t, err)
	_, err = svc.RequestBorrow(ctx, "s1", "b2")
	assert.NoError(t, err)
}

func TestAtMostOneActivePerPair(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tx, err := svc.RequestBorrow(ctx, "s1", "b1")
	require.NoError(t, err)

	// Conflict holds through every active state.
	_, err = svc.RequestBorrow(ctx, "s1", "b1")
	assert.ErrorIs(t, err, library.ErrConflict)

	_, err = svc.Decide(ctx, tx.ID, library.ActionApprove)
	require.NoError(t, err)
	_, err = svc.RequestBorrow(ctx, "s1", "b1")
	assert.ErrorIs(t, err, library.ErrConflict)

	_, err = svc.RequestReturn(ctx, "s1", "b1")
	require.NoError(t, err)
	_, err = svc.RequestBorrow(ctx, "s1", "b1")
	assert.ErrorIs(t, err, library.ErrConflict)

	// Once terminal, a fresh request is allowed again.
	_, err = svc.Decide(ctx, tx.ID, library.ActionApprove)
	require.NoError(t, err)
	_, err = svc.RequestBorrow(ctx, "s1", "b1")
	assert.NoError(t, err)
}

func TestReturnWithoutIssued(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.RequestReturn(ctx, "s1", "b1")
	assert.ErrorIs(t, err, library.ErrNotFound)

	// Pending is not issued: still no return possible.
	_, err = svc.RequestBorrow(ctx, "s1", "b1")
	require.NoError(t, err)
	_, err = svc.RequestReturn(ctx, "s1", "b1")
	assert.ErrorIs(t, err, library.ErrNotFound)
}

func TestDecideUnknownIDIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tx, err := svc.Decide(ctx, "no-such-transaction", library.ActionApprove)
	assert.NoError(t, err)
	assert.Nil(t, tx)

	tx, err = svc.Decide(ctx, "no-such-transaction", library.ActionReject)
	assert.NoError(t, err)
	assert.Nil(t, tx)
}

func TestDecideUnknownAction(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Decide(context.Background(), "whatever", "escalate")
	assert.Error(t, err)
}

func TestApproveIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tx, err := svc.RequestBorrow(ctx, "s1", "b1")
	require.NoError(t, err)
	first, err := svc.Decide(ctx, tx.ID, library.ActionApprove)
	require.NoError(t, err)
	require.NotNil(t, first)

	// The second click lands on an issued transaction: no-op, no double
	// decrement.
	second, err := svc.Decide(ctx, tx.ID, library.ActionApprove)
	assert.NoError(t, err)
	assert.Nil(t, second)
	assert.Equal(t, 0, getBook(t, svc, "b1").AvailableCopies)
	assert.Equal(t, []string{"b1"}, getStudent(t, svc, "s1").BorrowedBookIDs())
}

func TestRejectPendingIsTerminal(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tx, err := svc.RequestBorrow(ctx, "s1", "b1")
	require.NoError(t, err)
	rejected, err := svc.Decide(ctx, tx.ID, library.ActionReject)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, rejected.Status)

	// The borrow never touched inventory.
	assert.Equal(t, 1, getBook(t, svc, "b1").AvailableCopies)
	assert.False(t, getStudent(t, svc, "s1").HasBorrowed("b1"))

	// Terminal: further decisions are no-ops, and a fresh request may be
	// filed.
	again, err := svc.Decide(ctx, tx.ID, library.ActionApprove)
	assert.NoError(t, err)
	assert.Nil(t, again)
	_, err = svc.RequestBorrow(ctx, "s1", "b1")
	assert.NoError(t, err)
}

func TestRejectReturnRequestRevertsToIssued(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tx, err := svc.RequestBorrow(ctx, "s1", "b1")
	require.NoError(t, err)
	_, err = svc.Decide(ctx, tx.ID, library.ActionApprove)
	require.NoError(t, err)
	_, err = svc.RequestReturn(ctx, "s1", "b1")
	require.NoError(t, err)

	reverted, err := svc.Decide(ctx, tx.ID, library.ActionReject)
	require.NoError(t, err)
	assert.Equal(t, model.StatusIssued, reverted.Status)

	// The student still holds the copy: shelf and borrowed set untouched.
	assert.Equal(t, 0, getBook(t, svc, "b1").AvailableCopies)
	assert.True(t, getStudent(t, svc, "s1").HasBorrowed("b1"))

	// And the return can be requested again.
	_, err = svc.RequestReturn(ctx, "s1", "b1")
	assert.NoError(t, err)
}

func TestAvailabilityStaysInBounds(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// Borrow and return the single copy of b1 a few times; the count must
	// oscillate between 0 and 1 and never leave the range.
	for i := 0; i < 3; i++ {
		tx, err := svc.RequestBorrow(ctx, "s1", "b1")
		require.NoError(t, err)
		_, err = svc.Decide(ctx, tx.ID, library.ActionApprove)
		require.NoError(t, err)
		assert.Equal(t, 0, getBook(t, svc, "b1").AvailableCopies)

		_, err = svc.RequestReturn(ctx, "s1", "b1")
		require.NoError(t, err)
		_, err = svc.Decide(ctx, tx.ID, library.ActionApprove)
		require.NoError(t, err)

		b := getBook(t, svc, "b1")
		assert.Equal(t, 1, b.AvailableCopies)
		assert.GreaterOrEqual(t, b.AvailableCopies, 0)
		assert.LessOrEqual(t, b.AvailableCopies, b.TotalCopies)
	}
}

func TestBorrowedSetMatchesIssuedTransactions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.RequestBorrow(ctx, "s1", "b1")
	require.NoError(t, err)
	b, err := svc.RequestBorrow(ctx, "s1", "b2")
	require.NoError(t, err)
	_, err = svc.Decide(ctx, a.ID, library.ActionApprove)
	require.NoError(t, err)
	_, err = svc.Decide(ctx, b.ID, library.ActionApprove)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"b1", "b2"}, getStudent(t, svc, "s1").BorrowedBookIDs())

	// Returning one keeps only the other issued.
	_, err = svc.RequestReturn(ctx, "s1", "b1")
	require.NoError(t, err)
	_, err = svc.Decide(ctx, a.ID, library.ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, []string{"b2"}, getStudent(t, svc, "s1").BorrowedBookIDs())

	txs, err := svc.Transactions(ctx)
	require.NoError(t, err)
	issued := 0
	for _, tx := range txs {
		if tx.Status == model.StatusIssued {
			issued++
			assert.Equal(t, "b2", tx.BookID)
		}
	}
	assert.Equal(t, 1, issued)
}

func TestTransactionsMostRecentFirst(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()

	_, err := svc.RequestBorrow(ctx, "s1", "b1")
	require.NoError(t, err)

	*now = now.Add(24 * time.Hour)
	_, err = svc.RequestBorrow(ctx, "s1", "b2")
	require.NoError(t, err)

	// Same-day pair keeps insertion order behind the newer entry.
	_, err = svc.RequestBorrow(ctx, "s2", "b1")
	require.NoError(t, err)

	txs, err := svc.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, "2024-05-11", txs[0].IssueDate)
	assert.Equal(t, "2024-05-11", txs[1].IssueDate)
	assert.Equal(t, "b2", txs[0].BookID)
	assert.Equal(t, "2024-05-10", txs[2].IssueDate)
}

func TestReturnApproveToleratesDeletedBook(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tx, err := svc.RequestBorrow(ctx, "s2", "b2")
	require.NoError(t, err)
	_, err = svc.Decide(ctx, tx.ID, library.ActionApprove)
	require.NoError(t, err)
	_, err = svc.RequestReturn(ctx, "s2", "b2")
	require.NoError(t, err)

	// Drop the book from the catalog behind the transaction's back.  The
	// delete guard only protects active transactions reachable through the
	// API, so simulate an import that lost the book.
	require.NoError(t, svc.SaveBooks(ctx, nil))

	done, err := svc.Decide(ctx, tx.ID, library.ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReturned, done.Status)
	assert.False(t, getStudent(t, svc, "s2").HasBorrowed("b2"))
	assert.Equal(t, library.UnknownTitle, svc.BookTitle(ctx, "b2"))
}
