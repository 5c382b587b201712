package library

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/iliyamo/library-loan-system/internal/model"
)

// Admin decision actions accepted by Decide.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// RequestBorrow creates a new pending transaction for the (student, book)
// pair, dated today.  It fails with ErrConflict while any active transaction
// (pending, issued or return_requested) exists for the pair.  Stock is not
// checked here: availability is validated at approval time, so a request may
// queue up behind an empty shelf.
func (s *Service) RequestBorrow(ctx context.Context, studentID, bookID string) (*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.store.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range txs {
		if txs[i].StudentID == studentID && txs[i].BookID == bookID && txs[i].Active() {
			return nil, fmt.Errorf("active request already exists for this book: %w", ErrConflict)
		}
	}
	tx := model.Transaction{
		ID:        uuid.NewString(),
		StudentID: studentID,
		BookID:    bookID,
		IssueDate: s.today(),
		Status:    model.StatusPending,
	}
	txs = append(txs, tx)
	if err := s.store.SaveTransactions(ctx, txs); err != nil {
		return nil, err
	}
	return &tx, nil
}

// RequestReturn moves the student's issued transaction for bookID to
// return_requested.  It fails with ErrNotFound when the student holds no
// issued transaction for that book.  The issue date is left untouched.
func (s *Service) RequestReturn(ctx context.Context, studentID, bookID string) (*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.store.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range txs {
		if txs[i].StudentID == studentID && txs[i].BookID == bookID && txs[i].Status == model.StatusIssued {
			txs[i].Status = model.StatusReturnRequested
			if err := s.store.SaveTransactions(ctx, txs); err != nil {
				return nil, err
			}
			out := txs[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("no issued record for this book: %w", ErrNotFound)
}

// Decide applies an admin decision to a transaction.
//
// approve from pending issues the book: the issue date is restamped to the
// approval date, one copy leaves the shelf and the book enters the student's
// borrowed set.  It fails with ErrUnavailable when the book is missing or
// has no copies left; the transaction then stays pending.
//
// approve from return_requested completes the loan: the return date is
// stamped, the copy goes back on the shelf and the book leaves the borrowed
// set.  A book deleted in the meantime is tolerated, the shelf count is then
// simply not adjusted.
//
// reject from pending is terminal.  reject from return_requested reverts the
// transaction to issued: the student still holds the copy, so no ledger
// state changes in either direction.
//
// An unknown ID and a transaction already in a terminal or non-actionable
// state are deliberate no-ops, so duplicate admin clicks are harmless.  The
// returned transaction is nil for no-ops.
func (s *Service) Decide(ctx context.Context, txID, action string) (*model.Transaction, error) {
	if action != ActionApprove && action != ActionReject {
		return nil, fmt.Errorf("unknown action %q", action)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.store.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range txs {
		if txs[i].ID == txID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}
	tx := &txs[idx]

	if action == ActionReject {
		switch tx.Status {
		case model.StatusPending:
			tx.Status = model.StatusRejected
		case model.StatusReturnRequested:
			// The copy never left the student's hands; revert, don't terminate.
			tx.Status = model.StatusIssued
		default:
			return nil, nil
		}
		if err := s.store.SaveTransactions(ctx, txs); err != nil {
			return nil, err
		}
		out := *tx
		return &out, nil
	}

	switch tx.Status {
	case model.StatusPending:
		books, err := s.store.Books(ctx)
		if err != nil {
			return nil, err
		}
		available := false
		for i := range books {
			if books[i].ID == tx.BookID {
				available = books[i].AvailableCopies >= 1
				break
			}
		}
		if !available {
			return nil, fmt.Errorf("book %s: %w", tx.BookID, ErrUnavailable)
		}
		tx.Status = model.StatusIssued
		tx.IssueDate = s.today()
		if err := s.store.SaveTransactions(ctx, txs); err != nil {
			return nil, err
		}
		if err := s.adjustAvailability(ctx, tx.BookID, -1); err != nil {
			return nil, err
		}
		if err := s.setBorrowed(ctx, tx.StudentID, tx.BookID, true); err != nil {
			return nil, err
		}

	case model.StatusReturnRequested:
		tx.Status = model.StatusReturned
		tx.ReturnDate = s.today()
		if err := s.store.SaveTransactions(ctx, txs); err != nil {
			return nil, err
		}
		if err := s.adjustAvailability(ctx, tx.BookID, +1); err != nil {
			// The book may have been deleted while the copy was out.
			if !errors.Is(err, ErrNotFound) {
				return nil, err
			}
		}
		if err := s.setBorrowed(ctx, tx.StudentID, tx.BookID, false); err != nil {
			return nil, err
		}

	default:
		return nil, nil
	}

	out := *tx
	return &out, nil
}

// Transactions returns the full history, most recent first by issue date.
// Same-day entries keep insertion order.
func (s *Service) Transactions(ctx context.Context) ([]model.Transaction, error) {
	txs, err := s.store.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	sortTransactions(txs)
	return txs, nil
}

// TransactionsForStudent returns one student's history, most recent first.
func (s *Service) TransactionsForStudent(ctx context.Context, studentID string) ([]model.Transaction, error) {
	txs, err := s.store.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	own := txs[:0]
	for _, tx := range txs {
		if tx.StudentID == studentID {
			own = append(own, tx)
		}
	}
	sortTransactions(own)
	return own, nil
}

// SaveTransactions replaces the whole history.  Bulk import path only.
func (s *Service) SaveTransactions(ctx context.Context, txs []model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.SaveTransactions(ctx, txs)
}

func sortTransactions(txs []model.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].IssueDate > txs[j].IssueDate
	})
}
