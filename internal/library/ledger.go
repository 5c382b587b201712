package library

import (
	"context"
	"fmt"
)

// The inventory ledger: the only code that touches Book.AvailableCopies and
// Student.BorrowedBooks.  Both helpers are called exclusively from Decide,
// with the service mutex already held.

// adjustAvailability moves a book's shelf count by delta (always ±1 here)
// and refuses any move that would leave the count outside [0, TotalCopies].
// An unknown book is an error: the caller checks existence before issuing
// and tolerates dangling references on the return path itself.
func (s *Service) adjustAvailability(ctx context.Context, bookID string, delta int) error {
	books, err := s.store.Books(ctx)
	if err != nil {
		return err
	}
	for i := range books {
		if books[i].ID != bookID {
			continue
		}
		next := books[i].AvailableCopies + delta
		if next < 0 || next > books[i].TotalCopies {
			return fmt.Errorf("book %s: availability %d outside [0, %d]",
				bookID, next, books[i].TotalCopies)
		}
		books[i].AvailableCopies = next
		return s.store.SaveBooks(ctx, books)
	}
	return fmt.Errorf("book %s: %w", bookID, ErrNotFound)
}

// setBorrowed adds bookID to or removes it from the student's borrowed set.
// Both directions are idempotent: adding an ID already present and removing
// one already absent are no-ops, so duplicates cannot accumulate.  A missing
// student is tolerated (dangling reference on historical data).
func (s *Service) setBorrowed(ctx context.Context, studentID, bookID string, present bool) error {
	students, err := s.store.Students(ctx)
	if err != nil {
		return err
	}
	for i := range students {
		if students[i].ID != studentID {
			continue
		}
		ids := students[i].BorrowedBookIDs()
		if present {
			for _, id := range ids {
				if id == bookID {
					return nil
				}
			}
			ids = append(ids, bookID)
		} else {
			kept := ids[:0]
			for _, id := range ids {
				if id != bookID {
					kept = append(kept, id)
				}
			}
			if len(kept) == len(ids) {
				return nil
			}
			ids = kept
		}
		students[i].SetBorrowedBookIDs(ids)
		return s.store.SaveStudents(ctx, students)
	}
	return nil
}
