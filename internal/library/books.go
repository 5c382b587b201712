package library

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/iliyamo/library-loan-system/internal/model"
)

// UnknownTitle is rendered in place of a book that a historical transaction
// still references after the book was removed from the catalog.
const UnknownTitle = "Unknown"

// Books returns the catalog in stored order.
func (s *Service) Books(ctx context.Context) ([]model.Book, error) {
	return s.store.Books(ctx)
}

// BookByID looks a single book up.  Returns ErrNotFound when absent.
func (s *Service) BookByID(ctx context.Context, id string) (*model.Book, error) {
	books, err := s.store.Books(ctx)
	if err != nil {
		return nil, err
	}
	for i := range books {
		if books[i].ID == id {
			return &books[i], nil
		}
	}
	return nil, fmt.Errorf("book %s: %w", id, ErrNotFound)
}

// AddBook appends a new catalog entry and assigns it an ID.  When the caller
// leaves AvailableCopies at zero the full stock starts on the shelf.
func (s *Service) AddBook(ctx context.Context, b model.Book) (*model.Book, error) {
	if b.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if b.TotalCopies < 0 {
		return nil, fmt.Errorf("total_copies must not be negative")
	}
	if b.AvailableCopies == 0 {
		b.AvailableCopies = b.TotalCopies
	}
	if b.AvailableCopies < 0 || b.AvailableCopies > b.TotalCopies {
		return nil, fmt.Errorf("available_copies %d outside [0, %d]", b.AvailableCopies, b.TotalCopies)
	}
	b.ID = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	books, err := s.store.Books(ctx)
	if err != nil {
		return nil, err
	}
	books = append(books, b)
	if err := s.store.SaveBooks(ctx, books); err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBook merges a patch into an existing book.  The merged record must
// still satisfy 0 <= available_copies <= total_copies.
func (s *Service) UpdateBook(ctx context.Context, id string, patch model.BookPatch) (*model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.store.Books(ctx)
	if err != nil {
		return nil, err
	}
	for i := range books {
		if books[i].ID != id {
			continue
		}
		merged := books[i]
		patch.Apply(&merged)
		if merged.TotalCopies < 0 {
			return nil, fmt.Errorf("total_copies must not be negative")
		}
		if merged.AvailableCopies < 0 || merged.AvailableCopies > merged.TotalCopies {
			return nil, fmt.Errorf("available_copies %d outside [0, %d]", merged.AvailableCopies, merged.TotalCopies)
		}
		books[i] = merged
		if err := s.store.SaveBooks(ctx, books); err != nil {
			return nil, err
		}
		return &merged, nil
	}
	return nil, fmt.Errorf("book %s: %w", id, ErrNotFound)
}

// DeleteBook removes a book from the catalog.  Removal is refused with
// ErrConflict while any active transaction references the book; terminal
// history may keep dangling references, which read paths render as Unknown.
func (s *Service) DeleteBook(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.store.Transactions(ctx)
	if err != nil {
		return err
	}
	for i := range txs {
		if txs[i].BookID == id && txs[i].Active() {
			return fmt.Errorf("book %s has an active transaction: %w", id, ErrConflict)
		}
	}

	books, err := s.store.Books(ctx)
	if err != nil {
		return err
	}
	kept := books[:0]
	for _, b := range books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(books) {
		return fmt.Errorf("book %s: %w", id, ErrNotFound)
	}
	return s.store.SaveBooks(ctx, kept)
}

// SaveBooks replaces the whole catalog.  Bulk import path only; rows are
// accepted as-is, matching the spreadsheet bridge contract.
func (s *Service) SaveBooks(ctx context.Context, books []model.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.SaveBooks(ctx, books)
}

// BookTitle resolves a book ID for display, falling back to the Unknown
// sentinel for dangling references.
func (s *Service) BookTitle(ctx context.Context, id string) string {
	b, err := s.BookByID(ctx, id)
	if err != nil {
		return UnknownTitle
	}
	return b.Title
}
