package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/library-loan-system/internal/model"
)

// Students returns the roster in stored order.
func (s *Service) Students(ctx context.Context) ([]model.Student, error) {
	return s.store.Students(ctx)
}

// StudentByID looks a single student up.  Returns ErrNotFound when absent.
func (s *Service) StudentByID(ctx context.Context, id string) (*model.Student, error) {
	students, err := s.store.Students(ctx)
	if err != nil {
		return nil, err
	}
	for i := range students {
		if students[i].ID == id {
			return &students[i], nil
		}
	}
	return nil, fmt.Errorf("student %s: %w", id, ErrNotFound)
}

// StudentByEmail matches the email case-insensitively but otherwise exactly.
// This is the student login lookup.
func (s *Service) StudentByEmail(ctx context.Context, email string) (*model.Student, error) {
	students, err := s.store.Students(ctx)
	if err != nil {
		return nil, err
	}
	for i := range students {
		if strings.EqualFold(students[i].Email, email) {
			return &students[i], nil
		}
	}
	return nil, fmt.Errorf("student %s: %w", email, ErrNotFound)
}

// AddStudent appends a new roster entry with an empty borrowed set.  The
// email must not collide with an existing student, since it is the login key.
func (s *Service) AddStudent(ctx context.Context, st model.Student) (*model.Student, error) {
	if st.Name == "" || st.Email == "" {
		return nil, fmt.Errorf("name and email are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	students, err := s.store.Students(ctx)
	if err != nil {
		return nil, err
	}
	for i := range students {
		if strings.EqualFold(students[i].Email, st.Email) {
			return nil, fmt.Errorf("email %s already registered: %w", st.Email, ErrConflict)
		}
	}
	st.ID = uuid.NewString()
	st.SetBorrowedBookIDs(nil)
	students = append(students, st)
	if err := s.store.SaveStudents(ctx, students); err != nil {
		return nil, err
	}
	return &st, nil
}

// UpdateStudent merges a patch into an existing student.  The borrowed set
// is not patchable; only the ledger mutates it.
func (s *Service) UpdateStudent(ctx context.Context, id string, patch model.StudentPatch) (*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.store.Students(ctx)
	if err != nil {
		return nil, err
	}
	for i := range students {
		if students[i].ID != id {
			continue
		}
		patch.Apply(&students[i])
		if err := s.store.SaveStudents(ctx, students); err != nil {
			return nil, err
		}
		out := students[i]
		return &out, nil
	}
	return nil, fmt.Errorf("student %s: %w", id, ErrNotFound)
}

// DeleteStudent removes a student from the roster, refusing with ErrConflict
// while any active transaction references them.
func (s *Service) DeleteStudent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.store.Transactions(ctx)
	if err != nil {
		return err
	}
	for i := range txs {
		if txs[i].StudentID == id && txs[i].Active() {
			return fmt.Errorf("student %s has an active transaction: %w", id, ErrConflict)
		}
	}

	students, err := s.store.Students(ctx)
	if err != nil {
		return err
	}
	kept := students[:0]
	for _, st := range students {
		if st.ID != id {
			kept = append(kept, st)
		}
	}
	if len(kept) == len(students) {
		return fmt.Errorf("student %s: %w", id, ErrNotFound)
	}
	return s.store.SaveStudents(ctx, kept)
}

// SaveStudents replaces the whole roster.  Bulk import path only.
func (s *Service) SaveStudents(ctx context.Context, students []model.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.SaveStudents(ctx, students)
}

// StudentName resolves a student ID for display, falling back to the Unknown
// sentinel for dangling references.
func (s *Service) StudentName(ctx context.Context, id string) string {
	st, err := s.StudentByID(ctx, id)
	if err != nil {
		return UnknownTitle
	}
	return st.Name
}
