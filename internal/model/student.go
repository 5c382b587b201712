package model

import "encoding/json"

// Student is a registered borrower.  BorrowedBooks is stored as a JSON array
// of book IDs serialized into a text field, mirroring the persisted layout.
// A book ID appears in the set exactly while the student holds an issued
// transaction for that book.  The set is mutated only by the loan ledger.
type Student struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	BorrowedBooks string `json:"borrowed_books"`
}

// BorrowedBookIDs decodes the serialized borrowed set.  Malformed or empty
// text decodes to the empty set rather than an error.
func (s *Student) BorrowedBookIDs() []string {
	if s.BorrowedBooks == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(s.BorrowedBooks), &ids); err != nil {
		return nil
	}
	return ids
}

// SetBorrowedBookIDs re-serializes the borrowed set.  A nil slice is stored
// as the empty JSON array so the field never round-trips as "null".
func (s *Student) SetBorrowedBookIDs(ids []string) {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		raw = []byte("[]")
	}
	s.BorrowedBooks = string(raw)
}

// HasBorrowed reports whether bookID is currently in the borrowed set.
func (s *Student) HasBorrowed(bookID string) bool {
	for _, id := range s.BorrowedBookIDs() {
		if id == bookID {
			return true
		}
	}
	return false
}

// StudentPatch enumerates the optional fields of a partial student update.
// The borrowed set is deliberately absent: it belongs to the loan ledger.
type StudentPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// Apply merges the patch into the student, field by field.
func (p StudentPatch) Apply(s *Student) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
}
