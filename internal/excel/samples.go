package excel

import (
	"io"

	"github.com/iliyamo/library-loan-system/internal/model"
)

// Sample workbooks admins can download to see the expected column layout
// before preparing an import.

// WriteSampleBooks emits a small example catalog workbook.
func WriteSampleBooks(w io.Writer) error {
	return WriteBooks(w, []model.Book{
		{ID: "101", Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Category: "Fiction", TotalCopies: 5, AvailableCopies: 5},
		{ID: "102", Title: "Clean Code", Author: "Robert C. Martin", Category: "Technology", TotalCopies: 3, AvailableCopies: 3},
		{ID: "103", Title: "Introduction to Algorithms", Author: "Cormen", Category: "Education", TotalCopies: 2, AvailableCopies: 2},
	})
}

// WriteSampleStudents emits a small example roster workbook.
func WriteSampleStudents(w io.Writer) error {
	return WriteStudents(w, []model.Student{
		{ID: "S001", Name: "John Doe", Email: "john@example.com", Phone: "1234567890", BorrowedBooks: "[]"},
		{ID: "S002", Name: "Jane Smith", Email: "jane@example.com", Phone: "0987654321", BorrowedBooks: "[]"},
	})
}

// WriteSampleTransactions emits an empty loan history workbook, header only.
func WriteSampleTransactions(w io.Writer) error {
	return WriteTransactions(w, nil)
}
