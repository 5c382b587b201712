package store

import "github.com/iliyamo/library-loan-system/internal/model"

// Seed data returned on first access to a collection that has never been
// written.  Gives a fresh install something to click on.

func seedBooks() []model.Book {
	return []model.Book{
		{ID: "1", Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Category: "Tech", TotalCopies: 5, AvailableCopies: 5},
		{ID: "2", Title: "To Kill a Mockingbird", Author: "Harper Lee", Category: "Fiction", TotalCopies: 3, AvailableCopies: 3},
	}
}

func seedStudents() []model.Student {
	return []model.Student{
		{ID: "S1", Name: "Alice Johnson", Email: "alice@test.com", Phone: "555-0101", BorrowedBooks: "[]"},
		{ID: "S2", Name: "Bob Smith", Email: "bob@test.com", Phone: "555-0102", BorrowedBooks: "[]"},
	}
}

func seedTransactions() []model.Transaction {
	return []model.Transaction{}
}
