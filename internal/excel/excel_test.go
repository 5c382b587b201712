package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/library-loan-system/internal/model"
)

func TestBooksRoundTrip(t *testing.T) {
	in := []model.Book{
		{ID: "1", Title: "Dune", Author: "Frank Herbert", Category: "Fiction", TotalCopies: 5, AvailableCopies: 3},
		{ID: "2", Title: "Clean Code", Author: "Robert C. Martin", Category: "Tech", TotalCopies: 2, AvailableCopies: 2},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteBooks(&buf, in))

	out, err := ReadBooks(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestStudentsRoundTrip(t *testing.T) {
	in := []model.Student{
		{ID: "S1", Name: "Alice", Email: "alice@test.com", Phone: "555-0101", BorrowedBooks: `["1"]`},
		{ID: "S2", Name: "Bob", Email: "bob@test.com", Phone: "555-0102", BorrowedBooks: "[]"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteStudents(&buf, in))

	out, err := ReadStudents(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestTransactionsRoundTrip(t *testing.T) {
	in := []model.Transaction{
		{ID: "t1", StudentID: "S1", BookID: "1", IssueDate: "2024-05-10", Status: model.StatusIssued},
		{ID: "t2", StudentID: "S2", BookID: "2", IssueDate: "2024-05-11", ReturnDate: "2024-05-12", Status: model.StatusReturned},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, in))

	out, err := ReadTransactions(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestImportIsLenientAboutCells(t *testing.T) {
	// Build a workbook by hand with a junk numeric cell, a short row and an
	// extra column the importer does not know.
	f := excelize.NewFile()
	rows := [][]any{
		{"id", "title", "total_copies", "available_copies", "mystery"},
		{"1", "Dune", "not-a-number", "2", "???"},
		{"2", "Short Row"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	books, err := ReadBooks(&buf)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, 0, books[0].TotalCopies, "junk cell reads as zero")
	assert.Equal(t, 2, books[0].AvailableCopies)
	assert.Equal(t, "Short Row", books[1].Title)
	assert.Equal(t, "", books[1].Author, "missing column reads as empty")
}

func TestEmptyWorkbookImportsNothing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, nil))
	txs, err := ReadTransactions(&buf)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestSampleWorkbooksParse(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSampleBooks(&buf))
	books, err := ReadBooks(&buf)
	require.NoError(t, err)
	assert.Len(t, books, 3)

	buf.Reset()
	require.NoError(t, WriteSampleStudents(&buf))
	students, err := ReadStudents(&buf)
	require.NoError(t, err)
	assert.Len(t, students, 2)
}
