// Package excel is the spreadsheet bridge: it converts between the entity
// collections and single-sheet .xlsx workbooks for bulk import/export.  The
// column layout is one column per entity field, named after the field.
// Import performs no schema validation beyond column-name mapping; whatever
// rows the workbook carries replace the target collection wholesale.
package excel

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/library-loan-system/internal/model"
)

const sheetName = "Sheet1"

// Column layouts, in export order.
var (
	bookColumns        = []string{"id", "title", "author", "category", "total_copies", "available_copies"}
	studentColumns     = []string{"id", "name", "email", "phone", "borrowed_books"}
	transactionColumns = []string{"id", "student_id", "book_id", "issue_date", "return_date", "status"}
)

// writeSheet emits a workbook with a header row followed by one row per
// record.
func writeSheet(w io.Writer, headers []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	head := make([]any, len(headers))
	for i, h := range headers {
		head[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &head); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}

// readSheet reads the first sheet of a workbook into header-keyed records.
// Short rows leave the trailing columns empty.
func readSheet(r io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	headers := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// atoiLenient turns a cell into an int, reading anything unparseable as zero.
func atoiLenient(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// WriteBooks exports the catalog as a workbook.
func WriteBooks(w io.Writer, books []model.Book) error {
	rows := make([][]any, len(books))
	for i, b := range books {
		rows[i] = []any{b.ID, b.Title, b.Author, b.Category, b.TotalCopies, b.AvailableCopies}
	}
	return writeSheet(w, bookColumns, rows)
}

// ReadBooks imports a catalog workbook.
func ReadBooks(r io.Reader) ([]model.Book, error) {
	records, err := readSheet(r)
	if err != nil {
		return nil, err
	}
	books := make([]model.Book, 0, len(records))
	for _, rec := range records {
		books = append(books, model.Book{
			ID:              rec["id"],
			Title:           rec["title"],
			Author:          rec["author"],
			Category:        rec["category"],
			TotalCopies:     atoiLenient(rec["total_copies"]),
			AvailableCopies: atoiLenient(rec["available_copies"]),
		})
	}
	return books, nil
}

// WriteStudents exports the roster as a workbook.  The borrowed set travels
// in its serialized JSON-array form.
func WriteStudents(w io.Writer, students []model.Student) error {
	rows := make([][]any, len(students))
	for i, s := range students {
		rows[i] = []any{s.ID, s.Name, s.Email, s.Phone, s.BorrowedBooks}
	}
	return writeSheet(w, studentColumns, rows)
}

// ReadStudents imports a roster workbook.
func ReadStudents(r io.Reader) ([]model.Student, error) {
	records, err := readSheet(r)
	if err != nil {
		return nil, err
	}
	students := make([]model.Student, 0, len(records))
	for _, rec := range records {
		st := model.Student{
			ID:            rec["id"],
			Name:          rec["name"],
			Email:         rec["email"],
			Phone:         rec["phone"],
			BorrowedBooks: rec["borrowed_books"],
		}
		if st.BorrowedBooks == "" {
			st.BorrowedBooks = "[]"
		}
		students = append(students, st)
	}
	return students, nil
}

// WriteTransactions exports the loan history as a workbook.
func WriteTransactions(w io.Writer, txs []model.Transaction) error {
	rows := make([][]any, len(txs))
	for i, t := range txs {
		rows[i] = []any{t.ID, t.StudentID, t.BookID, t.IssueDate, t.ReturnDate, string(t.Status)}
	}
	return writeSheet(w, transactionColumns, rows)
}

// ReadTransactions imports a loan history workbook.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	records, err := readSheet(r)
	if err != nil {
		return nil, err
	}
	txs := make([]model.Transaction, 0, len(records))
	for _, rec := range records {
		txs = append(txs, model.Transaction{
			ID:         rec["id"],
			StudentID:  rec["student_id"],
			BookID:     rec["book_id"],
			IssueDate:  rec["issue_date"],
			ReturnDate: rec["return_date"],
			Status:     model.TransactionStatus(rec["status"]),
		})
	}
	return txs, nil
}
