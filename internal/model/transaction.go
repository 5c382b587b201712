package model

// TransactionStatus is the state of a borrow/return request.
type TransactionStatus string

// Transaction lifecycle.  A request starts as pending, an approved borrow
// becomes issued, a student may then request a return which the admin either
// approves (returned) or rejects (back to issued).  Returned and rejected are
// terminal and are kept as history.
const (
	StatusPending         TransactionStatus = "pending"
	StatusIssued          TransactionStatus = "issued"
	StatusReturnRequested TransactionStatus = "return_requested"
	StatusReturned        TransactionStatus = "returned"
	StatusRejected        TransactionStatus = "rejected"
)

// Active reports whether the status still demands action, i.e. is not
// terminal.  At most one active transaction may exist per (student, book)
// pair.
func (s TransactionStatus) Active() bool {
	switch s {
	case StatusPending, StatusIssued, StatusReturnRequested:
		return true
	}
	return false
}

// Transaction records a single borrow/return request.  Dates are ISO
// YYYY-MM-DD strings so lexical order equals chronological order.
// ReturnDate is set only when a return is approved.  Transactions are never
// deleted.
type Transaction struct {
	ID         string            `json:"id"`
	StudentID  string            `json:"student_id"`
	BookID     string            `json:"book_id"`
	IssueDate  string            `json:"issue_date"`
	ReturnDate string            `json:"return_date,omitempty"`
	Status     TransactionStatus `json:"status"`
}

// Active reports whether the transaction is still in a non-terminal state.
func (t *Transaction) Active() bool { return t.Status.Active() }
