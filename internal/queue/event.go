// Package queue defines message payloads exchanged over the message broker.
package queue

// LoanDecidedEvent is published after every effective admin decision on a
// loan transaction.  It carries enough information for downstream consumers
// to log or trigger analytics without querying the primary store.  Dangling
// book or student references travel as "Unknown".
type LoanDecidedEvent struct {
	TransactionID string `json:"transaction_id"`
	StudentID     string `json:"student_id"`
	StudentName   string `json:"student_name"`
	BookID        string `json:"book_id"`
	BookTitle     string `json:"book_title"`
	Action        string `json:"action"` // approve | reject
	Status        string `json:"status"` // resulting transaction status
	DecidedAt     string `json:"decided_at"`
}
