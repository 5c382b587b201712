package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/iliyamo/library-loan-system/internal/model"
)

// Storage keys, one per collection.
const (
	keyBooks        = "lib:books"
	keyStudents     = "lib:students"
	keyTransactions = "lib:transactions"
)

// EntityStore exposes the three collections over the KV collaborator.  Every
// read returns the decoded collection; every write replaces it wholesale.
// A per-collection RWMutex serializes read-modify-write cycles issued from
// this process.  Cross-process writers are not coordinated; last write wins,
// which is an accepted property of the storage collaborator.
//
// Decoding is fail-open: a payload that does not parse is treated as the
// empty collection and logged, never surfaced to the caller.  A collection
// that has never been written is seeded with a small example dataset.
type EntityStore struct {
	kv KV

	booksMu    sync.RWMutex
	studentsMu sync.RWMutex
	txMu       sync.RWMutex
}

// New builds an EntityStore over the given collaborator.
func New(kv KV) *EntityStore {
	if kv == nil {
		panic("nil KV passed to store.New")
	}
	return &EntityStore{kv: kv}
}

// load reads and decodes one collection into dest (a pointer to a slice).
// seed is stored and returned when the key has never been written.
func (s *EntityStore) load(ctx context.Context, key string, dest any, seed any) error {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		// First access: persist the seed so later readers agree with us.
		if err := s.save(ctx, key, seed); err != nil {
			return err
		}
		raw, err = json.Marshal(seed)
		if err != nil {
			return fmt.Errorf("encode seed %s: %w", key, err)
		}
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Fail open: malformed payloads read as empty, the store keeps working.
		log.Printf("store: malformed payload under %s, treating as empty: %v", key, err)
	}
	return nil
}

func (s *EntityStore) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Books returns the book collection in stored order.
func (s *EntityStore) Books(ctx context.Context) ([]model.Book, error) {
	s.booksMu.RLock()
	defer s.booksMu.RUnlock()
	books := []model.Book{}
	if err := s.load(ctx, keyBooks, &books, seedBooks()); err != nil {
		return nil, err
	}
	return books, nil
}

// SaveBooks replaces the book collection.
func (s *EntityStore) SaveBooks(ctx context.Context, books []model.Book) error {
	s.booksMu.Lock()
	defer s.booksMu.Unlock()
	return s.save(ctx, keyBooks, books)
}

// Students returns the student collection in stored order.
func (s *EntityStore) Students(ctx context.Context) ([]model.Student, error) {
	s.studentsMu.RLock()
	defer s.studentsMu.RUnlock()
	students := []model.Student{}
	if err := s.load(ctx, keyStudents, &students, seedStudents()); err != nil {
		return nil, err
	}
	return students, nil
}

// SaveStudents replaces the student collection.
func (s *EntityStore) SaveStudents(ctx context.Context, students []model.Student) error {
	s.studentsMu.Lock()
	defer s.studentsMu.Unlock()
	return s.save(ctx, keyStudents, students)
}

// Transactions returns the transaction collection in stored order.
func (s *EntityStore) Transactions(ctx context.Context) ([]model.Transaction, error) {
	s.txMu.RLock()
	defer s.txMu.RUnlock()
	txs := []model.Transaction{}
	if err := s.load(ctx, keyTransactions, &txs, seedTransactions()); err != nil {
		return nil, err
	}
	return txs, nil
}

// SaveTransactions replaces the transaction collection.
func (s *EntityStore) SaveTransactions(ctx context.Context, txs []model.Transaction) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.save(ctx, keyTransactions, txs)
}
