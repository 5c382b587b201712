package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLKV is the alternate persistence collaborator: one row per collection
// in a kv_collections table.  It exists for deployments that already run
// MySQL and do not want a second datastore; the entity store on top is
// identical either way.
type MySQLKV struct {
	db *sql.DB
}

// OpenMySQL connects to MySQL, verifies the connection and ensures the
// kv_collections table exists.
func OpenMySQL(user, pass, host, port, name string) (*MySQLKV, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	const schema = `CREATE TABLE IF NOT EXISTS kv_collections (
		name    VARCHAR(64) PRIMARY KEY,
		payload LONGTEXT NOT NULL
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensure kv_collections: %w", err)
	}
	return &MySQLKV{db: db}, nil
}

// Close closes the underlying pool.
func (m *MySQLKV) Close() error { return m.db.Close() }

// Get reads a collection payload.  A missing row means the collection has
// never been written.
func (m *MySQLKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const q = `SELECT payload FROM kv_collections WHERE name = ?`
	var payload []byte
	err := m.db.QueryRowContext(ctx, q, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

// Set upserts a collection payload.
func (m *MySQLKV) Set(ctx context.Context, key string, value []byte) error {
	const q = `INSERT INTO kv_collections (name, payload) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE payload = VALUES(payload)`
	_, err := m.db.ExecContext(ctx, q, key, value)
	return err
}
