package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

// DB wraps the SQL connection pool
type DB struct {
	*sql.DB
}

// New opens a postgres connection pool and verifies it
func New(databaseURL string) (*DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// createFeedbackTable stores the feedback blob as TEXT rather than JSONB.
// JSONB normalizes documents (reorders keys, drops duplicates), and stored
// blobs must read back byte for byte as submitted. Queries that inspect the
// blob cast it with ::jsonb instead.
const createFeedbackTable = `
	CREATE TABLE IF NOT EXISTS feedback (
		id BIGSERIAL PRIMARY KEY,
		"user" TEXT NOT NULL,
		campaign_type TEXT NOT NULL,
		product TEXT NOT NULL,
		offer TEXT NOT NULL,
		feedback TEXT NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// Migrate creates the feedback table if it does not exist
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, createFeedbackTable); err != nil {
		return fmt.Errorf("failed to create feedback table: %w", err)
	}

	index := `CREATE INDEX IF NOT EXISTS idx_feedback_product ON feedback (product)`
	if _, err := db.ExecContext(ctx, index); err != nil {
		return fmt.Errorf("failed to create feedback index: %w", err)
	}

	return nil
}
