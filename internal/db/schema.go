package db

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS vector`,
	`CREATE TABLE IF NOT EXISTS chunks (
		id UUID PRIMARY KEY,
		collection TEXT NOT NULL,
		source_id TEXT NOT NULL,
		chunk_index INT NOT NULL,
		content TEXT NOT NULL,
		embedding VECTOR NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (collection, chunk_index)
	)`,
	`CREATE INDEX IF NOT EXISTS chunks_collection_idx ON chunks (collection)`,
	`CREATE TABLE IF NOT EXISTS turns (
		id UUID PRIMARY KEY,
		thread_id TEXT NOT NULL,
		seq INT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (thread_id, seq)
	)`,
	`CREATE INDEX IF NOT EXISTS turns_thread_idx ON turns (thread_id, seq)`,
}

// EnsureSchema creates the tables and the pgvector extension if they do not
// exist yet. Safe to run on every startup.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
