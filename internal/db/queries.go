package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

// ReplaceChunks atomically replaces the contents of a vector collection.
// Either every chunk is committed or none are.
func (db *DB) ReplaceChunks(ctx context.Context, collection string, chunks []*ChunkRow) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM chunks WHERE collection = $1`, collection); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}

	batch := &pgx.Batch{}
	for _, chunk := range chunks {
		batch.Queue(
			`INSERT INTO chunks (id, collection, source_id, chunk_index, content, embedding)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			chunk.ID, chunk.Collection, chunk.SourceID, chunk.ChunkIndex, chunk.Content, chunk.Embedding,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < len(chunks); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert chunk %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to flush chunk batch: %w", err)
	}

	return tx.Commit(ctx)
}

// CountChunks reports how many chunks a collection holds
func (db *DB) CountChunks(ctx context.Context, collection string) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM chunks WHERE collection = $1`, collection,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return count, nil
}

// SearchChunks finds the chunks most similar to the query embedding, keeping
// only those whose cosine similarity clears the threshold. Results come back
// in descending similarity order, at most limit of them.
func (db *DB) SearchChunks(ctx context.Context, collection string, embedding pgvector.Vector, limit int, threshold float64) ([]ScoredChunk, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, collection, source_id, chunk_index, content, embedding, created_at,
		        1 - (embedding <=> $2) AS score
		 FROM chunks
		 WHERE collection = $1 AND 1 - (embedding <=> $2) > $3
		 ORDER BY embedding <=> $2
		 LIMIT $4`,
		collection, embedding, threshold, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}
	defer rows.Close()

	var results []ScoredChunk
	for rows.Next() {
		var sc ScoredChunk
		if err := rows.Scan(
			&sc.Chunk.ID, &sc.Chunk.Collection, &sc.Chunk.SourceID, &sc.Chunk.ChunkIndex,
			&sc.Chunk.Content, &sc.Chunk.Embedding, &sc.Chunk.CreatedAt, &sc.Score,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		results = append(results, sc)
	}
	return results, rows.Err()
}

// AppendTurns inserts new turns for a thread. The (thread_id, seq) key makes
// the insert idempotent: a retried append never duplicates turns.
func (db *DB) AppendTurns(ctx context.Context, turns []*TurnRow) error {
	if len(turns) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, turn := range turns {
		batch.Queue(
			`INSERT INTO turns (id, thread_id, seq, role, content)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (thread_id, seq) DO NOTHING`,
			turn.ID, turn.ThreadID, turn.Seq, turn.Role, turn.Content,
		)
	}
	br := db.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < len(turns); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to append turn %d: %w", i, err)
		}
	}
	return nil
}

// GetTurns loads every turn of a thread in append order
func (db *DB) GetTurns(ctx context.Context, threadID string) ([]*TurnRow, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, thread_id, seq, role, content, created_at
		 FROM turns WHERE thread_id = $1 ORDER BY seq`,
		threadID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get turns: %w", err)
	}
	defer rows.Close()

	var turns []*TurnRow
	for rows.Next() {
		var turn TurnRow
		if err := rows.Scan(
			&turn.ID, &turn.ThreadID, &turn.Seq, &turn.Role, &turn.Content, &turn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, &turn)
	}
	return turns, rows.Err()
}
