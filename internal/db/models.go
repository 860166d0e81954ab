package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// ChunkRow is a persisted text chunk with its embedding, belonging to a
// named vector collection.
type ChunkRow struct {
	ID         uuid.UUID
	Collection string
	SourceID   string
	ChunkIndex int
	Content    string
	Embedding  pgvector.Vector
	CreatedAt  time.Time
}

// ScoredChunk is a chunk returned from similarity search together with its
// cosine similarity to the query vector.
type ScoredChunk struct {
	Chunk ChunkRow
	Score float64
}

// TurnRow is one persisted message of a conversation thread. seq gives the
// append order within the thread.
type TurnRow struct {
	ID        uuid.UUID
	ThreadID  string
	Seq       int
	Role      string
	Content   string
	CreatedAt time.Time
}
