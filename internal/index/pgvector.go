package index

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"github.com/desoft-apps/fiscalito/internal/corpus"
	"github.com/desoft-apps/fiscalito/internal/db"
	"github.com/desoft-apps/fiscalito/internal/embeddings"
)

// PgVector is an Index persisted in Postgres with the pgvector extension.
// The collection name addresses the rows; the database is the storage
// location.
type PgVector struct {
	db         *db.DB
	collection string
}

// NewPgVector creates an index bound to a collection
func NewPgVector(database *db.DB, collection string) *PgVector {
	return &PgVector{db: database, collection: collection}
}

// Build embeds every chunk and replaces the collection in one transaction
func (idx *PgVector) Build(ctx context.Context, chunks []corpus.Chunk, embedder embeddings.Embedder) error {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIngestion, err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: got %d vectors for %d chunks", ErrIngestion, len(vectors), len(chunks))
	}
	if err := checkDimensions(vectors); err != nil {
		return fmt.Errorf("%w: %v", ErrIngestion, err)
	}

	rows := make([]*db.ChunkRow, len(chunks))
	for i, chunk := range chunks {
		rows[i] = &db.ChunkRow{
			ID:         uuid.New(),
			Collection: idx.collection,
			SourceID:   chunk.SourceID,
			ChunkIndex: chunk.Index,
			Content:    chunk.Text,
			Embedding:  pgvector.NewVector(vectors[i]),
		}
	}

	if err := idx.db.ReplaceChunks(ctx, idx.collection, rows); err != nil {
		return fmt.Errorf("%w: %v", ErrIngestion, err)
	}
	return nil
}

// Load verifies that persisted chunks exist for the collection
func (idx *PgVector) Load(ctx context.Context) error {
	count, err := idx.db.CountChunks(ctx, idx.collection)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if count == 0 {
		return fmt.Errorf("%w: collection %q is empty", ErrStorageUnavailable, idx.collection)
	}
	return nil
}

// Search runs a threshold-gated cosine similarity query
func (idx *PgVector) Search(ctx context.Context, vector []float32, k int, threshold float64) ([]Match, error) {
	scored, err := idx.db.SearchChunks(ctx, idx.collection, pgvector.NewVector(vector), k, threshold)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	matches := make([]Match, 0, len(scored))
	for _, sc := range scored {
		matches = append(matches, Match{
			Chunk: EmbeddedChunk{
				Chunk: corpus.Chunk{
					SourceID: sc.Chunk.SourceID,
					Index:    sc.Chunk.ChunkIndex,
					Text:     sc.Chunk.Content,
				},
				Vector: sc.Chunk.Embedding.Slice(),
			},
			Score: sc.Score,
		})
	}
	return matches, nil
}
