package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/desoft-apps/fiscalito/internal/corpus"
	"github.com/desoft-apps/fiscalito/internal/embeddings"
)

// EmbeddedChunk pairs a corpus chunk with its embedding vector.
type EmbeddedChunk struct {
	Chunk  corpus.Chunk
	Vector []float32
}

// Match is a search hit: an embedded chunk and its similarity to the query.
type Match struct {
	Chunk EmbeddedChunk
	Score float64
}

// Index is a persistent store of embedded chunks supporting similarity
// search. An index is bound to one collection; at most one instance per
// collection should be active in a process.
type Index interface {
	// Build embeds every chunk and persists the collection. All-or-nothing:
	// a failed build leaves no partial state behind.
	Build(ctx context.Context, chunks []corpus.Chunk, embedder embeddings.Embedder) error
	// Load reconstructs the index from persisted state without re-embedding.
	// Returns ErrStorageUnavailable when the storage is unreachable or the
	// collection is absent; the caller then falls back to Build.
	Load(ctx context.Context) error
	// Search returns at most k matches scoring above threshold, in
	// descending score order. An empty result is a normal outcome meaning
	// no confidently relevant context exists.
	Search(ctx context.Context, vector []float32, k int, threshold float64) ([]Match, error)
}

var (
	// ErrIngestion marks a failed corpus build. Fatal at startup: without a
	// built index there is nothing to retrieve from.
	ErrIngestion = errors.New("corpus ingestion failed")
	// ErrStorageUnavailable marks unreachable or absent persisted state.
	ErrStorageUnavailable = errors.New("index storage unavailable")
)

// checkDimensions verifies the vector-dimension invariant across a build.
func checkDimensions(vectors [][]float32) error {
	if len(vectors) == 0 {
		return nil
	}
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), dim)
		}
	}
	return nil
}
