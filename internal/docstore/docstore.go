package docstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/desoft-apps/fiscalito/internal/corpus"
	"github.com/desoft-apps/fiscalito/internal/embeddings"
	"github.com/desoft-apps/fiscalito/internal/index"
)

// Store owns corpus ingestion and exposes retrieval over the vector index.
// Bootstrap runs at most once per process: if persisted state exists it is
// loaded, otherwise the supplied corpus is split and built. Existing
// persisted data is never re-ingested.
type Store struct {
	embedder  embeddings.Embedder
	index     index.Index
	splitter  *corpus.Splitter
	threshold float64
	logger    *log.Logger

	bootstrapOnce sync.Once
	bootstrapErr  error
}

// New creates a document store. Bootstrap must be called before Retrieve.
func New(embedder embeddings.Embedder, idx index.Index, splitter *corpus.Splitter, threshold float64, logger *log.Logger) *Store {
	return &Store{
		embedder:  embedder,
		index:     idx,
		splitter:  splitter,
		threshold: threshold,
		logger:    logger,
	}
}

// Bootstrap loads the persisted index or, when no persisted state exists,
// splits the documents and builds it. Concurrent callers share the single
// attempt and all observe its result.
func (s *Store) Bootstrap(ctx context.Context, docs []corpus.Document) error {
	s.bootstrapOnce.Do(func() {
		s.bootstrapErr = s.bootstrap(ctx, docs)
	})
	return s.bootstrapErr
}

func (s *Store) bootstrap(ctx context.Context, docs []corpus.Document) error {
	err := s.index.Load(ctx)
	if err == nil {
		s.logger.Printf("vector index loaded from persisted state")
		return nil
	}
	if !errors.Is(err, index.ErrStorageUnavailable) {
		return fmt.Errorf("failed to load index: %w", err)
	}

	chunks := s.splitter.Split(docs)
	s.logger.Printf("no persisted index found, building from %d documents (%d chunks)", len(docs), len(chunks))
	if err := s.index.Build(ctx, chunks, s.embedder); err != nil {
		return err
	}
	s.logger.Printf("vector index built")
	return nil
}

// Retrieve embeds the query and returns the texts of the k most relevant
// chunks, best first. An empty result means nothing cleared the relevance
// threshold; that is a normal outcome, not an error.
func (s *Store) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	matches, err := s.index.Search(ctx, vector, k, s.threshold)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(matches))
	for _, m := range matches {
		texts = append(texts, m.Chunk.Chunk.Text)
	}
	return texts, nil
}
