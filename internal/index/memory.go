package index

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/desoft-apps/fiscalito/internal/corpus"
	"github.com/desoft-apps/fiscalito/internal/embeddings"
)

// Memory is a brute-force cosine similarity index held in process memory.
// Nothing is persisted, so Load always reports absent storage and the
// document store rebuilds on every start. Useful for development and tests.
type Memory struct {
	mu        sync.RWMutex
	dimension int
	entries   []EmbeddedChunk
}

// NewMemory creates an empty in-memory index
func NewMemory() *Memory {
	return &Memory{}
}

// Build embeds every chunk and replaces the index contents atomically
func (idx *Memory) Build(ctx context.Context, chunks []corpus.Chunk, embedder embeddings.Embedder) error {
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

	entries := make([]EmbeddedChunk, len(chunks))
	for i, chunk := range chunks {
		entries[i] = EmbeddedChunk{Chunk: chunk, Vector: vectors[i]}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries = entries
	if len(vectors) > 0 {
		idx.dimension = len(vectors[0])
	}
	return nil
}

// Load reports absent storage: a memory index has nothing durable to load
func (idx *Memory) Load(ctx context.Context) error {
	return fmt.Errorf("%w: memory index has no persisted state", ErrStorageUnavailable)
}

// Search scans all entries and keeps those above threshold, best first
func (idx *Memory) Search(ctx context.Context, vector []float32, k int, threshold float64) ([]Match, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.entries) > 0 && len(vector) != idx.dimension {
		return nil, fmt.Errorf("query vector has dimension %d, index has %d", len(vector), idx.dimension)
	}

	var matches []Match
	for _, entry := range idx.entries {
		score := cosineSimilarity(entry.Vector, vector)
		if score > threshold {
			matches = append(matches, Match{Chunk: entry, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
