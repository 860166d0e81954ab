package embeddings

import "context"

// Embedder maps text to a fixed-dimension vector. All vectors produced by
// one embedder instance have the same dimension.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
