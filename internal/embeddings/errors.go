package embeddings

import "errors"

// ErrEmbedding marks a failed embedding call. Callers decide whether the
// failure is fatal (corpus ingestion) or degradable (a single query).
var ErrEmbedding = errors.New("embedding request failed")
