package embedding

import (
	"context"
	"errors"
)

// ErrUnavailable marks the embedding model as unreachable. Chunks and
// queries cannot be indexed or matched without a vector, so callers
// must surface this instead of swallowing it.
var ErrUnavailable = errors.New("embedding model unavailable")

// Provider defines the interface for generating text embeddings.
// Encode embeds the whole batch in a single model call; that batching
// is load-bearing for ingestion throughput, not an optimization detail.
type Provider interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
	EncodeOne(ctx context.Context, text string) ([]float32, error)
}
