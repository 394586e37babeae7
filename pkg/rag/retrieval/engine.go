package retrieval

import (
	"context"
	"fmt"

	"rag-assistant-be/internal/repository/contract"
	"rag-assistant-be/pkg/embedding"
)

// ChunkSearcher is the slice of the chunk repository the engine needs.
type ChunkSearcher interface {
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredChunk, error)
}

// Engine embeds a query and delegates to the vector store. The store
// returns candidates ranked by descending similarity, truncated to
// limit and filtered to the threshold; nothing is re-ranked here.
type Engine struct {
	embedder embedding.Provider
	searcher ChunkSearcher
}

func NewEngine(embedder embedding.Provider, searcher ChunkSearcher) *Engine {
	return &Engine{
		embedder: embedder,
		searcher: searcher,
	}
}

// Retrieve embeds queryText and searches. An empty result is a valid
// outcome ("no relevant context"), not an error. An unreachable
// embedding model surfaces embedding.ErrUnavailable; the caller decides
// whether to degrade.
func (e *Engine) Retrieve(ctx context.Context, queryText string, limit int, threshold float64) ([]*contract.ScoredChunk, error) {
	queryEmbedding, err := e.embedder.EncodeOne(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return e.RetrieveWithEmbedding(ctx, queryEmbedding, limit, threshold)
}

// RetrieveWithEmbedding skips the embedding step for callers that
// already hold a query vector.
func (e *Engine) RetrieveWithEmbedding(ctx context.Context, queryEmbedding []float32, limit int, threshold float64) ([]*contract.ScoredChunk, error) {
	results, err := e.searcher.SearchSimilarWithScore(ctx, queryEmbedding, limit, threshold)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	return results, nil
}
