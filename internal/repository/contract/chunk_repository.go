package contract

import (
	"context"

	"rag-assistant-be/internal/entity"
	"rag-assistant-be/internal/repository/specification"
)

// ScoredChunk wraps a DocumentChunk with its similarity score
type ScoredChunk struct {
	Chunk      *entity.DocumentChunk
	Similarity float64 // larger = more similar
}

type ChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	DeleteByDocumentID(ctx context.Context, documentID int64) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns chunks ranked by descending similarity,
	// truncated to limit and filtered to similarity >= threshold.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredChunk, error)
}
