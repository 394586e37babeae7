package contract

import (
	"context"

	"rag-assistant-be/internal/entity"
	"rag-assistant-be/internal/repository/specification"
)

type ConversationRepository interface {
	// GetOrCreate finds the conversation for sessionID, creating it when
	// absent. Concurrent calls with the same sessionID must resolve to a
	// single conversation (atomic at the storage layer).
	GetOrCreate(ctx context.Context, sessionID string) (*entity.Conversation, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
