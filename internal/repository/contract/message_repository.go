package contract

import (
	"context"

	"rag-assistant-be/internal/entity"
	"rag-assistant-be/internal/repository/specification"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// Recent returns at most limit of the newest messages in the
	// conversation, reordered oldest-first.
	Recent(ctx context.Context, conversationID int64, limit int) ([]*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
