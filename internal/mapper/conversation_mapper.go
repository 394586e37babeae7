package mapper

import (
	"rag-assistant-be/internal/entity"
	"rag-assistant-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}
	return &entity.Conversation{
		Id:        c.Id,
		SessionId: c.SessionId,
		CreatedAt: c.CreatedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}
	return &model.Conversation{
		Id:        c.Id,
		SessionId: c.SessionId,
		CreatedAt: c.CreatedAt,
	}
}
