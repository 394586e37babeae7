package mapper

import (
	"rag-assistant-be/internal/entity"
	"rag-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:               msg.Id,
		ConversationId:   msg.ConversationId,
		Role:             msg.Role,
		Content:          msg.Content,
		RelevantChunkIds: []int64(msg.RelevantChunkIds),
		Embedding:        msg.Embedding.Slice(),
		CreatedAt:        msg.CreatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:               msg.Id,
		ConversationId:   msg.ConversationId,
		Role:             msg.Role,
		Content:          msg.Content,
		RelevantChunkIds: model.ChunkIDArray(msg.RelevantChunkIds),
		Embedding:        pgvector.NewVector(msg.Embedding),
		CreatedAt:        msg.CreatedAt,
	}
}

func (m *MessageMapper) ToEntities(msgs []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}
