package mapper

import (
	"rag-assistant-be/internal/entity"
	"rag-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ChunkMapper struct{}

func NewChunkMapper() *ChunkMapper {
	return &ChunkMapper{}
}

func (m *ChunkMapper) ToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}
	return &entity.DocumentChunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		ChunkText:  c.ChunkText,
		ChunkIndex: c.ChunkIndex,
		Embedding:  c.Embedding.Slice(),
		Metadata:   map[string]interface{}(c.Metadata),
		CreatedAt:  c.CreatedAt,
	}
}

func (m *ChunkMapper) ToModel(c *entity.DocumentChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}
	return &model.DocumentChunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		ChunkText:  c.ChunkText,
		ChunkIndex: c.ChunkIndex,
		Embedding:  pgvector.NewVector(c.Embedding),
		Metadata:   datatypes.JSONMap(c.Metadata),
		CreatedAt:  c.CreatedAt,
	}
}

func (m *ChunkMapper) ToEntities(chunks []*model.DocumentChunk) []*entity.DocumentChunk {
	entities := make([]*entity.DocumentChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ChunkMapper) ToModels(chunks []*entity.DocumentChunk) []*model.DocumentChunk {
	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}
