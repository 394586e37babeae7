package mapper

import (
	"rag-assistant-be/internal/entity"
	"rag-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:         d.Id,
		Title:      d.Title,
		SourceType: d.SourceType,
		SourceURL:  d.SourceURL,
		Metadata:   map[string]interface{}(d.Metadata),
		CreatedAt:  d.CreatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:         d.Id,
		Title:      d.Title,
		SourceType: d.SourceType,
		SourceURL:  d.SourceURL,
		Metadata:   datatypes.JSONMap(d.Metadata),
		CreatedAt:  d.CreatedAt,
	}
}
