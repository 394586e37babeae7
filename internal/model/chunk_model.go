package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocumentChunk struct {
	Id         int64             `gorm:"primaryKey;autoIncrement"`
	DocumentId int64             `gorm:"not null;index"`
	ChunkText  string            `gorm:"type:text;not null"`
	ChunkIndex int               `gorm:"not null;default:0"` // 0-based index for ordering
	Embedding  pgvector.Vector   `gorm:"type:vector(1024)"`  // bge-m3 uses 1024 dimensions
	Metadata   datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt  time.Time         `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
