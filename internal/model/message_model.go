package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type Message struct {
	Id               int64           `gorm:"primaryKey;autoIncrement"`
	ConversationId   int64           `gorm:"not null;index"`
	Role             string          `gorm:"type:varchar(20);not null"`
	Content          string          `gorm:"type:text;not null"`
	RelevantChunkIds ChunkIDArray    `gorm:"type:bigint[]"`
	Embedding        pgvector.Vector `gorm:"type:vector(1024)"`
	CreatedAt        time.Time       `gorm:"autoCreateTime"`
}

func (Message) TableName() string {
	return "messages"
}
