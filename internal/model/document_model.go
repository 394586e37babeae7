package model

import (
	"time"

	"gorm.io/datatypes"
)

type Document struct {
	Id         int64             `gorm:"primaryKey;autoIncrement"`
	Title      string            `gorm:"type:text;not null"`
	SourceType string            `gorm:"type:varchar(50)"`
	SourceURL  string            `gorm:"type:text"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt  time.Time         `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}
