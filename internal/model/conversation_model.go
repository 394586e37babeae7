package model

import "time"

type Conversation struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	SessionId string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Conversation) TableName() string {
	return "conversations"
}
