package entity

import "time"

type Conversation struct {
	Id        int64
	SessionId string
	CreatedAt time.Time
}
