package entity

import "time"

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Message is one chat turn. RelevantChunkIds lists the chunks cited by
// an assistant answer, in retrieval order; it is empty for user turns.
type Message struct {
	Id               int64
	ConversationId   int64
	Role             string
	Content          string
	RelevantChunkIds []int64
	Embedding        []float32
	CreatedAt        time.Time
}
