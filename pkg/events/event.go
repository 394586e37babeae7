// Package events defines the contract for in-process system events.
package events

import "time"

const TopicDocumentIngested = "document.ingested"

// Event is implemented by everything published on the internal bus.
type Event interface {
	// EventType returns the unique code for this event.
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent embeds common fields for concrete events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewDocumentIngested records a successful document ingestion.
func NewDocumentIngested(documentID int64, title string, chunkCount int) Event {
	return BaseEvent{
		Type: TopicDocumentIngested,
		Data: map[string]interface{}{
			"document_id": documentID,
			"title":       title,
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now().UTC(),
	}
}
