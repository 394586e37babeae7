package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"rag-assistant-be/pkg/events"
)

type IPublisherService interface {
	Publish(ctx context.Context, evt events.Event) error
}

type publisherService struct {
	pubSub *gochannel.GoChannel
}

func NewPublisherService(pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{pubSub: pubSub}
}

// Publish serializes the event payload and routes the message by event
// type. Type and occurrence time travel as metadata so consumers can
// filter without decoding the body.
func (p *publisherService) Publish(ctx context.Context, evt events.Event) error {
	payload, err := json.Marshal(evt.Payload())
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", evt.EventType(), err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", evt.EventType())
	msg.Metadata.Set("occurred_at", evt.Timestamp().Format(time.RFC3339))

	return p.pubSub.Publish(evt.EventType(), msg)
}
