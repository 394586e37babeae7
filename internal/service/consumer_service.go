package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"rag-assistant-be/internal/dto"
	"rag-assistant-be/internal/pkg/logger"
	"rag-assistant-be/internal/repository/unitofwork"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService watches ingestion events and records corpus stats,
// keeping the observer side effects out of the ingest transaction.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		log:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishDocumentIngestedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("ConsumerService", "unmarshal ingested event failed", map[string]interface{}{
			"error": err.Error(),
		})
		// invalid payloads never become valid, ack to drop
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	documentCount, err := uow.DocumentRepository().Count(ctx)
	if err != nil {
		cs.log.Error("ConsumerService", "count documents failed", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	chunkCount, err := uow.ChunkRepository().Count(ctx)
	if err != nil {
		cs.log.Error("ConsumerService", "count chunks failed", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	cs.log.Info("ConsumerService", "corpus updated", map[string]interface{}{
		"document_id":     payload.DocumentId,
		"title":           payload.Title,
		"new_chunks":      payload.ChunkCount,
		"total_documents": documentCount,
		"total_chunks":    chunkCount,
	})
	msg.Ack()
}
