package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process ingestion topic into the audit log
// so uploads stay off the request path's critical section.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	ingestionLog contract.IngestionLogRepository
	log          logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	ingestionLog contract.IngestionLogRepository,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		ingestionLog: ingestionLog,
		log:          log,
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
	var details map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &details); err != nil {
		cs.log.Error("consumer_service", "failed to unmarshal audit message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	record := entity.IngestionRecord{
		Id:        uuid.New(),
		EventType: events.TypeDocumentIngested,
		Details:   details,
		CreatedAt: time.Now(),
	}

	if err := cs.ingestionLog.Create(ctx, &record); err != nil {
		cs.log.Error("consumer_service", "failed to write ingestion record", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
