package service

import (
	"context"
	"encoding/json"
	"time"

	"tribe-chatbot-be/internal/dto"
	"tribe-chatbot-be/internal/pkg/logger"
	"tribe-chatbot-be/internal/repository/contract"
	"tribe-chatbot-be/internal/repository/specification"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService listens for training completion events and flips the
// chatbot's trained flag. Keeping the flag update off the training request
// path means a slow DB write never delays the training response.
type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	chatbotRepo contract.ChatbotRepository
	logger      logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	chatbotRepo contract.ChatbotRepository,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		chatbotRepo: chatbotRepo,
		logger:      log,
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
	var event dto.TrainedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("consumer_service", "failed to unmarshal trained event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	chatbotId, err := uuid.Parse(event.ChatbotId)
	if err != nil {
		cs.logger.Error("consumer_service", "trained event has invalid chatbot id", map[string]interface{}{
			"chatbot_id": event.ChatbotId,
		})
		msg.Ack()
		return
	}

	chatbot, err := cs.chatbotRepo.FindOne(ctx, specification.ByID{ID: chatbotId})
	if err != nil {
		cs.logger.Error("consumer_service", "failed to load chatbot", map[string]interface{}{
			"chatbot_id": event.ChatbotId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}
	if chatbot == nil {
		// Chatbot deleted between training and delivery. Nothing to update.
		msg.Ack()
		return
	}

	now := time.Now()
	chatbot.IsTrained = true
	chatbot.LastTrainedAt = &now

	if err := cs.chatbotRepo.Update(ctx, chatbot); err != nil {
		cs.logger.Error("consumer_service", "failed to mark chatbot trained", map[string]interface{}{
			"chatbot_id": event.ChatbotId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("consumer_service", "chatbot marked trained", map[string]interface{}{
		"chatbot_id":     event.ChatbotId,
		"tenant_key":     event.TenantKey,
		"chunks_indexed": event.ChunksIndexed,
	})
	msg.Ack()
}
