package contract

import (
	"context"

	"tribe-chatbot-be/internal/model"
	"tribe-chatbot-be/internal/repository/specification"
)

type ChatLogRepository interface {
	Create(ctx context.Context, log *model.ChatLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.ChatLog, error)
}
