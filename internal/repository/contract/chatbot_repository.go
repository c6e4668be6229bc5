package contract

import (
	"context"

	"tribe-chatbot-be/internal/model"
	"tribe-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatbotRepository interface {
	Create(ctx context.Context, chatbot *model.Chatbot) error
	Update(ctx context.Context, chatbot *model.Chatbot) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*model.Chatbot, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.Chatbot, error)
}
