package implementation

import (
	"context"
	"errors"

	"tribe-chatbot-be/internal/model"
	"tribe-chatbot-be/internal/repository/contract"
	"tribe-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatbotRepositoryImpl struct {
	db *gorm.DB
}

func NewChatbotRepository(db *gorm.DB) contract.ChatbotRepository {
	return &ChatbotRepositoryImpl{db: db}
}

func (r *ChatbotRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatbotRepositoryImpl) Create(ctx context.Context, chatbot *model.Chatbot) error {
	return r.db.WithContext(ctx).Create(chatbot).Error
}

func (r *ChatbotRepositoryImpl) Update(ctx context.Context, chatbot *model.Chatbot) error {
	return r.db.WithContext(ctx).Save(chatbot).Error
}

func (r *ChatbotRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Chatbot{}, id).Error
}

func (r *ChatbotRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*model.Chatbot, error) {
	var m model.Chatbot
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *ChatbotRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.Chatbot, error) {
	var chatbots []*model.Chatbot
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&chatbots).Error; err != nil {
		return nil, err
	}
	return chatbots, nil
}
