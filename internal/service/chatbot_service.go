package service

import (
	"context"
	"fmt"
	"time"

	"tribe-chatbot-be/internal/dto"
	"tribe-chatbot-be/internal/model"
	"tribe-chatbot-be/internal/repository/contract"
	"tribe-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type IChatbotService interface {
	Create(ctx context.Context, companyId uuid.UUID, req *dto.CreateChatbotRequest) (*dto.CreateChatbotResponse, error)
	GetAll(ctx context.Context, companyId uuid.UUID) ([]*dto.ChatbotResponse, error)
	Show(ctx context.Context, companyId, id uuid.UUID) (*dto.ChatbotResponse, error)
	Update(ctx context.Context, companyId uuid.UUID, req *dto.UpdateChatbotRequest) (*dto.ChatbotResponse, error)
	Delete(ctx context.Context, companyId, id uuid.UUID) error

	// TenantKey resolves a chatbot to its vector collection name. The mapping
	// is immutable once the chatbot exists, so lookups are cached.
	TenantKey(ctx context.Context, chatbotId uuid.UUID) (string, error)
}

type chatbotService struct {
	chatbotRepo contract.ChatbotRepository
	keyCache    *cache.Cache
}

func NewChatbotService(chatbotRepo contract.ChatbotRepository) IChatbotService {
	return &chatbotService{
		chatbotRepo: chatbotRepo,
		keyCache:    cache.New(30*time.Minute, 10*time.Minute),
	}
}

// TenantKeyFor builds the collection name for one chatbot. Every vector
// operation for the tenant goes through a collection with this name.
func TenantKeyFor(companyId, chatbotId uuid.UUID) string {
	return fmt.Sprintf("chatbot_%s_%s", companyId, chatbotId)
}

func (s *chatbotService) Create(ctx context.Context, companyId uuid.UUID, req *dto.CreateChatbotRequest) (*dto.CreateChatbotResponse, error) {
	chatbot := &model.Chatbot{
		Name:        req.Name,
		Description: req.Description,
		CompanyId:   companyId,
	}
	if err := s.chatbotRepo.Create(ctx, chatbot); err != nil {
		return nil, err
	}
	return &dto.CreateChatbotResponse{Id: chatbot.Id}, nil
}

func (s *chatbotService) GetAll(ctx context.Context, companyId uuid.UUID) ([]*dto.ChatbotResponse, error) {
	chatbots, err := s.chatbotRepo.FindAll(ctx,
		specification.ByCompanyID{CompanyID: companyId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatbotResponse, 0, len(chatbots))
	for _, chatbot := range chatbots {
		result = append(result, toChatbotResponse(chatbot))
	}
	return result, nil
}

func (s *chatbotService) Show(ctx context.Context, companyId, id uuid.UUID) (*dto.ChatbotResponse, error) {
	chatbot, err := s.findOwned(ctx, companyId, id)
	if err != nil {
		return nil, err
	}
	return toChatbotResponse(chatbot), nil
}

func (s *chatbotService) Update(ctx context.Context, companyId uuid.UUID, req *dto.UpdateChatbotRequest) (*dto.ChatbotResponse, error) {
	chatbot, err := s.findOwned(ctx, companyId, req.Id)
	if err != nil {
		return nil, err
	}

	chatbot.Name = req.Name
	chatbot.Description = req.Description
	if err := s.chatbotRepo.Update(ctx, chatbot); err != nil {
		return nil, err
	}
	return toChatbotResponse(chatbot), nil
}

func (s *chatbotService) Delete(ctx context.Context, companyId, id uuid.UUID) error {
	chatbot, err := s.findOwned(ctx, companyId, id)
	if err != nil {
		return err
	}
	s.keyCache.Delete(chatbot.Id.String())
	return s.chatbotRepo.Delete(ctx, id)
}

func (s *chatbotService) TenantKey(ctx context.Context, chatbotId uuid.UUID) (string, error) {
	if key, found := s.keyCache.Get(chatbotId.String()); found {
		return key.(string), nil
	}

	chatbot, err := s.chatbotRepo.FindOne(ctx, specification.ByID{ID: chatbotId})
	if err != nil {
		return "", err
	}
	if chatbot == nil {
		return "", ErrNotFound
	}

	key := TenantKeyFor(chatbot.CompanyId, chatbot.Id)
	s.keyCache.Set(chatbotId.String(), key, cache.DefaultExpiration)
	return key, nil
}

func (s *chatbotService) findOwned(ctx context.Context, companyId, id uuid.UUID) (*model.Chatbot, error) {
	chatbot, err := s.chatbotRepo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if chatbot == nil {
		return nil, ErrNotFound
	}
	if chatbot.CompanyId != companyId {
		return nil, ErrForbidden
	}
	return chatbot, nil
}

func toChatbotResponse(chatbot *model.Chatbot) *dto.ChatbotResponse {
	return &dto.ChatbotResponse{
		Id:            chatbot.Id,
		Name:          chatbot.Name,
		Description:   chatbot.Description,
		CompanyId:     chatbot.CompanyId,
		IsTrained:     chatbot.IsTrained,
		LastTrainedAt: chatbot.LastTrainedAt,
		CreatedAt:     chatbot.CreatedAt,
	}
}
