package service

import (
	"context"
	"time"

	"tribe-chatbot-be/internal/dto"
	"tribe-chatbot-be/internal/model"
	"tribe-chatbot-be/internal/pkg/logger"
	"tribe-chatbot-be/internal/repository/contract"
	"tribe-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type IVisitorService interface {
	StartSession(ctx context.Context, chatbotId uuid.UUID, anonymousId string) (*dto.StartSessionResponse, error)

	// ActiveSession loads a session and verifies it has not expired.
	ActiveSession(ctx context.Context, sessionId uuid.UUID) (*model.VisitorSession, error)

	// CleanupExpired deletes sessions past their expiry and returns how many
	// were removed. Runs on a timer from main.
	CleanupExpired(ctx context.Context) (int64, error)
}

type visitorService struct {
	visitorRepo contract.VisitorRepository
	chatbotRepo contract.ChatbotRepository
	sessionTTL  time.Duration
	logger      logger.ILogger
}

func NewVisitorService(
	visitorRepo contract.VisitorRepository,
	chatbotRepo contract.ChatbotRepository,
	sessionTTL time.Duration,
	log logger.ILogger,
) IVisitorService {
	return &visitorService{
		visitorRepo: visitorRepo,
		chatbotRepo: chatbotRepo,
		sessionTTL:  sessionTTL,
		logger:      log,
	}
}

func (s *visitorService) StartSession(ctx context.Context, chatbotId uuid.UUID, anonymousId string) (*dto.StartSessionResponse, error) {
	chatbot, err := s.chatbotRepo.FindOne(ctx, specification.ByID{ID: chatbotId})
	if err != nil {
		return nil, err
	}
	if chatbot == nil {
		return nil, ErrNotFound
	}

	// Returning visitors reuse their anonymous identity; first contact mints one.
	if anonymousId == "" {
		anonymousId = uuid.New().String()
	}
	visitor, err := s.visitorRepo.FindVisitor(ctx, specification.ByAnonymousID{AnonymousID: anonymousId})
	if err != nil {
		return nil, err
	}
	if visitor == nil {
		visitor = &model.Visitor{AnonymousId: anonymousId}
		if err := s.visitorRepo.CreateVisitor(ctx, visitor); err != nil {
			return nil, err
		}
	}

	session := &model.VisitorSession{
		VisitorId: visitor.Id,
		ChatbotId: chatbotId,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.visitorRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return &dto.StartSessionResponse{
		SessionId:          session.Id,
		VisitorAnonymousId: visitor.AnonymousId,
		ExpiresAt:          session.ExpiresAt,
	}, nil
}

func (s *visitorService) ActiveSession(ctx context.Context, sessionId uuid.UUID) (*model.VisitorSession, error) {
	session, err := s.visitorRepo.FindSession(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotFound
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, ErrSessionExpired
	}
	return session, nil
}

func (s *visitorService) CleanupExpired(ctx context.Context) (int64, error) {
	removed, err := s.visitorRepo.DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("visitor_service", "expired sessions removed", map[string]interface{}{
			"count": removed,
		})
	}
	return removed, nil
}
