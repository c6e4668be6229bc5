package service

import (
	"context"
	"fmt"

	"tribe-chatbot-be/internal/constant"
	"tribe-chatbot-be/internal/dto"
	"tribe-chatbot-be/internal/model"
	"tribe-chatbot-be/internal/pkg/logger"
	"tribe-chatbot-be/internal/repository/contract"
	"tribe-chatbot-be/internal/repository/specification"
	"tribe-chatbot-be/pkg/embedding"
	"tribe-chatbot-be/pkg/llm"
	"tribe-chatbot-be/pkg/rag/prompt"
	"tribe-chatbot-be/pkg/vectorstore"

	"github.com/google/uuid"
)

type IChatService interface {
	// Query answers one question against a chatbot's knowledge base without
	// touching session state. Returns ErrTenantNotTrained when the chatbot
	// has no vector collection yet.
	Query(ctx context.Context, chatbotId uuid.UUID, question string, history []llm.Message) (*dto.QueryResult, error)

	// SendMessage is the widget entry point: it resolves or starts a visitor
	// session, loads recent turns as context, answers, and persists both sides.
	SendMessage(ctx context.Context, chatbotId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)

	History(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatHistoryResponse, error)
}

type chatService struct {
	chatbotService IChatbotService
	visitorService IVisitorService
	chatLogRepo    contract.ChatLogRepository
	embedder       embedding.EmbeddingProvider
	store          vectorstore.VectorStore
	llmProvider    llm.LLMProvider
	topK           int
	logger         logger.ILogger
}

func NewChatService(
	chatbotService IChatbotService,
	visitorService IVisitorService,
	chatLogRepo contract.ChatLogRepository,
	embedder embedding.EmbeddingProvider,
	store vectorstore.VectorStore,
	llmProvider llm.LLMProvider,
	topK int,
	log logger.ILogger,
) IChatService {
	if topK <= 0 {
		topK = 3
	}
	return &chatService{
		chatbotService: chatbotService,
		visitorService: visitorService,
		chatLogRepo:    chatLogRepo,
		embedder:       embedder,
		store:          store,
		llmProvider:    llmProvider,
		topK:           topK,
		logger:         log,
	}
}

func (s *chatService) Query(ctx context.Context, chatbotId uuid.UUID, question string, history []llm.Message) (*dto.QueryResult, error) {
	tenantKey, err := s.chatbotService.TenantKey(ctx, chatbotId)
	if err != nil {
		return nil, err
	}

	exists, err := s.store.CollectionExists(ctx, tenantKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTenantNotTrained
	}

	vectors, err := s.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("question embedding failed: %w", err)
	}

	hits, err := s.store.Search(ctx, tenantKey, vectors[0], s.topK, map[string]interface{}{
		"tenant_key": tenantKey,
	})
	if err != nil {
		return nil, err
	}

	chunks := make([]prompt.ContextChunk, 0, len(hits))
	sources := make([]string, 0, len(hits))
	seen := make(map[string]bool)
	for _, hit := range hits {
		text, _ := hit.Payload["text"].(string)
		src, _ := hit.Payload["source"].(string)
		chunks = append(chunks, prompt.ContextChunk{Text: text, Source: src})
		if src != "" && !seen[src] {
			seen[src] = true
			sources = append(sources, src)
		}
	}

	messages := prompt.NewBuilder(chunks, history, question).Build()
	answer, err := s.llmProvider.Chat(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	return &dto.QueryResult{Answer: answer, Sources: sources}, nil
}

func (s *chatService) SendMessage(ctx context.Context, chatbotId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	session, err := s.resolveSession(ctx, chatbotId, req)
	if err != nil {
		return nil, err
	}

	history, err := s.recentHistory(ctx, session.Id)
	if err != nil {
		return nil, err
	}

	result, err := s.Query(ctx, chatbotId, req.Message, history)
	if err != nil {
		return nil, err
	}

	userLog := &model.ChatLog{
		VisitorSessionId: session.Id,
		ChatbotId:        chatbotId,
		Role:             constant.ChatRoleUser,
		Message:          req.Message,
	}
	botLog := &model.ChatLog{
		VisitorSessionId: session.Id,
		ChatbotId:        chatbotId,
		Role:             constant.ChatRoleBot,
		Message:          result.Answer,
	}
	if err := s.chatLogRepo.Create(ctx, userLog); err != nil {
		return nil, err
	}
	if err := s.chatLogRepo.Create(ctx, botLog); err != nil {
		return nil, err
	}

	return &dto.SendChatResponse{
		Reply:     result.Answer,
		SessionId: session.Id,
		Sources:   result.Sources,
	}, nil
}

func (s *chatService) History(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatHistoryResponse, error) {
	logs, err := s.chatLogRepo.FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatHistoryResponse, 0, len(logs))
	for _, entry := range logs {
		result = append(result, &dto.ChatHistoryResponse{
			Role:      entry.Role,
			Message:   entry.Message,
			CreatedAt: entry.CreatedAt,
		})
	}
	return result, nil
}

func (s *chatService) resolveSession(ctx context.Context, chatbotId uuid.UUID, req *dto.SendChatRequest) (*model.VisitorSession, error) {
	if req.SessionId != nil {
		session, err := s.visitorService.ActiveSession(ctx, *req.SessionId)
		if err != nil {
			return nil, err
		}
		if session.ChatbotId != chatbotId {
			return nil, ErrForbidden
		}
		return session, nil
	}

	started, err := s.visitorService.StartSession(ctx, chatbotId, req.VisitorAnonymousId)
	if err != nil {
		return nil, err
	}
	return s.visitorService.ActiveSession(ctx, started.SessionId)
}

// recentHistory loads the last few turns oldest-first for prompt context.
func (s *chatService) recentHistory(ctx context.Context, sessionId uuid.UUID) ([]llm.Message, error) {
	logs, err := s.chatLogRepo.FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: constant.ChatHistoryWindow},
	)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		role := "user"
		if logs[i].Role == constant.ChatRoleBot {
			role = "assistant"
		}
		history = append(history, llm.Message{Role: role, Content: logs[i].Message})
	}
	return history, nil
}
