package service

import (
	"context"
	"fmt"

	"tribe-chatbot-be/internal/constant"
	"tribe-chatbot-be/internal/dto"
	"tribe-chatbot-be/internal/pkg/logger"
	"tribe-chatbot-be/internal/repository/contract"
	"tribe-chatbot-be/internal/repository/specification"
	"tribe-chatbot-be/pkg/chunker"
	"tribe-chatbot-be/pkg/crawler"
	"tribe-chatbot-be/pkg/embedding"
	"tribe-chatbot-be/pkg/extract"
	"tribe-chatbot-be/pkg/vectorstore"

	"github.com/google/uuid"
)

type ITrainingService interface {
	TrainFromFiles(ctx context.Context, companyId, chatbotId uuid.UUID, docs []extract.Document) (*dto.TrainResult, error)
	TrainFromURL(ctx context.Context, companyId, chatbotId uuid.UUID, seedURL string) (*dto.TrainResult, error)
}

// trainingService runs the ingestion pipeline: extract, chunk, embed, upsert.
// One source failing is logged and skipped; the run only fails on backend
// errors that affect every source (embedding or vector store outages).
type trainingService struct {
	chatbotRepo      contract.ChatbotRepository
	chunker          *chunker.Chunker
	embedder         embedding.EmbeddingProvider
	store            vectorstore.VectorStore
	crawler          *crawler.Crawler
	publisherService IPublisherService
	embedBatchSize   int
	logger           logger.ILogger
}

func NewTrainingService(
	chatbotRepo contract.ChatbotRepository,
	ck *chunker.Chunker,
	embedder embedding.EmbeddingProvider,
	store vectorstore.VectorStore,
	cw *crawler.Crawler,
	publisherService IPublisherService,
	embedBatchSize int,
	log logger.ILogger,
) ITrainingService {
	if embedBatchSize <= 0 {
		embedBatchSize = 16
	}
	return &trainingService{
		chatbotRepo:      chatbotRepo,
		chunker:          ck,
		embedder:         embedder,
		store:            store,
		crawler:          cw,
		publisherService: publisherService,
		embedBatchSize:   embedBatchSize,
		logger:           log,
	}
}

// source is one unit of ingestion text after extraction, keyed by the file
// name or page URL that produced it.
type source struct {
	name string
	text string
}

func (s *trainingService) TrainFromFiles(ctx context.Context, companyId, chatbotId uuid.UUID, docs []extract.Document) (*dto.TrainResult, error) {
	tenantKey, err := s.verifyOwnership(ctx, companyId, chatbotId)
	if err != nil {
		return nil, err
	}

	s.logState(tenantKey, constant.TrainStateReceived, map[string]interface{}{"files": len(docs)})
	s.logState(tenantKey, constant.TrainStateExtracting, nil)

	sources := make([]source, 0, len(docs))
	skipped := make([]string, 0)
	for _, doc := range docs {
		text, err := extract.Text(doc)
		if err != nil {
			s.logger.Warn("training_service", "source skipped", map[string]interface{}{
				"tenant_key": tenantKey,
				"source":     doc.Name,
				"error":      err.Error(),
			})
			skipped = append(skipped, doc.Name)
			continue
		}
		sources = append(sources, source{name: doc.Name, text: text})
	}

	return s.index(ctx, chatbotId, tenantKey, sources, skipped)
}

func (s *trainingService) TrainFromURL(ctx context.Context, companyId, chatbotId uuid.UUID, seedURL string) (*dto.TrainResult, error) {
	tenantKey, err := s.verifyOwnership(ctx, companyId, chatbotId)
	if err != nil {
		return nil, err
	}

	s.logState(tenantKey, constant.TrainStateReceived, map[string]interface{}{"url": seedURL})
	s.logState(tenantKey, constant.TrainStateExtracting, nil)

	pages, err := s.crawler.Crawl(ctx, seedURL)
	if err != nil {
		s.logState(tenantKey, constant.TrainStateError, map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("crawl failed: %w", err)
	}

	sources := make([]source, 0, len(pages))
	for _, page := range pages {
		sources = append(sources, source{name: page.URL, text: page.Text})
	}

	return s.index(ctx, chatbotId, tenantKey, sources, nil)
}

func (s *trainingService) index(ctx context.Context, chatbotId uuid.UUID, tenantKey string, sources []source, skipped []string) (*dto.TrainResult, error) {
	s.logState(tenantKey, constant.TrainStateChunking, nil)

	var points []vectorstore.Point
	var texts []string
	for _, src := range sources {
		chunks := s.chunker.Chunk(src.text)
		if len(chunks) == 0 {
			skipped = append(skipped, src.name)
			continue
		}
		for i, chunk := range chunks {
			points = append(points, vectorstore.Point{
				ID: vectorstore.PointID(tenantKey, src.name, i),
				Payload: map[string]interface{}{
					"text":        chunk,
					"source":      src.name,
					"tenant_key":  tenantKey,
					"chunk_index": i,
				},
			})
			texts = append(texts, chunk)
		}
	}

	if len(points) == 0 {
		s.logState(tenantKey, constant.TrainStateDone, map[string]interface{}{"chunks_indexed": 0})
		return &dto.TrainResult{
			ChunksIndexed:  0,
			SkippedSources: skipped,
			Message:        constant.TrainNoContentMessage,
		}, nil
	}

	s.logState(tenantKey, constant.TrainStateEmbedding, map[string]interface{}{"chunks": len(texts)})
	for start := 0; start < len(texts); start += s.embedBatchSize {
		end := start + s.embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		vectors, err := s.embedder.Embed(ctx, texts[start:end])
		if err != nil {
			s.logState(tenantKey, constant.TrainStateError, map[string]interface{}{"error": err.Error()})
			return nil, fmt.Errorf("embedding batch failed: %w", err)
		}
		for i, vec := range vectors {
			points[start+i].Vector = vec
		}
	}

	s.logState(tenantKey, constant.TrainStateUpserting, map[string]interface{}{"points": len(points)})
	if err := s.store.EnsureCollection(ctx, tenantKey, s.embedder.Dimension()); err != nil {
		s.logState(tenantKey, constant.TrainStateError, map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	if err := s.store.Upsert(ctx, tenantKey, points); err != nil {
		s.logState(tenantKey, constant.TrainStateError, map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("vector upsert failed: %w", err)
	}

	s.logState(tenantKey, constant.TrainStateDone, map[string]interface{}{"chunks_indexed": len(points)})

	event := dto.TrainedEvent{
		ChatbotId:     chatbotId.String(),
		TenantKey:     tenantKey,
		ChunksIndexed: len(points),
	}
	if err := s.publisherService.Publish(ctx, event); err != nil {
		// The index is already written; a lost event only delays the trained
		// flag, so log and keep the successful result.
		s.logger.Error("training_service", "failed to publish trained event", map[string]interface{}{
			"tenant_key": tenantKey,
			"error":      err.Error(),
		})
	}

	return &dto.TrainResult{
		ChunksIndexed:  len(points),
		SkippedSources: skipped,
		Message:        fmt.Sprintf("Training complete, %d chunks indexed.", len(points)),
	}, nil
}

func (s *trainingService) verifyOwnership(ctx context.Context, companyId, chatbotId uuid.UUID) (string, error) {
	chatbot, err := s.chatbotRepo.FindOne(ctx, specification.ByID{ID: chatbotId})
	if err != nil {
		return "", err
	}
	if chatbot == nil {
		return "", ErrNotFound
	}
	if chatbot.CompanyId != companyId {
		return "", ErrForbidden
	}
	return TenantKeyFor(chatbot.CompanyId, chatbot.Id), nil
}

func (s *trainingService) logState(tenantKey, state string, details map[string]interface{}) {
	if details == nil {
		details = map[string]interface{}{}
	}
	details["tenant_key"] = tenantKey
	details["state"] = state
	s.logger.Info("training_service", "training state", details)
}
