package bootstrap

import (
	"log"
	"time"

	"tribe-chatbot-be/internal/config"
	"tribe-chatbot-be/internal/constant"
	"tribe-chatbot-be/internal/controller"
	"tribe-chatbot-be/internal/pkg/logger"
	"tribe-chatbot-be/internal/repository/implementation"
	"tribe-chatbot-be/internal/service"
	"tribe-chatbot-be/pkg/chunker"
	"tribe-chatbot-be/pkg/crawler"
	"tribe-chatbot-be/pkg/embedding"
	"tribe-chatbot-be/pkg/llm/factory"
	"tribe-chatbot-be/pkg/vectorstore/qdrant"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	CompanyController controller.ICompanyController
	ChatbotController controller.IChatbotController
	ChatController    controller.IChatController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService
	VisitorService  service.IVisitorService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Repositories
	companyRepo := implementation.NewCompanyRepository(db)
	chatbotRepo := implementation.NewChatbotRepository(db)
	visitorRepo := implementation.NewVisitorRepository(db)
	chatLogRepo := implementation.NewChatLogRepository(db)

	// Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// Embedding provider
	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "openai":
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.EmbeddingModel, cfg.Ai.EmbeddingDim)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	default:
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel, cfg.Ai.EmbeddingDim)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	}

	// LLM provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Vector store
	store := qdrant.NewStore(qdrant.Config{
		URL:    cfg.Qdrant.URL,
		APIKey: cfg.Qdrant.APIKey,
	})

	// Ingestion pipeline pieces
	ck, err := chunker.New(cfg.Rag.ChunkSize, cfg.Rag.ChunkOverlap)
	if err != nil {
		log.Fatalf("[FATAL] Invalid chunking config: %v", err)
	}
	cw := crawler.New(cfg.Rag.CrawlDepth, cfg.Rag.CrawlMaxPages, sysLogger)

	// Services
	publisherService := service.NewPublisherService(constant.ChatbotTrainedTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, constant.ChatbotTrainedTopic, chatbotRepo, sysLogger)

	authService := service.NewAuthService(companyRepo, cfg.Auth.JwtSecret)
	companyService := service.NewCompanyService(companyRepo)
	chatbotService := service.NewChatbotService(chatbotRepo)
	visitorService := service.NewVisitorService(
		visitorRepo,
		chatbotRepo,
		time.Duration(cfg.Auth.SessionTTLSeconds)*time.Second,
		sysLogger,
	)
	trainingService := service.NewTrainingService(
		chatbotRepo,
		ck,
		embeddingProvider,
		store,
		cw,
		publisherService,
		cfg.Rag.EmbedBatchSize,
		sysLogger,
	)
	chatService := service.NewChatService(
		chatbotService,
		visitorService,
		chatLogRepo,
		embeddingProvider,
		store,
		llmProvider,
		cfg.Rag.TopK,
		sysLogger,
	)

	return &Container{
		AuthController:    controller.NewAuthController(authService),
		CompanyController: controller.NewCompanyController(companyService),
		ChatbotController: controller.NewChatbotController(chatbotService, trainingService, chatService),
		ChatController:    controller.NewChatController(chatService, visitorService),
		ConsumerService:   consumerService,
		VisitorService:    visitorService,
		Logger:            sysLogger,
	}
}
