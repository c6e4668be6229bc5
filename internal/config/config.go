package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Qdrant   QdrantConfig
	Ai       AIConfig
	Rag      RagConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type QdrantConfig struct {
	URL    string
	APIKey string
}

type AIConfig struct {
	EmbeddingProvider string // "ollama" or "openai"
	EmbeddingModel    string
	EmbeddingDim      int
	OllamaBaseURL     string
	LLMProvider       string // "ollama" or "openai"
	LLMModel          string
	OpenAIAPIKey      string
}

type RagConfig struct {
	ChunkSize      int // word-window size; the one chunking policy for the deployment
	ChunkOverlap   int
	EmbedBatchSize int
	TopK           int
	CrawlDepth     int
	CrawlMaxPages  int
}

type AuthConfig struct {
	JwtSecret         string
	SessionTTLSeconds int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Qdrant: QdrantConfig{
			URL:    getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey: getEnv("QDRANT_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			EmbeddingDim:      getEnvAsInt("EMBEDDING_DIM", 768),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3.2"),
			OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		},
		Rag: RagConfig{
			ChunkSize:      getEnvAsInt("CHUNK_SIZE", 400),
			ChunkOverlap:   getEnvAsInt("CHUNK_OVERLAP", 50),
			EmbedBatchSize: getEnvAsInt("EMBED_BATCH_SIZE", 16),
			TopK:           getEnvAsInt("RAG_TOP_K", 3),
			CrawlDepth:     getEnvAsInt("CRAWL_DEPTH", 1),
			CrawlMaxPages:  getEnvAsInt("CRAWL_MAX_PAGES", 5),
		},
		Auth: AuthConfig{
			JwtSecret:         getEnv("JWT_SECRET", ""),
			SessionTTLSeconds: getEnvAsInt("SESSION_TTL_SECONDS", 3600),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
