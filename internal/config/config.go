package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	MaxFileSize        int // upload limit in bytes
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	// Embedding
	OllamaBaseURL      string
	EmbeddingModel     string
	EmbeddingDimension int
	EmbedTimeout       time.Duration

	// Chunking
	ChunkSize    int
	ChunkOverlap int

	// Retrieval
	RetrievalLimit      int
	SimilarityThreshold float64

	// Prompt assembly
	MaxContextLength int
	HistoryWindow    int

	// Generation
	LLMModel        string
	Temperature     float64
	NumCtx          int
	NumPredict      int
	TopK            int
	TopP            float64
	RepeatPenalty   float64
	GenerateTimeout time.Duration
	MaxAttempts     int
	RetryDelay      time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			MaxFileSize:        getEnvAsInt("MAX_FILE_SIZE", 10*1024*1024),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingModel:     getEnv("EMBEDDING_MODEL", "bge-m3"),
			EmbeddingDimension: getEnvAsInt("EMBEDDING_DIMENSION", 1024),
			EmbedTimeout:       getEnvAsDuration("EMBED_TIMEOUT", 60*time.Second),

			ChunkSize:    getEnvAsInt("CHUNK_SIZE", 700),
			ChunkOverlap: getEnvAsInt("CHUNK_OVERLAP", 100),

			RetrievalLimit:      getEnvAsInt("RETRIEVAL_LIMIT", 5),
			SimilarityThreshold: getEnvAsFloat("SIMILARITY_THRESHOLD", 0.5),

			MaxContextLength: getEnvAsInt("MAX_CONTEXT_LENGTH", 1500),
			HistoryWindow:    getEnvAsInt("HISTORY_WINDOW", 3),

			LLMModel:        getEnv("LLM_MODEL", "llama3.2:latest"),
			Temperature:     getEnvAsFloat("LLM_TEMPERATURE", 0.1),
			NumCtx:          getEnvAsInt("LLM_NUM_CTX", 2048),
			NumPredict:      getEnvAsInt("LLM_NUM_PREDICT", 512),
			TopK:            getEnvAsInt("LLM_TOP_K", 10),
			TopP:            getEnvAsFloat("LLM_TOP_P", 0.9),
			RepeatPenalty:   getEnvAsFloat("LLM_REPEAT_PENALTY", 1.1),
			GenerateTimeout: getEnvAsDuration("GENERATE_TIMEOUT", 120*time.Second),
			MaxAttempts:     getEnvAsInt("LLM_MAX_ATTEMPTS", 2),
			RetryDelay:      getEnvAsDuration("LLM_RETRY_DELAY", time.Second),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
