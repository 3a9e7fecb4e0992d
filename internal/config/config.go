package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	SMTP       SMTPConfig
	Keys       APIKeys
	Ai         AIConfig
	Disclosure DisclosureConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	GoogleGemini   string
	EmbedFileTopic string
}

type AIConfig struct {
	EmbeddingProvider    string // "gemini" or "ollama"
	OllamaBaseURL        string
	OllamaEmbeddingModel string
	LLMProvider          string // "ollama" or "gemini"
	LLMModel             string // e.g. "llama3", "gemini-1.5-flash"
}

type DisclosureConfig struct {
	TemplatePath         string
	FallbackTemplatePath string
	DocumentsDir         string
	UploadsDir           string
	OfficeEmail          string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Invention Disclosure"),
		},
		Keys: APIKeys{
			GoogleGemini:   getEnv("GOOGLE_GEMINI_API_KEY", ""),
			EmbedFileTopic: getEnv("EMBED_FILE_TOPIC_NAME", "FILE_UPLOADED"),
		},
		Ai: AIConfig{
			EmbeddingProvider:    getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:          getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:             getEnv("LLM_MODEL", "llama3"),
		},
		Disclosure: DisclosureConfig{
			TemplatePath:         getEnv("DISCLOSURE_TEMPLATE_PATH", "templates/invention-disclosure-structure.tex"),
			FallbackTemplatePath: getEnv("DISCLOSURE_FALLBACK_TEMPLATE_PATH", "pkg/disclosure/templates/invention-disclosure-structure.tex"),
			DocumentsDir:         getEnv("GENERATED_DOCUMENTS_DIR", "generatedDocuments"),
			UploadsDir:           getEnv("UPLOADS_DIR", "uploads"),
			OfficeEmail:          getEnv("DISCLOSURE_OFFICE_EMAIL", ""),
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
