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
	Session  SessionConfig
	Llm      LLMConfig
	Context  ContextConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SessionConfig struct {
	Store    string // "redis" or "memory"
	TTLHours int
}

type LLMConfig struct {
	Provider          string // "anthropic", "openai", "gemini" or an alias
	Model             string
	AnthropicAPIKey   string
	OpenAIAPIKey      string
	GeminiAPIKey      string
	MaxAttempts       int
	BaseDelaySeconds  int
	BackoffMultiplier float64
	MaxDelaySeconds   int
}

type ContextConfig struct {
	CharBudget  int
	MaxUploadMB int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Session: SessionConfig{
			Store:    getEnv("REFERENCE_STORE", "redis"),
			TTLHours: getEnvAsInt("SESSION_TTL_HOURS", 24),
		},
		Llm: LLMConfig{
			Provider:          getEnv("LLM_PROVIDER", "anthropic"),
			Model:             getEnv("LLM_MODEL", ""),
			AnthropicAPIKey:   getEnv("ANTHROPIC_API_KEY", ""),
			OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
			GeminiAPIKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			MaxAttempts:       getEnvAsInt("LLM_MAX_ATTEMPTS", 3),
			BaseDelaySeconds:  getEnvAsInt("LLM_BASE_DELAY_SECONDS", 4),
			BackoffMultiplier: getEnvAsFloat("LLM_BACKOFF_MULTIPLIER", 2.0),
			MaxDelaySeconds:   getEnvAsInt("LLM_MAX_DELAY_SECONDS", 60),
		},
		Context: ContextConfig{
			CharBudget:  getEnvAsInt("CONTEXT_CHAR_BUDGET", 60000),
			MaxUploadMB: getEnvAsInt("MAX_UPLOAD_MB", 10),
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
