package config

import (
	"os"
	"time"
)

type Config struct {
	ServerAddress string
	MongoURI      string
	MongoDB       string
	JWTSecret     string
	JWTExpiration time.Duration

	// Journal prompt generation (Gemini).
	GeminiAPIKey string
	GeminiModel  string

	// Chat completion relay (OpenAI-compatible endpoint).
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// Optional profile snapshot cache. Empty disables caching.
	RedisAddr string

	CrisisHotline string
}

func Load() *Config {
	return &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "withu"),
		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiration: 24 * time.Hour,
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		CrisisHotline: getEnv("CRISIS_HOTLINE", "988"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
