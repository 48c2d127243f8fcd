package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port             string
	DatabaseURL      string
	RedisURL         string
	LLMProvider      string
	OllamaURL        string
	OllamaModel      string
	GeminiAPIKey     string
	GeminiModel      string
	JWTSecret        string
	AdminEmails      []string
	AutoplayInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "4000"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		LLMProvider:      getEnv("LLM_PROVIDER", "ollama"),
		OllamaURL:        getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:      getEnv("OLLAMA_MODEL", "llama3.1"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		JWTSecret:        getEnv("JWT_SECRET", "your-256-bit-secret-change-in-production"),
		AdminEmails:      splitList(getEnv("ADMIN_EMAILS", "")),
		AutoplayInterval: getDuration("AUTOPLAY_INTERVAL", 5*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
