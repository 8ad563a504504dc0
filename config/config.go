// Package config provides configuration for the concierge backend.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the concierge configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Relay settings
	RelayMode     string // completion, assistant, gemini
	OpenAIAPIKey  string
	OpenAIBaseURL string
	AssistantID   string
	GeminiAPIKey  string
	Model         string
	AllowedModels []string
	LLMTimeout    time.Duration

	// Assistant-mode polling
	PollInterval time.Duration
	PollAttempts int

	// Session registry
	SessionCap int

	// Knowledge
	KnowledgePath string

	// HTTP surface
	AllowedOrigins []string // empty means wildcard
	AdminToken     string

	// Transcript store
	DatabaseURL string

	// Presentation
	SupportContact string
	PublicBaseURL  string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		HTTPPort:       getEnvInt("PORT", 3000),
		RelayMode:      getEnv("RELAY_MODE", "completion"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		AssistantID:    getEnv("OPENAI_ASSISTANT_ID", ""),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		Model:          getEnv("MODEL", "gpt-4o-mini"),
		AllowedModels:  getEnvList("ALLOWED_MODELS", "gpt-4o-mini,gpt-4o,gpt-3.5-turbo,gemini-2.0-flash"),
		LLMTimeout:     time.Duration(getEnvInt("LLM_TIMEOUT_MS", 60000)) * time.Millisecond,
		PollInterval:   time.Duration(getEnvInt("RUN_POLL_INTERVAL_MS", 1000)) * time.Millisecond,
		PollAttempts:   getEnvInt("RUN_POLL_ATTEMPTS", 30),
		SessionCap:     getEnvInt("SESSION_CAP", 1000),
		KnowledgePath:  getEnv("KNOWLEDGE_FILE", "knowledge.txt"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", ""),
		AdminToken:     getEnv("ADMIN_TOKEN", ""),
		DatabaseURL:    getEnv("DATABASE_URL", "file:concierge.db?cache=shared&mode=rwc"),
		SupportContact: getEnv("SUPPORT_CONTACT", "info@travdif.com"),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvList(key, defaultVal string) []string {
	val := os.Getenv(key)
	if val == "" {
		val = defaultVal
	}
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
