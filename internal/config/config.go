package config

import (
	"log/slog"
	"os"
	"strings"
)

// Provider names accepted by AI_PROVIDER and the --provider flag.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	RedisURL string
	DataDir  string

	// Provider selects the generation backend. The --provider flag
	// takes precedence over the AI_PROVIDER env var.
	Provider        string
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string

	// TrackingProfile selects the continuity depth: "rich" or "compact".
	TrackingProfile string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		RedisURL: getEnv("REDIS_URL", "localhost:6379"),
		DataDir:  getEnv("DATA_DIR", "./data"),

		Provider:        ParseProvider(getEnv("AI_PROVIDER", ProviderOpenAI)),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-opus-4-20250514"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-2024-11-20"),

		TrackingProfile: getEnv("TRACKING_PROFILE", "rich"),
	}
}

// ParseProvider normalizes a provider name. "claude" is accepted as an
// alias for anthropic; anything unrecognized falls back to openai.
func ParseProvider(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ProviderAnthropic, "claude":
		return ProviderAnthropic
	default:
		return ProviderOpenAI
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
