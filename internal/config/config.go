package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// defaultAgentTimeout matches the gateway's own integration timeout budget.
const defaultAgentTimeout = 45 * time.Second

type Config struct {
	Port            string
	AgentURL        string
	AgentTimeout    time.Duration
	AllowedOrigin   string
	SuggestionsFile string
}

func Load(logger *zap.Logger) Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:            getEnvDefault("PORT", "8080"),
		AgentURL:        os.Getenv("API_URL"),
		AgentTimeout:    getEnvSecondsDefault("AGENT_TIMEOUT_SECONDS", defaultAgentTimeout),
		AllowedOrigin:   getEnvDefault("ALLOWED_ORIGIN", "*"),
		SuggestionsFile: getEnvDefault("SUGGESTIONS_FILE", "prompts/suggestions.yaml"),
	}
	if cfg.AgentURL == "" {
		logger.Warn("API_URL is not set; agent calls will fail until provided")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvSecondsDefault(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return def
}
