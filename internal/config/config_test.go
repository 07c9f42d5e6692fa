package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("API_URL", "")
	t.Setenv("AGENT_TIMEOUT_SECONDS", "")
	t.Setenv("ALLOWED_ORIGIN", "")
	t.Setenv("SUGGESTIONS_FILE", "")

	cfg := Load(zap.NewNop())
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.AgentURL)
	assert.Equal(t, 45*time.Second, cfg.AgentTimeout)
	assert.Equal(t, "*", cfg.AllowedOrigin)
	assert.Equal(t, "prompts/suggestions.yaml", cfg.SuggestionsFile)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_URL", "https://example.com/agent")
	t.Setenv("AGENT_TIMEOUT_SECONDS", "60")
	t.Setenv("ALLOWED_ORIGIN", "https://chat.example.com")
	t.Setenv("SUGGESTIONS_FILE", "custom.yaml")

	cfg := Load(zap.NewNop())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://example.com/agent", cfg.AgentURL)
	assert.Equal(t, 60*time.Second, cfg.AgentTimeout)
	assert.Equal(t, "https://chat.example.com", cfg.AllowedOrigin)
	assert.Equal(t, "custom.yaml", cfg.SuggestionsFile)
}

func TestLoadBadTimeoutFallsBack(t *testing.T) {
	t.Setenv("AGENT_TIMEOUT_SECONDS", "soon")
	assert.Equal(t, 45*time.Second, Load(zap.NewNop()).AgentTimeout)

	t.Setenv("AGENT_TIMEOUT_SECONDS", "-3")
	assert.Equal(t, 45*time.Second, Load(zap.NewNop()).AgentTimeout)
}
