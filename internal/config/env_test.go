package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 90, cfg.MinPitchLength)
	assert.Equal(t, 50000, cfg.MaxPitchLength)
	assert.Equal(t, int64(10485760), cfg.MaxFileSize)
	assert.Equal(t, "application/pdf", cfg.AllowedFileTypes)
	assert.Equal(t, 10, cfg.RateLimitPerMinute)
	assert.Equal(t, float64(60), cfg.OpenAI.Timeout)
	assert.Equal(t, 4000, cfg.OpenAI.MaxTokens)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MIN_PITCH_LENGTH", "120")
	t.Setenv("ALLOWED_FILE_TYPES", "application/pdf,text/plain")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_TIMEOUT", "30")

	envCfg, err := LoadFromEnv()
	require.NoError(t, err)

	cfg := envCfg.ToAppConfig()
	assert.Equal(t, 9090, cfg.Port())
	assert.Equal(t, 120, cfg.MinPitchLength())
	assert.Equal(t, []string{"application/pdf", "text/plain"}, cfg.AllowedFileTypes())
	assert.True(t, cfg.OpenAI().IsConfigured())
	assert.Equal(t, 30*time.Second, cfg.OpenAI().Timeout())
}

func TestToAppConfigEndpoint(t *testing.T) {
	envCfg := EnvConfig{
		OpenAI: EndpointEnv{
			BaseURL:       "https://llm.internal/v1",
			Model:         "gpt-4.1-mini",
			APIKey:        "sk-abc",
			Timeout:       15,
			MaxTokens:     2000,
			MaxRetries:    2,
			InitialDelay:  1,
			BackoffFactor: 1.5,
		},
	}

	ep := envCfg.ToAppConfig().OpenAI()
	assert.Equal(t, "https://llm.internal/v1", ep.BaseURL())
	assert.Equal(t, "gpt-4.1-mini", ep.Model())
	assert.Equal(t, 15*time.Second, ep.Timeout())
	assert.Equal(t, 2000, ep.MaxTokens())
	assert.Equal(t, 2, ep.MaxRetries())
	assert.Equal(t, time.Second, ep.InitialDelay())
	assert.Equal(t, 1.5, ep.BackoffFactor())
}

func TestParseLogFormat(t *testing.T) {
	assert.Equal(t, LogFormatJSON, parseLogFormat("json"))
	assert.Equal(t, LogFormatJSON, parseLogFormat("JSON"))
	assert.Equal(t, LogFormatPretty, parseLogFormat("pretty"))
	assert.Equal(t, LogFormatPretty, parseLogFormat(""))
}
