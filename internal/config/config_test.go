package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"LLM_PROVIDER", "GENERATOR_MODEL_NAME", "SERVER_PORT", "DATABASE_URL", "REVU_SERVER_URL", "REDACT_SECRETS"} {
		t.Setenv(key, "")
	}
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_GEMINI_KEY", "legacy-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, ProviderGemini, cfg.AI.LLMProvider)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.GeneratorModel)
	assert.Equal(t, "legacy-key", cfg.AI.GeminiAPIKey, "original env var name must still work")
	assert.False(t, cfg.AI.RedactSecrets)
	assert.False(t, cfg.Database.Enabled())
	assert.Equal(t, "http://localhost:8080", cfg.Client.ServerURL)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GENERATOR_MODEL_NAME", "")
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MAX_CODE_BYTES", "1024")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("DATABASE_URL", "postgres://localhost/revu")
	t.Setenv("REVU_SERVER_URL", "http://review.internal:9000/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.AI.LLMProvider)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.GeneratorModel)
	assert.Equal(t, int64(1024), cfg.Server.MaxCodeBytes)
	assert.InDelta(t, 2.5, cfg.Server.RateLimitRPS, 0.0001)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, "http://review.internal:9000", cfg.Client.ServerURL)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Port: "8080", RateLimitBurst: 5},
			AI: AIConfig{
				LLMProvider:    ProviderGemini,
				GeneratorModel: "gemini-2.0-flash",
				GeminiAPIKey:   "key",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "Valid config", mutate: func(_ *Config) {}},
		{name: "Missing gemini key", mutate: func(c *Config) { c.AI.GeminiAPIKey = "" }, wantErr: true},
		{name: "Unknown provider", mutate: func(c *Config) { c.AI.LLMProvider = "bard" }, wantErr: true},
		{name: "Anthropic without key", mutate: func(c *Config) { c.AI.LLMProvider = ProviderAnthropic }, wantErr: true},
		{name: "Ollama needs no key", mutate: func(c *Config) {
			c.AI.LLMProvider = ProviderOllama
			c.AI.OllamaHost = "http://localhost:11434"
		}},
		{name: "Negative size limit", mutate: func(c *Config) { c.Server.MaxCodeBytes = -1 }, wantErr: true},
		{name: "Rate limit without burst", mutate: func(c *Config) {
			c.Server.RateLimitRPS = 1
			c.Server.RateLimitBurst = 0
		}, wantErr: true},
		{name: "Empty model", mutate: func(c *Config) { c.AI.GeneratorModel = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadReviewConfig(t *testing.T) {
	t.Run("Missing file returns defaults", func(t *testing.T) {
		cfg, err := LoadReviewConfig(t.TempDir())
		require.ErrorIs(t, err, ErrConfigNotFound)
		require.NotNil(t, cfg)
		assert.Empty(t, cfg.CustomInstructions)
	})

	t.Run("Parses custom instructions", func(t *testing.T) {
		dir := t.TempDir()
		content := "custom_instructions:\n  - Prefer table-driven tests\n  - Flag unchecked errors\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ReviewConfigFile), []byte(content), 0o600))

		cfg, err := LoadReviewConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"Prefer table-driven tests", "Flag unchecked errors"}, cfg.CustomInstructions)
	})

	t.Run("Invalid YAML", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ReviewConfigFile), []byte("custom_instructions: [unterminated"), 0o600))

		_, err := LoadReviewConfig(dir)
		assert.ErrorIs(t, err, ErrConfigParsing)
	})
}

func TestReviewInstructions(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("Missing file yields none", func(t *testing.T) {
		assert.Empty(t, ReviewInstructions(t.TempDir(), logger))
	})

	t.Run("Broken file yields none", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ReviewConfigFile), []byte("custom_instructions: [unterminated"), 0o600))
		assert.Nil(t, ReviewInstructions(dir, logger))
	})

	t.Run("Returns configured instructions", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ReviewConfigFile), []byte("custom_instructions:\n  - Keep functions short\n"), 0o600))
		assert.Equal(t, []string{"Keep functions short"}, ReviewInstructions(dir, logger))
	})
}
