package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/revu/internal/logger"
)

// Config holds the application's configuration values.
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	Logging  logger.Config
	Database DBConfig
	Client   ClientConfig
	GitHub   GitHubConfig
}

// ServerConfig controls the review proxy HTTP server.
type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
	// MaxCodeBytes rejects larger snippets with 413. Zero disables the check.
	MaxCodeBytes int64
	// RateLimitRPS caps accepted reviews per second. Zero disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

// AIConfig selects and configures the vendor model.
type AIConfig struct {
	LLMProvider     string
	GeneratorModel  string
	GeminiAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	OllamaHost      string
	RedactSecrets   bool
}

// DBConfig configures the optional review archive. An empty URL disables it.
type DBConfig struct {
	URL             string
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Enabled reports whether reviews should be archived.
func (c DBConfig) Enabled() bool {
	return c.URL != ""
}

// ClientConfig is used by the terminal editor and the CLI.
type ClientConfig struct {
	ServerURL string
	Timeout   time.Duration
	Theme     string
}

// GitHubConfig holds the token used to fetch files for review.
type GitHubConfig struct {
	Token string
}

const (
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

var defaultModels = map[string]string{
	ProviderGemini:    "gemini-2.0-flash",
	ProviderOllama:    "gemma3:latest",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-3-5-haiku-latest",
}

// LoadConfig reads configuration from environment variables and an optional
// .env file and applies defaults. Provider credentials are checked by
// Validate, so clients that never talk to a vendor can load it too.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", "60s")
	v.SetDefault("MAX_CODE_BYTES", 0)
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.SetDefault("LLM_PROVIDER", ProviderGemini)
	v.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	v.SetDefault("REDACT_SECRETS", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", "5m")
	v.SetDefault("REVU_SERVER_URL", "http://localhost:8080")
	v.SetDefault("REVU_CLIENT_TIMEOUT", "90s")
	v.SetDefault("REVU_THEME", "cyan")

	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		if err := v.ReadInConfig(); err != nil {
			slog.Error("failed to read config file", "error", err)
		}
	}

	provider := strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER")))
	model := v.GetString("GENERATOR_MODEL_NAME")
	if model == "" {
		model = defaultModels[provider]
	}

	geminiKey := v.GetString("GEMINI_API_KEY")
	if geminiKey == "" {
		geminiKey = v.GetString("GOOGLE_GEMINI_KEY")
	}

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
			MaxCodeBytes:   v.GetInt64("MAX_CODE_BYTES"),
			RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		},
		AI: AIConfig{
			LLMProvider:     provider,
			GeneratorModel:  model,
			GeminiAPIKey:    geminiKey,
			OpenAIAPIKey:    v.GetString("OPENAI_API_KEY"),
			AnthropicAPIKey: v.GetString("ANTHROPIC_API_KEY"),
			OllamaHost:      v.GetString("OLLAMA_HOST"),
			RedactSecrets:   v.GetBool("REDACT_SECRETS"),
		},
		Logging: logger.Config{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
		},
		Database: DBConfig{
			URL:             v.GetString("DATABASE_URL"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
		Client: ClientConfig{
			ServerURL: strings.TrimRight(v.GetString("REVU_SERVER_URL"), "/"),
			Timeout:   v.GetDuration("REVU_CLIENT_TIMEOUT"),
			Theme:     v.GetString("REVU_THEME"),
		},
		GitHub: GitHubConfig{
			Token: v.GetString("GITHUB_TOKEN"),
		},
	}, nil
}

// Validate checks the settings the review proxy needs to reach its vendor.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("SERVER_PORT must be set")
	}
	if c.Server.MaxCodeBytes < 0 {
		return fmt.Errorf("MAX_CODE_BYTES must not be negative, got %d", c.Server.MaxCodeBytes)
	}
	if c.Server.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %v", c.Server.RateLimitRPS)
	}
	if c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst < 1 {
		return errors.New("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled")
	}

	switch c.AI.LLMProvider {
	case ProviderGemini:
		if c.AI.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY (or GOOGLE_GEMINI_KEY) must be set for the gemini provider")
		}
	case ProviderOpenAI:
		if c.AI.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY must be set for the openai provider")
		}
	case ProviderAnthropic:
		if c.AI.AnthropicAPIKey == "" {
			return errors.New("ANTHROPIC_API_KEY must be set for the anthropic provider")
		}
	case ProviderOllama:
		if c.AI.OllamaHost == "" {
			return errors.New("OLLAMA_HOST must be set for the ollama provider")
		}
	default:
		return fmt.Errorf("unsupported LLM provider: %q", c.AI.LLMProvider)
	}

	if c.AI.GeneratorModel == "" {
		return errors.New("GENERATOR_MODEL_NAME must be set")
	}
	return nil
}
