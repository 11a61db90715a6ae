package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sevigo/goframe/llms"
	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"
	lcllms "github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/sevigo/revu/internal/config"
)

// Generator sends one system instruction plus one user prompt to a vendor
// model and returns the raw completion text.
//
//go:generate mockgen -destination=../../mocks/mock_generator.go -package=mocks . Generator
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
	Provider() string
	Model() string
}

// NewGenerator creates the generator selected by cfg.LLMProvider.
func NewGenerator(ctx context.Context, cfg *config.AIConfig, logger *slog.Logger) (Generator, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set in environment for gemini provider")
		}
		model, err := gemini.New(ctx,
			gemini.WithModel(cfg.GeneratorModel),
			gemini.WithAPIKey(cfg.GeminiAPIKey),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini model: %w", err)
		}
		return newGoframeGenerator(model, cfg.LLMProvider, cfg.GeneratorModel, logger), nil

	case config.ProviderOllama:
		model, err := ollama.New(
			ollama.WithServerURL(cfg.OllamaHost),
			ollama.WithHTTPClient(newOllamaHTTPClient()),
			ollama.WithModel(cfg.GeneratorModel),
			ollama.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama model: %w", err)
		}
		return newGoframeGenerator(model, cfg.LLMProvider, cfg.GeneratorModel, logger), nil

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set in environment for openai provider")
		}
		model, err := openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.GeneratorModel),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai model: %w", err)
		}
		return &chatGenerator{model: model, provider: cfg.LLMProvider, modelName: cfg.GeneratorModel}, nil

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set in environment for anthropic provider")
		}
		model, err := anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.GeneratorModel),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create anthropic model: %w", err)
		}
		return &chatGenerator{model: model, provider: cfg.LLMProvider, modelName: cfg.GeneratorModel}, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}

// goframeGenerator adapts single-prompt goframe models. They have no
// separate system role, so the instruction leads the prompt.
type goframeGenerator struct {
	model     llms.Model
	provider  string
	modelName string
	logger    *slog.Logger
}

func newGoframeGenerator(model llms.Model, provider, modelName string, logger *slog.Logger) *goframeGenerator {
	return &goframeGenerator{model: model, provider: provider, modelName: modelName, logger: logger}
}

func (g *goframeGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	full := prompt
	if system != "" {
		full = system + "\n\n" + prompt
	}

	if g.logger.Enabled(ctx, slog.LevelDebug) {
		g.logger.Debug("calling model", "provider", g.provider, "model", g.modelName,
			"estimated_tokens", estimateTokens(full))
	}

	return g.model.Call(ctx, full)
}

func (g *goframeGenerator) Provider() string { return g.provider }
func (g *goframeGenerator) Model() string    { return g.modelName }

// chatGenerator adapts langchaingo chat models, which take the persona as a
// proper system message.
type chatGenerator struct {
	model     lcllms.Model
	provider  string
	modelName string
}

func (g *chatGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	messages := make([]lcllms.MessageContent, 0, 2)
	if system != "" {
		messages = append(messages, lcllms.TextParts(lcllms.ChatMessageTypeSystem, system))
	}
	messages = append(messages, lcllms.TextParts(lcllms.ChatMessageTypeHuman, prompt))

	resp, err := g.model.GenerateContent(ctx, messages)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return resp.Choices[0].Content, nil
}

func (g *chatGenerator) Provider() string { return g.provider }
func (g *chatGenerator) Model() string    { return g.modelName }

// estimateTokens is a character-based approximation. Exact counts need a
// vendor round trip, which is too costly for a log line.
func estimateTokens(text string) int {
	return len(text) / 3
}

// newOllamaHTTPClient creates an HTTP client with longer timeouts for Ollama requests.
func newOllamaHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxConnsPerHost:     10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		Timeout: 5 * time.Minute,
	}
}
