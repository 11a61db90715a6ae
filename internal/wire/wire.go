//go:build wireinject
// +build wireinject

package wire

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/wire"

	"github.com/sevigo/revu/internal/app"
	"github.com/sevigo/revu/internal/config"
	"github.com/sevigo/revu/internal/core"
	"github.com/sevigo/revu/internal/db"
	"github.com/sevigo/revu/internal/llm"
	"github.com/sevigo/revu/internal/logger"
	"github.com/sevigo/revu/internal/server"
	"github.com/sevigo/revu/internal/server/handler"
	"github.com/sevigo/revu/internal/storage"
)

var reviewerSet = wire.NewSet(
	provideValidatedConfig,
	provideAIConfig,
	provideSlogLogger,
	llm.NewPromptManager,
	llm.NewGenerator,
	llm.NewReviewer,
)

func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(
		reviewerSet,
		app.NewApp,
		server.NewServer,
		db.NewDatabase,
		storage.NewStore,
		provideDBConfig,
		provideCoreReviewer,
		provideModelMeta,
	)
	return &app.App{}, nil, nil
}

func InitializeReviewer(ctx context.Context) (*llm.Reviewer, error) {
	wire.Build(reviewerSet)
	return &llm.Reviewer{}, nil
}

func provideValidatedConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func provideAIConfig(cfg *config.Config) *config.AIConfig {
	return &cfg.AI
}

func provideDBConfig(cfg *config.Config) *config.DBConfig {
	return &cfg.Database
}

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return logger.NewLogger(cfg.Logging, nil)
}

func provideCoreReviewer(r *llm.Reviewer) core.Reviewer {
	return r
}

func provideModelMeta(r *llm.Reviewer) (handler.ModelMeta, error) {
	persona, err := r.Persona()
	if err != nil {
		return handler.ModelMeta{}, fmt.Errorf("failed to render persona: %w", err)
	}
	return handler.ModelMeta{Provider: r.Provider(), Model: r.Model(), Persona: persona}, nil
}
