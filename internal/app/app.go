// Package app holds the running review proxy: its HTTP server and archive.
package app

import (
	"context"
	"log/slog"

	"github.com/sevigo/revu/internal/config"
	"github.com/sevigo/revu/internal/llm"
	"github.com/sevigo/revu/internal/server"
	"github.com/sevigo/revu/internal/storage"
)

// App holds the main application components.
type App struct {
	Cfg      *config.Config
	server   *server.Server
	reviewer *llm.Reviewer
	store    storage.Store
	logger   *slog.Logger
}

// NewApp assembles the application from its already constructed parts.
func NewApp(cfg *config.Config, srv *server.Server, reviewer *llm.Reviewer, store storage.Store, logger *slog.Logger) *App {
	return &App{
		Cfg:      cfg,
		server:   srv,
		reviewer: reviewer,
		store:    store,
		logger:   logger,
	}
}

// Start runs the HTTP server and blocks until it stops.
func (a *App) Start() error {
	a.logger.Info("starting RevU review proxy",
		"server_port", a.Cfg.Server.Port,
		"provider", a.reviewer.Provider(),
		"model", a.reviewer.Model(),
		"archive", a.store.Enabled(),
		"rate_limit_rps", a.Cfg.Server.RateLimitRPS,
		"max_code_bytes", a.Cfg.Server.MaxCodeBytes,
	)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts the server down, letting in-flight reviews finish.
func (a *App) Stop(ctx context.Context) error {
	a.logger.Info("shutting down RevU services")

	if err := a.server.Stop(ctx); err != nil {
		a.logger.Error("RevU stopped with errors", "error", err)
		return err
	}

	a.logger.Info("RevU stopped successfully")
	return nil
}
