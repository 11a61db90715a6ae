package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/sevigo/revu/internal/config"
	"github.com/sevigo/revu/internal/core"
	"github.com/sevigo/revu/internal/server/handler"
	"github.com/sevigo/revu/internal/storage"
)

// NewRouter creates and configures a new HTTP router with middleware and API routes.
func NewRouter(cfg *config.Config, reviewer core.Reviewer, store storage.Store, meta handler.ModelMeta, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	reviewHandler := handler.NewReviewHandler(cfg, reviewer, store, meta, logger)
	historyHandler := handler.NewHistoryHandler(store, logger)

	r.Route("/ai", func(r chi.Router) {
		review := r.With()
		if cfg.Server.RateLimitRPS > 0 {
			limiter := rate.NewLimiter(rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateLimitBurst)
			review = r.With(rateLimit(limiter, logger))
		}
		review.Post("/get-review", reviewHandler.Handle)
		r.Get("/persona", reviewHandler.Persona)
		r.Get("/reviews", historyHandler.Handle)
	})

	return r
}

// rateLimit rejects requests with 429 once the limiter's budget is spent.
func rateLimit(limiter *rate.Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.Warn("rate limit exceeded", "remote", r.RemoteAddr, "request_id", middleware.GetReqID(r.Context()))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
