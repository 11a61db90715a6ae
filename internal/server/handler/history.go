package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sevigo/revu/internal/storage"
)

// HistoryHandler lists archived reviews.
type HistoryHandler struct {
	store  storage.Store
	logger *slog.Logger
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(store storage.Store, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{store: store, logger: logger}
}

// Handle serves GET /ai/reviews?limit=N.
func (h *HistoryHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if !h.store.Enabled() {
		http.Error(w, "review archive is disabled", http.StatusNotFound)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	reviews, err := h.store.ListReviews(r.Context(), storage.NormalizeLimit(limit))
	if err != nil {
		h.logger.Error("failed to list reviews", "error", err)
		http.Error(w, "Failed to list reviews", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(reviews); err != nil {
		h.logger.Error("failed to encode reviews", "error", err)
	}
}
