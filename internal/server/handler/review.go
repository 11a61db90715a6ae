// Package handler provides HTTP handlers for the review proxy.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/sevigo/revu/internal/config"
	"github.com/sevigo/revu/internal/core"
	"github.com/sevigo/revu/internal/storage"
)

const archiveTimeout = 5 * time.Second

// ModelMeta describes the vendor model behind the reviewer.
type ModelMeta struct {
	Provider string
	Model    string
	Persona  string
}

// ReviewHandler relays code snippets to the reviewer and returns its text.
type ReviewHandler struct {
	reviewer     core.Reviewer
	store        storage.Store
	meta         ModelMeta
	maxCodeBytes int64
	logger       *slog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(cfg *config.Config, reviewer core.Reviewer, store storage.Store, meta ModelMeta, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewer:     reviewer,
		store:        store,
		meta:         meta,
		maxCodeBytes: cfg.Server.MaxCodeBytes,
		logger:       logger,
	}
}

// Handle serves POST /ai/get-review.
func (h *ReviewHandler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(w, r)
	if err != nil {
		status := http.StatusBadRequest
		var maxErr *http.MaxBytesError
		if errors.Is(err, core.ErrCodeTooLarge) || errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
		}
		h.logger.Warn("rejecting review request", "error", err, "status", status)
		http.Error(w, err.Error(), status)
		return
	}

	review, err := h.reviewer.Review(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to generate review", "error", err)
		http.Error(w, "Failed to get review from the model", http.StatusBadGateway)
		return
	}

	h.archive(r.Context(), req, review)

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, review)
}

// decode accepts a JSON body ({"code": ...}) or a text/plain body taken verbatim.
func (h *ReviewHandler) decode(w http.ResponseWriter, r *http.Request) (*core.ReviewRequest, error) {
	body := io.Reader(r.Body)
	if h.maxCodeBytes > 0 {
		// JSON escaping can turn one byte into six (\u003c); the exact limit is checked after decoding.
		body = http.MaxBytesReader(w, r.Body, 6*h.maxCodeBytes+4096)
	}

	var req core.ReviewRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "text/plain" {
		raw, err := io.ReadAll(body)
		if err != nil {
			return nil, err
		}
		req.Code = string(raw)
	} else {
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, err
			}
			return nil, errors.New("request body must be JSON like {\"code\": \"...\"}")
		}
	}

	if h.maxCodeBytes > 0 && int64(len(req.Code)) > h.maxCodeBytes {
		return nil, core.ErrCodeTooLarge
	}
	return &req, nil
}

// archive stores the review when the archive is enabled. Failures never
// change the response.
func (h *ReviewHandler) archive(ctx context.Context, req *core.ReviewRequest, review string) {
	if !h.store.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
	defer cancel()

	record := &core.Review{
		CodeSHA:  core.CodeDigest(req.Code),
		Code:     req.Code,
		Content:  review,
		Provider: h.meta.Provider,
		Model:    h.meta.Model,
	}
	if err := h.store.SaveReview(ctx, record); err != nil {
		h.logger.Warn("failed to archive review", "error", err, "code_sha", record.CodeSHA)
		return
	}
	h.logger.Debug("review archived", "id", record.ID, "code_sha", record.CodeSHA)
}

// Persona serves GET /ai/persona.
func (h *ReviewHandler) Persona(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = io.WriteString(w, h.meta.Persona)
}
