// Package llm builds review prompts and sends them to the configured vendor model.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sevigo/revu/internal/config"
	"github.com/sevigo/revu/internal/core"
	"github.com/sevigo/revu/internal/redact"
)

// Reviewer forwards code to a Generator with the senior-reviewer persona.
type Reviewer struct {
	generator     Generator
	promptMgr     *PromptManager
	redactSecrets bool
	logger        *slog.Logger
}

var _ core.Reviewer = (*Reviewer)(nil)

// NewReviewer creates a Reviewer. It is the only holder of the vendor client.
func NewReviewer(cfg *config.Config, promptMgr *PromptManager, gen Generator, logger *slog.Logger) *Reviewer {
	return &Reviewer{
		generator:     gen,
		promptMgr:     promptMgr,
		redactSecrets: cfg.AI.RedactSecrets,
		logger:        logger,
	}
}

// Persona returns the system instruction sent with every review.
func (r *Reviewer) Persona() (string, error) {
	return r.promptMgr.Render(SystemPrompt, nil)
}

// Review sends the code to the model once and returns its text unchanged.
func (r *Reviewer) Review(ctx context.Context, req *core.ReviewRequest) (string, error) {
	system, err := r.promptMgr.Render(SystemPrompt, nil)
	if err != nil {
		return "", fmt.Errorf("could not render prompt '%s': %w", SystemPrompt, err)
	}

	code := req.Code
	if r.redactSecrets {
		if n := redact.Count(code); n > 0 {
			r.logger.Info("redacted secrets before sending code to the model", "matches", n)
			code = redact.Secrets(code)
		}
	}

	prompt, err := r.promptMgr.Render(CodeReviewPrompt, CodeReviewData{
		Code:         code,
		Instructions: req.Instructions,
	})
	if err != nil {
		return "", fmt.Errorf("could not render prompt '%s': %w", CodeReviewPrompt, err)
	}

	r.logger.Info("calling LLM for code review",
		"provider", r.generator.Provider(),
		"model", r.generator.Model(),
		"code_bytes", len(req.Code),
		"instructions", len(req.Instructions),
	)

	start := time.Now()
	response, err := r.generator.Generate(ctx, system, prompt)
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}

	r.logger.Info("LLM review generated successfully",
		"chars", len(response),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return response, nil
}

// Provider names the vendor backing this reviewer.
func (r *Reviewer) Provider() string { return r.generator.Provider() }

// Model names the vendor model backing this reviewer.
func (r *Reviewer) Model() string { return r.generator.Model() }
