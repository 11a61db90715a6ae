// Package core defines the data structures and contracts shared by the review
// proxy, the terminal editor and the CLI.
package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ReviewRequest is the payload accepted by the review proxy.
type ReviewRequest struct {
	Code string `json:"code"`

	// Instructions are optional extra guidelines appended to the prompt.
	Instructions []string `json:"instructions,omitempty"`
}

// Review is a completed review as kept in the archive.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	CodeSHA   string    `json:"code_sha" db:"code_sha"`
	Code      string    `json:"code" db:"code"`
	Content   string    `json:"content" db:"content"`
	Provider  string    `json:"provider" db:"provider"`
	Model     string    `json:"model" db:"model"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Reviewer turns a code snippet into a markdown critique.
//
//go:generate mockgen -destination=../../mocks/mock_reviewer.go -package=mocks . Reviewer
type Reviewer interface {
	// Review returns the model text verbatim.
	Review(ctx context.Context, req *ReviewRequest) (string, error)
}

// CodeDigest returns the hex SHA-256 of a code snippet.
func CodeDigest(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
