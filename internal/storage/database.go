// Package storage persists completed reviews.
package storage

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sevigo/revu/internal/core"
	"github.com/sevigo/revu/internal/db"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Store defines the archive operations.
//
//go:generate mockgen -destination=../../mocks/mock_store.go -package=mocks . Store
type Store interface {
	SaveReview(ctx context.Context, review *core.Review) error
	ListReviews(ctx context.Context, limit int) ([]core.Review, error)
	Enabled() bool
}

type postgresStore struct {
	db *sqlx.DB
}

// NewStore returns a PostgreSQL store, or a disabled one when conn is nil.
func NewStore(conn *db.DB) Store {
	if conn == nil {
		return disabledStore{}
	}
	return &postgresStore{db: conn.DB}
}

// SaveReview inserts a new review record and fills in its ID and CreatedAt.
func (s *postgresStore) SaveReview(ctx context.Context, review *core.Review) error {
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO reviews (code_sha, code, content, provider, model, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	return s.db.QueryRowxContext(ctx, query,
		review.CodeSHA, review.Code, review.Content, review.Provider, review.Model, review.CreatedAt,
	).Scan(&review.ID)
}

// ListReviews returns the most recent reviews, newest first.
func (s *postgresStore) ListReviews(ctx context.Context, limit int) ([]core.Review, error) {
	query := `
		SELECT id, code_sha, code, content, provider, model, created_at
		FROM reviews
		ORDER BY created_at DESC, id DESC
		LIMIT $1`

	reviews := []core.Review{}
	if err := s.db.SelectContext(ctx, &reviews, query, NormalizeLimit(limit)); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *postgresStore) Enabled() bool { return true }

type disabledStore struct{}

func (disabledStore) SaveReview(context.Context, *core.Review) error { return nil }

func (disabledStore) ListReviews(context.Context, int) ([]core.Review, error) {
	return nil, core.ErrArchiveDisabled
}

func (disabledStore) Enabled() bool { return false }

// NormalizeLimit clamps a requested page size into [1, MaxListLimit].
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
