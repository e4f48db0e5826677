package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"visitor-insights-service/internal/model"
)

// SuggestionRepository persists per-page content suggestions.
type SuggestionRepository interface {
	Create(ctx context.Context, suggestion model.ContentSuggestion) error
}

type suggestionRepository struct {
	pool *pgxpool.Pool
}

// NewSuggestionRepository creates a SuggestionRepository backed by PostgreSQL.
func NewSuggestionRepository(pool *pgxpool.Pool) SuggestionRepository {
	return &suggestionRepository{pool: pool}
}

const insertSuggestionQuery = `
	INSERT INTO content_suggestions (path, suggestion, applied_at)
	VALUES ($1, $2, $3)
`

func (r *suggestionRepository) Create(ctx context.Context, suggestion model.ContentSuggestion) error {
	_, err := r.pool.Exec(ctx, insertSuggestionQuery,
		suggestion.Path,
		suggestion.Suggestion,
		suggestion.AppliedAt,
	)
	return err
}
