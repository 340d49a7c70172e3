package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/finance-flow/internal/logger"
	"github.com/sbilibin2017/finance-flow/internal/models"
)

// CategoryReadRepository reads the category catalog
type CategoryReadRepository struct {
	db *sqlx.DB
}

func NewCategoryReadRepository(db *sqlx.DB) *CategoryReadRepository {
	return &CategoryReadRepository{db: db}
}

// ListActive returns active categories of txnType ordered by name.
// The type comparison is case-insensitive.
func (r *CategoryReadRepository) ListActive(ctx context.Context, txnType string) ([]models.Category, error) {
	const query = `
		SELECT id, name
		FROM categories
		WHERE LOWER(type) = LOWER($1)
		  AND is_active = TRUE
		ORDER BY name ASC
	`

	categories := []models.Category{}
	err := r.db.SelectContext(ctx, &categories, query, txnType)

	logger.FromContext(ctx).Infow("query",
		"sql", oneLine(query),
		"args", []any{txnType},
		"result", len(categories),
		"error", err,
	)

	return categories, err
}
