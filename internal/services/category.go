package services

//go:generate mockgen -source=category.go -destination=category_mock.go -package=services

import (
	"context"
	"strings"

	"github.com/sbilibin2017/finance-flow/internal/logger"
	"github.com/sbilibin2017/finance-flow/internal/models"
)

// CategoryReader reads active categories from the database.
type CategoryReader interface {
	ListActive(ctx context.Context, txnType string) ([]models.Category, error)
}

// CategoryCache caches active category lists.
type CategoryCache interface {
	GetActive(ctx context.Context, txnType string) ([]models.Category, error)
	SetActive(ctx context.Context, txnType string, categories []models.Category) error
}

// CategoryService serves the category catalog with an optional cache.
type CategoryService struct {
	reader CategoryReader
	cache  CategoryCache
}

// NewCategoryService creates a new CategoryService. cache may be nil.
func NewCategoryService(reader CategoryReader, cache CategoryCache) *CategoryService {
	return &CategoryService{reader: reader, cache: cache}
}

// normalizeType lowercases a transaction type and reports whether it is known.
func normalizeType(txnType string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(txnType))
	return t, t == models.TypeIncome || t == models.TypeExpense
}

// ListActive returns active categories of txnType ordered by name.
func (s *CategoryService) ListActive(ctx context.Context, txnType string) ([]models.Category, error) {
	t, ok := normalizeType(txnType)
	if !ok {
		return nil, invalid("type", "must be income or expense")
	}

	if s.cache != nil {
		categories, err := s.cache.GetActive(ctx, t)
		if err == nil {
			return categories, nil
		}
		logger.FromContext(ctx).Debugw("category cache miss", "type", t, "error", err)
	}

	categories, err := s.reader.ListActive(ctx, t)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list categories", "type", t, "error", err)
		return nil, readError(err)
	}

	if s.cache != nil {
		if err := s.cache.SetActive(ctx, t, categories); err != nil {
			logger.FromContext(ctx).Errorw("failed to cache categories", "type", t, "error", err)
		}
	}

	return categories, nil
}
