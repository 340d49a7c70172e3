package handlers

//go:generate mockgen -source=list_categories.go -destination=list_categories_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/finance-flow/internal/logger"
	"github.com/sbilibin2017/finance-flow/internal/models"
)

// CategoryLister defines the interface that the service must implement.
type CategoryLister interface {
	ListActive(ctx context.Context, txnType string) ([]models.Category, error)
}

// NewListCategoriesHandler returns an HTTP handler listing active categories of a type.
// @Summary List categories
// @Description Returns the active categories of a transaction type ordered by name.
// @Tags categories
// @Produce json
// @Param type path string true "income or expense"
// @Success 200 {array} models.Category
// @Failure 400 {object} handlers.ErrorResponse "Invalid type"
// @Failure 503 {object} handlers.ErrorResponse "Storage unavailable"
// @Router /api/categories/{type} [get]
func NewListCategoriesHandler(svc CategoryLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		txnType := chi.URLParam(r, "type")

		categories, err := svc.ListActive(ctx, txnType)
		if err != nil {
			logger.FromContext(ctx).Errorw("failed to list categories", "type", txnType, "error", err)
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, categories)
	}
}
