package handlers

//go:generate mockgen -source=list_transactions.go -destination=list_transactions_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/finance-flow/internal/logger"
	"github.com/sbilibin2017/finance-flow/internal/models"
)

// TransactionLister defines the interface that the service must implement.
type TransactionLister interface {
	List(ctx context.Context) ([]models.TransactionDB, error)
}

// NewListTransactionsHandler returns an HTTP handler listing all transactions.
// @Summary List transactions
// @Description Returns every transaction, most recent date first.
// @Tags transactions
// @Produce json
// @Success 200 {array} models.TransactionDB
// @Failure 503 {object} handlers.ErrorResponse "Storage unavailable"
// @Router /api/transactions [get]
func NewListTransactionsHandler(svc TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		txns, err := svc.List(ctx)
		if err != nil {
			logger.FromContext(ctx).Errorw("failed to list transactions", "error", err)
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, txns)
	}
}
