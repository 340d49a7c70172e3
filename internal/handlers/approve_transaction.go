package handlers

//go:generate mockgen -source=approve_transaction.go -destination=approve_transaction_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/finance-flow/internal/logger"
	"github.com/sbilibin2017/finance-flow/internal/middlewares"
	"github.com/sbilibin2017/finance-flow/internal/models"
)

// TransactionApprover defines the interface that the service must implement.
type TransactionApprover interface {
	Approve(ctx context.Context, id, approvedBy string) (*models.TransactionDB, error)
}

// ApproveTransactionResponse represents a successful approval
// swagger:model ApproveTransactionResponse
type ApproveTransactionResponse struct {
	// Success message
	// default: Approved!
	Message string `json:"message"`

	// Completed transaction
	Transaction *models.TransactionDB `json:"transaction"`
}

// NewApproveTransactionHandler returns an HTTP handler that completes a Pending transaction.
// @Summary Approve transaction
// @Description Moves a Pending transaction to Completed and stamps the approver. A Completed transaction is never re-stamped.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} handlers.ApproveTransactionResponse "Approved!"
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Failure 401 "Invalid approver token"
// @Failure 404 {object} handlers.ErrorResponse "Transaction not found"
// @Failure 409 {object} handlers.ErrorResponse "Transaction already approved"
// @Failure 500 {object} handlers.ErrorResponse "Storage write failed"
// @Failure 503 {object} handlers.ErrorResponse "Storage unavailable"
// @Router /api/transactions/{id}/approve [patch]
// @Security BearerAuth
func NewApproveTransactionHandler(svc TransactionApprover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id := chi.URLParam(r, "id")
		approver := middlewares.GetApproverFromContext(ctx)

		txn, err := svc.Approve(ctx, id, approver)
		if err != nil {
			logger.FromContext(ctx).Errorw("failed to approve transaction", "id", id, "approver", approver, "error", err)
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ApproveTransactionResponse{
			Message:     "Approved!",
			Transaction: txn,
		})
	}
}
