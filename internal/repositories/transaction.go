package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/finance-flow/internal/logger"
	"github.com/sbilibin2017/finance-flow/internal/models"
)

const transactionColumns = `id, type, amount, currency, date, category, party, description,
	receipt_url, status, approved_by, approved_at, created_at`

// TransactionWriteRepository handles transaction inserts and approvals
type TransactionWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewTransactionWriteRepository(db *sqlx.DB, txGetter TxGetter) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new transaction and returns the stored row.
func (r *TransactionWriteRepository) Save(ctx context.Context, txn *models.TransactionDB) (*models.TransactionDB, error) {
	query := `
		INSERT INTO transactions (id, type, amount, currency, date, category, party, description,
			receipt_url, status, approved_by, approved_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + transactionColumns

	// created_at shares the application clock with approved_at
	createdAt := txn.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	args := []any{
		txn.ID, txn.Type, txn.Amount, txn.Currency, txn.Date, txn.Category, txn.Party,
		txn.Description, txn.ReceiptURL, txn.Status, txn.ApprovedBy, txn.ApprovedAt, createdAt,
	}

	var saved models.TransactionDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &saved, query, args...)

	logger.FromContext(ctx).Infow("query",
		"sql", oneLine(query),
		"args", args,
		"result", saved.ID,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Approve moves a Pending transaction to Completed. It returns sql.ErrNoRows
// when no Pending row with that id exists.
func (r *TransactionWriteRepository) Approve(ctx context.Context, id, approvedBy string, approvedAt time.Time) (*models.TransactionDB, error) {
	query := `
		UPDATE transactions
		SET status = $1, approved_by = $2, approved_at = $3
		WHERE id = $4 AND status = $5
		RETURNING ` + transactionColumns

	args := []any{models.StatusCompleted, approvedBy, approvedAt, id, models.StatusPending}

	var updated models.TransactionDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &updated, query, args...)

	logger.FromContext(ctx).Infow("query",
		"sql", oneLine(query),
		"args", args,
		"result", updated.Status,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// TransactionReadRepository handles transaction reads
type TransactionReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewTransactionReadRepository(db *sqlx.DB, txGetter TxGetter) *TransactionReadRepository {
	return &TransactionReadRepository{db: db, txGetter: txGetter}
}

// GetStatus returns the status of a transaction, or sql.ErrNoRows.
func (r *TransactionReadRepository) GetStatus(ctx context.Context, id string) (string, error) {
	const query = `SELECT status FROM transactions WHERE id = $1`

	var status string
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &status, query, id)

	logger.FromContext(ctx).Infow("query",
		"sql", query,
		"args", []any{id},
		"result", status,
		"error", err,
	)

	return status, err
}

// List returns all transactions, most recent date first.
func (r *TransactionReadRepository) List(ctx context.Context) ([]models.TransactionDB, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY date DESC, created_at DESC`

	txns := []models.TransactionDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &txns, query)

	logger.FromContext(ctx).Infow("query",
		"sql", oneLine(query),
		"result", len(txns),
		"error", err,
	)

	return txns, err
}
