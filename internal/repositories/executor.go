package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
)

// TxGetter returns the request-scoped transaction, or nil if there is none.
type TxGetter func(ctx context.Context) *sqlx.Tx

// executor prefers the request-scoped transaction over the pool.
func executor(ctx context.Context, db *sqlx.DB, txGetter TxGetter) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// oneLine collapses a query to a single line for logging.
func oneLine(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
