package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/finance-flow/internal/logger"
)

// SequenceRepository hands out values of the durable transaction sequence.
type SequenceRepository struct {
	db *sqlx.DB
}

func NewSequenceRepository(db *sqlx.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// Next advances trx_seq with a single nextval call. Values are strictly
// increasing across callers and restarts; a rolled back caller leaves a gap.
func (r *SequenceRepository) Next(ctx context.Context) (int64, error) {
	const query = `SELECT nextval('trx_seq')`

	var seq int64
	err := r.db.GetContext(ctx, &seq, query)

	logger.FromContext(ctx).Infow("query",
		"sql", query,
		"result", seq,
		"error", err,
	)

	return seq, err
}
