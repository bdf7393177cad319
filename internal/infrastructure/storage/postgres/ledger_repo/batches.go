package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmstock/internal/domain/catalogs/batch"
	"pharmstock/internal/infrastructure/storage/postgres"
)

const batchesTable = "batches"

// BatchRepo implements batch.Reader over PostgreSQL.
type BatchRepo struct {
	pool    *postgres.Pool
	builder squirrel.StatementBuilderType
}

// NewBatchRepo creates a batch master-data reader.
func NewBatchRepo(pool *postgres.Pool) *BatchRepo {
	return &BatchRepo{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// List performs the bulk batch read for one query.
func (r *BatchRepo) List(ctx context.Context, f batch.Filter) ([]batch.Batch, error) {
	q := r.builder.Select(
		"id", "product_id", "batch_number", "expiry_date",
	).From(batchesTable)

	if f.Text != "" {
		q = q.Where(squirrel.ILike{"batch_number": "%" + f.Text + "%"})
	}
	if len(f.ProductIDs) > 0 {
		q = q.Where(squirrel.Eq{"product_id": f.ProductIDs})
	}
	if f.ExpiryFrom != nil {
		q = q.Where(squirrel.GtOrEq{"expiry_date": *f.ExpiryFrom})
	}
	if f.ExpiryTo != nil {
		q = q.Where(squirrel.LtOrEq{"expiry_date": *f.ExpiryTo})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var batches []batch.Batch
	if err := pgxscan.Select(ctx, r.pool, &batches, sql, args...); err != nil {
		return nil, fmt.Errorf("select batches: %w", err)
	}

	return batches, nil
}
