package ledger_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmstock/internal/core/id"
	"pharmstock/internal/core/types"
	"pharmstock/internal/domain/ledger"
	"pharmstock/internal/infrastructure/storage/postgres"
)

const transactionsTable = "stock_transactions"

// TransactionRepo implements ledger.TransactionReader over PostgreSQL.
//
// Location roles are stored as discriminated columns (kind + id) rather than
// a single "MR_<id>" tag, so no string-prefix parsing happens anywhere.
type TransactionRepo struct {
	pool    *postgres.Pool
	builder squirrel.StatementBuilderType
}

// NewTransactionRepo creates a transaction log reader.
func NewTransactionRepo(pool *postgres.Pool) *TransactionRepo {
	return &TransactionRepo{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// transactionRow is the scan target; nullable role columns map to optional
// Location values on the domain record.
type transactionRow struct {
	ID              id.ID          `db:"id"`
	ProductID       id.ID          `db:"product_id"`
	BatchID         id.ID          `db:"batch_id"`
	TransactionType string         `db:"transaction_type"`
	Quantity        int64          `db:"quantity"`
	SourceKind      *string        `db:"source_kind"`
	SourceID        *string        `db:"source_id"`
	DestinationKind *string        `db:"destination_kind"`
	DestinationID   *string        `db:"destination_id"`
	UnitCost        types.Money    `db:"unit_cost"`
	OccurredAt      time.Time      `db:"occurred_at"`
}

// List reads the filtered transaction log in stable insertion order.
func (r *TransactionRepo) List(ctx context.Context, f ledger.TransactionFilter) ([]ledger.Transaction, error) {
	q := r.builder.Select(
		"id", "product_id", "batch_id", "transaction_type", "quantity",
		"source_kind", "source_id", "destination_kind", "destination_id",
		"unit_cost", "occurred_at",
	).From(transactionsTable).
		OrderBy("occurred_at", "id")

	if len(f.ProductIDs) > 0 {
		q = q.Where(squirrel.Eq{"product_id": f.ProductIDs})
	}
	if len(f.BatchIDs) > 0 {
		q = q.Where(squirrel.Eq{"batch_id": f.BatchIDs})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"occurred_at": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.LtOrEq{"occurred_at": *f.To})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []transactionRow
	if err := pgxscan.Select(ctx, r.pool, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}

	txs := make([]ledger.Transaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, ledger.Transaction{
			ID:          row.ID,
			ProductID:   row.ProductID,
			BatchID:     row.BatchID,
			Type:        ledger.TransactionType(row.TransactionType),
			Quantity:    types.NewQuantity(row.Quantity),
			Source:      locationFromColumns(row.SourceKind, row.SourceID),
			Destination: locationFromColumns(row.DestinationKind, row.DestinationID),
			UnitCost:    row.UnitCost,
			OccurredAt:  row.OccurredAt,
		})
	}

	return txs, nil
}

// locationFromColumns builds the closed location variant from role columns.
// Kinds outside the known set become Other, carrying the raw tag.
func locationFromColumns(kind, locID *string) *ledger.Location {
	if kind == nil || *kind == "" {
		return nil
	}
	var loc ledger.Location
	switch ledger.LocationKind(*kind) {
	case ledger.KindGodown:
		loc = ledger.Godown()
	case ledger.KindMR:
		if locID == nil {
			return nil
		}
		loc = ledger.MR(*locID)
	case ledger.KindCustomer:
		loc = ledger.Customer()
	default:
		loc = ledger.Other(*kind)
	}
	return &loc
}
