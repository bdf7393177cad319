// Package ledger_repo provides PostgreSQL readers for the ledger engine:
// the transaction log and the product/batch master data.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmstock/internal/domain/catalogs/product"
	"pharmstock/internal/infrastructure/storage/postgres"
)

const productsTable = "products"

// ProductRepo implements product.Reader over PostgreSQL.
type ProductRepo struct {
	pool    *postgres.Pool
	builder squirrel.StatementBuilderType
}

// NewProductRepo creates a product master-data reader.
func NewProductRepo(pool *postgres.Pool) *ProductRepo {
	return &ProductRepo{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// List performs the bulk product read for one query.
func (r *ProductRepo) List(ctx context.Context, f product.Filter) ([]product.Product, error) {
	q := r.builder.Select(
		"id", "name", "code", "generic_name", "category",
		"min_stock_level_godown", "min_stock_level_mr",
	).From(productsTable)

	if f.Text != "" {
		pattern := "%" + f.Text + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"code": pattern},
		})
	}
	if f.Category != "" {
		q = q.Where(squirrel.Eq{"category": f.Category})
	}
	if len(f.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": f.IDs})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var products []product.Product
	if err := pgxscan.Select(ctx, r.pool, &products, sql, args...); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}

	return products, nil
}
