// Package product provides the Product master-data catalog.
// Products are read-only for the ledger: loaded once per query as a lookup table.
package product

import (
	"context"

	"pharmstock/internal/core/id"
	"pharmstock/internal/core/types"
)

// Product represents a pharmaceutical product master record.
type Product struct {
	ID          id.ID   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Code        string  `db:"code" json:"code"`
	GenericName string  `db:"generic_name" json:"genericName"`
	Category    *string `db:"category" json:"category,omitempty"`

	// MinStockLevelGodown is the reorder threshold for godown stock (strips).
	MinStockLevelGodown types.Quantity `db:"min_stock_level_godown" json:"minStockLevelGodown"`

	// MinStockLevelMR is the reorder threshold for stock held by one MR (strips).
	MinStockLevelMR types.Quantity `db:"min_stock_level_mr" json:"minStockLevelMr"`
}

// CategoryName returns the category or empty string.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return *p.Category
}

// MinLevelFor returns the threshold appropriate for a location kind tag.
// Godown positions use the godown threshold, everything else the MR one.
func (p Product) MinLevelFor(godown bool) types.Quantity {
	if godown {
		return p.MinStockLevelGodown
	}
	return p.MinStockLevelMR
}

// Filter bounds a bulk product read.
type Filter struct {
	// Text matches case-insensitively against name or code (substring).
	Text string

	// Category is an exact category name match.
	Category string

	// IDs restricts to specific products.
	IDs []id.ID
}

// Reader loads product master records in bulk.
// Implementations must return the full matching set in one read.
type Reader interface {
	List(ctx context.Context, filter Filter) ([]Product, error)
}
