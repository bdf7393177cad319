// Package batch provides the Batch master-data catalog.
// A batch is one manufacturing lot of a product with its own expiry date.
package batch

import (
	"context"
	"time"

	"pharmstock/internal/core/id"
)

// Batch represents a manufacturing lot master record.
type Batch struct {
	ID          id.ID     `db:"id" json:"id"`
	ProductID   id.ID     `db:"product_id" json:"productId"`
	BatchNumber string    `db:"batch_number" json:"batchNumber"`
	ExpiryDate  time.Time `db:"expiry_date" json:"expiryDate"`
}

// Filter bounds a bulk batch read.
type Filter struct {
	// Text matches case-insensitively against batch number (substring).
	Text string

	// ProductIDs restricts to batches of specific products.
	ProductIDs []id.ID

	// ExpiryFrom/ExpiryTo select batches whose expiry date falls inside the
	// inclusive range. Either bound may be nil.
	ExpiryFrom *time.Time
	ExpiryTo   *time.Time
}

// Reader loads batch master records in bulk.
type Reader interface {
	List(ctx context.Context, filter Filter) ([]Batch, error)
}
