package ledger

import (
	"context"
	"time"

	"pharmstock/internal/core/id"
	"pharmstock/internal/core/types"
)

// Transaction is one immutable fact from the append-only inventory log.
//
// The quantity as stored carries a type-dependent sign convention inherited
// from the source system (some write paths pre-negate outflows, others store
// unsigned magnitudes). The ledger never trusts that sign: classification
// works on the magnitude and assigns direction from the transaction type.
type Transaction struct {
	ID        id.ID           `db:"id" json:"id"`
	ProductID id.ID           `db:"product_id" json:"productId"`
	BatchID   id.ID           `db:"batch_id" json:"batchId"`
	Type      TransactionType `db:"transaction_type" json:"transactionType"`

	// Quantity in strips as recorded in the log. See sign caveat above.
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// Source and Destination are the transaction's location roles.
	// Single-sided types populate one of them, transfers populate both.
	Source      *Location `json:"source,omitempty"`
	Destination *Location `json:"destination,omitempty"`

	// UnitCost is the cost per strip at transaction time.
	UnitCost types.Money `db:"unit_cost" json:"unitCost"`

	OccurredAt time.Time `db:"occurred_at" json:"occurredAt"`
}

// TransactionFilter bounds a bulk read of the transaction log.
// Empty id slices mean "no restriction".
type TransactionFilter struct {
	ProductIDs []id.ID
	BatchIDs   []id.ID
	From       *time.Time
	To         *time.Time
}

// TransactionReader reads the append-only transaction log.
// Records must be returned in stable log order (insertion order); the
// fold's tie-break semantics depend on it.
type TransactionReader interface {
	List(ctx context.Context, filter TransactionFilter) ([]Transaction, error)
}
