package ledger

import (
	"time"

	"pharmstock/internal/core/id"
	"pharmstock/internal/core/types"
)

// PositionKey identifies one derived stock position.
type PositionKey struct {
	ProductID  id.ID
	BatchID    id.ID
	Kind       LocationKind
	LocationID string
}

// Location reconstructs the key's location variant.
func (k PositionKey) Location() Location {
	return Location{Kind: k.Kind, ID: k.LocationID}
}

// StockPosition is the derived current-quantity/value snapshot for one
// (product, batch, location) triple. It is never persisted; it exists only
// for the duration of one query.
type StockPosition struct {
	Key PositionKey

	// Quantity may be transiently negative while folding; positions that
	// end at or below zero are dropped from output.
	Quantity types.Quantity

	// CostPerUnit is overwritten by every inflow effect and untouched by
	// outflows ("last cost wins" valuation).
	CostPerUnit types.Money

	// TotalValue = Quantity * CostPerUnit, computed once folding is done.
	TotalValue types.Money

	// seq is the first-touch ordinal, preserved for stable sort tie-breaks.
	seq int
}

// StockPositionView joins a surviving position with product/batch
// descriptive fields and derived statuses for presentation.
type StockPositionView struct {
	ProductID   id.ID   `json:"productId"`
	ProductName string  `json:"productName"`
	ProductCode string  `json:"productCode"`
	GenericName string  `json:"genericName"`
	Category    string  `json:"category,omitempty"`
	BatchID     id.ID   `json:"batchId"`
	BatchNumber string  `json:"batchNumber"`

	ExpiryDate time.Time `json:"expiryDate"`

	Location Location `json:"location"`

	CurrentQuantity types.Quantity `json:"currentQuantity"`
	CostPerUnit     types.Money    `json:"costPerUnit"`
	TotalValue      types.Money    `json:"totalValue"`

	// MinStockLevel is the threshold for this row's location kind.
	MinStockLevel types.Quantity `json:"minStockLevel"`

	StockStatus  StockStatus  `json:"stockStatus"`
	ExpiryStatus ExpiryStatus `json:"expiryStatus"`
}
