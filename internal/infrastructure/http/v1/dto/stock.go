// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"pharmstock/internal/core/apperror"
	"pharmstock/internal/domain/ledger"
)

// StockQueryRequest carries filter/sort/pagination parameters for stock
// position queries.
type StockQueryRequest struct {
	Location   string     `form:"location"`
	MRID       string     `form:"mrId"`
	Product    string     `form:"product"`
	Batch      string     `form:"batch"`
	Category   string     `form:"category"`
	ExpiryFrom *time.Time `form:"expiryFrom" time_format:"2006-01-02"`
	ExpiryTo   *time.Time `form:"expiryTo" time_format:"2006-01-02"`
	SortBy     string     `form:"sortBy"`
	SortOrder  string     `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
	Limit      int        `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset     int        `form:"offset" binding:"omitempty,min=0"`
}

// Filters converts the request to engine filters.
func (r StockQueryRequest) Filters() (ledger.Filters, error) {
	f := ledger.Filters{
		ProductText: r.Product,
		BatchText:   r.Batch,
		Category:    r.Category,
		ExpiryFrom:  r.ExpiryFrom,
		ExpiryTo:    r.ExpiryTo,
	}

	switch r.Location {
	case "", "ALL":
		f.Location = ledger.LocationFilter{Scope: ledger.ScopeAll}
	case "GODOWN":
		f.Location = ledger.LocationFilter{Scope: ledger.ScopeGodown}
	case "MR":
		if r.MRID != "" {
			f.Location = ledger.LocationFilter{Scope: ledger.ScopeMR, MRID: r.MRID}
		} else {
			f.Location = ledger.LocationFilter{Scope: ledger.ScopeAnyMR}
		}
	default:
		return ledger.Filters{}, apperror.NewValidation("invalid location filter").
			WithDetail("location", r.Location)
	}

	if r.ExpiryFrom != nil && r.ExpiryTo != nil && r.ExpiryFrom.After(*r.ExpiryTo) {
		return ledger.Filters{}, apperror.NewValidation("expiryFrom must not be after expiryTo")
	}

	return f, nil
}

// Sort converts the request to a sort spec.
func (r StockQueryRequest) Sort() (ledger.SortSpec, error) {
	field, ok := ledger.ParseSortField(r.SortBy)
	if !ok {
		return ledger.SortSpec{}, apperror.NewValidation("invalid sort field").
			WithDetail("sortBy", r.SortBy)
	}
	return ledger.SortSpec{Field: field, Desc: r.SortOrder == "desc"}, nil
}

// Page converts the request to pagination, applying the default page size.
func (r StockQueryRequest) Page() ledger.Page {
	limit := r.Limit
	if limit <= 0 {
		limit = 50
	}
	return ledger.Page{Limit: limit, Offset: r.Offset}
}

// StockPositionResponse is one position row. Monetary fields are decimal
// strings to avoid float drift on the wire.
type StockPositionResponse struct {
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName"`
	ProductCode   string `json:"productCode"`
	GenericName   string `json:"genericName"`
	Category      string `json:"category,omitempty"`
	BatchID       string `json:"batchId"`
	BatchNumber   string `json:"batchNumber"`
	ExpiryDate    string `json:"expiryDate"`
	LocationKind  string `json:"locationKind"`
	LocationID    string `json:"locationId,omitempty"`
	Quantity      int64  `json:"quantity"`
	CostPerUnit   string `json:"costPerUnit"`
	TotalValue    string `json:"totalValue"`
	MinStockLevel int64  `json:"minStockLevel"`
	StockStatus   string `json:"stockStatus"`
	ExpiryStatus  string `json:"expiryStatus"`
}

// FromStockPositionView maps a computed view to its response shape.
func FromStockPositionView(v ledger.StockPositionView) StockPositionResponse {
	return StockPositionResponse{
		ProductID:     v.ProductID.String(),
		ProductName:   v.ProductName,
		ProductCode:   v.ProductCode,
		GenericName:   v.GenericName,
		Category:      v.Category,
		BatchID:       v.BatchID.String(),
		BatchNumber:   v.BatchNumber,
		ExpiryDate:    v.ExpiryDate.Format("2006-01-02"),
		LocationKind:  string(v.Location.Kind),
		LocationID:    v.Location.ID,
		Quantity:      v.CurrentQuantity.Int64(),
		CostPerUnit:   v.CostPerUnit.String(),
		TotalValue:    v.TotalValue.String(),
		MinStockLevel: v.MinStockLevel.Int64(),
		StockStatus:   string(v.StockStatus),
		ExpiryStatus:  string(v.ExpiryStatus),
	}
}

// StockSummaryResponse is the rollup over the full filtered set.
type StockSummaryResponse struct {
	DistinctProducts  int    `json:"distinctProducts"`
	DistinctBatches   int    `json:"distinctBatches"`
	TotalValue        string `json:"totalValue"`
	LowStockCount     int    `json:"lowStockCount"`
	ExpiringSoonCount int    `json:"expiringSoonCount"`
}

// FromStockSummary maps the engine summary to its response shape.
func FromStockSummary(s ledger.StockSummary) StockSummaryResponse {
	return StockSummaryResponse{
		DistinctProducts:  s.DistinctProducts,
		DistinctBatches:   s.DistinctBatches,
		TotalValue:        s.TotalValue.String(),
		LowStockCount:     s.LowStockCount,
		ExpiringSoonCount: s.ExpiringSoonCount,
	}
}

// StockPageResponse is one page of positions with the full-set summary.
type StockPageResponse struct {
	Items      []StockPositionResponse `json:"items"`
	TotalCount int                     `json:"totalCount"`
	Limit      int                     `json:"limit"`
	Offset     int                     `json:"offset"`
	Summary    StockSummaryResponse    `json:"summary"`
}

// FromStockPage maps an engine page to its response shape.
func FromStockPage(p *ledger.StockPage) StockPageResponse {
	items := make([]StockPositionResponse, len(p.Items))
	for i, v := range p.Items {
		items[i] = FromStockPositionView(v)
	}
	return StockPageResponse{
		Items:      items,
		TotalCount: p.TotalCount,
		Limit:      p.Limit,
		Offset:     p.Offset,
		Summary:    FromStockSummary(p.Summary),
	}
}
