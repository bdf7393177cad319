package ledger

import (
	"sort"
	"strings"
)

// SortField names a sortable column of the position view.
type SortField string

const (
	SortProductName SortField = "product_name"
	SortGenericName SortField = "generic_name"
	SortBatchNumber SortField = "batch_number"
	SortExpiryDate  SortField = "expiry_date"
	SortQuantity    SortField = "quantity"
	SortCost        SortField = "cost"
	SortTotalValue  SortField = "total_value"
)

// ParseSortField validates a sort field name. Empty input defaults to
// product name.
func ParseSortField(s string) (SortField, bool) {
	if s == "" {
		return SortProductName, true
	}
	switch f := SortField(s); f {
	case SortProductName, SortGenericName, SortBatchNumber, SortExpiryDate,
		SortQuantity, SortCost, SortTotalValue:
		return f, true
	}
	return "", false
}

// SortSpec describes ordering of the computed position list.
type SortSpec struct {
	Field SortField
	Desc  bool
}

// Page is offset/limit pagination over the sorted list.
type Page struct {
	Limit  int
	Offset int
}

// SortViews orders rows in place. Ties keep stable input order (the
// first-touch order of the fold), which makes repeated queries
// deterministic.
func SortViews(rows []StockPositionView, spec SortSpec) {
	less := lessFn(spec.Field)
	if less == nil {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if spec.Desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

func lessFn(field SortField) func(a, b StockPositionView) bool {
	switch field {
	case SortProductName:
		return func(a, b StockPositionView) bool {
			return strings.ToLower(a.ProductName) < strings.ToLower(b.ProductName)
		}
	case SortGenericName:
		return func(a, b StockPositionView) bool {
			return strings.ToLower(a.GenericName) < strings.ToLower(b.GenericName)
		}
	case SortBatchNumber:
		return func(a, b StockPositionView) bool {
			return strings.ToLower(a.BatchNumber) < strings.ToLower(b.BatchNumber)
		}
	case SortExpiryDate:
		return func(a, b StockPositionView) bool {
			return a.ExpiryDate.Before(b.ExpiryDate)
		}
	case SortQuantity:
		return func(a, b StockPositionView) bool {
			return a.CurrentQuantity < b.CurrentQuantity
		}
	case SortCost:
		return func(a, b StockPositionView) bool {
			return a.CostPerUnit.LessThan(b.CostPerUnit)
		}
	case SortTotalValue:
		return func(a, b StockPositionView) bool {
			return a.TotalValue.LessThan(b.TotalValue)
		}
	}
	return nil
}

// Paginate slices rows by offset/limit. Limit <= 0 means "to the end".
// The caller keeps the pre-pagination length as the total count.
func Paginate(rows []StockPositionView, page Page) []StockPositionView {
	if page.Offset < 0 {
		page.Offset = 0
	}
	if page.Offset >= len(rows) {
		return []StockPositionView{}
	}
	end := len(rows)
	if page.Limit > 0 && page.Offset+page.Limit < end {
		end = page.Offset + page.Limit
	}
	return rows[page.Offset:end]
}
