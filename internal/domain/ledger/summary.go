package ledger

import (
	"time"

	"pharmstock/internal/core/id"
	"pharmstock/internal/core/types"
)

// StockStatus classifies a position's quantity against its threshold.
type StockStatus string

const (
	StockLow    StockStatus = "low"
	StockMedium StockStatus = "medium"
	StockGood   StockStatus = "good"
)

// ExpiryStatus classifies a batch's expiry against "now".
type ExpiryStatus string

const (
	ExpiryExpired ExpiryStatus = "expired"
	ExpirySoon    ExpiryStatus = "expiring-soon"
	ExpiryGood    ExpiryStatus = "good"
)

// ExpiringSoonWindow is the inclusive look-ahead for expiring-soon.
const ExpiringSoonWindow = 30 * 24 * time.Hour

// StockStatusOf classifies quantity against the location-appropriate minimum.
// low: qty <= min; medium: qty <= min*1.5; else good. Integer math keeps the
// 1.5 factor exact.
func StockStatusOf(qty, minLevel types.Quantity) StockStatus {
	switch {
	case qty <= minLevel:
		return StockLow
	case 2*qty <= 3*minLevel:
		return StockMedium
	default:
		return StockGood
	}
}

// ExpiryStatusOf classifies an expiry date against now. Comparison is by
// calendar date: expired strictly before today, expiring-soon within 30 days
// inclusive.
func ExpiryStatusOf(expiry, now time.Time) ExpiryStatus {
	today := dateOnly(now)
	exp := dateOnly(expiry)
	switch {
	case exp.Before(today):
		return ExpiryExpired
	case !exp.After(today.Add(ExpiringSoonWindow)):
		return ExpirySoon
	default:
		return ExpiryGood
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StockSummary is the rollup over the full filtered position set.
// Counts use the same per-row status rules as the views, applied across the
// whole unpaginated set.
type StockSummary struct {
	DistinctProducts  int         `json:"distinctProducts"`
	DistinctBatches   int         `json:"distinctBatches"`
	TotalValue        types.Money `json:"totalValue"`
	LowStockCount     int         `json:"lowStockCount"`
	ExpiringSoonCount int         `json:"expiringSoonCount"`
}

// Summarize computes the rollup from computed position views.
func Summarize(rows []StockPositionView) StockSummary {
	products := make(map[id.ID]struct{})
	batches := make(map[id.ID]struct{})
	summary := StockSummary{TotalValue: types.ZeroMoney()}

	for _, row := range rows {
		products[row.ProductID] = struct{}{}
		batches[row.BatchID] = struct{}{}
		summary.TotalValue = summary.TotalValue.Add(row.TotalValue)
		if row.StockStatus == StockLow {
			summary.LowStockCount++
		}
		if row.ExpiryStatus == ExpirySoon {
			summary.ExpiringSoonCount++
		}
	}

	summary.DistinctProducts = len(products)
	summary.DistinctBatches = len(batches)
	return summary
}
