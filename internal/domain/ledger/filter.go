package ledger

import (
	"time"
)

// LocationScope selects which locations a query covers.
type LocationScope string

const (
	// ScopeAll covers the godown and every MR.
	ScopeAll LocationScope = "ALL"
	// ScopeGodown covers only the central warehouse.
	ScopeGodown LocationScope = "GODOWN"
	// ScopeAnyMR covers every MR but not the godown.
	ScopeAnyMR LocationScope = "MR"
	// ScopeMR covers one specific MR; MRID must be set.
	ScopeMR LocationScope = "MR_ONE"
)

// LocationFilter bounds a query to a location scope.
type LocationFilter struct {
	Scope LocationScope
	MRID  string
}

// Predicate converts the filter to an effect-level predicate for the fold.
func (f LocationFilter) Predicate() LocationPredicate {
	switch f.Scope {
	case ScopeGodown:
		return func(l Location) bool { return l.IsGodown() }
	case ScopeAnyMR:
		return func(l Location) bool { return l.IsMR() }
	case ScopeMR:
		mrID := f.MRID
		return func(l Location) bool { return l.IsMR() && l.ID == mrID }
	default:
		return IncludeAll
	}
}

// Filters bounds one ledger query. Zero value means "everything".
//
// Product, batch, category and expiry filters are resolved to id sets
// against the reference cache before the transaction log is read; the
// location filter is applied per effect inside the fold.
type Filters struct {
	Location LocationFilter

	// ProductText substring-matches product name or code.
	ProductText string

	// BatchText substring-matches batch number.
	BatchText string

	// Category exact-matches the product category name.
	Category string

	// ExpiryFrom/ExpiryTo select batches expiring inside the inclusive range.
	ExpiryFrom *time.Time
	ExpiryTo   *time.Time
}

// HasProductFilter reports whether the product read is narrowed.
func (f Filters) HasProductFilter() bool {
	return f.ProductText != "" || f.Category != ""
}

// HasBatchFilter reports whether the batch read is narrowed beyond the
// product restriction.
func (f Filters) HasBatchFilter() bool {
	return f.BatchText != "" || f.ExpiryFrom != nil || f.ExpiryTo != nil
}
