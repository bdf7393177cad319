package ledger

import "strings"

// TransactionType tags a log record with its location-effect semantics.
// The taxonomy is closed: every supported type is either listed here exactly
// or belongs to one of the substring-matched families below. Anything else
// is skipped during classification.
type TransactionType string

const (
	TypeStockInGodown    TransactionType = "STOCK_IN_GODOWN"
	TypeDispatchToMR     TransactionType = "DISPATCH_TO_MR"
	TypeSaleDirectGodown TransactionType = "SALE_DIRECT_GODOWN"
	TypeSaleByMR         TransactionType = "SALE_BY_MR"

	// Return family: matched by the RETURN_TO_GODOWN substring.
	TypeReturnToGodownFromMR       TransactionType = "RETURN_TO_GODOWN_FROM_MR"
	TypeReturnToGodownFromCustomer TransactionType = "RETURN_TO_GODOWN_FROM_CUSTOMER"

	// Adjustment family: single-sided write-offs, location from suffix.
	TypeAdjustDamageGodown  TransactionType = "ADJUST_DAMAGE_GODOWN"
	TypeAdjustDamageMR      TransactionType = "ADJUST_DAMAGE_MR"
	TypeAdjustLossGodown    TransactionType = "ADJUST_LOSS_GODOWN"
	TypeAdjustLossMR        TransactionType = "ADJUST_LOSS_MR"
	TypeAdjustExpiredGodown TransactionType = "ADJUST_EXPIRED_GODOWN"
	TypeAdjustExpiredMR     TransactionType = "ADJUST_EXPIRED_MR"

	// Opening-stock family: single-sided inflows, location from suffix.
	TypeOpeningStockGodown TransactionType = "OPENING_STOCK_GODOWN"
	TypeOpeningStockMR     TransactionType = "OPENING_STOCK_MR"

	TypeReplacementFromGodown TransactionType = "REPLACEMENT_FROM_GODOWN"
	TypeReplacementFromMR     TransactionType = "REPLACEMENT_FROM_MR"
)

const (
	suffixGodown = "_GODOWN"
	suffixMR     = "_MR"
)

// IsReturnToGodown reports membership in the return family.
func (t TransactionType) IsReturnToGodown() bool {
	return strings.Contains(string(t), "RETURN_TO_GODOWN")
}

// IsAdjustment reports membership in the write-off family
// (damage, loss, expired).
func (t TransactionType) IsAdjustment() bool {
	s := string(t)
	return strings.HasPrefix(s, "ADJUST_DAMAGE_") ||
		strings.HasPrefix(s, "ADJUST_LOSS_") ||
		strings.HasPrefix(s, "ADJUST_EXPIRED_")
}

// IsOpeningStock reports membership in the opening-stock family.
func (t TransactionType) IsOpeningStock() bool {
	return strings.HasPrefix(string(t), "OPENING_STOCK_")
}

// AtGodown reports whether a suffix-routed type targets the godown.
func (t TransactionType) AtGodown() bool {
	return strings.HasSuffix(string(t), suffixGodown)
}

// AtMR reports whether a suffix-routed type targets an MR.
func (t TransactionType) AtMR() bool {
	return strings.HasSuffix(string(t), suffixMR)
}

// Known reports whether the type is covered by the taxonomy at all.
// Unknown types are skipped with a warning, never classified ad hoc.
func (t TransactionType) Known() bool {
	switch t {
	case TypeStockInGodown, TypeDispatchToMR, TypeSaleDirectGodown, TypeSaleByMR,
		TypeReplacementFromGodown, TypeReplacementFromMR:
		return true
	}
	return t.IsReturnToGodown() || t.IsAdjustment() || t.IsOpeningStock()
}
