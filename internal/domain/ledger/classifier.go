package ledger

import (
	"pharmstock/internal/core/id"
	"pharmstock/internal/core/types"
)

// Effect is one signed quantity change at one location, produced by
// classifying a transaction. Dual-effect types (dispatch, return) yield two
// effects from a single record; they must be folded together, never split.
type Effect struct {
	ProductID id.ID
	BatchID   id.ID
	Location  Location

	// Delta is the signed quantity change in strips. The classifier assigns
	// the sign; the raw log sign is never used.
	Delta types.Quantity

	// UnitCost is the cost basis carried by the effect. Only inflow effects
	// update a position's cost.
	UnitCost types.Money

	Inflow bool
}

// Classify maps a transaction to its location effects.
//
// This is the single implementation of the transaction-type taxonomy; every
// query path consumes it. It returns nil when the record cannot be
// classified: either the type is unknown (caller should warn) or a role the
// type requires is missing (caller should skip quietly).
//
// The log's mixed sign convention is normalized here: direction comes from
// the type and the role, the stored quantity contributes only its magnitude.
func Classify(tx Transaction) []Effect {
	mag := tx.Quantity.Abs()
	if mag.IsZero() {
		return nil
	}

	in := func(loc Location) Effect {
		return Effect{
			ProductID: tx.ProductID,
			BatchID:   tx.BatchID,
			Location:  loc,
			Delta:     mag,
			UnitCost:  tx.UnitCost,
			Inflow:    true,
		}
	}
	out := func(loc Location) Effect {
		return Effect{
			ProductID: tx.ProductID,
			BatchID:   tx.BatchID,
			Location:  loc,
			Delta:     mag.Neg(),
			UnitCost:  tx.UnitCost,
		}
	}

	switch {
	case tx.Type == TypeStockInGodown:
		return []Effect{in(Godown())}

	case tx.Type == TypeDispatchToMR:
		// One record, two sides. Direction is derived from role, not sign:
		// the same magnitude leaves the godown and arrives at the MR.
		if tx.Destination == nil || !tx.Destination.IsMR() {
			return nil
		}
		return []Effect{
			out(Godown()),
			in(MR(tx.Destination.ID)),
		}

	case tx.Type == TypeSaleDirectGodown:
		return []Effect{out(Godown())}

	case tx.Type == TypeSaleByMR:
		if tx.Source == nil || !tx.Source.IsMR() {
			return nil
		}
		return []Effect{out(MR(tx.Source.ID))}

	case tx.Type.IsReturnToGodown():
		// Up to two effects from one record; both fire when both roles are
		// populated (MR returning stock), only the inflow fires for a
		// customer return.
		var effects []Effect
		if tx.Destination != nil && tx.Destination.IsGodown() {
			effects = append(effects, in(Godown()))
		}
		if tx.Source != nil && tx.Source.IsMR() {
			effects = append(effects, out(MR(tx.Source.ID)))
		}
		return effects

	case tx.Type.IsAdjustment():
		loc, ok := suffixLocation(tx)
		if !ok {
			return nil
		}
		return []Effect{out(loc)}

	case tx.Type.IsOpeningStock():
		loc, ok := suffixLocation(tx)
		if !ok {
			return nil
		}
		return []Effect{in(loc)}

	case tx.Type == TypeReplacementFromGodown:
		return []Effect{out(Godown())}

	case tx.Type == TypeReplacementFromMR:
		if tx.Source == nil || !tx.Source.IsMR() {
			return nil
		}
		return []Effect{out(MR(tx.Source.ID))}
	}

	// Unknown type: flag as unsupported rather than guess a convention.
	return nil
}

// suffixLocation resolves the target of a suffix-routed type
// (ADJUST_*_GODOWN / ADJUST_*_MR / OPENING_STOCK_*). The MR id comes from
// whichever role carries it; adjustments record the MR as source, opening
// stock as destination, and legacy rows are inconsistent about which.
func suffixLocation(tx Transaction) (Location, bool) {
	switch {
	case tx.Type.AtGodown():
		return Godown(), true
	case tx.Type.AtMR():
		if tx.Source != nil && tx.Source.IsMR() {
			return MR(tx.Source.ID), true
		}
		if tx.Destination != nil && tx.Destination.IsMR() {
			return MR(tx.Destination.ID), true
		}
	}
	return Location{}, false
}
