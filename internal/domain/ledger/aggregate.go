package ledger

import (
	"sort"
)

// LocationPredicate decides whether an effect's location participates in the
// fold. It is applied per effect, not as a post-filter: a filtered-out
// location's quantity must never reach an included position. For a
// godown-only query the MR side of a dispatch is skipped entirely.
type LocationPredicate func(Location) bool

// IncludeAll admits every internal location.
func IncludeAll(Location) bool { return true }

// Accumulator folds classified effects into stock positions.
// It is local to one query invocation; no synchronization is needed.
type Accumulator struct {
	positions map[PositionKey]*StockPosition
	nextSeq   int
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{positions: make(map[PositionKey]*StockPosition)}
}

// Apply folds all effects of one transaction. Effects from the same
// transaction must arrive in a single call so a dual-effect record is
// applied as a unit, never interleaved with another transaction's effects.
func (a *Accumulator) Apply(effects []Effect, include LocationPredicate) {
	for _, e := range effects {
		if !e.Location.Internal() {
			continue
		}
		if include != nil && !include(e.Location) {
			continue
		}

		key := PositionKey{
			ProductID:  e.ProductID,
			BatchID:    e.BatchID,
			Kind:       e.Location.Kind,
			LocationID: e.Location.ID,
		}
		pos, ok := a.positions[key]
		if !ok {
			pos = &StockPosition{Key: key, seq: a.nextSeq}
			a.nextSeq++
			a.positions[key] = pos
		}

		pos.Quantity += e.Delta
		if e.Inflow {
			pos.CostPerUnit = e.UnitCost
		}
	}
}

// Positions returns surviving positions in first-touch order.
// Positions with non-positive final quantity are dropped and total value is
// computed on the survivors.
func (a *Accumulator) Positions() []StockPosition {
	out := make([]StockPosition, 0, len(a.positions))
	for _, pos := range a.positions {
		if !pos.Quantity.IsPositive() {
			continue
		}
		p := *pos
		p.TotalValue = p.CostPerUnit.Mul(p.Quantity.Decimal())
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}
