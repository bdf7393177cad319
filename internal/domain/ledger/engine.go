package ledger

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"pharmstock/internal/domain/catalogs/batch"
	"pharmstock/internal/domain/catalogs/product"
	"pharmstock/pkg/logger"
)

var tracer = otel.Tracer("pharmstock/ledger")

// Engine computes stock positions and summaries from the transaction log.
//
// Each query is a pure function of the log and the reference snapshot at
// read time. All I/O happens up front; the fold runs on in-memory slices,
// single-threaded per query. Independent queries may run concurrently
// without synchronization.
type Engine struct {
	products product.Reader
	batches  batch.Reader
	txlog    TransactionReader
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithNow overrides the clock, used by tests and as-of reporting.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a ledger engine over the given readers.
func NewEngine(products product.Reader, batches batch.Reader, txlog TransactionReader, opts ...Option) *Engine {
	e := &Engine{
		products: products,
		batches:  batches,
		txlog:    txlog,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ComputeStockPositions replays the filtered transaction log and returns the
// surviving positions joined with product/batch descriptive fields, in
// stable input order. An empty result with nil error means the filters
// matched nothing; a non-nil error means reference data or the log itself
// was unreadable.
func (e *Engine) ComputeStockPositions(ctx context.Context, f Filters) ([]StockPositionView, error) {
	ctx, span := tracer.Start(ctx, "ledger.ComputeStockPositions")
	defer span.End()

	ref, empty, err := LoadRefData(ctx, e.products, e.batches, f)
	if err != nil {
		return nil, fmt.Errorf("reference data: %w", err)
	}
	if empty {
		// Filter matched zero master rows: empty-but-successful, the
		// transaction log is not touched.
		return []StockPositionView{}, nil
	}

	txf := TransactionFilter{}
	if f.HasProductFilter() {
		txf.ProductIDs = ref.ProductIDs()
	}
	if f.HasProductFilter() || f.HasBatchFilter() {
		txf.BatchIDs = ref.BatchIDs()
	}

	txs, err := e.txlog.List(ctx, txf)
	if err != nil {
		return nil, fmt.Errorf("transaction log: %w", err)
	}

	span.SetAttributes(
		attribute.Int("ledger.transactions", len(txs)),
		attribute.String("ledger.location_scope", string(f.Location.Scope)),
	)

	include := f.Location.Predicate()
	acc := NewAccumulator()
	skippedRef := 0

	for _, tx := range txs {
		if _, _, ok := ref.Resolve(tx); !ok {
			// Stale or filtered-out master record. Deliberate policy: skip,
			// never fail, so archived products do not block the ledger.
			skippedRef++
			continue
		}
		if !tx.Type.Known() {
			logger.Warn(ctx, "unrecognized transaction type, skipping",
				"transaction_id", tx.ID,
				"transaction_type", tx.Type,
			)
			continue
		}
		effects := Classify(tx)
		if len(effects) == 0 {
			logger.Debug(ctx, "transaction produced no effects, skipping",
				"transaction_id", tx.ID,
				"transaction_type", tx.Type,
			)
			continue
		}
		acc.Apply(effects, include)
	}

	if skippedRef > 0 {
		logger.Debug(ctx, "skipped transactions with unresolvable references",
			"count", skippedRef,
		)
	}

	now := e.now()
	positions := acc.Positions()
	views := make([]StockPositionView, 0, len(positions))
	for _, pos := range positions {
		p := ref.Products[pos.Key.ProductID]
		b := ref.Batches[pos.Key.BatchID]

		minLevel := p.MinLevelFor(pos.Key.Kind == KindGodown)
		views = append(views, StockPositionView{
			ProductID:       p.ID,
			ProductName:     p.Name,
			ProductCode:     p.Code,
			GenericName:     p.GenericName,
			Category:        p.CategoryName(),
			BatchID:         b.ID,
			BatchNumber:     b.BatchNumber,
			ExpiryDate:      b.ExpiryDate,
			Location:        pos.Key.Location(),
			CurrentQuantity: pos.Quantity,
			CostPerUnit:     pos.CostPerUnit,
			TotalValue:      pos.TotalValue,
			MinStockLevel:   minLevel,
			StockStatus:     StockStatusOf(pos.Quantity, minLevel),
			ExpiryStatus:    ExpiryStatusOf(b.ExpiryDate, now),
		})
	}

	span.SetAttributes(attribute.Int("ledger.positions", len(views)))
	return views, nil
}

// ComputeSummary computes the rollup over the full filtered position set.
func (e *Engine) ComputeSummary(ctx context.Context, f Filters) (StockSummary, error) {
	ctx, span := tracer.Start(ctx, "ledger.ComputeSummary")
	defer span.End()

	views, err := e.ComputeStockPositions(ctx, f)
	if err != nil {
		return StockSummary{}, err
	}
	return Summarize(views), nil
}

// StockPage is one page of sorted positions with the full-set rollup.
type StockPage struct {
	Items      []StockPositionView `json:"items"`
	TotalCount int                 `json:"totalCount"`
	Limit      int                 `json:"limit"`
	Offset     int                 `json:"offset"`
	Summary    StockSummary        `json:"summary"`
}

// Query computes, summarizes, sorts and paginates in one pass. Sorting and
// pagination are pure post-processing over the full computed list; the
// summary always covers the whole set, not just the page.
func (e *Engine) Query(ctx context.Context, f Filters, spec SortSpec, page Page) (*StockPage, error) {
	views, err := e.ComputeStockPositions(ctx, f)
	if err != nil {
		return nil, err
	}

	summary := Summarize(views)
	SortViews(views, spec)
	items := Paginate(views, page)

	return &StockPage{
		Items:      items,
		TotalCount: len(views),
		Limit:      page.Limit,
		Offset:     page.Offset,
		Summary:    summary,
	}, nil
}
