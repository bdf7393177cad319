package ledger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pharmstock/internal/core/id"
	"pharmstock/internal/core/types"
	"pharmstock/internal/domain/catalogs/batch"
	"pharmstock/internal/domain/catalogs/product"
)

// --- In-memory readers mirroring repository filter semantics ---

type fakeProducts struct {
	items []product.Product
	err   error
}

func (f *fakeProducts) List(_ context.Context, flt product.Filter) ([]product.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []product.Product
	for _, p := range f.items {
		if flt.Text != "" {
			needle := strings.ToLower(flt.Text)
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.Code), needle) {
				continue
			}
		}
		if flt.Category != "" && p.CategoryName() != flt.Category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeBatches struct {
	items []batch.Batch
	err   error
}

func (f *fakeBatches) List(_ context.Context, flt batch.Filter) ([]batch.Batch, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []batch.Batch
	for _, b := range f.items {
		if flt.Text != "" && !strings.Contains(strings.ToLower(b.BatchNumber), strings.ToLower(flt.Text)) {
			continue
		}
		if len(flt.ProductIDs) > 0 && !containsID(flt.ProductIDs, b.ProductID) {
			continue
		}
		if flt.ExpiryFrom != nil && b.ExpiryDate.Before(*flt.ExpiryFrom) {
			continue
		}
		if flt.ExpiryTo != nil && b.ExpiryDate.After(*flt.ExpiryTo) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type fakeTxLog struct {
	items []Transaction
	err   error

	// lastFilter records the filter of the most recent read, and calls
	// counts reads, so tests can assert the log is not touched on
	// short-circuit.
	lastFilter TransactionFilter
	calls      int
}

func (f *fakeTxLog) List(_ context.Context, flt TransactionFilter) ([]Transaction, error) {
	f.calls++
	f.lastFilter = flt
	if f.err != nil {
		return nil, f.err
	}
	var out []Transaction
	for _, tx := range f.items {
		if len(flt.ProductIDs) > 0 && !containsID(flt.ProductIDs, tx.ProductID) {
			continue
		}
		if len(flt.BatchIDs) > 0 && !containsID(flt.BatchIDs, tx.BatchID) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func containsID(ids []id.ID, target id.ID) bool {
	for _, v := range ids {
		if v == target {
			return true
		}
	}
	return false
}

// --- Fixture ---

type fixture struct {
	engine *Engine
	txlog  *fakeTxLog

	paracetamol product.Product
	amoxicillin product.Product
	paraBatch   batch.Batch
	amoxBatch   batch.Batch
}

func newFixture(t *testing.T, now time.Time, txs []Transaction) *fixture {
	t.Helper()

	cat := "Analgesic"
	abCat := "Antibiotic"
	fx := &fixture{}
	fx.paracetamol = product.Product{
		ID: id.New(), Name: "Paracetamol 500mg", Code: "PARA-500",
		GenericName: "Paracetamol", Category: &cat,
		MinStockLevelGodown: 10, MinStockLevelMR: 5,
	}
	fx.amoxicillin = product.Product{
		ID: id.New(), Name: "Amoxicillin 250mg", Code: "AMOX-250",
		GenericName: "Amoxicillin", Category: &abCat,
		MinStockLevelGodown: 20, MinStockLevelMR: 8,
	}
	fx.paraBatch = batch.Batch{
		ID: id.New(), ProductID: fx.paracetamol.ID,
		BatchNumber: "PB-001", ExpiryDate: now.AddDate(1, 0, 0),
	}
	fx.amoxBatch = batch.Batch{
		ID: id.New(), ProductID: fx.amoxicillin.ID,
		BatchNumber: "AB-001", ExpiryDate: now.AddDate(0, 0, 10),
	}

	fx.txlog = &fakeTxLog{items: txs}
	fx.engine = NewEngine(
		&fakeProducts{items: []product.Product{fx.paracetamol, fx.amoxicillin}},
		&fakeBatches{items: []batch.Batch{fx.paraBatch, fx.amoxBatch}},
		fx.txlog,
		WithNow(func() time.Time { return now }),
	)
	return fx
}

// --- Tests ---

func TestEngine_DispatchScenario(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newFixture(t, now, nil)

	fx.txlog.items = []Transaction{
		{
			ID: id.New(), ProductID: fx.paracetamol.ID, BatchID: fx.paraBatch.ID,
			Type: TypeStockInGodown, Quantity: types.NewQuantity(100),
			UnitCost: types.MustMoney("5.0"), OccurredAt: now.AddDate(0, 0, -2),
		},
		{
			ID: id.New(), ProductID: fx.paracetamol.ID, BatchID: fx.paraBatch.ID,
			Type: TypeDispatchToMR, Quantity: types.NewQuantity(40),
			Source: locPtr(Godown()), Destination: locPtr(MR("mr-1")),
			UnitCost: types.MustMoney("5.0"), OccurredAt: now.AddDate(0, 0, -1),
		},
	}

	views, err := fx.engine.ComputeStockPositions(context.Background(), Filters{})
	require.NoError(t, err)
	require.Len(t, views, 2)

	byKind := map[LocationKind]StockPositionView{}
	for _, v := range views {
		byKind[v.Location.Kind] = v
	}

	godown := byKind[KindGodown]
	require.EqualValues(t, 60, godown.CurrentQuantity)
	require.True(t, godown.TotalValue.Equal(types.MustMoney("300.0")),
		"godown value: %s", godown.TotalValue)

	mr := byKind[KindMR]
	require.Equal(t, "mr-1", mr.Location.ID)
	require.EqualValues(t, 40, mr.CurrentQuantity)
	require.True(t, mr.TotalValue.Equal(types.MustMoney("200.0")),
		"mr value: %s", mr.TotalValue)
}

func TestEngine_OutputNeverContainsNonPositiveQuantities(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	fx := newFixture(t, now, nil)

	fx.txlog.items = []Transaction{
		{ID: id.New(), ProductID: fx.paracetamol.ID, BatchID: fx.paraBatch.ID,
			Type: TypeStockInGodown, Quantity: types.NewQuantity(10),
			UnitCost: types.MustMoney("1.0")},
		{ID: id.New(), ProductID: fx.paracetamol.ID, BatchID: fx.paraBatch.ID,
			Type: TypeSaleDirectGodown, Quantity: types.NewQuantity(10),
			UnitCost: types.MustMoney("1.0")},
		// Write-off without matching inflow leaves a negative balance.
		{ID: id.New(), ProductID: fx.amoxicillin.ID, BatchID: fx.amoxBatch.ID,
			Type: TypeAdjustLossGodown, Quantity: types.NewQuantity(5),
			UnitCost: types.MustMoney("1.0")},
	}

	views, err := fx.engine.ComputeStockPositions(context.Background(), Filters{})
	require.NoError(t, err)
	for _, v := range views {
		require.True(t, v.CurrentQuantity.IsPositive(),
			"non-positive quantity leaked: %+v", v)
	}
	require.Empty(t, views)
}

func TestEngine_LocationFilterIsolation(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	fx := newFixture(t, now, nil)

	fx.txlog.items = []Transaction{
		{ID: id.New(), ProductID: fx.paracetamol.ID, BatchID: fx.paraBatch.ID,
			Type: TypeStockInGodown, Quantity: types.NewQuantity(100),
			UnitCost: types.MustMoney("5.0")},
		{ID: id.New(), ProductID: fx.paracetamol.ID, BatchID: fx.paraBatch.ID,
			Type: TypeDispatchToMR, Quantity: types.NewQuantity(40),
			Source: locPtr(Godown()), Destination: locPtr(MR("mr-1")),
			UnitCost: types.MustMoney("5.0")},
	}

	views, err := fx.engine.ComputeStockPositions(context.Background(), Filters{
		Location: LocationFilter{Scope: ScopeGodown},
	})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, KindGodown, views[0].Location.Kind)
	require.EqualValues(t, 60, views[0].CurrentQuantity)

	// The specific-MR scope sees only that MR.
	views, err = fx.engine.ComputeStockPositions(context.Background(), Filters{
		Location: LocationFilter{Scope: ScopeMR, MRID: "mr-1"},
	})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "mr-1", views[0].Location.ID)
	require.EqualValues(t, 40, views[0].CurrentQuantity)
}

func TestEngine_FilterShortCircuitSkipsTransactionLog(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	fx := newFixture(t, now, []Transaction{
		{ID: id.New(), ProductID: id.New(), BatchID: id.New(),
			Type: TypeStockInGodown, Quantity: types.NewQuantity(1),
			UnitCost: types.MustMoney("1.0")},
	})

	views, err := fx.engine.ComputeStockPositions(context.Background(), Filters{
		ProductText: "no-such-product",
	})
	require.NoError(t, err, "zero-match filter is a result, not a failure")
	require.Empty(t, views)
	require.Zero(t, fx.txlog.calls, "transaction log must not be read on short-circuit")
}

func TestEngine_ProductFilterBoundsTransactionRead(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	fx := newFixture(t, now, nil)

	fx.txlog.items = []Transaction{
		{ID: id.New(), ProductID: fx.paracetamol.ID, BatchID: fx.paraBatch.ID,
			Type: TypeStockInGodown, Quantity: types.NewQuantity(10),
			UnitCost: types.MustMoney("5.0")},
		{ID: id.New(), ProductID: fx.amoxicillin.ID, BatchID: fx.amoxBatch.ID,
			Type: TypeStockInGodown, Quantity: types.NewQuantity(20),
			UnitCost: types.MustMoney("3.0")},
	}

	views, err := fx.engine.ComputeStockPositions(context.Background(), Filters{
		ProductText: "para",
	})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, fx.paracetamol.ID, views[0].ProductID)
	require.Equal(t, []id.ID{fx.paracetamol.ID}, fx.txlog.lastFilter.ProductIDs)

	// Category is an exact match.
	views, err = fx.engine.ComputeStockPositions(context.Background(), Filters{
		Category: "Antibiotic",
	})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, fx.amoxicillin.ID, views[0].ProductID)
}

func TestEngine_SkipsUnresolvableAndUnknownTransactions(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	fx := newFixture(t, now, nil)

	fx.txlog.items = []Transaction{
		{ID: id.New(), ProductID: fx.paracetamol.ID, BatchID: fx.paraBatch.ID,
			Type: TypeStockInGodown, Quantity: types.NewQuantity(10),
			UnitCost: types.MustMoney("5.0")},
		// Deleted master record: skipped, not an error.
		{ID: id.New(), ProductID: id.New(), BatchID: id.New(),
			Type: TypeStockInGodown, Quantity: types.NewQuantity(99),
			UnitCost: types.MustMoney("5.0")},
		// Unknown type: skipped, not an error.
		{ID: id.New(), ProductID: fx.paracetamol.ID, BatchID: fx.paraBatch.ID,
			Type: TransactionType("LEGACY_MIGRATION"), Quantity: types.NewQuantity(77),
			UnitCost: types.MustMoney("5.0")},
	}

	views, err := fx.engine.ComputeStockPositions(context.Background(), Filters{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.EqualValues(t, 10, views[0].CurrentQuantity)
}

func TestEngine_ReferenceReadFailureIsFatal(t *testing.T) {
	boom := errors.New("connection reset")
	engine := NewEngine(
		&fakeProducts{err: boom},
		&fakeBatches{},
		&fakeTxLog{},
	)

	_, err := engine.ComputeStockPositions(context.Background(), Filters{})
	require.ErrorIs(t, err, boom)

	engine = NewEngine(
		&fakeProducts{},
		&fakeBatches{err: boom},
		&fakeTxLog{},
	)
	_, err = engine.ComputeSummary(context.Background(), Filters{})
	require.ErrorIs(t, err, boom)
}

func TestEngine_ExpiryRangeFilter(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	fx := newFixture(t, now, nil)

	fx.txlog.items = []Transaction{
		{ID: id.New(), ProductID: fx.paracetamol.ID, BatchID: fx.paraBatch.ID,
			Type: TypeStockInGodown, Quantity: types.NewQuantity(10),
			UnitCost: types.MustMoney("5.0")},
		{ID: id.New(), ProductID: fx.amoxicillin.ID, BatchID: fx.amoxBatch.ID,
			Type: TypeStockInGodown, Quantity: types.NewQuantity(20),
			UnitCost: types.MustMoney("3.0")},
	}

	// Only the amoxicillin batch expires within the next month.
	from := now
	to := now.AddDate(0, 1, 0)
	views, err := fx.engine.ComputeStockPositions(context.Background(), Filters{
		ExpiryFrom: &from,
		ExpiryTo:   &to,
	})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, fx.amoxBatch.ID, views[0].BatchID)
	require.Equal(t, ExpirySoon, views[0].ExpiryStatus)
}

func TestEngine_QueryPaginatesAndSummarizesFullSet(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	fx := newFixture(t, now, nil)

	fx.txlog.items = []Transaction{
		{ID: id.New(), ProductID: fx.paracetamol.ID, BatchID: fx.paraBatch.ID,
			Type: TypeStockInGodown, Quantity: types.NewQuantity(100),
			UnitCost: types.MustMoney("5.0")},
		{ID: id.New(), ProductID: fx.amoxicillin.ID, BatchID: fx.amoxBatch.ID,
			Type: TypeStockInGodown, Quantity: types.NewQuantity(4),
			UnitCost: types.MustMoney("3.0")},
		{ID: id.New(), ProductID: fx.paracetamol.ID, BatchID: fx.paraBatch.ID,
			Type: TypeDispatchToMR, Quantity: types.NewQuantity(30),
			Source: locPtr(Godown()), Destination: locPtr(MR("mr-1")),
			UnitCost: types.MustMoney("5.0")},
	}

	page, err := fx.engine.Query(context.Background(), Filters{},
		SortSpec{Field: SortQuantity, Desc: true}, Page{Limit: 2, Offset: 0})
	require.NoError(t, err)

	require.Equal(t, 3, page.TotalCount)
	require.Len(t, page.Items, 2)
	require.EqualValues(t, 70, page.Items[0].CurrentQuantity)
	require.EqualValues(t, 30, page.Items[1].CurrentQuantity)

	// Summary covers the whole filtered set, not the page: the amoxicillin
	// position (qty 4 <= min 20, expiring in 10 days) is off-page but counted.
	require.Equal(t, 2, page.Summary.DistinctProducts)
	require.Equal(t, 2, page.Summary.DistinctBatches)
	require.Equal(t, 1, page.Summary.LowStockCount)
	require.Equal(t, 1, page.Summary.ExpiringSoonCount)
	require.True(t, page.Summary.TotalValue.Equal(types.MustMoney("512.0")),
		"total value: %s", page.Summary.TotalValue)
}
