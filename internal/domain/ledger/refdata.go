package ledger

import (
	"context"
	"fmt"

	"pharmstock/internal/core/id"
	"pharmstock/internal/domain/catalogs/batch"
	"pharmstock/internal/domain/catalogs/product"
)

// RefData is the per-query reference data cache: O(1) lookups of product and
// batch master records. It is scoped to a single query, never shared, so a
// concurrent write to master data cannot leak into a running computation.
type RefData struct {
	Products map[id.ID]product.Product
	Batches  map[id.ID]batch.Batch
}

// ProductIDs returns the cached product ids.
func (r *RefData) ProductIDs() []id.ID {
	ids := make([]id.ID, 0, len(r.Products))
	for pid := range r.Products {
		ids = append(ids, pid)
	}
	return ids
}

// BatchIDs returns the cached batch ids.
func (r *RefData) BatchIDs() []id.ID {
	ids := make([]id.ID, 0, len(r.Batches))
	for bid := range r.Batches {
		ids = append(ids, bid)
	}
	return ids
}

// Resolve looks up both master records for a transaction. A miss means the
// row is filtered out or its master record was deleted; either way the
// transaction is skipped, not failed.
func (r *RefData) Resolve(tx Transaction) (product.Product, batch.Batch, bool) {
	p, ok := r.Products[tx.ProductID]
	if !ok {
		return product.Product{}, batch.Batch{}, false
	}
	b, ok := r.Batches[tx.BatchID]
	if !ok {
		return product.Product{}, batch.Batch{}, false
	}
	return p, b, true
}

// LoadRefData performs the two bulk master-data reads for one query and
// builds the lookup maps.
//
// Any read failure is fatal to the query: classification needs both maps, so
// there is no partial-result mode. The returned bool is true when a narrowed
// read matched zero rows, in which case the query short-circuits to an empty
// result without touching the transaction log.
func LoadRefData(ctx context.Context, products product.Reader, batches batch.Reader, f Filters) (*RefData, bool, error) {
	prods, err := products.List(ctx, product.Filter{
		Text:     f.ProductText,
		Category: f.Category,
	})
	if err != nil {
		return nil, false, fmt.Errorf("load products: %w", err)
	}
	if f.HasProductFilter() && len(prods) == 0 {
		return nil, true, nil
	}

	bf := batch.Filter{
		Text:       f.BatchText,
		ExpiryFrom: f.ExpiryFrom,
		ExpiryTo:   f.ExpiryTo,
	}
	if f.HasProductFilter() {
		bf.ProductIDs = make([]id.ID, 0, len(prods))
		for _, p := range prods {
			bf.ProductIDs = append(bf.ProductIDs, p.ID)
		}
	}

	bats, err := batches.List(ctx, bf)
	if err != nil {
		return nil, false, fmt.Errorf("load batches: %w", err)
	}
	if (f.HasBatchFilter() || f.HasProductFilter()) && len(bats) == 0 {
		return nil, true, nil
	}

	ref := &RefData{
		Products: make(map[id.ID]product.Product, len(prods)),
		Batches:  make(map[id.ID]batch.Batch, len(bats)),
	}
	for _, p := range prods {
		ref.Products[p.ID] = p
	}
	for _, b := range bats {
		ref.Batches[b.ID] = b
	}
	return ref, false, nil
}
