package dto

import (
	"testing"

	"pharmstock/internal/domain/ledger"
)

func TestStockQueryRequest_Filters(t *testing.T) {
	tests := []struct {
		name      string
		req       StockQueryRequest
		wantScope ledger.LocationScope
		wantMR    string
		wantErr   bool
	}{
		{"default is all", StockQueryRequest{}, ledger.ScopeAll, "", false},
		{"explicit all", StockQueryRequest{Location: "ALL"}, ledger.ScopeAll, "", false},
		{"godown", StockQueryRequest{Location: "GODOWN"}, ledger.ScopeGodown, "", false},
		{"any MR", StockQueryRequest{Location: "MR"}, ledger.ScopeAnyMR, "", false},
		{"specific MR", StockQueryRequest{Location: "MR", MRID: "mr-7"}, ledger.ScopeMR, "mr-7", false},
		{"unknown location", StockQueryRequest{Location: "WAREHOUSE_2"}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.req.Filters()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.Location.Scope != tt.wantScope {
				t.Errorf("scope: want %s, got %s", tt.wantScope, f.Location.Scope)
			}
			if f.Location.MRID != tt.wantMR {
				t.Errorf("mr id: want %q, got %q", tt.wantMR, f.Location.MRID)
			}
		})
	}
}

func TestStockQueryRequest_Sort(t *testing.T) {
	spec, err := StockQueryRequest{SortBy: "expiry_date", SortOrder: "desc"}.Sort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Field != ledger.SortExpiryDate || !spec.Desc {
		t.Errorf("unexpected spec: %+v", spec)
	}

	if _, err := (StockQueryRequest{SortBy: "bogus"}).Sort(); err == nil {
		t.Error("expected error for unknown sort field")
	}
}

func TestStockQueryRequest_PageDefaults(t *testing.T) {
	page := StockQueryRequest{}.Page()
	if page.Limit != 50 || page.Offset != 0 {
		t.Errorf("unexpected defaults: %+v", page)
	}

	page = StockQueryRequest{Limit: 10, Offset: 30}.Page()
	if page.Limit != 10 || page.Offset != 30 {
		t.Errorf("explicit values lost: %+v", page)
	}
}
