package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pharmstock/internal/core/id"
	"pharmstock/internal/core/types"
	"pharmstock/internal/domain/ledger"
)

func TestWriteStockXLSX(t *testing.T) {
	rows := []ledger.StockPositionView{
		{
			ProductID:       id.New(),
			ProductName:     "Paracetamol 500mg",
			ProductCode:     "PARA-500",
			GenericName:     "Paracetamol",
			Category:        "Analgesic",
			BatchID:         id.New(),
			BatchNumber:     "PB-001",
			ExpiryDate:      time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC),
			Location:        ledger.Godown(),
			CurrentQuantity: 60,
			CostPerUnit:     types.MustMoney("5.0"),
			TotalValue:      types.MustMoney("300.0"),
			StockStatus:     ledger.StockGood,
			ExpiryStatus:    ledger.ExpiryGood,
		},
	}
	summary := ledger.Summarize(rows)

	var buf bytes.Buffer
	require.NoError(t, WriteStockXLSX(&buf, rows, summary))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Stock Positions", "A1")
	require.NoError(t, err)
	require.Equal(t, "Product", header)

	name, err := f.GetCellValue("Stock Positions", "A2")
	require.NoError(t, err)
	require.Equal(t, "Paracetamol 500mg", name)

	loc, err := f.GetCellValue("Stock Positions", "G2")
	require.NoError(t, err)
	require.Equal(t, "GODOWN", loc)
}

func TestWriteStockXLSX_EmptySet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStockXLSX(&buf, nil, ledger.StockSummary{TotalValue: types.ZeroMoney()}))
	require.NotZero(t, buf.Len())
}
