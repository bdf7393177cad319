// Package export renders computed stock positions as downloadable reports.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"pharmstock/internal/domain/ledger"
)

const stockSheet = "Stock Positions"

var stockHeader = []string{
	"Product", "Code", "Generic Name", "Category", "Batch", "Expiry",
	"Location", "Quantity (strips)", "Cost / Strip", "Total Value",
	"Stock Status", "Expiry Status",
}

// WriteStockXLSX writes the full filtered position set as an xlsx workbook.
// Rows arrive already computed and sorted; this is presentation only.
func WriteStockXLSX(w io.Writer, rows []ledger.StockPositionView, summary ledger.StockSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet, err := f.NewSheet(stockSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(sheet)
	f.DeleteSheet("Sheet1")

	for col, title := range stockHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(stockSheet, cell, title); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, row := range rows {
		values := []any{
			row.ProductName,
			row.ProductCode,
			row.GenericName,
			row.Category,
			row.BatchNumber,
			row.ExpiryDate.Format("2006-01-02"),
			row.Location.String(),
			row.CurrentQuantity.Int64(),
			row.CostPerUnit.String(),
			row.TotalValue.String(),
			string(row.StockStatus),
			string(row.ExpiryStatus),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(stockSheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", i, err)
			}
		}
	}

	// Summary block below the data.
	summaryRows := [][2]any{
		{"Distinct products", summary.DistinctProducts},
		{"Distinct batches", summary.DistinctBatches},
		{"Total value", summary.TotalValue.String()},
		{"Low stock positions", summary.LowStockCount},
		{"Expiring within 30 days", summary.ExpiringSoonCount},
	}
	base := len(rows) + 3
	for i, sr := range summaryRows {
		labelCell, _ := excelize.CoordinatesToCellName(1, base+i)
		valueCell, _ := excelize.CoordinatesToCellName(2, base+i)
		if err := f.SetCellValue(stockSheet, labelCell, sr[0]); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		if err := f.SetCellValue(stockSheet, valueCell, sr[1]); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
