// Package export renders record lists as xlsx workbooks for download.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/obsidiancapital/investor-portal/internal/aggregate"
	"github.com/obsidiancapital/investor-portal/internal/domain/models"
)

const (
	reportsSheet = "Reports"
	salesSheet   = "Sales"
)

// WriteReports streams an xlsx workbook of the report list to w.
func WriteReports(w io.Writer, reports []models.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	rows := [][]any{{"ID", "Title", "Type", "Date", "Status", "Content"}}
	for _, r := range reports {
		rows = append(rows, []any{r.ID, r.Title, r.Type, r.Date, r.Status, r.Content})
	}

	if err := writeRows(f, reportsSheet, rows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteSales streams an xlsx workbook of the sale list to w, with a summary
// row of total profit at the bottom.
func WriteSales(w io.Writer, sales []models.SaleRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	rows := [][]any{{"ID", "Date", "GPU Model", "Purchase Price", "Resale Price", "Quantity", "Profit", "Margin %", "Customer", "Notes"}}
	for _, s := range sales {
		rows = append(rows, []any{s.ID, s.Date, s.GPUModel, s.PurchasePrice, s.ResalePrice, s.Quantity, s.Profit, s.ProfitMargin, s.Customer, s.Notes})
	}

	totalProfit := aggregate.Sum(sales, func(s models.SaleRecord) float64 { return s.Profit })
	rows = append(rows, []any{"", "", "", "", "", "Total", totalProfit, "", "", ""})

	if err := writeRows(f, salesSheet, rows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("row coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return nil
}
