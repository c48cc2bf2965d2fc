package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Zhandos-hub/Kaspi-Merchant-Product-Scraper/internal/domain"
)

const sheetName = "Sheet1"

// ToXLSX writes the records to path as a single-sheet workbook, header
// row first, rows in first-seen order.
func ToXLSX(records []domain.ProductRecord, path string) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to export")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		row := []interface{}{r.Title, r.SKU, r.Price, r.Link, r.Reviews}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.SKU, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Info("XLSX exported",
		"path", path,
		"records", len(records),
	)

	return nil
}
