package export

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Zhandos-hub/Kaspi-Merchant-Product-Scraper/internal/domain"
)

var columns = []string{"Title", "SKU", "Price", "Link", "Reviews"}

// Filename is the deterministic output name for a merchant's records.
func Filename(merchantID, format string) string {
	return fmt.Sprintf("kaspi_merchant_%s.%s", merchantID, format)
}

// ToCSV writes the records to path in first-seen order, UTF-8 BOM
// first so spreadsheet apps pick up the encoding.
func ToCSV(records []domain.ProductRecord, path string) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to export")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	file.WriteString("﻿")

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range records {
		if err := writer.Write([]string{
			r.Title,
			r.SKU,
			strconv.Itoa(r.Price),
			r.Link,
			strconv.Itoa(r.Reviews),
		}); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.SKU, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to finish writing: %w", err)
	}

	slog.Info("CSV exported",
		"path", path,
		"records", len(records),
	)

	return nil
}
