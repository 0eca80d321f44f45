package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"salesdash/pkg/contracts/domain"
)

// Headers returns the exported column set: the source schema followed by
// the derived feature columns, matching (*domain.Dataset).Columns.
func Headers() []string {
	return (&domain.Dataset{}).Columns()
}

// Row renders one order as CSV cells in Headers order.
func Row(o domain.Order) []string {
	return []string{
		o.OrderID,
		o.CustomerID,
		o.OrderDate.Format(orderDateFormat),
		formatFloat(o.Quantity),
		formatFloat(o.OrderPrice),
		formatFloat(o.TotalAmount),
		formatFloat(o.Age),
		o.Gender,
		o.PaymentMethod,
		o.Category,
		o.Subcategory,
		o.ProductName,
		o.Country,
		formatInt(o.Month),
		formatInt(o.Year),
		o.DayOfWeek,
		formatInt(o.Hour),
		o.AgeGroup,
	}
}

// WriteOrders streams the orders as CSV, header first. Used by the export
// download endpoint, which hands it the HTTP response body.
func WriteOrders(w io.Writer, orders []domain.Order) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(Headers()); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, o := range orders {
		if err := writer.Write(Row(o)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVWriter writes order CSV files on disk.
type CSVWriter struct {
	// BOMPrefix adds a UTF-8 BOM so Excel recognizes the encoding.
	BOMPrefix bool
}

// WriteFile writes the orders to path, creating parent directories as
// needed.
func (w *CSVWriter) WriteFile(path string, orders []domain.Order) error {
	slog.Info("writing order CSV",
		slog.String("path", path),
		slog.Int("record_count", len(orders)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if w.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	return WriteOrders(file, orders)
}
