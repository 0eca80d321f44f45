package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"salesdash/pkg/contracts/domain"
)

// ErrDataLoad marks fatal load failures: unreadable source, unparseable
// table structure, or missing required columns. Row-level problems never
// produce this error; those rows are dropped during cleaning instead.
var ErrDataLoad = errors.New("data load failed")

// RawTable is the untyped tabular form of the source file, header plus
// string cells, before any cleaning pass has run.
type RawTable struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// Col returns the position of a column, or -1 when absent.
func (t *RawTable) Col(name string) int {
	if idx, ok := t.index[name]; ok {
		return idx
	}
	return -1
}

// buildIndex normalizes header names and records their positions. Header
// matching is case-insensitive with surrounding whitespace ignored and
// internal spaces collapsed to underscores.
func (t *RawTable) buildIndex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		t.index[normalizeHeader(col)] = i
	}
}

func normalizeHeader(h string) string {
	h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	h = strings.ToLower(h)
	return strings.ReplaceAll(h, " ", "_")
}

// verifyColumns checks the required column set is present.
func (t *RawTable) verifyColumns() error {
	var missing []string
	for _, col := range domain.RequiredColumns {
		if t.Col(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required columns: %s", ErrDataLoad, strings.Join(missing, ", "))
	}
	return nil
}

// Load reads the source file, verifies its schema and runs the full
// cleaning pipeline. The source may be a delimited text file or an Excel
// workbook; the format is picked by file extension.
func Load(path string, opts *CleanOptions) (*domain.Dataset, *CleanReport, error) {
	table, err := ParseFile(path)
	if err != nil {
		return nil, nil, err
	}

	ds, report := Clean(table, opts)

	slog.Info("dataset loaded",
		slog.String("source", path),
		slog.Int("rows_in", report.RowsIn),
		slog.Int("rows_out", report.RowsOut),
		slog.Int("rows_dropped", report.Dropped()))

	return ds, report, nil
}

// ParseFile reads the source file into a raw table and verifies the
// required column set.
func ParseFile(path string) (*RawTable, error) {
	var (
		table *RawTable
		err   error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		table, err = parseWorkbook(path)
	default:
		f, openErr := os.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataLoad, openErr)
		}
		defer f.Close()
		table, err = ParseCSV(f)
	}
	if err != nil {
		return nil, err
	}

	if err := table.verifyColumns(); err != nil {
		return nil, err
	}
	return table, nil
}

// ParseCSV reads comma-delimited text into a raw table. Short rows are
// padded with empty cells so every row aligns with the header; the strict
// row-elimination pass drops them later.
func ParseCSV(r io.Reader) (*RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: source contains no header row", ErrDataLoad)
	}

	table := &RawTable{Columns: records[0]}
	table.buildIndex()

	for _, row := range records[1:] {
		table.Rows = append(table.Rows, padRow(row, len(table.Columns)))
	}
	return table, nil
}

// parseWorkbook reads the first sheet of an Excel workbook.
func parseWorkbook(path string) (*RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrDataLoad)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q contains no header row", ErrDataLoad, sheets[0])
	}

	table := &RawTable{Columns: rows[0]}
	table.buildIndex()

	for _, row := range rows[1:] {
		table.Rows = append(table.Rows, padRow(row, len(table.Columns)))
	}
	return table, nil
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row[:width]
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
