package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/dataprocessing"
	"salesdash/pkg/contracts/domain"
)

func sampleOrder() domain.Order {
	return domain.Order{
		OrderID:       "O-1",
		CustomerID:    "C-1",
		OrderDate:     time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC),
		Quantity:      2,
		OrderPrice:    19.99,
		TotalAmount:   39.98,
		Age:           31,
		Gender:        "Female",
		PaymentMethod: "Credit Card",
		Category:      "Electronics",
		Subcategory:   "Phones",
		ProductName:   "Alpha Phone",
		Country:       "Germany",
		Month:         6,
		Year:          2024,
		DayOfWeek:     "Saturday",
		Hour:          14,
		AgeGroup:      "25-34",
	}
}

func TestHeaders(t *testing.T) {
	headers := Headers()
	require.Len(t, headers, 18)

	assert.Equal(t, []string{
		"order_id", "customer_id", "order_date", "quantity", "order_price",
		"total_amount", "age", "gender", "payment_method", "category",
		"subcategory", "product_name", "country",
	}, headers[:13])
	assert.Equal(t, []string{"month", "year", "day_of_week", "hour", "age_group"}, headers[13:])
}

func TestRow(t *testing.T) {
	row := Row(sampleOrder())
	require.Len(t, row, len(Headers()))

	assert.Equal(t, "O-1", row[0])
	assert.Equal(t, "2024-06-15 14:30:00", row[2])
	assert.Equal(t, "2", row[3])
	assert.Equal(t, "19.99", row[4])
	assert.Equal(t, "39.98", row[5])
	assert.Equal(t, "31", row[6])
	assert.Equal(t, "6", row[13])
	assert.Equal(t, "2024", row[14])
	assert.Equal(t, "Saturday", row[15])
	assert.Equal(t, "14", row[16])
	assert.Equal(t, "25-34", row[17])
}

func TestWriteOrders(t *testing.T) {
	var buf bytes.Buffer
	err := WriteOrders(&buf, []domain.Order{sampleOrder()})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Headers(), records[0])
	assert.Equal(t, Row(sampleOrder()), records[1])
}

func TestWriteOrders_EmptyWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrders(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, Headers(), records[0])
}

func TestCSVWriter_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "orders.csv")
	w := &CSVWriter{}
	require.NoError(t, w.WriteFile(path, []domain.Order{sampleOrder()}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestCSVWriter_BOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	w := &CSVWriter{BOMPrefix: true}
	require.NoError(t, w.WriteFile(path, []domain.Order{sampleOrder()}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
}

// An exported file must reload through the cleaning pipeline without losing
// records or changing values.
func TestExportReloadRoundTrip(t *testing.T) {
	orders := []domain.Order{sampleOrder()}
	path := filepath.Join(t.TempDir(), "orders.csv")
	w := &CSVWriter{}
	require.NoError(t, w.WriteFile(path, orders))

	ds, report, err := dataprocessing.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.RowsOut)
	assert.Zero(t, report.MissingDropped)
	assert.Zero(t, report.MalformedDropped)

	require.Len(t, ds.Orders, 1)
	got := ds.Orders[0]
	assert.Equal(t, orders[0], got)
}
