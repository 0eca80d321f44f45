package dataprocessing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSV_NormalizesHeaders(t *testing.T) {
	csv := "Order ID,CUSTOMER_ID,order_date,quantity,order_price,total_amount,age,gender,payment_method,category,subcategory,product_name,country\n" +
		"O-1,C-1,2024-01-01,1,5,5,30,f,cash,cat,sub,prod,de\n"

	table, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 0, table.Col("order_id"))
	assert.Equal(t, 1, table.Col("customer_id"))
	assert.Equal(t, -1, table.Col("nonexistent"))
	require.NoError(t, table.verifyColumns())
}

func TestParseCSV_PadsShortRows(t *testing.T) {
	csv := "a,b,c\n1,2\n1,2,3\n"

	table, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"1", "2", ""}, table.Rows[0])
	assert.Equal(t, []string{"1", "2", "3"}, table.Rows[1])
}

func TestParseFile_MissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte("order_id,customer_id\nO-1,C-1\n"), 0o644))

	_, err := ParseFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataLoad)
	assert.Contains(t, err.Error(), "order_date")
}

func TestParseFile_MissingFile(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestParseFile_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	header := []interface{}{
		"order_id", "customer_id", "order_date", "quantity", "order_price",
		"total_amount", "age", "gender", "payment_method", "category",
		"subcategory", "product_name", "country",
	}
	row := []interface{}{
		"O-1", "C-1", "2024-01-01 10:00:00", "2", "5.00",
		"10.00", "30", "female", "cash", "electronics",
		"phones", "alpha phone", "germany",
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &row))
	require.NoError(t, f.SaveAs(path))

	ds, report, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.RowsOut)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "O-1", ds.Orders[0].OrderID)
	assert.Equal(t, "Electronics", ds.Orders[0].Category)
}

func TestLoad_EndToEnd(t *testing.T) {
	csv := "order_id,customer_id,order_date,quantity,order_price,total_amount,age,gender,payment_method,category,subcategory,product_name,country\n" +
		"O-1,C-1,2024-01-01 10:00:00,1,5,5,30,female,cash,cat,sub,prod,de\n" +
		"O-2,C-2,2024-01-01 11:00:00,1,?,5,30,male,cash,cat,sub,prod,de\n"

	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	ds, report, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.RowsIn)
	assert.Equal(t, 1, report.RowsOut)
	assert.Equal(t, 1, ds.Len())
}
