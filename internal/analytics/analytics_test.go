package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/pkg/contracts/domain"
)

func order(id, customer string, date time.Time, amount float64) domain.Order {
	return domain.Order{
		OrderID:     id,
		CustomerID:  customer,
		OrderDate:   date,
		TotalAmount: amount,
	}
}

func TestSummary(t *testing.T) {
	orders := []domain.Order{
		order("O-1", "C-1", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), 10),
		order("O-2", "C-2", time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC), 20),
		order("O-3", "C-1", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), 30),
	}

	s := Summary(orders)
	assert.InDelta(t, 60.0, s.TotalRevenue, 1e-9)
	assert.Equal(t, 3, s.TotalOrders)
	assert.InDelta(t, 20.0, s.AverageOrderValue, 1e-9)
	assert.Equal(t, 2, s.TotalCustomers)
}

func TestSummary_Empty(t *testing.T) {
	s := Summary(nil)
	assert.Zero(t, s.TotalRevenue)
	assert.Zero(t, s.TotalOrders)
	assert.Zero(t, s.AverageOrderValue)
	assert.Zero(t, s.TotalCustomers)
}

func TestSummary_DistinctOrderIDs(t *testing.T) {
	// Two records sharing an order ID count as one order
	orders := []domain.Order{
		order("O-1", "C-1", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), 10),
		order("O-1", "C-1", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), 20),
	}

	s := Summary(orders)
	assert.Equal(t, 1, s.TotalOrders)
	assert.InDelta(t, 30.0, s.TotalRevenue, 1e-9)
}

func TestSalesOverTime(t *testing.T) {
	orders := []domain.Order{
		order("O-1", "C-1", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), 30),
		order("O-2", "C-2", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), 10),
		order("O-3", "C-1", time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC), 20),
	}

	daily := SalesOverTime(orders)
	require.Len(t, daily, 2)

	// Ascending by date regardless of input order
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), daily[0].Date)
	assert.InDelta(t, 30.0, daily[0].TotalAmount, 1e-9)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), daily[1].Date)
	assert.InDelta(t, 30.0, daily[1].TotalAmount, 1e-9)
}

func TestTopProducts(t *testing.T) {
	var orders []domain.Order
	for i := 1; i <= 12; i++ {
		o := order(fmt.Sprintf("O-%d", i), "C-1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), float64(i))
		o.ProductName = fmt.Sprintf("Product %d", i)
		o.Quantity = 1
		orders = append(orders, o)
	}

	top := TopProducts(orders)
	require.Len(t, top, TopProductsLimit)

	// Highest revenue first
	assert.Equal(t, "Product 12", top[0].ProductName)
	assert.InDelta(t, 12.0, top[0].TotalAmount, 1e-9)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].TotalAmount, top[i].TotalAmount)
	}
}

func TestTopProducts_StableTies(t *testing.T) {
	mk := func(id, product string) domain.Order {
		o := order(id, "C-1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 10)
		o.ProductName = product
		return o
	}

	top := TopProducts([]domain.Order{mk("O-1", "Alpha"), mk("O-2", "Beta"), mk("O-3", "Gamma")})
	require.Len(t, top, 3)
	// Equal revenue keeps first-appearance order
	assert.Equal(t, "Alpha", top[0].ProductName)
	assert.Equal(t, "Beta", top[1].ProductName)
	assert.Equal(t, "Gamma", top[2].ProductName)
}

func TestSalesByDayOfWeek_Order(t *testing.T) {
	mk := func(id, dow string, amount float64) domain.Order {
		o := order(id, "C-1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), amount)
		o.DayOfWeek = dow
		return o
	}

	rows := SalesByDayOfWeek([]domain.Order{
		mk("O-1", "Sunday", 5),
		mk("O-2", "Monday", 10),
		mk("O-3", "Wednesday", 15),
	})

	// Monday-first order, absent days skipped
	require.Len(t, rows, 3)
	assert.Equal(t, "Monday", rows[0].DayOfWeek)
	assert.Equal(t, "Wednesday", rows[1].DayOfWeek)
	assert.Equal(t, "Sunday", rows[2].DayOfWeek)
}

func TestAgeGroupDistribution_BinOrder(t *testing.T) {
	mk := func(id, group string) domain.Order {
		o := order(id, "C-1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 1)
		o.AgeGroup = group
		return o
	}

	rows := AgeGroupDistribution([]domain.Order{
		mk("O-1", "65+"),
		mk("O-2", "18-24"),
		mk("O-3", "65+"),
	})

	require.Len(t, rows, 2)
	assert.Equal(t, domain.GroupCount{Name: "18-24", Count: 1}, rows[0])
	assert.Equal(t, domain.GroupCount{Name: "65+", Count: 2}, rows[1])
}

func TestGroupDistributions(t *testing.T) {
	mk := func(gender, method string) domain.Order {
		o := order("O", "C", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 1)
		o.Gender = gender
		o.PaymentMethod = method
		return o
	}

	orders := []domain.Order{
		mk("Female", "Cash"),
		mk("Male", "Cash"),
		mk("Female", "Paypal"),
	}

	genders := GenderDistribution(orders)
	require.Len(t, genders, 2)
	assert.Equal(t, domain.GroupCount{Name: "Female", Count: 2}, genders[0])
	assert.Equal(t, domain.GroupCount{Name: "Male", Count: 1}, genders[1])

	methods := PaymentMethodDistribution(orders)
	require.Len(t, methods, 2)
	assert.Equal(t, domain.GroupCount{Name: "Cash", Count: 2}, methods[0])
}

func TestSalesByCategory_FirstSeenOrder(t *testing.T) {
	mk := func(cat string, amount float64) domain.Order {
		o := order("O", "C", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), amount)
		o.Category = cat
		return o
	}

	rows := SalesByCategory([]domain.Order{
		mk("Clothing", 10),
		mk("Electronics", 20),
		mk("Clothing", 5),
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "Clothing", rows[0].Name)
	assert.InDelta(t, 15.0, rows[0].TotalAmount, 1e-9)
	assert.Equal(t, "Electronics", rows[1].Name)
}

func TestTables_EmptyInput(t *testing.T) {
	tables := Tables(nil)
	assert.Zero(t, tables.RecordCount)
	assert.Empty(t, tables.SalesOverTime)
	assert.Empty(t, tables.TopProducts)
	assert.Zero(t, tables.Summary.TotalOrders)
}

func TestTables_Full(t *testing.T) {
	o1 := order("O-1", "C-1", time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), 10)
	o1.Category, o1.Subcategory = "Electronics", "Phones"
	o1.ProductName, o1.Quantity = "Alpha Phone", 1
	o1.DayOfWeek, o1.AgeGroup = "Monday", "25-34"
	o1.Gender, o1.PaymentMethod, o1.Country = "Female", "Cash", "Germany"

	tables := Tables([]domain.Order{o1})
	assert.Equal(t, 1, tables.RecordCount)
	assert.Len(t, tables.SalesOverTime, 1)
	assert.Len(t, tables.SalesByCategory, 1)
	assert.Len(t, tables.SalesBySubcategory, 1)
	assert.Len(t, tables.TopProducts, 1)
	assert.Len(t, tables.SalesByDayOfWeek, 1)
	assert.Len(t, tables.AgeGroups, 1)
	assert.Len(t, tables.Genders, 1)
	assert.Len(t, tables.PaymentMethods, 1)
	assert.Len(t, tables.SalesByCountry, 1)
}
