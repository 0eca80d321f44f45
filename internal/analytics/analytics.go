// Package analytics derives the chart-ready tables from a filtered order
// subset. Every function is a pure transform: an empty input yields an
// empty (zero-length) table, never an error.
package analytics

import (
	"sort"

	"salesdash/pkg/contracts/domain"
)

// TopProductsLimit is the row cap of the top-products chart.
const TopProductsLimit = 10

// Summary computes the headline metrics. Average order value is defined as
// zero when there are no orders.
func Summary(orders []domain.Order) domain.SummaryMetrics {
	var m domain.SummaryMetrics
	orderIDs := make(map[string]struct{})
	customerIDs := make(map[string]struct{})

	for _, o := range orders {
		m.TotalRevenue += o.TotalAmount
		orderIDs[o.OrderID] = struct{}{}
		customerIDs[o.CustomerID] = struct{}{}
	}

	m.TotalOrders = len(orderIDs)
	m.TotalCustomers = len(customerIDs)
	if m.TotalOrders > 0 {
		m.AverageOrderValue = m.TotalRevenue / float64(m.TotalOrders)
	}
	return m
}

// SalesOverTime sums total_amount per calendar day, ascending by date.
func SalesOverTime(orders []domain.Order) []domain.DailySales {
	totals := make(map[int64]float64)
	for _, o := range orders {
		totals[o.Date().Unix()] += o.TotalAmount
	}

	out := make([]domain.DailySales, 0, len(totals))
	for _, o := range orders {
		day := o.Date()
		key := day.Unix()
		if total, ok := totals[key]; ok {
			out = append(out, domain.DailySales{Date: day, TotalAmount: total})
			delete(totals, key)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// SalesByCategory sums total_amount per category. No ordering is imposed
// beyond first-seen group order; the presentation layer sorts as needed.
func SalesByCategory(orders []domain.Order) []domain.GroupSales {
	return groupSum(orders, func(o domain.Order) string { return o.Category })
}

// SalesBySubcategory sums total_amount per subcategory.
func SalesBySubcategory(orders []domain.Order) []domain.GroupSales {
	return groupSum(orders, func(o domain.Order) string { return o.Subcategory })
}

// SalesByCountry sums total_amount per country. Country names carry the
// cleaned dataset's title-cased spelling, which the map rendering on the
// presentation side resolves against its geographic naming scheme.
func SalesByCountry(orders []domain.Order) []domain.GroupSales {
	return groupSum(orders, func(o domain.Order) string { return o.Country })
}

// TopProducts sums quantity and total_amount per product, sorts descending
// by total_amount and keeps the first TopProductsLimit rows. The sort is
// stable, so ties keep first-seen group order.
func TopProducts(orders []domain.Order) []domain.ProductSales {
	index := make(map[string]int)
	out := make([]domain.ProductSales, 0)
	for _, o := range orders {
		i, ok := index[o.ProductName]
		if !ok {
			i = len(out)
			index[o.ProductName] = i
			out = append(out, domain.ProductSales{ProductName: o.ProductName})
		}
		out[i].Quantity += o.Quantity
		out[i].TotalAmount += o.TotalAmount
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalAmount > out[j].TotalAmount })
	if len(out) > TopProductsLimit {
		out = out[:TopProductsLimit]
	}
	return out
}

// SalesByDayOfWeek sums total_amount per weekday, emitting rows in the
// fixed Monday→Sunday order. Weekdays with no matching records are skipped.
func SalesByDayOfWeek(orders []domain.Order) []domain.WeekdaySales {
	totals := make(map[string]float64)
	for _, o := range orders {
		totals[o.DayOfWeek] += o.TotalAmount
	}

	out := make([]domain.WeekdaySales, 0, len(totals))
	for _, day := range domain.Weekdays {
		if total, ok := totals[day]; ok {
			out = append(out, domain.WeekdaySales{DayOfWeek: day, TotalAmount: total})
		}
	}
	return out
}

// AgeGroupDistribution counts records per age group in ascending bin order.
func AgeGroupDistribution(orders []domain.Order) []domain.GroupCount {
	counts := make(map[string]int)
	for _, o := range orders {
		counts[o.AgeGroup]++
	}

	out := make([]domain.GroupCount, 0, len(counts))
	for _, g := range domain.AgeGroups {
		if n, ok := counts[g]; ok {
			out = append(out, domain.GroupCount{Name: g, Count: n})
		}
	}
	return out
}

// GenderDistribution counts records per gender.
func GenderDistribution(orders []domain.Order) []domain.GroupCount {
	return groupCount(orders, func(o domain.Order) string { return o.Gender })
}

// PaymentMethodDistribution counts records per payment method.
func PaymentMethodDistribution(orders []domain.Order) []domain.GroupCount {
	return groupCount(orders, func(o domain.Order) string { return o.PaymentMethod })
}

// Tables computes every chart table for one filtered subset, the full
// payload of a dashboard render pass.
func Tables(orders []domain.Order) domain.DashboardTables {
	return domain.DashboardTables{
		Summary:            Summary(orders),
		SalesOverTime:      SalesOverTime(orders),
		SalesByCategory:    SalesByCategory(orders),
		SalesBySubcategory: SalesBySubcategory(orders),
		TopProducts:        TopProducts(orders),
		SalesByDayOfWeek:   SalesByDayOfWeek(orders),
		AgeGroups:          AgeGroupDistribution(orders),
		Genders:            GenderDistribution(orders),
		PaymentMethods:     PaymentMethodDistribution(orders),
		SalesByCountry:     SalesByCountry(orders),
		RecordCount:        len(orders),
	}
}

// groupSum aggregates total_amount by a key, rows in first-seen key order.
func groupSum(orders []domain.Order, key func(domain.Order) string) []domain.GroupSales {
	index := make(map[string]int)
	out := make([]domain.GroupSales, 0)
	for _, o := range orders {
		k := key(o)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, domain.GroupSales{Name: k})
		}
		out[i].TotalAmount += o.TotalAmount
	}
	return out
}

// groupCount counts records by a key, rows in first-seen key order.
func groupCount(orders []domain.Order, key func(domain.Order) string) []domain.GroupCount {
	index := make(map[string]int)
	out := make([]domain.GroupCount, 0)
	for _, o := range orders {
		k := key(o)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, domain.GroupCount{Name: k})
		}
		out[i].Count++
	}
	return out
}
