package domain

import (
	"time"
)

// SummaryMetrics holds the headline numbers shown above the charts.
type SummaryMetrics struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalOrders       int     `json:"total_orders"`
	AverageOrderValue float64 `json:"average_order_value"`
	TotalCustomers    int     `json:"total_customers"`
}

// DailySales is one row of the sales-over-time chart table.
type DailySales struct {
	Date        time.Time `json:"date"`
	TotalAmount float64   `json:"total_amount"`
}

// GroupSales is one row of a group-by-sum chart table (category,
// subcategory, country).
type GroupSales struct {
	Name        string  `json:"name"`
	TotalAmount float64 `json:"total_amount"`
}

// ProductSales is one row of the top-products chart table.
type ProductSales struct {
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	TotalAmount float64 `json:"total_amount"`
}

// WeekdaySales is one row of the sales-by-day-of-week chart table. Rows are
// always emitted in Monday-first weekday order.
type WeekdaySales struct {
	DayOfWeek   string  `json:"day_of_week"`
	TotalAmount float64 `json:"total_amount"`
}

// GroupCount is one row of a count-per-value distribution table (age group,
// gender, payment method).
type GroupCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DashboardTables bundles every chart table computed for one filter
// selection, the shape consumed by the dashboard query endpoint.
type DashboardTables struct {
	Summary            SummaryMetrics `json:"summary"`
	SalesOverTime      []DailySales   `json:"sales_over_time"`
	SalesByCategory    []GroupSales   `json:"sales_by_category"`
	SalesBySubcategory []GroupSales   `json:"sales_by_subcategory"`
	TopProducts        []ProductSales `json:"top_products"`
	SalesByDayOfWeek   []WeekdaySales `json:"sales_by_day_of_week"`
	AgeGroups          []GroupCount   `json:"age_groups"`
	Genders            []GroupCount   `json:"genders"`
	PaymentMethods     []GroupCount   `json:"payment_methods"`
	SalesByCountry     []GroupSales   `json:"sales_by_country"`
	RecordCount        int            `json:"record_count"`
}
