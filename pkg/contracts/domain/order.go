package domain

import (
	"time"
)

// Order represents a single cleaned e-commerce order record. Derived fields
// are computed once by the cleaning pipeline and never recomputed downstream.
type Order struct {
	OrderID       string    `json:"order_id" csv:"order_id"`
	CustomerID    string    `json:"customer_id" csv:"customer_id"`
	OrderDate     time.Time `json:"order_date" csv:"order_date"`
	Quantity      float64   `json:"quantity" csv:"quantity"`
	OrderPrice    float64   `json:"order_price" csv:"order_price"`
	TotalAmount   float64   `json:"total_amount" csv:"total_amount"`
	Age           float64   `json:"age" csv:"age"`
	Gender        string    `json:"gender" csv:"gender"`
	PaymentMethod string    `json:"payment_method" csv:"payment_method"`
	Category      string    `json:"category" csv:"category"`
	Subcategory   string    `json:"subcategory" csv:"subcategory"`
	ProductName   string    `json:"product_name" csv:"product_name"`
	Country       string    `json:"country" csv:"country"`

	// Derived calendar and cohort features.
	Month     int    `json:"month" csv:"month"`
	Year      int    `json:"year" csv:"year"`
	DayOfWeek string `json:"day_of_week" csv:"day_of_week"`
	Hour      int    `json:"hour" csv:"hour"`
	AgeGroup  string `json:"age_group" csv:"age_group"`
}

// Date returns the order timestamp truncated to day granularity,
// preserving the timestamp's location.
func (o Order) Date() time.Time {
	y, m, d := o.OrderDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, o.OrderDate.Location())
}

// RequiredColumns lists the source columns a dataset must provide.
// A source missing any of these fails the load outright.
var RequiredColumns = []string{
	"order_id",
	"customer_id",
	"order_date",
	"quantity",
	"order_price",
	"total_amount",
	"age",
	"gender",
	"payment_method",
	"category",
	"subcategory",
	"product_name",
	"country",
}

// DerivedColumns lists the feature columns appended by the cleaning pipeline.
var DerivedColumns = []string{
	"month",
	"year",
	"day_of_week",
	"hour",
	"age_group",
}

// AgeGroups lists the six cohort labels in ascending bin order.
var AgeGroups = []string{"18-24", "25-34", "35-44", "45-54", "55-64", "65+"}

// Weekdays lists weekday names in the canonical Monday-first order used by
// the day-of-week chart.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}
