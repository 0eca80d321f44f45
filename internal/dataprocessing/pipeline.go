package dataprocessing

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"salesdash/pkg/contracts/domain"
)

// missingSentinel is the literal placeholder the source files use for
// missing values.
const missingSentinel = "?"

// orderDateLayouts are the accepted timestamp formats, tried in order.
var orderDateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
}

// CleanOptions tunes a cleaning run.
type CleanOptions struct {
	// OnRow, when set, is invoked after each raw row is processed.
	// Used by the cleanse CLI to drive its progress bar.
	OnRow func(processed, total int)
}

// CleanReport counts what happened to the raw rows during a cleaning run.
type CleanReport struct {
	RowsIn            int `json:"rows_in"`
	RowsOut           int `json:"rows_out"`
	MissingDropped    int `json:"missing_dropped"`
	MalformedDropped  int `json:"malformed_dropped"`
	DuplicatesDropped int `json:"duplicates_dropped"`
	AgeOutOfRange     int `json:"age_out_of_range"`
}

// Dropped returns the total number of rows removed by cleaning.
func (r *CleanReport) Dropped() int {
	return r.MissingDropped + r.MalformedDropped + r.DuplicatesDropped + r.AgeOutOfRange
}

// Clean runs the cleaning passes over a raw table and returns the cleaned
// dataset. Per-row failures are counted, never returned: a row with a
// missing field, an unparseable timestamp or numeric, or a non-finite
// numeric is removed before it can reach filtering or aggregation. Exact
// duplicates keep their first occurrence and survivors keep their relative
// order.
func Clean(table *RawTable, opts *CleanOptions) (*domain.Dataset, *CleanReport) {
	if opts == nil {
		opts = &CleanOptions{}
	}

	cols := columnPositions(table)
	report := &CleanReport{RowsIn: len(table.Rows)}
	seen := make(map[string]struct{}, len(table.Rows))
	orders := make([]domain.Order, 0, len(table.Rows))

	for i, row := range table.Rows {
		if opts.OnRow != nil {
			opts.OnRow(i+1, len(table.Rows))
		}

		fields := cols.extract(row)

		// Sentinel normalization, then strict row elimination: one
		// missing field removes the whole record.
		if fields.normalizeMissing() {
			report.MissingDropped++
			continue
		}

		order, ok := coerce(fields)
		if !ok {
			report.MalformedDropped++
			continue
		}

		key := fields.dedupKey()
		if _, dup := seen[key]; dup {
			report.DuplicatesDropped++
			continue
		}
		seen[key] = struct{}{}

		if !deriveFeatures(&order) {
			report.AgeOutOfRange++
			continue
		}

		normalizeCategoricals(&order)
		orders = append(orders, order)
	}

	report.RowsOut = len(orders)
	return &domain.Dataset{Orders: orders}, report
}

// rawFields holds one row's required cells in schema order.
type rawFields [13]string

const (
	fOrderID = iota
	fCustomerID
	fOrderDate
	fQuantity
	fOrderPrice
	fTotalAmount
	fAge
	fGender
	fPaymentMethod
	fCategory
	fSubcategory
	fProductName
	fCountry
)

// normalizeMissing replaces the "?" sentinel with an empty cell and reports
// whether any field is missing.
func (f *rawFields) normalizeMissing() bool {
	missing := false
	for i, v := range f {
		v = strings.TrimSpace(v)
		if v == missingSentinel {
			v = ""
		}
		f[i] = v
		if v == "" {
			missing = true
		}
	}
	return missing
}

func (f *rawFields) dedupKey() string {
	return strings.Join(f[:], "\x1f")
}

type positions [13]int

func columnPositions(table *RawTable) positions {
	var p positions
	for i, name := range domain.RequiredColumns {
		p[i] = table.Col(name)
	}
	return p
}

func (p positions) extract(row []string) rawFields {
	var f rawFields
	for i, idx := range p {
		if idx >= 0 && idx < len(row) {
			f[i] = row[idx]
		}
	}
	return f
}

// coerce parses the timestamp and the four numeric fields. A value that
// does not parse, or parses to a non-finite number, fails the row.
func coerce(f rawFields) (domain.Order, bool) {
	order := domain.Order{
		OrderID:       f[fOrderID],
		CustomerID:    f[fCustomerID],
		Gender:        f[fGender],
		PaymentMethod: f[fPaymentMethod],
		Category:      f[fCategory],
		Subcategory:   f[fSubcategory],
		ProductName:   f[fProductName],
		Country:       f[fCountry],
	}

	ts, ok := parseOrderDate(f[fOrderDate])
	if !ok {
		return domain.Order{}, false
	}
	order.OrderDate = ts

	numeric := []struct {
		raw string
		dst *float64
	}{
		{f[fQuantity], &order.Quantity},
		{f[fOrderPrice], &order.OrderPrice},
		{f[fTotalAmount], &order.TotalAmount},
		{f[fAge], &order.Age},
	}
	for _, n := range numeric {
		v, err := strconv.ParseFloat(strings.ReplaceAll(n.raw, ",", ""), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.Order{}, false
		}
		*n.dst = v
	}

	return order, true
}

func parseOrderDate(raw string) (time.Time, bool) {
	for _, layout := range orderDateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// deriveFeatures fills the calendar and cohort columns. A record whose age
// falls outside every cohort bin cannot carry a valid age_group label and
// is dropped.
func deriveFeatures(o *domain.Order) bool {
	group, ok := AgeGroup(o.Age)
	if !ok {
		return false
	}
	o.AgeGroup = group
	o.Month = int(o.OrderDate.Month())
	o.Year = o.OrderDate.Year()
	o.DayOfWeek = o.OrderDate.Weekday().String()
	o.Hour = o.OrderDate.Hour()
	return true
}

// ageBinEdges are the left-exclusive upper edges of the cohort bins:
// (17,24] → 18-24, (24,34] → 25-34, and so on, with 65+ unbounded.
var ageBinEdges = []float64{17, 24, 34, 44, 54, 64}

// AgeGroup maps an age to its cohort label. ok is false for ages at or
// below the lowest bin edge.
func AgeGroup(age float64) (string, bool) {
	if age <= ageBinEdges[0] {
		return "", false
	}
	for i := 1; i < len(ageBinEdges); i++ {
		if age <= ageBinEdges[i] {
			return domain.AgeGroups[i-1], true
		}
	}
	return domain.AgeGroups[len(domain.AgeGroups)-1], true
}

// normalizeCategoricals trims and title-cases the categorical text fields
// so grouping and filtering see one consistent spelling.
func normalizeCategoricals(o *domain.Order) {
	o.Gender = titleCase(o.Gender)
	o.PaymentMethod = titleCase(o.PaymentMethod)
	o.Category = titleCase(o.Category)
	o.Subcategory = titleCase(o.Subcategory)
	o.ProductName = titleCase(o.ProductName)
	o.Country = titleCase(o.Country)
}

// titleCase uppercases the first letter of every alphabetic run and
// lowercases the rest, matching the normalization the source data was
// prepared with.
func titleCase(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
