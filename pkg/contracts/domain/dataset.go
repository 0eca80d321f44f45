package domain

import (
	"time"
)

// Dataset is the cleaned, deduplicated, feature-enriched order collection.
// It is built once per source by the cleaning pipeline and treated as
// read-only by every downstream component; filtering and aggregation always
// produce new slices instead of mutating it.
type Dataset struct {
	Orders []Order
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Orders)
}

// Columns returns the full column schema of the cleaned dataset: the source
// columns followed by the derived feature columns. Export uses this exact
// order.
func (d *Dataset) Columns() []string {
	cols := make([]string, 0, len(RequiredColumns)+len(DerivedColumns))
	cols = append(cols, RequiredColumns...)
	cols = append(cols, DerivedColumns...)
	return cols
}

// DateRange returns the earliest and latest order dates in the dataset,
// truncated to day granularity. ok is false for an empty dataset.
func (d *Dataset) DateRange() (min, max time.Time, ok bool) {
	if d.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max = d.Orders[0].Date(), d.Orders[0].Date()
	for _, o := range d.Orders[1:] {
		day := o.Date()
		if day.Before(min) {
			min = day
		}
		if day.After(max) {
			max = day
		}
	}
	return min, max, true
}
