// Package filter holds the user-chosen constraints over the cleaned dataset
// and computes the filtered subset. Selections use explicit-selection
// semantics: an empty value set for any dimension excludes every record.
package filter

import (
	"sort"
	"time"

	"salesdash/pkg/contracts/domain"
)

// Selection is the current set of inclusion constraints across the six
// filter dimensions. Date bounds are inclusive and compared at day
// granularity.
type Selection struct {
	DateStart      time.Time
	DateEnd        time.Time
	Categories     []string
	Subcategories  []string
	Genders        []string
	AgeGroups      []string
	PaymentMethods []string
}

// matcher is a Selection with its value sets indexed for membership tests.
type matcher struct {
	start, end     time.Time
	categories     map[string]struct{}
	subcategories  map[string]struct{}
	genders        map[string]struct{}
	ageGroups      map[string]struct{}
	paymentMethods map[string]struct{}
}

func newMatcher(sel Selection) matcher {
	return matcher{
		start:          truncateDay(sel.DateStart),
		end:            truncateDay(sel.DateEnd),
		categories:     toSet(sel.Categories),
		subcategories:  toSet(sel.Subcategories),
		genders:        toSet(sel.Genders),
		ageGroups:      toSet(sel.AgeGroups),
		paymentMethods: toSet(sel.PaymentMethods),
	}
}

// matches evaluates all six predicates conjunctively.
func (m matcher) matches(o domain.Order) bool {
	day := o.Date()
	if day.Before(m.start) || day.After(m.end) {
		return false
	}
	if _, ok := m.categories[o.Category]; !ok {
		return false
	}
	if _, ok := m.subcategories[o.Subcategory]; !ok {
		return false
	}
	if _, ok := m.genders[o.Gender]; !ok {
		return false
	}
	if _, ok := m.ageGroups[o.AgeGroup]; !ok {
		return false
	}
	if _, ok := m.paymentMethods[o.PaymentMethod]; !ok {
		return false
	}
	return true
}

// Matches reports whether a single record satisfies the selection.
func Matches(sel Selection, o domain.Order) bool {
	return newMatcher(sel).matches(o)
}

// Apply restricts the dataset to records satisfying the selection,
// preserving original record order. A selection matching nothing yields an
// empty, non-nil slice; the caller decides how to surface that state.
func Apply(ds *domain.Dataset, sel Selection) []domain.Order {
	m := newMatcher(sel)
	subset := make([]domain.Order, 0, ds.Len())
	for _, o := range ds.Orders {
		if m.matches(o) {
			subset = append(subset, o)
		}
	}
	return subset
}

// Options holds the selectable values per filter dimension, for the
// dashboard's filter controls.
type Options struct {
	DateMin        time.Time `json:"date_min"`
	DateMax        time.Time `json:"date_max"`
	Categories     []string  `json:"categories"`
	Subcategories  []string  `json:"subcategories"`
	Genders        []string  `json:"genders"`
	AgeGroups      []string  `json:"age_groups"`
	PaymentMethods []string  `json:"payment_methods"`
}

// OptionsFor computes the selectable values over the full dataset. The
// subcategory list honors the one-way cascade: with categories selected it
// is restricted to subcategories observed under those categories; with none
// selected every observed subcategory is offered. Age groups keep bin order;
// the other dimensions are sorted for stable output.
func OptionsFor(ds *domain.Dataset, selectedCategories []string) Options {
	opts := Options{
		Categories:     distinct(ds, func(o domain.Order) string { return o.Category }),
		Subcategories:  SubcategoryOptions(ds, selectedCategories),
		Genders:        distinct(ds, func(o domain.Order) string { return o.Gender }),
		PaymentMethods: distinct(ds, func(o domain.Order) string { return o.PaymentMethod }),
		AgeGroups:      observedAgeGroups(ds),
	}
	opts.DateMin, opts.DateMax, _ = ds.DateRange()
	return opts
}

// SubcategoryOptions returns the subcategories selectable under the given
// category selection. Recomputed from the dataset on every call so the
// cascade can never drift out of sync with a stored copy.
func SubcategoryOptions(ds *domain.Dataset, selectedCategories []string) []string {
	if len(selectedCategories) == 0 {
		return distinct(ds, func(o domain.Order) string { return o.Subcategory })
	}
	allowed := toSet(selectedCategories)
	seen := make(map[string]struct{})
	var out []string
	for _, o := range ds.Orders {
		if _, ok := allowed[o.Category]; !ok {
			continue
		}
		if _, dup := seen[o.Subcategory]; dup {
			continue
		}
		seen[o.Subcategory] = struct{}{}
		out = append(out, o.Subcategory)
	}
	sort.Strings(out)
	return out
}

func distinct(ds *domain.Dataset, field func(domain.Order) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, o := range ds.Orders {
		v := field(o)
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// observedAgeGroups returns the age-group labels present in the dataset, in
// bin order rather than alphabetically.
func observedAgeGroups(ds *domain.Dataset) []string {
	present := make(map[string]struct{})
	for _, o := range ds.Orders {
		present[o.AgeGroup] = struct{}{}
	}
	var out []string
	for _, g := range domain.AgeGroups {
		if _, ok := present[g]; ok {
			out = append(out, g)
		}
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
