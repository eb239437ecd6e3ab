package forecast

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// key addresses one value in a Table.
type key struct {
	metric Metric
	year   int
}

// Table holds the values published by one edition, indexed by metric and year.
//
// A (metric, year) pair holds at most one value. A pair with no value is absent from
// the table, which is distinct from a recorded zero.
type Table struct {
	edition Edition
	values  map[key]float64
}

// NewTable returns an empty table for edition e.
func NewTable(e Edition) *Table {
	return &Table{edition: e, values: make(map[key]float64)}
}

// Edition returns the edition owning the table.
func (t *Table) Edition() Edition { return t.edition }

// Len returns the number of values recorded.
func (t *Table) Len() int { return len(t.values) }

// Set records the value of metric m for year.
//
// Recording the same value twice is a no-op; recording a different value for a pair
// already set is an error, as are unknown metrics and non-finite values.
func (t *Table) Set(m Metric, year int, value float64) error {
	if err := m.validate(); err != nil {
		return err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("invalid %s value for %d: %v", m, year, value)
	}
	k := key{m, year}
	if old, exists := t.values[k]; exists {
		if old != value {
			return fmt.Errorf("conflicting %s values for %d: %v and %v", m, year, old, value)
		}
		return nil
	}
	t.values[k] = value
	return nil
}

// Lookup returns the value of metric m for year, and whether it is recorded.
func (t *Table) Lookup(m Metric, year int) (float64, bool) {
	v, ok := t.values[key{m, year}]
	return v, ok
}

// Years returns the years with a value for metric m, in ascending order.
func (t *Table) Years(m Metric) []int {
	var years []int
	for k := range t.values {
		if k.metric == m {
			years = append(years, k.year)
		}
	}
	slices.Sort(years)
	return years
}

// AllYears returns the years with a value for any metric, in ascending order.
func (t *Table) AllYears() []int {
	seen := make(map[int]struct{})
	for k := range t.values {
		seen[k.year] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Metrics returns the metrics with at least one value, in canonical order.
func (t *Table) Metrics() []Metric {
	present := make(map[Metric]bool)
	for k := range t.values {
		present[k.metric] = true
	}
	var list []Metric
	for _, m := range metrics {
		if present[m] {
			list = append(list, m)
		}
	}
	return list
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	return &Table{edition: t.edition, values: maps.Clone(t.values)}
}
