package forecast

import (
	"testing"

	"github.com/etnz/forecast/date"
)

// newTable is a helper for test to build a table from metric -> year -> value.
func newTable(t *testing.T, name string, published date.Date, values map[Metric]map[int]float64) *Table {
	t.Helper()
	tbl := NewTable(NewEdition(name, published))
	for m, years := range values {
		for year, v := range years {
			if err := tbl.Set(m, year, v); err != nil {
				t.Fatalf("Set(%s, %d, %v) unexpected error: %v", m, year, v, err)
			}
		}
	}
	return tbl
}

// march and november are the two editions used across tests.
func march(t *testing.T) *Forecast {
	t.Helper()
	return New(newTable(t, "march-2025", date.New(2025, 3, 26), map[Metric]map[int]float64{
		CPI:              {2025: 3.1, 2026: 2.4},
		MortgageInterest: {2025: 14.17, 2026: 13.25},
	}))
}

func november(t *testing.T) *Forecast {
	t.Helper()
	return New(newTable(t, "november-2025", date.New(2025, 11, 26), map[Metric]map[int]float64{
		CPI: {2025: 3.45, 2026: 2.4, 2027: 2.0},
		RPI: {2025: 4.33, 2026: 3.71, 2030: 2.31},
	}))
}
