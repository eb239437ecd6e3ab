package forecast

import "slices"

// Forecast is a read-only accessor over the values of one edition.
//
// A Forecast never changes after construction and can be shared between goroutines.
type Forecast struct {
	table *Table
}

// New returns an accessor over a private copy of t.
func New(t *Table) *Forecast {
	return &Forecast{table: t.Clone()}
}

// Edition returns the edition being accessed.
func (f *Forecast) Edition() Edition { return f.table.Edition() }

// AvailableMetrics returns the metrics with at least one value in this edition.
func (f *Forecast) AvailableMetrics() []Metric { return f.table.Metrics() }

// Horizon returns the first and last year with a value for m.
// ok is false if the edition has no value for m.
func (f *Forecast) Horizon(m Metric) (first, last int, ok bool) {
	years := f.table.Years(m)
	if len(years) == 0 {
		return 0, 0, false
	}
	return years[0], years[len(years)-1], true
}

// Get returns the value of metric m for year.
//
// It fails with an *UnknownMetricError if m is not a known metric, and with a
// *ValueNotFoundError if the edition has no value for that year.
func (f *Forecast) Get(m Metric, year int) (float64, error) {
	if err := m.validate(); err != nil {
		return 0, err
	}
	v, ok := f.table.Lookup(m, year)
	if !ok {
		return 0, &ValueNotFoundError{Edition: f.table.Edition().Name(), Metric: m, Year: year}
	}
	return v, nil
}

// Point is the value of a metric for one year.
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Series is the sequence of values of one metric in one edition, ordered by year.
type Series struct {
	Edition Edition
	Metric  Metric
	Points  []Point
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Points) }

// Years returns the years of the series in ascending order.
func (s Series) Years() []int {
	years := make([]int, len(s.Points))
	for i, p := range s.Points {
		years[i] = p.Year
	}
	return years
}

// Series returns the values of metric m for the requested years.
//
// Without years, the whole horizon recorded for m is returned. Requested years are
// sorted and de-duplicated; years with no recorded value are omitted from the result.
// Only an unknown metric is an error.
func (f *Forecast) Series(m Metric, years ...int) (Series, error) {
	if err := m.validate(); err != nil {
		return Series{}, err
	}
	if len(years) == 0 {
		years = f.table.Years(m)
	} else {
		years = slices.Clone(years)
		slices.Sort(years)
		years = slices.Compact(years)
	}

	s := Series{Edition: f.table.Edition(), Metric: m, Points: make([]Point, 0, len(years))}
	for _, year := range years {
		if v, ok := f.table.Lookup(m, year); ok {
			s.Points = append(s.Points, Point{Year: year, Value: v})
		}
	}
	return s, nil
}
