package forecast

import "github.com/shopspring/decimal"

// Row aligns the values of two editions for one year.
type Row struct {
	Year       int     `json:"year"`
	Base       float64 `json:"base"`
	Comparison float64 `json:"comparison"`
	Delta      float64 `json:"delta"` // Comparison - Base
}

// Comparison aligns two editions of one metric over the years both of them cover.
type Comparison struct {
	Metric     Metric
	Base       Edition
	Comparison Edition
	Rows       []Row
}

// Len returns the number of aligned years.
func (c Comparison) Len() int { return len(c.Rows) }

// CompareTo compares this edition against the base edition for metric m.
//
// Rows are restricted to the years present in both series, in ascending order, with
// Delta = this value - base value. Without years, the full horizon of both editions
// is considered. An empty comparison is not an error; only an unknown metric is.
func (f *Forecast) CompareTo(base *Forecast, m Metric, years ...int) (Comparison, error) {
	if err := m.validate(); err != nil {
		return Comparison{}, err
	}
	cmp, err := f.Series(m, years...)
	if err != nil {
		return Comparison{}, err
	}
	ref, err := base.Series(m, years...)
	if err != nil {
		return Comparison{}, err
	}

	c := Comparison{Metric: m, Base: base.Edition(), Comparison: f.Edition()}
	// both series are sorted by year: merge them.
	i, j := 0, 0
	for i < len(ref.Points) && j < len(cmp.Points) {
		b, x := ref.Points[i], cmp.Points[j]
		switch {
		case b.Year < x.Year:
			i++
		case b.Year > x.Year:
			j++
		default:
			c.Rows = append(c.Rows, Row{
				Year:       b.Year,
				Base:       b.Value,
				Comparison: x.Value,
				Delta:      delta(b.Value, x.Value),
			})
			i++
			j++
		}
	}
	return c, nil
}

// delta returns x - b computed in decimal, so that published figures such as
// 3.45 and 3.1 yield 0.35 rather than a binary rounding artifact.
func delta(b, x float64) float64 {
	return decimal.NewFromFloat(x).Sub(decimal.NewFromFloat(b)).InexactFloat64()
}
