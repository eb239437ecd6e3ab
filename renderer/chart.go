package renderer

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/etnz/forecast"
	"github.com/yuin/goldmark"
)

//go:embed chart.html
var chartHTML string

var chartTemplate = template.Must(template.New("chart").Parse(chartHTML))

// DefaultChartYears are the years charted when none are requested.
var DefaultChartYears = []int{2025, 2026, 2027, 2028, 2029, 2030}

// chartMetric holds the traces of one metric. Missing values are nil.
type chartMetric struct {
	Title      string     `json:"title"`
	Usage      string     `json:"usage"`
	Base       []*float64 `json:"base"`
	Comparison []*float64 `json:"comparison"`
}

// chartData is the data the page script draws from.
type chartData struct {
	Years          []int                  `json:"years"`
	BaseName       string                 `json:"base_name"`
	ComparisonName string                 `json:"comparison_name"`
	YMax           float64                `json:"y_max"`
	Metrics        map[string]chartMetric `json:"metrics"`
}

type chartOption struct {
	Metric   string
	Label    string
	Selected bool
}

type chartGroup struct {
	Label   string
	Options []chartOption
}

type chartPage struct {
	Title   string
	Groups  []chartGroup
	Initial string
	Data    chartData
}

// Chart writes a self-contained HTML page charting, metric by metric, the comparison
// edition against the base edition over years.
//
// Without years, DefaultChartYears are used. Metrics recorded by neither edition are
// left out of the metric selector.
func Chart(w io.Writer, base, comparison *forecast.Forecast, years []int) error {
	if len(years) == 0 {
		years = DefaultChartYears
	}
	years = slices.Clone(years)
	slices.Sort(years)
	years = slices.Compact(years)

	page := chartPage{
		Title: fmt.Sprintf("%s vs %s", displayName(comparison.Edition()), displayName(base.Edition())),
		Data: chartData{
			Years:          years,
			BaseName:       displayName(base.Edition()),
			ComparisonName: displayName(comparison.Edition()),
			Metrics:        make(map[string]chartMetric),
		},
	}

	highest, found := 0.0, false
	for _, m := range forecast.Metrics() {
		cm := chartMetric{Title: m.Title()}
		present := false
		for _, year := range years {
			b, c := value(base, m, year), value(comparison, m, year)
			for _, v := range []*float64{b, c} {
				if v == nil {
					continue
				}
				present = true
				if !found || *v > highest {
					highest, found = *v, true
				}
			}
			cm.Base = append(cm.Base, b)
			cm.Comparison = append(cm.Comparison, c)
		}
		if !present {
			continue
		}
		usage, err := usageHTML(m)
		if err != nil {
			return err
		}
		cm.Usage = usage
		page.Data.Metrics[m.String()] = cm

		if page.Initial == "" {
			page.Initial = m.String()
		}
		option := chartOption{Metric: m.String(), Label: m.Title(), Selected: page.Initial == m.String()}
		if n := len(page.Groups); n > 0 && page.Groups[n-1].Label == m.Group() {
			page.Groups[n-1].Options = append(page.Groups[n-1].Options, option)
		} else {
			page.Groups = append(page.Groups, chartGroup{Label: m.Group(), Options: []chartOption{option}})
		}
	}
	page.Data.YMax = yMax(highest, found)

	return chartTemplate.Execute(w, page)
}

// value returns the value of m for year in f, or nil.
func value(f *forecast.Forecast, m forecast.Metric, year int) *float64 {
	v, err := f.Get(m, year)
	if err != nil {
		return nil
	}
	v = float64(forecast.Percent(v).Round())
	return &v
}

// yMax returns the upper bound of the y axis: the next multiple of 5 above the
// highest value, plus one.
func yMax(highest float64, found bool) float64 {
	if !found {
		highest = 10
	}
	return (math.Floor(highest/5)+1)*5 + 1
}

// usageHTML converts the usage text of m to HTML.
func usageHTML(m forecast.Metric) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(m.Usage()), &buf); err != nil {
		return "", fmt.Errorf("cannot convert usage of %s: %w", m, err)
	}
	return buf.String(), nil
}

// displayName turns an edition name like "november-2025" into "November 2025".
func displayName(e forecast.Edition) string {
	words := strings.Fields(strings.ReplaceAll(e.Name(), "-", " "))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
