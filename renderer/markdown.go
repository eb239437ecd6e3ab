// Package renderer formats forecasts as markdown tables and HTML charts.
package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/forecast"
	md "github.com/nao1215/markdown"
)

// EditionsMarkdown renders the list of known editions.
func EditionsMarkdown(list []forecast.Edition) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Editions")
	if len(list) == 0 {
		doc.PlainText("No edition available.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Edition", "Published"},
		Rows:      [][]string{},
	}
	for _, e := range list {
		published := e.Published().String()
		if published == "" {
			published = "unknown"
		}
		table.Rows = append(table.Rows, []string{e.Name(), published})
	}
	doc.Table(table)
	return doc.String()
}

// EditionMarkdown renders the metrics of an edition and their horizon.
func EditionMarkdown(f *forecast.Forecast) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	e := f.Edition()
	doc.H1(fmt.Sprintf("Edition %s", e.Name()))
	if !e.Published().IsZero() {
		doc.PlainText(fmt.Sprintf("Published on %s.", e.Published()))
	}

	available := f.AvailableMetrics()
	if len(available) == 0 {
		doc.PlainText("No value recorded.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Description", "Horizon"},
		Rows:      [][]string{},
	}
	for _, m := range available {
		first, last, _ := f.Horizon(m)
		table.Rows = append(table.Rows, []string{m.String(), m.Title(), fmt.Sprintf("%d-%d", first, last)})
	}
	doc.Table(table)
	return doc.String()
}

// SeriesMarkdown renders the values of a series, one row per year.
func SeriesMarkdown(s forecast.Series) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s, %s", s.Metric.Title(), s.Edition.Name()))
	if s.Len() == 0 {
		doc.PlainText("No value for the requested years.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Year", "Value"},
		Rows:      [][]string{},
	}
	for _, p := range s.Points {
		table.Rows = append(table.Rows, []string{strconv.Itoa(p.Year), forecast.Percent(p.Value).String()})
	}
	doc.Table(table)
	return doc.String()
}

// ComparisonMarkdown renders a comparison, one row per common year with the change
// from the base edition.
func ComparisonMarkdown(c forecast.Comparison) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s, %s vs %s", c.Metric.Title(), c.Comparison.Name(), c.Base.Name()))
	if c.Len() == 0 {
		doc.PlainText("The editions have no year in common for this metric.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Year", c.Base.Name(), c.Comparison.Name(), "Change"},
		Rows:      [][]string{},
	}
	for _, r := range c.Rows {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(r.Year),
			forecast.Percent(r.Base).String(),
			forecast.Percent(r.Comparison).String(),
			forecast.Percent(r.Delta).SignedString(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// MetricsMarkdown renders the closed set of metrics with their description.
func MetricsMarkdown() string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Metrics")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Metric", "Group", "Description"},
		Rows:      [][]string{},
	}
	for _, m := range forecast.Metrics() {
		table.Rows = append(table.Rows, []string{m.String(), m.Group(), m.Title()})
	}
	doc.Table(table)
	return doc.String()
}
