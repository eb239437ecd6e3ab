package obr

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/etnz/forecast"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// Annual rows hold a year in this column, quarterly rows hold labels like "2025Q1".
const yearColumn = 1

// Headers are searched within the first rows of a sheet only.
const headerRows = 10

// Years outside this range are notes or footers, not forecast rows.
const (
	firstYear = 2008
	lastYear  = 2035
)

// column locates a metric in a sheet, either at a fixed index or by the first
// header text found.
type column struct {
	metric  forecast.Metric
	index   int
	headers []string
}

type layout struct {
	sheet   string
	columns []column
}

var layouts = []layout{
	{
		sheet: "1.7",
		columns: []column{
			{metric: forecast.RPI, index: 2},
			{metric: forecast.CPI, index: 4},
			{metric: forecast.CPIH, index: 5},
			{metric: forecast.MortgageInterest, index: 7},
			{metric: forecast.Rent, index: 8},
		},
	},
	{
		sheet: "1.6",
		columns: []column{
			{metric: forecast.AverageEarnings, headers: []string{"Average weekly earnings growth", "Average earnings growth"}},
		},
	},
	{
		sheet: "1.16",
		columns: []column{
			{metric: forecast.HousePrices, headers: []string{"per cent change"}},
		},
	},
}

// Parse extracts the annual forecasts of edition e from an OBR detailed forecast
// tables workbook.
//
// Missing sheets or headers are logged and skipped: the table holds whatever
// could be found.
func Parse(e forecast.Edition, r io.Reader) (*forecast.Table, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook of edition %q: %w", e.Name(), err)
	}
	defer wb.Close()

	t := forecast.NewTable(e)
	for _, l := range layouts {
		rows, err := wb.GetRows(l.sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			log.Warn().Err(err).Str("edition", e.Name()).Str("sheet", l.sheet).Msg("sheet not found, skipping")
			continue
		}
		for _, c := range l.columns {
			index, ok := c.find(rows)
			if !ok {
				log.Warn().Str("edition", e.Name()).Str("sheet", l.sheet).Str("metric", string(c.metric)).Msg("column header not found, skipping")
				continue
			}
			n := extract(t, l.sheet, c.metric, rows, index)
			log.Debug().Str("edition", e.Name()).Str("sheet", l.sheet).Str("metric", string(c.metric)).Int("years", n).Msg("extracted")
		}
	}
	return t, nil
}

// find returns the column index of c in rows.
func (c column) find(rows [][]string) (int, bool) {
	if len(c.headers) == 0 {
		return c.index, true
	}
	for _, header := range c.headers {
		header = strings.ToLower(header)
		for i, row := range rows {
			if i >= headerRows {
				break
			}
			for j, cell := range row {
				if strings.Contains(strings.ToLower(cell), header) {
					return j, true
				}
			}
		}
	}
	return 0, false
}

// extract records the annual values of column index into t, and returns how many.
func extract(t *forecast.Table, sheet string, m forecast.Metric, rows [][]string, index int) int {
	n := 0
	for i, row := range rows {
		year, ok := annualYear(row)
		if !ok || index >= len(row) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[index]), 64)
		if err != nil {
			continue
		}
		if _, exists := t.Lookup(m, year); exists {
			log.Warn().Str("sheet", sheet).Int("row", i+1).Int("year", year).Str("metric", string(m)).Msg("duplicate annual row, keeping the first")
			continue
		}
		if err := t.Set(m, year, v); err != nil {
			log.Warn().Err(err).Str("sheet", sheet).Int("row", i+1).Msg("invalid value, skipping")
			continue
		}
		n++
	}
	return n
}

// annualYear returns the year of an annual row.
func annualYear(row []string) (int, bool) {
	if yearColumn >= len(row) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(row[yearColumn]), 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	year := int(f)
	if year < firstYear || year > lastYear {
		return 0, false
	}
	return year, true
}
