package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/etnz/forecast"
	"github.com/etnz/forecast/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable(t *testing.T, e forecast.Edition, values map[forecast.Metric]map[int]float64) *forecast.Table {
	t.Helper()
	tbl := forecast.NewTable(e)
	for m, years := range values {
		for year, v := range years {
			require.NoError(t, tbl.Set(m, year, v))
		}
	}
	return tbl
}

// countingSource counts the loads reaching the underlying source.
type countingSource struct {
	forecast.MemorySource
	loads atomic.Int32
}

func (s *countingSource) Load(edition string) (*forecast.Table, error) {
	s.loads.Add(1)
	return s.MemorySource.Load(edition)
}

// failingSource fails every load.
type failingSource struct{}

func (failingSource) Load(string) (*forecast.Table, error) { return nil, errors.New("disk on fire") }

func newSource(t *testing.T) *countingSource {
	return &countingSource{MemorySource: forecast.NewMemorySource(
		newTable(t, forecast.NewEdition("march-2025", date.New(2025, 3, 26)), map[forecast.Metric]map[int]float64{
			forecast.CPI:              {2025: 3.1, 2026: 2.4},
			forecast.MortgageInterest: {2025: 14.17, 2026: 13.25},
		}),
		newTable(t, forecast.NewEdition("november-2025", date.New(2025, 11, 26)), map[forecast.Metric]map[int]float64{
			forecast.CPI: {2025: 3.45, 2026: 2.4, 2027: 2.0},
			forecast.RPI: {2025: 4.33, 2026: 3.71, 2030: 2.31},
		}),
	)}
}

// get serves endpoint and decodes the response envelope.
func get(t *testing.T, h http.Handler, endpoint string) (int, response, map[string]any) {
	t.Helper()
	server := httptest.NewServer(h)
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var raw map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	code, _ := raw["code"].(float64)
	text, _ := raw["text"].(string)
	return resp.StatusCode, response{Code: int(code), Text: text, Data: raw["data"]}, raw
}

func TestEditions(t *testing.T) {
	status, resp, _ := get(t, New(forecast.NewStore(newSource(t))), "/editions")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, "OK", resp.Text)

	list, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, list, 2)
	first := list[0].(map[string]any)
	assert.Equal(t, "march-2025", first["name"])
	assert.Equal(t, "2025-03-26", first["published"])
}

func TestMetrics(t *testing.T) {
	status, resp, _ := get(t, New(forecast.NewStore()), "/metrics")
	require.Equal(t, http.StatusOK, status)
	list, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, list, len(forecast.Metrics()))
	assert.Equal(t, "cpi", list[0].(map[string]any)["name"])
}

func TestEdition(t *testing.T) {
	status, resp, _ := get(t, New(forecast.NewStore(newSource(t))), "/editions/november-2025")
	require.Equal(t, http.StatusOK, status)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "november-2025", data["name"])
	metrics := data["metrics"].([]any)
	require.Len(t, metrics, 2)
	rpi := metrics[1].(map[string]any)
	assert.Equal(t, "rpi", rpi["metric"])
	assert.Equal(t, 2025.0, rpi["first"])
	assert.Equal(t, 2030.0, rpi["last"])
}

func TestSeries(t *testing.T) {
	tests := []struct {
		name       string
		endpoint   string
		wantStatus int
		wantYears  []float64
	}{
		{name: "full horizon", endpoint: "/editions/november-2025/rpi", wantStatus: http.StatusOK, wantYears: []float64{2025, 2026, 2030}},
		{name: "selected years", endpoint: "/editions/november-2025/rpi?years=2026-2029", wantStatus: http.StatusOK, wantYears: []float64{2026}},
		{name: "no value", endpoint: "/editions/november-2025/rpi?years=2040", wantStatus: http.StatusOK, wantYears: []float64{}},
		{name: "unknown metric", endpoint: "/editions/november-2025/gdp", wantStatus: http.StatusBadRequest},
		{name: "bad years", endpoint: "/editions/november-2025/rpi?years=soon", wantStatus: http.StatusBadRequest},
		{name: "unknown edition", endpoint: "/editions/june-2010/cpi", wantStatus: http.StatusNotFound},
	}
	h := New(forecast.NewStore(newSource(t)))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp, _ := get(t, h, tt.endpoint)
			require.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantStatus, resp.Code)
			if tt.wantStatus != http.StatusOK {
				assert.NotEmpty(t, resp.Text)
				assert.Nil(t, resp.Data)
				return
			}
			data := resp.Data.(map[string]any)
			assert.Equal(t, "rpi", data["metric"])
			assert.Equal(t, "RPI inflation (%)", data["title"])
			years := []float64{}
			for _, p := range data["points"].([]any) {
				years = append(years, p.(map[string]any)["year"].(float64))
			}
			assert.Equal(t, tt.wantYears, years)
		})
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		name       string
		endpoint   string
		wantStatus int
		wantValue  float64
	}{
		{name: "found", endpoint: "/editions/november-2025/cpi/2025", wantStatus: http.StatusOK, wantValue: 3.45},
		{name: "missing year", endpoint: "/editions/march-2025/cpi/2030", wantStatus: http.StatusNotFound},
		{name: "bad year", endpoint: "/editions/march-2025/cpi/next", wantStatus: http.StatusBadRequest},
		{name: "unknown metric", endpoint: "/editions/march-2025/social_rent/2025", wantStatus: http.StatusBadRequest},
		{name: "unknown edition", endpoint: "/editions/june-2010/cpi/2025", wantStatus: http.StatusNotFound},
	}
	h := New(forecast.NewStore(newSource(t)))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp, _ := get(t, h, tt.endpoint)
			require.Equal(t, tt.wantStatus, status)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantValue, resp.Data.(map[string]any)["value"])
			}
		})
	}
}

func TestCompare(t *testing.T) {
	h := New(forecast.NewStore(newSource(t)))

	status, resp, _ := get(t, h, "/compare/march-2025/november-2025/cpi")
	require.Equal(t, http.StatusOK, status)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "march-2025", data["base"])
	assert.Equal(t, "november-2025", data["comparison"])

	rows := data["rows"].([]any)
	require.Len(t, rows, 2)
	first := rows[0].(map[string]any)
	assert.Equal(t, 2025.0, first["year"])
	assert.Equal(t, 3.1, first["base"])
	assert.Equal(t, 3.45, first["comparison"])
	assert.Equal(t, 0.35, first["delta"])
	second := rows[1].(map[string]any)
	assert.Equal(t, 0.0, second["delta"])

	// No common year.
	status, resp, _ = get(t, h, "/compare/march-2025/november-2025/rpi")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, resp.Data.(map[string]any)["rows"])

	status, _, _ = get(t, h, "/compare/march-2025/june-2010/cpi")
	assert.Equal(t, http.StatusNotFound, status)
	status, _, _ = get(t, h, "/compare/march-2025/november-2025/gdp")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestErrors(t *testing.T) {
	status, resp, raw := get(t, New(forecast.NewStore(failingSource{})), "/editions/march-2025/cpi")
	require.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", resp.Text)
	assert.NotContains(t, raw, "data")

	status, _, _ = get(t, New(forecast.NewStore()), "/nowhere")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestEditionsAreOpenedOnce(t *testing.T) {
	src := newSource(t)
	h := New(forecast.NewStore(src))
	server := httptest.NewServer(h)
	defer server.Close()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Get(server.URL + "/editions/november-2025/cpi/2025")
			if assert.NoError(t, err) {
				resp.Body.Close() // nolint:errcheck
				assert.Equal(t, http.StatusOK, resp.StatusCode)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), src.loads.Load())
}
