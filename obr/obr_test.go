package obr

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/etnz/forecast"
	"github.com/etnz/forecast/date"
)

// server serves data and counts the requests it receives.
func server(t *testing.T, status int, data []byte) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestSourceLoad(t *testing.T) {
	data := workbook(t, map[string]sheet{"1.7": inflation()})
	srv, hits := server(t, http.StatusOK, data)

	src := New(
		WithCacheDir(t.TempDir()),
		WithEditions(Edition{Name: "november-2025", Published: date.New(2025, 11, 26), URL: srv.URL + "/nov.xlsx"}),
	)
	for range 2 {
		tbl, err := src.Load("november-2025")
		if err != nil {
			t.Fatalf("Load() unexpected error: %v", err)
		}
		if v, ok := tbl.Lookup(forecast.CPI, 2025); !ok || v != 3.45 {
			t.Errorf("Lookup(cpi, 2025) = %v, %v want 3.45, true", v, ok)
		}
		if got := tbl.Edition().Published(); got != date.New(2025, 11, 26) {
			t.Errorf("Edition().Published() = %v want 2025-11-26", got)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server received %d requests want 1, the second load must hit the cache", n)
	}
}

func TestSourceLoadWithoutCache(t *testing.T) {
	data := workbook(t, map[string]sheet{"1.7": inflation()})
	srv, hits := server(t, http.StatusOK, data)

	src := New(
		WithCacheDir(""),
		WithHTTPClient(srv.Client()),
		WithTimeout(5*time.Second),
		WithEditions(Edition{Name: "march-2025", URL: srv.URL}),
	)
	for range 2 {
		tbl, err := src.Load("march-2025")
		if err != nil {
			t.Fatalf("Load() unexpected error: %v", err)
		}
		if got := tbl.Edition().Published(); got != date.New(2025, 3, 1) {
			t.Errorf("Edition().Published() = %v want the date derived from the name", got)
		}
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("server received %d requests want 2", n)
	}
}

func TestSourceLoadErrors(t *testing.T) {
	srv, _ := server(t, http.StatusNotFound, []byte("not found"))
	dir := t.TempDir()
	src := New(
		WithCacheDir(dir),
		WithEditions(Edition{Name: "march-2025", URL: srv.URL}),
	)

	if _, err := src.Load("june-2010"); !errors.Is(err, forecast.ErrEditionNotFound) {
		t.Errorf("Load(june-2010) error = %v want %v", err, forecast.ErrEditionNotFound)
	}

	_, err := src.Load("march-2025")
	if err == nil {
		t.Fatal("Load(march-2025) expected an error, but got none")
	}
	if errors.Is(err, forecast.ErrEditionNotFound) {
		t.Errorf("Load(march-2025) error = %v must not be reported as an unknown edition", err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("failed downloads must not be cached, found %d entries", len(entries))
	}
}

func TestSourceEditions(t *testing.T) {
	list, err := New().Editions()
	if err != nil {
		t.Fatalf("Editions() unexpected error: %v", err)
	}
	if len(list) != len(DefaultEditions) {
		t.Fatalf("Editions() = %v want %d editions", list, len(DefaultEditions))
	}
	for i, e := range DefaultEditions {
		if list[i].Name() != e.Name || list[i].Published() != e.Published {
			t.Errorf("Editions()[%d] = %v (%v) want %v (%v)", i, list[i], list[i].Published(), e.Name, e.Published)
		}
	}
}

func TestSourceIsAStoreSource(t *testing.T) {
	var _ forecast.Source = New()
	var _ forecast.Lister = New()
}

// TestLive downloads the published workbooks.
func TestLive(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}
	store := forecast.NewStore(New(WithCacheDir(t.TempDir())))

	nov, err := store.Open("november-2025")
	if err != nil {
		t.Fatalf("Open(november-2025) unexpected error: %v", err)
	}
	mar, err := store.Open("march-2025")
	if err != nil {
		t.Fatalf("Open(march-2025) unexpected error: %v", err)
	}

	testCases := []struct {
		f      *forecast.Forecast
		metric forecast.Metric
		year   int
		want   float64
	}{
		{nov, forecast.CPI, 2025, 3.45},
		{nov, forecast.CPI, 2026, 2.48},
		{nov, forecast.CPI, 2030, 2.00},
		{nov, forecast.RPI, 2025, 4.33},
		{nov, forecast.AverageEarnings, 2025, 5.17},
		{nov, forecast.MortgageInterest, 2025, 10.98},
		{mar, forecast.CPI, 2025, 3.21},
		{mar, forecast.CPI, 2026, 2.08},
		{mar, forecast.AverageEarnings, 2025, 4.32},
		{mar, forecast.MortgageInterest, 2025, 14.17},
	}
	for _, tc := range testCases {
		got, err := tc.f.Get(tc.metric, tc.year)
		if err != nil {
			t.Errorf("%v Get(%s, %d) unexpected error: %v", tc.f.Edition(), tc.metric, tc.year, err)
			continue
		}
		if forecast.Percent(got).String() != forecast.Percent(tc.want).String() {
			t.Errorf("%v Get(%s, %d) = %v want %v", tc.f.Edition(), tc.metric, tc.year, got, tc.want)
		}
	}
}
