package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/forecast/date"
	"github.com/etnz/forecast/obr"
	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if c.DataDir != "forecasts" || c.LogLevel != "warn" || c.LogFormat != "console" || c.HTTPTimeout != 60*time.Second {
		t.Errorf("Load() = %+v want the defaults", c)
	}
	if c.CacheDir != filepath.Join(os.TempDir(), "forecast") {
		t.Errorf("Load().CacheDir = %q", c.CacheDir)
	}
	if diff := cmp.Diff(obr.DefaultEditions, c.Catalog()); diff != "" {
		t.Errorf("Catalog() mismatch with obr.DefaultEditions (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
data_dir: /var/lib/forecast
log_level: debug
http_timeout: 2m
editions:
  - name: october-2024
    published: "2024-10-30"
    url: https://example.com/october.xlsx
  - name: spring-statement
    url: https://example.com/spring.xlsx
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if c.DataDir != "/var/lib/forecast" || c.LogLevel != "debug" || c.HTTPTimeout != 2*time.Minute {
		t.Errorf("Load() = %+v", c)
	}
	if c.LogFormat != "console" {
		t.Errorf("Load().LogFormat = %q want the default", c.LogFormat)
	}
	want := []obr.Edition{
		{Name: "october-2024", Published: date.New(2024, 10, 30), URL: "https://example.com/october.xlsx"},
		{Name: "spring-statement", URL: "https://example.com/spring.xlsx"},
	}
	if diff := cmp.Diff(want, c.Catalog()); diff != "" {
		t.Errorf("Catalog() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("FORECAST_CACHE_DIR", "/tmp/cache")
	t.Setenv("FORECAST_DATA_DIR", "/tmp/data")
	t.Setenv("FORECAST_LOG_LEVEL", "info")

	c, err := Load(writeConfig(t, "data_dir: ignored\nlog_level: error\n"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if c.CacheDir != "/tmp/cache" || c.DataDir != "/tmp/data" || c.LogLevel != "info" {
		t.Errorf("Load() = %+v want the environment overrides", c)
	}
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "log level",
			content: "log_level: verbose",
			wantErr: "log_level must be one of: trace, debug, info, warn, error, disabled",
		},
		{
			name:    "log format",
			content: "log_format: xml",
			wantErr: "log_format must be one of: console, json",
		},
		{
			name:    "negative timeout",
			content: "http_timeout: -1s",
			wantErr: "http_timeout must be greater than 0",
		},
		{
			name:    "missing name",
			content: "editions:\n  - url: https://example.com/a.xlsx",
			wantErr: "editions[0].name is required",
		},
		{
			name:    "bad url",
			content: "editions:\n  - name: a\n    url: not a url",
			wantErr: "editions[0].url must be a valid URL",
		},
		{
			name:    "bad date",
			content: "editions:\n  - name: a\n    published: 26/11/2025\n    url: https://example.com/a.xlsx",
			wantErr: "editions[0].published must be a date formatted as 2006-01-02",
		},
		{
			name:    "duplicate edition",
			content: "editions:\n  - name: a\n    url: https://example.com/a.xlsx\n  - name: a\n    url: https://example.com/b.xlsx",
			wantErr: "editions must not repeat a name",
		},
		{
			name:    "not yaml",
			content: "editions: [",
			wantErr: "parse config",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			if err == nil {
				t.Fatalf("Load() expected an error, but got none")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Load() error = %q, want to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() expected an error for a missing file, but got none")
	}
}
