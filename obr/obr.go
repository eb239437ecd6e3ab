// Package obr loads forecast editions from the detailed forecast tables published by
// the Office for Budget Responsibility.
//
// Each edition is a workbook downloaded once and kept in a disk cache, then the
// annual rows of the inflation, labour market and housing sheets are extracted into a
// [forecast.Table].
package obr

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/etnz/forecast"
	"github.com/etnz/forecast/date"
	"github.com/rs/zerolog/log"
)

// Edition describes where an edition's workbook is published.
type Edition struct {
	Name      string
	Published date.Date
	URL       string
}

// DefaultEditions lists the editions known without any configuration.
var DefaultEditions = []Edition{
	{
		Name:      "november-2025",
		Published: date.New(2025, 11, 26),
		URL:       "https://obr.uk/docs/dlm_uploads/Economy_Detailed_forecast_tables_November_2025.xlsx",
	},
	{
		Name:      "march-2025",
		Published: date.New(2025, 3, 26),
		URL:       "https://obr.uk/docs/dlm_uploads/Economy_Detailed_forecast_tables_March_2025.xlsx",
	},
}

const defaultTimeout = 60 * time.Second

// Source is a forecast.Source downloading OBR workbooks.
type Source struct {
	catalog  []Edition
	client   *http.Client
	cacheDir string
	timeout  time.Duration
}

// Option configures a Source.
type Option func(*Source)

// WithEditions replaces the default edition catalog.
func WithEditions(editions ...Edition) Option {
	return func(s *Source) { s.catalog = editions }
}

// WithCacheDir sets the directory where downloaded workbooks are kept. An empty
// directory disables the cache.
func WithCacheDir(dir string) Option {
	return func(s *Source) { s.cacheDir = dir }
}

// WithHTTPClient sets the client used to download workbooks.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) { s.client = c }
}

// WithTimeout sets the download timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) { s.timeout = d }
}

// New returns a Source over the default catalog, caching in the system temp dir.
func New(opts ...Option) *Source {
	s := &Source{
		catalog:  DefaultEditions,
		cacheDir: os.TempDir(),
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	client := http.Client{}
	if s.client != nil {
		client = *s.client
	}
	if s.timeout > 0 {
		client.Timeout = s.timeout
	}
	if s.cacheDir != "" {
		base := client.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		client.Transport = &diskCache{base: base, dir: s.cacheDir}
	}
	s.client = &client
	return s
}

func (s *Source) lookup(name string) (Edition, bool) {
	for _, e := range s.catalog {
		if e.Name == name {
			return e, true
		}
	}
	return Edition{}, false
}

// Editions returns the editions of the catalog.
func (s *Source) Editions() ([]forecast.Edition, error) {
	list := make([]forecast.Edition, 0, len(s.catalog))
	for _, e := range s.catalog {
		list = append(list, edition(e))
	}
	return list, nil
}

// Load downloads the workbook of the named edition and extracts its table.
func (s *Source) Load(name string) (*forecast.Table, error) {
	e, ok := s.lookup(name)
	if !ok {
		return nil, &forecast.EditionNotFoundError{Edition: name}
	}
	body, err := s.download(e)
	if err != nil {
		return nil, err
	}
	t, err := Parse(edition(e), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	log.Info().Str("edition", name).Int("values", t.Len()).Msg("extracted forecast tables")
	return t, nil
}

func (s *Source) download(e Edition) ([]byte, error) {
	log.Debug().Str("edition", e.Name).Str("url", e.URL).Msg("fetching workbook")
	resp, err := s.client.Get(e.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download edition %q: %w", e.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download edition %q: received status %s", e.Name, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook of edition %q: %w", e.Name, err)
	}
	return body, nil
}

func edition(e Edition) forecast.Edition {
	if e.Published.IsZero() {
		return forecast.EditionFromName(e.Name)
	}
	return forecast.NewEdition(e.Name, e.Published)
}
