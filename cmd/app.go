// Package cmd implements the CLI application to query economic forecasts.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/forecast"
	"github.com/etnz/forecast/config"
	"github.com/etnz/forecast/obr"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&editionsCmd{}, "forecasts")
	c.Register(&getCmd{}, "forecasts")
	c.Register(&seriesCmd{}, "forecasts")
	c.Register(&compareCmd{}, "forecasts")
	c.Register(&chartCmd{}, "forecasts")

	c.Register(&exportCmd{}, "data")
	c.Register(&serveCmd{}, "data")

	c.Register(&metricsCmd{}, "documentation")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", os.Getenv("FORECAST_CONFIG"), "Path to the YAML configuration file")
var dataDir = flag.String("data-dir", "", "Directory of extracted editions (JSONL), overrides the configuration")
var cacheDir = flag.String("cache-dir", "", "Directory of downloaded workbooks, overrides the configuration")
var logLevel = flag.String("log-level", "", "Log level (trace, debug, info, warn, error, disabled), overrides the configuration")

// stdout receives the command outputs.
var stdout io.Writer = os.Stdout

// appConfig is loaded once by Config.
var appConfig *config.Config

// Config returns the application configuration: the configuration file, overridden
// by the environment and the global flags.
func Config() (*config.Config, error) {
	if appConfig != nil {
		return appConfig, nil
	}
	c, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *dataDir != "" {
		c.DataDir = *dataDir
	}
	if *cacheDir != "" {
		c.CacheDir = *cacheDir
	}
	if *logLevel != "" {
		c.LogLevel = *logLevel
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	appConfig = c
	return c, nil
}

// Setup loads the configuration and configures the global logger. It is called once
// the flags are parsed.
func Setup() error {
	c, err := Config()
	if err != nil {
		return err
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	if c.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return nil
}

// obrSource returns the source downloading the configured OBR editions.
func obrSource(c *config.Config) *obr.Source {
	return obr.New(
		obr.WithEditions(c.Catalog()...),
		obr.WithCacheDir(c.CacheDir),
		obr.WithTimeout(c.HTTPTimeout),
	)
}

// OpenStore returns the store of the application: editions already extracted in the
// data directory first, then the OBR workbooks.
func OpenStore() (*forecast.Store, error) {
	c, err := Config()
	if err != nil {
		return nil, err
	}
	return forecast.NewStore(forecast.DirSource{Dir: c.DataDir}, obrSource(c)), nil
}

// openPair opens the base and comparison editions concurrently.
func openPair(ctx context.Context, store *forecast.Store, base, comparison string) (b, c *forecast.Forecast, err error) {
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		b, err = store.Open(base)
		return err
	})
	g.Go(func() (err error) {
		c, err = store.Open(comparison)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return b, c, nil
}

// printMarkdown prints markdown content, rendered when printing on a terminal.
func printMarkdown(content string) {
	if !isTerminal(stdout) {
		fmt.Fprint(stdout, content)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Fprint(stdout, content)
		return
	}
	out, err := r.Render(content)
	if err != nil {
		fmt.Fprint(stdout, content)
		return
	}
	fmt.Fprint(stdout, out)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// parseMetrics parses metric names, all metrics when there are none.
func parseMetrics(names []string) ([]forecast.Metric, error) {
	if len(names) == 0 {
		return forecast.Metrics(), nil
	}
	list := make([]forecast.Metric, 0, len(names))
	for _, name := range names {
		m, err := forecast.ParseMetric(name)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, nil
}
