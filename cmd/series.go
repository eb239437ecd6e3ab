package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/forecast"
	"github.com/etnz/forecast/renderer"
	"github.com/google/subcommands"
)

type seriesCmd struct {
	years string
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "print the forecasts of metrics over years" }
func (*seriesCmd) Usage() string {
	return `fcs series [-years <years>] <edition> [<metric>...]

  Prints, for each metric, the values forecast by the edition. Without metrics, every
  metric recorded by the edition is printed.
`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.years, "years", "", "years to print, like 2025-2030 or 2025,2027. Defaults to the whole horizon.")
}

func (c *seriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: series requires an edition")
		return subcommands.ExitUsageError
	}
	years, err := forecast.ParseYears(c.years)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -years: %v\n", err)
		return subcommands.ExitUsageError
	}
	metrics, err := parseMetrics(f.Args()[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the forecast store: %v\n", err)
		return subcommands.ExitFailure
	}
	fc, err := store.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening edition %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	if f.NArg() == 1 {
		metrics = fc.AvailableMetrics()
	}

	for _, m := range metrics {
		s, err := fc.Series(m, years...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.SeriesMarkdown(s))
	}
	return subcommands.ExitSuccess
}
