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

type compareCmd struct {
	years string
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare the forecasts of two editions" }
func (*compareCmd) Usage() string {
	return `fcs compare [-years <years>] <base> <comparison> [<metric>...]

  Prints, for each metric, the values of both editions over the years they have in
  common and the change from the base edition to the comparison edition.
  Without metrics, every metric with a year in common is printed.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.years, "years", "", "years to compare, like 2025-2030 or 2025,2027. Defaults to every common year.")
}

func (c *compareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: compare requires a base and a comparison edition")
		return subcommands.ExitUsageError
	}
	years, err := forecast.ParseYears(c.years)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -years: %v\n", err)
		return subcommands.ExitUsageError
	}
	explicit := f.NArg() > 2
	metrics, err := parseMetrics(f.Args()[2:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the forecast store: %v\n", err)
		return subcommands.ExitFailure
	}
	base, comparison, err := openPair(ctx, store, f.Arg(0), f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening editions: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, m := range metrics {
		cmp, err := comparison.CompareTo(base, m, years...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if cmp.Len() == 0 && !explicit {
			continue
		}
		printMarkdown(renderer.ComparisonMarkdown(cmp))
	}
	return subcommands.ExitSuccess
}
