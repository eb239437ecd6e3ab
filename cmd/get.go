package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/forecast"
	"github.com/google/subcommands"
)

type getCmd struct {
	raw bool
}

func (*getCmd) Name() string     { return "get" }
func (*getCmd) Synopsis() string { return "print the forecast of a metric for a year" }
func (*getCmd) Usage() string {
	return `fcs get [-raw] <edition> <metric> <year>

  Prints the value forecast by an edition for a metric and a year, for instance:

    fcs get november-2025 cpi 2026

`
}

func (c *getCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print the number only, without the percent sign")
}

func (c *getCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: get requires an edition, a metric and a year")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	m, err := forecast.ParseMetric(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	year, err := strconv.Atoi(f.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid year %q\n", f.Arg(2))
		return subcommands.ExitUsageError
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the forecast store: %v\n", err)
		return subcommands.ExitFailure
	}
	fc, err := store.Open(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening edition %q: %v\n", name, err)
		return subcommands.ExitFailure
	}
	v, err := fc.Get(m, year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.raw {
		fmt.Fprintln(stdout, strconv.FormatFloat(v, 'f', -1, 64))
	} else {
		fmt.Fprintln(stdout, forecast.Percent(v))
	}
	return subcommands.ExitSuccess
}
