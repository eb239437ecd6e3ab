package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/forecast"
	"github.com/etnz/forecast/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type chartCmd struct {
	years  string
	output string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "write an HTML chart comparing two editions" }
func (*chartCmd) Usage() string {
	return `fcs chart [-years <years>] [-o <file>] <base> <comparison>

  Writes an interactive HTML page charting, metric by metric, the comparison edition
  as a solid line against the base edition as a dashed line.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.years, "years", "", "years to chart, like 2025-2030. Defaults to 2025-2030.")
	f.StringVar(&c.output, "o", "", "file to write the page to. Defaults to the standard output.")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: chart requires a base and a comparison edition")
		return subcommands.ExitUsageError
	}
	years, err := forecast.ParseYears(c.years)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -years: %v\n", err)
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

	var w io.Writer = stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}
	if err := renderer.Chart(w, base, comparison, years); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing chart: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.output != "" {
		log.Info().Str("file", c.output).Msg("chart written")
	}
	return subcommands.ExitSuccess
}
