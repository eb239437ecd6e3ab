package cmd

import (
	"context"
	"flag"

	"github.com/etnz/forecast/renderer"
	"github.com/google/subcommands"
)

type metricsCmd struct{}

func (*metricsCmd) Name() string     { return "metrics" }
func (*metricsCmd) Synopsis() string { return "list the tracked metrics" }
func (*metricsCmd) Usage() string {
	return `fcs metrics

  Lists the metrics an edition can forecast.
`
}

func (c *metricsCmd) SetFlags(f *flag.FlagSet) {}

func (c *metricsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	printMarkdown(renderer.MetricsMarkdown())
	return subcommands.ExitSuccess
}
