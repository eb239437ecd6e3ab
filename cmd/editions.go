package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/forecast/renderer"
	"github.com/google/subcommands"
)

type editionsCmd struct{}

func (*editionsCmd) Name() string     { return "editions" }
func (*editionsCmd) Synopsis() string { return "list forecast editions, or describe some" }
func (*editionsCmd) Usage() string {
	return `fcs editions [<edition>...]

  Without arguments, lists the known editions, oldest first.
  Otherwise describes each edition: its publication date and the horizon of each metric.
`
}

func (c *editionsCmd) SetFlags(f *flag.FlagSet) {}

func (c *editionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the forecast store: %v\n", err)
		return subcommands.ExitFailure
	}

	if f.NArg() == 0 {
		list, err := store.Editions()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing editions: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.EditionsMarkdown(list))
		return subcommands.ExitSuccess
	}

	for _, name := range f.Args() {
		fc, err := store.Open(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening edition %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.EditionMarkdown(fc))
	}
	return subcommands.ExitSuccess
}
