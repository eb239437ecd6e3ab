package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/forecast"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLoads bounds the editions extracted at once.
const maxConcurrentLoads = 4

type exportCmd struct {
	all     bool
	refresh bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "save editions in the data directory" }
func (*exportCmd) Usage() string {
	return `fcs export [-all] [-refresh] [<edition>...]

  Loads editions and saves them as JSONL files in the data directory, where the
  following commands read them without downloading anything.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "export every known edition")
	f.BoolVar(&c.refresh, "refresh", false, "extract editions from the OBR workbooks again, even if already saved")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 && !c.all {
		fmt.Fprintln(os.Stderr, "Error: export requires editions, or -all")
		return subcommands.ExitUsageError
	}
	cfg, err := Config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	store := forecast.NewStore(forecast.DirSource{Dir: cfg.DataDir}, obrSource(cfg))
	if c.refresh {
		store = forecast.NewStore(obrSource(cfg))
	}

	names := f.Args()
	if c.all {
		list, err := store.Editions()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing editions: %v\n", err)
			return subcommands.ExitFailure
		}
		names = names[:0]
		for _, e := range list {
			names = append(names, e.Name())
		}
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for _, name := range names {
		g.Go(func() error {
			t, err := store.Load(name)
			if err != nil {
				return err
			}
			return forecast.SaveTable(cfg.DataDir, t)
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting editions: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Info().Strs("editions", names).Str("dir", cfg.DataDir).Msg("exported")
	fmt.Fprintf(stdout, "Successfully exported %d edition(s) to %s\n", len(names), cfg.DataDir)
	return subcommands.ExitSuccess
}
