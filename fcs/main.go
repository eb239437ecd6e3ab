// Command fcs queries economic forecast editions.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/forecast"
	"github.com/etnz/forecast/cmd"
	"github.com/etnz/forecast/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion().Complete("fcs")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	if err := cmd.Setup(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	// Unknown subcommands are looked up as fcs-<subcommand> extensions.
	if name := flag.Arg(0); name != "" && !isRegistered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func isRegistered(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}

// completion describes the command line for shell completion.
func completion() *complete.Command {
	metrics := []string{}
	for _, m := range forecast.Metrics() {
		metrics = append(metrics, m.String())
	}
	editions := predict.Set{"march-2025", "november-2025"}
	years := predict.Set{"2025-2030", "2025", "2026", "2027", "2028", "2029", "2030"}
	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"editions": {Args: editions},
			"get": {
				Flags: map[string]complete.Predictor{"raw": predict.Nothing},
				Args:  predict.Or(editions, predict.Set(metrics)),
			},
			"series": {
				Flags: map[string]complete.Predictor{"years": years},
				Args:  predict.Or(editions, predict.Set(metrics)),
			},
			"compare": {
				Flags: map[string]complete.Predictor{"years": years},
				Args:  predict.Or(editions, predict.Set(metrics)),
			},
			"chart": {
				Flags: map[string]complete.Predictor{"years": years, "o": predict.Files("*.html")},
				Args:  editions,
			},
			"export": {
				Flags: map[string]complete.Predictor{"all": predict.Nothing, "refresh": predict.Nothing},
				Args:  editions,
			},
			"serve":   {Flags: map[string]complete.Predictor{"addr": predict.Something}},
			"metrics": {},
			"topic":   {Args: predict.Set(topics)},
		},
		Flags: map[string]complete.Predictor{
			"config":    predict.Files("*.yaml"),
			"data-dir":  predict.Dirs("*"),
			"cache-dir": predict.Dirs("*"),
			"log-level": predict.Set{"trace", "debug", "info", "warn", "error", "disabled"},
		},
	}
}
