package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/tweetstats/internal/history"
	"github.com/dtnitsch/tweetstats/internal/inspect"
	"github.com/dtnitsch/tweetstats/internal/process"
	"github.com/dtnitsch/tweetstats/pkg/help"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	inputFlags := []cli.Flag{
		&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "input CSV file"},
		&cli.StringFlag{Name: "text-column", Usage: "column holding the record text"},
		&cli.StringFlag{Name: "cluster-column", Usage: "column holding the cluster label"},
	}

	pipelineFlags := []cli.Flag{
		&cli.IntFlag{Name: "top", Usage: "words per cluster in reports and histograms"},
		&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "goroutines for the per-cluster reduce"},
		&cli.BoolFlag{Name: "strip-markup", Usage: "strip HTML tags and entities before cleanup"},
		&cli.BoolFlag{Name: "detect-language", Usage: "tag records with their detected language"},
		&cli.StringFlag{Name: "languages", Usage: "comma-separated ISO 639-1 candidates for --detect-language"},
	}

	historyFlags := []cli.Flag{
		&cli.StringFlag{Name: "results-dir", Usage: "directory holding runs and index.yaml"},
		&cli.StringFlag{Name: "db", Usage: "SQLite run history file or directory"},
	}

	return &cli.App{
		Name:  "tweetstats",
		Usage: "Clean tweets, count words per sentiment cluster and plot them",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-format", Usage: "text or json"},
		},
		Commands: []*cli.Command{
			{
				Name:   "process",
				Usage:  "Run the full pipeline, write the processed CSV, plots and a run summary",
				Action: process.ProcessAction,
				Flags: concat(inputFlags, pipelineFlags, historyFlags, []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "processed CSV file"},
					&cli.IntFlag{Name: "rows", Usage: "records shown before and after processing"},
					&cli.IntFlag{Name: "vocab", Usage: "vocabulary words shown"},
					&cli.IntFlag{Name: "show-record", Value: 20, Usage: "print this record (1-based) after processing, 0 to skip"},
					&cli.BoolFlag{Name: "no-render", Usage: "skip word clouds and histograms"},
					&cli.BoolFlag{Name: "strict-render", Usage: "exit 1 when any plot fails to render"},
				}),
			},
			{
				Name:      "inspect",
				Usage:     "Print the first or last records of a CSV",
				ArgsUsage: "[file]",
				Action:    inspect.InspectAction,
				Flags: concat(inputFlags, []cli.Flag{
					&cli.IntFlag{Name: "rows", Aliases: []string{"n"}, Usage: "records to print"},
					&cli.BoolFlag{Name: "last", Usage: "print the last records instead of the first"},
				}),
			},
			{
				Name:   "vocab",
				Usage:  "Print the vocabulary size and its first words in order",
				Action: inspect.VocabAction,
				Flags: concat(inputFlags, []cli.Flag{
					&cli.IntFlag{Name: "vocab", Aliases: []string{"n"}, Usage: "words to print"},
					&cli.BoolFlag{Name: "raw", Usage: "skip cleanup and stopword removal"},
				}),
			},
			{
				Name:   "clusters",
				Usage:  "Report clusters, empty texts and top words per cluster",
				Action: inspect.ClustersAction,
				Flags: concat(inputFlags, pipelineFlags, []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "text", Usage: "text, json or yaml"},
					&cli.IntFlag{Name: "samples", Usage: "cleaned texts shown per cluster in text format"},
				}),
			},
			{
				Name:   "runs",
				Usage:  "List recorded runs",
				Action: history.RunsAction,
				Flags: concat(historyFlags, []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "maximum runs to list, 0 for all"},
				}),
				Subcommands: []*cli.Command{
					{
						Name:      "show",
						Usage:     "Show one run (latest when no ID is given)",
						ArgsUsage: "[run-id]",
						Action:    history.RunAction,
						Flags: concat(historyFlags, []cli.Flag{
							&cli.IntFlag{Name: "top", Usage: "stored words per cluster to print"},
							&cli.StringFlag{Name: "fields", Usage: "comma-separated summary fields to print as JSON"},
						}),
					},
					{
						Name:      "delete",
						Usage:     "Delete a run's directory, index entry and stored terms",
						ArgsUsage: "<run-id>",
						Action:    history.DeleteAction,
						Flags:     historyFlags,
					},
				},
			},
			{
				Name:  "coldstart",
				Usage: "Print a quick-start guide as YAML",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprint(c.App.Writer, help.ColdstartYAML)
					return err
				},
			},
		},
	}
}

func concat(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
