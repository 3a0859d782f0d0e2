package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/zipcensus/internal/config"
	"github.com/sells-group/zipcensus/internal/input"
)

// fetchOptions are the fetch command's flag values.
type fetchOptions struct {
	File            string
	Sheet           string
	APIKey          string
	CheckpointEvery int
	NoPersist       bool
	Format          string
}

var fetchOpts fetchOptions

var fetchCmd = &cobra.Command{
	Use:   "fetch [zip...]",
	Short: "Fetch census statistics for ZIP codes",
	Long:  "Looks up each ZIP code not already processed, checkpointing results every --checkpoint-every resolved ZIPs. ZIP codes come from arguments, --file, or both.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		zips, err := collectZIPs(args, fetchOpts.File, fetchOpts.Sheet)
		if err != nil {
			return err
		}
		return runFetch(ctx, os.Stdout, cfg, zips, fetchOpts)
	},
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchOpts.File, "file", "f", "", "CSV or XLSX file of ZIP codes")
	fetchCmd.Flags().StringVar(&fetchOpts.Sheet, "sheet", "", "worksheet to read when --file is XLSX (default: first sheet)")
	fetchCmd.Flags().StringVar(&fetchOpts.APIKey, "api-key", "", "census API key (overrides ZIPCENSUS_CENSUS_API_KEY)")
	fetchCmd.Flags().IntVar(&fetchOpts.CheckpointEvery, "checkpoint-every", 0, "resolved ZIPs between checkpoints (default from config)")
	fetchCmd.Flags().BoolVar(&fetchOpts.NoPersist, "no-persist", false, "do not read or write the CSV artifacts")
	fetchCmd.Flags().StringVarP(&fetchOpts.Format, "format", "o", formatTable, "output format: table, json, or yaml")
	rootCmd.AddCommand(fetchCmd)
}

// collectZIPs merges ZIPs from arguments and an optional file.
func collectZIPs(args []string, file, sheet string) ([]string, error) {
	zips := input.FromArgs(args)
	if file != "" {
		fromFile, err := input.FromFile(file, sheet)
		if err != nil {
			return nil, eris.Wrap(err, "fetch: read zip file")
		}
		zips = append(zips, fromFile...)
	}
	if len(zips) == 0 {
		return nil, eris.New("fetch: no ZIP codes given (pass them as arguments or with --file)")
	}
	return zips, nil
}

func runFetch(ctx context.Context, w io.Writer, c *config.Config, zips []string, opts fetchOptions) error {
	if err := checkFormat(opts.Format); err != nil {
		return err
	}
	if opts.CheckpointEvery < 0 {
		return eris.New("fetch: --checkpoint-every must not be negative")
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if opts.APIKey == "" && c.Census.APIKey == "" {
		zap.L().Warn("no census API key configured; requests are sent without one")
	}

	st := initStore(c, opts.NoPersist)
	orch := initOrchestrator(c, st, opts.APIKey, opts.CheckpointEvery)

	sum, err := orch.Run(ctx, zips)
	if sum != nil {
		if rerr := renderSummary(w, opts.Format, sum); rerr != nil && err == nil {
			err = rerr
		}
	}
	return err
}
