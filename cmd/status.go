package main

import (
	"context"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/zipcensus/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the persisted ledger, results and failures",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runStatus(cmd.Context(), os.Stdout, cfg)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(ctx context.Context, w io.Writer, c *config.Config) error {
	st, err := initStore(c, false).Load(ctx)
	if err != nil {
		return eris.Wrap(err, "status")
	}
	renderStatus(w, st)
	return nil
}
