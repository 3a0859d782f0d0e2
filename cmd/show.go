package main

import (
	"context"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/zipcensus/internal/config"
	"github.com/sells-group/zipcensus/internal/model"
	"github.com/sells-group/zipcensus/internal/transform"
)

var showFormat string

var showCmd = &cobra.Command{
	Use:   "show <zip>",
	Short: "Show the stored census row for one ZIP code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd.Context(), os.Stdout, cfg, args[0], showFormat)
	},
}

func init() {
	showCmd.Flags().StringVarP(&showFormat, "format", "o", formatTable, "output format: table, json, or yaml")
	rootCmd.AddCommand(showCmd)
}

func runShow(ctx context.Context, w io.Writer, c *config.Config, raw, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	zip, err := transform.NormalizeZIP(raw)
	if err != nil {
		return eris.Wrap(err, "show")
	}

	st, err := initStore(c, false).Load(ctx)
	if err != nil {
		return eris.Wrap(err, "show")
	}

	fields, ok := st.Table.Get(zip)
	if !ok {
		if f, failed := st.Failures.Get(zip); failed {
			return eris.Errorf("show: %s failed at the %s stage: %s", zip, f.Stage, f.Error)
		}
		if st.Ledger.Contains(zip) {
			return eris.Errorf("show: %s was processed but has no census row", zip)
		}
		return eris.Errorf("show: %s has not been fetched", zip)
	}
	return renderRecord(w, format, model.NewRecord(zip, fields))
}
