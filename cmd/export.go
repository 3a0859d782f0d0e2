package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/zipcensus/internal/store"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the result table to an XLSX workbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := initStore(cfg, false).Load(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "export")
		}
		if err := store.ExportXLSX(st, exportOut); err != nil {
			return eris.Wrap(err, "export")
		}

		zap.L().Info("export complete",
			zap.Int("rows", st.Table.Len()),
			zap.Int("failures", st.Failures.Len()),
			zap.String("out", exportOut),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "census_df.xlsx", "path of the XLSX file to write")
	rootCmd.AddCommand(exportCmd)
}
