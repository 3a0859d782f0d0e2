package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/zipcensus/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "zipcensus",
	Short: "Census ACS statistics by ZIP code",
	Long:  "Resolves ZIP codes to states via Zippopotam, fetches ACS 5-year variables from the Census API, and checkpoints results to CSV so reruns skip ZIPs already processed.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
