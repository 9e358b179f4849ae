package cmd

import (
	"fmt"

	"sales-sync/core/config"
	"sales-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd verifies the sales table before a sync is attempted.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the database connection and sales table schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		_, repo, err := newSalesService(cfg, l, nil, false)
		if err != nil {
			return err
		}
		if err := repo.VerifySchema(); err != nil {
			return err
		}

		n, err := repo.Count(cmd.Context())
		if err != nil {
			return err
		}
		l.Info("Schema check passed",
			zap.String("driver", cfg.Database.Driver),
			zap.String("table", cfg.Database.Table),
			zap.Int64("sales", n))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
