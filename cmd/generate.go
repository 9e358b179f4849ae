package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"sales-sync/core/config"
	"sales-sync/core/logger"
	"sales-sync/core/storage"
	"sales-sync/feature/sales"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var uploadFixtures bool

// generateCmd writes the deterministic fixture snapshots.
var generateCmd = &cobra.Command{
	Use:   "generate <dir>",
	Short: "Write fixture snapshots for local testing",
	Long: `Writes three snapshot archives into <dir>:
  0122_CUR_Target.zip     50 sales
  0122_CUR_Source_V1.zip  identical to the target
  0122_CUR_Source_V2.zip  5 added, 2 modified, 2 removed

With --upload the archives are also stored in the configured bucket.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&uploadFixtures, "upload", false, "Also upload the archives to the configured storage bucket")
	RootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	paths, err := sales.WriteFixtures(args[0])
	if err != nil {
		return err
	}
	for _, p := range paths {
		l.Info("Fixture written", zap.String("path", p))
	}

	if !uploadFixtures {
		return nil
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		name := filepath.Base(p)
		if err := storage.Upload(cmd.Context(), client, cfg.Storage.Bucket, name, data, "application/zip"); err != nil {
			return err
		}
		l.Info("Fixture uploaded", zap.String("locator", fmt.Sprintf("s3://%s/%s", cfg.Storage.Bucket, name)))
	}
	return nil
}
