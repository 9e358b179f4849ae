package cmd

import (
	"fmt"

	"sales-sync/core/config"
	"sales-sync/core/database"
	"sales-sync/core/metrics"
	"sales-sync/core/reconcile"
	"sales-sync/core/snapshot"
	"sales-sync/core/storage"
	"sales-sync/feature/sales"

	"go.uber.org/zap"
)

// newSalesService connects the store and snapshot source described by cfg.
// With confine set, local locators must name files inside cfg.Sync.SnapshotDir.
func newSalesService(cfg *config.Config, l *zap.Logger, m *metrics.SyncMetrics, confine bool) (*sales.Service, *sales.Repository, error) {
	policy, err := reconcile.ParseDuplicatePolicy(cfg.Sync.DuplicatePolicy)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	repo := sales.NewRepository(db, cfg.Database.Table)
	reader := snapshot.Reader{EntryName: cfg.Sync.EntryName}
	source := snapshot.NewLoader(reader, client)
	if confine {
		source = snapshot.NewConfinedLoader(reader, client, cfg.Sync.SnapshotDir)
	}
	svc := sales.NewService(source, repo, l, m, sales.Options{
		Workers:            cfg.Sync.Workers,
		DeleteBatchSize:    cfg.Sync.DeleteBatchSize,
		AllowEmptySnapshot: cfg.Sync.AllowEmptySnapshot,
		Duplicates:         policy,
	})
	return svc, repo, nil
}
