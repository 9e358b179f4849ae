package sales

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"sales-sync/core/metrics"
	"sales-sync/core/reconcile"
	"sales-sync/core/snapshot"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Source reads the raw rows of a snapshot.
type Source interface {
	Load(ctx context.Context, locator string) ([]snapshot.RawRecord, error)
}

// Store is the persistence a sync needs.
type Store interface {
	reconcile.Mutator[*Sale]
	LoadAll(ctx context.Context) ([]*Sale, error)
	FindByKey(ctx context.Context, key string) (*Sale, error)
}

// Options configures the service.
type Options struct {
	Workers            int
	DeleteBatchSize    int
	AllowEmptySnapshot bool
	Duplicates         reconcile.DuplicatePolicy
}

// RunOptions configures a single run.
type RunOptions struct {
	// DryRun computes the plan without mutating the store.
	DryRun bool `json:"dry_run"`
}

// Service runs snapshot synchronizations.
type Service struct {
	source  Source
	store   Store
	logger  *zap.Logger
	metrics *metrics.SyncMetrics
	opts    Options

	mu    sync.Mutex
	group singleflight.Group
}

// NewService creates a sync service. m may be nil.
func NewService(source Source, store Store, logger *zap.Logger, m *metrics.SyncMetrics, opts Options) *Service {
	return &Service{
		source:  source,
		store:   store,
		logger:  logger,
		metrics: m,
		opts:    opts,
	}
}

// Lookup returns the stored sale with the given identity.
func (s *Service) Lookup(ctx context.Context, key string) (*Sale, error) {
	return s.store.FindByKey(ctx, key)
}

// SyncShared runs SyncSalesData at most once at a time. Concurrent calls for
// the same locator and mode share one run; shared reports whether the result
// came from another caller's run. The run outlives the cancellation of the
// caller that started it, since other callers may be waiting on it.
func (s *Service) SyncShared(ctx context.Context, locator string, run RunOptions) (*Result, bool, error) {
	key := fmt.Sprintf("%s|dry=%t", locator, run.DryRun)
	runCtx := context.WithoutCancel(ctx)
	v, err, shared := s.group.Do(key, func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.SyncSalesData(runCtx, locator, run)
	})
	result, _ := v.(*Result)
	return result, shared, err
}

// SyncSalesData brings the store in line with the snapshot at locator.
//
// The returned error is non-nil only when the run failed before any mutation:
// unreadable snapshot, store unavailable, empty snapshot against a non-empty
// store, or duplicate identities already stored. Per-record failures are
// reported in the result.
func (s *Service) SyncSalesData(ctx context.Context, locator string, run RunOptions) (*Result, error) {
	started := time.Now()
	result := &Result{Locator: locator, DryRun: run.DryRun, StartedAt: started}
	l := s.logger.With(zap.String("locator", locator), zap.Bool("dry_run", run.DryRun))

	fail := func(err error) (*Result, error) {
		l.Error("Sync failed", zap.String("stage", string(result.Stage)), zap.Error(err))
		result.Stage = StageFailed
		result.finish()
		s.metrics.ObserveRun(metrics.StatusFailed, started)
		return result, err
	}

	result.enter(l, StageLoading)
	rows, err := s.source.Load(ctx, locator)
	if err != nil {
		return fail(err)
	}
	existing, err := s.store.LoadAll(ctx)
	if err != nil {
		return fail(err)
	}
	l.Info("Snapshot loaded", zap.Int("rows", len(rows)), zap.Int("stored", len(existing)))

	result.enter(l, StageNormalizing)
	incoming := s.normalize(l, rows, result)
	if len(incoming) == 0 && len(existing) > 0 && !s.opts.AllowEmptySnapshot {
		return fail(fmt.Errorf("%w: refusing to delete %d stored sales", ErrEmptySnapshot, len(existing)))
	}

	result.enter(l, StageDiffing)
	plan, err := reconcile.Reconcile(incoming, existing, reconcile.Options{Duplicates: s.opts.Duplicates})
	if err != nil {
		return fail(err)
	}
	result.Plan = plan.Summary
	result.Unchanged = plan.Summary.Unchanged
	result.Duplicates = plan.DuplicateKeys
	result.ToInsert = plan.Inserts
	result.ToUpdate = plan.Updates
	result.ToDelete = plan.Deletes
	if len(plan.DuplicateKeys) > 0 {
		l.Warn("Snapshot repeats identities, last occurrence kept",
			zap.Int("count", len(plan.DuplicateKeys)),
			zap.Strings("keys", plan.DuplicateKeys))
	}
	l.Info("Plan computed",
		zap.Int("inserts", plan.Summary.Inserts),
		zap.Int("updates", plan.Summary.Updates),
		zap.Int("deletes", plan.Summary.Deletes),
		zap.Int("unchanged", plan.Summary.Unchanged))

	applied := reconcile.ApplyPlan(ctx, s.store, plan, reconcile.ApplyOptions{
		DryRun:          run.DryRun,
		Workers:         s.opts.Workers,
		DeleteBatchSize: s.opts.DeleteBatchSize,
		OnAction: func(action reconcile.ActionType, count int) {
			result.enter(l, stageFor(action), zap.Int("count", count))
		},
	})
	for _, opErr := range applied.Errors {
		l.Error("Record operation failed",
			zap.String("action", string(opErr.Action)),
			zap.String("key", opErr.Key),
			zap.Error(opErr.Err))
		result.Failures = append(result.Failures, Failure{Key: opErr.Key, Action: string(opErr.Action), Message: opErr.Err.Error()})
	}

	result.Inserted = applied.Inserted
	result.Updated = applied.Updated
	result.Deleted = applied.Deleted
	result.Failed = applied.Failed
	result.Errors = result.Malformed + result.Failed
	result.Stage = StageCompleted
	result.finish()

	s.record(result)
	l.Info("Sync completed",
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("deleted", result.Deleted),
		zap.Int("unchanged", result.Unchanged),
		zap.Int("errors", result.Errors),
		zap.Duration("duration", result.Duration))
	return result, nil
}

// normalize converts rows, skipping and logging malformed ones.
func (s *Service) normalize(l *zap.Logger, rows []snapshot.RawRecord, result *Result) []*Sale {
	sales := make([]*Sale, 0, len(rows))
	for _, row := range rows {
		sale, err := Normalize(row)
		if err != nil {
			var malformed *MalformedRecordError
			if errors.As(err, &malformed) {
				l.Warn("Skipping malformed record",
					zap.Int("line", row.Line),
					zap.String("field", malformed.Field),
					zap.Any("record", row.Map()),
					zap.Error(malformed.Err))
			} else {
				l.Warn("Skipping record", zap.Int("line", row.Line), zap.Error(err))
			}
			result.Malformed++
			result.Failures = append(result.Failures, Failure{Line: row.Line, Message: err.Error()})
			continue
		}
		sales = append(sales, sale)
	}
	return sales
}

func (s *Service) record(r *Result) {
	s.metrics.ObserveRun(metrics.StatusCompleted, r.StartedAt)
	s.metrics.AddRecords("inserted", r.Inserted)
	s.metrics.AddRecords("updated", r.Updated)
	s.metrics.AddRecords("deleted", r.Deleted)
	s.metrics.AddRecords("unchanged", r.Unchanged)
	s.metrics.AddRecords("malformed", r.Malformed)
	s.metrics.AddRecords("failed", r.Failed)
}

func stageFor(action reconcile.ActionType) Stage {
	switch action {
	case reconcile.ActionDelete:
		return StageDeleting
	case reconcile.ActionInsert:
		return StageInserting
	default:
		return StageUpdating
	}
}
