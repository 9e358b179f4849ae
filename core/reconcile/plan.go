package reconcile

import (
	"context"
	"sync"
)

// Mutator applies planned changes to a store.
type Mutator[T Item] interface {
	// Insert stores a new record.
	Insert(ctx context.Context, item T) error
	// Update replaces the stored record with the same key.
	Update(ctx context.Context, item T) error
	// DeleteBatch removes records by key and returns the number removed.
	DeleteBatch(ctx context.Context, keys []string) (int, error)
}

// ApplyPlan executes a plan: deletes, then inserts, then updates.
// Deleting first frees keys before inserts of the same run reuse them.
// Failures never stop the remaining operations; they are counted and returned.
func ApplyPlan[T Item](ctx context.Context, m Mutator[T], plan *Plan[T], opts ApplyOptions) *ApplyResult {
	result := &ApplyResult{}
	if opts.DryRun {
		return result
	}

	notify := func(action ActionType, count int) {
		if opts.OnAction != nil {
			opts.OnAction(action, count)
		}
	}

	notify(ActionDelete, len(plan.Deletes))
	deleted, deleteErrs := applyDeletes(ctx, m, plan.Deletes, opts.DeleteBatchSize)
	result.Deleted = deleted
	result.Errors = append(result.Errors, deleteErrs...)

	notify(ActionInsert, len(plan.Inserts))
	insertErrs := applyEach(ctx, plan.Inserts, ActionInsert, m.Insert, opts.Workers)
	result.Inserted = len(plan.Inserts) - len(insertErrs)
	result.Errors = append(result.Errors, insertErrs...)

	notify(ActionUpdate, len(plan.Updates))
	updateErrs := applyEach(ctx, plan.Updates, ActionUpdate, m.Update, opts.Workers)
	result.Updated = len(plan.Updates) - len(updateErrs)
	result.Errors = append(result.Errors, updateErrs...)

	result.Failed = len(result.Errors)
	return result
}

// applyDeletes removes keys in batches. A failed batch marks each of its keys failed.
func applyDeletes[T Item](ctx context.Context, m Mutator[T], keys []string, batchSize int) (int, []*OperationError) {
	if len(keys) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = len(keys)
	}

	deleted := 0
	var errs []*OperationError
	for start := 0; start < len(keys); start += batchSize {
		end := min(start+batchSize, len(keys))
		batch := keys[start:end]

		n, err := m.DeleteBatch(ctx, batch)
		if err != nil {
			for _, key := range batch {
				errs = append(errs, &OperationError{Action: ActionDelete, Key: key, Err: err})
			}
			continue
		}
		deleted += n
	}
	return deleted, errs
}

// applyEach runs op for every item and returns the failures in item order.
func applyEach[T Item](ctx context.Context, items []T, action ActionType, op func(context.Context, T) error, workers int) []*OperationError {
	if len(items) == 0 {
		return nil
	}

	// One slot per item: workers write disjoint indices, so no locking is needed
	outcomes := make([]*OperationError, len(items))
	run := func(i int) {
		if err := op(ctx, items[i]); err != nil {
			outcomes[i] = &OperationError{Action: action, Key: items[i].ReconcileKey(), Err: err}
		}
	}

	if workers < 2 {
		for i := range items {
			run(i)
		}
	} else {
		workers = min(workers, len(items))
		indexCh := make(chan int, len(items))
		for i := range items {
			indexCh <- i
		}
		close(indexCh)

		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for i := range indexCh {
					run(i)
				}
			}()
		}
		wg.Wait()
	}

	var errs []*OperationError
	for _, err := range outcomes {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
