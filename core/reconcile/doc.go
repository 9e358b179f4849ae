// Package reconcile computes and applies the changes that bring a store in line
// with a full snapshot of the same records.
//
// Records take part through the Item interface: a natural identity key and a
// content fingerprint. Identity is the only join between snapshots; the
// fingerprint alone decides whether a matched record changed.
//
// # Engine
//
// Reconcile is a pure function of (incoming, existing). It indexes the existing
// set by key, walks the incoming set, and classifies each record:
//
//   - key unknown to the store: insert
//   - key known, fingerprint differs: update (the full incoming record)
//   - key known, fingerprint equal: unchanged
//
// Existing keys never seen in the incoming set are deleted. An empty incoming
// set therefore deletes everything; guarding against that is the caller's call.
//
// Duplicate keys in the existing set violate the store's uniqueness invariant
// and fail with *DuplicateIdentityError. Duplicate keys in the incoming set are
// resolved by Options.Duplicates: LastWriteWins (default) keeps the content of
// the last occurrence, FailFast rejects the snapshot.
//
// # Applying a plan
//
// ApplyPlan runs deletes, then inserts, then updates against a Mutator. Each
// record is isolated: a failure is recorded as *OperationError and the rest of
// the class still runs. Inserts and updates can fan out over a worker pool;
// attribution of every outcome stays exact.
//
// # Usage Example
//
//	plan, err := reconcile.Reconcile(incoming, existing, reconcile.Options{})
//	if err != nil {
//	    return err
//	}
//	result := reconcile.ApplyPlan(ctx, repo, plan, reconcile.ApplyOptions{DeleteBatchSize: 500})
package reconcile
