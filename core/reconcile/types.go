package reconcile

import "fmt"

// Item is a record that can be reconciled across snapshots.
type Item interface {
	// ReconcileKey returns the natural identity of the record.
	ReconcileKey() string
	// ReconcileFingerprint returns the digest of the record's meaningful content.
	ReconcileFingerprint() string
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionInsert adds a record the store does not know.
	ActionInsert ActionType = "insert"
	// ActionUpdate overwrites a stored record whose content changed.
	ActionUpdate ActionType = "update"
	// ActionDelete removes a stored record absent from the snapshot.
	ActionDelete ActionType = "delete"
)

// DuplicatePolicy decides how repeated keys in an incoming snapshot are handled.
type DuplicatePolicy string

const (
	// LastWriteWins keeps the last occurrence of a key, at the first occurrence's position.
	LastWriteWins DuplicatePolicy = "last_write_wins"
	// FailFast rejects a snapshot holding a repeated key.
	FailFast DuplicatePolicy = "fail_fast"
)

// ParseDuplicatePolicy validates a policy name. Empty selects LastWriteWins.
func ParseDuplicatePolicy(name string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(name) {
	case "", LastWriteWins:
		return LastWriteWins, nil
	case FailFast:
		return FailFast, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q", name)
	}
}

// Options controls classification.
type Options struct {
	// Duplicates resolves repeated incoming keys. Zero value means LastWriteWins.
	Duplicates DuplicatePolicy
}

// Plan holds the classified changes between an incoming and an existing set.
type Plan[T Item] struct {
	// Inserts are incoming records unknown to the store, in incoming order.
	Inserts []T `json:"inserts"`

	// Updates are incoming records replacing a stored record, in incoming order.
	Updates []T `json:"updates"`

	// Deletes are stored keys absent from the incoming set, sorted.
	Deletes []string `json:"deletes"`

	// DuplicateKeys lists incoming keys seen more than once, in first-seen order.
	DuplicateKeys []string `json:"duplicate_keys,omitempty"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	Incoming   int `json:"incoming"`
	Existing   int `json:"existing"`
	Inserts    int `json:"inserts"`
	Updates    int `json:"updates"`
	Deletes    int `json:"deletes"`
	Unchanged  int `json:"unchanged"`
	Duplicates int `json:"duplicates"`
}

// HasChanges reports whether applying the plan would mutate the store.
func (p *Plan[T]) HasChanges() bool {
	return len(p.Inserts)+len(p.Updates)+len(p.Deletes) > 0
}

// ApplyOptions controls plan execution.
type ApplyOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// Workers is the number of concurrent insert/update workers. Values below 2 run sequentially.
	Workers int

	// DeleteBatchSize caps keys per DeleteBatch call. Zero sends all keys at once.
	DeleteBatchSize int

	// OnAction, if set, is called before each action class starts, even when the class is empty.
	OnAction func(action ActionType, count int)
}

// ApplyResult reports the outcome of ApplyPlan.
type ApplyResult struct {
	// Inserted counts successful inserts.
	Inserted int `json:"inserted"`
	// Updated counts successful updates.
	Updated int `json:"updated"`
	// Deleted counts rows the store reported as removed.
	Deleted int `json:"deleted"`
	// Failed counts records whose operation failed.
	Failed int `json:"failed"`
	// Errors holds one entry per failed record, grouped by class in apply order.
	Errors []*OperationError `json:"-"`
}

// FailedBy returns the number of failures for one action type.
func (r *ApplyResult) FailedBy(action ActionType) int {
	n := 0
	for _, err := range r.Errors {
		if err.Action == action {
			n++
		}
	}
	return n
}
