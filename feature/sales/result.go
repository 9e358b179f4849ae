package sales

import (
	"time"

	"sales-sync/core/reconcile"

	"go.uber.org/zap"
)

// Stage is a step of a sync run.
type Stage string

const (
	StageLoading     Stage = "loading"
	StageNormalizing Stage = "normalizing"
	StageDiffing     Stage = "diffing"
	StageDeleting    Stage = "deleting"
	StageInserting   Stage = "inserting"
	StageUpdating    Stage = "updating"
	StageCompleted   Stage = "completed"
	StageFailed      Stage = "failed"
)

// Failure describes one record that was skipped or could not be written.
type Failure struct {
	Line    int    `json:"line,omitempty"`
	Key     string `json:"key,omitempty"`
	Action  string `json:"action,omitempty"`
	Message string `json:"message"`
}

// Result summarizes a sync run.
type Result struct {
	Locator string `json:"locator"`
	DryRun  bool   `json:"dry_run"`
	Stage   Stage  `json:"stage"`

	Inserted  int `json:"inserted"`
	Updated   int `json:"updated"`
	Deleted   int `json:"deleted"`
	Unchanged int `json:"unchanged"`
	Malformed int `json:"malformed"`
	Failed    int `json:"failed"`
	// Errors is Malformed plus Failed.
	Errors int `json:"errors"`

	Plan       reconcile.PlanSummary `json:"plan"`
	Duplicates []string              `json:"duplicates,omitempty"`
	Failures   []Failure             `json:"failures,omitempty"`

	// Planned changes, filled from the Diffing stage on.
	ToInsert []*Sale  `json:"-"`
	ToUpdate []*Sale  `json:"-"`
	ToDelete []string `json:"-"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
}

func (r *Result) enter(l *zap.Logger, stage Stage, fields ...zap.Field) {
	r.Stage = stage
	l.Debug("Sync stage", append([]zap.Field{zap.String("stage", string(stage))}, fields...)...)
}

func (r *Result) finish() {
	r.Duration = time.Since(r.StartedAt)
}
