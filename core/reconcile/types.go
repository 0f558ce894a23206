package reconcile

import "go.uber.org/zap"

// ActionType is what a sync did, or would do, for one key.
type ActionType string

const (
	// ActionNone leaves both replicas as they are.
	ActionNone ActionType = "none"
	// ActionPushRemote copies a local-only snapshot to the remote replica.
	ActionPushRemote ActionType = "push_remote"
	// ActionPullLocal copies a remote-only snapshot to the local replica.
	ActionPullLocal ActionType = "pull_local"
	// ActionWriteBoth stores a merged snapshot on both replicas.
	ActionWriteBoth ActionType = "write_both"
)

// ReconcileResult is the outcome of syncing one key.
type ReconcileResult[T any] struct {
	// Key identifies the entity, e.g. a date.
	Key string `json:"key"`

	LocalPresent  bool `json:"local_present"`
	RemotePresent bool `json:"remote_present"`

	// Action is the planned action. It was executed only when Applied is set.
	Action  ActionType `json:"action"`
	Applied bool       `json:"applied"`

	// Value is the snapshot both replicas hold after the action.
	// Full sweeps leave it nil.
	Value *T `json:"value,omitempty"`

	// Error is set when this key failed. Other keys are unaffected.
	Error string `json:"error,omitempty"`
}

// Summary provides aggregate counts for a sweep.
type Summary struct {
	Total      int `json:"total"`
	LocalOnly  int `json:"local_only"`
	RemoteOnly int `json:"remote_only"`
	Merged     int `json:"merged"`
	Unchanged  int `json:"unchanged"`
	Failed     int `json:"failed"`
}

// ReconcileReport is the outcome of a full sweep.
type ReconcileReport[T any] struct {
	Adapter string               `json:"adapter"`
	DryRun  bool                 `json:"dry_run"`
	Results []ReconcileResult[T] `json:"results"`
	Summary Summary              `json:"summary"`
}

// ReconcileOptions controls whether planned actions are executed.
type ReconcileOptions struct {
	// DryRun plans actions without writing to either replica.
	DryRun bool
}

// Job bundles an adapter with its sweep settings.
type Job[T any] struct {
	Adapter Adapter[T]

	// Concurrency bounds how many keys a sweep syncs at once. Values below 1 mean 1.
	Concurrency int

	Options ReconcileOptions

	// Logger receives per-key decisions. Nil disables logging.
	Logger *zap.Logger
}

func (j *Job[T]) logger() *zap.Logger {
	if j.Logger == nil {
		return zap.NewNop()
	}
	return j.Logger
}

func (j *Job[T]) concurrency() int {
	return max(j.Concurrency, 1)
}
