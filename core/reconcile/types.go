package reconcile

import "media-manager/core/asset"

// SyncStatus is the overall verdict of a reconciliation run.
type SyncStatus string

const (
	StatusSynced    SyncStatus = "SYNCED"
	StatusOutOfSync SyncStatus = "OUT_OF_SYNC"
)

// State tags a single entry of the joined view.
type State string

const (
	// StateSynced means the object and its metadata row both exist.
	StateSynced State = "synced"
	// StateMissingInDB means the object exists but has no metadata row.
	StateMissingInDB State = "missing_in_db"
	// StateMissingInStorage means the metadata row points at a missing object.
	StateMissingInStorage State = "missing_in_storage"
)

// Report is the drift between storage and the metadata table.
type Report struct {
	MissingInDatabase []asset.StorageObject `json:"missingInDatabase"`
	MissingInStorage  []asset.Record        `json:"missingInStorage"`
	SyncStatus        SyncStatus            `json:"syncStatus"`
}

// Entry is one item of the joined media listing.
type Entry struct {
	asset.Record

	// Key is the storage key, empty when the object is missing.
	Key string `json:"key"`

	// MediaType is derived from the key, or from the stored format when the
	// object is missing.
	MediaType asset.MediaType `json:"mediaType"`

	// State tells which side of the join the entry came from.
	State State `json:"state"`

	// ProbeError is set when dimensions were needed but could not be read.
	ProbeError string `json:"probeError,omitempty"`
}

// NeedsDimensions reports whether the entry is an image with an object to
// read and no stored width or height.
func (e Entry) NeedsDimensions() bool {
	return e.MediaType == asset.MediaImage && e.Key != "" && !e.HasDimensions()
}

// Snapshot is the loaded state of both stores for one run.
type Snapshot struct {
	Objects []asset.StorageObject
	Records []asset.Record

	// Folders lists folders kept open by placeholder objects. Only filled
	// when the storage lister implements FolderScanner.
	Folders []string
}

// ActionType represents the type of repair action.
type ActionType string

const (
	// ActionInsertDB upserts a record synthesized from a storage object.
	ActionInsertDB ActionType = "insert_db"
	// ActionDeleteDB deletes a record whose object is gone.
	ActionDeleteDB ActionType = "delete_db"
	// ActionFlagDB marks an orphaned record for manual review. Never executed.
	ActionFlagDB ActionType = "flag_db"
)

// Action represents a planned repair.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// URL identifies the object or record.
	URL string `json:"url"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Record is the row to upsert. Only populated for ActionInsertDB.
	Record *asset.Record `json:"record,omitempty"`
}

// ReconcilePlan contains the drift report and the planned actions.
type ReconcilePlan struct {
	Summary           PlanSummary           `json:"summary"`
	MissingInDatabase []asset.StorageObject `json:"missingInDatabase"`
	MissingInStorage  []asset.Record        `json:"missingInStorage"`
	Actions           []Action              `json:"actions"`
}

// PlanSummary provides aggregate counts for a plan.
type PlanSummary struct {
	TotalBlobs            int        `json:"totalBlobs"`
	TotalDBImages         int        `json:"totalDbImages"`
	MissingInDBCount      int        `json:"missingInDbCount"`
	MissingInStorageCount int        `json:"missingInStorageCount"`
	SyncStatus            SyncStatus `json:"syncStatus"`
	InsertActions         int        `json:"insertActions"`
	DeleteActions         int        `json:"deleteActions"`
	FlagActions           int        `json:"flagActions"`
}

// ReconcileOptions controls which repairs are planned and executed.
type ReconcileOptions struct {
	// DryRun plans actions without executing any of them.
	DryRun bool

	// Repair upserts records for objects that have none.
	Repair bool

	// DeleteOrphans deletes records whose objects are gone. Without
	// Confirmed the orphans are only flagged.
	DeleteOrphans bool

	// Confirmed indicates the caller has confirmed destructive actions.
	Confirmed bool
}

func (o ReconcileOptions) deletesAllowed() bool {
	return o.DeleteOrphans && o.Confirmed
}

// ApplyResult reports what Apply did.
type ApplyResult struct {
	// Executed counts actions that completed.
	Executed int `json:"executed"`

	// Skipped counts actions that were not run (dry run or flag only).
	Skipped int `json:"skipped"`

	// Conflicts lists actions that failed. The rest of the batch still ran.
	Conflicts []Conflict `json:"conflicts"`
}

// Conflict is a failed repair action.
type Conflict struct {
	Action Action `json:"action"`
	Error  string `json:"error"`
	err    error
}

// Err returns the underlying error, which wraps ErrRepairConflict.
func (c Conflict) Err() error {
	return c.err
}
