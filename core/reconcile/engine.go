package reconcile

import (
	"context"
	"sort"
	"time"

	"media-manager/core/asset"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// StorageLister enumerates every media object under a key prefix.
type StorageLister interface {
	List(ctx context.Context, prefix string) ([]asset.StorageObject, error)
}

// FolderScanner is an optional StorageLister extension that also reports the
// folders held open by placeholder objects, from the same listing pass.
type FolderScanner interface {
	Scan(ctx context.Context, prefix string) ([]asset.StorageObject, []string, error)
}

// MetadataReader enumerates media records, newest first. folder filters to
// that folder and everything below it; empty means all.
type MetadataReader interface {
	List(ctx context.Context, folder string) ([]asset.Record, error)
}

// Engine runs reconciliation against a storage lister and a metadata store.
type Engine struct {
	storage  StorageLister
	metadata MetadataReader
	mutator  Mutator
	timeout  time.Duration
	logger   *zap.Logger
}

// NewEngine creates an Engine. mutator may be nil for read-only use.
func NewEngine(storage StorageLister, metadata MetadataReader, mutator Mutator, cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		storage:  storage,
		metadata: metadata,
		mutator:  mutator,
		timeout:  cfg.Timeout(),
		logger:   logger,
	}
}

// Load lists storage and queries metadata concurrently. The first failure
// cancels the other side and aborts the load.
func (e *Engine) Load(ctx context.Context, folder string) (*Snapshot, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if scanner, ok := e.storage.(FolderScanner); ok {
			snap.Objects, snap.Folders, err = scanner.Scan(gctx, Prefix(folder))
		} else {
			snap.Objects, err = e.storage.List(gctx, Prefix(folder))
		}
		return wrapAs(ErrStorageUnavailable, err)
	})

	g.Go(func() error {
		var err error
		snap.Records, err = e.metadata.List(gctx, folder)
		return wrapAs(ErrMetadataUnavailable, err)
	})

	if err := g.Wait(); err != nil {
		e.logger.Error("Failed to load media state", zap.String("folder", folder), zap.Error(err))
		return nil, err
	}

	return &snap, nil
}

// Audit loads both stores and reports drift without planning repairs.
func (e *Engine) Audit(ctx context.Context, folder string) (*ReconcilePlan, error) {
	snap, err := e.Load(ctx, folder)
	if err != nil {
		return nil, err
	}
	return BuildPlan(snap.Objects, snap.Records, ReconcileOptions{}), nil
}

// Repair plans repairs according to opts and applies them unless DryRun is set.
func (e *Engine) Repair(ctx context.Context, folder string, opts ReconcileOptions) (*ReconcilePlan, *ApplyResult, error) {
	snap, err := e.Load(ctx, folder)
	if err != nil {
		return nil, nil, err
	}

	plan := BuildPlan(snap.Objects, snap.Records, opts)
	result, err := Apply(ctx, e.mutator, plan, opts, e.logger)
	if err != nil {
		// result holds what ran before the batch stopped, when anything did.
		return plan, result, err
	}

	e.logger.Info("Reconciliation finished",
		zap.String("folder", folder),
		zap.String("status", string(plan.Summary.SyncStatus)),
		zap.Int("executed", result.Executed),
		zap.Int("skipped", result.Skipped),
		zap.Int("conflicts", len(result.Conflicts)),
		zap.Bool("dry_run", opts.DryRun),
	)
	return plan, result, nil
}

// Prefix maps a folder to the storage prefix that lists it recursively.
func Prefix(folder string) string {
	if folder == "" {
		return ""
	}
	return folder + "/"
}

// Reconcile computes the set difference between objects and records on URL.
// Input order is preserved in both lists.
func Reconcile(objects []asset.StorageObject, records []asset.Record) Report {
	objectURLs := make(map[string]struct{}, len(objects))
	for _, obj := range objects {
		objectURLs[obj.URL] = struct{}{}
	}
	recordURLs := make(map[string]struct{}, len(records))
	for _, rec := range records {
		recordURLs[rec.URL] = struct{}{}
	}

	report := Report{
		MissingInDatabase: make([]asset.StorageObject, 0),
		MissingInStorage:  make([]asset.Record, 0),
		SyncStatus:        StatusSynced,
	}

	for _, obj := range objects {
		if _, ok := recordURLs[obj.URL]; !ok {
			report.MissingInDatabase = append(report.MissingInDatabase, obj)
		}
	}
	for _, rec := range records {
		if _, ok := objectURLs[rec.URL]; !ok {
			report.MissingInStorage = append(report.MissingInStorage, rec)
		}
	}

	if len(report.MissingInDatabase) > 0 || len(report.MissingInStorage) > 0 {
		report.SyncStatus = StatusOutOfSync
	}
	return report
}

// Join builds the listing view: every record tagged synced or
// missing_in_storage, plus a synthesized entry for every object without a
// record. Entries are ordered newest first; ties keep input order.
func Join(objects []asset.StorageObject, records []asset.Record) []Entry {
	byURL := make(map[string]asset.StorageObject, len(objects))
	for _, obj := range objects {
		if _, dup := byURL[obj.URL]; !dup {
			byURL[obj.URL] = obj
		}
	}

	entries := make([]Entry, 0, len(records)+len(objects))
	seen := make(map[string]struct{}, len(records))

	for _, rec := range records {
		seen[rec.URL] = struct{}{}
		obj, ok := byURL[rec.URL]
		if !ok {
			entries = append(entries, Entry{
				Record:    rec,
				MediaType: asset.DetectMediaType(rec.Format, ""),
				State:     StateMissingInStorage,
			})
			continue
		}
		entries = append(entries, Entry{
			Record:    rec,
			Key:       obj.Key,
			MediaType: asset.Normalize(obj.Key, obj.ContentType).MediaType,
			State:     StateSynced,
		})
	}

	for _, obj := range objects {
		if _, ok := seen[obj.URL]; ok {
			continue
		}
		seen[obj.URL] = struct{}{}
		entries = append(entries, Entry{
			Record:    asset.RecordFromObject(obj),
			Key:       obj.Key,
			MediaType: asset.Normalize(obj.Key, obj.ContentType).MediaType,
			State:     StateMissingInDB,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].UploadedAt.After(entries[j].UploadedAt)
	})
	return entries
}

// Folders returns the folder of every entry plus extra, for the folder tree.
func Folders(entries []Entry, extra ...string) []string {
	folders := make([]string, 0, len(entries)+len(extra))
	for _, e := range entries {
		folders = append(folders, e.Folder)
	}
	return append(folders, extra...)
}
