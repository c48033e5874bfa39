package reconcile

import (
	"context"
	"errors"
	"fmt"

	"media-manager/core/asset"

	"go.uber.org/zap"
)

// Mutator executes repair actions against the metadata store.
type Mutator interface {
	// UpsertRecord inserts rec or refreshes the storage-derived columns of the
	// row with the same URL. Title and alt text of an existing row are kept.
	UpsertRecord(ctx context.Context, rec asset.Record) error

	// DeleteRecordByURL deletes every row with url. Deleting nothing is not an error.
	DeleteRecordByURL(ctx context.Context, url string) error
}

// BuildPlan reconciles objects against records and plans actions per opts.
// It does NOT execute actions; use Apply for that.
func BuildPlan(objects []asset.StorageObject, records []asset.Record, opts ReconcileOptions) *ReconcilePlan {
	report := Reconcile(objects, records)

	plan := &ReconcilePlan{
		Summary: PlanSummary{
			TotalBlobs:            len(objects),
			TotalDBImages:         len(records),
			MissingInDBCount:      len(report.MissingInDatabase),
			MissingInStorageCount: len(report.MissingInStorage),
			SyncStatus:            report.SyncStatus,
		},
		MissingInDatabase: report.MissingInDatabase,
		MissingInStorage:  report.MissingInStorage,
		Actions:           make([]Action, 0),
	}

	if opts.Repair {
		for _, obj := range report.MissingInDatabase {
			rec := asset.RecordFromObject(obj)
			plan.Actions = append(plan.Actions, Action{
				Type:   ActionInsertDB,
				URL:    obj.URL,
				Reason: "object has no metadata row",
				Record: &rec,
			})
			plan.Summary.InsertActions++
		}
	}

	for _, rec := range report.MissingInStorage {
		if opts.deletesAllowed() {
			plan.Actions = append(plan.Actions, Action{
				Type:   ActionDeleteDB,
				URL:    rec.URL,
				Reason: "object is missing in storage",
			})
			plan.Summary.DeleteActions++
			continue
		}
		plan.Actions = append(plan.Actions, Action{
			Type:   ActionFlagDB,
			URL:    rec.URL,
			Reason: "object is missing in storage; deletion needs delete_orphans and confirmation",
		})
		plan.Summary.FlagActions++
	}

	return plan
}

// Apply executes the actions in plan. A failing action is recorded as a
// Conflict and the rest of the batch continues. Only context cancellation
// stops the batch early.
func Apply(ctx context.Context, mutator Mutator, plan *ReconcilePlan, opts ReconcileOptions, logger *zap.Logger) (*ApplyResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	result := &ApplyResult{Conflicts: make([]Conflict, 0)}

	if opts.DryRun {
		result.Skipped = len(plan.Actions)
		return result, nil
	}

	runnable := 0
	for _, action := range plan.Actions {
		if action.Type != ActionFlagDB {
			runnable++
		}
	}
	if runnable > 0 && mutator == nil {
		return nil, errors.New("reconcile: no mutator configured for repair")
	}

	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		var err error
		switch action.Type {
		case ActionInsertDB:
			if !opts.Repair || action.Record == nil {
				result.Skipped++
				continue
			}
			err = mutator.UpsertRecord(ctx, *action.Record)
		case ActionDeleteDB:
			// Re-checked here so a plan built with other options cannot delete.
			if !opts.deletesAllowed() {
				result.Skipped++
				continue
			}
			err = mutator.DeleteRecordByURL(ctx, action.URL)
		default:
			result.Skipped++
			continue
		}

		if err != nil {
			err = fmt.Errorf("%w: %s %s: %w", ErrRepairConflict, action.Type, action.URL, err)
			logger.Warn("Repair action failed",
				zap.String("action", string(action.Type)),
				zap.String("url", action.URL),
				zap.Error(err),
			)
			result.Conflicts = append(result.Conflicts, Conflict{Action: action, Error: err.Error(), err: err})
			continue
		}

		logger.Debug("Repair action executed",
			zap.String("action", string(action.Type)),
			zap.String("url", action.URL),
		)
		result.Executed++
	}

	return result, nil
}
