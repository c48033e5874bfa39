// Package reconcile joins the two independently owned views of the media
// library: the objects in blob storage and the rows in the metadata table.
//
// # Architecture
//
// A run has three stages:
//
// 1. Load: the storage listing and the metadata query run concurrently and are
// joined. Either side failing aborts the run; a half-loaded snapshot would
// report every object on the healthy side as drift.
//
// 2. Reconcile: a pure set difference on URL. Reconcile produces the Report
// (what is missing where), Join produces the tagged Entry list used for
// listings.
//
// 3. Plan/Apply: BuildPlan turns a report into actions according to
// ReconcileOptions, and Apply executes them through a Mutator. Inserts need
// Repair; deletes need DeleteOrphans and Confirmed, otherwise orphans are only
// flagged.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(lister, store, store, cfg.Media, log)
//
//	// Audit only
//	plan, err := engine.Audit(ctx, "images")
//
//	// Repair drift, keep orphans for manual review
//	plan, result, err := engine.Repair(ctx, "images", reconcile.ReconcileOptions{Repair: true})
package reconcile
