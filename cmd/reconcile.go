package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"media-manager/core/reconcile"
	"media-manager/feature/media"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reconcileFolder string
	repairFlag      bool
	deleteOrphans   bool
	dryRunFlag      bool
	yesConfirm      bool
	reconcileJSON   bool
)

// reconcileCmd audits storage against the metadata table.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile stored files with the media table",
	Long: `Compare the files in object storage with the rows of the media table.

Reports files without a row and rows whose file is gone. Optionally inserts
rows for unregistered files (--repair) and deletes rows whose file no longer
exists (--delete-orphans, which asks for confirmation).

Examples:
  # Report only
  reconcile

  # Limit to one folder subtree
  reconcile --folder images/team

  # Register files that have no row
  reconcile --repair

  # Also drop rows whose file is gone, without prompting
  reconcile --repair --delete-orphans --yes

  # Show what would happen
  reconcile --repair --delete-orphans --dry-run`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileFolder, "folder", "", "Only reconcile this folder and its subfolders")
	reconcileCmd.Flags().BoolVar(&repairFlag, "repair", false, "Insert rows for files missing in the database")
	reconcileCmd.Flags().BoolVar(&deleteOrphans, "delete-orphans", false, "Delete rows whose file is missing in storage")
	reconcileCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	reconcileCmd.Flags().BoolVar(&reconcileJSON, "json", false, "Print the plan as JSON")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := bootstrap(true)
	if err != nil {
		return err
	}
	l := rt.logger
	defer l.Sync()

	svc := media.NewService(rt.client, rt.cfg.Storage, rt.db, rt.cfg.Media, l)

	if !repairFlag && !deleteOrphans {
		l.Info("Auditing media", zap.String("folder", reconcileFolder))
		plan, err := svc.Audit(ctx, reconcileFolder)
		if err != nil {
			return fmt.Errorf("failed to audit: %w", err)
		}
		if reconcileJSON {
			return printJSON(plan)
		}
		printReconcileReport(l, plan)
		if plan.Summary.SyncStatus == reconcile.StatusOutOfSync {
			l.Info("No actions requested. Use --repair to register files or --delete-orphans to drop stale rows.")
		}
		return nil
	}

	opts := reconcile.ReconcileOptions{
		DryRun:        dryRunFlag,
		Repair:        repairFlag,
		DeleteOrphans: deleteOrphans,
	}

	if deleteOrphans && !dryRunFlag {
		opts.Confirmed = confirmDestructiveAction()
		if !opts.Confirmed {
			l.Warn("Deletion not confirmed. Orphaned rows will only be flagged.")
		}
	}

	l.Info("Repairing media", zap.String("folder", reconcileFolder), zap.Bool("dry_run", dryRunFlag))
	plan, result, err := svc.Repair(ctx, reconcileFolder, opts)
	if err != nil {
		if result != nil {
			l.Warn("Repair stopped early",
				zap.Int("executed", result.Executed),
				zap.Int("conflicts", len(result.Conflicts)),
			)
		}
		return fmt.Errorf("failed to repair: %w", err)
	}

	if reconcileJSON {
		return printJSON(repairOutput(plan, result))
	}

	printReconcileReport(l, plan)
	if dryRunFlag {
		l.Info("Dry-run mode: No changes were made.", zap.Int("skipped", result.Skipped))
		return nil
	}

	l.Info("Repair finished",
		zap.Int("executed", result.Executed),
		zap.Int("skipped", result.Skipped),
		zap.Int("conflicts", len(result.Conflicts)),
	)
	for _, c := range result.Conflicts {
		l.Warn("Action failed",
			zap.String("type", string(c.Action.Type)),
			zap.String("url", c.Action.URL),
			zap.String("error", c.Error),
		)
	}
	return nil
}

// repairOutput merges plan and result the way the HTTP repair endpoint does.
func repairOutput(plan *reconcile.ReconcilePlan, result *reconcile.ApplyResult) map[string]any {
	return map[string]any{
		"summary":           plan.Summary,
		"missingInDatabase": plan.MissingInDatabase,
		"missingInStorage":  plan.MissingInStorage,
		"actions":           plan.Actions,
		"executed":          result.Executed,
		"skipped":           result.Skipped,
		"conflicts":         result.Conflicts,
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, plan *reconcile.ReconcilePlan) {
	s := plan.Summary

	l.Info("Reconciliation report",
		zap.String("sync_status", string(s.SyncStatus)),
		zap.Int("total_blobs", s.TotalBlobs),
		zap.Int("total_db_images", s.TotalDBImages),
		zap.Int("missing_in_db", s.MissingInDBCount),
		zap.Int("missing_in_storage", s.MissingInStorageCount),
	)

	if len(plan.Actions) == 0 {
		return
	}

	l.Info("Planned actions",
		zap.Int("insert_actions", s.InsertActions),
		zap.Int("delete_actions", s.DeleteActions),
		zap.Int("flag_actions", s.FlagActions),
	)

	maxShow := min(5, len(plan.Actions))
	for _, action := range plan.Actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("url", action.URL),
			zap.String("reason", action.Reason),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm deleting orphaned rows: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
