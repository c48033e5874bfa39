package cmd

import (
	"fmt"

	"media-manager/core/config"
	"media-manager/core/database"
	"media-manager/core/logger"
	"media-manager/feature/media/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or upgrades the media table.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the media table",
	Long: `Applies the embedded SQL migrations on postgres. MySQL and SQLite
databases are migrated from the gorm model instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer l.Sync()

		switch cfg.Database.Driver {
		case database.DriverPostgres, "":
			if err := database.Migrate(cfg.Database); err != nil {
				return err
			}
		default:
			db, err := database.Connect(cfg.Database)
			if err != nil {
				return fmt.Errorf("database connection required: %w", err)
			}
			if err := db.AutoMigrate(&models.Media{}); err != nil {
				return fmt.Errorf("auto migrate: %w", err)
			}
		}

		l.Info("Database schema is up to date", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
