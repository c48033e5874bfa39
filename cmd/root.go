package cmd

import (
	"fmt"
	"os"

	"media-manager/core/config"
	"media-manager/core/database"
	"media-manager/core/logger"
	"media-manager/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "media-manager",
	Short: "Media Manager Service",
	Long: `Media Manager serves and maintains an agency's media library.
Files live in S3-compatible object storage, titles and dimensions in a SQL
database, and the two are kept in sync by audit and repair tooling.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format at debug level gives readable ISO8601 timestamps for CLI users.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// runtime bundles what every command needs.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	client storage.Client
	db     *gorm.DB
}

// bootstrap loads configuration and opens storage. The database is opened
// only when requireDB is set or the connection succeeds; otherwise db is nil.
func bootstrap(requireDB bool) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	rt := &runtime{cfg: cfg, logger: logg, client: client}

	conn, err := database.Connect(cfg.Database)
	switch {
	case err == nil:
		rt.db = conn
	case requireDB:
		return nil, fmt.Errorf("database connection required: %w", err)
	default:
		logg.Warn("Optional database connection failed", zap.Error(err))
	}

	return rt, nil
}
